// Package env holds the process run mode. gow-web knows three modes: test
// (unit tests), dev (local development against a dev instance of the user
// API), and prod.
package env

import "log/slog"

type Mode string

const (
	Test Mode = "test"
	Dev  Mode = "dev"
	Prod Mode = "prod"
)

var currentMode = Test

func SetMode(mode Mode) {
	if !mode.Validate() {
		panic("invalid mode: " + mode.String())
	}
	currentMode = mode
}

func Current() Mode {
	return currentMode
}

func (e Mode) String() string {
	return string(e)
}

func (e Mode) Validate() bool {
	switch e {
	case Test, Dev, Prod:
		return true
	default:
		return false
	}
}

func (e Mode) SlogLevel() slog.Level {
	switch e {
	case Test, Dev:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
