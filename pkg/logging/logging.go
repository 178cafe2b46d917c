package logging

import (
	"io"
	"log/slog"
	"os"

	"gitlab.com/garageonwheels/gow-web/pkg/env"
)

// Setup builds the process-wide logger for the given mode. In prod the
// output is JSON; everywhere else it is human-readable text. When logPath
// is non-empty the log is also appended to that file.
func Setup(mode env.Mode, logPath string) (*slog.Logger, func()) {
	var out io.Writer = os.Stdout
	cleanup := func() {}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			slog.Error("failed to open log file, falling back to stdout", "path", logPath, "error", err)
		} else {
			out = io.MultiWriter(os.Stdout, f)
			cleanup = func() { _ = f.Close() }
		}
	}

	opts := &slog.HandlerOptions{Level: mode.SlogLevel()}

	var handler slog.Handler
	switch mode {
	case env.Prod:
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler), cleanup
}
