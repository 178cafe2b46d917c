package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/trace"

	"gitlab.com/garageonwheels/gow-web/internal/adapters/garageapi"
	userapp "gitlab.com/garageonwheels/gow-web/internal/application/user"
	httpport "gitlab.com/garageonwheels/gow-web/internal/ports/http"
	"gitlab.com/garageonwheels/gow-web/pkg/env"
	"gitlab.com/garageonwheels/gow-web/pkg/logging"
)

// Config holds all configuration for the application.
type Config struct {
	Mode           env.Mode      `env:"MODE" env-default:"dev"`
	Port           string        `env:"PORT" env-default:"8080"`
	APIBaseURL     string        `env:"API_BASE_URL" env-required:"true"`
	APITimeout     time.Duration `env:"API_TIMEOUT" env-default:"15s"`
	SessionSecret  string        `env:"SESSION_SECRET" env-required:"true"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" env-default:"http://localhost:8080"`
	LogPath        string        `env:"LOG_PATH"`
}

func main() {
	ctx := context.Background()

	config, err := loadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	env.SetMode(config.Mode)

	logger, logCleanup := logging.Setup(config.Mode, config.LogPath)
	slog.SetDefault(logger)
	defer logCleanup()

	shutdownOTel, err := setupOTelSDK(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up OpenTelemetry SDK", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownOTel(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to shutdown OpenTelemetry SDK", "error", err)
		}
	}()

	slog.InfoContext(ctx, "starting gow-web server",
		"mode", config.Mode,
		"port", config.Port,
		"api_base_url", config.APIBaseURL,
	)

	client, err := garageapi.NewClient(garageapi.Args{
		BaseURL: config.APIBaseURL,
		Timeout: config.APITimeout,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create user API client", "error", err)
		os.Exit(1)
	}

	app := userapp.NewApp(userapp.Args{API: client})

	port, err := httpport.NewPort(httpport.Args{
		UserApp:        app,
		Secret:         []byte(config.SessionSecret),
		AllowedOrigins: config.AllowedOrigins,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create HTTP port", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	port.Route(router)

	httpServer := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "starting HTTP server", "port", config.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "server exited")
}

func loadConfig() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// setupOTelSDK bootstraps the OpenTelemetry pipeline.
// If it does not return an error, make sure to call shutdown for proper cleanup.
func setupOTelSDK(ctx context.Context) (shutdown func(context.Context) error, err error) {
	var shutdownFuncs []func(context.Context) error

	shutdown = func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}

	handleErr := func(inErr error) {
		err = errors.Join(inErr, shutdown(ctx))
	}

	otel.SetTextMapPropagator(newPropagator())

	tracerProvider, err := newTracerProvider()
	if err != nil {
		handleErr(err)
		return
	}
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	otel.SetTracerProvider(tracerProvider)

	return
}

func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

func newTracerProvider() (*trace.TracerProvider, error) {
	traceExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}

	tracerProvider := trace.NewTracerProvider(
		trace.WithBatcher(traceExporter, trace.WithBatchTimeout(5*time.Second)),
	)
	return tracerProvider, nil
}
