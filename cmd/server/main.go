package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/socialchef/mise/internal/api"
	"github.com/socialchef/mise/internal/config"
	"github.com/socialchef/mise/internal/form"
	"github.com/socialchef/mise/internal/logger"
	"github.com/socialchef/mise/internal/metrics"
	"github.com/socialchef/mise/internal/middleware"
	"github.com/socialchef/mise/internal/render"
	"github.com/socialchef/mise/internal/sentry"
	"github.com/socialchef/mise/internal/services/recipe"
	"github.com/socialchef/mise/internal/session"
	"github.com/socialchef/mise/internal/telemetry"
)

func main() {
	defer sentry.Recover()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize telemetry
	shutdownTelemetry, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env, cfg.OtelExporterOTLPEndpoint, cfg.OTLPHeaders())
	if err != nil {
		slog.Warn("Failed to init telemetry", "error", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	// Initialize logger with OTel support
	slog.SetDefault(logger.New(cfg.Env))

	// Initialize Sentry
	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init Sentry", "error", err)
	}

	// Initialize business metrics
	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	// Each session gets its own generation client; they share the provider
	// factory and its HTTP client.
	newClient := recipe.NewSessionClientFactory(recipe.NewProviderFactory(cfg.Generation))
	store := session.NewStore(func() *form.Controller {
		return form.NewController(newClient())
	}, cfg.Session.IdleTTL)
	go store.Run(ctx, cfg.Session.SweepInterval)

	sessions, err := middleware.NewSessions(store, cfg.SessionSecret, cfg.Session)
	if err != nil {
		log.Fatalf("Failed to init sessions: %v", err)
	}

	apiServer := api.NewServer(cfg, render.New(cfg.Render.Markdown))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(apiServer, sessions),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting server",
			"port", cfg.Port,
			"env", cfg.Env,
			"provider", cfg.Generation.Provider,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	sentry.Flush(2 * time.Second)
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Warn("Telemetry shutdown failed", "error", err)
	}
}
