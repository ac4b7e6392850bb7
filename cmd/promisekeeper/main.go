package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/promisekeeper/internal/api"
	"github.com/MikeSquared-Agency/promisekeeper/internal/config"
	"github.com/MikeSquared-Agency/promisekeeper/internal/detector"
	"github.com/MikeSquared-Agency/promisekeeper/internal/events"
	"github.com/MikeSquared-Agency/promisekeeper/internal/llm"
	"github.com/MikeSquared-Agency/promisekeeper/internal/logging"
	"github.com/MikeSquared-Agency/promisekeeper/internal/oauth"
	"github.com/MikeSquared-Agency/promisekeeper/internal/telemetry"
	"github.com/MikeSquared-Agency/promisekeeper/internal/waitlist"
)

var version = "dev"

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry (optional). Set up before logging so records can be exported.
	tel, err := telemetry.Setup(ctx, cfg.OTel, version)
	if err != nil {
		logging.Setup(cfg.LogLevel, cfg.LogFormat, "")
		slog.Error("failed to set up telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	exportName := ""
	if tel != nil {
		exportName = cfg.OTel.ServiceName
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat, exportName)

	slog.Info("promisekeeper starting", "port", cfg.Port, "env", cfg.Env, "version", version)

	// Detector. A missing key is reported per request, not at startup.
	if !cfg.OpenAI.Enabled() {
		slog.Warn("OPENAI_API_KEY not set, promise detection will return configuration errors")
	}
	client := llm.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second)
	det := detector.New(client, detector.Config{
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.OpenAI.Temperature,
	}, logger)
	slog.Info("detector ready", "model", cfg.OpenAI.Model)

	// Waitlist sinks
	var sinks []waitlist.Sink
	if cfg.Airtable.Enabled() {
		sinks = append(sinks, waitlist.NewAirtableSink(cfg.Airtable.APIKey, cfg.Airtable.BaseID, cfg.Airtable.Table, cfg.Airtable.BaseURL))
		slog.Info("airtable waitlist ready", "table", cfg.Airtable.Table)
	}
	if cfg.DatabaseURL != "" {
		pg, err := waitlist.NewPostgresSink(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		if err := pg.Migrate(ctx); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, pg)
		slog.Info("database connected")
	}
	if len(sinks) == 0 {
		slog.Warn("no waitlist destination configured, signups will fail")
	}

	// NATS (optional)
	var publisher events.Publisher
	if cfg.NatsURL != "" {
		natsClient, err := events.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, logger)
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsClient.Close()
		publisher = natsClient
		slog.Info("NATS connected", "url", cfg.NatsURL)
	}

	srv := api.NewServer(cfg.Port, api.Deps{
		Detector:     det,
		Basecamp:     oauth.NewBasecampClient(cfg.Basecamp, logger),
		Waitlist:     waitlist.NewService(logger, sinks...),
		Events:       publisher,
		AppURLScheme: cfg.AppURLScheme,
		Logger:       logger,
	})
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	slog.Info("promisekeeper ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown failed", "error", err)
	}
	cancel()
	slog.Info("promisekeeper stopped")
}
