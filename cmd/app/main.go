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

	"github.com/osse101/LuckyWheel_Go/internal/auth"
	"github.com/osse101/LuckyWheel_Go/internal/bootstrap"
	"github.com/osse101/LuckyWheel_Go/internal/claim"
	"github.com/osse101/LuckyWheel_Go/internal/config"
	"github.com/osse101/LuckyWheel_Go/internal/draw"
	"github.com/osse101/LuckyWheel_Go/internal/i18n"
	"github.com/osse101/LuckyWheel_Go/internal/server"
	"github.com/osse101/LuckyWheel_Go/internal/sse"
	"github.com/osse101/LuckyWheel_Go/internal/storage"
	"github.com/osse101/LuckyWheel_Go/internal/telemetry"
	"github.com/osse101/LuckyWheel_Go/internal/utils"
	"github.com/osse101/LuckyWheel_Go/internal/wheel"
	"github.com/osse101/LuckyWheel_Go/internal/worker"
)

// ShutdownTimeout bounds the whole graceful shutdown sequence
const ShutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	for _, w := range cfg.Warnings() {
		slog.Warn(w)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		logFile.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.OTelEndpoint, cfg.ServiceName, cfg.Version)
	if err != nil {
		return err
	}

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		_ = shutdownTelemetry(ctx)
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		_ = shutdownTelemetry(ctx)
		repos.Close()
		return err
	}

	// filled in as each component starts
	components := bootstrap.ShutdownComponents{
		ResilientPublisher: publisher,
		Repositories:       repos,
		Telemetry:          shutdownTelemetry,
	}
	stop := func(err error) error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, components)
		return err
	}

	wheels := wheel.NewService(repos.Wheel, cfg.WheelCacheSize, cfg.WheelCacheTTL)
	if err := bootstrap.SyncWheels(ctx, cfg.WheelsDir, wheels); err != nil {
		return stop(err)
	}

	proofs, err := storage.NewFileStore(cfg.ProofDir, cfg.ProofMaxBytes)
	if err != nil {
		return stop(err)
	}
	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	if err != nil {
		return stop(err)
	}

	draws := draw.NewService(repos.Draw, publisher, utils.DefaultRNG(), wheels, cfg.DrawMaxAttempts)
	claims := claim.NewService(repos.Spin, proofs, publisher, cfg.RecentWinnersLimit)

	hub := sse.NewHub()
	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	sched, err := bootstrap.StartBackground(bootstrap.EventHandlerDependencies{
		EventBus: eventBus,
		Hub:      hub,
		Pool:     pool,
		Config:   cfg,
	}, cfg.MetricsSampleInterval)
	if err != nil {
		return stop(err)
	}
	components.Hub = hub
	components.Pool = pool
	components.Scheduler = sched

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		Version:        cfg.Version,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		ProofMaxBytes:  cfg.ProofMaxBytes,
	}, server.Services{
		Ready:      repos.Ready,
		Wheels:     wheels,
		Draws:      draws,
		Claims:     claims,
		Tokens:     tokens,
		Translator: i18n.New(),
		Hub:        hub,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		slog.Info("Received signal", "signal", sig.String())
	case runErr = <-serverErr:
	}

	components.Server = srv
	return stop(runErr)
}
