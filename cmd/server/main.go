package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osa911/formrelay/internal/config"
	"github.com/osa911/formrelay/internal/locale"
	"github.com/osa911/formrelay/internal/logging"
	"github.com/osa911/formrelay/internal/server"
	"github.com/osa911/formrelay/internal/telemetry"
	"github.com/osa911/formrelay/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.GetGlobalLogger().Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Configure and get logger
	if err := logging.InitLogger(cfg.LogConfig()); err != nil {
		logging.GetGlobalLogger().Error("Failed to initialize logger: %v", err)
		os.Exit(1)
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	logger.Info("Starting formrelay %s in %s mode", version.Info(), cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
		Version:     version.Version,
		Environment: cfg.Environment,
	})
	if err != nil {
		logger.Error("Failed to initialize tracing: %v", err)
		os.Exit(1)
	}

	catalog, err := locale.NewCatalog(cfg.LocalesDir)
	if err != nil {
		logger.Error("Failed to load locales: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded locales: %v", catalog.Languages())

	srv, err := server.NewServer(cfg, server.Dependencies{
		Sender:  cfg.RelayClient(),
		Catalog: catalog,
	})
	if err != nil {
		logger.Error("Failed to create server: %v", err)
		os.Exit(1)
	}

	// Initialize server
	if err := srv.Init(); err != nil {
		logger.Error("Failed to initialize server: %v", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	exitCode := 0
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server stopped: %v", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
		exitCode = 1
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("Tracing shutdown failed: %v", err)
	}

	logger.Info("Server exited")
	if exitCode != 0 {
		cancel()
		logger.Close()
		os.Exit(exitCode)
	}
}
