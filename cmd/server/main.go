// Package main is the entry point for the greeting service HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dstoecklein/greeting-service/internal/buildinfo"
	"github.com/dstoecklein/greeting-service/internal/config"
	"github.com/dstoecklein/greeting-service/internal/logger"
	"github.com/dstoecklein/greeting-service/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up structured logging
	lg, err := logger.New(os.Stdout, logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	// Stop on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create the router
	router := server.New(&server.Dependencies{
		Config:  cfg,
		Logger:  lg,
		Version: buildinfo.Version,
	})

	// Start the server and block until shutdown
	lg.Info("server.starting", "build", buildinfo.String(), "port", cfg.Server.Port)
	if err := server.Run(ctx, cfg.Server.Addr(), router, cfg.Server.ShutdownTimeout, lg); err != nil {
		lg.Error("server.failed", "error", err)
		stop() // os.Exit skips deferred calls
		os.Exit(1)
	}
	lg.Info("server.stopped")
}
