// Package server provides HTTP server setup and configuration.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/dstoecklein/greeting-service/internal/config"
	"github.com/dstoecklein/greeting-service/internal/handlers"
	"github.com/dstoecklein/greeting-service/internal/middleware"
)

// Dependencies holds all dependencies needed to create a server
type Dependencies struct {
	Config  *config.Config
	Logger  *slog.Logger
	Version string
}

// New creates a new Gin router with all routes configured
func New(deps *Dependencies) *gin.Engine {
	// Set the Gin mode from configuration (release unless overridden)
	gin.SetMode(deps.Config.Server.GinMode)

	// Use gin.New() instead of gin.Default() to have explicit control over middleware
	// gin.Default() adds the colored console logger; request logging goes through slog instead
	router := gin.New()

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add structured request logging, skipping the health probe when one is configured
	healthPath := deps.Config.Server.HealthPath
	var skipPaths []string
	if healthPath != "" {
		skipPaths = append(skipPaths, healthPath)
	}
	router.Use(middleware.RequestLogger(deps.Logger, skipPaths...))

	// Add CORS middleware for web client support
	router.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Add request ID and rate limiting (rate limiting is off unless RATE_LIMIT is set)
	router.Use(middleware.RequestID())
	router.Use(middleware.NewRateLimit(deps.Config.RateLimit.Limit, deps.Config.RateLimit.Period))

	// The root path answers every method with the same bytes, uncompressed
	router.Any("/", handlers.HelloHandler)

	// Optional health probe, only registered when HEALTH_PATH is set
	if healthPath != "" {
		router.GET(healthPath, gzip.Gzip(gzip.DefaultCompression), handlers.NewHealthHandler(deps.Version))
	}

	return router
}

// Run binds addr and serves handler until ctx is cancelled.
// Bind failures are returned immediately.
func Run(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return Serve(ctx, ln, handler, shutdownTimeout, logger)
}

// Serve serves handler on ln until ctx is cancelled, then drains in-flight
// requests for at most shutdownTimeout. ln is closed on return.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, shutdownTimeout time.Duration, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server.listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server.shutting_down", "timeout", shutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
