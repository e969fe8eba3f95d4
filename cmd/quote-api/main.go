// Package main is the entry point for the quote API, the pricing service
// behind the cold-room, panel and door forms of the marketing site.
//
// 12-Factor App compilance:
//   - I. Codebase: Single codebase tracked in version control
//   - II. Dependencies: Managed via go.mod
//   - III. Config: Configuration via environment variables
//   - VI. Processes: Stateless processes (form sessions can live in Redis)
//   - VII. Port Binding: Self-contained HTTP server
//   - IX. Disposability: Graceful shutdown
//   - XI. Logs: Structured logging to stdout
//
// Usage:
//
//	go run ./cmd/quote-api
//
// Environment Variables:
//
//	RQ_APP_ENVIRONMENT  - Deployment environment (development, staging, production)
//	RQ_SERVER_PORT      - HTTP server port (default: 8080, PORT also honored)
//	RQ_SESSION_STORE    - Form session store (memory, redis)
//	RQ_SESSION_REDIS_ADDR - Redis address when the store is redis
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/refripanel/quote-go/internal/application/contact"
	"github.com/refripanel/quote-go/internal/application/form"
	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/repository"
	"github.com/refripanel/quote-go/internal/infrastructure/config"
	"github.com/refripanel/quote-go/internal/infrastructure/logging"
	"github.com/refripanel/quote-go/internal/infrastructure/persistance/memory"
	"github.com/refripanel/quote-go/internal/infrastructure/persistance/redis"
	"github.com/refripanel/quote-go/internal/interfaces/http/handler"
	"github.com/refripanel/quote-go/internal/interfaces/http/middleware"
	"github.com/refripanel/quote-go/pkg/logger"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log := logging.New(logger.MustNew(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.IsDevelopment(),
	}))
	defer func() { _ = log.Sync() }()

	log.Info("Starting quote API",
		"app", cfg.App.Name,
		"version", version,
		"environment", cfg.App.Environment,
		"session_store", cfg.Session.Store,
	)

	// Create context that listens for shutdowns signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Price catalog, built once and shared read-only
	cat, err := catalog.New(cfg.Catalog)
	if err != nil {
		log.Fatal("Invalid price catalog", "error", err)
	}

	sessions, closeSessions, err := openSessionStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Session store unavailable", "error", err)
	}
	defer closeSessions()

	forms := form.NewService(sessions, cat, log.Named("form"))
	dispatcher := contact.NewDispatcher(
		cfg.Contact.BaseURL,
		contact.Phones{
			Cabin: cfg.Contact.CabinPhone,
			Door:  cfg.Contact.DoorPhone,
			Panel: cfg.Contact.PanelPhone,
		},
		contact.NewFormatter(cat),
		log.Named("contact"),
	)

	h := handler.New(forms, dispatcher, log, handler.Options{
		ImagePlaceholder: cfg.Site.ImagePlaceholder,
		Version:          version,
	})

	routerCfg := handler.RouterConfig{
		Version:            version,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RequestTimeout:     cfg.Server.RequestTimeout,
		MaxRequestSize:     cfg.Server.MaxRequestSize,
	}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimit = &middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			KeyFunc:           middleware.ClientIP,
		}
	}

	// ============================================================================
	// HTTP server
	// ============================================================================

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.NewRouter(routerCfg, h, log.Named("http")),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.Info("Shutdown signal received")

	// Create sutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Graceful shutdown
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	log.Info("Server shutdown complete")
}

// openSessionStore builds the configured form session store and returns
// a function that releases it.
func openSessionStore(ctx context.Context, cfg *config.Config, log *logging.Adapter) (repository.SessionRepository, func(), error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		repo, err := redis.Connect(ctx, redis.Options{
			Addr:           cfg.Session.Redis.Addr,
			Password:       cfg.Session.Redis.Password,
			DB:             cfg.Session.Redis.DB,
			TTL:            cfg.Session.TTL,
			ConnectTimeout: cfg.Session.Redis.ConnectTimeout,
		}, log.Named("redis"))
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using Redis session store", "addr", cfg.Session.Redis.Addr)
		return repo, func() { _ = repo.Close() }, nil

	default:
		repo := memory.NewSessionRepository(cfg.Session.TTL)
		go repo.RunJanitor(ctx, cfg.Session.SweepInterval)
		log.Info("Using in-memory session store", "ttl", cfg.Session.TTL.String())
		return repo, func() {}, nil
	}
}
