package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/refripanel/quote-go/internal/application/port"
	"github.com/refripanel/quote-go/internal/interfaces/http/middleware"
)

// RouterConfig configures the middleware stack.
type RouterConfig struct {
	Version            string
	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
	MaxRequestSize     int64

	// RateLimit is nil when rate limiting is disabled.
	RateLimit *middleware.RateLimiterConfig
}

// NewRouter builds the chi router with the middleware stack and routes.
//
// Parameters:
//   - cfg: middleware settings
//   - h: the handlers
//   - log: request logger
//
// Returns:
//   - http.Handler: the root handler
func NewRouter(cfg RouterConfig, h *Handler, log port.Logger) http.Handler {
	r := chi.NewRouter()

	// ============================================================================
	// Middleware stack
	// ============================================================================
	// Order matters! Middleware is executed in the order added.

	// 1. Real IP extraction (for rate limiting and logging)
	r.Use(middleware.RealIP)

	// 2. Request ID generation/propagation
	r.Use(middleware.RequestID)

	// 3. Logging (after Request ID so it's included in logs)
	r.Use(middleware.Logger(log))

	// 4. Panic recovery
	r.Use(middleware.Recoverer(log))

	// 5. Request timeout
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	// 6. CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-API-Version", "Location"},
		MaxAge:         300,
	}))

	// 7. Rate limiting
	if cfg.RateLimit != nil {
		r.Use(middleware.RateLimiter(*cfg.RateLimit))
	}

	// 8. Security headers
	r.Use(middleware.SecureHeaders)

	// 9. API version header
	r.Use(middleware.APIVersion(cfg.Version))

	// ============================================================================
	// Routes
	// ============================================================================

	r.Get("/health", h.Health)

	// Site navigation
	r.Get("/", h.Index)
	r.Get("/{page}", h.Page)

	r.Route("/api/v1", func(r chi.Router) {
		// 10. Content-Type enforcement and body limit
		r.Use(middleware.ContentTypeJSON)
		if cfg.MaxRequestSize > 0 {
			r.Use(maxBytes(cfg.MaxRequestSize))
		}

		r.Get("/catalog", h.Catalog)

		r.Route("/quotes/{product}", func(r chi.Router) {
			r.Post("/", h.Quote)
			r.Post("/contact", h.QuoteContact)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.OpenSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetSession)
				r.Patch("/", h.ApplyChanges)
				r.Delete("/", h.DiscardSession)
				r.Post("/contact", h.SessionContact)
			})
		})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.methodNotAllowed)

	return r
}

func maxBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
