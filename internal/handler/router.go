package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/portfolio/backend/internal/ratelimit"
)

// RouterConfig wires the handlers and policies used by NewRouter.
type RouterConfig struct {
	Health  *Handler
	Contact *ContactHandler

	// Limiter guards POST /api/contact; nil disables rate limiting.
	Limiter           ratelimit.Limiter
	TrustedProxyCount int

	AllowedOrigins []string
}

// NewRouter builds the HTTP routing tree for the contact API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/api/health", cfg.Health.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/api/contact", cfg.Contact.Status)
	submit := r.With()
	if cfg.Limiter != nil {
		submit = r.With(RateLimit(cfg.Limiter, cfg.TrustedProxyCount))
	}
	submit.Post("/api/contact", cfg.Contact.Submit)

	return r
}
