package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Pinger reports whether a dependency is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterConfig holds what NewRouter needs besides the resource routes.
type RouterConfig struct {
	Logger     *zap.Logger
	Metrics    *Metrics
	AdminToken string
	DB         Pinger
}

// NewRouter builds the HTTP handler: the middleware stack around a chi
// router carrying health, metrics and every resource registered by routes.
func NewRouter(cfg RouterConfig, routes ...func(chi.Router)) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
		r.Method(http.MethodGet, MetricsPath, cfg.Metrics.Handler())
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, NewNotFoundError("Resource not found: "+r.URL.Path, CorrelationID(r.Context())))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, &Error{
			Status:        "error",
			Message:       "Method " + r.Method + " not allowed on " + r.URL.Path,
			CorrelationID: CorrelationID(r.Context()),
			Category:      CategoryValidationError,
		})
	})
	r.Get("/healthz", health(cfg.DB, logger))

	for _, register := range routes {
		register(r)
	}

	return Chain(r,
		Recovery(logger),
		RequestID(),
		Auth(cfg.AdminToken),
		JSONContentType(),
		Logging(logger),
	)
}

func health(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
