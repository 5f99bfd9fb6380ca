// Package admin serves the operator endpoints under /_vitrine/.
package admin

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/johnwards/vitrine/internal/api"
	"github.com/johnwards/vitrine/internal/seed"
)

// Catalog is the write side the admin endpoints need.
type Catalog interface {
	seed.Writer
	Reset(ctx context.Context) error
}

// Purger drops cached lookups. cache.Resolver satisfies it.
type Purger interface {
	Purge(ctx context.Context) error
}

// Handler serves the admin API.
type Handler struct {
	catalog Catalog
	cache   Purger
	logger  *zap.Logger
}

// NewHandler creates a Handler. cache may be nil.
func NewHandler(catalog Catalog, cache Purger, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{catalog: catalog, cache: cache, logger: logger}
}

// Routes registers the admin endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post(api.AdminPrefix+"reset", h.Reset)
	r.Post(api.AdminPrefix+"seed", h.SeedData)
	r.Get(api.AdminPrefix+"status", h.Status)
}

// Reset drops all catalog data, re-runs seeds and purges the slug cache.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := ResetData(r.Context(), h.catalog, h.cache); err != nil {
		h.fail(w, r, "reset", err)
		return
	}
	h.logger.Info("catalog reset", zap.String("correlation_id", api.CorrelationID(r.Context())))
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SeedData runs seed data without dropping existing data first.
func (h *Handler) SeedData(w http.ResponseWriter, r *http.Request) {
	if err := seed.Seed(r.Context(), h.catalog); err != nil {
		h.fail(w, r, "seed", err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Status reports the number of stored products.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	n, err := h.catalog.CountProducts(r.Context())
	if err != nil {
		h.fail(w, r, "count products", err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "produtos": n})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	corrID := api.CorrelationID(r.Context())
	h.logger.Error("admin operation failed", zap.String("op", op), zap.String("correlation_id", corrID), zap.Error(err))
	api.WriteError(w, http.StatusInternalServerError, &api.Error{
		Status:        "error",
		Message:       fmt.Sprintf("failed to %s: %s", op, err),
		CorrelationID: corrID,
		Category:      api.CategoryInternalError,
	})
}

// ResetData clears the catalog, re-seeds it and purges cached slug lookups
// so stale ids are not served after the reseed.
func ResetData(ctx context.Context, catalog Catalog, cache Purger) error {
	if err := catalog.Reset(ctx); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}
	if err := seed.Seed(ctx, catalog); err != nil {
		return fmt.Errorf("re-seed: %w", err)
	}
	if cache != nil {
		if err := cache.Purge(ctx); err != nil {
			return fmt.Errorf("purge slug cache: %w", err)
		}
	}
	return nil
}
