// Package products serves the storefront catalog: the filtered listing, its
// facets, product pages and featured products.
package products

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johnwards/vitrine/internal/api"
	"github.com/johnwards/vitrine/internal/browse"
	"github.com/johnwards/vitrine/internal/domain"
	"github.com/johnwards/vitrine/internal/listing"
	"github.com/johnwards/vitrine/internal/store"
)

// FacetErrorMessage is shown when the filter sidebar cannot be loaded.
const FacetErrorMessage = "Não foi possível carregar os filtros. Por favor, tente novamente mais tarde."

const (
	defaultFeatured = 8
	maxFeatured     = 50
)

// Handler handles storefront HTTP requests.
type Handler struct {
	catalog  store.CatalogStore
	resolver listing.Resolver
	logger   *zap.Logger
	timeout  time.Duration
}

// NewHandler creates a Handler. resolver turns brand and category slugs into
// ids; timeout bounds each listing fetch.
func NewHandler(catalog store.CatalogStore, resolver listing.Resolver, logger *zap.Logger, timeout time.Duration) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{catalog: catalog, resolver: resolver, logger: logger, timeout: timeout}
}

// Routes registers the storefront endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get(listing.BasePath, h.List)
	r.Get(listing.BasePath+"/filtros", h.Facets)
	r.Get(listing.BasePath+"/{slug}", h.Get)
	r.Get("/destaques", h.Featured)
}

// List handles GET /produtos.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	logger := h.logger.With(zap.String("correlation_id", corrID))

	sess := browse.New(h.catalog, h.resolver, browse.WithLogger(logger), browse.WithTimeout(h.timeout))
	view, err := sess.Navigate(r.Context(), r.URL.Query())
	if err != nil {
		var fe *browse.FetchError
		if errors.As(err, &fe) && fe.Retryable() {
			api.WriteError(w, http.StatusServiceUnavailable, api.NewFetchError(browse.FetchErrorMessage, corrID, view.URL))
			return
		}
		logger.Error("listing failed", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(corrID))
		return
	}

	names := h.titleNames(r.Context(), view.State)
	api.WriteJSON(w, http.StatusOK, newListingResponse(view, names))
}

// Facets handles GET /produtos/filtros.
func (h *Handler) Facets(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	st := listing.Decode(r.URL.Query())

	var (
		brands     []domain.Brand
		categories []domain.Category
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		brands, err = h.catalog.Brands(ctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = h.catalog.Categories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.Warn("facet load failed", zap.String("correlation_id", corrID), zap.Error(err))
		api.WriteError(w, http.StatusServiceUnavailable, api.NewFetchError(FacetErrorMessage, corrID, r.URL.RequestURI()))
		return
	}

	api.WriteJSON(w, http.StatusOK, newFacetsResponse(st, brands, categories))
}

// Get handles GET /produtos/{slug}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))

	p, err := h.catalog.ProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Produto não encontrado: "+slug, corrID))
			return
		}
		h.logger.Error("product lookup failed", zap.String("slug", slug), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(corrID))
		return
	}
	api.WriteJSON(w, http.StatusOK, p.Detail())
}

// Featured handles GET /destaques.
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	limit := api.IntParam(r, "limite", defaultFeatured, maxFeatured)

	ps, err := h.catalog.Featured(r.Context(), limit)
	if err != nil {
		h.logger.Warn("featured load failed", zap.String("correlation_id", corrID), zap.Error(err))
		api.WriteError(w, http.StatusServiceUnavailable, api.NewFetchError(browse.FetchErrorMessage, corrID, r.URL.RequestURI()))
		return
	}
	page := domain.ProductPage{Products: ps, Total: len(ps)}
	api.WriteJSON(w, http.StatusOK, map[string]any{"produtos": page.Cards()})
}

// titleNames loads display names only when the title needs one. A failure
// is logged and leaves the generic title.
func (h *Handler) titleNames(ctx context.Context, st listing.State) listing.Names {
	var names listing.Names
	if st.Filters.HasSearch() {
		return names
	}
	switch {
	case len(st.Filters.Categories) == 1:
		cs, err := h.catalog.Categories(ctx)
		if err != nil {
			h.logger.Warn("category names unavailable", zap.Error(err))
			return names
		}
		names.Categories = make(map[string]string, len(cs))
		for _, c := range cs {
			names.Categories[c.Slug] = c.Name
		}
	case len(st.Filters.Brands) == 1:
		bs, err := h.catalog.Brands(ctx)
		if err != nil {
			h.logger.Warn("brand names unavailable", zap.Error(err))
			return names
		}
		names.Brands = make(map[string]string, len(bs))
		for _, b := range bs {
			names.Brands[b.Slug] = b.Name
		}
	}
	return names
}
