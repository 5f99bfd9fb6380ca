// Package browse drives a product listing: it owns the filter state, mirrors
// it into the URL and keeps the displayed products in step with the latest
// request.
package browse

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnwards/vitrine/internal/domain"
	"github.com/johnwards/vitrine/internal/listing"
)

// FetchErrorMessage is shown to shoppers when products cannot be loaded.
const FetchErrorMessage = "Não foi possível carregar os produtos. Tente novamente mais tarde."

// Status is the loading state of the view.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Fetcher runs a listing query against the catalog.
type Fetcher interface {
	Find(ctx context.Context, q listing.Query) (*domain.ProductPage, error)
}

// FetchError wraps a failed product load.
type FetchError struct {
	RequestID uint64
	Err       error
}

func (e *FetchError) Error() string { return "fetch products: " + e.Err.Error() }

func (e *FetchError) Unwrap() error { return e.Err }

// Retryable reports whether Retry may succeed. Every fetch failure is.
func (e *FetchError) Retryable() bool { return true }

// View is a snapshot of what the listing shows.
type View struct {
	RequestID uint64
	State     listing.State
	URL       string
	Query     listing.Query
	Status    Status
	Products  []*domain.Product
	Total     int
	Err       error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithTimeout bounds each fetch. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// Session is a browse session. It is safe for concurrent use; the lock is
// never held while a fetch is in flight.
type Session struct {
	fetcher  Fetcher
	resolver listing.Resolver
	logger   *zap.Logger
	timeout  time.Duration

	mu     sync.Mutex
	latest uint64
	view   View
}

// New returns a session at the default state. Nothing is loaded until the
// first operation.
func New(f Fetcher, r listing.Resolver, opts ...Option) *Session {
	s := &Session{fetcher: f, resolver: r, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	st := listing.NewState()
	s.view = View{State: st, URL: st.URL(), Status: StatusIdle}
	return s
}

// View returns the current snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Navigate replaces the state with the one encoded in values, as on a deep
// link or history navigation, and loads it.
func (s *Session) Navigate(ctx context.Context, values url.Values) (View, error) {
	next := listing.Decode(values)
	return s.change(ctx, func(listing.State) listing.State { return next })
}

// ToggleFilter flips a filter value and reloads.
func (s *Session) ToggleFilter(ctx context.Context, dim listing.Dimension, value string) (View, error) {
	return s.change(ctx, func(st listing.State) listing.State { return st.ToggleFilter(dim, value) })
}

// SetSort changes the sort order and reloads.
func (s *Session) SetSort(ctx context.Context, order listing.SortOrder) (View, error) {
	return s.change(ctx, func(st listing.State) listing.State { return st.SetSort(order) })
}

// SetSearchQuery changes the search text and reloads.
func (s *Session) SetSearchQuery(ctx context.Context, text string) (View, error) {
	return s.change(ctx, func(st listing.State) listing.State { return st.SetSearchQuery(text) })
}

// ClearAll drops every filter and reloads.
func (s *Session) ClearAll(ctx context.Context) (View, error) {
	return s.change(ctx, func(st listing.State) listing.State { return st.ClearAll() })
}

// SetPage moves to page n and reloads.
func (s *Session) SetPage(ctx context.Context, n int) (View, error) {
	return s.change(ctx, func(st listing.State) listing.State { return st.SetPage(n) })
}

// SetPageSize changes the page size and reloads.
func (s *Session) SetPageSize(ctx context.Context, n int) (View, error) {
	return s.change(ctx, func(st listing.State) listing.State { return st.SetPageSize(n) })
}

// Retry reloads the current state.
func (s *Session) Retry(ctx context.Context) (View, error) {
	return s.change(ctx, func(st listing.State) listing.State { return st })
}

// change applies fn, marks the view loading under a new request id, fetches
// and applies the result if no newer request started meanwhile. The returned
// error is the *FetchError of this request, if it failed and is still the
// latest.
func (s *Session) change(ctx context.Context, fn func(listing.State) listing.State) (View, error) {
	s.mu.Lock()
	s.latest++
	id := s.latest
	st := fn(s.view.State)
	s.view.RequestID = id
	s.view.State = st
	s.view.URL = st.URL()
	s.view.Status = StatusLoading
	s.view.Err = nil
	s.mu.Unlock()

	q, page, err := s.load(ctx, st)

	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.latest {
		s.logger.Debug("dropping stale listing response",
			zap.Uint64("request_id", id),
			zap.Uint64("latest_id", s.latest),
		)
		return s.view, nil
	}

	s.view.Query = q
	if err != nil {
		fe := &FetchError{RequestID: id, Err: err}
		s.view.Status = StatusError
		s.view.Err = fe
		s.view.Products = nil
		s.view.Total = 0
		s.logger.Warn("listing fetch failed",
			zap.Uint64("request_id", id),
			zap.String("url", s.view.URL),
			zap.Error(err),
		)
		return s.view, fe
	}
	s.view.Status = StatusReady
	s.view.Products = page.Products
	s.view.Total = page.Total
	return s.view, nil
}

func (s *Session) load(ctx context.Context, st listing.State) (listing.Query, *domain.ProductPage, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	q := listing.BuildQuery(ctx, st, s.resolver, s.logger)
	if s.fetcher == nil {
		return q, nil, errors.New("no catalog configured")
	}
	page, err := s.fetcher.Find(ctx, q)
	if err != nil {
		return q, nil, err
	}
	if page == nil {
		page = &domain.ProductPage{}
	}
	return q, page, nil
}
