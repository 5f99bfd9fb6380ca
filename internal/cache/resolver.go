package cache

import (
	"context"

	"go.uber.org/zap"

	"github.com/johnwards/vitrine/internal/listing"
)

// Resolver serves slug lookups from a Cache and sends misses to the next
// resolver, writing what it finds back. Cache failures are logged and
// treated as misses.
type Resolver struct {
	next   listing.Resolver
	cache  Cache
	logger *zap.Logger
}

// NewResolver wraps next with c.
func NewResolver(next listing.Resolver, c Cache, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{next: next, cache: c, logger: logger}
}

// Resolve implements listing.Resolver.
func (r *Resolver) Resolve(ctx context.Context, kind listing.Kind, slugs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(slugs))
	if len(slugs) == 0 {
		return out, nil
	}

	keys := make([]string, len(slugs))
	for i, s := range slugs {
		keys[i] = Key(kind, s)
	}
	hits, err := r.cache.GetMulti(ctx, keys)
	if err != nil {
		r.logger.Warn("slug cache read failed", zap.String("kind", string(kind)), zap.Error(err))
		hits = nil
	}

	var misses []string
	for i, s := range slugs {
		if id, ok := hits[keys[i]]; ok {
			out[s] = id
			continue
		}
		misses = append(misses, s)
	}
	if len(misses) == 0 {
		return out, nil
	}

	found, err := r.next.Resolve(ctx, kind, misses)
	if err != nil {
		return nil, err
	}
	fill := make(map[string]int64, len(found))
	for s, id := range found {
		out[s] = id
		fill[Key(kind, s)] = id
	}
	if len(fill) > 0 {
		if err := r.cache.SetMulti(ctx, fill); err != nil {
			r.logger.Warn("slug cache write failed", zap.String("kind", string(kind)), zap.Error(err))
		}
	}
	return out, nil
}

// Purge drops every cached slug.
func (r *Resolver) Purge(ctx context.Context) error {
	return r.cache.Purge(ctx)
}
