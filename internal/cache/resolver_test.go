package cache_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/johnwards/vitrine/internal/cache"
	"github.com/johnwards/vitrine/internal/listing"
)

// countingResolver serves fixed ids and counts the slugs it was asked for.
type countingResolver struct {
	ids     map[string]int64
	err     error
	lookups atomic.Int32
}

func (c *countingResolver) Resolve(_ context.Context, _ listing.Kind, slugs []string) (map[string]int64, error) {
	c.lookups.Add(int32(len(slugs)))
	if c.err != nil {
		return nil, c.err
	}
	out := map[string]int64{}
	for _, s := range slugs {
		if id, ok := c.ids[s]; ok {
			out[s] = id
		}
	}
	return out, nil
}

// brokenCache fails every call.
type brokenCache struct{}

func (brokenCache) GetMulti(context.Context, []string) (map[string]int64, error) {
	return nil, errors.New("cache down")
}
func (brokenCache) SetMulti(context.Context, map[string]int64) error { return errors.New("cache down") }
func (brokenCache) Purge(context.Context) error { return errors.New("cache down") }

func TestResolverServesFromCacheAfterFirstCall(t *testing.T) {
	ctx := context.Background()
	next := &countingResolver{ids: map[string]int64{"nike": 1, "adidas": 2}}
	r := cache.NewResolver(next, cache.NewMemory(16, time.Minute), nil)

	got, err := r.Resolve(ctx, listing.KindBrand, []string{"nike", "adidas"})
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"nike": 1, "adidas": 2}, got)
	require.EqualValues(t, 2, next.lookups.Load())

	got, err = r.Resolve(ctx, listing.KindBrand, []string{"adidas", "nike"})
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"nike": 1, "adidas": 2}, got)
	require.EqualValues(t, 2, next.lookups.Load(), "second lookup should be cached")

	// Only the miss goes to the next resolver.
	_, err = r.Resolve(ctx, listing.KindBrand, []string{"nike", "puma"})
	require.NoError(t, err)
	require.EqualValues(t, 3, next.lookups.Load())
}

func TestResolverKindsDoNotCollide(t *testing.T) {
	ctx := context.Background()
	next := &countingResolver{ids: map[string]int64{"esporte": 4}}
	r := cache.NewResolver(next, cache.NewMemory(16, time.Minute), nil)

	_, err := r.Resolve(ctx, listing.KindBrand, []string{"esporte"})
	require.NoError(t, err)
	_, err = r.Resolve(ctx, listing.KindCategory, []string{"esporte"})
	require.NoError(t, err)
	require.EqualValues(t, 2, next.lookups.Load())
}

func TestResolverCacheFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	next := &countingResolver{ids: map[string]int64{"tenis": 10}}
	r := cache.NewResolver(next, brokenCache{}, nil)

	got, err := r.Resolve(ctx, listing.KindCategory, []string{"tenis"})
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"tenis": 10}, got)
}

func TestResolverPropagatesBackendError(t *testing.T) {
	ctx := context.Background()
	next := &countingResolver{err: errors.New("db down")}
	r := cache.NewResolver(next, cache.NewMemory(16, time.Minute), nil)

	_, err := r.Resolve(ctx, listing.KindCategory, []string{"tenis"})
	require.Error(t, err)
}

func TestResolverPurge(t *testing.T) {
	ctx := context.Background()
	next := &countingResolver{ids: map[string]int64{"nike": 1}}
	r := cache.NewResolver(next, cache.NewMemory(16, time.Minute), nil)

	_, err := r.Resolve(ctx, listing.KindBrand, []string{"nike"})
	require.NoError(t, err)
	require.NoError(t, r.Purge(ctx))
	_, err = r.Resolve(ctx, listing.KindBrand, []string{"nike"})
	require.NoError(t, err)
	require.EqualValues(t, 2, next.lookups.Load())
}
