// Package cache keeps slug to id lookups for brands and categories, in
// process or in Redis.
package cache

import (
	"context"

	"github.com/johnwards/vitrine/internal/listing"
)

// Cache stores slug ids under keys built with Key.
type Cache interface {
	// GetMulti returns the entries found; missing keys are absent.
	GetMulti(ctx context.Context, keys []string) (map[string]int64, error)
	SetMulti(ctx context.Context, entries map[string]int64) error
	// Purge drops every entry.
	Purge(ctx context.Context) error
}

// Key is the cache key of a slug.
func Key(kind listing.Kind, slug string) string {
	return string(kind) + ":" + slug
}
