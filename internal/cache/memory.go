package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory is an in-process LRU cache whose entries expire after a TTL.
type Memory struct {
	lru *expirable.LRU[string, int64]
}

// NewMemory returns a cache holding at most size entries for ttl each.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = 1024
	}
	return &Memory{lru: expirable.NewLRU[string, int64](size, nil, ttl)}
}

func (m *Memory) GetMulti(_ context.Context, keys []string) (map[string]int64, error) {
	out := make(map[string]int64, len(keys))
	for _, k := range keys {
		if v, ok := m.lru.Get(k); ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *Memory) SetMulti(_ context.Context, entries map[string]int64) error {
	for k, v := range entries {
		m.lru.Add(k, v)
	}
	return nil
}

func (m *Memory) Purge(_ context.Context) error {
	m.lru.Purge()
	return nil
}

// Len returns the number of live entries.
func (m *Memory) Len() int { return m.lru.Len() }
