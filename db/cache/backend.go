// Package cache keeps recently used table records in memory in front of a slower backend.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/jacobpatterson1549/selene-azul/db/table"
)

type (
	// Backend is a read-through, write-through cache of table records.
	Backend struct {
		table.Backend
		cache *ristretto.Cache
		ttl   time.Duration
	}

	// Config contains the properties to create a cache.
	Config struct {
		// MaxCost is the maximum number of bytes of record states to keep.
		MaxCost int64
		// TTL is how long a record is kept after it is last saved or read from the backend.  Zero keeps records until they are evicted.
		TTL time.Duration
	}
)

// NewBackend creates a cache in front of the backend.
func (cfg Config) NewBackend(backend table.Backend) (*Backend, error) {
	if err := cfg.validate(backend); err != nil {
		return nil, fmt.Errorf("creating cache backend: validation: %w", err)
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * cfg.MaxCost / 1024,
		MaxCost:     cfg.MaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("creating ristretto cache: %w", err)
	}
	b := Backend{
		Backend: backend,
		cache:   c,
		ttl:     cfg.TTL,
	}
	return &b, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate(backend table.Backend) error {
	switch {
	case backend == nil:
		return fmt.Errorf("backend required")
	case cfg.MaxCost < 1024:
		return fmt.Errorf("max cost of at least 1024 bytes required")
	case cfg.TTL < 0:
		return fmt.Errorf("non-negative ttl required")
	}
	return nil
}

// Create adds the record to the backend and the cache.
func (b *Backend) Create(ctx context.Context, r table.Record) error {
	if err := b.Backend.Create(ctx, r); err != nil {
		return err
	}
	b.set(r)
	return nil
}

// Read gets the record from the cache, reading it from the backend if it is not cached.
func (b *Backend) Read(ctx context.Context, id string) (*table.Record, error) {
	if v, ok := b.cache.Get(id); ok {
		if r, ok := v.(table.Record); ok {
			return &r, nil
		}
	}
	r, err := b.Backend.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	b.set(*r)
	return r, nil
}

// Update saves the record to the backend and the cache.  The record is removed from the cache if the backend cannot save it.
func (b *Backend) Update(ctx context.Context, r table.Record) error {
	if err := b.Backend.Update(ctx, r); err != nil {
		b.cache.Del(r.ID)
		return err
	}
	b.set(r)
	return nil
}

// Delete removes the record from the backend and the cache.
func (b *Backend) Delete(ctx context.Context, id string) error {
	b.cache.Del(id)
	return b.Backend.Delete(ctx, id)
}

// Close stops the cache.
func (b *Backend) Close() {
	b.cache.Close()
}

// set caches the record.  The cost is the length of its state.
func (b *Backend) set(r table.Record) {
	cost := int64(len(r.State))
	b.cache.SetWithTTL(r.ID, r, cost, b.ttl)
}
