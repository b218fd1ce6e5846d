package table

import (
	"context"
	"fmt"
	"sync"
)

// MemoryBackend keeps records in memory.  Records are lost when the server stops.
type MemoryBackend struct {
	mu      sync.Mutex
	records map[string]Record
}

// NewMemoryBackend creates an empty backend.
func NewMemoryBackend() *MemoryBackend {
	b := MemoryBackend{
		records: make(map[string]Record),
	}
	return &b
}

// Create adds the record if no record has its id.
func (b *MemoryBackend) Create(ctx context.Context, r Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.records[r.ID]; ok {
		return fmt.Errorf("table %v already exists", r.ID)
	}
	b.records[r.ID] = r
	return nil
}

// Read returns a copy of the record.
func (b *MemoryBackend) Read(ctx context.Context, id string) (*Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

// Update replaces the record.
func (b *MemoryBackend) Update(ctx context.Context, r Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.records[r.ID]; !ok {
		return ErrNotFound
	}
	b.records[r.ID] = r
	return nil
}

// Delete removes the record.
func (b *MemoryBackend) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.records[id]; !ok {
		return ErrNotFound
	}
	delete(b.records, id)
	return nil
}
