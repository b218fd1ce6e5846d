package table

import (
	"context"
	"errors"
	"fmt"

	"github.com/jacobpatterson1549/selene-azul/game"
)

type (
	// Dao contains CRUD operations for tables.
	Dao struct {
		backend Backend
	}

	// Backend is the storage for table records.
	// Read, Update, and Delete return ErrNotFound when no record has the id.
	Backend interface {
		// Create adds a record.  It returns an error if a record with the id already exists.
		Create(ctx context.Context, r Record) error
		// Read gets the record with the id.
		Read(ctx context.Context, id string) (*Record, error)
		// Update replaces the record with the same id.
		Update(ctx context.Context, r Record) error
		// Delete removes the record with the id.
		Delete(ctx context.Context, id string) error
	}
)

// NewDao creates a Dao on the specified backend.
func NewDao(backend Backend) (*Dao, error) {
	if err := validate(backend); err != nil {
		return nil, fmt.Errorf("creating table dao: validation: %w", err)
	}
	d := Dao{
		backend: backend,
	}
	return &d, nil
}

// validate checks fields to set up the dao.
func validate(backend Backend) error {
	switch {
	case backend == nil:
		return fmt.Errorf("backend required")
	}
	return nil
}

// Create adds a table.
func (d Dao) Create(ctx context.Context, t Table) error {
	if err := t.validate(); err != nil {
		return fmt.Errorf("creating table: validation: %w", err)
	}
	r, err := t.Record()
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	if err := d.backend.Create(ctx, *r); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	return nil
}

// Read gets the table with the id.
func (d Dao) Read(ctx context.Context, id game.ID) (*Table, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("reading table: id required")
	}
	r, err := d.backend.Read(ctx, string(id))
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	t, err := r.Table()
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	return t, nil
}

// Update saves the latest state of the table.
func (d Dao) Update(ctx context.Context, t Table) error {
	if err := t.validate(); err != nil {
		return fmt.Errorf("updating table: validation: %w", err)
	}
	r, err := t.Record()
	if err != nil {
		return fmt.Errorf("updating table: %w", err)
	}
	if err := d.backend.Update(ctx, *r); err != nil {
		return fmt.Errorf("updating table: %w", err)
	}
	return nil
}

// Delete removes the table.
func (d Dao) Delete(ctx context.Context, id game.ID) error {
	if len(id) == 0 {
		return fmt.Errorf("deleting table: id required")
	}
	if err := d.backend.Delete(ctx, string(id)); err != nil {
		return fmt.Errorf("deleting table: %w", err)
	}
	return nil
}

// IsNotFound reports whether the error is caused by a missing table.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
