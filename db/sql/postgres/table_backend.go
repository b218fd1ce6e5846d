// Package postgres stores tables in a Postgres SQL database.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jacobpatterson1549/selene-azul/db/sql"
	"github.com/jacobpatterson1549/selene-azul/db/table"
	"github.com/lib/pq"
)

type (
	// TableBackend manages table records with stored functions on a Postgres database.
	TableBackend struct {
		Database
	}

	// Database contains methods to create, read, update, and delete data.
	Database interface {
		// Setup initializes the database by reading the files.
		Setup(ctx context.Context, files []io.Reader) error
		// Query reads from the database without updating it.
		Query(ctx context.Context, q sql.Query, dest ...any) error
		// Exec makes a change to existing data, creating/modifying/removing it.
		Exec(ctx context.Context, queries ...sql.Query) error
	}
)

// noDataFound is the error code the stored functions raise when no table has the id.
const noDataFound pq.ErrorCode = "P0002"

// DriverName is the name lib/pq registers its driver as.
const DriverName = "postgres"

// NewTableBackend creates a backend on the database and runs the setup files.
func NewTableBackend(ctx context.Context, d Database, setupFiles ...io.Reader) (*TableBackend, error) {
	if d == nil {
		return nil, fmt.Errorf("creating postgres table backend: database required")
	}
	if err := d.Setup(ctx, setupFiles); err != nil {
		return nil, fmt.Errorf("setting up postgres table backend: %w", err)
	}
	tb := TableBackend{
		Database: d,
	}
	return &tb, nil
}

// Create adds the table record.
func (tb *TableBackend) Create(ctx context.Context, r table.Record) error {
	q := sql.NewExecFunction("table_create", r.ID, r.State, r.CreatedAt, r.ModifiedAt)
	if err := tb.Database.Exec(ctx, q); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	return nil
}

// Read queries the database for the table record by id.
func (tb *TableBackend) Read(ctx context.Context, id string) (*table.Record, error) {
	cols := []string{
		"id",
		"state",
		"created_at",
		"modified_at",
	}
	q := sql.NewQueryFunction("table_read", cols, id)
	var r table.Record
	if err := tb.Database.Query(ctx, q, &r.ID, &r.State, &r.CreatedAt, &r.ModifiedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, table.ErrNotFound
		}
		return nil, fmt.Errorf("querying table: %w", err)
	}
	return &r, nil
}

// Update replaces the state of the table record.
func (tb *TableBackend) Update(ctx context.Context, r table.Record) error {
	q := sql.NewExecFunction("table_update", r.ID, r.State, r.ModifiedAt)
	if err := tb.Database.Exec(ctx, q); err != nil {
		return notFoundOr(fmt.Errorf("updating table: %w", err))
	}
	return nil
}

// Delete removes the table record.
func (tb *TableBackend) Delete(ctx context.Context, id string) error {
	q := sql.NewExecFunction("table_delete", id)
	if err := tb.Database.Exec(ctx, q); err != nil {
		return notFoundOr(fmt.Errorf("deleting table: %w", err))
	}
	return nil
}

// notFoundOr converts errors raised by stored functions for missing tables into table.ErrNotFound.
func notFoundOr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == noDataFound {
		return table.ErrNotFound
	}
	return err
}
