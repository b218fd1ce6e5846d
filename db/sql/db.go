// Package sql implements a SQL database.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/jacobpatterson1549/selene-azul/db"
)

type (
	// Database is a SQL database with additional configuration.
	Database struct {
		DB *sql.DB
		db.Config
	}

	// DatabaseConfig contains the properties to open a database.
	DatabaseConfig struct {
		// DriverName is the name of a registered database/sql driver, such as "postgres".
		DriverName string
		// DatabaseURL is the data source name the driver connects to.
		DatabaseURL string
		db.Config
	}
)

// ErrNoRows is returned by Query when there are no rows to scan.
var ErrNoRows = sql.ErrNoRows

// NewDatabase opens a database.  The connection is not checked until it is used.
func (cfg DatabaseConfig) NewDatabase() (*Database, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating sql database: validation: %w", err)
	}
	sqlDB, err := sql.Open(cfg.DriverName, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening sql database: %w", err)
	}
	d := Database{
		DB:     sqlDB,
		Config: cfg.Config,
	}
	return &d, nil
}

// validate ensures the configuration has no errors.
func (cfg DatabaseConfig) validate() error {
	switch {
	case len(cfg.DriverName) == 0:
		return fmt.Errorf("driver name required")
	case len(cfg.DatabaseURL) == 0:
		return fmt.Errorf("database url required")
	}
	return cfg.Config.Validate()
}

// Setup initializes the database by reading the files and executing their contents as raw queries.
func (d Database) Setup(ctx context.Context, files []io.Reader) error {
	queries := make([]Query, len(files))
	for i, f := range files {
		b, err := io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("reading sql setup query %v: %w", i, err)
		}
		queries[i] = RawQuery(b)
	}
	if err := d.Exec(ctx, queries...); err != nil {
		return fmt.Errorf("running setup queries: %w", err)
	}
	return nil
}

// Query queries a single row, scanning into the destination array.
// ErrNoRows is returned unwrapped when no row is found.
func (d Database) Query(ctx context.Context, q Query, dest ...any) error {
	return d.WithTimeout(ctx, func(ctx context.Context) error {
		row := d.DB.QueryRowContext(ctx, q.Cmd(), q.Args()...)
		if err := row.Scan(dest...); err != nil {
			if err == sql.ErrNoRows {
				return err
			}
			return fmt.Errorf("querying into destination arguments: %w", err)
		}
		return nil
	})
}

// Exec evaluates multiple queries in a transaction, ensuring each ExecFunction only updates one row.
func (d Database) Exec(ctx context.Context, queries ...Query) error {
	return d.WithTimeout(ctx, func(ctx context.Context) error {
		tx, err := d.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		for i, q := range queries {
			if err := exec(ctx, tx, q); err != nil {
				err = fmt.Errorf("executing query %v: %w", i, err)
				if err2 := tx.Rollback(); err2 != nil {
					return fmt.Errorf("rolling back transaction due to %v: %w", err, err2)
				}
				return err
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing transaction: %w", err)
		}
		return nil
	})
}

// exec runs the query in the transaction.
func exec(ctx context.Context, tx *sql.Tx, q Query) error {
	result, err := tx.ExecContext(ctx, q.Cmd(), q.Args()...)
	if err != nil {
		return err
	}
	f, ok := q.(ExecFunction)
	if !ok {
		return nil
	}
	n, err := result.RowsAffected()
	switch {
	case err != nil:
		return err
	case n != 1:
		return fmt.Errorf("wanted to update 1 row, but updated %d when calling %s", n, f.name)
	}
	return nil
}

// Close closes the database.
func (d Database) Close() error {
	return d.DB.Close()
}
