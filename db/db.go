// Package db stores the tables of games so they can be retrieved after the server restarts.
package db

import (
	"context"
	"fmt"
	"time"
)

// Config contains common properties of databases.
type Config struct {
	// QueryPeriod is the maximum amount of time a single call to the database can take.
	QueryPeriod time.Duration
}

// Validate returns an error if the configuration cannot be used.
func (cfg Config) Validate() error {
	switch {
	case cfg.QueryPeriod <= 0:
		return fmt.Errorf("positive query period required")
	}
	return nil
}

// WithTimeout runs the function with a context that times out after the query period.
func (cfg Config) WithTimeout(ctx context.Context, f func(ctx context.Context) error) error {
	ctx, cancelFunc := context.WithTimeout(ctx, cfg.QueryPeriod)
	defer cancelFunc()
	return f(ctx)
}
