// Package redis stores tables as json strings in a redis server.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jacobpatterson1549/selene-azul/db"
	"github.com/jacobpatterson1549/selene-azul/db/table"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "selene-azul:table:"

type (
	// TableBackend is a backend manager for table records in redis.
	TableBackend struct {
		Client Client
		// Expiration is how long a table is kept after it is last saved.  Zero keeps tables forever.
		Expiration time.Duration
		db.Config
	}

	// Client is the part of a redis client the backend uses.
	Client interface {
		SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
		SetXX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
		Get(ctx context.Context, key string) *redis.StringCmd
		Del(ctx context.Context, keys ...string) *redis.IntCmd
	}

	// Config contains the properties to connect to a redis server.
	Config struct {
		// Addr is the host:port of the server.
		Addr string
		// Password is optional.
		Password string
		// Expiration is how long a table is kept after it is last saved.
		Expiration time.Duration
		db.Config
	}
)

// NewTableBackend connects to the server and creates a backend manager.
func (cfg Config) NewTableBackend(ctx context.Context) (*TableBackend, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating redis table backend: validation: %w", err)
	}
	cli := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
	})
	if err := cfg.WithTimeout(ctx, func(ctx context.Context) error {
		return cli.Ping(ctx).Err()
	}); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	tb := TableBackend{
		Client:     cli,
		Expiration: cfg.Expiration,
		Config:     cfg.Config,
	}
	return &tb, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate() error {
	switch {
	case len(cfg.Addr) == 0:
		return fmt.Errorf("address required")
	case cfg.Expiration < 0:
		return fmt.Errorf("non-negative expiration required")
	}
	return cfg.Config.Validate()
}

// Create adds the record if no record has its id.
func (tb *TableBackend) Create(ctx context.Context, r table.Record) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding table: %w", err)
	}
	var ok bool
	if err := tb.WithTimeout(ctx, func(ctx context.Context) error {
		var err error
		ok, err = tb.Client.SetNX(ctx, key(r.ID), b, tb.Expiration).Result()
		return err
	}); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	if !ok {
		return fmt.Errorf("creating table: %v already exists", r.ID)
	}
	return nil
}

// Read gets the record by id.
func (tb *TableBackend) Read(ctx context.Context, id string) (*table.Record, error) {
	var s string
	if err := tb.WithTimeout(ctx, func(ctx context.Context) error {
		var err error
		s, err = tb.Client.Get(ctx, key(id)).Result()
		return err
	}); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, table.ErrNotFound
		}
		return nil, fmt.Errorf("reading table: %w", err)
	}
	var r table.Record
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return nil, fmt.Errorf("decoding table: %w", err)
	}
	return &r, nil
}

// Update replaces the record with the same id, resetting its expiration.
func (tb *TableBackend) Update(ctx context.Context, r table.Record) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding table: %w", err)
	}
	var ok bool
	if err := tb.WithTimeout(ctx, func(ctx context.Context) error {
		var err error
		ok, err = tb.Client.SetXX(ctx, key(r.ID), b, tb.Expiration).Result()
		return err
	}); err != nil {
		return fmt.Errorf("updating table: %w", err)
	}
	if !ok {
		return table.ErrNotFound
	}
	return nil
}

// Delete removes the record.
func (tb *TableBackend) Delete(ctx context.Context, id string) error {
	var n int64
	if err := tb.WithTimeout(ctx, func(ctx context.Context) error {
		var err error
		n, err = tb.Client.Del(ctx, key(id)).Result()
		return err
	}); err != nil {
		return fmt.Errorf("deleting table: %w", err)
	}
	if n == 0 {
		return table.ErrNotFound
	}
	return nil
}

// key is the redis key for the table id.
func key(id string) string {
	return keyPrefix + id
}
