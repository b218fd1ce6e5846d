// Package firestore stores tables in a google cloud firestore database.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/jacobpatterson1549/selene-azul/db"
	"github.com/jacobpatterson1549/selene-azul/db/table"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	serviceName     = "selene-azul"
	collectionName  = "tables"
	stateField      = "state"
	modifiedAtField = "modifiedAt"
)

// TableBackend is a backend manager for a tables collection.
type TableBackend struct {
	client *firestore.Client
	db.Config
}

// NewTableBackend creates a backend manager for tables.
func NewTableBackend(ctx context.Context, cfg db.Config, projectID string) (*TableBackend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating firestore table backend: validation: %w", err)
	}
	client, err := firestore.NewClient(ctx, projectID) // do not timeout context - the client is used by the backend
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	tb := TableBackend{
		client: client,
		Config: cfg,
	}
	return &tb, nil
}

func (tb *TableBackend) tablesCollection() *firestore.CollectionRef {
	return tb.client.Collection("services").Doc(serviceName).Collection(collectionName)
}

// Create adds the record.  It returns an error if the table already exists.
func (tb *TableBackend) Create(ctx context.Context, r table.Record) error {
	if err := tb.WithTimeout(ctx, func(ctx context.Context) error {
		docRef := tb.tablesCollection().Doc(r.ID)
		_, err := docRef.Create(ctx, r)
		return err
	}); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	return nil
}

// Read gets the record by id.
func (tb *TableBackend) Read(ctx context.Context, id string) (*table.Record, error) {
	var r table.Record
	if err := tb.WithTimeout(ctx, func(ctx context.Context) error {
		docRef := tb.tablesCollection().Doc(id)
		snapshot, err := docRef.Get(ctx)
		if err != nil {
			if snapshot != nil && !snapshot.Exists() {
				return table.ErrNotFound
			}
			return err
		}
		return snapshot.DataTo(&r)
	}); err != nil {
		if err == table.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("reading table: %w", err)
	}
	r.ID = id
	return &r, nil
}

// Update sets the state of the record with the same id.
func (tb *TableBackend) Update(ctx context.Context, r table.Record) error {
	if err := tb.WithTimeout(ctx, func(ctx context.Context) error {
		docRef := tb.tablesCollection().Doc(r.ID)
		u := []firestore.Update{
			{
				Path:  stateField,
				Value: r.State,
			},
			{
				Path:  modifiedAtField,
				Value: r.ModifiedAt,
			},
		}
		_, err := docRef.Update(ctx, u) // returns a NotFound error if the table does not exist
		return err
	}); err != nil {
		return notFoundOr(fmt.Errorf("updating table: %w", err))
	}
	return nil
}

// Delete removes the record.
func (tb *TableBackend) Delete(ctx context.Context, id string) error {
	if err := tb.WithTimeout(ctx, func(ctx context.Context) error {
		docRef := tb.tablesCollection().Doc(id)
		_, err := docRef.Delete(ctx, firestore.Exists)
		return err
	}); err != nil {
		return notFoundOr(fmt.Errorf("deleting table: %w", err))
	}
	return nil
}

// Close closes the client.
func (tb *TableBackend) Close() error {
	return tb.client.Close()
}

// notFoundOr converts NotFound errors from the client into table.ErrNotFound.
func notFoundOr(err error) error {
	if s, ok := status.FromError(err); ok && s.Code() == codes.NotFound {
		return table.ErrNotFound
	}
	return err
}
