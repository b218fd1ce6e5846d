// Package mongo stores tables in a mongodb collection.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jacobpatterson1549/selene-azul/db"
	"github.com/jacobpatterson1549/selene-azul/db/table"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	databaseName    = "selene-azul-db"
	collectionName  = "tables"
	idField         = "_id"
	stateField      = "state"
	modifiedAtField = "modifiedAt"
)

type (
	// TableBackend is a backend manager for a tables collection.
	TableBackend struct {
		Tables Collection
		db.Config
	}

	// Collection is the part of a *mongo.Collection the backend uses.
	Collection interface {
		InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
		FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
		UpdateOne(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
		DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	}
)

// NewTableBackend connects to the database and creates a backend manager for its tables collection.
func NewTableBackend(ctx context.Context, cfg db.Config, databaseURL string) (*TableBackend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating mongo table backend: validation: %w", err)
	}
	clientOptions := options.Client()
	clientOptions.ApplyURI(databaseURL)
	var client *mongo.Client
	if err := cfg.WithTimeout(ctx, func(ctx context.Context) error {
		var err error
		client, err = mongo.Connect(ctx, clientOptions)
		return err
	}); err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	tables := client.Database(databaseName).Collection(collectionName)
	tb := TableBackend{
		Tables: tables,
		Config: cfg,
	}
	return &tb, nil
}

// Create adds the record.
func (tb *TableBackend) Create(ctx context.Context, r table.Record) error {
	if err := tb.WithTimeout(ctx, func(ctx context.Context) error {
		_, err := tb.Tables.InsertOne(ctx, r)
		return err
	}); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	return nil
}

// Read gets the record by id.
func (tb *TableBackend) Read(ctx context.Context, id string) (*table.Record, error) {
	filter := d(e(idField, id))
	var r table.Record
	if err := tb.WithTimeout(ctx, func(ctx context.Context) error {
		result := tb.Tables.FindOne(ctx, filter)
		return result.Decode(&r)
	}); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, table.ErrNotFound
		}
		return nil, fmt.Errorf("reading table: %w", err)
	}
	return &r, nil
}

// Update sets the state of the record with the same id.
func (tb *TableBackend) Update(ctx context.Context, r table.Record) error {
	filter := d(e(idField, r.ID))
	update := d(e("$set", d(
		e(stateField, r.State),
		e(modifiedAtField, r.ModifiedAt),
	)))
	var matched int64
	if err := tb.WithTimeout(ctx, func(ctx context.Context) error {
		result, err := tb.Tables.UpdateOne(ctx, filter, update)
		if err != nil {
			return err
		}
		matched = result.MatchedCount
		return nil
	}); err != nil {
		return fmt.Errorf("updating table: %w", err)
	}
	if matched == 0 {
		return table.ErrNotFound
	}
	return nil
}

// Delete removes the record.
func (tb *TableBackend) Delete(ctx context.Context, id string) error {
	filter := d(e(idField, id))
	var deleted int64
	if err := tb.WithTimeout(ctx, func(ctx context.Context) error {
		result, err := tb.Tables.DeleteOne(ctx, filter)
		if err != nil {
			return err
		}
		deleted = result.DeletedCount
		return nil
	}); err != nil {
		return fmt.Errorf("deleting table: %w", err)
	}
	if deleted == 0 {
		return table.ErrNotFound
	}
	return nil
}

// d is a helper function to create bson.D elements.
func d(e ...bson.E) bson.D {
	return bson.D(e)
}

// e is a helper function to create bson.E elements.
func e(key string, value any) bson.E {
	return bson.E{Key: key, Value: value}
}
