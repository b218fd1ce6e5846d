package mongo

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jacobpatterson1549/selene-azul/db"
	"github.com/jacobpatterson1549/selene-azul/db/table"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var testConfig = db.Config{
	QueryPeriod: time.Hour,
}

func TestNewTableBackendValidation(t *testing.T) {
	if _, err := NewTableBackend(context.Background(), db.Config{}, "mongodb://localhost:27017"); err == nil {
		t.Errorf("wanted error for missing query period")
	}
}

func TestTableBackendCreate(t *testing.T) {
	createTests := []struct {
		insertErr error
		wantOk    bool
	}{
		{
			insertErr: errors.New("mock insert error"),
		},
		{
			wantOk: true,
		},
	}
	for i, test := range createTests {
		want := table.Record{ID: "t1", State: "{}", CreatedAt: 1}
		tb := TableBackend{
			Tables: mockCollection{
				insertOneFunc: func(ctx context.Context, document any) (*mongo.InsertOneResult, error) {
					if _, ok := ctx.Deadline(); !ok {
						t.Errorf("Test %v: wanted deadline on context", i)
					}
					if !reflect.DeepEqual(want, document) {
						t.Errorf("Test %v: wanted %v inserted, got %v", i, want, document)
					}
					return &mongo.InsertOneResult{InsertedID: want.ID}, test.insertErr
				},
			},
			Config: testConfig,
		}
		err := tb.Create(context.Background(), want)
		switch {
		case !test.wantOk:
			if err == nil {
				t.Errorf("Test %v: wanted error", i)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		}
	}
}

func TestTableBackendRead(t *testing.T) {
	want := table.Record{ID: "t1", State: `{"round":2}`, CreatedAt: 1, ModifiedAt: 2}
	readTests := []struct {
		document     any
		findErr      error
		wantOk       bool
		wantNotFound bool
	}{
		{
			findErr:      mongo.ErrNoDocuments,
			wantNotFound: true,
		},
		{
			findErr: errors.New("mock find error"),
		},
		{
			document: want,
			wantOk:   true,
		},
	}
	for i, test := range readTests {
		tb := TableBackend{
			Tables: mockCollection{
				findOneFunc: func(ctx context.Context, filter any) *mongo.SingleResult {
					wantFilter := bson.D{{Key: "_id", Value: "t1"}}
					if !reflect.DeepEqual(wantFilter, filter) {
						t.Errorf("Test %v: wanted filter %v, got %v", i, wantFilter, filter)
					}
					document := test.document
					if document == nil {
						document = bson.D{}
					}
					return mongo.NewSingleResultFromDocument(document, test.findErr, nil)
				},
			},
			Config: testConfig,
		}
		got, err := tb.Read(context.Background(), "t1")
		switch {
		case !test.wantOk:
			if err == nil {
				t.Errorf("Test %v: wanted error", i)
			}
			if test.wantNotFound != errors.Is(err, table.ErrNotFound) {
				t.Errorf("Test %v: wanted not found to be %v, got %v", i, test.wantNotFound, err)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case !reflect.DeepEqual(want, *got):
			t.Errorf("Test %v: wanted %v, got %v", i, want, *got)
		}
	}
}

func TestTableBackendUpdate(t *testing.T) {
	updateTests := []struct {
		matched      int64
		updateErr    error
		wantOk       bool
		wantNotFound bool
	}{
		{
			updateErr: errors.New("mock update error"),
		},
		{
			wantNotFound: true,
		},
		{
			matched: 1,
			wantOk:  true,
		},
	}
	for i, test := range updateTests {
		tb := TableBackend{
			Tables: mockCollection{
				updateOneFunc: func(ctx context.Context, filter, update any) (*mongo.UpdateResult, error) {
					wantUpdate := bson.D{{Key: "$set", Value: bson.D{
						{Key: "state", Value: "{}"},
						{Key: "modifiedAt", Value: int64(9)},
					}}}
					if !reflect.DeepEqual(wantUpdate, update) {
						t.Errorf("Test %v: wanted update %v, got %v", i, wantUpdate, update)
					}
					return &mongo.UpdateResult{MatchedCount: test.matched}, test.updateErr
				},
			},
			Config: testConfig,
		}
		err := tb.Update(context.Background(), table.Record{ID: "t1", State: "{}", ModifiedAt: 9})
		switch {
		case !test.wantOk:
			if err == nil {
				t.Errorf("Test %v: wanted error", i)
			}
			if test.wantNotFound != errors.Is(err, table.ErrNotFound) {
				t.Errorf("Test %v: wanted not found to be %v, got %v", i, test.wantNotFound, err)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		}
	}
}

func TestTableBackendDelete(t *testing.T) {
	deleteTests := []struct {
		deleted      int64
		deleteErr    error
		wantOk       bool
		wantNotFound bool
	}{
		{
			deleteErr: errors.New("mock delete error"),
		},
		{
			wantNotFound: true,
		},
		{
			deleted: 1,
			wantOk:  true,
		},
	}
	for i, test := range deleteTests {
		tb := TableBackend{
			Tables: mockCollection{
				deleteOneFunc: func(ctx context.Context, filter any) (*mongo.DeleteResult, error) {
					return &mongo.DeleteResult{DeletedCount: test.deleted}, test.deleteErr
				},
			},
			Config: testConfig,
		}
		err := tb.Delete(context.Background(), "t1")
		switch {
		case !test.wantOk:
			if err == nil {
				t.Errorf("Test %v: wanted error", i)
			}
			if test.wantNotFound != errors.Is(err, table.ErrNotFound) {
				t.Errorf("Test %v: wanted not found to be %v, got %v", i, test.wantNotFound, err)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		}
	}
}
