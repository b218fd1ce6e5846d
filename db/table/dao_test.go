package table

import (
	"context"
	"errors"
	"testing"

	"github.com/jacobpatterson1549/selene-azul/game"
)

func TestNewDao(t *testing.T) {
	newDaoTests := []struct {
		backend Backend
		wantOk  bool
	}{
		{},
		{
			backend: mockBackend{},
			wantOk:  true,
		},
	}
	for i, test := range newDaoTests {
		d, err := NewDao(test.backend)
		switch {
		case err != nil:
			if test.wantOk {
				t.Errorf("Test %v: unwanted error: %v", i, err)
			}
		case !test.wantOk:
			t.Errorf("Test %v: wanted error", i)
		case d.backend == nil:
			t.Errorf("Test %v: backend not set", i)
		}
	}
}

func TestDaoCreate(t *testing.T) {
	createTests := []struct {
		Table
		backendErr error
		wantOk     bool
	}{
		{
			Table: Table{ID: "t1"},
		},
		{
			Table:      testTable(t, "t1"),
			backendErr: errors.New("mock create error"),
		},
		{
			Table:  testTable(t, "t1"),
			wantOk: true,
		},
	}
	for i, test := range createTests {
		var created *Record
		d := Dao{
			backend: mockBackend{
				createFunc: func(ctx context.Context, r Record) error {
					created = &r
					return test.backendErr
				},
			},
		}
		err := d.Create(context.Background(), test.Table)
		switch {
		case err != nil:
			if test.wantOk {
				t.Errorf("Test %v: unwanted error: %v", i, err)
			}
		case !test.wantOk:
			t.Errorf("Test %v: wanted error", i)
		case created == nil || created.ID != string(test.Table.ID):
			t.Errorf("Test %v: wanted record created for table %v, got %v", i, test.Table.ID, created)
		}
	}
}

func TestDaoRead(t *testing.T) {
	want := testTable(t, "t1")
	r, err := want.Record()
	if err != nil {
		t.Fatalf("creating record: %v", err)
	}
	readTests := []struct {
		id         string
		record     *Record
		backendErr error
		wantOk     bool
		notFound   bool
	}{
		{},
		{
			id:         "t1",
			backendErr: ErrNotFound,
			notFound:   true,
		},
		{
			id:     "t1",
			record: &Record{ID: "t1", State: "not json"},
		},
		{
			id:     "t1",
			record: r,
			wantOk: true,
		},
	}
	for i, test := range readTests {
		d := Dao{
			backend: mockBackend{
				readFunc: func(ctx context.Context, id string) (*Record, error) {
					if id != test.id {
						t.Errorf("Test %v: wanted read of %v, got %v", i, test.id, id)
					}
					return test.record, test.backendErr
				},
			},
		}
		got, err := d.Read(context.Background(), game.ID(test.id))
		switch {
		case err != nil:
			if test.wantOk {
				t.Errorf("Test %v: unwanted error: %v", i, err)
			}
			if test.notFound != IsNotFound(err) {
				t.Errorf("Test %v: wanted not found to be %v, got error %v", i, test.notFound, err)
			}
		case !test.wantOk:
			t.Errorf("Test %v: wanted error", i)
		case got.ID != want.ID, got.State.Bag.Seed != want.State.Bag.Seed:
			t.Errorf("Test %v: wanted %v, got %v", i, want, got)
		}
	}
}

func TestDaoUpdate(t *testing.T) {
	updateTests := []struct {
		Table
		backendErr error
		wantOk     bool
	}{
		{},
		{
			Table:      testTable(t, "t1"),
			backendErr: ErrNotFound,
		},
		{
			Table:  testTable(t, "t1"),
			wantOk: true,
		},
	}
	for i, test := range updateTests {
		d := Dao{
			backend: mockBackend{
				updateFunc: func(ctx context.Context, r Record) error {
					return test.backendErr
				},
			},
		}
		err := d.Update(context.Background(), test.Table)
		switch {
		case err != nil:
			if test.wantOk {
				t.Errorf("Test %v: unwanted error: %v", i, err)
			}
		case !test.wantOk:
			t.Errorf("Test %v: wanted error", i)
		}
	}
}

func TestDaoDelete(t *testing.T) {
	deleteTests := []struct {
		id         string
		backendErr error
		wantOk     bool
	}{
		{},
		{
			id:         "t1",
			backendErr: ErrNotFound,
		},
		{
			id:     "t1",
			wantOk: true,
		},
	}
	for i, test := range deleteTests {
		d := Dao{
			backend: mockBackend{
				deleteFunc: func(ctx context.Context, id string) error {
					return test.backendErr
				},
			},
		}
		err := d.Delete(context.Background(), game.ID(test.id))
		switch {
		case err != nil:
			if test.wantOk {
				t.Errorf("Test %v: unwanted error: %v", i, err)
			}
		case !test.wantOk:
			t.Errorf("Test %v: wanted error", i)
		}
	}
}
