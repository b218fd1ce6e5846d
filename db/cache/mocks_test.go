package cache

import (
	"context"

	"github.com/jacobpatterson1549/selene-azul/db/table"
)

type mockBackend struct {
	createFunc func(ctx context.Context, r table.Record) error
	readFunc   func(ctx context.Context, id string) (*table.Record, error)
	updateFunc func(ctx context.Context, r table.Record) error
	deleteFunc func(ctx context.Context, id string) error
}

func (m mockBackend) Create(ctx context.Context, r table.Record) error {
	return m.createFunc(ctx, r)
}

func (m mockBackend) Read(ctx context.Context, id string) (*table.Record, error) {
	return m.readFunc(ctx, id)
}

func (m mockBackend) Update(ctx context.Context, r table.Record) error {
	return m.updateFunc(ctx, r)
}

func (m mockBackend) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}
