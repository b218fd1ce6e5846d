package table

import (
	"context"

	tabledb "github.com/jacobpatterson1549/selene-azul/db/table"
	"github.com/jacobpatterson1549/selene-azul/game"
)

type mockDao struct {
	CreateFunc func(ctx context.Context, t tabledb.Table) error
	ReadFunc   func(ctx context.Context, id game.ID) (*tabledb.Table, error)
	UpdateFunc func(ctx context.Context, t tabledb.Table) error
	DeleteFunc func(ctx context.Context, id game.ID) error
}

func (d mockDao) Create(ctx context.Context, t tabledb.Table) error {
	return d.CreateFunc(ctx, t)
}

func (d mockDao) Read(ctx context.Context, id game.ID) (*tabledb.Table, error) {
	return d.ReadFunc(ctx, id)
}

func (d mockDao) Update(ctx context.Context, t tabledb.Table) error {
	return d.UpdateFunc(ctx, t)
}

func (d mockDao) Delete(ctx context.Context, id game.ID) error {
	return d.DeleteFunc(ctx, id)
}
