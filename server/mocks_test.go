package server

import (
	"context"
	"sync"

	tabledb "github.com/jacobpatterson1549/selene-azul/db/table"
	"github.com/jacobpatterson1549/selene-azul/game"
	"github.com/jacobpatterson1549/selene-azul/game/engine"
	"github.com/jacobpatterson1549/selene-azul/server/auth"
)

type mockTokenizer struct {
	CreateFunc func(s auth.Seat) (string, error)
	ReadFunc   func(tokenString string) (*auth.Seat, error)
}

func (m mockTokenizer) Create(s auth.Seat) (string, error) {
	return m.CreateFunc(s)
}

func (m mockTokenizer) Read(tokenString string) (*auth.Seat, error) {
	return m.ReadFunc(tokenString)
}

type mockTableRunner struct {
	RunFunc       func(ctx context.Context, wg *sync.WaitGroup) error
	CreateFunc    func(ctx context.Context, seed int64, rules game.Rules, playerIDs ...string) (*tabledb.Table, error)
	GetFunc       func(ctx context.Context, id game.ID) (*tabledb.Table, error)
	MoveFunc      func(ctx context.Context, id game.ID, playerIndex int, m engine.Move) (*engine.MoveResult, error)
	DeleteFunc    func(ctx context.Context, id game.ID) error
	NumLoadedFunc func() int
}

func (m mockTableRunner) Run(ctx context.Context, wg *sync.WaitGroup) error {
	return m.RunFunc(ctx, wg)
}

func (m mockTableRunner) Create(ctx context.Context, seed int64, rules game.Rules, playerIDs ...string) (*tabledb.Table, error) {
	return m.CreateFunc(ctx, seed, rules, playerIDs...)
}

func (m mockTableRunner) Get(ctx context.Context, id game.ID) (*tabledb.Table, error) {
	return m.GetFunc(ctx, id)
}

func (m mockTableRunner) Move(ctx context.Context, id game.ID, playerIndex int, mv engine.Move) (*engine.MoveResult, error) {
	return m.MoveFunc(ctx, id, playerIndex, mv)
}

func (m mockTableRunner) Delete(ctx context.Context, id game.ID) error {
	return m.DeleteFunc(ctx, id)
}

func (m mockTableRunner) NumLoaded() int {
	return m.NumLoadedFunc()
}
