// Package table runs the tables of games being played on the server.
package table

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tabledb "github.com/jacobpatterson1549/selene-azul/db/table"
	"github.com/jacobpatterson1549/selene-azul/game"
	"github.com/jacobpatterson1549/selene-azul/game/engine"
	"github.com/jacobpatterson1549/selene-azul/server/log"
)

type (
	// Runner runs tables.  Each loaded table has a goroutine that applies its moves one at a time.
	Runner struct {
		mu sync.Mutex
		// ctx is the context the runner was run with.  Table goroutines stop when it is done.
		ctx context.Context
		// wg tracks the table goroutines.
		wg *sync.WaitGroup
		// tables maps table ids to the loaded tables.
		tables map[game.ID]*tableRunner
		dao    Dao
		RunnerConfig
	}

	// RunnerConfig is used to create a table Runner.
	RunnerConfig struct {
		// Log is used to log errors and other information.
		Log log.Logger
		// MaxTables is the maximum number of loaded tables.  Tables cannot be created when this many are loaded.
		MaxTables int
		// IdlePeriod is the amount of time a table can go without requests before it is unloaded.
		// The table stays in the dao.
		IdlePeriod time.Duration
		// TimeFunc supplies the current time in seconds since the unix epoch.
		TimeFunc func() int64
		// IDFunc creates the ids of new tables.
		IDFunc func() string
	}

	// Dao stores tables.
	Dao interface {
		Create(ctx context.Context, t tabledb.Table) error
		Read(ctx context.Context, id game.ID) (*tabledb.Table, error)
		Update(ctx context.Context, t tabledb.Table) error
		Delete(ctx context.Context, id game.ID) error
	}

	// tableRunner is the inbound side of a loaded table.
	tableRunner struct {
		in chan request
		// done is closed when the table goroutine stops.
		done chan struct{}
		// loadErr is set before done is closed if the table could not be read.
		loadErr error
	}

	request struct {
		kind        requestKind
		playerIndex int
		move        engine.Move
		reply       chan response
	}

	requestKind int

	response struct {
		table  *tabledb.Table
		result *engine.MoveResult
		err    error
	}
)

const (
	_ requestKind = iota
	getRequest
	moveRequest
	deleteRequest
)

var (
	// ErrInvalid is wrapped by errors for requests that can never succeed.
	ErrInvalid = errors.New("invalid request")
	// ErrFull is returned when a table cannot be created because the maximum number of tables are loaded.
	ErrFull = errors.New("maximum number of tables loaded")
	// ErrNotRunning is returned for requests made before the runner is run or after it stops.
	ErrNotRunning = errors.New("table runner not running")
)

// NewRunner creates a table runner from the config.
func (cfg RunnerConfig) NewRunner(dao Dao) (*Runner, error) {
	if err := cfg.validate(dao); err != nil {
		return nil, fmt.Errorf("creating table runner: validation: %w", err)
	}
	r := Runner{
		tables:       make(map[game.ID]*tableRunner, cfg.MaxTables),
		dao:          dao,
		RunnerConfig: cfg,
	}
	return &r, nil
}

// validate ensures the configuration has no errors.
func (cfg RunnerConfig) validate(dao Dao) error {
	switch {
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case dao == nil:
		return fmt.Errorf("dao required")
	case cfg.MaxTables < 1:
		return fmt.Errorf("must be able to create at least one table")
	case cfg.IdlePeriod <= 0:
		return fmt.Errorf("positive idle period required")
	case cfg.TimeFunc == nil:
		return fmt.Errorf("time func required")
	case cfg.IDFunc == nil:
		return fmt.Errorf("id func required")
	}
	return nil
}

// Run lets the runner handle requests until the context is done.
// The wait group is incremented for each table that is loaded.
func (r *Runner) Run(ctx context.Context, wg *sync.WaitGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ctx != nil {
		return fmt.Errorf("table runner can only be run once")
	}
	r.ctx = ctx
	r.wg = wg
	return nil
}

// Create starts a new game and saves it as a new table.
func (r *Runner) Create(ctx context.Context, seed int64, rules game.Rules, playerIDs ...string) (*tabledb.Table, error) {
	if err := r.checkRunning(); err != nil {
		return nil, err
	}
	s, err := engine.CreateInitialState(seed, rules, playerIDs...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	r.mu.Lock()
	n := len(r.tables)
	r.mu.Unlock()
	if n >= r.MaxTables {
		return nil, fmt.Errorf("creating table: %w (%v)", ErrFull, r.MaxTables)
	}
	now := r.TimeFunc()
	t := tabledb.Table{
		ID:         game.ID(r.IDFunc()),
		State:      *s,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := r.dao.Create(ctx, t); err != nil {
		return nil, err
	}
	loaded := t
	loaded.State = *t.State.Clone()
	if _, err := r.startTable(t.ID, &loaded); err != nil {
		return nil, err
	}
	r.logf(t.ID, "created table for %v players", len(playerIDs))
	return &t, nil
}

// Get retrieves a copy of the table.
func (r *Runner) Get(ctx context.Context, id game.ID) (*tabledb.Table, error) {
	resp, err := r.send(ctx, id, request{kind: getRequest})
	if err != nil {
		return nil, err
	}
	return resp.table, nil
}

// Move applies the move of the player at the table, saving the new state if it is allowed.
// Moves that break the rules return a game.RuleViolation and do not change the table.
func (r *Runner) Move(ctx context.Context, id game.ID, playerIndex int, m engine.Move) (*engine.MoveResult, error) {
	req := request{
		kind:        moveRequest,
		playerIndex: playerIndex,
		move:        m,
	}
	resp, err := r.send(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return resp.result, nil
}

// Delete removes the table from the runner and the dao.
func (r *Runner) Delete(ctx context.Context, id game.ID) error {
	_, err := r.send(ctx, id, request{kind: deleteRequest})
	return err
}

// NumLoaded is the number of tables that currently have a goroutine.
func (r *Runner) NumLoaded() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tables)
}

// checkRunning returns an error if the runner cannot take requests.
func (r *Runner) checkRunning() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.ctx == nil:
		return ErrNotRunning
	case r.ctx.Err() != nil:
		return fmt.Errorf("%w: %v", ErrNotRunning, r.ctx.Err())
	}
	return nil
}

// send passes the request to the table, loading it if needed, and waits for the response.
func (r *Runner) send(ctx context.Context, id game.ID, req request) (*response, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("%w: table id required", ErrInvalid)
	}
	req.reply = make(chan response, 1)
	for {
		t, err := r.startTable(id, nil)
		if err != nil {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.done:
			if t.loadErr != nil {
				return nil, t.loadErr
			}
			// the table was unloaded before it got the request
		case t.in <- req:
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case resp := <-req.reply:
				if resp.err != nil {
					return nil, resp.err
				}
				return &resp, nil
			}
		}
	}
}

// startTable returns the loaded table with the id.
// If it is not loaded, a goroutine is started for it.  A nil table is read from the dao by the goroutine.
func (r *Runner) startTable(id game.ID, loaded *tabledb.Table) (*tableRunner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.ctx == nil:
		return nil, ErrNotRunning
	case r.ctx.Err() != nil:
		return nil, fmt.Errorf("%w: %v", ErrNotRunning, r.ctx.Err())
	}
	if t, ok := r.tables[id]; ok {
		return t, nil
	}
	t := &tableRunner{
		in:   make(chan request),
		done: make(chan struct{}),
	}
	r.tables[id] = t
	r.wg.Add(1)
	go r.runTable(r.ctx, id, t, loaded)
	return t, nil
}

// runTable handles requests for the table until it is deleted, idle, or the context is done.
func (r *Runner) runTable(ctx context.Context, id game.ID, t *tableRunner, tbl *tabledb.Table) {
	defer r.wg.Done()
	defer r.unload(id, t)
	if tbl == nil {
		loaded, err := r.dao.Read(ctx, id)
		if err != nil {
			t.loadErr = err
			return
		}
		tbl = loaded
	}
	idleTicker := time.NewTicker(r.IdlePeriod)
	defer idleTicker.Stop()
	active := false
	for { // BLOCKING
		select {
		case <-ctx.Done():
			return
		case req := <-t.in:
			active = true
			if deleted := r.handleRequest(ctx, tbl, req); deleted {
				r.logf(id, "deleted table")
				return
			}
		case <-idleTicker.C:
			if !active {
				r.logf(id, "unloaded table due to inactivity")
				return
			}
			active = false
		}
	}
}

// handleRequest replies to the request, returning true if the table was deleted.
func (r *Runner) handleRequest(ctx context.Context, tbl *tabledb.Table, req request) (deleted bool) {
	var resp response
	switch req.kind {
	case getRequest:
		t := *tbl
		t.State = *tbl.State.Clone()
		resp.table = &t
	case moveRequest:
		resp.result, resp.err = r.applyMove(ctx, tbl, req.playerIndex, req.move)
	case deleteRequest:
		resp.err = r.dao.Delete(ctx, tbl.ID)
		deleted = resp.err == nil
	default:
		resp.err = fmt.Errorf("%w: unknown request kind %v", ErrInvalid, req.kind)
	}
	req.reply <- resp
	return deleted
}

// applyMove changes the table to the state after the move once it has been saved.
func (r *Runner) applyMove(ctx context.Context, tbl *tabledb.Table, playerIndex int, m engine.Move) (*engine.MoveResult, error) {
	result, err := engine.ApplyMove(&tbl.State, playerIndex, m)
	if err != nil {
		return nil, err
	}
	next := *tbl
	next.State = *result.State
	next.ModifiedAt = r.TimeFunc()
	if err := r.dao.Update(ctx, next); err != nil {
		return nil, err
	}
	*tbl = next
	r.logf(tbl.ID, "player %v: %v", playerIndex, m)
	if result.GameOver {
		r.logf(tbl.ID, "game over after %v rounds, winner: %v", result.Round, result.WinnerIndex)
	}
	result.State = tbl.State.Clone()
	return result, nil
}

// unload removes the table from the runner and signals that its goroutine is done.
func (r *Runner) unload(id game.ID, t *tableRunner) {
	r.mu.Lock()
	if r.tables[id] == t {
		delete(r.tables, id)
	}
	r.mu.Unlock()
	close(t.done)
}

func (r *Runner) logf(id game.ID, format string, v ...any) {
	log.WithTable(r.Log, string(id)).Printf(format, v...)
}
