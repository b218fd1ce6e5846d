// Package table stores snapshots of the games being played at tables.
package table

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jacobpatterson1549/selene-azul/game"
	"github.com/jacobpatterson1549/selene-azul/game/engine"
)

type (
	// Table is the latest state of a game and when it was saved.
	Table struct {
		ID         game.ID
		State      engine.State
		CreatedAt  int64
		ModifiedAt int64
	}

	// Record is the form of a table that is written to backends.  The state is encoded as json.
	Record struct {
		ID         string `json:"id" bson:"_id" firestore:"-"`
		State      string `json:"state" bson:"state" firestore:"state"`
		CreatedAt  int64  `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
		ModifiedAt int64  `json:"modifiedAt" bson:"modifiedAt" firestore:"modifiedAt"`
	}
)

// ErrNotFound is returned by backends when there is no table with an id.
var ErrNotFound = errors.New("table not found")

// validate returns an error if the table cannot be stored.
func (t Table) validate() error {
	switch {
	case len(t.ID) == 0:
		return fmt.Errorf("id required")
	case len(t.State.Players) == 0:
		return fmt.Errorf("state with players required")
	}
	return nil
}

// Record encodes the table.
func (t Table) Record() (*Record, error) {
	b, err := json.Marshal(t.State)
	if err != nil {
		return nil, fmt.Errorf("encoding state of table %v: %w", t.ID, err)
	}
	r := Record{
		ID:         string(t.ID),
		State:      string(b),
		CreatedAt:  t.CreatedAt,
		ModifiedAt: t.ModifiedAt,
	}
	return &r, nil
}

// Table decodes the record.
func (r Record) Table() (*Table, error) {
	t := Table{
		ID:         game.ID(r.ID),
		CreatedAt:  r.CreatedAt,
		ModifiedAt: r.ModifiedAt,
	}
	if err := json.Unmarshal([]byte(r.State), &t.State); err != nil {
		return nil, fmt.Errorf("decoding state of table %v: %w", r.ID, err)
	}
	return &t, nil
}

// Info summarizes the table.
func (t Table) Info() game.Info {
	i := game.Info{
		ID:        t.ID,
		Phase:     t.State.Phase,
		Round:     t.State.Round,
		Players:   make([]string, len(t.State.Players)),
		Scores:    make([]int, len(t.State.Players)),
		GameOver:  t.State.GameOver,
		Winner:    engine.WinnerIndex(&t.State),
		CreatedAt: t.CreatedAt,
	}
	for j, p := range t.State.Players {
		i.Players[j] = p.ID
		i.Scores[j] = p.Score
	}
	return i
}
