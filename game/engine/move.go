package engine

import (
	"encoding/json"
	"fmt"

	"github.com/jacobpatterson1549/selene-azul/game/tile"
)

type (
	// Move is a player's draft: every tile of one color from a source, placed on a pattern line or the floor.
	Move struct {
		Source Source `json:"source"`
		// FactoryIndex is the factory to take from.  It is ignored for the center.
		FactoryIndex int        `json:"factory"`
		Color        tile.Color `json:"color"`
		// PatternLine is the row to place the tiles on, or FloorLine.
		PatternLine int `json:"line"`
	}

	// Source is where tiles are drafted from.
	Source int

	// MoveResult is the outcome of a valid move.
	MoveResult struct {
		State       *State `json:"state"`
		GameOver    bool   `json:"gameOver"`
		WinnerIndex int    `json:"winner"`
		Round       int    `json:"round"`
	}
)

const (
	_ Source = iota
	// SourceFactory is a move from one of the factories.
	SourceFactory
	// SourceCenter is a move from the center.
	SourceCenter
)

// FloorLine is the pattern line of moves that place every drafted tile on the floor.
const FloorLine = -1

var sourceNames = map[Source]string{
	SourceFactory: "factory",
	SourceCenter:  "center",
}

// String returns the name of the source.
func (s Source) String() string {
	if n, ok := sourceNames[s]; ok {
		return n
	}
	return "?"
}

// MarshalJSON implements the encoding/json.Marshaler interface to marshal sources into their names.
func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the encoding/json.UnMarshaler interface to unmarshal sources from their names.
func (s *Source) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	for s2, n := range sourceNames {
		if n == name {
			*s = s2
			return nil
		}
	}
	return fmt.Errorf("unknown move source: %q", name)
}

// String describes the move.
func (m Move) String() string {
	from := m.Source.String()
	if m.Source == SourceFactory {
		from = fmt.Sprintf("factory %v", m.FactoryIndex)
	}
	to := "floor"
	if m.PatternLine != FloorLine {
		to = fmt.Sprintf("line %v", m.PatternLine)
	}
	return fmt.Sprintf("%v from %v to %v", m.Color, from, to)
}
