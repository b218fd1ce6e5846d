// Package engine applies the rules of Azul to immutable game states.
package engine

import (
	"github.com/jacobpatterson1549/selene-azul/game"
	"github.com/jacobpatterson1549/selene-azul/game/board"
	"github.com/jacobpatterson1549/selene-azul/game/tile"
)

type (
	// State is a snapshot of a game.  Every field is needed to continue the game, including the bag's random seed.
	State struct {
		Players        []Player       `json:"players"`
		Factories      [][]tile.Color `json:"factories"`
		Center         []tile.Color   `json:"center"`
		MarkerInCenter bool           `json:"markerInCenter"`
		Bag            tile.Bag       `json:"bag"`
		Phase          game.Phase     `json:"phase"`
		Round          int            `json:"round"`
		TurnIndex      int            `json:"turn"`
		GameOver       bool           `json:"gameOver"`
		Rules          game.Rules     `json:"rules"`
	}

	// Player is a seat in the game.
	Player struct {
		ID    string      `json:"id"`
		Board board.Board `json:"board"`
		Score int         `json:"score"`
		// HasMarker is set from when the player takes the first-player marker until the next offer phase starts.
		HasMarker bool `json:"hasMarker,omitempty"`
	}
)

// Clone creates a deep copy of the state that shares no memory with it.
func (s State) Clone() *State {
	s2 := s
	s2.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.Board = p.Board.Clone()
		s2.Players[i] = p
	}
	if s.Factories != nil {
		s2.Factories = make([][]tile.Color, len(s.Factories))
		for i, f := range s.Factories {
			s2.Factories[i] = tile.Clone(f)
		}
	}
	s2.Center = tile.Clone(s.Center)
	s2.Bag = s.Bag.Clone()
	return &s2
}

// TileCount is the number of tiles in the game, wherever they are.  The first-player marker is not counted.
// It is the same for every state of a game.
func TileCount(s *State) int {
	n := s.Bag.Len() + len(s.Center)
	for _, f := range s.Factories {
		n += len(f)
	}
	for _, p := range s.Players {
		n += p.Board.TileCount()
	}
	return n
}

// markerHolder is the index of the player with the first-player marker, or -1 if it is in the center.
func (s State) markerHolder() int {
	for i, p := range s.Players {
		if p.HasMarker {
			return i
		}
	}
	return -1
}

// offerDone reports whether every factory and the center are empty.
func (s State) offerDone() bool {
	for _, f := range s.Factories {
		if len(f) > 0 {
			return false
		}
	}
	return len(s.Center) == 0
}
