package engine

import (
	"errors"
	"fmt"

	"github.com/jacobpatterson1549/selene-azul/game"
	"github.com/jacobpatterson1549/selene-azul/game/board"
	"github.com/jacobpatterson1549/selene-azul/game/tile"
)

// CreateInitialState starts a game for the players, in turn order.
// The seed determines every tile drawn in the game.
func CreateInitialState(seed int64, rules game.Rules, playerIDs ...string) (*State, error) {
	if err := validatePlayers(playerIDs); err != nil {
		return nil, fmt.Errorf("creating initial state: validation: %w", err)
	}
	s := State{
		Players:        make([]Player, len(playerIDs)),
		Factories:      make([][]tile.Color, rules.FactoryCount(len(playerIDs))),
		Center:         []tile.Color{},
		MarkerInCenter: true,
		Bag:            tile.NewBag(seed),
		Phase:          game.Offer,
		Round:          1,
		Rules:          rules,
	}
	for i, id := range playerIDs {
		s.Players[i].ID = id
	}
	s.fillFactories()
	return &s, nil
}

// validatePlayers ensures there is a valid number of players with unique ids.
func validatePlayers(playerIDs []string) error {
	if n := len(playerIDs); n < game.MinPlayers || n > game.MaxPlayers {
		return fmt.Errorf("between %v and %v players required, got %v", game.MinPlayers, game.MaxPlayers, n)
	}
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if len(id) == 0 {
			return errors.New("player id required")
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate player id: %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ApplyMove validates the move by the player and returns the state after it.  The input state is not changed.
// When the move takes the last tile of the offer phase, every board is tiled and the next round is started or the game ends.
// Moves the rules do not allow return a game.RuleViolation.
func ApplyMove(s *State, playerIndex int, m Move) (*MoveResult, error) {
	if s == nil {
		return nil, errors.New("state required")
	}
	if err := s.validateMove(playerIndex, m); err != nil {
		return nil, err
	}
	s2 := s.Clone()
	s2.draft(playerIndex, m)
	s2.TurnIndex = (playerIndex + 1) % len(s2.Players)
	if s2.offerDone() {
		s2.endOffer()
	}
	r := MoveResult{
		State:       s2,
		GameOver:    s2.GameOver,
		WinnerIndex: WinnerIndex(s2),
		Round:       s2.Round,
	}
	return &r, nil
}

// validateMove returns the first rule the move breaks.
func (s State) validateMove(playerIndex int, m Move) error {
	switch {
	case s.GameOver:
		return game.ErrGameOver
	case s.Phase != game.Offer:
		return game.ErrWrongPhase
	case playerIndex != s.TurnIndex, playerIndex < 0, playerIndex >= len(s.Players):
		return game.ErrWrongTurn
	}
	var source []tile.Color
	switch m.Source {
	case SourceFactory:
		if m.FactoryIndex < 0 || m.FactoryIndex >= len(s.Factories) {
			return game.ErrInvalidFactory
		}
		source = s.Factories[m.FactoryIndex]
	case SourceCenter:
		source = s.Center
	default:
		return game.ErrInvalidSource
	}
	switch {
	case !m.Color.Valid():
		return game.ErrInvalidColor
	case len(source) == 0:
		return game.ErrEmptySource
	case tile.Count(source, m.Color) == 0:
		return game.ErrColorNotInSource
	case m.PatternLine == FloorLine:
		return nil
	}
	return s.Players[playerIndex].Board.CanPlace(m.PatternLine, m.Color)
}

// draft moves the tiles of a valid move.
func (s *State) draft(playerIndex int, m Move) {
	p := &s.Players[playerIndex]
	var taken []tile.Color
	switch m.Source {
	case SourceFactory:
		var rest []tile.Color
		taken, rest = tile.Split(s.Factories[m.FactoryIndex], m.Color)
		s.Factories[m.FactoryIndex] = []tile.Color{}
		s.Center = append(s.Center, rest...)
	case SourceCenter:
		var rest []tile.Color
		taken, rest = tile.Split(s.Center, m.Color)
		s.Center = append([]tile.Color{}, rest...)
		if s.MarkerInCenter {
			s.MarkerInCenter = false
			p.HasMarker = true
			s.Bag.Return(p.Board.AddMarker()...)
		}
	}
	var discard []tile.Color
	switch m.PatternLine {
	case FloorLine:
		discard = p.Board.AddToFloor(taken...)
	default:
		discard, _ = p.Board.Place(m.PatternLine, m.Color, len(taken)) // validated
	}
	s.Bag.Return(discard...)
}

// endOffer tiles every board, in player order, then ends the game or starts the next round.
func (s *State) endOffer() {
	s.Phase = game.Tiling
	rowCompleted := false
	for i := range s.Players {
		p := &s.Players[i]
		r := p.Board.Tile()
		p.Score = max(p.Score+r.Points+r.Penalty, 0)
		s.Bag.Return(r.Discard...)
		if board.CompletedRows(p.Board.Wall) > 0 {
			rowCompleted = true
		}
	}
	if rowCompleted {
		s.endGame()
		return
	}
	s.startRound()
}

// startRound returns the first-player marker to the center and refills the factories.
// The player who had the marker goes first.  If there are no tiles left to draw, the game ends instead.
func (s *State) startRound() {
	if i := s.markerHolder(); i >= 0 {
		s.Players[i].HasMarker = false
		s.TurnIndex = i
	}
	s.MarkerInCenter = true
	s.Round++
	s.Phase = game.Offer
	s.fillFactories()
	if s.offerDone() {
		s.Phase = game.Tiling
		s.endGame()
	}
}

// fillFactories draws tiles for each factory.  Factories are left short when the bag and discard pile run out.
func (s *State) fillFactories() {
	for i := range s.Factories {
		s.Factories[i] = s.Bag.Draw(game.FactorySize)
	}
}

// endGame marks the game as over and awards the end game bonus, if the rules allow it.
func (s *State) endGame() {
	s.GameOver = true
	if !s.Rules.EndGameBonus {
		return
	}
	for i := range s.Players {
		s.Players[i].Score += board.EndGameBonus(s.Players[i].Board.Wall)
	}
}

// WinnerIndex is the index of the player who won the game, or -1 if the game is not over or ends in a tie.
func WinnerIndex(s *State) int {
	if s == nil || !s.GameOver || len(s.Players) == 0 {
		return -1
	}
	best := s.Players[0].Score
	for _, p := range s.Players[1:] {
		best = max(best, p.Score)
	}
	var leaders []int
	for i, p := range s.Players {
		if p.Score == best {
			leaders = append(leaders, i)
		}
	}
	if len(leaders) == 1 {
		return leaders[0]
	}
	if s.Rules.TieBreak != game.TieBreakCompletedRows {
		return -1
	}
	winner, mostRows := -1, -1
	for _, i := range leaders {
		switch rows := board.CompletedRows(s.Players[i].Board.Wall); {
		case rows > mostRows:
			winner, mostRows = i, rows
		case rows == mostRows:
			winner = -1
		}
	}
	return winner
}

// LegalMoves lists every valid move for the player whose turn it is.
// Moves are ordered by source (factories, then the center), color, and pattern line, with the floor last.
func LegalMoves(s *State) []Move {
	if s == nil || s.GameOver || s.Phase != game.Offer || s.TurnIndex < 0 || s.TurnIndex >= len(s.Players) {
		return nil
	}
	var moves []Move
	b := s.Players[s.TurnIndex].Board
	addMoves := func(source Source, factoryIndex int, tiles []tile.Color) {
		for _, c := range tile.Colors {
			if tile.Count(tiles, c) == 0 {
				continue
			}
			m := Move{
				Source:       source,
				FactoryIndex: factoryIndex,
				Color:        c,
			}
			for row := 0; row < board.NumRows; row++ {
				if b.CanPlace(row, c) == nil {
					m.PatternLine = row
					moves = append(moves, m)
				}
			}
			m.PatternLine = FloorLine
			moves = append(moves, m)
		}
	}
	for i, f := range s.Factories {
		addMoves(SourceFactory, i, f)
	}
	addMoves(SourceCenter, 0, s.Center)
	return moves
}
