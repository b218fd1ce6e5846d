// Package board stores the tiles on a player's board and handles queries to read and update them.
package board

import (
	"github.com/jacobpatterson1549/selene-azul/game"
	"github.com/jacobpatterson1549/selene-azul/game/tile"
)

type (
	// Board represents the tiles a player has drafted and placed.
	// (Each player has their own board)
	Board struct {
		PatternLines [NumRows]PatternLine
		Wall         Wall
		Floor        Floor
	}

	// PatternLine is a staging row that holds tiles of one color until it is full.
	// The line at row r has a capacity of r+1.
	PatternLine struct {
		Color tile.Color
		Count int
	}

	// Wall records which cells of the 5x5 wall have a tile.
	// The color of a cell is implied by its position, see WallPattern.
	Wall [NumRows][NumRows]bool

	// Floor is the penalty line.  It holds tiles that could not be placed and the first-player marker.
	Floor []tile.Color

	// TilingResult contains the effect of moving a board's full pattern lines to its wall.
	TilingResult struct {
		// Placed is the number of tiles moved to the wall.
		Placed int
		// Points is the sum of adjacency points for the placed tiles.
		Points int
		// Penalty is the floor penalty, zero or less.
		Penalty int
		// Discard contains the tiles that leave the board.
		Discard []tile.Color
		// HadMarker is set if the first-player marker was on the floor.
		HadMarker bool
	}
)

const (
	// NumRows is the number of pattern lines and the size of each side of the wall.
	NumRows = tile.NumColors
	// FloorSize is the number of slots on the floor line.
	FloorSize = 7
)

// WallPattern is the color of each cell of the wall.  Each row is the row above it shifted right by one.
var WallPattern = func() [NumRows][NumRows]tile.Color {
	var p [NumRows][NumRows]tile.Color
	for r := 0; r < NumRows; r++ {
		for c := 0; c < NumRows; c++ {
			p[r][c] = tile.Colors[(c-r+NumRows)%NumRows]
		}
	}
	return p
}()

// Capacity is the number of tiles the pattern line at the row holds when full.
func Capacity(row int) int {
	return row + 1
}

// WallColumn is the column of the row where the color goes on the wall, or -1 if the color is not a tile color.
func WallColumn(row int, c tile.Color) int {
	if !c.Valid() || row < 0 || row >= NumRows {
		return -1
	}
	for col, c2 := range WallPattern[row] {
		if c == c2 {
			return col
		}
	}
	return -1
}

// CanPlace returns a rule violation if tiles of the color cannot be placed on the pattern line.
func (b Board) CanPlace(row int, c tile.Color) error {
	if row < 0 || row >= NumRows {
		return game.ErrInvalidPatternLine
	}
	if !c.Valid() {
		return game.ErrInvalidColor
	}
	pl := b.PatternLines[row]
	switch {
	case pl.Count >= Capacity(row):
		return game.ErrPatternLineFull
	case pl.Count > 0 && pl.Color != c:
		return game.ErrPatternLineColor
	case b.Wall[row][WallColumn(row, c)]:
		return game.ErrWallCellFilled
	}
	return nil
}

// Place puts count tiles of the color on the pattern line.
// Tiles that do not fit fall to the floor.  Tiles that do not fit on the floor are returned to be discarded.
func (b *Board) Place(row int, c tile.Color, count int) ([]tile.Color, error) {
	if err := b.CanPlace(row, c); err != nil {
		return nil, err
	}
	pl := &b.PatternLines[row]
	n := Capacity(row) - pl.Count
	if n > count {
		n = count
	}
	pl.Color = c
	pl.Count += n
	overflow := make([]tile.Color, count-n)
	for i := range overflow {
		overflow[i] = c
	}
	return b.AddToFloor(overflow...), nil
}

// AddToFloor puts the tiles on the floor.  Tiles past the last slot are returned to be discarded.
func (b *Board) AddToFloor(tiles ...tile.Color) []tile.Color {
	n := FloorSize - len(b.Floor)
	if n < 0 {
		n = 0
	}
	if n > len(tiles) {
		n = len(tiles)
	}
	b.Floor = append(b.Floor, tiles[:n]...)
	if n == len(tiles) {
		return nil
	}
	return tile.Clone(tiles[n:])
}

// AddMarker puts the first-player marker on the floor.
// If the floor is full, the marker takes the last slot and the tile that was there is returned to be discarded.
func (b *Board) AddMarker() []tile.Color {
	if len(b.Floor) < FloorSize {
		b.Floor = append(b.Floor, tile.Marker)
		return nil
	}
	last := len(b.Floor) - 1
	displaced := b.Floor[last]
	b.Floor[last] = tile.Marker
	return []tile.Color{displaced}
}

// HasMarker reports whether the first-player marker is on the floor.
func (b Board) HasMarker() bool {
	for _, c := range b.Floor {
		if c == tile.Marker {
			return true
		}
	}
	return false
}

// Tile moves one tile from each full pattern line to the wall, in row order, and scores it.
// The rest of the tiles on full lines and the tiles on the floor are discarded.  The floor is emptied.
func (b *Board) Tile() TilingResult {
	var r TilingResult
	for row := range b.PatternLines {
		pl := &b.PatternLines[row]
		if pl.Count < Capacity(row) {
			continue
		}
		col := WallColumn(row, pl.Color)
		b.Wall[row][col] = true
		r.Placed++
		r.Points += ScoreAdjacency(b.Wall, row, col)
		for i := 1; i < pl.Count; i++ {
			r.Discard = append(r.Discard, pl.Color)
		}
		*pl = PatternLine{}
	}
	r.Penalty = FloorPenalty(b.Floor)
	for _, c := range b.Floor {
		switch {
		case c == tile.Marker:
			r.HadMarker = true
		case c.Valid():
			r.Discard = append(r.Discard, c)
		}
	}
	b.Floor = nil
	return r
}

// TileCount is the number of tiles on the board.  The first-player marker is not counted.
func (b Board) TileCount() int {
	n := 0
	for _, pl := range b.PatternLines {
		n += pl.Count
	}
	for _, row := range b.Wall {
		for _, filled := range row {
			if filled {
				n++
			}
		}
	}
	for _, c := range b.Floor {
		if c.Valid() {
			n++
		}
	}
	return n
}

// Clone creates a copy of the board that shares no memory with it.
func (b Board) Clone() Board {
	b2 := b
	b2.Floor = Floor(tile.Clone(b.Floor))
	return b2
}
