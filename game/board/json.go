package board

import (
	"encoding/json"
	"fmt"

	"github.com/jacobpatterson1549/selene-azul/game/tile"
)

// jsonBoard is used for serialization with the json/encoding package.
// Pattern lines are lists of their tiles and wall rows are lists of color names, with empty cells as empty strings.
type jsonBoard struct {
	PatternLines [NumRows][]tile.Color    `json:"patternLines"`
	Wall         [NumRows][NumRows]string `json:"wall"`
	Floor        Floor                    `json:"floor"`
}

// MarshalJSON implements the encoding/json.Marshaler interface.
func (b Board) MarshalJSON() ([]byte, error) {
	var jb jsonBoard
	for r, pl := range b.PatternLines {
		jb.PatternLines[r] = make([]tile.Color, pl.Count)
		for i := range jb.PatternLines[r] {
			jb.PatternLines[r][i] = pl.Color
		}
		for c, filled := range b.Wall[r] {
			if filled {
				jb.Wall[r][c] = WallPattern[r][c].String()
			}
		}
	}
	jb.Floor = b.Floor
	if jb.Floor == nil {
		jb.Floor = Floor{}
	}
	return json.Marshal(jb)
}

// UnmarshalJSON implements the encoding/json.Unmarshaler interface.
// The board is validated: lines hold one color within capacity, wall cells match the pattern, and the floor is not overfull.
func (b *Board) UnmarshalJSON(d []byte) error {
	var jb jsonBoard
	if err := json.Unmarshal(d, &jb); err != nil {
		return err
	}
	var b2 Board
	for r, tiles := range jb.PatternLines {
		if len(tiles) > Capacity(r) {
			return fmt.Errorf("pattern line %v has %v tiles, capacity is %v", r, len(tiles), Capacity(r))
		}
		for _, c := range tiles {
			if !c.Valid() || c != tiles[0] {
				return fmt.Errorf("pattern line %v must hold tiles of one color", r)
			}
		}
		if len(tiles) > 0 {
			b2.PatternLines[r] = PatternLine{Color: tiles[0], Count: len(tiles)}
		}
		for c, name := range jb.Wall[r] {
			if len(name) == 0 {
				continue
			}
			if want := WallPattern[r][c].String(); name != want {
				return fmt.Errorf("wall cell (%v, %v) must be %v, got %q", r, c, want, name)
			}
			b2.Wall[r][c] = true
		}
	}
	if len(jb.Floor) > FloorSize {
		return fmt.Errorf("floor has %v tiles, max is %v", len(jb.Floor), FloorSize)
	}
	if len(jb.Floor) > 0 {
		b2.Floor = jb.Floor
	}
	*b = b2
	return nil
}
