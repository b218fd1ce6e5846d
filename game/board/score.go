package board

import "github.com/jacobpatterson1549/selene-azul/game/tile"

// FloorPenalties are the points lost for each occupied floor slot, from left to right.
var FloorPenalties = [FloorSize]int{-1, -1, -2, -2, -2, -3, -3}

const (
	// RowBonus is the points for each complete horizontal row of the wall at the end of the game.
	RowBonus = 2
	// ColumnBonus is the points for each complete vertical column of the wall at the end of the game.
	ColumnBonus = 7
	// ColorBonus is the points for each color on the wall five times at the end of the game.
	ColorBonus = 10
)

// ScoreAdjacency is the points for the tile at the row and column of the wall.
// An isolated tile scores 1.  Otherwise, the tile scores the length of its horizontal run if it has horizontal neighbors,
// plus the length of its vertical run if it has vertical neighbors.
func ScoreAdjacency(w Wall, row, col int) int {
	h := w.run(row, col, 0, -1) + w.run(row, col, 0, 1)
	v := w.run(row, col, -1, 0) + w.run(row, col, 1, 0)
	if h == 0 && v == 0 {
		return 1
	}
	points := 0
	if h > 0 {
		points += 1 + h
	}
	if v > 0 {
		points += 1 + v
	}
	return points
}

// run counts the contiguous filled cells from the row and column in the direction, not counting the starting cell.
func (w Wall) run(row, col, dRow, dCol int) int {
	n := 0
	for r, c := row+dRow, col+dCol; 0 <= r && r < NumRows && 0 <= c && c < NumRows && w[r][c]; r, c = r+dRow, c+dCol {
		n++
	}
	return n
}

// FloorPenalty is the sum of penalties of the occupied floor slots.  It is never positive.
func FloorPenalty(f Floor) int {
	penalty := 0
	for i := range f {
		if i >= FloorSize {
			break
		}
		penalty += FloorPenalties[i]
	}
	return penalty
}

// CompletedRows is the number of full horizontal rows of the wall.
func CompletedRows(w Wall) int {
	n := 0
	for r := 0; r < NumRows; r++ {
		if w.rowComplete(r) {
			n++
		}
	}
	return n
}

// CompletedColumns is the number of full vertical columns of the wall.
func CompletedColumns(w Wall) int {
	n := 0
	for c := 0; c < NumRows; c++ {
		complete := true
		for r := 0; r < NumRows; r++ {
			complete = complete && w[r][c]
		}
		if complete {
			n++
		}
	}
	return n
}

// CompletedColors is the number of colors that fill every row of the wall.
func CompletedColors(w Wall) int {
	n := 0
	for _, c := range tile.Colors {
		complete := true
		for r := 0; r < NumRows; r++ {
			complete = complete && w[r][WallColumn(r, c)]
		}
		if complete {
			n++
		}
	}
	return n
}

// EndGameBonus is the points awarded for the wall when the game ends.
func EndGameBonus(w Wall) int {
	return RowBonus*CompletedRows(w) + ColumnBonus*CompletedColumns(w) + ColorBonus*CompletedColors(w)
}

func (w Wall) rowComplete(r int) bool {
	for _, filled := range w[r] {
		if !filled {
			return false
		}
	}
	return true
}
