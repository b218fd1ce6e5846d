package board

import "testing"

func TestScoreAdjacency(t *testing.T) {
	wallOf := func(cells ...[2]int) Wall {
		var w Wall
		for _, c := range cells {
			w[c[0]][c[1]] = true
		}
		return w
	}
	scoreAdjacencyTests := []struct {
		Wall
		row, col int
		want     int
	}{
		{ // isolated
			Wall: wallOf([2]int{0, 0}),
			want: 1,
		},
		{ // isolated, not yet placed
			want: 1,
		},
		{ // one left neighbor
			Wall: wallOf([2]int{2, 1}, [2]int{2, 2}),
			row:  2,
			col:  2,
			want: 2,
		},
		{ // horizontal run of 3 with a gap after it
			Wall: wallOf([2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2}, [2]int{1, 4}),
			row:  1,
			col:  1,
			want: 3,
		},
		{ // vertical only
			Wall: wallOf([2]int{0, 3}, [2]int{1, 3}, [2]int{2, 3}),
			row:  2,
			col:  3,
			want: 3,
		},
		{ // both directions
			Wall: wallOf([2]int{1, 1}, [2]int{1, 2}, [2]int{0, 2}, [2]int{2, 2}, [2]int{3, 2}),
			row:  1,
			col:  2,
			want: 2 + 4,
		},
		{ // full wall corner
			Wall: func() Wall {
				var w Wall
				for r := range w {
					for c := range w[r] {
						w[r][c] = true
					}
				}
				return w
			}(),
			row:  4,
			col:  4,
			want: 10,
		},
	}
	for i, test := range scoreAdjacencyTests {
		got := ScoreAdjacency(test.Wall, test.row, test.col)
		if test.want != got {
			t.Errorf("Test %v: wanted %v points, got %v", i, test.want, got)
		}
	}
}

func TestFloorPenalty(t *testing.T) {
	floorOf := func(n int) Floor {
		return make(Floor, n)
	}
	floorPenaltyTests := []struct {
		Floor
		want int
	}{
		{floorOf(0), 0},
		{floorOf(1), -1},
		{floorOf(2), -2},
		{floorOf(5), -8},
		{floorOf(7), -14},
		{floorOf(9), -14},
	}
	for i, test := range floorPenaltyTests {
		got := FloorPenalty(test.Floor)
		if test.want != got {
			t.Errorf("Test %v: wanted penalty of %v, got %v", i, test.want, got)
		}
	}
}

func TestEndGameBonus(t *testing.T) {
	var w Wall
	if got := EndGameBonus(w); got != 0 {
		t.Errorf("wanted no bonus for empty wall, got %v", got)
	}
	for c := 0; c < NumRows; c++ {
		w[0][c] = true // row 0
		w[c][0] = true // column 0
	}
	for r := 0; r < NumRows; r++ {
		w[r][WallColumn(r, WallPattern[0][2])] = true // every cell of one color
	}
	switch {
	case CompletedRows(w) != 1:
		t.Errorf("wanted 1 completed row, got %v", CompletedRows(w))
	case CompletedColumns(w) != 1:
		t.Errorf("wanted 1 completed column, got %v", CompletedColumns(w))
	case CompletedColors(w) != 1:
		t.Errorf("wanted 1 completed color, got %v", CompletedColors(w))
	case EndGameBonus(w) != RowBonus+ColumnBonus+ColorBonus:
		t.Errorf("wanted bonus of %v, got %v", RowBonus+ColumnBonus+ColorBonus, EndGameBonus(w))
	}
}
