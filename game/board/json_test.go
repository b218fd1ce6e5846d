package board

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jacobpatterson1549/selene-azul/game/tile"
)

func TestMarshalBoard(t *testing.T) {
	var b Board
	b.PatternLines[1] = PatternLine{Color: tile.Red, Count: 2}
	b.Wall[0][0] = true
	b.Floor = Floor{tile.Marker}
	got, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	want := `{"patternLines":[[],["red","red"],[],[],[]],` +
		`"wall":[["blue","","","",""],["","","","",""],["","","","",""],["","","","",""],["","","","",""]],` +
		`"floor":["marker"]}`
	if want != string(got) {
		t.Errorf("not equal:\nwanted: %v\ngot:    %s", want, got)
	}
}

func TestBoardJSONRoundTrip(t *testing.T) {
	var want Board
	want.PatternLines[4] = PatternLine{Color: tile.Teal, Count: 3}
	want.Wall[2][WallColumn(2, tile.Black)] = true
	want.Wall[3][3] = true
	want.Floor = Floor{tile.Yellow, tile.Marker}
	d, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("unwanted marshal error: %v", err)
	}
	var got Board
	if err := json.Unmarshal(d, &got); err != nil {
		t.Fatalf("unwanted unmarshal error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("board changed (-want +got):\n%v", diff)
	}
}

func TestUnmarshalBoardInvalid(t *testing.T) {
	unmarshalTests := []string{
		`[]`,
		`{"patternLines":[["blue","blue"],[],[],[],[]]}`,
		`{"patternLines":[[],["blue","red"],[],[],[]]}`,
		`{"patternLines":[["marker"],[],[],[],[]]}`,
		`{"patternLines":[["purple"],[],[],[],[]]}`,
		`{"wall":[["red","","","",""],["","","","",""],["","","","",""],["","","","",""],["","","","",""]]}`,
		`{"floor":["red","red","red","red","red","red","red","red"]}`,
	}
	for i, test := range unmarshalTests {
		var b Board
		if err := json.Unmarshal([]byte(test), &b); err == nil {
			t.Errorf("Test %v: wanted error unmarshalling %v", i, test)
		}
	}
}
