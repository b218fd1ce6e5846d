package game

import (
	"testing"
)

func TestPhaseString(t *testing.T) {
	t.Run("uniquePhaseStrings", func(t *testing.T) {
		phases := []Phase{
			Offer,
			Tiling,
			Tiling,
			-1,
		}
		phaseStrings := make(map[string]struct{})
		for _, p := range phases {
			phaseStrings[p.String()] = struct{}{}
		}
		want := 3
		got := len(phaseStrings)
		if want != got {
			t.Errorf("wanted %v unique phase strings, got %v", want, got)
		}
	})
	t.Run("unknownPhaseString", func(t *testing.T) {
		unknownPhases := []Phase{
			0,
			Tiling + 1,
		}
		want := "?"
		for i, p := range unknownPhases {
			got := p.String()
			if want != got {
				t.Errorf("Test %v: wanted phase string of '%v' for phase %v, got '%v'", i, want, int(p), got)
			}
		}
	})
}
