package game

// Phase is the part of a round the game is in.
type Phase int

const (
	_ Phase = iota
	// Offer is the phase where players take turns drafting tiles from the factories and center.
	Offer
	// Tiling is the phase where full pattern lines move to the walls and scores change.
	// Games are only observed in this phase once they are over.
	Tiling
)

// String returns the display value for the phase.
func (p Phase) String() string {
	switch p {
	case Offer:
		return "Offer"
	case Tiling:
		return "Tiling"
	}
	return "?"
}
