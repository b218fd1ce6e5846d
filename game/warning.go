package game

// RuleViolation is an error that represents a move the rules do not allow.
// It is the fault of the player, not the server.
type RuleViolation string

const (
	// ErrGameOver is returned for moves made after the game has ended.
	ErrGameOver RuleViolation = "game is over"
	// ErrWrongPhase is returned for moves made outside of the offer phase.
	ErrWrongPhase RuleViolation = "tiles can only be taken in the offer phase"
	// ErrWrongTurn is returned when a player moves out of turn.
	ErrWrongTurn RuleViolation = "not your turn"
	// ErrInvalidSource is returned when the move is not from a factory or the center.
	ErrInvalidSource RuleViolation = "tiles must be taken from a factory or the center"
	// ErrInvalidFactory is returned when the factory of the move does not exist.
	ErrInvalidFactory RuleViolation = "no such factory"
	// ErrInvalidColor is returned when the color of the move is not a tile color.
	ErrInvalidColor RuleViolation = "no such tile color"
	// ErrEmptySource is returned when the factory or center has no tiles.
	ErrEmptySource RuleViolation = "no tiles to take there"
	// ErrColorNotInSource is returned when the factory or center has no tiles of the color.
	ErrColorNotInSource RuleViolation = "no tiles of that color to take there"
	// ErrInvalidPatternLine is returned when the pattern line of the move does not exist.
	ErrInvalidPatternLine RuleViolation = "no such pattern line"
	// ErrPatternLineFull is returned when the pattern line has no room.
	ErrPatternLineFull RuleViolation = "pattern line is full"
	// ErrPatternLineColor is returned when the pattern line holds a different color.
	ErrPatternLineColor RuleViolation = "pattern line holds a different color"
	// ErrWallCellFilled is returned when the wall row already has a tile of the color.
	ErrWallCellFilled RuleViolation = "wall row already has that color"
)

// Error returns the string of the violation.
func (v RuleViolation) Error() string {
	return string(v)
}
