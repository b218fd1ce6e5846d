// Package game contains the vocabulary shared by the Azul rules engine, its boards, and the servers that host it.
package game

import "fmt"

type (
	// ID is the id of a table a game is played at.
	ID string

	// Rules are the options that vary between games.
	// The zero value is valid, but DefaultRules matches the published rules more closely.
	Rules struct {
		// EndGameBonus is a flag to award the row, column, and color bonuses when the game ends.
		EndGameBonus bool `json:"endGameBonus,omitempty"`
		// StandardFactories is a flag to use one factory fewer than the default count, as in the published rules.
		StandardFactories bool `json:"standardFactories,omitempty"`
		// TieBreak is how a winner is chosen between players with the same score.
		TieBreak TieBreak `json:"tieBreak,omitempty"`
	}

	// TieBreak is a policy to pick a winner from players with the highest score.
	TieBreak int
)

const (
	// TieBreakCompletedRows picks the tied player with the most complete horizontal wall rows.
	TieBreakCompletedRows TieBreak = iota
	// TieBreakNone leaves every tie undecided.
	TieBreakNone
)

const (
	// MinPlayers is the fewest players a game can have.
	MinPlayers = 2
	// MaxPlayers is the most players a game can have.
	MaxPlayers = 4
	// FactorySize is the number of tiles put on each factory when an offer phase starts.
	FactorySize = 4
)

// DefaultRules are the rules used when a game does not specify any.
func DefaultRules() Rules {
	return Rules{
		EndGameBonus: true,
		TieBreak:     TieBreakCompletedRows,
	}
}

// FactoryCount is the number of factories for the number of players.
func (r Rules) FactoryCount(numPlayers int) int {
	if r.StandardFactories {
		return 2*numPlayers + 1
	}
	return 2*numPlayers + 2
}

// Text gets the rules for the game.  Extra rules are added for customized configurations.
func (r Rules) Text() []string {
	rules := []string{
		"Each round starts with four tiles on every factory and the first-player marker in the center.",
		"On your turn, take every tile of one color from a factory or the center.  The other tiles of a factory move to the center.",
		"The first player to take tiles from the center also takes the first-player marker, which goes to their floor line and starts the next round.",
		"Place the taken tiles on one pattern line.  A line holds one color, and only a color that is not already on that row of the wall.",
		"Tiles that do not fit on the pattern line, or tiles placed on the floor line on purpose, fall to the floor line.",
		"When no tiles are left to take, one tile from each full pattern line moves to the wall and scores a point for itself and every tile it connects to in its row and column.",
		"Every floor line slot costs points: -1, -1, -2, -2, -2, -3, -3.  Scores never go below zero.",
		"The game ends after the round in which a player completes a horizontal row of their wall.",
	}
	if r.EndGameBonus {
		rules = append(rules, "At the end of the game, each complete row scores 2 points, each complete column 7, and each color placed five times 10.")
	}
	switch r.TieBreak {
	case TieBreakCompletedRows:
		rules = append(rules, "Ties are won by the player with the most complete rows.  If they are still tied, there is no winner.")
	default:
		rules = append(rules, "If the highest score is tied, there is no winner.")
	}
	if r.StandardFactories {
		rules = append(rules, fmt.Sprintf("There are %d, %d, or %d factories for 2, 3, or 4 players.", r.FactoryCount(2), r.FactoryCount(3), r.FactoryCount(4)))
	}
	return rules
}

// String returns the display value for the tie break.
func (tb TieBreak) String() string {
	switch tb {
	case TieBreakCompletedRows:
		return "completed rows"
	case TieBreakNone:
		return "none"
	}
	return "?"
}
