package game

// Info contains a summary of a game.
type Info struct {
	// ID is unique among the other tables that currently exist.
	ID ID `json:"id,omitempty"`
	// Phase is the phase of the game.
	Phase Phase `json:"phase,omitempty"`
	// Round is the number of the current round, starting at 1.
	Round int `json:"round,omitempty"`
	// Players is a list of the ids of the players in the game, in turn order.
	Players []string `json:"players,omitempty"`
	// Scores are the scores of the players, in the same order as Players.
	Scores []int `json:"scores,omitempty"`
	// GameOver is set when the game has ended.
	GameOver bool `json:"gameOver,omitempty"`
	// Winner is the index of the winning player, or -1.
	Winner int `json:"winner"`
	// CreatedAt is the table's creation time in seconds since the unix epoch.
	CreatedAt int64 `json:"createdAt,omitempty"`
}

// HasPlayer indicates whether or not the player is seated at the table.
func (i Info) HasPlayer(playerID string) bool {
	for _, p := range i.Players {
		if p == playerID {
			return true
		}
	}
	return false
}
