// Package main plays a seeded game on a single process and prints the result.
// The game is played twice to check that the seed and moves determine the outcome.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/jacobpatterson1549/selene-azul/game"
	"github.com/jacobpatterson1549/selene-azul/game/board"
	"github.com/jacobpatterson1549/selene-azul/game/engine"
	"github.com/jacobpatterson1549/selene-azul/server/log"
)

// maxMoves stops games that do not end.
const maxMoves = 1000

const (
	policyFirst  = "first"
	policyRandom = "random"
)

type (
	sandboxFlags struct {
		seed     int64
		players  string
		policy   string
		standard bool
		logLevel string
	}

	// chooser picks one of the legal moves.
	chooser func(moves []engine.Move) engine.Move
)

func main() {
	f, err := newSandboxFlags(os.Args, os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	log, err := log.Config{Level: f.logLevel}.NewLogrus(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(2)
	}
	if err := run(*f, os.Stdout, log); err != nil {
		log.Fatalf("playing game: %v", err)
	}
}

// newSandboxFlags parses the command line arguments.
func newSandboxFlags(osArgs []string, output io.Writer) (*sandboxFlags, error) {
	if len(osArgs) == 0 {
		osArgs = []string{""}
	}
	var f sandboxFlags
	fs := flag.NewFlagSet("sandbox", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Int64Var(&f.seed, "seed", 1, "The seed that determines the tiles drawn from the bag.")
	fs.StringVar(&f.players, "players", "selene,jacob", "The comma-separated ids of the players, in turn order.")
	fs.StringVar(&f.policy, "policy", policyFirst, "How moves are chosen: first (the first legal move) or random (seeded by -seed).")
	fs.BoolVar(&f.standard, "standard-factories", false, "Use the published number of factories.")
	fs.StringVar(&f.logLevel, "log-level", "info", "The minimum level of messages to log.  Each move is logged at debug.")
	if err := fs.Parse(osArgs[1:]); err != nil {
		return nil, err
	}
	return &f, nil
}

// run plays the game twice and writes the result.
func run(f sandboxFlags, w io.Writer, log log.Logger) error {
	rules := game.DefaultRules()
	rules.StandardFactories = f.standard
	playerIDs := strings.Split(f.players, ",")
	var results [2]*engine.State
	for i := range results {
		choose, err := newChooser(f.policy, f.seed)
		if err != nil {
			return err
		}
		s, err := play(f.seed, rules, playerIDs, choose, log)
		if err != nil {
			return err
		}
		results[i] = s
	}
	same, err := sameState(results[0], results[1])
	if err != nil {
		return err
	}
	if !same {
		return fmt.Errorf("replaying seed %v did not end in the same state", f.seed)
	}
	writeResult(w, results[0])
	return nil
}

// newChooser creates the move policy.
func newChooser(policy string, seed int64) (chooser, error) {
	switch policy {
	case policyFirst:
		return func(moves []engine.Move) engine.Move {
			return moves[0]
		}, nil
	case policyRandom:
		r := rand.New(rand.NewSource(seed))
		return func(moves []engine.Move) engine.Move {
			return moves[r.Intn(len(moves))]
		}, nil
	}
	return nil, fmt.Errorf("unknown policy %q", policy)
}

// play applies chosen moves until the game is over.
func play(seed int64, rules game.Rules, playerIDs []string, choose chooser, log log.Logger) (*engine.State, error) {
	s, err := engine.CreateInitialState(seed, rules, playerIDs...)
	if err != nil {
		return nil, err
	}
	for i := 0; !s.GameOver; i++ {
		if i == maxMoves {
			return nil, fmt.Errorf("game not over after %v moves", maxMoves)
		}
		moves := engine.LegalMoves(s)
		if len(moves) == 0 {
			return nil, fmt.Errorf("no legal moves for player %v in round %v", s.TurnIndex, s.Round)
		}
		m := choose(moves)
		p := s.TurnIndex
		r, err := engine.ApplyMove(s, p, m)
		if err != nil {
			return nil, fmt.Errorf("applying move %v: %w", m, err)
		}
		if r.Round != s.Round && !r.GameOver {
			log.Printf("round %v done", s.Round)
		}
		s = r.State
	}
	return s, nil
}

// sameState compares the json encodings of the states.
func sameState(a, b *engine.State) (bool, error) {
	ja, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	jb, err := json.Marshal(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ja, jb), nil
}

// writeResult writes the scores of the finished game.
func writeResult(w io.Writer, s *engine.State) {
	fmt.Fprintf(w, "game over after %v rounds\n", s.Round)
	for i, p := range s.Players {
		rows := board.CompletedRows(p.Board.Wall)
		fmt.Fprintf(w, "%v. %v: %v points, %v complete rows\n", i, p.ID, p.Score, rows)
	}
	switch winner := engine.WinnerIndex(s); winner {
	case -1:
		fmt.Fprintln(w, "tie")
	default:
		fmt.Fprintf(w, "winner: %v\n", s.Players[winner].ID)
	}
}
