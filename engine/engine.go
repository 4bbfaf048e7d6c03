package engine

import (
	"context"
	"errors"

	"facility/experiments/metrics"
	"facility/game"
)

// ErrDesync means the two sides of a remote game no longer agree on it.
var ErrDesync = errors.New("remote game out of sync")

type Engine interface {
	// Run plays a game until the board is full or a player forfeits.
	Run(ctx context.Context) (Result, error)
}

type Result struct {
	Score     game.Score
	Winner    game.Player
	Draw      bool
	Forfeit   bool // Winner won because the other player made an illegal move
	Moves     []game.Move
	Paired    bool   // mirrored games only: every pair answered as expected
	Proof     string // remote games only: token sent by the host
	Game      metrics.GameMetric
	MoveStats []metrics.MoveMetric
}

// WinnerName is the winning player's name, or empty on a draw.
func (r Result) WinnerName() string {
	if r.Draw {
		return ""
	}
	return r.Winner.String()
}

// ForfeitName names the player who forfeited, or is empty.
func (r Result) ForfeitName() string {
	if !r.Forfeit {
		return ""
	}
	return r.Winner.Opponent().String()
}

// Finish builds the result of a finished or forfeited game. forfeit is the
// player whose illegal move ended the game, if any.
func Finish(state *game.GameState, forfeit *game.Player) Result {
	r := Result{
		Score: state.Score(),
		Moves: state.History(),
	}
	switch {
	case forfeit != nil:
		r.Winner = forfeit.Opponent()
		r.Forfeit = true
	default:
		winner, ok := r.Score.Winner()
		r.Winner, r.Draw = winner, !ok
	}
	if state.Type().Mirrored() && !r.Forfeit {
		r.Paired = state.CheckPairs() == nil
	}
	return r
}
