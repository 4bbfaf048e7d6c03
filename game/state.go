package game

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// GameState owns the board of a single game: node values, node statuses,
// the move log and the score. Play is the only mutator.
type GameState struct {
	seed     uint64
	gameType GameType
	rules    Rules
	values   []int    // immutable after construction
	statuses []Status // indexed by node
	moves    []int    // ply i was played by PlayerOfPly(i)
	score    Score
}

// NewGameState builds a board of size nodes for the given seed and game type.
// Mirrored boards of odd size start with their middle node blocked.
func NewGameState(size int, seed uint64, gameType GameType) (*GameState, error) {
	values, err := GenerateValues(size, seed, gameType)
	if err != nil {
		return nil, err
	}

	gs := &GameState{
		seed:     seed,
		gameType: gameType,
		rules:    NewStandardRules(),
		values:   values,
		statuses: make([]Status, size),
		moves:    make([]int, 0, size/2+1),
	}
	if gameType.Mirrored() && size%2 == 1 {
		gs.statuses[size/2] = Blocked
	}
	return gs, nil
}

// FromBoard builds a game over explicit values and statuses. Useful to replay
// positions; no move log is recorded for the given statuses.
func FromBoard(values []int, statuses []Status) *GameState {
	gs := &GameState{
		rules:    NewStandardRules(),
		values:   append([]int(nil), values...),
		statuses: append([]Status(nil), statuses...),
	}
	gs.updateScore(PlayerA)
	gs.updateScore(PlayerB)
	return gs
}

func (gs *GameState) NumNodes() int {
	return len(gs.values)
}

func (gs *GameState) Seed() uint64 {
	return gs.seed
}

func (gs *GameState) Type() GameType {
	return gs.gameType
}

func (gs *GameState) Value(index int) int {
	return gs.values[index]
}

func (gs *GameState) Values() []int {
	return append([]int(nil), gs.values...)
}

func (gs *GameState) Status(index int) Status {
	return gs.statuses[index]
}

func (gs *GameState) Statuses() []Status {
	return append([]Status(nil), gs.statuses...)
}

func (gs *GameState) NumMoves() int {
	return len(gs.moves)
}

func (gs *GameState) Moves() []int {
	return append([]int(nil), gs.moves...)
}

// Move returns the index chosen at ply.
func (gs *GameState) Move(ply int) int {
	return gs.moves[ply]
}

func (gs *GameState) LastMove() (int, bool) {
	if len(gs.moves) == 0 {
		return 0, false
	}
	return gs.moves[len(gs.moves)-1], true
}

// CurrentPlayer is the player whose turn it is.
func (gs *GameState) CurrentPlayer() Player {
	return PlayerOfPly(len(gs.moves))
}

func (gs *GameState) Score() Score {
	return gs.score
}

// ScoreFor recomputes p's score from the statuses.
func (gs *GameState) ScoreFor(p Player) int {
	return ScoreRuns(gs.values, gs.statuses, p.Owns(), gs.rules)
}

// Breakdown lists the runs that make up p's score.
func (gs *GameState) Breakdown(p Player) []Run {
	return Runs(gs.values, gs.statuses, p.Owns(), gs.rules)
}

// IsFinished is true once no node is free.
func (gs *GameState) IsFinished() bool {
	for _, status := range gs.statuses {
		if status == Free {
			return false
		}
	}
	return true
}

// MoveCounts returns the number of nodes each player owns.
func (gs *GameState) MoveCounts() (a, b int) {
	for _, status := range gs.statuses {
		switch status {
		case OwnedByA:
			a++
		case OwnedByB:
			b++
		}
	}
	return a, b
}

// History returns the move log with the player of each ply.
func (gs *GameState) History() []Move {
	history := make([]Move, len(gs.moves))
	for ply, index := range gs.moves {
		history[ply] = Move{Ply: ply, Player: PlayerOfPly(ply), Index: index}
	}
	return history
}

// Play occupies index for p and blocks its free neighbors. A rejected move
// returns an *IllegalMoveError and leaves the game untouched.
func (gs *GameState) Play(p Player, index int) error {
	if err := gs.check(p, index); err != nil {
		log.Warn().
			Str("player", p.String()).
			Int("index", index).
			Str("reason", err.Reason.String()).
			Msg("ignoring invalid move")
		return err
	}

	gs.moves = append(gs.moves, index)
	gs.statuses[index] = p.Owns()
	if index > 0 && gs.statuses[index-1] == Free {
		gs.statuses[index-1] = Blocked
	}
	if index < len(gs.statuses)-1 && gs.statuses[index+1] == Free {
		gs.statuses[index+1] = Blocked
	}

	gs.updateScore(p)
	return nil
}

func (gs *GameState) check(p Player, index int) *IllegalMoveError {
	if p != gs.CurrentPlayer() {
		return &IllegalMoveError{Player: p, Index: index, Reason: WrongTurn,
			detail: fmt.Sprintf("%s played when it was %s's turn", p, gs.CurrentPlayer())}
	}
	if index < 0 || index >= len(gs.statuses) {
		return &IllegalMoveError{Player: p, Index: index, Reason: OutOfRange,
			detail: fmt.Sprintf("%s tried to select location %d which is outside the range [0, %d]", p, index, len(gs.statuses)-1)}
	}
	if gs.statuses[index] != Free {
		if gs.IsFinished() {
			return &IllegalMoveError{Player: p, Index: index, Reason: GameOver,
				detail: fmt.Sprintf("%s tried to move after the game finished", p)}
		}
		return &IllegalMoveError{Player: p, Index: index, Reason: NotFree,
			detail: fmt.Sprintf("%s tried to select location %d which is %s", p, index, gs.statuses[index])}
	}
	return nil
}

// Placing a node can only split the opponent's runs at that node, never join
// them, but both scores are refreshed so the view never goes stale.
func (gs *GameState) updateScore(p Player) {
	gs.score.set(p, gs.ScoreFor(p))
	gs.score.set(p.Opponent(), gs.ScoreFor(p.Opponent()))
}

// String prints the board as one line of owners followed by the score.
func (gs *GameState) String() string {
	var b strings.Builder
	for _, status := range gs.statuses {
		b.WriteString(status.Short())
	}
	fmt.Fprintf(&b, " | %s", gs.score)
	return b.String()
}
