package engine

import (
	"context"
	"errors"
	"fmt"

	"facility/experiments/metrics"
	"facility/game"
	"facility/monitor"
	"facility/player"

	"github.com/rs/zerolog/log"
)

type Option func(e *options)

type options struct {
	monitor   *monitor.Monitor
	collector metrics.Collector
	verbose   bool
}

func WithMonitor(m *monitor.Monitor) Option {
	return func(o *options) {
		o.monitor = m
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(o *options) {
		if c != nil {
			o.collector = c
		}
	}
}

// WithVerbose logs the board after every move and the run breakdown at the
// end.
func WithVerbose() Option {
	return func(o *options) {
		o.verbose = true
	}
}

func buildOptions(opts []Option) options {
	o := options{collector: metrics.NewDummyCollector()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LocalEngine drives two in-process strategies over one board.
type LocalEngine struct {
	State      *game.GameState
	strategies [2]player.Strategy
	options
}

func NewLocalEngine(size int, seed uint64, gameType game.GameType, a, b player.Strategy, opts ...Option) (*LocalEngine, error) {
	state, err := game.NewGameState(size, seed, gameType)
	if err != nil {
		return nil, err
	}
	return &LocalEngine{
		State:      state,
		strategies: [2]player.Strategy{a, b},
		options:    buildOptions(opts),
	}, nil
}

// Run executes the game loop until the board is full. An illegal move ends
// the game as a forfeit; a strategy error aborts it.
func (e *LocalEngine) Run(ctx context.Context) (Result, error) {
	for p, s := range e.strategies {
		if err := s.Initialize(e.State); err != nil {
			return Result{}, fmt.Errorf("initializing %s for %s: %w", s.About(), game.Player(p), err)
		}
	}

	log.Info().Msgf("%s vs %s on %d %s nodes (seed %d)",
		e.strategies[0].About(), e.strategies[1].About(), e.State.NumNodes(), e.State.Type(), e.State.Seed())
	e.collector.Start()
	e.monitor.SetState(0, monitor.Starting)

	var forfeit *game.Player
	for !e.State.IsFinished() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		p := e.State.CurrentPlayer()
		round := e.State.NumMoves()
		s := e.strategies[p]

		e.monitor.SetState(round, monitor.WaitingForMe)
		e.collector.StartMove()
		index, err := s.NextMove(e.State)
		if err != nil {
			e.monitor.SetState(round, monitor.Terminating)
			return Result{}, fmt.Errorf("%s for %s in round %d: %w", s.About(), p, round, err)
		}

		if err := e.State.Play(p, index); err != nil {
			if !errors.Is(err, game.ErrIllegalMove) {
				return Result{}, err
			}
			log.Warn().Msgf("%s forfeits: %v", p, err)
			forfeit = &p
			break
		}
		e.monitor.SetState(round, monitor.WaitingForOpponent)
		e.collector.AddMove(round, p, index, e.State.Value(index), e.State.Score())

		if e.verbose {
			log.Info().Msgf("round %d: %s took %d (%d) | %s", round, p, index, e.State.Value(index), e.State)
		}
	}

	e.monitor.SetState(e.State.NumMoves(), monitor.Terminating)
	e.monitor.RequestStop()

	result := Finish(e.State, forfeit)
	result.Game = e.collector.Complete(result.WinnerName(), result.ForfeitName(), result.Score)
	result.MoveStats = e.collector.Moves()

	log.Info().Msg(result.Score.String())
	if e.verbose {
		logBreakdown(e.State)
	}
	return result, nil
}

func logBreakdown(state *game.GameState) {
	for _, p := range []game.Player{game.PlayerA, game.PlayerB} {
		for _, run := range state.Breakdown(p) {
			log.Info().Msgf("%s run [%d, %d]: %d nodes, sum %d, bonus %t, points %d",
				p, run.Left, run.Right, run.Count, run.Sum, run.Bonus, run.Points)
		}
	}
}
