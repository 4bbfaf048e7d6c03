package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"facility/experiments/metrics"
	"facility/game"
	"facility/monitor"
	"facility/player"

	"github.com/stretchr/testify/require"
)

// scripted plays a fixed list of indices, then fails with err.
type scripted struct {
	moves []int
	err   error
}

func (s *scripted) Name() string { return "scripted" }
func (s *scripted) About() string { return "scripted v0" }
func (s *scripted) Initialize(game.State) error { return nil }
func (s *scripted) NextMove(game.State) (int, error) {
	if len(s.moves) == 0 {
		return -1, s.err
	}
	index := s.moves[0]
	s.moves = s.moves[1:]
	return index, nil
}

// sleepy delays every move of the wrapped strategy.
type sleepy struct {
	player.Strategy
	pause time.Duration
}

func (s sleepy) NextMove(state game.State) (int, error) {
	time.Sleep(s.pause)
	return s.Strategy.NextMove(state)
}

func runLocal(t *testing.T, a, b player.Strategy, opts ...Option) Result {
	t.Helper()
	e, err := NewLocalEngine(20, 1234, game.Normal, a, b, opts...)
	require.NoError(t, err)
	result, err := e.Run(context.Background())
	require.NoError(t, err)
	require.True(t, e.State.IsFinished() || result.Forfeit)
	return result
}

func TestLocalEngine(t *testing.T) {
	t.Run("first free against highest is reproducible", func(t *testing.T) {
		first := runLocal(t, player.NewFirstFree(game.PlayerA), player.NewHighest(game.PlayerB))
		second := runLocal(t, player.NewFirstFree(game.PlayerA), player.NewHighest(game.PlayerB))

		require.Equal(t, first.Score, second.Score)
		require.Equal(t, first.Moves, second.Moves)
		require.False(t, first.Forfeit)

		a, b := 0, 0
		for i, move := range first.Moves {
			require.Equal(t, game.PlayerOfPly(i), move.Player)
			if move.Player == game.PlayerA {
				a++
			} else {
				b++
			}
		}
		require.Equal(t, (len(first.Moves)+1)/2, a)
		require.Equal(t, len(first.Moves)/2, b)
		require.LessOrEqual(t, len(first.Moves), 10)

		winner, ok := first.Score.Winner()
		require.Equal(t, !ok, first.Draw)
		if ok {
			require.Equal(t, winner, first.Winner)
		}
	})

	t.Run("every strategy pairing finishes", func(t *testing.T) {
		for _, a := range []string{"first-free", "random-wrap", "highest", "nighthawk"} {
			for _, b := range []string{"first-free", "random-wrap", "highest", "nighthawk"} {
				sa, err := player.New(a, game.PlayerA)
				require.NoError(t, err)
				sb, err := player.New(b, game.PlayerB)
				require.NoError(t, err)

				result := runLocal(t, sa, sb)
				require.False(t, result.Forfeit, "%s vs %s", a, b)
			}
		}
	})

	t.Run("an illegal move forfeits", func(t *testing.T) {
		result := runLocal(t, &scripted{moves: []int{5}}, &scripted{moves: []int{5}})

		require.True(t, result.Forfeit)
		require.Equal(t, game.PlayerA, result.Winner)
		require.Equal(t, "PLAYER_B", result.ForfeitName())
		require.Len(t, result.Moves, 1)
	})

	t.Run("strategy errors abort the game", func(t *testing.T) {
		boom := errors.New("boom")
		e, err := NewLocalEngine(20, 1234, game.Normal, &scripted{err: boom}, player.NewHighest(game.PlayerB))
		require.NoError(t, err)

		_, err = e.Run(context.Background())
		require.ErrorIs(t, err, boom)
	})

	t.Run("complement strategy refuses other boards", func(t *testing.T) {
		e, err := NewLocalEngine(20, 1234, game.Normal, player.NewHighest(game.PlayerA), player.NewNightHawkComplement(game.PlayerB))
		require.NoError(t, err)

		_, err = e.Run(context.Background())
		require.ErrorIs(t, err, game.ErrConfig)
	})

	t.Run("metrics follow the moves", func(t *testing.T) {
		m := monitor.New()
		result := runLocal(t, player.NewNightHawk(game.PlayerA), player.NewHighest(game.PlayerB),
			WithCollector(metrics.NewCollector()), WithMonitor(m), WithVerbose())

		require.Len(t, result.MoveStats, len(result.Moves))
		require.Equal(t, len(result.Moves), result.Game.TotalMoves)
		last := result.MoveStats[len(result.MoveStats)-1]
		require.Equal(t, result.Score.A, last.ScoreA)
		require.Equal(t, result.Score.B, last.ScoreB)

		_, state := m.State()
		require.Equal(t, monitor.Terminating, state)
	})

	t.Run("fast moves never look stalled", func(t *testing.T) {
		m := monitor.New(monitor.WithCheck(2*time.Millisecond), monitor.WithStall(150*time.Millisecond, time.Millisecond))
		done := make(chan struct{})
		go func() {
			defer close(done)
			m.Run(context.Background())
		}()

		// The whole game outlasts the stall threshold, no single move does.
		a := sleepy{Strategy: player.NewFirstFree(game.PlayerA), pause: 40 * time.Millisecond}
		b := sleepy{Strategy: player.NewHighest(game.PlayerB), pause: 40 * time.Millisecond}
		start := time.Now()
		runLocal(t, a, b, WithMonitor(m))
		<-done

		require.Greater(t, time.Since(start), 150*time.Millisecond)
		require.Zero(t, m.Warnings())
	})

	t.Run("cancelled context stops the game", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e, err := NewLocalEngine(20, 1234, game.Normal, player.NewFirstFree(game.PlayerA), player.NewHighest(game.PlayerB))
		require.NoError(t, err)

		_, err = e.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestFinish(t *testing.T) {
	gs, err := game.NewGameState(12, 1234, game.Complement)
	require.NoError(t, err)
	require.NoError(t, gs.Play(game.PlayerA, 2))
	require.NoError(t, gs.Play(game.PlayerB, 8))
	require.True(t, Finish(gs, nil).Paired)

	require.NoError(t, gs.Play(game.PlayerA, 4))
	require.NoError(t, gs.Play(game.PlayerB, 0))
	require.False(t, Finish(gs, nil).Paired)

	p := game.PlayerB
	forfeited := Finish(gs, &p)
	require.True(t, forfeited.Forfeit)
	require.Equal(t, game.PlayerA, forfeited.Winner)
}
