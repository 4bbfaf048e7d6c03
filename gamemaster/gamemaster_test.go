package gamemaster

import (
	"context"
	"testing"
	"time"

	"facility/communication"
	"facility/engine"
	"facility/game"
	"facility/player"

	"github.com/stretchr/testify/require"
)

type outcome struct {
	result engine.Result
	err    error
}

// playRemote runs a host and a peer over an in-memory pipe.
func playRemote(t *testing.T, settings Settings, host player.Strategy, peer engine.StrategyFactory) (outcome, outcome) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hostComm, peerComm := communication.NewPipe()
	gm, err := NewGameMaster(hostComm, settings, host)
	require.NoError(t, err)
	remote := engine.NewRemoteEngine(peerComm, peer)

	peerDone := make(chan outcome, 1)
	go func() {
		result, err := remote.Run(ctx)
		peerDone <- outcome{result, err}
	}()

	result, err := gm.RunGame(ctx)
	hostOutcome := outcome{result, err}
	peerOutcome := <-peerDone
	return hostOutcome, peerOutcome
}

func byName(name string) engine.StrategyFactory {
	return func(me game.Player) (player.Strategy, error) {
		return player.New(name, me)
	}
}

type illegal struct{}

func (illegal) Name() string { return "illegal" }
func (illegal) About() string { return "illegal v0" }
func (illegal) Initialize(game.State) error { return nil }
func (illegal) NextMove(game.State) (int, error) { return -1, nil }

func TestRemoteGame(t *testing.T) {
	t.Run("both sides agree on the result", func(t *testing.T) {
		settings := Settings{Size: 30, Seed: 77, GameType: game.Normal, Role: game.PlayerA}
		host, peer := playRemote(t, settings, player.NewNightHawk(game.PlayerA), byName("highest"))

		require.NoError(t, host.err)
		require.NoError(t, peer.err)
		require.Equal(t, host.result.Score, peer.result.Score)
		require.Equal(t, host.result.Moves, peer.result.Moves)
		require.NotEmpty(t, host.result.Proof)
		require.Equal(t, host.result.Proof, peer.result.Proof)
		require.False(t, host.result.Forfeit)
	})

	t.Run("host can play second", func(t *testing.T) {
		settings := Settings{Size: 16, Seed: 3, GameType: game.Normal, Role: game.PlayerB}
		host, peer := playRemote(t, settings, player.NewFirstFree(game.PlayerB), byName("nighthawk"))

		require.NoError(t, host.err)
		require.NoError(t, peer.err)
		require.Equal(t, host.result.Score, peer.result.Score)
		require.Equal(t, game.PlayerA, host.result.Moves[0].Player)
	})

	t.Run("complement peer answers every host move", func(t *testing.T) {
		settings := Settings{Size: 12, Seed: 1234, GameType: game.Complement, Role: game.PlayerA}
		host, peer := playRemote(t, settings, player.NewFirstFree(game.PlayerA), byName("nighthawk-complement"))

		require.NoError(t, host.err)
		require.NoError(t, peer.err)
		require.True(t, host.result.Paired)
		require.True(t, peer.result.Paired)
	})

	t.Run("an illegal peer move forfeits the peer", func(t *testing.T) {
		settings := Settings{Size: 10, Seed: 1, GameType: game.Normal, Role: game.PlayerA}
		host, peer := playRemote(t, settings, player.NewHighest(game.PlayerA),
			func(game.Player) (player.Strategy, error) { return illegal{}, nil })

		require.NoError(t, host.err)
		require.NoError(t, peer.err)
		require.True(t, host.result.Forfeit)
		require.Equal(t, game.PlayerA, host.result.Winner)
		require.Equal(t, "PLAYER_B", peer.result.ForfeitName())
	})

	t.Run("mismatched board size is a configuration error", func(t *testing.T) {
		hostComm, _ := communication.NewPipe()
		_, err := NewGameMaster(hostComm, Settings{Size: 6, GameType: game.Copy}, player.NewHighest(game.PlayerA))
		require.ErrorIs(t, err, game.ErrConfig)
	})
}
