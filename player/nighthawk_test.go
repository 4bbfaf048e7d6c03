package player

import (
	"testing"

	"facility/game"

	"github.com/stretchr/testify/require"
)

func TestNightHawk(t *testing.T) {
	t.Run("extends its own group toward value", func(t *testing.T) {
		gs := freeBoard(1, 1, 1, 1, 1, 40, 1, 1, 30, 1, 1, 1)
		nh := NewNightHawk(game.PlayerA)
		require.NoError(t, nh.Initialize(gs))

		index, err := nh.NextMove(gs)
		require.NoError(t, err)
		require.Equal(t, 5, index)
		require.NoError(t, gs.Play(game.PlayerA, index))
		require.NoError(t, gs.Play(game.PlayerB, 0))

		index, err = nh.NextMove(gs)
		require.NoError(t, err)
		require.Equal(t, 8, index)
		require.NoError(t, gs.Play(game.PlayerA, index))
		require.Equal(t, []Group{{Left: 5, Right: 8, Count: 2, Value: 70}}, nh.Groups())

		require.NoError(t, gs.Play(game.PlayerB, 11))

		// Completing the pair is worth 3*1 + 2*70 on the left; the right is closed.
		index, err = nh.NextMove(gs)
		require.NoError(t, err)
		require.Equal(t, 2, index)
		require.NoError(t, gs.Play(game.PlayerA, index))

		groups := nh.Groups()
		require.Len(t, groups, 1)
		require.Equal(t, 2, groups[0].Left)
		require.Equal(t, 8, groups[0].Right)
		require.Equal(t, 3, groups[0].Count)
		require.True(t, groups[0].BlockedRight)
		require.Equal(t, 3*(1+40+30), gs.Score().A)
	})

	blockingBoard := func() []int {
		return []int{20, 1, 1, 1, 20, 1, 1, 1, 1, 1, 1, 25}
	}

	t.Run("fills the gap between opponent groups", func(t *testing.T) {
		gs := freeBoard(blockingBoard()...)
		nh := NewNightHawk(game.PlayerB)
		require.NoError(t, nh.Initialize(gs))

		require.NoError(t, gs.Play(game.PlayerA, 0))
		index, err := nh.NextMove(gs)
		require.NoError(t, err)
		require.Equal(t, 11, index)
		require.NoError(t, gs.Play(game.PlayerB, index))
		require.NoError(t, gs.Play(game.PlayerA, 4))

		index, err = nh.NextMove(gs)
		require.NoError(t, err)
		require.Equal(t, 2, index)
		require.Len(t, nh.OpponentGroups(), 2)
	})

	t.Run("a small risk factor keeps it offensive", func(t *testing.T) {
		gs := freeBoard(blockingBoard()...)
		nh := NewNightHawk(game.PlayerB, WithRiskFactor(0.01))
		require.NoError(t, nh.Initialize(gs))

		require.NoError(t, gs.Play(game.PlayerA, 0))
		index, err := nh.NextMove(gs)
		require.NoError(t, err)
		require.NoError(t, gs.Play(game.PlayerB, index))
		require.NoError(t, gs.Play(game.PlayerA, 4))

		index, err = nh.NextMove(gs)
		require.NoError(t, err)
		require.Equal(t, 8, index)
	})

	t.Run("always plays legal moves to the end", func(t *testing.T) {
		for _, seed := range []uint64{1, 7, 1234} {
			gs, err := game.NewGameState(40, seed, game.Normal)
			require.NoError(t, err)

			a, b := NewNightHawk(game.PlayerA), NewHighest(game.PlayerB)
			require.NoError(t, a.Initialize(gs))
			require.NoError(t, b.Initialize(gs))
			strategies := map[game.Player]Strategy{game.PlayerA: a, game.PlayerB: b}

			for !gs.IsFinished() {
				index, err := strategies[gs.CurrentPlayer()].NextMove(gs)
				require.NoError(t, err)
				require.NoError(t, gs.Play(gs.CurrentPlayer(), index))
			}
			require.Equal(t, gs.ScoreFor(game.PlayerA), gs.Score().A)
		}
	})
}

func TestNightHawkComplement(t *testing.T) {
	t.Run("rejects other game types", func(t *testing.T) {
		gs, err := game.NewGameState(12, 1234, game.Copy)
		require.NoError(t, err)

		err = NewNightHawkComplement(game.PlayerB).Initialize(gs)
		require.ErrorIs(t, err, game.ErrConfig)
	})

	t.Run("answers with the complementary node", func(t *testing.T) {
		gs, err := game.NewGameState(12, 1234, game.Complement)
		require.NoError(t, err)
		c := NewNightHawkComplement(game.PlayerB)
		require.NoError(t, c.Initialize(gs))

		require.NoError(t, gs.Play(game.PlayerA, 2))
		index, err := c.NextMove(gs)
		require.NoError(t, err)
		require.Equal(t, 8, index)
		require.NoError(t, gs.Play(game.PlayerB, index))
		require.NoError(t, gs.CheckPairs())
	})

	t.Run("opens on the most valuable node", func(t *testing.T) {
		gs, err := game.NewGameState(12, 1234, game.Complement)
		require.NoError(t, err)
		c := NewNightHawkComplement(game.PlayerA)
		require.NoError(t, c.Initialize(gs))

		index, err := c.NextMove(gs)
		require.NoError(t, err)
		for _, value := range gs.Values() {
			require.LessOrEqual(t, value, gs.Value(index))
		}
	})

	t.Run("reports a taken complement", func(t *testing.T) {
		gs, err := game.NewGameState(12, 1234, game.Complement)
		require.NoError(t, err)
		c := NewNightHawkComplement(game.PlayerB)
		require.NoError(t, c.Initialize(gs))

		// 5 blocks 6, the partner of 0.
		require.NoError(t, gs.Play(game.PlayerA, 5))
		require.NoError(t, gs.Play(game.PlayerB, 11))
		require.NoError(t, gs.Play(game.PlayerA, 0))

		_, err = c.NextMove(gs)
		require.ErrorIs(t, err, ErrComplementNotFound)
	})
}

func TestNightHawkGains(t *testing.T) {
	single := &Group{Count: 1, Value: 10}
	pair := &Group{Count: 2, Value: 30}
	bonused := &Group{Count: 3, Value: 30}

	t.Run("gap fills", func(t *testing.T) {
		tests := []struct {
			right, left int
			want        []int
		}{
			{2, 5, nil},
			{2, 6, []int{4}},
			{2, 7, []int{4, 5}},
			{2, 8, []int{5}},
			{2, 9, nil},
		}
		for _, tt := range tests {
			require.Equal(t, tt.want, gapFills(tt.right, tt.left), "gap %d", tt.left-tt.right)
		}
	})

	t.Run("edge gain", func(t *testing.T) {
		require.Equal(t, 7, edgeGain(single, 7))
		// The move completes a bonused run: 3*7 + 2*30.
		require.Equal(t, 81, edgeGain(pair, 7))
		require.Equal(t, 21, edgeGain(bonused, 7))
	})

	t.Run("side weight", func(t *testing.T) {
		require.Equal(t, 2, sideWeight(single))
		require.Equal(t, 2, sideWeight(pair))
		require.Equal(t, 3, sideWeight(bonused))
	})

	t.Run("middle gain", func(t *testing.T) {
		require.Equal(t, 3*30+3*5+2*10, middleGain(bonused, 5, single))
		require.Equal(t, 2*10+3*5+2*30, middleGain(single, 5, pair))
	})
}

func TestNightHawkMiddles(t *testing.T) {
	values := func() []int {
		v := make([]int, 12)
		for i := range v {
			v[i] = 1
		}
		return v
	}

	t.Run("gap of five tries both interior nodes", func(t *testing.T) {
		v := values()
		v[1], v[3], v[4], v[6] = 10, 5, 9, 20
		var groups groupList
		groups.add(1, 10)
		groups.add(6, 20)

		nh := &NightHawk{}
		require.Equal(t, candidate{index: 4, value: 2*10 + 3*9 + 2*20}, nh.middles(freeBoard(v...), &groups))

		statuses := make([]game.Status, len(v))
		statuses[4] = game.Blocked
		require.Equal(t, candidate{index: 3, value: 2*10 + 3*5 + 2*20}, nh.middles(game.FromBoard(v, statuses), &groups))
	})

	t.Run("gap of six uses the midpoint", func(t *testing.T) {
		v := values()
		v[0], v[2], v[4], v[7], v[10] = 10, 10, 10, 8, 20
		var groups groupList
		for _, i := range []int{0, 2, 4, 10} {
			groups.add(i, v[i])
		}
		require.Len(t, groups.items, 2)

		nh := &NightHawk{}
		require.Equal(t, candidate{index: 7, value: 3*30 + 3*8 + 2*20}, nh.middles(freeBoard(v...), &groups))
	})

	t.Run("wider gaps have no fill", func(t *testing.T) {
		var groups groupList
		groups.add(1, 10)
		groups.add(8, 20)

		nh := &NightHawk{}
		require.False(t, nh.middles(freeBoard(values()...), &groups).valid())
	})

	t.Run("joining its groups beats the most valuable node", func(t *testing.T) {
		v := make([]int, 20)
		for i := range v {
			v[i] = 1
		}
		v[1], v[3], v[5], v[15] = 10, 5, 10, 12
		gs := freeBoard(v...)
		nh := NewNightHawk(game.PlayerA)
		require.NoError(t, nh.Initialize(gs))

		for _, m := range []struct {
			p     game.Player
			index int
		}{{game.PlayerA, 1}, {game.PlayerB, 19}, {game.PlayerA, 5}, {game.PlayerB, 17}} {
			require.NoError(t, gs.Play(m.p, m.index))
			if m.p == game.PlayerA {
				nh.own.add(m.index, v[m.index])
			}
		}

		// Filling 3 is worth 2*10 + 3*5 + 2*10; node 15 alone is worth 12.
		index, err := nh.NextMove(gs)
		require.NoError(t, err)
		require.Equal(t, 3, index)
		require.NoError(t, gs.Play(game.PlayerA, index))

		groups := nh.Groups()
		require.Len(t, groups, 1)
		require.Equal(t, 1, groups[0].Left)
		require.Equal(t, 5, groups[0].Right)
		require.Equal(t, 3, groups[0].Count)
		require.Equal(t, 25, groups[0].Value)
		require.Equal(t, 3*25, gs.Score().A)
	})
}
