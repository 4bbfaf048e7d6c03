package player

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupList(t *testing.T) {
	t.Run("moves three apart merge", func(t *testing.T) {
		var gl groupList
		gl.add(10, 4)
		gl.add(13, 6)

		require.Equal(t, []Group{{Left: 10, Right: 13, Count: 2, Value: 10}}, gl.snapshot())
	})

	t.Run("moves five apart stay separate", func(t *testing.T) {
		var gl groupList
		gl.add(10, 4)
		gl.add(15, 6)

		require.Equal(t, []Group{
			{Left: 10, Right: 10, Count: 1, Value: 4},
			{Left: 15, Right: 15, Count: 1, Value: 6},
		}, gl.snapshot())
	})

	t.Run("groups stay sorted", func(t *testing.T) {
		var gl groupList
		gl.add(20, 1)
		gl.add(2, 1)
		gl.add(11, 1)

		groups := gl.snapshot()
		require.Len(t, groups, 3)
		require.Equal(t, 2, groups[0].Left)
		require.Equal(t, 11, groups[1].Left)
		require.Equal(t, 20, groups[2].Left)
	})

	t.Run("a move can bridge two groups", func(t *testing.T) {
		var gl groupList
		gl.add(10, 1)
		gl.add(16, 2)
		gl.add(13, 3)

		require.Equal(t, []Group{{Left: 10, Right: 16, Count: 3, Value: 6}}, gl.snapshot())
	})

	t.Run("blocked flags survive only on unchanged sides", func(t *testing.T) {
		var gl groupList
		gl.add(10, 1)
		gl.items[0].BlockedLeft = true
		gl.items[0].BlockedRight = true

		gl.add(12, 1)
		require.True(t, gl.items[0].BlockedLeft)
		require.False(t, gl.items[0].BlockedRight)

		gl.items[0].BlockedRight = true
		gl.add(7, 1)
		require.False(t, gl.items[0].BlockedLeft)
		require.True(t, gl.items[0].BlockedRight)
	})
}
