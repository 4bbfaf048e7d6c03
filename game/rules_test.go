package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreRuns(t *testing.T) {
	rules := NewStandardRules()

	t.Run("blocked nodes are transparent, free nodes end a run", func(t *testing.T) {
		statuses := []Status{OwnedByA, Blocked, OwnedByA, Free, OwnedByA, OwnedByA, OwnedByA}
		values := []int{5, 0, 7, 0, 2, 3, 4}

		runs := Runs(values, statuses, OwnedByA, rules)

		require.Len(t, runs, 2)
		require.Equal(t, Run{Left: 0, Right: 2, Count: 2, Sum: 12, Points: 12}, runs[0],
			"A run of two nodes gets no bonus")
		require.Equal(t, Run{Left: 4, Right: 6, Count: 3, Sum: 9, Bonus: true, Points: 27}, runs[1])
		require.Equal(t, 39, ScoreRuns(values, statuses, OwnedByA, rules))
	})

	t.Run("blocked gap joins a run into a bonus", func(t *testing.T) {
		statuses := []Status{OwnedByA, Blocked, OwnedByA, Blocked, Blocked, OwnedByA}
		values := []int{5, 1, 7, 1, 1, 2}

		require.Equal(t, (5+7+2)*3, ScoreRuns(values, statuses, OwnedByA, rules))
	})

	t.Run("opponent node ends a run", func(t *testing.T) {
		statuses := []Status{OwnedByA, Blocked, OwnedByB, Blocked, OwnedByA}
		values := []int{4, 1, 6, 1, 8}

		require.Equal(t, 12, ScoreRuns(values, statuses, OwnedByA, rules))
		require.Equal(t, 6, ScoreRuns(values, statuses, OwnedByB, rules))
	})

	t.Run("open run at the end of the board is flushed", func(t *testing.T) {
		statuses := []Status{Free, OwnedByB, Blocked, OwnedByB, Blocked, OwnedByB}
		values := []int{9, 1, 1, 2, 1, 3}

		require.Equal(t, 18, ScoreRuns(values, statuses, OwnedByB, rules))
	})

	t.Run("empty board scores zero", func(t *testing.T) {
		require.Zero(t, ScoreRuns([]int{1, 2}, []Status{Free, Free}, OwnedByA, rules))
	})
}
