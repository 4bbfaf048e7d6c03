package player

import (
	"cmp"

	"facility/game"

	"golang.org/x/exp/slices"
)

// byValue returns the node indices sorted by value descending, ties by index.
func byValue(state game.State) []int {
	indices := make([]int, state.NumNodes())
	for i := range indices {
		indices[i] = i
	}
	slices.SortStableFunc(indices, func(a, b int) int {
		return cmp.Compare(state.Value(b), state.Value(a))
	})
	return indices
}

// Highest takes the FREE node with the greatest value.
type Highest struct {
	profile
	sorted []int
	cursor int
}

func NewHighest(me game.Player, _ ...Option) *Highest {
	return &Highest{profile: profile{me: me, name: "highest", version: "1.0"}}
}

func (h *Highest) Initialize(state game.State) error {
	h.sorted = byValue(state)
	h.cursor = 0
	return nil
}

// Nodes never become FREE again, so the cursor only moves forward.
func (h *Highest) NextMove(state game.State) (int, error) {
	for ; h.cursor < len(h.sorted); h.cursor++ {
		if index := h.sorted[h.cursor]; state.Status(index) == game.Free {
			return index, nil
		}
	}
	return -1, ErrNoAvailableMove
}
