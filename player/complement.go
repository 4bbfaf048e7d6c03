package player

import (
	"fmt"

	"facility/game"
	"facility/meta"
)

// NightHawkComplement answers every opponent move with the node holding its
// complementary value. Only COMPLEMENT boards guarantee such a node exists.
type NightHawkComplement struct {
	profile
	positions map[int][]int
}

func NewNightHawkComplement(me game.Player, _ ...Option) *NightHawkComplement {
	return &NightHawkComplement{profile: profile{me: me, name: "nighthawk-complement", version: "1.0"}}
}

func (c *NightHawkComplement) Initialize(state game.State) error {
	if state.Type() != game.Complement {
		return fmt.Errorf("%s only plays %s games, got %s: %w", c.name, game.Complement, state.Type(), game.ErrConfig)
	}
	c.positions = make(map[int][]int, state.NumNodes())
	for i := 0; i < state.NumNodes(); i++ {
		c.positions[state.Value(i)] = append(c.positions[state.Value(i)], i)
	}
	return nil
}

func (c *NightHawkComplement) NextMove(state game.State) (int, error) {
	if state.IsFinished() {
		return -1, ErrNoAvailableMove
	}

	last, ok := state.LastMove()
	if !ok {
		return c.opening(state), nil
	}

	needed := meta.COMPLEMENT_CONSTANT - state.Value(last)
	indices, ok := c.positions[needed]
	if !ok {
		return -1, fmt.Errorf("no node holds value %d answering %d: %w", needed, last, ErrComplementNotFound)
	}
	for _, index := range indices {
		if state.Status(index) == game.Free {
			return index, nil
		}
	}
	return -1, fmt.Errorf("every node holding value %d is taken: %w", needed, ErrComplementNotFound)
}

// opening picks the most valuable FREE node when there is nothing to answer.
func (c *NightHawkComplement) opening(state game.State) int {
	best := -1
	for i := 0; i < state.NumNodes(); i++ {
		if state.Status(i) == game.Free && (best < 0 || state.Value(i) > state.Value(best)) {
			best = i
		}
	}
	return best
}
