package player

import (
	"facility/game"

	"golang.org/x/exp/rand"
)

// RandomWrap scans circularly for a FREE node from a random start in a random
// direction, both drawn once from a generator seeded with node 0's value.
type RandomWrap struct {
	profile
	start       int
	leftToRight bool
}

func NewRandomWrap(me game.Player, _ ...Option) *RandomWrap {
	return &RandomWrap{profile: profile{me: me, name: "random-wrap", version: "1.0"}}
}

func (r *RandomWrap) Initialize(state game.State) error {
	if state.NumNodes() == 0 {
		return nil
	}
	gen := rand.New(rand.NewSource(uint64(state.Value(0))))
	r.start = gen.Intn(state.NumNodes())
	r.leftToRight = gen.Intn(2) == 0
	return nil
}

func (r *RandomWrap) NextMove(state game.State) (int, error) {
	n := state.NumNodes()
	step := 1
	if !r.leftToRight {
		step = n - 1
	}
	for i, index := 0, r.start; i < n; i, index = i+1, (index+step)%n {
		if state.Status(index) == game.Free {
			return index, nil
		}
	}
	return -1, ErrNoAvailableMove
}
