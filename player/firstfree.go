package player

import "facility/game"

// FirstFree always takes the lowest FREE index.
type FirstFree struct {
	profile
}

func NewFirstFree(me game.Player, _ ...Option) *FirstFree {
	return &FirstFree{profile{me: me, name: "first-free", version: "1.0"}}
}

func (f *FirstFree) Initialize(game.State) error {
	return nil
}

func (f *FirstFree) NextMove(state game.State) (int, error) {
	for i := 0; i < state.NumNodes(); i++ {
		if state.Status(i) == game.Free {
			return i, nil
		}
	}
	return -1, ErrNoAvailableMove
}
