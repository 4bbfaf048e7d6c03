package player

import (
	"facility/game"
	"facility/meta"

	"github.com/rs/zerolog/log"
)

type candidate struct {
	index int
	value int
}

var noCandidate = candidate{index: -1}

func (c candidate) valid() bool {
	return c.index >= 0
}

// NightHawk grows its own runs and breaks the opponent's. Each turn it scores
// edge extensions and gap fills for both sides' groups, plus the most
// valuable FREE node, and plays the best one. Blocking moves are discounted
// by the risk factor.
type NightHawk struct {
	profile
	riskFactor float64
	own        groupList
	opponent   groupList
	sorted     []int
	cursor     int
	seen       int // plies of the move log already folded
}

func NewNightHawk(me game.Player, opts ...Option) *NightHawk {
	o := buildOptions(opts)
	return &NightHawk{
		profile:    profile{me: me, name: "nighthawk", version: "2.0"},
		riskFactor: o.riskFactor,
	}
}

func (nh *NightHawk) Initialize(state game.State) error {
	nh.own.reset()
	nh.opponent.reset()
	nh.sorted = byValue(state)
	nh.cursor = 0
	nh.seen = 0
	return nil
}

// Groups returns a copy of the strategy's own groups.
func (nh *NightHawk) Groups() []Group {
	return nh.own.snapshot()
}

// OpponentGroups returns a copy of the groups tracked for the opponent.
func (nh *NightHawk) OpponentGroups() []Group {
	return nh.opponent.snapshot()
}

func (nh *NightHawk) NextMove(state game.State) (int, error) {
	nh.observe(state)

	best := noCandidate
	consider := func(c candidate) {
		if c.valid() && (!best.valid() || c.value > best.value) {
			best = c
		}
	}
	consider(nh.edges(state, &nh.own))
	consider(nh.middles(state, &nh.own))
	consider(nh.fallback(state))
	if !best.valid() {
		return -1, ErrNoAvailableMove
	}

	block := noCandidate
	for _, c := range []candidate{nh.edges(state, &nh.opponent), nh.middles(state, &nh.opponent)} {
		if c.valid() && (!block.valid() || c.value > block.value) {
			block = c
		}
	}
	if block.valid() && float64(block.value)*nh.riskFactor > float64(best.value) {
		log.Debug().Msgf("%s blocking at %d (%d) over %d (%d)", nh.About(), block.index, block.value, best.index, best.value)
		best = block
	}

	nh.own.add(best.index, state.Value(best.index))
	return best.index, nil
}

// observe folds opponent moves played since the last call. Own moves are
// folded when chosen.
func (nh *NightHawk) observe(state game.State) {
	for ; nh.seen < state.NumMoves(); nh.seen++ {
		if game.PlayerOfPly(nh.seen) == nh.me {
			continue
		}
		index := state.Move(nh.seen)
		nh.opponent.add(index, state.Value(index))
	}
}

// edges scores extending each group by a node two or three positions past
// either boundary. A side without a FREE candidate is closed for good.
func (nh *NightHawk) edges(state game.State, groups *groupList) candidate {
	best := noCandidate
	try := func(g *Group, index int) bool {
		if index < 0 || index >= state.NumNodes() || state.Status(index) != game.Free {
			return false
		}
		if c := (candidate{index, edgeGain(g, state.Value(index))}); !best.valid() || c.value > best.value {
			best = c
		}
		return true
	}

	for i := range groups.items {
		g := &groups.items[i]
		if !g.BlockedLeft {
			found := try(g, g.Left-3)
			found = try(g, g.Left-2) || found
			g.BlockedLeft = !found
		}
		if !g.BlockedRight {
			found := try(g, g.Right+2)
			found = try(g, g.Right+3) || found
			g.BlockedRight = !found
		}
	}
	return best
}

// middles scores filling the gap between two neighboring groups, which joins
// them into one run.
func (nh *NightHawk) middles(state game.State, groups *groupList) candidate {
	best := noCandidate
	for i := 0; i+1 < len(groups.items); i++ {
		left, right := &groups.items[i], &groups.items[i+1]
		for _, index := range gapFills(left.Right, right.Left) {
			if state.Status(index) != game.Free {
				continue
			}
			c := candidate{index, middleGain(left, state.Value(index), right)}
			if !best.valid() || c.value > best.value {
				best = c
			}
		}
	}
	return best
}

// gapFills lists the positions between two groups that touch both of them.
func gapFills(right, left int) []int {
	switch left - right {
	case 4:
		return []int{right + 2}
	case 5:
		return []int{right + 2, right + 3}
	case 6:
		return []int{right + 3}
	}
	return nil
}

// fallback is the most valuable FREE node.
func (nh *NightHawk) fallback(state game.State) candidate {
	for ; nh.cursor < len(nh.sorted); nh.cursor++ {
		if index := nh.sorted[nh.cursor]; state.Status(index) == game.Free {
			return candidate{index, state.Value(index)}
		}
	}
	return noCandidate
}

func edgeGain(g *Group, value int) int {
	switch {
	case g.Count >= meta.BONUS_MIN_GROUP_SIZE:
		return meta.BONUS_FACTOR * value
	case g.Count == meta.BONUS_MIN_GROUP_SIZE-1:
		return meta.BONUS_FACTOR*value + (meta.BONUS_FACTOR-1)*g.Value
	}
	return value
}

func middleGain(left *Group, value int, right *Group) int {
	return sideWeight(left)*left.Value + meta.BONUS_FACTOR*value + sideWeight(right)*right.Value
}

func sideWeight(g *Group) int {
	if g.Count >= meta.BONUS_MIN_GROUP_SIZE {
		return meta.BONUS_FACTOR
	}
	return meta.BONUS_FACTOR - 1
}
