package player

import (
	"golang.org/x/exp/slices"
)

// mergeDistance is the largest index gap that still joins two moves into one
// run: the nodes between them are all blocked.
const mergeDistance = 3

// Group is a maximal set of one player's nodes that already score as a single
// run.
type Group struct {
	Left         int
	Right        int
	Count        int
	Value        int
	BlockedLeft  bool
	BlockedRight bool
}

// groupList keeps groups sorted by Left with no two within mergeDistance.
type groupList struct {
	items []Group
}

// add folds the move at index with the given node value into the list,
// merging with the neighboring group on either side when close enough.
func (gl *groupList) add(index, value int) {
	pos, _ := slices.BinarySearchFunc(gl.items, index, func(g Group, target int) int {
		return g.Left - target
	})

	g := Group{Left: index, Right: index, Count: 1, Value: value}
	lo, hi := pos, pos

	if pos > 0 && index-gl.items[pos-1].Right <= mergeDistance {
		left := gl.items[pos-1]
		g.Left = left.Left
		g.Right = max(g.Right, left.Right)
		g.Count += left.Count
		g.Value += left.Value
		g.BlockedLeft = left.BlockedLeft
		if left.Right > index {
			g.BlockedRight = left.BlockedRight
		}
		lo = pos - 1
	}
	if pos < len(gl.items) && gl.items[pos].Left-index <= mergeDistance {
		right := gl.items[pos]
		g.Right = max(g.Right, right.Right)
		g.Count += right.Count
		g.Value += right.Value
		g.BlockedRight = right.BlockedRight
		hi = pos + 1
	}

	gl.items = slices.Replace(gl.items, lo, hi, g)
}

func (gl *groupList) reset() {
	gl.items = gl.items[:0]
}

func (gl *groupList) snapshot() []Group {
	return slices.Clone(gl.items)
}
