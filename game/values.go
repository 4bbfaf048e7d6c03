package game

import (
	"facility/meta"
	"fmt"

	"golang.org/x/exp/rand"
)

// GenerateValues assigns a deterministic value to each of size nodes.
//
// NORMAL draws every value uniformly from [1, MAX_VALUE]. COPY fills the first
// half with a random permutation of consecutive integers starting at MIN_VALUE
// and repeats it in the second half. COMPLEMENT fills the first half with a
// random permutation of odd integers starting at MIN_VALUE+1 and places
// COMPLEMENT_CONSTANT minus that value at the mirrored position. For odd sizes
// the middle node gets value 0; NewGameState marks it blocked.
func GenerateValues(size int, seed uint64, gameType GameType) ([]int, error) {
	if size <= 0 {
		return nil, fmt.Errorf("board size %d must be positive: %w", size, ErrConfig)
	}
	if gameType.Mirrored() && size < meta.MIN_MIRRORED_SIZE {
		return nil, fmt.Errorf("%s needs at least %d nodes, got %d: %w", gameType, meta.MIN_MIRRORED_SIZE, size, ErrConfig)
	}

	gen := rand.New(rand.NewSource(seed))
	values := make([]int, size)

	switch gameType {
	case Normal:
		for i := range values {
			values[i] = 1 + gen.Intn(meta.MAX_VALUE)
		}
	case Copy:
		half := size / 2
		offset := MirrorOffset(size)
		for k, p := range gen.Perm(half) {
			values[k] = meta.MIN_VALUE + p
			values[offset+k] = values[k]
		}
	case Complement:
		half := size / 2
		if err := checkComplementRange(half); err != nil {
			return nil, err
		}
		offset := MirrorOffset(size)
		for k, p := range gen.Perm(half) {
			values[k] = meta.MIN_VALUE + 1 + 2*p
			values[offset+k] = meta.COMPLEMENT_CONSTANT - values[k]
		}
	default:
		return nil, fmt.Errorf("unknown game type %d: %w", int(gameType), ErrConfig)
	}

	return values, nil
}

// MirrorOffset is the index where the second half of a mirrored board starts.
func MirrorOffset(size int) int {
	return size/2 + size%2
}

// Mirror returns the position paired with index on a mirrored board, or -1
// for the blocked middle node of an odd board.
func Mirror(size, index int) int {
	half := size / 2
	offset := MirrorOffset(size)
	switch {
	case index < half:
		return offset + index
	case index >= offset:
		return index - offset
	}
	return -1
}

// COMPLEMENT_CONSTANT is fixed while the first-half values grow with the board,
// so very large boards would produce non-positive complements.
func checkComplementRange(half int) error {
	largest := meta.MIN_VALUE + 1 + 2*(half-1)
	if largest >= meta.COMPLEMENT_CONSTANT {
		return fmt.Errorf("COMPLEMENT board of half size %d exceeds complement constant %d: %w", half, meta.COMPLEMENT_CONSTANT, ErrConfig)
	}
	return nil
}
