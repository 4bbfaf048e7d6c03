package player

import "errors"

var (
	// ErrNoAvailableMove means NextMove was called on a board without FREE
	// nodes. The driver should have stopped the game before.
	ErrNoAvailableMove = errors.New("no available move")
	// ErrComplementNotFound means no FREE node holds the complement of the
	// opponent's last value.
	ErrComplementNotFound = errors.New("complement not found")
)
