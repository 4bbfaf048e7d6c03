package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalMove is matched by every *IllegalMoveError.
	ErrIllegalMove = errors.New("illegal move")
	// ErrConfig marks configuration that cannot produce a game.
	ErrConfig = errors.New("invalid configuration")
)

type Reason int

const (
	WrongTurn Reason = iota
	OutOfRange
	NotFree
	GameOver
)

func (r Reason) String() string {
	switch r {
	case WrongTurn:
		return "wrong turn"
	case OutOfRange:
		return "out of range"
	case NotFree:
		return "not free"
	case GameOver:
		return "game over"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// IllegalMoveError is returned by GameState.Play when a move is rejected.
// The game state is left untouched.
type IllegalMoveError struct {
	Player Player
	Index  int
	Reason Reason
	detail string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("%s: %s", ErrIllegalMove, e.detail)
}

func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}
