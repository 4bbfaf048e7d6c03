package game

import "fmt"

// Score is derived from the board; it is never a source of truth.
type Score struct {
	A int `json:"score_a"`
	B int `json:"score_b"`
}

func (s *Score) set(p Player, points int) {
	if p == PlayerA {
		s.A = points
	} else {
		s.B = points
	}
}

// Winner returns the leading player, ok is false on a tie.
func (s Score) Winner() (winner Player, ok bool) {
	switch {
	case s.A > s.B:
		return PlayerA, true
	case s.B > s.A:
		return PlayerB, true
	}
	return 0, false
}

func (s Score) String() string {
	return fmt.Sprintf("Game score -- Player A: %d, Player B: %d", s.A, s.B)
}
