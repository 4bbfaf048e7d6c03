package game

import "fmt"

type Player int

const (
	PlayerA Player = iota // always plays ply 0
	PlayerB
)

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "PLAYER_A"
	case PlayerB:
		return "PLAYER_B"
	}
	return fmt.Sprintf("Player(%d)", int(p))
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == PlayerA {
		return PlayerB
	}
	return PlayerA
}

// Owns returns the node status a move by p leaves behind.
func (p Player) Owns() Status {
	if p == PlayerA {
		return OwnedByA
	}
	return OwnedByB
}

// PlayerOfPly returns who plays the given 0-indexed ply.
func PlayerOfPly(ply int) Player {
	return Player(ply % 2)
}

// ParsePlayer accepts "A", "B", "PLAYER_A" and "PLAYER_B".
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "A", "a", "PLAYER_A":
		return PlayerA, nil
	case "B", "b", "PLAYER_B":
		return PlayerB, nil
	}
	return 0, fmt.Errorf("unknown player %q: %w", s, ErrConfig)
}

// Status of a single node. A node never returns to Free once it leaves it.
type Status int

const (
	Free Status = iota
	Blocked
	OwnedByA
	OwnedByB
)

func (s Status) String() string {
	switch s {
	case Free:
		return "FREE"
	case Blocked:
		return "BLOCKED"
	case OwnedByA:
		return "PLAYER_A"
	case OwnedByB:
		return "PLAYER_B"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Short is the one-letter form used when printing a board.
func (s Status) Short() string {
	switch s {
	case OwnedByA:
		return "A"
	case OwnedByB:
		return "B"
	case Blocked:
		return "x"
	}
	return "."
}
