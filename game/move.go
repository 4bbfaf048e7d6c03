package game

import "fmt"

// Move is one entry of the move log.
type Move struct {
	Ply    int    `json:"ply"`
	Player Player `json:"player"`
	Index  int    `json:"index"`
}

func (m Move) String() string {
	return fmt.Sprintf("#%d %s -> %d", m.Ply, m.Player, m.Index)
}
