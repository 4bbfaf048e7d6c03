package game

import (
	"facility/meta"
	"fmt"
)

// CheckPairs verifies that player B answered every move of player A as the
// game type demands: the mirrored node for COPY, the complementary value for
// COMPLEMENT. NORMAL games always pass.
func (gs *GameState) CheckPairs() error {
	if !gs.gameType.Mirrored() {
		return nil
	}
	size := len(gs.values)
	for ply := 1; ply < len(gs.moves); ply += 2 {
		a, b := gs.moves[ply-1], gs.moves[ply]
		switch gs.gameType {
		case Copy:
			if Mirror(size, a) != b {
				return fmt.Errorf("move %d: %s played %d, expected mirror %d of %d", ply, PlayerB, b, Mirror(size, a), a)
			}
		case Complement:
			if sum := gs.values[a] + gs.values[b]; sum != meta.COMPLEMENT_CONSTANT {
				return fmt.Errorf("move %d: values %d + %d = %d, expected %d", ply, gs.values[a], gs.values[b], sum, meta.COMPLEMENT_CONSTANT)
			}
		}
	}
	return nil
}
