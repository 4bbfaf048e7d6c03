package game

import "facility/meta"

type StandardRules struct {
	MinGroupSize int
	Factor       int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		MinGroupSize: meta.BONUS_MIN_GROUP_SIZE,
		Factor:       meta.BONUS_FACTOR,
	}
}

func (sr *StandardRules) BonusMinGroupSize() int {
	return sr.MinGroupSize
}

func (sr *StandardRules) BonusFactor() int {
	return sr.Factor
}
