// Package score maps an analysis result to a bounded 0-100 stack health
// score for gamified display.
package score

import (
	"stacksafe/core/risk"
	"stacksafe/core/types"
)

// Policy holds the scoring constants. Defaults are product policy, not
// contract; change them here, never inline.
type Policy struct {
	Base int

	CriticalPenalty, CriticalFloor int
	HighPenalty, HighFloor         int
	ModeratePenalty, ModerateFloor int
	LowPenalty, LowFloor           int
	NoneBonus                      int

	InteractionPenaltyPer, InteractionPenaltyCap int
	WarningPenaltyPer, WarningPenaltyCap         int
	EngagementBonusPer, EngagementBonusCap       int
}

// DefaultPolicy returns the default scoring constants
func DefaultPolicy() Policy {
	return Policy{
		Base:                  75,
		CriticalPenalty:       50,
		CriticalFloor:         0,
		HighPenalty:           35,
		HighFloor:             20,
		ModeratePenalty:       20,
		ModerateFloor:         40,
		LowPenalty:            10,
		LowFloor:              60,
		NoneBonus:             10,
		InteractionPenaltyPer: 5,
		InteractionPenaltyCap: 30,
		WarningPenaltyPer:     3,
		WarningPenaltyCap:     20,
		EngagementBonusPer:    2,
		EngagementBonusCap:    15,
	}
}

// Score computes the stack health score. The ordering is fixed: severity
// adjustment with its floor clamp, then count penalties, clamp to [0,100],
// then the engagement bonus, then the final clamp. Swapping the bonus and
// penalty order changes boundary outcomes, so it must not be reordered.
// An empty stack scores the base: no severity adjustment and no bonus.
func Score(policy Policy, result risk.Result, stackSize int) int {
	if stackSize == 0 {
		return clamp(policy.Base, 0, 100)
	}

	s := policy.Base

	// The floor prevents one extra penalty from producing a paradoxically
	// worse score than a simpler stack at the same risk level.
	switch result.OverallRiskLevel {
	case types.SeverityCritical:
		s = floored(s-policy.CriticalPenalty, policy.CriticalFloor)
	case types.SeverityHigh:
		s = floored(s-policy.HighPenalty, policy.HighFloor)
	case types.SeverityModerate:
		s = floored(s-policy.ModeratePenalty, policy.ModerateFloor)
	case types.SeverityLow:
		s = floored(s-policy.LowPenalty, policy.LowFloor)
	case types.SeverityNone:
		s += policy.NoneBonus
	}

	s -= min(policy.InteractionPenaltyCap, policy.InteractionPenaltyPer*len(result.Interactions))
	s -= min(policy.WarningPenaltyCap, policy.WarningPenaltyPer*len(result.NutrientWarnings))
	s = clamp(s, 0, 100)

	s += min(policy.EngagementBonusCap, policy.EngagementBonusPer*stackSize)
	return clamp(s, 0, 100)
}

func floored(value, floor int) int {
	if value < floor {
		return floor
	}
	return value
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
