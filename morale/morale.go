// Package morale implements morale checks, the failure/rally state
// machine, and the situational modifiers other systems feed into it.
package morale

import (
	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/rng"
)

func clamp(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sum(modifiers []int) int {
	total := 0
	for _, m := range modifiers {
		total += m
	}
	return total
}

// CheckResult is the outcome of a single morale test.
type CheckResult struct {
	EffectiveSkill int
	Roll           int
	Passed         bool
	FailureMargin  int // roll - effective, meaningful only on failure
}

// Check clamps baseSkill plus modifiers into [5,95] and rolls D100,
// passing iff the roll is at or below the effective skill.
func Check(src rng.Source, baseSkill int, modifiers ...int) CheckResult {
	effective := clamp(5, 95, baseSkill+sum(modifiers))
	r := src.RollD100()
	return CheckResult{
		EffectiveSkill: effective,
		Roll:           r,
		Passed:         r <= effective,
		FailureMargin:  r - effective,
	}
}

// ApplyFailure maps a failed check's margin onto the morale state
// machine: 1-20 shaken, 21-40 broken, >=41 routed. Status only ever
// worsens; a margin that would improve the current status is a no-op.
func ApplyFailure(current ecs.MoraleStatus, failureMargin int) ecs.MoraleStatus {
	var result ecs.MoraleStatus
	switch {
	case failureMargin >= 41:
		result = ecs.MoraleRouted
	case failureMargin >= 21:
		result = ecs.MoraleBroken
	case failureMargin >= 1:
		result = ecs.MoraleShaken
	default:
		result = current
	}
	if severity(result) > severity(current) {
		return result
	}
	return current
}

func severity(s ecs.MoraleStatus) int {
	switch s {
	case ecs.MoraleSteady:
		return 0
	case ecs.MoraleShaken:
		return 1
	case ecs.MoraleBroken:
		return 2
	case ecs.MoraleRouted:
		return 3
	default:
		return 0
	}
}

// Rally improves shaken or broken by one step on a passed check;
// routed units can never rally, and steady units have nothing to
// rally from.
func Rally(current ecs.MoraleStatus, passed bool) ecs.MoraleStatus {
	if !passed {
		return current
	}
	switch current {
	case ecs.MoraleShaken:
		return ecs.MoraleSteady
	case ecs.MoraleBroken:
		return ecs.MoraleShaken
	default:
		return current
	}
}

// LeadershipBonus is the rally-check bonus from nearby steady allies:
// +5 per ally within range, capped at +20.
func LeadershipBonus(nearbySteadyAllies int) int {
	bonus := nearbySteadyAllies * 5
	if bonus > 20 {
		return 20
	}
	return bonus
}

// ActionPenalty is the modifier a unit's current morale status applies
// to its other skill checks. Routed is reported separately via
// BlocksAction since it blocks all action rather than imposing a
// numeric penalty.
func ActionPenalty(status ecs.MoraleStatus) int {
	switch status {
	case ecs.MoraleShaken:
		return -10
	case ecs.MoraleBroken:
		return -20
	default:
		return 0
	}
}

// BlocksAction reports whether the status prevents the unit from
// acting at all.
func BlocksAction(status ecs.MoraleStatus) bool {
	return status == ecs.MoraleRouted
}
