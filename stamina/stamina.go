// Package stamina implements fatigue drain, recovery, and the defense
// skill penalty it imposes as a unit tires.
package stamina

import "github.com/ttu/skirmish-sim/ecs"

// Drain reduces current stamina by n (floored at 0) and sets Exhausted
// when it crosses to zero.
func Drain(s ecs.StaminaComponent, n int) ecs.StaminaComponent {
	s.Current -= n
	if s.Current < 0 {
		s.Current = 0
	}
	s.Exhausted = s.Current <= 0
	return s
}

// Recover restores stamina at end of turn: +1 if the unit was hit this
// turn, +3 otherwise, capped at max. Recovering above zero always
// clears Exhausted, even if the unit is still below max.
func Recover(s ecs.StaminaComponent, wasHit bool) ecs.StaminaComponent {
	gain := 3
	if wasHit {
		gain = 1
	}
	s.Current += gain
	if s.Current > s.Max {
		s.Current = s.Max
	}
	s.Exhausted = s.Current <= 0
	return s
}

// ArmorImpactDrain is the stamina an absorbed hit costs its wearer:
// half the absorbed damage, rounded up.
func ArmorImpactDrain(absorbed int) int {
	return (absorbed + 1) / 2
}

// DefensePenalty is the skill penalty a unit's defense rolls suffer
// based on its stamina fraction: >=75% none, >=50% -10, >=25% -20,
// >0% -30, exhausted (0) -40.
func DefensePenalty(s ecs.StaminaComponent) int {
	if s.Max <= 0 {
		return 0
	}
	if s.Current <= 0 {
		return -40
	}
	frac := float64(s.Current) / float64(s.Max)
	switch {
	case frac >= 0.75:
		return 0
	case frac >= 0.50:
		return -10
	case frac >= 0.25:
		return -20
	default:
		return -30
	}
}

// ExhaustionAPPenalty is the extra ActionPoints.Max reduction an
// exhausted unit suffers, on top of its armor penalty.
func ExhaustionAPPenalty(s ecs.StaminaComponent) int {
	if s.Exhausted {
		return 1
	}
	return 0
}
