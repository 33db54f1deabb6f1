// Package wounds turns a landed hit into accumulated WoundEffects:
// the threshold/severity table for arms, legs and torso, the
// head-shot toughness check, and the end-of-turn bleed tick.
package wounds

import (
	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/rng"
)

// Severity classifies an excess-damage roll against the wound table.
// A non-positive excess produces no wound effect at all.
func Severity(excess int) (ecs.WoundSeverity, bool) {
	switch {
	case excess >= 8:
		return ecs.SeveritySevere, true
	case excess >= 4:
		return ecs.SeverityModerate, true
	case excess >= 1:
		return ecs.SeverityMinor, true
	default:
		return "", false
	}
}

// Threshold is the armor-scaled damage a hit must exceed before it
// produces a wound effect: twice the location's armor rating.
func Threshold(locationArmor int) int {
	return 2 * locationArmor
}

// FromHit builds the wound effect a hit at loc with finalDamage
// produces, given the location's armor rating. Head and weapon hits
// never produce wound effects (ok is false); arms, legs and torso look
// up severity from excess = finalDamage - threshold(locationArmor).
func FromHit(loc ecs.HitLocation, finalDamage, locationArmor int) (ecs.WoundEffect, bool) {
	if loc != ecs.LocationArms && loc != ecs.LocationLegs && loc != ecs.LocationTorso {
		return ecs.WoundEffect{}, false
	}

	excess := finalDamage - Threshold(locationArmor)
	severity, ok := Severity(excess)
	if !ok {
		return ecs.WoundEffect{}, false
	}

	effect := ecs.WoundEffect{Location: loc, Severity: severity}
	switch loc {
	case ecs.LocationArms:
		switch severity {
		case ecs.SeverityMinor:
			effect.SkillPenalty = 5
		case ecs.SeverityModerate:
			effect.SkillPenalty = 15
		case ecs.SeveritySevere:
			effect.SkillPenalty = 30
			effect.DisablesTwoHanded = true
		}
	case ecs.LocationLegs:
		switch severity {
		case ecs.SeverityMinor:
			effect.MovementPenalty = 1
		case ecs.SeverityModerate:
			effect.HalvesMovement = true
		case ecs.SeveritySevere:
			effect.HalvesMovement = true
			effect.RestrictsMoveMode = true
		}
	case ecs.LocationTorso:
		switch severity {
		case ecs.SeverityMinor:
			effect.BleedingPerTurn = 1
		case ecs.SeverityModerate:
			effect.BleedingPerTurn = 3
		case ecs.SeveritySevere:
			effect.BleedingPerTurn = 5
			effect.SkillPenalty = 10
		}
	}
	return effect, true
}

// Totals is the additive sum of every accumulated wound effect: skill
// penalties and bleed sum, boolean restrictions OR together.
type Totals struct {
	SkillPenalty      int
	MovementPenalty   int
	BleedingPerTurn   int
	DisablesTwoHanded bool
	RestrictsMoveMode bool
	HalvesMovement    bool
}

// Accumulate sums a unit's accumulated wound effects additively.
func Accumulate(effects []ecs.WoundEffect) Totals {
	var t Totals
	for _, e := range effects {
		t.SkillPenalty += e.SkillPenalty
		t.MovementPenalty += e.MovementPenalty
		t.BleedingPerTurn += e.BleedingPerTurn
		t.DisablesTwoHanded = t.DisablesTwoHanded || e.DisablesTwoHanded
		t.RestrictsMoveMode = t.RestrictsMoveMode || e.RestrictsMoveMode
		t.HalvesMovement = t.HalvesMovement || e.HalvesMovement
	}
	return t
}

// HeadShotForcesToughnessCheck reports whether a head hit's raw
// pre-armor damage is severe enough to force a toughness check
// (rawDamage * 3 > 5).
func HeadShotForcesToughnessCheck(rawDamage int) bool {
	return rawDamage*3 > 5
}

// ToughnessCheck rolls D100 against the defender's clamped toughness;
// failure sends the defender down immediately, independent of
// remaining HP.
func ToughnessCheck(src rng.Source, toughness int) (roll int, down bool) {
	effective := toughness
	if effective < 5 {
		effective = 5
	}
	if effective > 95 {
		effective = 95
	}
	roll = src.RollD100()
	return roll, roll > effective
}

// BleedTick is the total HP a unit's accumulated wound effects drain
// at end of turn, before stamina/AP recovery.
func BleedTick(effects []ecs.WoundEffect) int {
	return Accumulate(effects).BleedingPerTurn
}
