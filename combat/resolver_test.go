package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttu/skirmish-sim/combat"
	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/rng"
)

func TestAttackRollClampsEffectiveSkill(t *testing.T) {
	src := rng.New(1)
	res := combat.AttackRoll(src, 90, 20, 20)
	assert.Equal(t, 95, res.EffectiveSkill)

	src2 := rng.New(1)
	res2 := combat.AttackRoll(src2, 10, -20)
	assert.Equal(t, 5, res2.EffectiveSkill)
}

func TestAttackRollHitIffRollAtOrBelowEffective(t *testing.T) {
	src := rng.New(42)
	res := combat.AttackRoll(src, 50)
	assert.Equal(t, res.Roll <= res.EffectiveSkill, res.Hit)
}

func TestRollHitLocationBuckets(t *testing.T) {
	src := rng.New(7)
	seen := map[ecs.HitLocation]bool{}
	for i := 0; i < 500; i++ {
		loc, roll := combat.RollHitLocation(src)
		switch {
		case roll <= 15:
			assert.Equal(t, ecs.LocationHead, loc)
		case roll <= 35:
			assert.Equal(t, ecs.LocationTorso, loc)
		case roll <= 55:
			assert.Equal(t, ecs.LocationArms, loc)
		case roll <= 80:
			assert.Equal(t, ecs.LocationLegs, loc)
		default:
			assert.Equal(t, ecs.LocationWeapon, loc)
		}
		seen[loc] = true
	}
	assert.Len(t, seen, 5)
}

func TestLocationMultiplier(t *testing.T) {
	assert.Equal(t, 3, combat.LocationMultiplier(ecs.LocationHead))
	assert.Equal(t, 0, combat.LocationMultiplier(ecs.LocationWeapon))
	assert.Equal(t, 1, combat.LocationMultiplier(ecs.LocationTorso))
	assert.Equal(t, 1, combat.LocationMultiplier(ecs.LocationArms))
	assert.Equal(t, 1, combat.LocationMultiplier(ecs.LocationLegs))
}

func TestRollDamageTripleHeadDamage(t *testing.T) {
	dice := ecs.DamageDice{Dice: 1, Sides: 1, Bonus: 4} // always rolls exactly 5
	src := rng.New(3)

	headResult := combat.RollDamage(src, dice, ecs.LocationHead, 0)
	assert.Equal(t, 5, headResult.Raw)
	assert.Equal(t, 15, headResult.Final)

	torsoResult := combat.RollDamage(src, dice, ecs.LocationTorso, 0)
	assert.Equal(t, 5, torsoResult.Raw)
	assert.Equal(t, 5, torsoResult.Final)
}

func TestRollDamageArmorNeverNegative(t *testing.T) {
	dice := ecs.DamageDice{Dice: 1, Sides: 1, Bonus: 1}
	src := rng.New(9)
	result := combat.RollDamage(src, dice, ecs.LocationTorso, 100)
	assert.Equal(t, 0, result.Final)
	assert.Equal(t, 2, result.Absorbed)
}

// TestRollDamageHeadVsArmorAppliesMultiplierAfterArmor pins spec §4.F's
// order of operations: final = max(0, raw-armor) * multiplier, not
// (raw*multiplier)-armor. A raw 7 against a knight's head armor of 4
// must yield (7-4)*3 = 9, not (7*3)-4 = 17.
func TestRollDamageHeadVsArmorAppliesMultiplierAfterArmor(t *testing.T) {
	dice := ecs.DamageDice{Dice: 1, Sides: 1, Bonus: 6} // always rolls exactly 7
	src := rng.New(11)

	result := combat.RollDamage(src, dice, ecs.LocationHead, 4)
	assert.Equal(t, 7, result.Raw)
	assert.Equal(t, 4, result.Absorbed)
	assert.Equal(t, 9, result.Final)
}

// TestRollDamageWeaponLocationKeepsUnmultipliedRaw pins spec §4.F/§4.M
// step 9: a "weapon" hit location zeroes body damage (Final) but Raw
// must still carry the unmultiplied dice roll, since that's what the
// weapon-break chance and stamina drain are computed from.
func TestRollDamageWeaponLocationKeepsUnmultipliedRaw(t *testing.T) {
	dice := ecs.DamageDice{Dice: 1, Sides: 1, Bonus: 6} // always rolls exactly 7
	src := rng.New(5)

	result := combat.RollDamage(src, dice, ecs.LocationWeapon, 0)
	assert.Equal(t, 7, result.Raw)
	assert.Equal(t, 0, result.Final)
	assert.Equal(t, 30, combat.WeaponBreakChance(result.Raw))
}

func TestWeaponBreakChanceCapsAt30(t *testing.T) {
	assert.Equal(t, 5, combat.WeaponBreakChance(1))
	assert.Equal(t, 30, combat.WeaponBreakChance(10))
	assert.Equal(t, 30, combat.WeaponBreakChance(100))
}

func TestClassifyArmor(t *testing.T) {
	assert.Equal(t, combat.ArmorUnarmored, combat.ClassifyArmor(0))
	assert.Equal(t, combat.ArmorUnarmored, combat.ClassifyArmor(4))
	assert.Equal(t, combat.ArmorLight, combat.ClassifyArmor(5))
	assert.Equal(t, combat.ArmorLight, combat.ClassifyArmor(8))
	assert.Equal(t, combat.ArmorMedium, combat.ClassifyArmor(9))
	assert.Equal(t, combat.ArmorMedium, combat.ClassifyArmor(14))
	assert.Equal(t, combat.ArmorHeavy, combat.ClassifyArmor(15))
}

func TestDodgePenaltyHeavyForbidden(t *testing.T) {
	p, forbidden := combat.DodgePenalty(combat.ArmorHeavy)
	assert.True(t, forbidden)
	assert.Equal(t, 0, p)

	p, forbidden = combat.DodgePenalty(combat.ArmorMedium)
	assert.False(t, forbidden)
	assert.Equal(t, -30, p)
}

func TestSelectRangedDefenseType(t *testing.T) {
	assert.Equal(t, ecs.DefenseBlock, combat.SelectRangedDefenseType(true, 60, 50, true))
	assert.Equal(t, ecs.DefenseDodge, combat.SelectRangedDefenseType(true, 40, 50, true))
	assert.Equal(t, ecs.DefenseBlock, combat.SelectRangedDefenseType(false, 0, 50, false))
}

func TestSelectMeleeDefenseTypeRanksBySkill(t *testing.T) {
	assert.Equal(t, ecs.DefenseDodge, combat.SelectMeleeDefenseType(true, true, 30, 30, 90))
	assert.Equal(t, ecs.DefenseBlock, combat.SelectMeleeDefenseType(true, true, 50, 50, 50))
	assert.Equal(t, ecs.DefenseParry, combat.SelectMeleeDefenseType(false, true, 0, 50, 50))
}

func TestSelectMeleeDefenseTypeHeavyArmorNeverDodges(t *testing.T) {
	assert.Equal(t, ecs.DefenseBlock, combat.SelectMeleeDefenseType(true, false, 10, 99, 99))
	assert.Equal(t, ecs.DefenseParry, combat.SelectMeleeDefenseType(false, false, 0, 10, 99))
}
