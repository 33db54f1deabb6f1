package wounds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/rng"
	"github.com/ttu/skirmish-sim/wounds"
)

func TestFromHitHeadAndWeaponNeverWound(t *testing.T) {
	_, ok := wounds.FromHit(ecs.LocationHead, 20, 0)
	assert.False(t, ok)
	_, ok = wounds.FromHit(ecs.LocationWeapon, 20, 0)
	assert.False(t, ok)
}

func TestFromHitArmsSeverityTiers(t *testing.T) {
	minor, ok := wounds.FromHit(ecs.LocationArms, 1, 0)
	assert.True(t, ok)
	assert.Equal(t, 5, minor.SkillPenalty)

	severe, ok := wounds.FromHit(ecs.LocationArms, 8, 0)
	assert.True(t, ok)
	assert.Equal(t, 30, severe.SkillPenalty)
	assert.True(t, severe.DisablesTwoHanded)
}

func TestFromHitLegsSeverityTiers(t *testing.T) {
	severe, ok := wounds.FromHit(ecs.LocationLegs, 8, 0)
	assert.True(t, ok)
	assert.True(t, severe.HalvesMovement)
	assert.True(t, severe.RestrictsMoveMode)
}

func TestFromHitTorsoSeverityTiers(t *testing.T) {
	severe, ok := wounds.FromHit(ecs.LocationTorso, 8, 0)
	assert.True(t, ok)
	assert.Equal(t, 5, severe.BleedingPerTurn)
	assert.Equal(t, 10, severe.SkillPenalty)
}

func TestFromHitBelowThresholdProducesNothing(t *testing.T) {
	_, ok := wounds.FromHit(ecs.LocationTorso, 4, 4) // threshold = 8, excess = -4
	assert.False(t, ok)
}

func TestAccumulateIsAdditiveAndORs(t *testing.T) {
	totals := wounds.Accumulate([]ecs.WoundEffect{
		{SkillPenalty: 5, BleedingPerTurn: 1},
		{SkillPenalty: 15, BleedingPerTurn: 3, DisablesTwoHanded: true},
	})
	assert.Equal(t, 20, totals.SkillPenalty)
	assert.Equal(t, 4, totals.BleedingPerTurn)
	assert.True(t, totals.DisablesTwoHanded)
}

func TestHeadShotForcesToughnessCheck(t *testing.T) {
	assert.True(t, wounds.HeadShotForcesToughnessCheck(2))
	assert.False(t, wounds.HeadShotForcesToughnessCheck(1))
}

func TestToughnessCheckFailureGoesDown(t *testing.T) {
	src := rng.New(1)
	_, down := wounds.ToughnessCheck(src, 0) // clamped to 5, near-certain failure
	assert.True(t, down)
}

func TestBleedTickSumsBleeding(t *testing.T) {
	total := wounds.BleedTick([]ecs.WoundEffect{{BleedingPerTurn: 3}, {BleedingPerTurn: 5}})
	assert.Equal(t, 8, total)
}
