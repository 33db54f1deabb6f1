package stamina_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/stamina"
)

func TestDrainSetsExhaustedAtZero(t *testing.T) {
	s := ecs.StaminaComponent{Current: 5, Max: 30}
	s = stamina.Drain(s, 5)
	assert.Equal(t, 0, s.Current)
	assert.True(t, s.Exhausted)
}

func TestDrainNeverGoesNegative(t *testing.T) {
	s := stamina.Drain(ecs.StaminaComponent{Current: 2, Max: 30}, 10)
	assert.Equal(t, 0, s.Current)
}

func TestRecoverGainsMoreWhenNotHit(t *testing.T) {
	hit := stamina.Recover(ecs.StaminaComponent{Current: 0, Max: 30, Exhausted: true}, true)
	notHit := stamina.Recover(ecs.StaminaComponent{Current: 0, Max: 30, Exhausted: true}, false)
	assert.Equal(t, 1, hit.Current)
	assert.Equal(t, 3, notHit.Current)
	assert.False(t, hit.Exhausted)
}

func TestRecoverCapsAtMax(t *testing.T) {
	s := stamina.Recover(ecs.StaminaComponent{Current: 29, Max: 30}, false)
	assert.Equal(t, 30, s.Current)
}

func TestArmorImpactDrainRoundsUp(t *testing.T) {
	assert.Equal(t, 0, stamina.ArmorImpactDrain(0))
	assert.Equal(t, 1, stamina.ArmorImpactDrain(1))
	assert.Equal(t, 2, stamina.ArmorImpactDrain(3))
}

func TestDefensePenaltyTiers(t *testing.T) {
	assert.Equal(t, 0, stamina.DefensePenalty(ecs.StaminaComponent{Current: 30, Max: 30}))
	assert.Equal(t, -10, stamina.DefensePenalty(ecs.StaminaComponent{Current: 15, Max: 30}))
	assert.Equal(t, -20, stamina.DefensePenalty(ecs.StaminaComponent{Current: 8, Max: 30}))
	assert.Equal(t, -30, stamina.DefensePenalty(ecs.StaminaComponent{Current: 1, Max: 30}))
	assert.Equal(t, -40, stamina.DefensePenalty(ecs.StaminaComponent{Current: 0, Max: 30}))
}

func TestExhaustionAPPenalty(t *testing.T) {
	assert.Equal(t, 1, stamina.ExhaustionAPPenalty(ecs.StaminaComponent{Exhausted: true}))
	assert.Equal(t, 0, stamina.ExhaustionAPPenalty(ecs.StaminaComponent{Exhausted: false}))
}
