package morale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/morale"
	"github.com/ttu/skirmish-sim/rng"
)

func TestCheckClampsAndRolls(t *testing.T) {
	src := rng.New(5)
	result := morale.Check(src, 90, 20)
	assert.Equal(t, 95, result.EffectiveSkill)
	assert.Equal(t, result.Roll <= result.EffectiveSkill, result.Passed)
}

func TestApplyFailureMapping(t *testing.T) {
	assert.Equal(t, ecs.MoraleSteady, morale.ApplyFailure(ecs.MoraleSteady, 0))
	assert.Equal(t, ecs.MoraleShaken, morale.ApplyFailure(ecs.MoraleSteady, 1))
	assert.Equal(t, ecs.MoraleShaken, morale.ApplyFailure(ecs.MoraleSteady, 20))
	assert.Equal(t, ecs.MoraleBroken, morale.ApplyFailure(ecs.MoraleSteady, 21))
	assert.Equal(t, ecs.MoraleRouted, morale.ApplyFailure(ecs.MoraleSteady, 41))
}

func TestApplyFailureOnlyWorsens(t *testing.T) {
	assert.Equal(t, ecs.MoraleBroken, morale.ApplyFailure(ecs.MoraleBroken, 1))
	assert.Equal(t, ecs.MoraleRouted, morale.ApplyFailure(ecs.MoraleRouted, 0))
}

func TestRallyImprovesOneStepExceptRouted(t *testing.T) {
	assert.Equal(t, ecs.MoraleSteady, morale.Rally(ecs.MoraleShaken, true))
	assert.Equal(t, ecs.MoraleShaken, morale.Rally(ecs.MoraleBroken, true))
	assert.Equal(t, ecs.MoraleRouted, morale.Rally(ecs.MoraleRouted, true))
	assert.Equal(t, ecs.MoraleShaken, morale.Rally(ecs.MoraleShaken, false))
}

func TestLeadershipBonusCapsAt20(t *testing.T) {
	assert.Equal(t, 10, morale.LeadershipBonus(2))
	assert.Equal(t, 20, morale.LeadershipBonus(10))
}

func TestActionPenaltyAndBlocksAction(t *testing.T) {
	assert.Equal(t, 0, morale.ActionPenalty(ecs.MoraleSteady))
	assert.Equal(t, -10, morale.ActionPenalty(ecs.MoraleShaken))
	assert.Equal(t, -20, morale.ActionPenalty(ecs.MoraleBroken))
	assert.True(t, morale.BlocksAction(ecs.MoraleRouted))
	assert.False(t, morale.BlocksAction(ecs.MoraleBroken))
}
