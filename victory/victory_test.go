package victory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/spatial"
	"github.com/ttu/skirmish-sim/units"
	"github.com/ttu/skirmish-sim/victory"
)

func spawnAt(t *testing.T, store *ecs.Store, tmpl string, faction ecs.Faction, x, y float64) ecs.EntityID {
	t.Helper()
	id, err := units.Spawn(store, tmpl, faction, ecs.PositionComponent{X: x, Y: y}, 0)
	require.NoError(t, err)
	return id
}

func down(store *ecs.Store, id ecs.EntityID) {
	health := ecs.MustGet[ecs.HealthComponent](store, id, ecs.KindHealth)
	health.Current = 0
	health.WoundState = ecs.WoundDown
	store.Set(id, ecs.KindHealth, health)
}

func TestEliminationMetWhenOpposingFactionAllDown(t *testing.T) {
	store := ecs.New()
	enemy := spawnAt(t, store, "goblin", ecs.FactionEnemy, 0, 0)
	spawnAt(t, store, "knight", ecs.FactionPlayer, 5, 5)

	ev := victory.NewEvaluator([]victory.Condition{{Kind: victory.ConditionElimination, Faction: ecs.FactionPlayer}})
	out := ev.Evaluate(store, 1)
	assert.False(t, out.Decided)

	down(store, enemy)
	out = ev.Evaluate(store, 2)
	assert.True(t, out.Decided)
	assert.False(t, out.Draw)
	assert.Equal(t, ecs.FactionPlayer, out.Winner)
}

func TestEliminationTreatsRoutedAsRemoved(t *testing.T) {
	store := ecs.New()
	enemy := spawnAt(t, store, "goblin", ecs.FactionEnemy, 0, 0)
	spawnAt(t, store, "knight", ecs.FactionPlayer, 5, 5)

	m := ecs.MustGet[ecs.MoraleComponent](store, enemy, ecs.KindMorale)
	m.Status = ecs.MoraleRouted
	store.Set(enemy, ecs.KindMorale, m)

	ev := victory.NewEvaluator([]victory.Condition{{Kind: victory.ConditionElimination, Faction: ecs.FactionPlayer}})
	out := ev.Evaluate(store, 1)
	assert.True(t, out.Decided)
	assert.Equal(t, ecs.FactionPlayer, out.Winner)
}

func TestObjectiveHoldRequiresConsecutiveTurns(t *testing.T) {
	store := ecs.New()
	spawnAt(t, store, "knight", ecs.FactionPlayer, 0, 0)

	cond := victory.Condition{
		Kind: victory.ConditionObjectiveHold, Faction: ecs.FactionPlayer,
		Position: spatial.Point{X: 0, Y: 0}, Radius: 1, RequiredTurns: 3,
	}
	ev := victory.NewEvaluator([]victory.Condition{cond})

	assert.False(t, ev.Evaluate(store, 1).Decided)
	assert.False(t, ev.Evaluate(store, 2).Decided)
	out := ev.Evaluate(store, 3)
	assert.True(t, out.Decided)
	assert.Equal(t, ecs.FactionPlayer, out.Winner)
}

func TestObjectiveHoldResetsWhenPositionVacated(t *testing.T) {
	store := ecs.New()
	holder := spawnAt(t, store, "knight", ecs.FactionPlayer, 0, 0)

	cond := victory.Condition{
		Kind: victory.ConditionObjectiveHold, Faction: ecs.FactionPlayer,
		Position: spatial.Point{X: 0, Y: 0}, Radius: 1, RequiredTurns: 2,
	}
	ev := victory.NewEvaluator([]victory.Condition{cond})

	assert.False(t, ev.Evaluate(store, 1).Decided)

	pos := ecs.MustGet[ecs.PositionComponent](store, holder, ecs.KindPosition)
	pos.X = 50
	store.Set(holder, ecs.KindPosition, pos)
	assert.False(t, ev.Evaluate(store, 2).Decided)

	pos.X = 0
	store.Set(holder, ecs.KindPosition, pos)
	assert.False(t, ev.Evaluate(store, 3).Decided)
	assert.True(t, ev.Evaluate(store, 4).Decided)
}

func TestObjectiveReachFiltersByUnitType(t *testing.T) {
	store := ecs.New()
	spawnAt(t, store, "goblin", ecs.FactionPlayer, 0, 0)

	cond := victory.Condition{
		Kind: victory.ConditionObjectiveReach, Faction: ecs.FactionPlayer,
		Position: spatial.Point{X: 0, Y: 0}, Radius: 1, UnitType: "knight",
	}
	ev := victory.NewEvaluator([]victory.Condition{cond})
	assert.False(t, ev.Evaluate(store, 1).Decided)

	spawnAt(t, store, "knight", ecs.FactionPlayer, 0.5, 0)
	assert.True(t, ev.Evaluate(store, 2).Decided)
}

func TestObjectiveKillRequiresAllOfUnitType(t *testing.T) {
	store := ecs.New()
	a := spawnAt(t, store, "archer", ecs.FactionEnemy, 0, 0)
	b := spawnAt(t, store, "archer", ecs.FactionEnemy, 1, 1)

	cond := victory.Condition{Kind: victory.ConditionObjectiveKill, Faction: ecs.FactionPlayer, UnitType: "archer"}
	ev := victory.NewEvaluator([]victory.Condition{cond})

	down(store, a)
	assert.False(t, ev.Evaluate(store, 1).Decided)
	down(store, b)
	assert.True(t, ev.Evaluate(store, 2).Decided)
}

func TestSurvivalMetAtTurnThreshold(t *testing.T) {
	ev := victory.NewEvaluator([]victory.Condition{{Kind: victory.ConditionSurvival, Faction: ecs.FactionPlayer, TurnThreshold: 10}})
	store := ecs.New()
	assert.False(t, ev.Evaluate(store, 9).Decided)
	assert.True(t, ev.Evaluate(store, 10).Decided)
}

func TestPointThresholdCountsLivingUnitsOnly(t *testing.T) {
	store := ecs.New()
	knight := spawnAt(t, store, "knight", ecs.FactionPlayer, 0, 0)
	spawnAt(t, store, "archer", ecs.FactionPlayer, 1, 1)

	cond := victory.Condition{Kind: victory.ConditionPointThreshold, Faction: ecs.FactionPlayer, PointThreshold: 15}
	ev := victory.NewEvaluator([]victory.Condition{cond})
	assert.True(t, ev.Evaluate(store, 1).Decided)

	down(store, knight)
	ev2 := victory.NewEvaluator([]victory.Condition{cond})
	assert.False(t, ev2.Evaluate(store, 1).Decided)
}

func TestMoraleBreakRequiresHalfCasualtiesAndHalfBroken(t *testing.T) {
	store := ecs.New()
	a := spawnAt(t, store, "goblin", ecs.FactionEnemy, 0, 0)
	b := spawnAt(t, store, "goblin", ecs.FactionEnemy, 1, 1)

	cond := victory.Condition{Kind: victory.ConditionMoraleBreak, Faction: ecs.FactionPlayer}
	ev := victory.NewEvaluator([]victory.Condition{cond})

	down(store, a)
	assert.False(t, ev.Evaluate(store, 1).Decided)

	m := ecs.MustGet[ecs.MoraleComponent](store, b, ecs.KindMorale)
	m.Status = ecs.MoraleBroken
	store.Set(b, ecs.KindMorale, m)
	assert.True(t, ev.Evaluate(store, 2).Decided)
}

func TestEvaluateIsDrawWhenBothFactionsMeetConditions(t *testing.T) {
	store := ecs.New()
	enemy := spawnAt(t, store, "goblin", ecs.FactionEnemy, 0, 0)
	player := spawnAt(t, store, "knight", ecs.FactionPlayer, 5, 5)
	down(store, enemy)
	down(store, player)

	ev := victory.NewEvaluator([]victory.Condition{
		{Kind: victory.ConditionElimination, Faction: ecs.FactionPlayer},
		{Kind: victory.ConditionElimination, Faction: ecs.FactionEnemy},
	})
	out := ev.Evaluate(store, 1)
	assert.True(t, out.Decided)
	assert.True(t, out.Draw)
}
