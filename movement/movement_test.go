package movement_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/movement"
	"github.com/ttu/skirmish-sim/spatial"
)

func TestAPCostForDistanceMatchesAdvanceRate(t *testing.T) {
	// Advance: 1.5 m per AP at full BaseSpeed.
	cost := movement.APCostForDistance(ecs.MoveAdvance, 3.0, movement.BaseSpeed)
	assert.Equal(t, 2, cost)
}

func TestAPCostForDistanceRoundsUp(t *testing.T) {
	cost := movement.APCostForDistance(ecs.MoveAdvance, 3.1, movement.BaseSpeed)
	assert.Equal(t, 3, cost)
}

func TestEffectiveSpeedFloorsAtOneAndHalvesForWound(t *testing.T) {
	assert.Equal(t, 1.0, movement.EffectiveSpeed(100, false))
	assert.Equal(t, movement.BaseSpeed-2, movement.EffectiveSpeed(2, false))
	assert.Equal(t, (movement.BaseSpeed-2)/2, movement.EffectiveSpeed(2, true))
}

func TestRestrictModeDowngradesSprintAndRun(t *testing.T) {
	assert.Equal(t, ecs.MoveAdvance, movement.RestrictMode(ecs.MoveSprint, true))
	assert.Equal(t, ecs.MoveAdvance, movement.RestrictMode(ecs.MoveRun, true))
	assert.Equal(t, ecs.MoveWalk, movement.RestrictMode(ecs.MoveWalk, true))
	assert.Equal(t, ecs.MoveSprint, movement.RestrictMode(ecs.MoveSprint, false))
}

func TestTurnCostFreeUpTo90Degrees(t *testing.T) {
	assert.Equal(t, 0, movement.TurnCost(math.Pi/2))
	assert.Equal(t, 1, movement.TurnCost(math.Pi/2+0.01))
	assert.Equal(t, 0, movement.TurnCost(0))
}

func TestStepStopsAtBudgetAlongRoute(t *testing.T) {
	bounds := spatial.Bounds{Width: 40, Height: 40}
	result := movement.Step(spatial.Point{X: 0, Y: 0}, spatial.Point{X: 10, Y: 0}, nil, bounds, 3)
	assert.InDelta(t, 3.0, result.From.Distance(result.To), 1e-9)
}

func TestStepNoRouteStaysPut(t *testing.T) {
	bounds := spatial.Bounds{Width: 6, Height: 6}
	blockers := []spatial.Blocker{
		spatial.OBB{Center: spatial.Point{X: 0, Y: 2}, HalfLength: 3, HalfWidth: 0.3},
		spatial.OBB{Center: spatial.Point{X: 0, Y: -2}, HalfLength: 3, HalfWidth: 0.3},
		spatial.OBB{Center: spatial.Point{X: 2, Y: 0}, HalfLength: 0.3, HalfWidth: 3},
		spatial.OBB{Center: spatial.Point{X: -2, Y: 0}, HalfLength: 0.3, HalfWidth: 3},
	}
	result := movement.Step(spatial.Point{X: 0, Y: 0}, spatial.Point{X: 2.9, Y: 2.9}, blockers, bounds, 5)
	assert.True(t, result.To.Equals(spatial.Point{X: 0, Y: 0}))
}

func TestRefreshEngagementPairsOpposingFactionsWithinRange(t *testing.T) {
	store := ecs.New()
	a := movement.LivePosition{ID: 1, Position: ecs.PositionComponent{X: 0, Y: 0}, Faction: ecs.FactionPlayer, Alive: true}
	b := movement.LivePosition{ID: 2, Position: ecs.PositionComponent{X: 1, Y: 0}, Faction: ecs.FactionEnemy, Alive: true}
	c := movement.LivePosition{ID: 3, Position: ecs.PositionComponent{X: 20, Y: 0}, Faction: ecs.FactionEnemy, Alive: true}
	store.Set(1, ecs.KindEngagement, ecs.EngagementComponent{})
	store.Set(2, ecs.KindEngagement, ecs.EngagementComponent{})
	store.Set(3, ecs.KindEngagement, ecs.EngagementComponent{})

	movement.RefreshEngagement(store, []movement.LivePosition{a, b, c})

	require.Contains(t, ecs.MustGet[ecs.EngagementComponent](store, 1, ecs.KindEngagement).EngagedWith, ecs.EntityID(2))
	require.Contains(t, ecs.MustGet[ecs.EngagementComponent](store, 2, ecs.KindEngagement).EngagedWith, ecs.EntityID(1))
	assert.Empty(t, ecs.MustGet[ecs.EngagementComponent](store, 3, ecs.KindEngagement).EngagedWith)
}

func TestRefreshEngagementExcludesSameFaction(t *testing.T) {
	store := ecs.New()
	a := movement.LivePosition{ID: 1, Position: ecs.PositionComponent{X: 0, Y: 0}, Faction: ecs.FactionPlayer, Alive: true}
	b := movement.LivePosition{ID: 2, Position: ecs.PositionComponent{X: 0.5, Y: 0}, Faction: ecs.FactionPlayer, Alive: true}
	store.Set(1, ecs.KindEngagement, ecs.EngagementComponent{})
	store.Set(2, ecs.KindEngagement, ecs.EngagementComponent{})

	movement.RefreshEngagement(store, []movement.LivePosition{a, b})

	assert.Empty(t, ecs.MustGet[ecs.EngagementComponent](store, 1, ecs.KindEngagement).EngagedWith)
}

func TestTerrainFactorBridgeOverridesWater(t *testing.T) {
	river := movement.TerrainObstacle{
		Blocker:         spatial.OBB{Center: spatial.Point{X: 5, Y: 0}, HalfLength: 10, HalfWidth: 1},
		SpeedMultiplier: 0.5,
	}
	bridge := movement.TerrainObstacle{
		Blocker:         spatial.OBB{Center: spatial.Point{X: 5, Y: 0}, HalfLength: 1, HalfWidth: 1},
		SpeedMultiplier: 1.0,
		IsBridge:        true,
	}
	path := []spatial.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}

	factor := movement.TerrainFactor(path, []movement.TerrainObstacle{river, bridge})
	assert.Equal(t, 1.0, factor)
}

func TestTerrainFactorAppliesWaterWithoutBridge(t *testing.T) {
	river := movement.TerrainObstacle{
		Blocker:         spatial.OBB{Center: spatial.Point{X: 5, Y: 0}, HalfLength: 10, HalfWidth: 1},
		SpeedMultiplier: 0.5,
	}
	path := []spatial.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}

	factor := movement.TerrainFactor(path, []movement.TerrainObstacle{river})
	assert.Equal(t, 0.5, factor)
}
