package turn

import (
	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/movement"
	"github.com/ttu/skirmish-sim/spatial"
)

// clearance is the margin added around a blocking body's true extent,
// per spec §4.G's obstacle/unit rasterization rule.
const clearance = spatial.UnitRadius + spatial.Clearance

// BuildBlockers returns the pathfinding blockers the mover must avoid:
// every non-passable obstacle (expanded by clearance) and every other
// live unit (as a circle of radius clearance), excluding the given
// entity ids.
func BuildBlockers(store *ecs.Store, exclude ...ecs.EntityID) []spatial.Blocker {
	skip := make(map[ecs.EntityID]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	var blockers []spatial.Blocker
	for _, id := range store.Query(ecs.KindObstacle, ecs.KindPosition) {
		obstacle := ecs.MustGet[ecs.ObstacleComponent](store, id, ecs.KindObstacle)
		if obstacle.IsPassable {
			continue
		}
		pos := ecs.MustGet[ecs.PositionComponent](store, id, ecs.KindPosition)
		center := spatial.Point{X: pos.X, Y: pos.Y}
		if obstacle.Shape == ecs.ShapeCircle {
			blockers = append(blockers, spatial.Circle{Center: center, Radius: obstacle.Radius + clearance})
		} else {
			blockers = append(blockers, spatial.OBB{
				Center: center, Rotation: obstacle.Rotation,
				HalfLength: obstacle.HalfLength + clearance,
				HalfWidth:  obstacle.HalfWidth + clearance,
			})
		}
	}

	for _, id := range store.Query(ecs.KindHealth, ecs.KindPosition) {
		if skip[id] {
			continue
		}
		health := ecs.MustGet[ecs.HealthComponent](store, id, ecs.KindHealth)
		if health.WoundState == ecs.WoundDown {
			continue
		}
		pos := ecs.MustGet[ecs.PositionComponent](store, id, ecs.KindPosition)
		blockers = append(blockers, spatial.Circle{Center: spatial.Point{X: pos.X, Y: pos.Y}, Radius: clearance})
	}

	return blockers
}

// BuildTerrainObstacles returns every passable obstacle in the store
// as a movement.TerrainObstacle, for terrain-factor computation.
func BuildTerrainObstacles(store *ecs.Store) []movement.TerrainObstacle {
	var out []movement.TerrainObstacle
	for _, id := range store.Query(ecs.KindObstacle, ecs.KindPosition) {
		obstacle := ecs.MustGet[ecs.ObstacleComponent](store, id, ecs.KindObstacle)
		if !obstacle.IsPassable {
			continue
		}
		pos := ecs.MustGet[ecs.PositionComponent](store, id, ecs.KindPosition)
		center := spatial.Point{X: pos.X, Y: pos.Y}
		var blocker spatial.Blocker
		if obstacle.Shape == ecs.ShapeCircle {
			blocker = spatial.Circle{Center: center, Radius: obstacle.Radius}
		} else {
			blocker = spatial.OBB{Center: center, Rotation: obstacle.Rotation, HalfLength: obstacle.HalfLength, HalfWidth: obstacle.HalfWidth}
		}
		out = append(out, movement.TerrainObstacle{
			Blocker:         blocker,
			SpeedMultiplier: obstacle.SpeedMultiplier,
			IsBridge:        obstacle.SpeedMultiplier == 1.0,
		})
	}
	return out
}
