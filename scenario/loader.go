// Package scenario turns an in-memory scenario record into populated
// ecs entities: units spawned from the units package's templates, and
// obstacles placed as their own entities. Unit spawns that land inside
// an obstacle's exclusion zone are nudged to the nearest point outside
// it.
package scenario

import (
	"fmt"
	"math"

	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/units"
)

// exclusionMargin is added to an obstacle's own extents when testing
// whether a unit spawn point lies inside its exclusion zone.
const exclusionMargin = 0.5

// UnitSpec places one unit of a named template.
type UnitSpec struct {
	Type string
	X, Z float64 // Z is the scenario file's plan-view second axis, mapped to Y.
}

// ObstacleSpec describes one obstacle placement. Which fields matter
// depends on Type: trees and rocks use Scale as a circle radius;
// walls, fences, houses, brooks, rivers and bridges use Length as the
// rectangle's long-axis length (halfLength = Length/2) and a fixed
// half-width.
type ObstacleSpec struct {
	Type     string
	X, Z     float64
	Rotation float64
	Length   float64
	Scale    float64
}

// Scenario is the full in-memory scenario record.
type Scenario struct {
	ID          string
	Name        string
	Description string
	MapWidth    float64
	MapHeight   float64
	PlayerUnits []UnitSpec
	EnemyUnits  []UnitSpec
	Obstacles   []ObstacleSpec
	Objectives  []string
}

// Result is what loading a scenario hands back to the caller.
type Result struct {
	ScenarioID   string
	MapWidth     float64
	MapHeight    float64
	PlayerUnitIDs []ecs.EntityID
	EnemyUnitIDs  []ecs.EntityID
	ObstacleIDs   []ecs.EntityID
	Objectives    []string
}

const defaultWallHalfWidth = 0.2
const defaultCircleRadius = 0.5

// rectangleTypes are obstacle types whose shape is a rectangle
// built from Length/Rotation rather than a circle built from Scale.
var rectangleTypes = map[string]bool{
	"wall": true, "fence": true, "house": true,
	"brook": true, "river": true, "bridge": true,
}

// passableTypes are obstacle types a unit may walk through, at a
// movement-cost penalty carried by SpeedMultiplier.
var passableTypes = map[string]bool{
	"brook": true, "river": true, "bridge": true,
}

func speedMultiplierFor(obstacleType string) float64 {
	switch obstacleType {
	case "brook", "river":
		return 0.5
	case "bridge":
		return 1.0 // overrides the water it crosses; see movement.TerrainFactor
	default:
		return 1.0
	}
}

// Load creates an entity per obstacle, then one per unit (nudged clear
// of any obstacle's exclusion zone), and returns their IDs. Objectives
// pass through unchanged.
func Load(store *ecs.Store, sc Scenario) (Result, error) {
	result := Result{
		ScenarioID: sc.ID,
		MapWidth:   sc.MapWidth,
		MapHeight:  sc.MapHeight,
		Objectives: sc.Objectives,
	}

	obstacles := make([]placedObstacle, 0, len(sc.Obstacles))
	for _, spec := range sc.Obstacles {
		id, placed := spawnObstacle(store, spec)
		result.ObstacleIDs = append(result.ObstacleIDs, id)
		obstacles = append(obstacles, placed)
	}

	typeCounts := map[string]int{}
	spawnFaction := func(specs []UnitSpec, faction ecs.Faction) ([]ecs.EntityID, error) {
		ids := make([]ecs.EntityID, 0, len(specs))
		for _, spec := range specs {
			x, y := nudgeSpawn(spec.X, spec.Z, obstacles)
			id, err := units.Spawn(store, spec.Type, faction, ecs.PositionComponent{X: x, Y: y}, typeCounts[spec.Type])
			if err != nil {
				return nil, fmt.Errorf("scenario: spawning %s: %w", spec.Type, err)
			}
			typeCounts[spec.Type]++
			ids = append(ids, id)
		}
		return ids, nil
	}

	var err error
	if result.PlayerUnitIDs, err = spawnFaction(sc.PlayerUnits, ecs.FactionPlayer); err != nil {
		return Result{}, err
	}
	if result.EnemyUnitIDs, err = spawnFaction(sc.EnemyUnits, ecs.FactionEnemy); err != nil {
		return Result{}, err
	}

	return result, nil
}

type placedObstacle struct {
	component ecs.ObstacleComponent
	centerX   float64
	centerY   float64
}

func spawnObstacle(store *ecs.Store, spec ObstacleSpec) (ecs.EntityID, placedObstacle) {
	id := store.Create()

	var comp ecs.ObstacleComponent
	if rectangleTypes[spec.Type] {
		comp = ecs.ObstacleComponent{
			Shape:           ecs.ShapeRectangle,
			HalfLength:      spec.Length / 2,
			HalfWidth:       defaultWallHalfWidth,
			Rotation:        spec.Rotation,
			IsPassable:      passableTypes[spec.Type],
			SpeedMultiplier: speedMultiplierFor(spec.Type),
		}
	} else {
		radius := spec.Scale
		if radius <= 0 {
			radius = defaultCircleRadius
		}
		comp = ecs.ObstacleComponent{Shape: ecs.ShapeCircle, Radius: radius}
	}

	store.Set(id, ecs.KindObstacle, comp)
	store.Set(id, ecs.KindPosition, ecs.PositionComponent{X: spec.X, Y: spec.Z, Facing: spec.Rotation})
	return id, placedObstacle{component: comp, centerX: spec.X, centerY: spec.Z}
}

// nudgeSpawn returns (x, z) moved to the nearest point outside every
// obstacle's exclusion zone, applying each displacement in the order
// obstacles were given.
func nudgeSpawn(x, z float64, obstacles []placedObstacle) (float64, float64) {
	for _, o := range obstacles {
		if o.component.Shape == ecs.ShapeCircle {
			x, z = nudgeFromCircle(x, z, o)
		} else {
			x, z = nudgeFromRectangle(x, z, o)
		}
	}
	return x, z
}

func nudgeFromCircle(x, z float64, o placedObstacle) (float64, float64) {
	dx, dz := x-o.centerX, z-o.centerY
	dist := math.Hypot(dx, dz)
	expanded := o.component.Radius + exclusionMargin
	if dist >= expanded {
		return x, z
	}
	if dist < 1e-9 {
		dx, dz = 1, 0
		dist = 1
	}
	scale := (expanded + 1e-6) / dist
	return o.centerX + dx*scale, o.centerY + dz*scale
}

func nudgeFromRectangle(x, z float64, o placedObstacle) (float64, float64) {
	dx, dz := x-o.centerX, z-o.centerY
	cos, sin := math.Cos(-o.component.Rotation), math.Sin(-o.component.Rotation)
	localX := dx*cos - dz*sin
	localZ := dx*sin + dz*cos

	halfL := o.component.HalfLength + exclusionMargin
	halfW := o.component.HalfWidth + exclusionMargin
	if math.Abs(localX) >= halfL || math.Abs(localZ) >= halfW {
		return x, z
	}

	distToLongEdge := halfL - math.Abs(localX)
	distToShortEdge := halfW - math.Abs(localZ)
	if distToLongEdge < distToShortEdge {
		localX = math.Copysign(halfL+1e-6, localX)
	} else {
		localZ = math.Copysign(halfW+1e-6, localZ)
	}

	worldCos, worldSin := math.Cos(o.component.Rotation), math.Sin(o.component.Rotation)
	worldDX := localX*worldCos - localZ*worldSin
	worldDZ := localX*worldSin + localZ*worldCos
	return o.centerX + worldDX, o.centerY + worldDZ
}
