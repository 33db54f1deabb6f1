// Package movement computes move-mode speeds and AP costs, steps a
// unit along a pathfinder route, and maintains the derived Engagement
// component after every position change.
package movement

import (
	"math"

	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/spatial"
)

// BaseSpeed is the full-turn movement budget in meters, before any
// mode multiplier, penalty, or terrain factor is applied.
const BaseSpeed = 6.0

// modeMultiplier is the fraction of BaseSpeed a mode covers per turn.
func modeMultiplier(mode ecs.MoveMode) float64 {
	switch mode {
	case ecs.MoveWalk:
		return 0.25
	case ecs.MoveAdvance:
		return 0.50
	case ecs.MoveRun:
		return 0.75
	case ecs.MoveSprint:
		return 1.00
	default:
		return 0
	}
}

// modeAPPerTurn is how many AP a mode's full-speed distance is spread
// across for distance-based costing. Sprint isn't distance-based (it
// always consumes all remaining AP) and has no meaningful value here.
func modeAPPerTurn(mode ecs.MoveMode) int {
	switch mode {
	case ecs.MoveWalk:
		return 1
	case ecs.MoveAdvance:
		return 2
	case ecs.MoveRun:
		return 4
	default:
		return 0
	}
}

// RestrictMode downgrades sprint and run to advance when a wound
// effect restricts movement mode; walk and advance are unaffected.
func RestrictMode(mode ecs.MoveMode, restricted bool) ecs.MoveMode {
	if !restricted {
		return mode
	}
	if mode == ecs.MoveSprint || mode == ecs.MoveRun {
		return ecs.MoveAdvance
	}
	return mode
}

// EffectiveSpeed is BaseSpeed reduced by a flat movement penalty
// (floored at 1), then halved again if a wound effect halves
// movement.
func EffectiveSpeed(movementPenalty int, halvesMovement bool) float64 {
	speed := BaseSpeed - float64(movementPenalty)
	if speed < 1 {
		speed = 1
	}
	if halvesMovement {
		speed /= 2
	}
	return speed
}

// APCostForDistance is the AP a distance-based move mode (walk,
// advance, run) charges to cover distanceM meters at the given
// effective speed. Sprint is not distance-based; callers charge it the
// unit's full remaining AP directly.
func APCostForDistance(mode ecs.MoveMode, distanceM, effectiveSpeed float64) int {
	perTurn := modeAPPerTurn(mode)
	if perTurn <= 0 || distanceM <= 0 {
		return 0
	}
	distancePerAP := effectiveSpeed * modeMultiplier(mode) / float64(perTurn)
	if distancePerAP <= 0 {
		return 0
	}
	return int(math.Ceil(distanceM / distancePerAP))
}

// MaxDistanceForAP is the farthest distance a distance-based move mode
// can cover with the given AP budget at the given effective speed;
// sprint is not distance-based and has no meaningful value here.
func MaxDistanceForAP(mode ecs.MoveMode, effectiveSpeed float64, ap int) float64 {
	perTurn := modeAPPerTurn(mode)
	if perTurn <= 0 || ap <= 0 {
		return 0
	}
	distancePerAP := effectiveSpeed * modeMultiplier(mode) / float64(perTurn)
	return distancePerAP * float64(ap)
}

// MoveBudget is the distance a mode covers this turn at the given
// effective speed and terrain factor (product of passable obstacles'
// speed multipliers crossed along the route).
func MoveBudget(mode ecs.MoveMode, effectiveSpeed, terrainFactor float64) float64 {
	return effectiveSpeed * modeMultiplier(mode) * terrainFactor
}

// TurnCost is the AP a facing change costs: free up to 90 degrees,
// 1 AP beyond that.
func TurnCost(deltaRadians float64) int {
	delta := math.Abs(deltaRadians)
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	delta = math.Abs(delta)
	if delta > math.Pi/2 {
		return 1
	}
	return 0
}

// StepResult is the outcome of moving one unit toward a destination.
type StepResult struct {
	From spatial.Point
	To   spatial.Point
	Path []spatial.Point
}

// Step routes from from to dest around blockers, then truncates the
// route to whatever budget meters the mover can cover this turn. The
// final position is the last point the truncated route reaches; if no
// route exists the unit does not move.
func Step(from, dest spatial.Point, blockers []spatial.Blocker, bounds spatial.Bounds, budget float64) StepResult {
	route := spatial.FindPath(from, dest, blockers, bounds)
	if route == nil {
		return StepResult{From: from, To: from, Path: []spatial.Point{from}}
	}
	truncated := spatial.TruncatePath(route, budget)
	return StepResult{From: from, To: truncated[len(truncated)-1], Path: truncated}
}

// LivePosition is the minimal view of a unit movement/engagement needs.
type LivePosition struct {
	ID       ecs.EntityID
	Position ecs.PositionComponent
	Faction  ecs.Faction
	Alive    bool
}

// RefreshEngagement recomputes every live unit's EngagementComponent
// from scratch: two units from opposing factions are engaged with each
// other iff both are alive and their separation is within
// spatial.EngagementRange.
func RefreshEngagement(store *ecs.Store, units []LivePosition) {
	engaged := make(map[ecs.EntityID][]ecs.EntityID, len(units))
	for _, u := range units {
		engaged[u.ID] = nil
	}

	for i := range units {
		a := units[i]
		if !a.Alive {
			continue
		}
		ap := spatial.Point{X: a.Position.X, Y: a.Position.Y}
		for j := i + 1; j < len(units); j++ {
			b := units[j]
			if !b.Alive || b.Faction == a.Faction {
				continue
			}
			bp := spatial.Point{X: b.Position.X, Y: b.Position.Y}
			if ap.Distance(bp) <= spatial.EngagementRange {
				engaged[a.ID] = appendUnique(engaged[a.ID], b.ID)
				engaged[b.ID] = appendUnique(engaged[b.ID], a.ID)
			}
		}
	}

	for _, u := range units {
		store.Set(u.ID, ecs.KindEngagement, ecs.EngagementComponent{EngagedWith: engaged[u.ID]})
	}
}

func appendUnique(list []ecs.EntityID, id ecs.EntityID) []ecs.EntityID {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}

// Disengage clears the unit's own engagement relationships whose
// targets now fall outside range at its new position; costs 2 AP,
// charged by the caller.
const DisengageAPCost = 2

// TerrainObstacle is a passable obstacle a traveled segment might
// cross, carrying the speed multiplier it imposes.
type TerrainObstacle struct {
	Blocker         spatial.Blocker
	SpeedMultiplier float64
	IsBridge        bool
}

// TerrainFactor is the combined speed multiplier a route suffers from
// the passable obstacles it crosses. A bridge overrides any water
// obstacle it spans: if the route crosses a bridge, only bridge
// multipliers apply (conventionally 1.0, canceling the water's
// slowdown); otherwise every crossed obstacle's multiplier is
// multiplied together.
func TerrainFactor(path []spatial.Point, obstacles []TerrainObstacle) float64 {
	if len(path) < 2 {
		return 1.0
	}

	crossesBridge := false
	var bridgeFactor, otherFactor = 1.0, 1.0
	for _, obstacle := range obstacles {
		crossed := false
		for i := 1; i < len(path); i++ {
			if obstacle.Blocker.Intersects(path[i-1], path[i]) {
				crossed = true
				break
			}
		}
		if !crossed {
			continue
		}
		if obstacle.IsBridge {
			crossesBridge = true
			bridgeFactor *= obstacle.SpeedMultiplier
		} else {
			otherFactor *= obstacle.SpeedMultiplier
		}
	}

	if crossesBridge {
		return bridgeFactor
	}
	return otherFactor
}
