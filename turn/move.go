package turn

import (
	"math"

	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/eventlog"
	"github.com/ttu/skirmish-sim/movement"
	"github.com/ttu/skirmish-sim/spatial"
	"github.com/ttu/skirmish-sim/wounds"
)

// woundMovement reads id's accumulated wound-effect totals relevant to
// movement.
func (r *Resolver) woundMovement(id ecs.EntityID) wounds.Totals {
	effects, ok := ecs.Get[ecs.WoundEffectsComponent](r.Store, id, ecs.KindWoundEffects)
	if !ok {
		return wounds.Totals{}
	}
	return wounds.Accumulate(effects.Effects)
}

// dispatchMove executes a queued move command: mode downgrade by wound
// effect, pathfinding around current blockers, distance-based or
// flat-sprint AP costing, then disengage/sprint-provoke handling once
// engagement is refreshed.
func (r *Resolver) dispatchMove(turn int, moverID ecs.EntityID, cmd ecs.Command) {
	ap := ecs.MustGet[ecs.ActionPointsComponent](r.Store, moverID, ecs.KindActionPoints)
	wm := r.woundMovement(moverID)
	mode := movement.RestrictMode(cmd.Mode, wm.RestrictsMoveMode)
	effSpeed := movement.EffectiveSpeed(wm.MovementPenalty, wm.HalvesMovement)

	beforeEngagement, _ := ecs.Get[ecs.EngagementComponent](r.Store, moverID, ecs.KindEngagement)

	maxDistance := -1.0
	apBeforeMove := ap.Current
	if mode != ecs.MoveSprint {
		maxDistance = movement.MaxDistanceForAP(mode, effSpeed, ap.Current)
	}

	dest := spatial.Point{X: cmd.TargetX, Y: cmd.TargetY}
	_, _, _, distance := r.stepMove(turn, moverID, dest, mode, maxDistance)

	if mode == ecs.MoveSprint {
		r.deductAP(moverID, apBeforeMove)
	} else {
		apCost := movement.APCostForDistance(mode, distance, effSpeed)
		if apCost > ap.Current {
			apCost = ap.Current
		}
		r.deductAP(moverID, apCost)
	}

	afterEngagement, _ := ecs.Get[ecs.EngagementComponent](r.Store, moverID, ecs.KindEngagement)
	stillEngaged := make(map[ecs.EntityID]bool, len(afterEngagement.EngagedWith))
	for _, id := range afterEngagement.EngagedWith {
		stillEngaged[id] = true
	}
	var disengagedFrom []ecs.EntityID
	for _, id := range beforeEngagement.EngagedWith {
		if !stillEngaged[id] {
			disengagedFrom = append(disengagedFrom, id)
		}
	}
	if len(disengagedFrom) == 0 {
		return
	}
	if mode == ecs.MoveSprint {
		for _, opponentID := range disengagedFrom {
			if !r.isAlive(opponentID) {
				continue
			}
			weapon := ecs.MustGet[ecs.WeaponComponent](r.Store, opponentID, ecs.KindWeapon)
			r.dispatchAttack(turn, opponentID, ecs.Command{
				Kind: ecs.CommandAttack, TargetID: moverID, AttackType: attackKindForWeapon(weapon),
				IsProvoke: true, NoDefense: true,
			})
		}
		return
	}
	r.deductAP(moverID, movement.DisengageAPCost)
}

func attackKindForWeapon(weapon ecs.WeaponComponent) ecs.AttackKind {
	if weapon.Range > spatial.MeleeAttackRange {
		return ecs.AttackRanged
	}
	return ecs.AttackMelee
}

// stepMove moves moverID toward dest under the given mode, capped by
// maxDistance when non-negative (an AP-derived ceiling; pass -1 for
// "no cap beyond the mode's own per-turn budget"). It updates facing,
// charges any turn AP cost, refreshes engagement for every unit, and
// checks overwatch triggers against the move. Returns the before/after
// points, the path actually taken, and the distance covered.
func (r *Resolver) stepMove(turn int, moverID ecs.EntityID, dest spatial.Point, mode ecs.MoveMode, maxDistance float64) (before, after spatial.Point, path []spatial.Point, distance float64) {
	store := r.Store
	pos := ecs.MustGet[ecs.PositionComponent](store, moverID, ecs.KindPosition)
	before = spatial.Point{X: pos.X, Y: pos.Y}

	blockers := BuildBlockers(store, moverID)
	route := spatial.FindPath(before, dest, blockers, r.Bounds)
	if route == nil {
		return before, before, []spatial.Point{before}, 0
	}

	terrainObstacles := BuildTerrainObstacles(store)
	terrainFactor := movement.TerrainFactor(route, terrainObstacles)
	wm := r.woundMovement(moverID)
	effSpeed := movement.EffectiveSpeed(wm.MovementPenalty, wm.HalvesMovement)
	budget := movement.MoveBudget(mode, effSpeed, terrainFactor)
	if maxDistance >= 0 && maxDistance < budget {
		budget = maxDistance
	}

	truncated := spatial.TruncatePath(route, budget)
	after = truncated[len(truncated)-1]
	distance = spatial.PathLength(truncated)

	oldFacing := pos.Facing
	newFacing := oldFacing
	if !before.Equals(after) {
		newFacing = math.Atan2(after.Y-before.Y, after.X-before.X)
	}
	turnCost := movement.TurnCost(newFacing - oldFacing)
	ap := ecs.MustGet[ecs.ActionPointsComponent](store, moverID, ecs.KindActionPoints)
	charged := turnCost > 0 && ap.Current >= turnCost
	if charged {
		r.deductAP(moverID, turnCost)
	}

	pos.X, pos.Y = after.X, after.Y
	if newFacing != oldFacing {
		pos.Facing = newFacing
	}
	store.Set(moverID, ecs.KindPosition, pos)

	pathPairs := make([][2]float64, len(truncated))
	for i, p := range truncated {
		pathPairs[i] = [2]float64{p.X, p.Y}
	}
	r.Log.Append(eventlog.Event{
		Type: eventlog.TypeUnitMoved, Turn: turn, EntityID: r.entityTag(moverID),
		Data: eventlog.DataUnitMoved{FromX: before.X, FromY: before.Y, ToX: after.X, ToY: after.Y, Path: pathPairs},
	})
	if newFacing != oldFacing {
		cost := 0
		if charged {
			cost = turnCost
		}
		r.Log.Append(eventlog.Event{
			Type: eventlog.TypeUnitTurned, Turn: turn, EntityID: r.entityTag(moverID),
			Data: eventlog.DataUnitTurned{FromFacing: oldFacing, ToFacing: newFacing, APCost: cost},
		})
	}

	movement.RefreshEngagement(store, r.liveUnits())
	r.checkOverwatch(turn, moverID, before, after)
	return before, after, truncated, distance
}
