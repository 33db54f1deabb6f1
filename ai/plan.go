package ai

import (
	"math"

	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/movement"
	"github.com/ttu/skirmish-sim/spatial"
	"github.com/ttu/skirmish-sim/turn"
	"github.com/ttu/skirmish-sim/wounds"
)

// rallyAPCost is the AP a rally command costs; the corpus does not pin
// this value, so it is set to the smallest non-zero cost.
const rallyAPCost = 1

// GenerateCommands builds the 1-2 commands unitID's personality wants
// to run this turn. bounds is the map extent used to clamp pathfinder
// destinations for move commands.
func GenerateCommands(store *ecs.Store, unitID ecs.EntityID, personality ecs.AIPersonality, analysis BattlefieldAnalysis, bounds spatial.Bounds) []ecs.Command {
	switch personality {
	case ecs.PersonalityAggressive:
		return aggressivePlan(store, unitID, analysis, bounds)
	case ecs.PersonalityCunning:
		return cunningPlan(store, unitID, analysis, bounds)
	case ecs.PersonalityCautious:
		return cautiousPlan(store, unitID, analysis, bounds)
	case ecs.PersonalityBrutal:
		return brutalPlan(store, unitID, analysis, bounds)
	case ecs.PersonalityHonorable:
		return honorablePlan(store, unitID, analysis, bounds)
	default:
		return nil
	}
}

func aggressivePlan(store *ecs.Store, unitID ecs.EntityID, a BattlefieldAnalysis, bounds spatial.Bounds) []ecs.Command {
	if shaken(store, unitID) {
		return []ecs.Command{rallyCommand()}
	}
	target, ok := nearestEnemy(store, unitID, a.EnemyUnits)
	if !ok {
		return nil
	}
	if inWeaponRange(store, unitID, target) {
		return attackCommands(store, unitID, target, 2)
	}
	return moveTowardCommands(store, unitID, target, ecs.MoveRun, bounds)
}

func cunningPlan(store *ecs.Store, unitID ecs.EntityID, a BattlefieldAnalysis, bounds spatial.Bounds) []ecs.Command {
	target, ok := preferWoundedReachable(a)
	if !ok {
		target, ok = nearestEnemy(store, unitID, a.EnemyUnits)
		if !ok {
			return nil
		}
	}
	if inWeaponRange(store, unitID, target) {
		return attackCommands(store, unitID, target, 1)
	}
	return flankMoveCommand(store, unitID, target, bounds)
}

func cautiousPlan(store *ecs.Store, unitID ecs.EntityID, a BattlefieldAnalysis, bounds spatial.Bounds) []ecs.Command {
	if losing(a) || shaken(store, unitID) {
		cmds := []ecs.Command{rallyCommand()}
		centroid, ok := enemyCentroid(store, a.EnemyUnits)
		if ok {
			cmds = append(cmds, moveAwayFromCommand(store, unitID, centroid, bounds))
		}
		return cmds
	}
	target, ok := nearestEnemy(store, unitID, a.EnemyUnits)
	if !ok {
		return []ecs.Command{waitCommand()}
	}
	if inWeaponRange(store, unitID, target) {
		return attackCommands(store, unitID, target, 1)
	}
	return []ecs.Command{waitCommand()}
}

func brutalPlan(store *ecs.Store, unitID ecs.EntityID, a BattlefieldAnalysis, bounds spatial.Bounds) []ecs.Command {
	target, ok := weakestEnemy(store, a.EnemyUnits)
	if !ok {
		return nil
	}
	if inWeaponRange(store, unitID, target) {
		return attackCommands(store, unitID, target, 2)
	}
	return moveTowardCommands(store, unitID, target, ecs.MoveSprint, bounds)
}

func honorablePlan(store *ecs.Store, unitID ecs.EntityID, a BattlefieldAnalysis, bounds spatial.Bounds) []ecs.Command {
	target, ok := highestThreatUnengagedReachable(a)
	if !ok {
		return nil
	}
	if inWeaponRange(store, unitID, target) {
		return attackCommands(store, unitID, target, 1)
	}
	return moveTowardCommands(store, unitID, target, ecs.MoveAdvance, bounds)
}

func shaken(store *ecs.Store, unitID ecs.EntityID) bool {
	m, ok := ecs.Get[ecs.MoraleComponent](store, unitID, ecs.KindMorale)
	return ok && m.Status == ecs.MoraleShaken
}

func losing(a BattlefieldAnalysis) bool {
	return a.OwnCasualtyRate > a.EnemyCasualtyRate || a.EnemyPoints > a.OwnPoints
}

func rallyCommand() ecs.Command {
	return ecs.Command{Kind: ecs.CommandRally, APCost: rallyAPCost}
}

func waitCommand() ecs.Command {
	return ecs.Command{Kind: ecs.CommandWait}
}

func nearestEnemy(store *ecs.Store, unitID ecs.EntityID, enemies []ecs.EntityID) (ecs.EntityID, bool) {
	pos := ecs.MustGet[ecs.PositionComponent](store, unitID, ecs.KindPosition)
	point := spatial.Point{X: pos.X, Y: pos.Y}
	best, bestDist := ecs.EntityID(0), math.MaxFloat64
	found := false
	for _, id := range enemies {
		epos := ecs.MustGet[ecs.PositionComponent](store, id, ecs.KindPosition)
		d := point.Distance(spatial.Point{X: epos.X, Y: epos.Y})
		if !found || d < bestDist {
			best, bestDist, found = id, d, true
		}
	}
	return best, found
}

func weakestEnemy(store *ecs.Store, enemies []ecs.EntityID) (ecs.EntityID, bool) {
	best, bestPct := ecs.EntityID(0), math.MaxFloat64
	found := false
	for _, id := range enemies {
		health := ecs.MustGet[ecs.HealthComponent](store, id, ecs.KindHealth)
		if health.Max <= 0 {
			continue
		}
		pct := float64(health.Current) / float64(health.Max)
		if !found || pct < bestPct {
			best, bestPct, found = id, pct, true
		}
	}
	return best, found
}

func preferWoundedReachable(a BattlefieldAnalysis) (ecs.EntityID, bool) {
	best, bestDist := ecs.EntityID(0), math.MaxFloat64
	found := false
	for _, id := range a.EnemyUnits {
		t := a.Threats[id]
		if !t.IsWounded || !t.CanReach {
			continue
		}
		if !found || t.Distance < bestDist {
			best, bestDist, found = id, t.Distance, true
		}
	}
	return best, found
}

func highestThreatUnengagedReachable(a BattlefieldAnalysis) (ecs.EntityID, bool) {
	best, bestThreat := ecs.EntityID(0), -math.MaxFloat64
	found := false
	for _, id := range a.EnemyUnits {
		t := a.Threats[id]
		if t.IsEngaged || !t.CanReach {
			continue
		}
		if !found || t.ThreatLevel > bestThreat {
			best, bestThreat, found = id, t.ThreatLevel, true
		}
	}
	return best, found
}

func enemyCentroid(store *ecs.Store, enemies []ecs.EntityID) (spatial.Point, bool) {
	if len(enemies) == 0 {
		return spatial.Point{}, false
	}
	var sx, sy float64
	for _, id := range enemies {
		pos := ecs.MustGet[ecs.PositionComponent](store, id, ecs.KindPosition)
		sx += pos.X
		sy += pos.Y
	}
	n := float64(len(enemies))
	return spatial.Point{X: sx / n, Y: sy / n}, true
}

func inWeaponRange(store *ecs.Store, unitID, targetID ecs.EntityID) bool {
	pos := ecs.MustGet[ecs.PositionComponent](store, unitID, ecs.KindPosition)
	tpos := ecs.MustGet[ecs.PositionComponent](store, targetID, ecs.KindPosition)
	weapon := ecs.MustGet[ecs.WeaponComponent](store, unitID, ecs.KindWeapon)
	d := (spatial.Point{X: pos.X, Y: pos.Y}).Distance(spatial.Point{X: tpos.X, Y: tpos.Y})
	return d <= weapon.Range
}

// attackCommands returns one attack command, or two when the unit's
// current AP covers the weapon's cost twice.
func attackCommands(store *ecs.Store, unitID, targetID ecs.EntityID, maxAttacks int) []ecs.Command {
	weapon := ecs.MustGet[ecs.WeaponComponent](store, unitID, ecs.KindWeapon)
	ap := ecs.MustGet[ecs.ActionPointsComponent](store, unitID, ecs.KindActionPoints)
	attackType := ecs.AttackMelee
	if weapon.Range > spatial.MeleeAttackRange {
		attackType = ecs.AttackRanged
	}
	count := 1
	if maxAttacks >= 2 && weapon.APCost*2 <= ap.Current {
		count = 2
	}
	cmds := make([]ecs.Command, 0, count)
	for i := 0; i < count; i++ {
		cmds = append(cmds, ecs.Command{Kind: ecs.CommandAttack, TargetID: targetID, AttackType: attackType, APCost: weapon.APCost})
	}
	return cmds
}

func effectiveSpeedFor(store *ecs.Store, unitID ecs.EntityID) float64 {
	effects, _ := ecs.Get[ecs.WoundEffectsComponent](store, unitID, ecs.KindWoundEffects)
	wm := wounds.Accumulate(effects.Effects)
	return movement.EffectiveSpeed(wm.MovementPenalty, wm.HalvesMovement)
}

func moveTowardCommands(store *ecs.Store, unitID, targetID ecs.EntityID, mode ecs.MoveMode, bounds spatial.Bounds) []ecs.Command {
	pos := ecs.MustGet[ecs.PositionComponent](store, unitID, ecs.KindPosition)
	tpos := ecs.MustGet[ecs.PositionComponent](store, targetID, ecs.KindPosition)
	dest := spatial.Point{X: tpos.X, Y: tpos.Y}
	return []ecs.Command{buildMoveCommand(store, unitID, spatial.Point{X: pos.X, Y: pos.Y}, dest, mode, bounds)}
}

func moveAwayFromCommand(store *ecs.Store, unitID ecs.EntityID, from spatial.Point, bounds spatial.Bounds) ecs.Command {
	pos := ecs.MustGet[ecs.PositionComponent](store, unitID, ecs.KindPosition)
	point := spatial.Point{X: pos.X, Y: pos.Y}
	dx, dy := point.X-from.X, point.Y-from.Y
	if dx == 0 && dy == 0 {
		dx = 1
	}
	length := math.Hypot(dx, dy)
	dest := bounds.Clamp(spatial.Point{X: point.X + dx/length*6, Y: point.Y + dy/length*6})
	return buildMoveCommand(store, unitID, point, dest, ecs.MoveWalk, bounds)
}

// flankMoveCommand targets a point 2m to the side of the target, along
// the perpendicular of the attacker-target axis.
func flankMoveCommand(store *ecs.Store, unitID, targetID ecs.EntityID, bounds spatial.Bounds) []ecs.Command {
	pos := ecs.MustGet[ecs.PositionComponent](store, unitID, ecs.KindPosition)
	tpos := ecs.MustGet[ecs.PositionComponent](store, targetID, ecs.KindPosition)
	point := spatial.Point{X: pos.X, Y: pos.Y}
	target := spatial.Point{X: tpos.X, Y: tpos.Y}

	dx, dy := target.X-point.X, target.Y-point.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		length = 1
	}
	perpX, perpY := -dy/length, dx/length

	dest := bounds.Clamp(spatial.Point{X: target.X + perpX*2, Y: target.Y + perpY*2})
	return []ecs.Command{buildMoveCommand(store, unitID, point, dest, ecs.MoveAdvance, bounds)}
}

func buildMoveCommand(store *ecs.Store, unitID ecs.EntityID, from, rawDest spatial.Point, mode ecs.MoveMode, bounds spatial.Bounds) ecs.Command {
	blockers := turn.BuildBlockers(store, unitID)
	path := spatial.FindPath(from, bounds.Clamp(rawDest), blockers, bounds)

	speed := effectiveSpeedFor(store, unitID)
	ap := ecs.MustGet[ecs.ActionPointsComponent](store, unitID, ecs.KindActionPoints)

	budget := movement.MoveBudget(mode, speed, 1.0)
	if mode != ecs.MoveSprint {
		if maxAP := movement.MaxDistanceForAP(mode, speed, ap.Current); maxAP < budget {
			budget = maxAP
		}
	}
	path = spatial.TruncatePath(path, budget)
	dest := from
	if len(path) > 0 {
		dest = path[len(path)-1]
	}

	apCost := ap.Current
	if mode != ecs.MoveSprint {
		apCost = movement.APCostForDistance(mode, spatial.PathLength(path), speed)
		if apCost > ap.Current {
			apCost = ap.Current
		}
	}

	return ecs.Command{Kind: ecs.CommandMove, TargetX: dest.X, TargetY: dest.Y, Mode: mode, APCost: apCost}
}
