// Package victory evaluates the closed set of win conditions against
// the current battle state and decides the match outcome.
package victory

import (
	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/spatial"
	"github.com/ttu/skirmish-sim/units"
)

// ConditionKind is the closed set of victory condition types.
type ConditionKind string

// The seven condition kinds (spec §4.N).
const (
	ConditionElimination     ConditionKind = "elimination"
	ConditionMoraleBreak     ConditionKind = "morale_break"
	ConditionObjectiveHold   ConditionKind = "objective_hold"
	ConditionObjectiveReach  ConditionKind = "objective_reach"
	ConditionObjectiveKill   ConditionKind = "objective_kill"
	ConditionSurvival        ConditionKind = "survival"
	ConditionPointThreshold  ConditionKind = "point_threshold"
)

// Condition is one configured win condition. Faction is whichever side
// is credited with the win when the condition is met; fields outside
// Kind's relevance are ignored.
type Condition struct {
	Kind    ConditionKind
	Faction ecs.Faction

	Position spatial.Point // objective_hold, objective_reach
	Radius   float64       // objective_hold, objective_reach

	RequiredTurns int // objective_hold: consecutive turns the position must be held

	UnitType string // objective_reach (optional filter), objective_kill (required)

	TurnThreshold int // survival

	PointThreshold int // point_threshold

	LeaderID *ecs.EntityID // morale_break (optional)
}

// Evaluator tracks the external turnsHeld counters objective_hold
// conditions need (spec §9 open question 2: never stored on the
// condition record itself).
type Evaluator struct {
	Conditions []Condition
	turnsHeld  map[int]int
}

// NewEvaluator builds an evaluator for a fixed set of conditions.
func NewEvaluator(conditions []Condition) *Evaluator {
	return &Evaluator{Conditions: conditions, turnsHeld: map[int]int{}}
}

// Outcome is the result of one evaluation pass.
type Outcome struct {
	Decided    bool
	Draw       bool
	Winner     ecs.Faction
	MetIndexes []int
}

// Evaluate checks every condition against the current store and turn
// number. If conditions belonging to both factions are met
// simultaneously the match is a draw; otherwise the single faction
// with any met condition wins.
func (e *Evaluator) Evaluate(store *ecs.Store, turn int) Outcome {
	var met []int
	factionsMet := map[ecs.Faction]bool{}

	for i, cond := range e.Conditions {
		if e.conditionMet(store, turn, i, cond) {
			met = append(met, i)
			factionsMet[cond.Faction] = true
		}
	}

	if len(factionsMet) == 0 {
		return Outcome{MetIndexes: met}
	}
	if len(factionsMet) > 1 {
		return Outcome{Decided: true, Draw: true, MetIndexes: met}
	}
	for faction := range factionsMet {
		return Outcome{Decided: true, Winner: faction, MetIndexes: met}
	}
	return Outcome{}
}

func opposite(f ecs.Faction) ecs.Faction {
	if f == ecs.FactionPlayer {
		return ecs.FactionEnemy
	}
	return ecs.FactionPlayer
}

func (e *Evaluator) conditionMet(store *ecs.Store, turn, idx int, cond Condition) bool {
	switch cond.Kind {
	case ConditionElimination:
		return eliminated(store, opposite(cond.Faction))
	case ConditionMoraleBreak:
		return moraleBroken(store, opposite(cond.Faction), cond.LeaderID)
	case ConditionObjectiveHold:
		held := anyAliveUnitWithin(store, cond.Faction, "", cond.Position, cond.Radius)
		if held {
			e.turnsHeld[idx]++
		} else {
			e.turnsHeld[idx] = 0
		}
		return e.turnsHeld[idx] >= cond.RequiredTurns
	case ConditionObjectiveReach:
		return anyAliveUnitWithin(store, cond.Faction, cond.UnitType, cond.Position, cond.Radius)
	case ConditionObjectiveKill:
		return unitTypeEliminated(store, opposite(cond.Faction), cond.UnitType)
	case ConditionSurvival:
		return turn >= cond.TurnThreshold
	case ConditionPointThreshold:
		return totalPoints(store, cond.Faction) >= cond.PointThreshold
	default:
		return false
	}
}

func eliminated(store *ecs.Store, faction ecs.Faction) bool {
	for _, id := range store.Query(ecs.KindFaction, ecs.KindHealth, ecs.KindMorale) {
		f := ecs.MustGet[ecs.FactionComponent](store, id, ecs.KindFaction)
		if f.Faction != faction {
			continue
		}
		health := ecs.MustGet[ecs.HealthComponent](store, id, ecs.KindHealth)
		if health.WoundState == ecs.WoundDown {
			continue
		}
		moraleComp := ecs.MustGet[ecs.MoraleComponent](store, id, ecs.KindMorale)
		if moraleComp.Status == ecs.MoraleRouted {
			continue
		}
		return false
	}
	return true
}

func moraleBroken(store *ecs.Store, faction ecs.Faction, leaderID *ecs.EntityID) bool {
	total, casualties, brokenOrDown := 0, 0, 0
	for _, id := range store.Query(ecs.KindFaction, ecs.KindHealth, ecs.KindMorale) {
		f := ecs.MustGet[ecs.FactionComponent](store, id, ecs.KindFaction)
		if f.Faction != faction {
			continue
		}
		total++
		health := ecs.MustGet[ecs.HealthComponent](store, id, ecs.KindHealth)
		moraleComp := ecs.MustGet[ecs.MoraleComponent](store, id, ecs.KindMorale)
		if health.WoundState == ecs.WoundDown {
			casualties++
			brokenOrDown++
			continue
		}
		if moraleComp.Status == ecs.MoraleBroken || moraleComp.Status == ecs.MoraleRouted {
			brokenOrDown++
		}
	}
	if total == 0 {
		return false
	}
	if float64(casualties)/float64(total) < 0.5 {
		return false
	}
	if float64(brokenOrDown)/float64(total) <= 0.5 {
		return false
	}
	if leaderID != nil {
		health, ok := ecs.Get[ecs.HealthComponent](store, *leaderID, ecs.KindHealth)
		if !ok || health.WoundState != ecs.WoundDown {
			return false
		}
	}
	return true
}

func anyAliveUnitWithin(store *ecs.Store, faction ecs.Faction, unitType string, pos spatial.Point, radius float64) bool {
	for _, id := range store.Query(ecs.KindFaction, ecs.KindHealth, ecs.KindPosition) {
		f := ecs.MustGet[ecs.FactionComponent](store, id, ecs.KindFaction)
		if f.Faction != faction {
			continue
		}
		health := ecs.MustGet[ecs.HealthComponent](store, id, ecs.KindHealth)
		if health.WoundState == ecs.WoundDown {
			continue
		}
		if unitType != "" {
			ident, ok := ecs.Get[ecs.IdentityComponent](store, id, ecs.KindIdentity)
			if !ok || ident.UnitType != unitType {
				continue
			}
		}
		unitPos := ecs.MustGet[ecs.PositionComponent](store, id, ecs.KindPosition)
		if (spatial.Point{X: unitPos.X, Y: unitPos.Y}).Distance(pos) <= radius {
			return true
		}
	}
	return false
}

func unitTypeEliminated(store *ecs.Store, faction ecs.Faction, unitType string) bool {
	for _, id := range store.Query(ecs.KindFaction, ecs.KindHealth, ecs.KindIdentity) {
		f := ecs.MustGet[ecs.FactionComponent](store, id, ecs.KindFaction)
		if f.Faction != faction {
			continue
		}
		ident := ecs.MustGet[ecs.IdentityComponent](store, id, ecs.KindIdentity)
		if ident.UnitType != unitType {
			continue
		}
		health := ecs.MustGet[ecs.HealthComponent](store, id, ecs.KindHealth)
		if health.WoundState != ecs.WoundDown {
			return false
		}
	}
	return true
}

func totalPoints(store *ecs.Store, faction ecs.Faction) int {
	total := 0
	for _, id := range store.Query(ecs.KindFaction, ecs.KindHealth, ecs.KindMorale, ecs.KindIdentity) {
		f := ecs.MustGet[ecs.FactionComponent](store, id, ecs.KindFaction)
		if f.Faction != faction {
			continue
		}
		health := ecs.MustGet[ecs.HealthComponent](store, id, ecs.KindHealth)
		if health.WoundState == ecs.WoundDown {
			continue
		}
		moraleComp := ecs.MustGet[ecs.MoraleComponent](store, id, ecs.KindMorale)
		if moraleComp.Status == ecs.MoraleRouted {
			continue
		}
		ident := ecs.MustGet[ecs.IdentityComponent](store, id, ecs.KindIdentity)
		total += units.PointValue(ident.UnitType)
	}
	return total
}
