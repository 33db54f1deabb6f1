package turn

import (
	"math"
	"sort"

	"github.com/ttu/skirmish-sim/ecs"
)

// QueueCommand offers cmd to entityID's command queue, rejecting it if
// the sum of AP cost of already-queued commands plus this one exceeds
// the unit's current AP.
func QueueCommand(store *ecs.Store, entityID ecs.EntityID, cmd ecs.Command) bool {
	ap, ok := ecs.Get[ecs.ActionPointsComponent](store, entityID, ecs.KindActionPoints)
	if !ok {
		return false
	}
	queue, _ := ecs.Get[ecs.CommandQueueComponent](store, entityID, ecs.KindCommandQueue)

	total := cmd.APCost
	for _, queued := range queue.Commands {
		total += queued.APCost
	}
	if total > ap.Current {
		return false
	}

	queue.Commands = append(queue.Commands, cmd)
	store.Set(entityID, ecs.KindCommandQueue, queue)
	return true
}

// conditionPasses evaluates a command's gating condition against the
// current world state.
func conditionPasses(store *ecs.Store, selfID ecs.EntityID, cond ecs.Condition) bool {
	switch cond.Kind {
	case ecs.ConditionNone:
		return true
	case ecs.ConditionTargetDead:
		health, ok := ecs.Get[ecs.HealthComponent](store, cond.TargetID, ecs.KindHealth)
		return !ok || health.WoundState == ecs.WoundDown
	case ecs.ConditionInRange:
		selfPos, ok1 := ecs.Get[ecs.PositionComponent](store, selfID, ecs.KindPosition)
		targetPos, ok2 := ecs.Get[ecs.PositionComponent](store, cond.TargetID, ecs.KindPosition)
		if !ok1 || !ok2 {
			return false
		}
		return distance(selfPos, targetPos) <= cond.Range
	case ecs.ConditionHPBelow:
		health, ok := ecs.Get[ecs.HealthComponent](store, selfID, ecs.KindHealth)
		if !ok || health.Max <= 0 {
			return false
		}
		percent := 100 * float64(health.Current) / float64(health.Max)
		return percent < cond.Threshold
	case ecs.ConditionEnemyApproaches:
		selfPos, ok := ecs.Get[ecs.PositionComponent](store, selfID, ecs.KindPosition)
		if !ok {
			return false
		}
		selfFaction, _ := ecs.Get[ecs.FactionComponent](store, selfID, ecs.KindFaction)
		for _, id := range store.Query(ecs.KindHealth, ecs.KindFaction, ecs.KindPosition) {
			if id == selfID {
				continue
			}
			health := ecs.MustGet[ecs.HealthComponent](store, id, ecs.KindHealth)
			faction := ecs.MustGet[ecs.FactionComponent](store, id, ecs.KindFaction)
			if health.WoundState == ecs.WoundDown || faction.Faction == selfFaction.Faction {
				continue
			}
			pos := ecs.MustGet[ecs.PositionComponent](store, id, ecs.KindPosition)
			if distance(selfPos, pos) <= cond.Range {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func distance(a, b ecs.PositionComponent) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// QueuedCommand pairs a command with the entity that owns it and the
// order it was inserted into the global collection list.
type QueuedCommand struct {
	OwnerID        ecs.EntityID
	Command        ecs.Command
	InsertionIndex int
}

// Collect walks every entity with a command queue that is alive and
// not routed, in ascending entity-id order, keeping commands whose
// condition currently passes, then returns them sorted by priority
// ascending with ties broken by insertion order (stable sort).
func Collect(store *ecs.Store) []QueuedCommand {
	var out []QueuedCommand
	for _, id := range store.Query(ecs.KindCommandQueue, ecs.KindHealth, ecs.KindMorale) {
		health := ecs.MustGet[ecs.HealthComponent](store, id, ecs.KindHealth)
		if health.WoundState == ecs.WoundDown {
			continue
		}
		morale := ecs.MustGet[ecs.MoraleComponent](store, id, ecs.KindMorale)
		if morale.Status == ecs.MoraleRouted {
			continue
		}
		queue := ecs.MustGet[ecs.CommandQueueComponent](store, id, ecs.KindCommandQueue)
		for _, cmd := range queue.Commands {
			if !conditionPasses(store, id, cmd.Condition) {
				continue
			}
			out = append(out, QueuedCommand{OwnerID: id, Command: cmd, InsertionIndex: len(out)})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Command.Priority < out[j].Command.Priority
	})
	return out
}

// RemoveCommand deletes the first command matching cmd (by value) from
// ownerID's queue, implementing "removing the command" after it has
// executed or been rejected as out of range.
func RemoveCommand(store *ecs.Store, ownerID ecs.EntityID, cmd ecs.Command) {
	queue, ok := ecs.Get[ecs.CommandQueueComponent](store, ownerID, ecs.KindCommandQueue)
	if !ok {
		return
	}
	for i, queued := range queue.Commands {
		if queued == cmd {
			queue.Commands = append(queue.Commands[:i:i], queue.Commands[i+1:]...)
			store.Set(ownerID, ecs.KindCommandQueue, queue)
			return
		}
	}
}
