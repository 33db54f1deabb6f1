// Package turn sequences one resolution phase: collecting queued
// commands, dispatching each in priority order, resolving inline
// reactions (provokes and overwatch triggers) as they occur, and
// running end-of-turn housekeeping. Dice come from the Resolver's
// injected rng.Source, mostly through the combat, morale and wounds
// packages; the weapon-break roll is drawn here directly.
package turn

import (
	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/eventlog"
	"github.com/ttu/skirmish-sim/movement"
	"github.com/ttu/skirmish-sim/rng"
	"github.com/ttu/skirmish-sim/spatial"
)

// Resolver holds the per-battle dependencies the dispatch pipeline
// needs and the per-turn bookkeeping (reaction budgets, who took
// damage) that gets reset at the start of every ResolveTurn call.
type Resolver struct {
	Store  *ecs.Store
	Log    *eventlog.Log
	RNG    rng.Source
	Bounds spatial.Bounds

	reactionsUsed   map[ecs.EntityID]int
	damagedThisTurn map[ecs.EntityID]bool
}

// NewResolver builds a Resolver over the given store, log, PRNG and
// map bounds.
func NewResolver(store *ecs.Store, log *eventlog.Log, src rng.Source, bounds spatial.Bounds) *Resolver {
	return &Resolver{Store: store, Log: log, RNG: src, Bounds: bounds}
}

// ResolveTurn runs one full resolution phase: collects every eligible
// queued command, dispatches them in priority order (reactions and
// provokes resolve inline as they're triggered, never queued
// separately), then runs end-of-turn housekeeping. It returns the
// number of commands actually dispatched.
func (r *Resolver) ResolveTurn(turnNumber int) int {
	r.reactionsUsed = map[ecs.EntityID]int{}
	r.damagedThisTurn = map[ecs.EntityID]bool{}

	r.Log.Append(eventlog.Event{Type: eventlog.TypeResolutionPhaseStarted, Turn: turnNumber})

	collected := Collect(r.Store)
	resolved := 0
	for _, qc := range collected {
		if !r.isAlive(qc.OwnerID) {
			continue
		}
		RemoveCommand(r.Store, qc.OwnerID, qc.Command)
		r.dispatch(turnNumber, qc.OwnerID, qc.Command)
		resolved++
	}

	r.endOfTurn(turnNumber)
	r.Log.Append(eventlog.Event{Type: eventlog.TypeTurnEnded, Turn: turnNumber, Data: eventlog.DataTurnEnded{ActionsResolved: resolved}})
	return resolved
}

func (r *Resolver) dispatch(turn int, ownerID ecs.EntityID, cmd ecs.Command) {
	switch cmd.Kind {
	case ecs.CommandMove:
		r.dispatchMove(turn, ownerID, cmd)
	case ecs.CommandAttack:
		r.dispatchAttack(turn, ownerID, cmd)
	case ecs.CommandDefend:
		r.dispatchDefend(turn, ownerID, cmd)
	case ecs.CommandAim:
		r.dispatchAim(turn, ownerID, cmd)
	case ecs.CommandReload:
		r.dispatchReload(turn, ownerID, cmd)
	case ecs.CommandRally:
		r.dispatchRally(turn, ownerID, cmd)
	case ecs.CommandOverwatch:
		r.dispatchOverwatch(turn, ownerID, cmd)
	case ecs.CommandWait:
		r.deductAP(ownerID, cmd.APCost)
	}
}

func (r *Resolver) isAlive(id ecs.EntityID) bool {
	health, ok := ecs.Get[ecs.HealthComponent](r.Store, id, ecs.KindHealth)
	return ok && health.WoundState != ecs.WoundDown
}

func (r *Resolver) deductAP(id ecs.EntityID, cost int) {
	ap, ok := ecs.Get[ecs.ActionPointsComponent](r.Store, id, ecs.KindActionPoints)
	if !ok {
		return
	}
	ap.Current -= cost
	if ap.Current < 0 {
		ap.Current = 0
	}
	r.Store.Set(id, ecs.KindActionPoints, ap)
}

// liveUnits snapshots every unit in the store as a movement.LivePosition,
// for RefreshEngagement.
func (r *Resolver) liveUnits() []movement.LivePosition {
	var out []movement.LivePosition
	for _, id := range r.Store.Query(ecs.KindPosition, ecs.KindFaction, ecs.KindHealth) {
		pos := ecs.MustGet[ecs.PositionComponent](r.Store, id, ecs.KindPosition)
		faction := ecs.MustGet[ecs.FactionComponent](r.Store, id, ecs.KindFaction)
		health := ecs.MustGet[ecs.HealthComponent](r.Store, id, ecs.KindHealth)
		out = append(out, movement.LivePosition{ID: id, Position: pos, Faction: faction.Faction, Alive: health.WoundState != ecs.WoundDown})
	}
	return out
}
