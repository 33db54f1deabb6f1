package turn

import (
	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/eventlog"
	"github.com/ttu/skirmish-sim/stamina"
	"github.com/ttu/skirmish-sim/wounds"
)

// endOfTurn runs bleed ticks, clears turn-scoped stances, recovers
// stamina, and resets AP to max for every unit. Command queues are
// never touched here: unexecuted commands persist to the next turn.
func (r *Resolver) endOfTurn(turn int) {
	for _, id := range r.Store.Query(ecs.KindHealth, ecs.KindWoundEffects) {
		health := ecs.MustGet[ecs.HealthComponent](r.Store, id, ecs.KindHealth)
		if health.WoundState == ecs.WoundDown {
			continue
		}
		effects := ecs.MustGet[ecs.WoundEffectsComponent](r.Store, id, ecs.KindWoundEffects)
		bleed := wounds.BleedTick(effects.Effects)
		if bleed <= 0 {
			continue
		}
		hpBefore := health.Current
		health.Current -= bleed
		if health.Current < 0 {
			health.Current = 0
		}
		oldState := health.WoundState
		health.WoundState = ecs.Threshold(health.Current, health.Max)
		r.Store.Set(id, ecs.KindHealth, health)
		r.damagedThisTurn[id] = true
		r.Log.Append(eventlog.Event{
			Type: eventlog.TypeBleedingDamage, Turn: turn, EntityID: r.entityTag(id),
			Data: eventlog.DataBleedingDamage{Amount: bleed, HPBefore: hpBefore, HPAfter: health.Current},
		})
		if health.WoundState == ecs.WoundDown && oldState != ecs.WoundDown {
			r.Log.Append(eventlog.Event{Type: eventlog.TypeUnitDown, Turn: turn, EntityID: r.entityTag(id), Data: eventlog.DataUnitDown{Reason: "bleeding"}})
		}
	}

	for _, id := range r.Store.Query(ecs.KindDefensiveStance) {
		r.Store.RemoveComponent(id, ecs.KindDefensiveStance)
	}
	for _, id := range r.Store.Query(ecs.KindOverwatch) {
		r.Store.RemoveComponent(id, ecs.KindOverwatch)
	}
	for _, id := range r.Store.Query(ecs.KindAimBonus) {
		r.Store.RemoveComponent(id, ecs.KindAimBonus)
	}

	for _, id := range r.Store.Query(ecs.KindStamina, ecs.KindHealth) {
		health := ecs.MustGet[ecs.HealthComponent](r.Store, id, ecs.KindHealth)
		if health.WoundState == ecs.WoundDown {
			continue
		}
		s := ecs.MustGet[ecs.StaminaComponent](r.Store, id, ecs.KindStamina)
		s = stamina.Recover(s, r.damagedThisTurn[id])
		r.Store.Set(id, ecs.KindStamina, s)
	}

	for _, id := range r.Store.Query(ecs.KindActionPoints, ecs.KindHealth) {
		health := ecs.MustGet[ecs.HealthComponent](r.Store, id, ecs.KindHealth)
		if health.WoundState == ecs.WoundDown {
			continue
		}
		ap := ecs.MustGet[ecs.ActionPointsComponent](r.Store, id, ecs.KindActionPoints)
		s := ecs.MustGet[ecs.StaminaComponent](r.Store, id, ecs.KindStamina)
		ap.Current = ap.Max - stamina.ExhaustionAPPenalty(s)
		if ap.Current < 0 {
			ap.Current = 0
		}
		r.Store.Set(id, ecs.KindActionPoints, ap)
	}
}
