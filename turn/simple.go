package turn

import (
	"github.com/ttu/skirmish-sim/ammo"
	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/eventlog"
	"github.com/ttu/skirmish-sim/morale"
	"github.com/ttu/skirmish-sim/spatial"
)

// dispatchDefend establishes a turn-scoped defensive stance: the
// numeric bonus (+15% to defense rolls, one extra reaction) is not
// pinned by name anywhere in the source material; chosen as the
// smallest value that makes bracing to defend worth the lost tempo.
func (r *Resolver) dispatchDefend(turn int, ownerID ecs.EntityID, cmd ecs.Command) {
	r.deductAP(ownerID, cmd.APCost)
	r.Store.Set(ownerID, ecs.KindDefensiveStance, ecs.DefensiveStanceComponent{BonusPercent: 15, ExtraReactions: 1})
}

// dispatchAim records a standing attack bonus against cmd.TargetID,
// consumed the first time the aiming unit attacks that target.
func (r *Resolver) dispatchAim(turn int, ownerID ecs.EntityID, cmd ecs.Command) {
	r.deductAP(ownerID, cmd.APCost)
	bonus, _ := ecs.Get[ecs.AimBonusComponent](r.Store, ownerID, ecs.KindAimBonus)
	bonus.Entries = append(bonus.Entries, ecs.AimEntry{TargetID: cmd.TargetID, Bonus: cmd.AimBonus})
	r.Store.Set(ownerID, ecs.KindAimBonus, bonus)
}

// dispatchReload switches the owner's active ammo slot.
func (r *Resolver) dispatchReload(turn int, ownerID ecs.EntityID, cmd ecs.Command) {
	r.deductAP(ownerID, cmd.APCost)
	slots, ok := ecs.Get[ecs.AmmoComponent](r.Store, ownerID, ecs.KindAmmo)
	if !ok {
		return
	}
	updated, ok := ammo.SwitchAmmoSlot(slots, cmd.SlotIndex)
	if ok {
		r.Store.Set(ownerID, ecs.KindAmmo, updated)
	}
}

// dispatchRally attempts to improve the owner's morale status one
// step; steady and routed units have nothing to attempt.
func (r *Resolver) dispatchRally(turn int, ownerID ecs.EntityID, cmd ecs.Command) {
	r.deductAP(ownerID, cmd.APCost)
	moraleComp := ecs.MustGet[ecs.MoraleComponent](r.Store, ownerID, ecs.KindMorale)
	if moraleComp.Status == ecs.MoraleSteady || moraleComp.Status == ecs.MoraleRouted {
		return
	}
	skills := ecs.MustGet[ecs.SkillsComponent](r.Store, ownerID, ecs.KindSkills)
	leadership := morale.LeadershipBonus(r.nearbySteadyAllies(ownerID))
	res := morale.Check(r.RNG, skills.Morale, leadership)
	r.Log.Append(eventlog.Event{
		Type: eventlog.TypeMoraleChecked, Turn: turn, EntityID: r.entityTag(ownerID),
		Data: eventlog.DataMoraleChecked{BaseSkill: skills.Morale, EffectiveSkill: res.EffectiveSkill, Roll: res.Roll, Passed: res.Passed, Margin: res.FailureMargin},
	})
	oldStatus := moraleComp.Status
	newStatus := morale.Rally(moraleComp.Status, res.Passed)
	if newStatus == oldStatus {
		return
	}
	moraleComp.Status = newStatus
	r.Store.Set(ownerID, ecs.KindMorale, moraleComp)
	r.Log.Append(eventlog.Event{
		Type: eventlog.TypeUnitRallied, Turn: turn, EntityID: r.entityTag(ownerID),
		Data: eventlog.DataMoraleTransition{FromStatus: string(oldStatus), ToStatus: string(newStatus)},
	})
}

// nearbySteadyAllies counts the owner's steady-morale same-faction
// allies within shield-wall-style supporting range, for rally's
// leadership bonus.
func (r *Resolver) nearbySteadyAllies(ownerID ecs.EntityID) int {
	pos := ecs.MustGet[ecs.PositionComponent](r.Store, ownerID, ecs.KindPosition)
	faction := ecs.MustGet[ecs.FactionComponent](r.Store, ownerID, ecs.KindFaction)
	point := spatial.Point{X: pos.X, Y: pos.Y}
	count := 0
	for _, id := range r.Store.Query(ecs.KindPosition, ecs.KindFaction, ecs.KindMorale, ecs.KindHealth) {
		if id == ownerID {
			continue
		}
		health := ecs.MustGet[ecs.HealthComponent](r.Store, id, ecs.KindHealth)
		if health.WoundState == ecs.WoundDown {
			continue
		}
		otherFaction := ecs.MustGet[ecs.FactionComponent](r.Store, id, ecs.KindFaction)
		if otherFaction.Faction != faction.Faction {
			continue
		}
		moraleComp := ecs.MustGet[ecs.MoraleComponent](r.Store, id, ecs.KindMorale)
		if moraleComp.Status != ecs.MoraleSteady {
			continue
		}
		otherPos := ecs.MustGet[ecs.PositionComponent](r.Store, id, ecs.KindPosition)
		if point.Distance(spatial.Point{X: otherPos.X, Y: otherPos.Y}) <= spatial.ShieldWallRange*2 {
			count++
		}
	}
	return count
}
