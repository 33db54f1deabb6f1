package turn

import (
	"math"

	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/eventlog"
	"github.com/ttu/skirmish-sim/spatial"
)

// dispatchOverwatch arms a unit's overwatch for the rest of the turn:
// it will fire a free reaction attack the first time an enemy closes
// into its weapon's range (optionally gated to a watch arc).
func (r *Resolver) dispatchOverwatch(turn int, ownerID ecs.EntityID, cmd ecs.Command) {
	r.deductAP(ownerID, cmd.APCost)
	ow := ecs.OverwatchComponent{AttackType: cmd.AttackType, WatchDirection: cmd.WatchDirection, WatchArc: cmd.WatchArc}
	r.Store.Set(ownerID, ecs.KindOverwatch, ow)
	r.Log.Append(eventlog.Event{
		Type: eventlog.TypeOverwatchSet, Turn: turn, EntityID: r.entityTag(ownerID),
		Data: eventlog.DataOverwatchSet{AttackType: string(cmd.AttackType), WatchDir: cmd.WatchDirection, WatchArc: cmd.WatchArc},
	})
}

// checkOverwatch fires any armed, untriggered, opposing-faction
// overwatch whose owner's weapon range the mover just closed into,
// respecting an optional watch arc.
func (r *Resolver) checkOverwatch(turn int, moverID ecs.EntityID, before, after spatial.Point) {
	moverFaction, ok := ecs.Get[ecs.FactionComponent](r.Store, moverID, ecs.KindFaction)
	if !ok {
		return
	}
	for _, watcherID := range r.Store.Query(ecs.KindOverwatch, ecs.KindPosition, ecs.KindFaction, ecs.KindWeapon, ecs.KindHealth) {
		if watcherID == moverID {
			continue
		}
		watcherFaction := ecs.MustGet[ecs.FactionComponent](r.Store, watcherID, ecs.KindFaction)
		if watcherFaction.Faction == moverFaction.Faction {
			continue
		}
		health := ecs.MustGet[ecs.HealthComponent](r.Store, watcherID, ecs.KindHealth)
		if health.WoundState == ecs.WoundDown {
			continue
		}
		ow := ecs.MustGet[ecs.OverwatchComponent](r.Store, watcherID, ecs.KindOverwatch)
		if ow.Triggered {
			continue
		}
		weapon := ecs.MustGet[ecs.WeaponComponent](r.Store, watcherID, ecs.KindWeapon)
		watcherPos := ecs.MustGet[ecs.PositionComponent](r.Store, watcherID, ecs.KindPosition)
		watcherPoint := spatial.Point{X: watcherPos.X, Y: watcherPos.Y}

		oldDist := watcherPoint.Distance(before)
		newDist := watcherPoint.Distance(after)
		if !(oldDist > weapon.Range && newDist <= weapon.Range) {
			continue
		}
		if ow.WatchDirection != nil && ow.WatchArc != nil {
			angle := math.Atan2(after.Y-watcherPos.Y, after.X-watcherPos.X)
			delta := angle - *ow.WatchDirection
			for delta > math.Pi {
				delta -= 2 * math.Pi
			}
			for delta < -math.Pi {
				delta += 2 * math.Pi
			}
			if math.Abs(delta) > *ow.WatchArc/2 {
				continue
			}
		}

		ow.Triggered = true
		r.Store.Set(watcherID, ecs.KindOverwatch, ow)
		r.Log.Append(eventlog.Event{
			Type: eventlog.TypeOverwatchTriggered, Turn: turn, EntityID: r.entityTag(watcherID),
			Data: eventlog.DataOverwatchTriggered{MoverID: r.entityTag(moverID)},
		})
		r.dispatchAttack(turn, watcherID, ecs.Command{
			Kind: ecs.CommandAttack, TargetID: moverID, AttackType: ow.AttackType, IsProvoke: true,
		})
	}
}
