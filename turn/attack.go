package turn

import (
	"strconv"

	"github.com/ttu/skirmish-sim/ammo"
	"github.com/ttu/skirmish-sim/combat"
	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/eventlog"
	"github.com/ttu/skirmish-sim/morale"
	"github.com/ttu/skirmish-sim/spatial"
	"github.com/ttu/skirmish-sim/stamina"
	"github.com/ttu/skirmish-sim/wounds"
)

func (r *Resolver) entityTag(id ecs.EntityID) string {
	if ident, ok := ecs.Get[ecs.IdentityComponent](r.Store, id, ecs.KindIdentity); ok && ident.ShortID != "" {
		return ident.ShortID
	}
	return strconv.FormatUint(uint64(id), 10)
}

// reactionBudget returns how many reactions defenderID has left this
// turn: 1, plus any extra granted by an active defensive stance, minus
// whatever it has already spent.
func (r *Resolver) reactionBudget(defenderID ecs.EntityID) int {
	max := 1
	if stance, ok := ecs.Get[ecs.DefensiveStanceComponent](r.Store, defenderID, ecs.KindDefensiveStance); ok {
		max += stance.ExtraReactions
	}
	return max - r.reactionsUsed[defenderID]
}

func (r *Resolver) consumeReaction(defenderID ecs.EntityID) {
	r.reactionsUsed[defenderID]++
}

func armorAtLocation(armor ecs.ArmorComponent, loc ecs.HitLocation) int {
	switch loc {
	case ecs.LocationHead:
		return armor.Head
	case ecs.LocationTorso:
		return armor.Torso
	case ecs.LocationArms:
		return armor.Arms
	case ecs.LocationLegs:
		return armor.Legs
	default:
		return 0
	}
}

// dispatchAttack runs the full attack pipeline (spec §4.M): range
// closing for out-of-range melee, modifier building, the attack roll,
// resource costs, the defender's reaction, hit location, and the
// weapon-hit or body-hit damage branch. cmd.IsProvoke/NoDefense skip
// resource costs and/or the defense roll for inline reaction attacks.
func (r *Resolver) dispatchAttack(turn int, attackerID ecs.EntityID, cmd ecs.Command) {
	store := r.Store

	defenderHealth, ok := ecs.Get[ecs.HealthComponent](store, cmd.TargetID, ecs.KindHealth)
	if !ok || defenderHealth.WoundState == ecs.WoundDown {
		return
	}

	weapon := ecs.MustGet[ecs.WeaponComponent](store, attackerID, ecs.KindWeapon)
	attackerPos := ecs.MustGet[ecs.PositionComponent](store, attackerID, ecs.KindPosition)
	defenderPos := ecs.MustGet[ecs.PositionComponent](store, cmd.TargetID, ecs.KindPosition)

	if cmd.AttackType == ecs.AttackMelee && !cmd.IsProvoke {
		effectiveRange := weapon.Range
		if spatial.MeleeAttackRange > effectiveRange {
			effectiveRange = spatial.MeleeAttackRange
		}
		dist := spatial.Point{X: attackerPos.X, Y: attackerPos.Y}.Distance(spatial.Point{X: defenderPos.X, Y: defenderPos.Y})
		if dist > effectiveRange {
			advanceCost := 2
			ap := ecs.MustGet[ecs.ActionPointsComponent](store, attackerID, ecs.KindActionPoints)
			if ap.Current >= advanceCost+cmd.APCost {
				r.advanceToward(turn, attackerID, spatial.Point{X: defenderPos.X, Y: defenderPos.Y}, advanceCost)
				attackerPos = ecs.MustGet[ecs.PositionComponent](store, attackerID, ecs.KindPosition)
				dist = spatial.Point{X: attackerPos.X, Y: attackerPos.Y}.Distance(spatial.Point{X: defenderPos.X, Y: defenderPos.Y})
			}
			if dist > effectiveRange {
				r.Log.Append(eventlog.Event{
					Type: eventlog.TypeAttackOutOfRange, Turn: turn,
					EntityID: r.entityTag(attackerID), TargetID: r.entityTag(cmd.TargetID),
					Data: eventlog.DataAttackOutOfRange{Distance: dist, RequiredRange: effectiveRange},
				})
				return
			}
		}
	}

	// Ammo must be available before the attack is declared; there is no
	// event for an exhausted ranged attack, it is simply a no-op.
	if cmd.AttackType == ecs.AttackRanged && !cmd.IsProvoke {
		if ammoComp, hasAmmo := ecs.Get[ecs.AmmoComponent](store, attackerID, ecs.KindAmmo); hasAmmo {
			ammoComp, _ = ammo.AutoSwitchIfEmpty(ammoComp)
			store.Set(attackerID, ecs.KindAmmo, ammoComp)
			if !ammo.HasAmmo(ammoComp) {
				return
			}
		}
	}

	skills := ecs.MustGet[ecs.SkillsComponent](store, attackerID, ecs.KindSkills)
	baseSkill := skills.Melee
	if cmd.AttackType == ecs.AttackRanged {
		baseSkill = skills.Ranged
	}

	mods := r.attackerModifiers(attackerID, cmd.TargetID, cmd.IsProvoke)

	r.Log.Append(eventlog.Event{
		Type: eventlog.TypeAttackDeclared, Turn: turn,
		EntityID: r.entityTag(attackerID), TargetID: r.entityTag(cmd.TargetID),
		Data: eventlog.DataAttackDeclared{AttackType: string(cmd.AttackType), IsProvoke: cmd.IsProvoke},
	})

	atkResult := combat.AttackRoll(r.RNG, baseSkill, modSlice(mods)...)
	r.Log.Append(eventlog.Event{
		Type: eventlog.TypeAttackRolled, Turn: turn,
		EntityID: r.entityTag(attackerID), TargetID: r.entityTag(cmd.TargetID),
		Data: eventlog.DataAttackRolled{
			BaseSkill: atkResult.BaseSkill, EffectiveSkill: atkResult.EffectiveSkill,
			Roll: atkResult.Roll, Hit: atkResult.Hit, Modifiers: mods,
		},
	})

	if !cmd.IsProvoke {
		r.deductAP(attackerID, cmd.APCost)
		if cmd.AttackType == ecs.AttackRanged {
			if ammoComp, hasAmmo := ecs.Get[ecs.AmmoComponent](store, attackerID, ecs.KindAmmo); hasAmmo {
				before := ammoComp.CurrentSlot
				updated, spent := ammo.ConsumeAmmo(ammoComp)
				store.Set(attackerID, ecs.KindAmmo, updated)
				if spent {
					slot := updated.Slots[updated.CurrentSlot]
					r.Log.Append(eventlog.Event{
						Type: eventlog.TypeAmmoSpent, Turn: turn, EntityID: r.entityTag(attackerID),
						Data: eventlog.DataAmmoSpent{SlotIndex: updated.CurrentSlot, AmmoType: slot.AmmoType, Remaining: slot.Quantity, AutoSwitched: before != updated.CurrentSlot},
					})
				}
			}
		}
		r.drainStamina(turn, attackerID, 2, "attack")
	}

	if !atkResult.Hit {
		return
	}

	defended := false
	if !cmd.NoDefense && r.reactionBudget(cmd.TargetID) > 0 {
		choice := r.pickDefense(cmd.TargetID, attackerID, cmd.AttackType)
		defResult := combat.DefenseRoll(r.RNG, choice.Type, choice.BaseSkill, modSlice(choice.Modifiers)...)
		r.consumeReaction(cmd.TargetID)
		r.Log.Append(eventlog.Event{
			Type: eventlog.TypeDefenseRolled, Turn: turn,
			EntityID: r.entityTag(cmd.TargetID), TargetID: r.entityTag(attackerID),
			Data: eventlog.DataDefenseRolled{
				DefenseType: string(defResult.DefenseType), BaseSkill: defResult.BaseSkill,
				EffectiveSkill: defResult.EffectiveSkill, Roll: defResult.Roll, Success: defResult.Success,
				Modifiers: choice.Modifiers,
			},
		})
		defended = defResult.Success
	}
	if defended {
		return
	}

	var loc ecs.HitLocation
	var locRoll int
	chosen := cmd.HasChosenLoc
	if chosen {
		loc = cmd.ChosenLocation
	} else {
		loc, locRoll = combat.RollHitLocation(r.RNG)
	}
	r.Log.Append(eventlog.Event{
		Type: eventlog.TypeHitLocationRolled, Turn: turn,
		EntityID: r.entityTag(attackerID), TargetID: r.entityTag(cmd.TargetID),
		Data: eventlog.DataHitLocationRolled{Roll: locRoll, Location: string(loc), Chosen: chosen},
	})

	defenderArmor := ecs.MustGet[ecs.ArmorComponent](store, cmd.TargetID, ecs.KindArmor)
	armorAtLoc := armorAtLocation(defenderArmor, loc)
	dmg := combat.RollDamage(r.RNG, weapon.Damage, loc, armorAtLoc)

	if loc == ecs.LocationWeapon {
		r.resolveWeaponHit(turn, attackerID, cmd.TargetID, dmg.Raw)
		return
	}

	r.resolveBodyHit(turn, attackerID, cmd.TargetID, loc, armorAtLoc, dmg, attackerPos, defenderPos)
}

// advanceToward moves attackerID toward dest using advance-mode
// stepping for a flat AP cost, as the melee range-closing sub-step of
// an attack (spec §4.M step 2), distinct from an ordinary move command.
func (r *Resolver) advanceToward(turn int, attackerID ecs.EntityID, dest spatial.Point, apCost int) {
	r.deductAP(attackerID, apCost)
	r.stepMove(turn, attackerID, dest, ecs.MoveAdvance, -1)
}

func (r *Resolver) resolveWeaponHit(turn int, attackerID, defenderID ecs.EntityID, rawDamage int) {
	r.Log.Append(eventlog.Event{
		Type: eventlog.TypeWeaponHitDeflected, Turn: turn,
		EntityID: r.entityTag(attackerID), TargetID: r.entityTag(defenderID),
		Data: eventlog.DataWeaponHitDeflected{RawDamage: rawDamage},
	})
	drain := (rawDamage + 1) / 2
	r.drainStamina(turn, defenderID, drain, "weapon_hit")

	breakChance := combat.WeaponBreakChance(rawDamage)
	breakRoll := r.RNG.RollD100()
	if breakRoll > breakChance {
		return
	}

	offhand, hasShield := ecs.Get[ecs.OffHandComponent](r.Store, defenderID, ecs.KindOffHand)
	brokeShield, brokeWeapon := false, false
	if hasShield && offhand.ItemType == ecs.OffHandShield {
		offhand.BlockBonus = 0
		r.Store.Set(defenderID, ecs.KindOffHand, offhand)
		brokeShield = true
	} else {
		weapon := ecs.MustGet[ecs.WeaponComponent](r.Store, defenderID, ecs.KindWeapon)
		if weapon.Damage.Bonus > 0 {
			weapon.Damage.Bonus--
		}
		r.Store.Set(defenderID, ecs.KindWeapon, weapon)
		brokeWeapon = true
	}
	r.Log.Append(eventlog.Event{
		Type: eventlog.TypeWeaponBroken, Turn: turn, EntityID: r.entityTag(defenderID),
		Data: eventlog.DataWeaponBroken{BrokeShield: brokeShield, BrokeWeapon: brokeWeapon},
	})
}

func (r *Resolver) resolveBodyHit(turn int, attackerID, defenderID ecs.EntityID, loc ecs.HitLocation, armorAtLoc int, dmg combat.DamageResult, attackerPos, defenderPos ecs.PositionComponent) {
	elevBonus := 0
	if attackerPos.Elevation > defenderPos.Elevation {
		elevBonus = 1
	}
	final := dmg.Final + elevBonus
	absorbed := dmg.Absorbed

	drain := (absorbed + 1) / 2
	r.drainStamina(turn, defenderID, drain, "armor_impact")
	r.Log.Append(eventlog.Event{
		Type: eventlog.TypeArmorImpact, Turn: turn, EntityID: r.entityTag(defenderID),
		Data: eventlog.DataArmorImpact{Absorbed: absorbed, Location: string(loc), StaminaDrain: drain},
	})

	health := ecs.MustGet[ecs.HealthComponent](r.Store, defenderID, ecs.KindHealth)
	hpBefore := health.Current
	health.Current -= final
	if health.Current < 0 {
		health.Current = 0
	}
	oldState := health.WoundState
	health.WoundState = ecs.Threshold(health.Current, health.Max)
	r.Store.Set(defenderID, ecs.KindHealth, health)
	r.damagedThisTurn[defenderID] = true

	r.Log.Append(eventlog.Event{
		Type: eventlog.TypeDamageDealt, Turn: turn,
		EntityID: r.entityTag(attackerID), TargetID: r.entityTag(defenderID),
		Data: eventlog.DataDamageDealt{
			RawDamage: dmg.Raw, ArmorAbsorb: absorbed, FinalDamage: final, Location: string(loc),
			Multiplier: combat.LocationMultiplier(loc), HPBefore: hpBefore, HPAfter: health.Current,
		},
	})
	if oldState != health.WoundState {
		r.Log.Append(eventlog.Event{
			Type: eventlog.TypeUnitWounded, Turn: turn, EntityID: r.entityTag(defenderID),
			Data: eventlog.DataMoraleTransition{FromStatus: string(oldState), ToStatus: string(health.WoundState)},
		})
	}
	if health.WoundState == ecs.WoundDown && oldState != ecs.WoundDown {
		r.Log.Append(eventlog.Event{Type: eventlog.TypeUnitDown, Turn: turn, EntityID: r.entityTag(defenderID), Data: eventlog.DataUnitDown{Reason: "combat"}})
	}

	if effect, ok := wounds.FromHit(loc, final, armorAtLoc); ok {
		effects, _ := ecs.Get[ecs.WoundEffectsComponent](r.Store, defenderID, ecs.KindWoundEffects)
		effects.Effects = append(effects.Effects, effect)
		r.Store.Set(defenderID, ecs.KindWoundEffects, effects)
		r.Log.Append(eventlog.Event{
			Type: eventlog.TypeWoundEffectApplied, Turn: turn, EntityID: r.entityTag(defenderID),
			Data: eventlog.DataWoundEffectApplied{Location: string(loc), Severity: string(effect.Severity), Excess: final - wounds.Threshold(armorAtLoc)},
		})
	}

	if loc == ecs.LocationHead && wounds.HeadShotForcesToughnessCheck(dmg.Raw) && health.WoundState != ecs.WoundDown {
		defenderSkills := ecs.MustGet[ecs.SkillsComponent](r.Store, defenderID, ecs.KindSkills)
		_, down := wounds.ToughnessCheck(r.RNG, defenderSkills.Toughness)
		if down {
			health.WoundState = ecs.WoundDown
			r.Store.Set(defenderID, ecs.KindHealth, health)
			r.Log.Append(eventlog.Event{Type: eventlog.TypeUnitDown, Turn: turn, EntityID: r.entityTag(defenderID), Data: eventlog.DataUnitDown{Reason: "toughness"}})
		}
	}

	if final >= 20 && health.WoundState != ecs.WoundDown {
		r.checkMorale(turn, defenderID, -10)
	}
}

func (r *Resolver) drainStamina(turn int, id ecs.EntityID, amount int, reason string) {
	s, ok := ecs.Get[ecs.StaminaComponent](r.Store, id, ecs.KindStamina)
	if !ok {
		return
	}
	wasExhausted := s.Exhausted
	s = stamina.Drain(s, amount)
	r.Store.Set(id, ecs.KindStamina, s)
	r.Log.Append(eventlog.Event{Type: eventlog.TypeStaminaDrained, Turn: turn, EntityID: r.entityTag(id), Data: eventlog.DataStaminaDrained{Amount: amount, Reason: reason, Current: s.Current}})
	if s.Exhausted && !wasExhausted {
		r.Log.Append(eventlog.Event{Type: eventlog.TypeExhausted, Turn: turn, EntityID: r.entityTag(id), Data: eventlog.DataExhausted{}})
	}
}

// checkMorale runs a morale test for id with the given situational
// modifier (on top of its own current-status penalty), emitting the
// check and any resulting status transition.
func (r *Resolver) checkMorale(turn int, id ecs.EntityID, situationalMod int) {
	moraleComp := ecs.MustGet[ecs.MoraleComponent](r.Store, id, ecs.KindMorale)
	if moraleComp.Status == ecs.MoraleRouted {
		return
	}
	skills := ecs.MustGet[ecs.SkillsComponent](r.Store, id, ecs.KindSkills)
	res := morale.Check(r.RNG, skills.Morale, situationalMod)
	r.Log.Append(eventlog.Event{
		Type: eventlog.TypeMoraleChecked, Turn: turn, EntityID: r.entityTag(id),
		Data: eventlog.DataMoraleChecked{BaseSkill: skills.Morale, EffectiveSkill: res.EffectiveSkill, Roll: res.Roll, Passed: res.Passed, Margin: res.FailureMargin},
	})
	if res.Passed {
		return
	}
	newStatus := morale.ApplyFailure(moraleComp.Status, res.FailureMargin)
	if newStatus == moraleComp.Status {
		return
	}
	oldStatus := moraleComp.Status
	moraleComp.Status = newStatus
	r.Store.Set(id, ecs.KindMorale, moraleComp)
	r.Log.Append(eventlog.Event{Type: r.moraleTransitionType(newStatus), Turn: turn, EntityID: r.entityTag(id), Data: eventlog.DataMoraleTransition{FromStatus: string(oldStatus), ToStatus: string(newStatus)}})
}

func (r *Resolver) moraleTransitionType(status ecs.MoraleStatus) eventlog.Type {
	switch status {
	case ecs.MoraleShaken:
		return eventlog.TypeUnitShaken
	case ecs.MoraleBroken:
		return eventlog.TypeUnitBroken
	case ecs.MoraleRouted:
		return eventlog.TypeUnitRouted
	default:
		return eventlog.TypeUnitShaken
	}
}
