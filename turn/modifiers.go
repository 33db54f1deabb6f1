package turn

import (
	"math"

	"github.com/ttu/skirmish-sim/combat"
	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/morale"
	"github.com/ttu/skirmish-sim/spatial"
	"github.com/ttu/skirmish-sim/stamina"
	"github.com/ttu/skirmish-sim/wounds"
)

func clamp(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sumMods(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

func modSlice(m map[string]int) []int {
	out := make([]int, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

// woundSkillPenalty is the flat skill penalty a unit's own wound state
// imposes on every check it attempts. Spec §4.M names the existence of
// this penalty but not its table; chosen to mirror morale's ActionPenalty
// shape.
func woundSkillPenalty(state ecs.WoundState) int {
	switch state {
	case ecs.WoundBloodied:
		return -5
	case ecs.WoundWounded:
		return -15
	case ecs.WoundCritical:
		return -30
	default:
		return 0
	}
}

// facingArcBonus is the attacker's bonus for striking the defender's
// side (+10) or rear (+20), measured against the defender's facing.
// Front is the forward 90-degree arc (+/-45), side the next 90 degrees
// either way, rear anything further around.
func facingArcBonus(attackerPos, defenderPos ecs.PositionComponent) int {
	angleToAttacker := math.Atan2(attackerPos.Y-defenderPos.Y, attackerPos.X-defenderPos.X)
	delta := angleToAttacker - defenderPos.Facing
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta < -math.Pi {
		delta += 2 * math.Pi
	}
	abs := math.Abs(delta)
	switch {
	case abs <= math.Pi/4:
		return 0
	case abs <= 3*math.Pi/4:
		return 10
	default:
		return 20
	}
}

// heightBonus gives the higher combatant +10.
func heightBonus(selfElevation, otherElevation float64) int {
	if selfElevation > otherElevation {
		return 10
	}
	return 0
}

// flankingBonus is +10 per other ally of the attacker already engaged
// with the target, capped at +30.
func (r *Resolver) flankingBonus(attackerID, targetID ecs.EntityID) int {
	attackerFaction := ecs.MustGet[ecs.FactionComponent](r.Store, attackerID, ecs.KindFaction)
	targetEngagement, ok := ecs.Get[ecs.EngagementComponent](r.Store, targetID, ecs.KindEngagement)
	if !ok {
		return 0
	}
	count := 0
	for _, id := range targetEngagement.EngagedWith {
		if id == attackerID {
			continue
		}
		faction, ok := ecs.Get[ecs.FactionComponent](r.Store, id, ecs.KindFaction)
		if ok && faction.Faction == attackerFaction.Faction {
			count++
		}
	}
	bonus := count * 10
	if bonus > 30 {
		bonus = 30
	}
	return bonus
}

// shieldWallBonus is +10 to a blocking defender when a shielded ally
// stands within spatial.ShieldWallRange.
func (r *Resolver) shieldWallBonus(defenderID ecs.EntityID) int {
	defenderPos := ecs.MustGet[ecs.PositionComponent](r.Store, defenderID, ecs.KindPosition)
	defenderFaction := ecs.MustGet[ecs.FactionComponent](r.Store, defenderID, ecs.KindFaction)
	selfPoint := spatial.Point{X: defenderPos.X, Y: defenderPos.Y}

	for _, id := range r.Store.Query(ecs.KindOffHand, ecs.KindPosition, ecs.KindFaction, ecs.KindHealth) {
		if id == defenderID {
			continue
		}
		health := ecs.MustGet[ecs.HealthComponent](r.Store, id, ecs.KindHealth)
		if health.WoundState == ecs.WoundDown {
			continue
		}
		faction := ecs.MustGet[ecs.FactionComponent](r.Store, id, ecs.KindFaction)
		if faction.Faction != defenderFaction.Faction {
			continue
		}
		offhand := ecs.MustGet[ecs.OffHandComponent](r.Store, id, ecs.KindOffHand)
		if offhand.ItemType != ecs.OffHandShield {
			continue
		}
		pos := ecs.MustGet[ecs.PositionComponent](r.Store, id, ecs.KindPosition)
		if selfPoint.Distance(spatial.Point{X: pos.X, Y: pos.Y}) <= spatial.ShieldWallRange {
			return 10
		}
	}
	return 0
}

// attackerModifiers builds the named modifier set for an attack roll.
func (r *Resolver) attackerModifiers(attackerID, targetID ecs.EntityID, isProvoke bool) map[string]int {
	mods := map[string]int{}
	health := ecs.MustGet[ecs.HealthComponent](r.Store, attackerID, ecs.KindHealth)
	if p := woundSkillPenalty(health.WoundState); p != 0 {
		mods["wound"] = p
	}
	if we, ok := ecs.Get[ecs.WoundEffectsComponent](r.Store, attackerID, ecs.KindWoundEffects); ok {
		if tot := wounds.Accumulate(we.Effects); tot.SkillPenalty != 0 {
			mods["wound_effect"] = -tot.SkillPenalty
		}
	}
	moraleComp := ecs.MustGet[ecs.MoraleComponent](r.Store, attackerID, ecs.KindMorale)
	if p := morale.ActionPenalty(moraleComp.Status); p != 0 {
		mods["morale"] = p
	}
	if fb := r.flankingBonus(attackerID, targetID); fb != 0 {
		mods["flanking"] = fb
	}
	attackerPos := ecs.MustGet[ecs.PositionComponent](r.Store, attackerID, ecs.KindPosition)
	targetPos := ecs.MustGet[ecs.PositionComponent](r.Store, targetID, ecs.KindPosition)
	if fab := facingArcBonus(attackerPos, targetPos); fab != 0 {
		mods["facing_arc"] = fab
	}
	if hb := heightBonus(attackerPos.Elevation, targetPos.Elevation); hb != 0 {
		mods["height"] = hb
	}
	if aim, ok := ecs.Get[ecs.AimBonusComponent](r.Store, attackerID, ecs.KindAimBonus); ok {
		for i, entry := range aim.Entries {
			if entry.TargetID == targetID {
				mods["aim"] = entry.Bonus
				aim.Entries = append(aim.Entries[:i:i], aim.Entries[i+1:]...)
				r.Store.Set(attackerID, ecs.KindAimBonus, aim)
				break
			}
		}
	}
	if isProvoke {
		mods["provoke"] = 20
	}
	return mods
}

// defenderModifiers builds the named modifier set for a defense roll of
// the given type. dodgePenalty is only meaningful (and only applied)
// when defenseType is dodge.
func (r *Resolver) defenderModifiers(defenderID, attackerID ecs.EntityID, defenseType ecs.DefenseType, dodgePenalty int) map[string]int {
	mods := map[string]int{}
	health := ecs.MustGet[ecs.HealthComponent](r.Store, defenderID, ecs.KindHealth)
	if p := woundSkillPenalty(health.WoundState); p != 0 {
		mods["wound"] = p
	}
	if we, ok := ecs.Get[ecs.WoundEffectsComponent](r.Store, defenderID, ecs.KindWoundEffects); ok {
		if tot := wounds.Accumulate(we.Effects); tot.SkillPenalty != 0 {
			mods["wound_effect"] = -tot.SkillPenalty
		}
	}
	if stance, ok := ecs.Get[ecs.DefensiveStanceComponent](r.Store, defenderID, ecs.KindDefensiveStance); ok && stance.BonusPercent != 0 {
		mods["stance"] = stance.BonusPercent
	}
	defenderPos := ecs.MustGet[ecs.PositionComponent](r.Store, defenderID, ecs.KindPosition)
	attackerPos := ecs.MustGet[ecs.PositionComponent](r.Store, attackerID, ecs.KindPosition)
	if hb := heightBonus(defenderPos.Elevation, attackerPos.Elevation); hb != 0 {
		mods["height"] = hb
	}
	staminaComp := ecs.MustGet[ecs.StaminaComponent](r.Store, defenderID, ecs.KindStamina)
	if sp := stamina.DefensePenalty(staminaComp); sp != 0 {
		mods["stamina"] = sp
	}
	switch defenseType {
	case ecs.DefenseDodge:
		if dodgePenalty != 0 {
			mods["dodge_armor"] = dodgePenalty
		}
	case ecs.DefenseBlock:
		if offhand, ok := ecs.Get[ecs.OffHandComponent](r.Store, defenderID, ecs.KindOffHand); ok && offhand.BlockBonus != 0 {
			mods["shield"] = offhand.BlockBonus
		}
		if sw := r.shieldWallBonus(defenderID); sw != 0 {
			mods["shield_wall"] = sw
		}
	}
	return mods
}

// defenseChoice is the outcome of picking which maneuver a defender
// uses against a pending attack.
type defenseChoice struct {
	Type         ecs.DefenseType
	BaseSkill    int
	Modifiers    map[string]int
	DodgePenalty int
}

func (r *Resolver) pickDefense(defenderID, attackerID ecs.EntityID, attackType ecs.AttackKind) defenseChoice {
	skills := ecs.MustGet[ecs.SkillsComponent](r.Store, defenderID, ecs.KindSkills)
	armor := ecs.MustGet[ecs.ArmorComponent](r.Store, defenderID, ecs.KindArmor)
	total := armor.Head + armor.Torso + armor.Arms + armor.Legs
	class := combat.ClassifyArmor(total)
	dodgePenalty, dodgeForbidden := combat.DodgePenalty(class)
	offhand, hasOffhand := ecs.Get[ecs.OffHandComponent](r.Store, defenderID, ecs.KindOffHand)
	hasShield := hasOffhand && offhand.ItemType == ecs.OffHandShield

	blockMods := r.defenderModifiers(defenderID, attackerID, ecs.DefenseBlock, dodgePenalty)
	parryMods := r.defenderModifiers(defenderID, attackerID, ecs.DefenseParry, dodgePenalty)
	dodgeMods := r.defenderModifiers(defenderID, attackerID, ecs.DefenseDodge, dodgePenalty)

	blockEff := clamp(5, 95, skills.Block+sumMods(blockMods))
	parryEff := clamp(5, 95, skills.Melee+sumMods(parryMods))
	dodgeEff := clamp(5, 95, skills.Dodge+sumMods(dodgeMods))

	var chosen ecs.DefenseType
	if attackType == ecs.AttackRanged {
		chosen = combat.SelectRangedDefenseType(hasShield, blockEff, dodgeEff, !dodgeForbidden)
	} else {
		chosen = combat.SelectMeleeDefenseType(hasShield, !dodgeForbidden, blockEff, parryEff, dodgeEff)
	}

	switch chosen {
	case ecs.DefenseBlock:
		return defenseChoice{Type: chosen, BaseSkill: skills.Block, Modifiers: blockMods, DodgePenalty: dodgePenalty}
	case ecs.DefenseDodge:
		return defenseChoice{Type: chosen, BaseSkill: skills.Dodge, Modifiers: dodgeMods, DodgePenalty: dodgePenalty}
	default:
		return defenseChoice{Type: ecs.DefenseParry, BaseSkill: skills.Melee, Modifiers: parryMods, DodgePenalty: dodgePenalty}
	}
}
