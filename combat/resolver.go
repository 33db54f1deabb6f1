// Package combat implements the pure dice-and-arithmetic core of an
// attack: skill clamping, attack/defense rolls, hit location, damage,
// armor classification and defense-type selection. Every function here
// is a pure function of its inputs plus whatever it draws from the
// supplied rng.Source; none of it touches the entity store or emits
// events. The turn package sequences these calls and turns their
// results into log entries.
package combat

import (
	"sort"

	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/rng"
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

func sum(modifiers []int) int {
	total := 0
	for _, m := range modifiers {
		total += m
	}
	return total
}

// AttackResult is the outcome of a single attack roll.
type AttackResult struct {
	BaseSkill      int
	EffectiveSkill int
	Roll           int
	Hit            bool
}

// AttackRoll clamps baseSkill plus modifiers into [5,95] and rolls D100
// against it; a roll at or below the effective skill hits.
func AttackRoll(src rng.Source, baseSkill int, modifiers ...int) AttackResult {
	effective := clamp(5, 95, baseSkill+sum(modifiers))
	roll := src.RollD100()
	return AttackResult{
		BaseSkill:      baseSkill,
		EffectiveSkill: effective,
		Roll:           roll,
		Hit:            roll <= effective,
	}
}

// DefenseResult is the outcome of a single defense roll.
type DefenseResult struct {
	DefenseType    ecs.DefenseType
	BaseSkill      int
	EffectiveSkill int
	Roll           int
	Success        bool
}

// DefenseRoll has the same shape as AttackRoll, tagged with which
// maneuver the defender attempted.
func DefenseRoll(src rng.Source, defenseType ecs.DefenseType, baseSkill int, modifiers ...int) DefenseResult {
	effective := clamp(5, 95, baseSkill+sum(modifiers))
	roll := src.RollD100()
	return DefenseResult{
		DefenseType:    defenseType,
		BaseSkill:      baseSkill,
		EffectiveSkill: effective,
		Roll:           roll,
		Success:        roll <= effective,
	}
}

// RollHitLocation draws a D100 and maps it to a hit location: 1-15
// head, 16-35 torso, 36-55 arms, 56-80 legs, 81-100 weapon.
func RollHitLocation(src rng.Source) (ecs.HitLocation, int) {
	roll := src.RollD100()
	switch {
	case roll <= 15:
		return ecs.LocationHead, roll
	case roll <= 35:
		return ecs.LocationTorso, roll
	case roll <= 55:
		return ecs.LocationArms, roll
	case roll <= 80:
		return ecs.LocationLegs, roll
	default:
		return ecs.LocationWeapon, roll
	}
}

// LocationMultiplier is the raw-damage multiplier for a struck
// location: head hits triple, weapon hits deal no body damage.
func LocationMultiplier(loc ecs.HitLocation) int {
	switch loc {
	case ecs.LocationHead:
		return 3
	case ecs.LocationWeapon:
		return 0
	default:
		return 1
	}
}

// DamageResult is the breakdown of a single damage computation. Raw is
// always the unmultiplied weapon-dice roll (bonus + Σdice), the same
// value the weapon-break chance and the head-shot toughness check are
// defined against; Absorbed is the portion of that raw roll armor
// blocked, and Final is the location-multiplied remainder.
type DamageResult struct {
	Raw      int
	Armor    int
	Absorbed int
	Final    int
}

// RollDamage rolls the weapon's dice, subtracts armor at the struck
// location (never below zero), then applies the location's multiplier
// to what's left: final = max(0, raw-armor) * multiplier.
func RollDamage(src rng.Source, dice ecs.DamageDice, loc ecs.HitLocation, armorAtLocation int) DamageResult {
	raw := src.Roll(dice.Dice, dice.Sides, dice.Bonus)
	absorbed := armorAtLocation
	if absorbed > raw {
		absorbed = raw
	}
	final := (raw - absorbed) * LocationMultiplier(loc)
	return DamageResult{Raw: raw, Armor: armorAtLocation, Absorbed: absorbed, Final: final}
}

// WeaponBreakChance is the percent chance a weapon or shield breaks
// when the hit location rolls "weapon", scaled by the raw damage that
// would otherwise have applied.
func WeaponBreakChance(rawDamage int) int {
	chance := rawDamage * 5
	if chance > 30 {
		return 30
	}
	return chance
}

// ArmorClass is one of the four armor weight tiers.
type ArmorClass string

const (
	ArmorUnarmored ArmorClass = "unarmored"
	ArmorLight     ArmorClass = "light"
	ArmorMedium    ArmorClass = "medium"
	ArmorHeavy     ArmorClass = "heavy"
)

// ClassifyArmor buckets a unit's total body armor rating into a class.
func ClassifyArmor(totalArmor int) ArmorClass {
	switch {
	case totalArmor <= 4:
		return ArmorUnarmored
	case totalArmor <= 8:
		return ArmorLight
	case totalArmor <= 14:
		return ArmorMedium
	default:
		return ArmorHeavy
	}
}

// DodgePenalty returns the skill penalty dodge suffers for the given
// armor class, and whether dodging is forbidden outright (heavy armor
// may never dodge).
func DodgePenalty(class ArmorClass) (penalty int, forbidden bool) {
	switch class {
	case ArmorUnarmored:
		return 0, false
	case ArmorLight:
		return -15, false
	case ArmorMedium:
		return -30, false
	default:
		return 0, true
	}
}

// SelectRangedDefenseType picks block if the defender has a shield and
// its effective block skill is at least as high as effective dodge;
// otherwise dodge if allowed; otherwise block.
func SelectRangedDefenseType(hasShield bool, blockEffective, dodgeEffective int, dodgeAllowed bool) ecs.DefenseType {
	if hasShield && blockEffective >= dodgeEffective {
		return ecs.DefenseBlock
	}
	if dodgeAllowed {
		return ecs.DefenseDodge
	}
	return ecs.DefenseBlock
}

type meleeOption struct {
	typ      ecs.DefenseType
	skill    int
	priority int // lower wins ties: block, parry, dodge
}

// SelectMeleeDefenseType ranks the available maneuvers (block only if
// shielded, parry always, dodge only if allowed) by effective skill,
// breaking ties block > parry > dodge. When dodge is forbidden by
// armor class, the choice collapses to block if shielded, else parry.
func SelectMeleeDefenseType(hasShield, dodgeAllowed bool, blockEffective, parryEffective, dodgeEffective int) ecs.DefenseType {
	if !dodgeAllowed {
		if hasShield {
			return ecs.DefenseBlock
		}
		return ecs.DefenseParry
	}

	options := []meleeOption{
		{ecs.DefenseParry, parryEffective, 2},
		{ecs.DefenseDodge, dodgeEffective, 3},
	}
	if hasShield {
		options = append(options, meleeOption{ecs.DefenseBlock, blockEffective, 1})
	}
	sort.SliceStable(options, func(i, j int) bool {
		if options[i].skill != options[j].skill {
			return options[i].skill > options[j].skill
		}
		return options[i].priority < options[j].priority
	})
	return options[0].typ
}
