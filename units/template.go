// Package units holds static unit templates and the factory that turns
// one into a fully-componentized entity in an ecs.Store.
package units

import (
	"fmt"

	"github.com/ttu/skirmish-sim/ecs"
)

// Template is a static, named blueprint for spawning a unit. It carries
// every component value a spawned entity needs except position and
// faction, which the caller supplies at spawn time.
type Template struct {
	UnitType string
	PointValue int

	MaxHealth int
	Skills    ecs.SkillsComponent

	BaseAP          int
	ExperienceBonus int

	MaxStamina int

	Armor  ecs.ArmorComponent
	Weapon ecs.WeaponComponent

	OffHand   *ecs.OffHandComponent
	AmmoSlots []ecs.AmmoSlot
}

// defaultPerception and defaultToughness back-fill a template's Skills
// when it leaves them at zero, per the factory's "defaulted to 45 and
// 40" rule.
const (
	defaultPerception = 45
	defaultToughness  = 40
)

// Templates is the closed set of unit types the factory knows how to
// spawn. Point values feed the victory evaluator's point_threshold
// condition; unit-type bonuses used by AI threat scoring live in the ai
// package, keyed by these same UnitType strings.
var Templates = map[string]Template{
	"knight": {
		UnitType:   "knight",
		PointValue: 10,
		MaxHealth:  40,
		Skills:     ecs.SkillsComponent{Melee: 65, Ranged: 20, Block: 60, Dodge: 25, Morale: 70},
		BaseAP:     4,
		MaxStamina: 30,
		Armor: ecs.ArmorComponent{
			Head: 4, Torso: 6, Arms: 3, Legs: 3,
			APPenalty: 1, StaminaPenalty: 2,
		},
		Weapon: ecs.WeaponComponent{
			Name: "longsword", Damage: ecs.DamageDice{Dice: 1, Sides: 8, Bonus: 2},
			Speed: 0, Range: 1.2, APCost: 2,
		},
		OffHand: &ecs.OffHandComponent{ItemType: ecs.OffHandShield, BlockBonus: 20},
	},
	"goblin": {
		UnitType:   "goblin",
		PointValue: 3,
		MaxHealth:  18,
		Skills:     ecs.SkillsComponent{Melee: 45, Ranged: 35, Block: 20, Dodge: 45, Morale: 35},
		BaseAP:     4,
		MaxStamina: 24,
		Armor:      ecs.ArmorComponent{Head: 0, Torso: 1, Arms: 0, Legs: 0},
		Weapon: ecs.WeaponComponent{
			Name: "rusty shortsword", Damage: ecs.DamageDice{Dice: 1, Sides: 6, Bonus: 0},
			Speed: 2, Range: 1.2, APCost: 2,
		},
	},
	"archer": {
		UnitType:   "archer",
		PointValue: 6,
		MaxHealth:  24,
		Skills:     ecs.SkillsComponent{Melee: 30, Ranged: 65, Block: 15, Dodge: 40, Morale: 45},
		BaseAP:     4,
		MaxStamina: 26,
		Armor:      ecs.ArmorComponent{Head: 1, Torso: 2, Arms: 1, Legs: 1},
		Weapon: ecs.WeaponComponent{
			Name: "longbow", Damage: ecs.DamageDice{Dice: 1, Sides: 8, Bonus: 0},
			Speed: 1, Range: 12, APCost: 2, TwoHanded: true,
		},
		AmmoSlots: []ecs.AmmoSlot{{AmmoType: "arrow", Quantity: 20, MaxQuantity: 20}},
	},
	"healer": {
		UnitType:   "healer",
		PointValue: 7,
		MaxHealth:  22,
		Skills:     ecs.SkillsComponent{Melee: 20, Ranged: 15, Block: 10, Dodge: 40, Morale: 55, Perception: 55},
		BaseAP:     4,
		MaxStamina: 24,
		Armor:      ecs.ArmorComponent{Head: 0, Torso: 1, Arms: 0, Legs: 0},
		Weapon: ecs.WeaponComponent{
			Name: "quarterstaff", Damage: ecs.DamageDice{Dice: 1, Sides: 4, Bonus: 0},
			Speed: 1, Range: 1.2, APCost: 2,
		},
	},
}

// PointValue returns the victory-evaluator point value for a unit type,
// or 0 if the type is unknown.
func PointValue(unitType string) int {
	return Templates[unitType].PointValue
}

// Spawn creates an entity for tmpl in store at pos, owned by faction,
// with a Toughness/Perception defaulting to standard values when the
// template leaves them unset, and assigns it an auto-numbered display
// name of the form "<UnitType> <n>" where n is the 1-based count of
// previously spawned units of the same type.
func Spawn(store *ecs.Store, tmplName string, faction ecs.Faction, pos ecs.PositionComponent, sameTypeCount int) (ecs.EntityID, error) {
	tmpl, ok := Templates[tmplName]
	if !ok {
		return 0, fmt.Errorf("units: unknown template %q", tmplName)
	}

	id := store.Create()

	skills := tmpl.Skills
	if skills.Perception == 0 {
		skills.Perception = defaultPerception
	}
	if skills.Toughness == 0 {
		skills.Toughness = defaultToughness
	}

	maxAP := tmpl.BaseAP + tmpl.ExperienceBonus - tmpl.Armor.APPenalty
	if maxAP < 1 {
		maxAP = 1
	}

	store.Set(id, ecs.KindIdentity, ecs.IdentityComponent{
		Name:     fmt.Sprintf("%s %d", tmpl.UnitType, sameTypeCount+1),
		UnitType: tmpl.UnitType,
		ShortID:  fmt.Sprintf("%s-%d", tmpl.UnitType[:min(3, len(tmpl.UnitType))], id),
	})
	store.Set(id, ecs.KindPosition, pos)
	store.Set(id, ecs.KindFaction, ecs.FactionComponent{Faction: faction})
	store.Set(id, ecs.KindHealth, ecs.HealthComponent{
		Current: tmpl.MaxHealth, Max: tmpl.MaxHealth, WoundState: ecs.WoundHealthy,
	})
	store.Set(id, ecs.KindSkills, skills)
	store.Set(id, ecs.KindActionPoints, ecs.ActionPointsComponent{
		Current: maxAP, Max: maxAP, BaseValue: tmpl.BaseAP,
		ArmorPenalty: tmpl.Armor.APPenalty, ExperienceBonus: tmpl.ExperienceBonus,
	})
	store.Set(id, ecs.KindStamina, ecs.StaminaComponent{Current: tmpl.MaxStamina, Max: tmpl.MaxStamina})
	store.Set(id, ecs.KindArmor, tmpl.Armor)
	store.Set(id, ecs.KindWeapon, tmpl.Weapon)
	if tmpl.OffHand != nil {
		store.Set(id, ecs.KindOffHand, *tmpl.OffHand)
	}
	if tmpl.AmmoSlots != nil {
		slots := make([]ecs.AmmoSlot, len(tmpl.AmmoSlots))
		copy(slots, tmpl.AmmoSlots)
		store.Set(id, ecs.KindAmmo, ecs.AmmoComponent{Slots: slots})
	}
	store.Set(id, ecs.KindMorale, ecs.MoraleComponent{Status: ecs.MoraleSteady})
	store.Set(id, ecs.KindEngagement, ecs.EngagementComponent{})

	return id, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
