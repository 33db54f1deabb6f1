// Package ai drives non-player factions: it builds a battlefield
// analysis each turn and dispatches each controlled unit to one of
// five personality planners, which queue 1-2 commands for the turn
// resolver to execute.
package ai

import (
	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/spatial"
	"github.com/ttu/skirmish-sim/units"
)

// ThreatAssessment scores one enemy unit from the analyzing faction's
// point of view.
type ThreatAssessment struct {
	EnemyID     ecs.EntityID
	ThreatLevel float64
	Distance    float64
	IsWounded   bool
	IsEngaged   bool
	CanReach    bool
}

// BattlefieldAnalysis is the per-turn, per-faction snapshot every
// planner reasons over.
type BattlefieldAnalysis struct {
	Faction          ecs.Faction
	OwnUnits         []ecs.EntityID
	EnemyUnits       []ecs.EntityID
	OwnPoints        int
	EnemyPoints      int
	OwnCasualtyRate  float64
	EnemyCasualtyRate float64
	Threats          map[ecs.EntityID]ThreatAssessment
}

func unitTypeBonus(unitType string) float64 {
	switch unitType {
	case "knight":
		return 30
	case "healer":
		return 25
	case "archer":
		return 15
	default:
		return 0
	}
}

func opposite(f ecs.Faction) ecs.Faction {
	if f == ecs.FactionPlayer {
		return ecs.FactionEnemy
	}
	return ecs.FactionPlayer
}

// Analyze builds a BattlefieldAnalysis for faction.
func Analyze(store *ecs.Store, faction ecs.Faction) BattlefieldAnalysis {
	enemyFaction := opposite(faction)
	a := BattlefieldAnalysis{Faction: faction, Threats: map[ecs.EntityID]ThreatAssessment{}}

	var ownCasualties, ownTotal, enemyCasualties, enemyTotal int
	for _, id := range store.Query(ecs.KindFaction, ecs.KindHealth, ecs.KindIdentity) {
		f := ecs.MustGet[ecs.FactionComponent](store, id, ecs.KindFaction)
		health := ecs.MustGet[ecs.HealthComponent](store, id, ecs.KindHealth)
		ident := ecs.MustGet[ecs.IdentityComponent](store, id, ecs.KindIdentity)
		alive := health.WoundState != ecs.WoundDown

		if f.Faction == faction {
			ownTotal++
			if !alive {
				ownCasualties++
			} else {
				a.OwnUnits = append(a.OwnUnits, id)
			}
			a.OwnPoints += units.PointValue(ident.UnitType)
			continue
		}
		if f.Faction != enemyFaction {
			continue
		}
		enemyTotal++
		if !alive {
			enemyCasualties++
			continue
		}
		a.EnemyUnits = append(a.EnemyUnits, id)
		a.EnemyPoints += units.PointValue(ident.UnitType)
	}
	if ownTotal > 0 {
		a.OwnCasualtyRate = float64(ownCasualties) / float64(ownTotal)
	}
	if enemyTotal > 0 {
		a.EnemyCasualtyRate = float64(enemyCasualties) / float64(enemyTotal)
	}

	for _, enemyID := range a.EnemyUnits {
		a.Threats[enemyID] = assessThreat(store, a.OwnUnits, enemyID)
	}
	return a
}

func assessThreat(store *ecs.Store, ownUnits []ecs.EntityID, enemyID ecs.EntityID) ThreatAssessment {
	enemyPos := ecs.MustGet[ecs.PositionComponent](store, enemyID, ecs.KindPosition)
	enemyPoint := spatial.Point{X: enemyPos.X, Y: enemyPos.Y}
	enemyHealth := ecs.MustGet[ecs.HealthComponent](store, enemyID, ecs.KindHealth)
	enemySkills := ecs.MustGet[ecs.SkillsComponent](store, enemyID, ecs.KindSkills)
	enemyWeapon := ecs.MustGet[ecs.WeaponComponent](store, enemyID, ecs.KindWeapon)
	enemyIdent := ecs.MustGet[ecs.IdentityComponent](store, enemyID, ecs.KindIdentity)
	engagement, _ := ecs.Get[ecs.EngagementComponent](store, enemyID, ecs.KindEngagement)

	closest := -1.0
	for _, ownID := range ownUnits {
		ownPos := ecs.MustGet[ecs.PositionComponent](store, ownID, ecs.KindPosition)
		d := enemyPoint.Distance(spatial.Point{X: ownPos.X, Y: ownPos.Y})
		if closest < 0 || d < closest {
			closest = d
		}
	}
	if closest < 0 {
		closest = 1e9
	}

	avgWeaponDamage := float64(enemyWeapon.Damage.Dice)*(float64(enemyWeapon.Damage.Sides)+1)/2 + float64(enemyWeapon.Damage.Bonus)
	wounded := enemyHealth.WoundState != ecs.WoundHealthy

	threat := 50.0
	if wounded {
		threat -= 20
	}
	threat += 2 * avgWeaponDamage
	threat += (float64(enemySkills.Melee) - 50) / 2
	threat += unitTypeBonus(enemyIdent.UnitType)
	if closest < 3 {
		threat += 20
	}

	return ThreatAssessment{
		EnemyID: enemyID, ThreatLevel: threat, Distance: closest,
		IsWounded: wounded, IsEngaged: len(engagement.EngagedWith) > 0,
		CanReach: closest <= 6.0+enemyWeapon.Range,
	}
}
