// Command skirmish runs a short deterministic battle from a scenario
// file (or a small built-in two-versus-two battle if none is given) and prints the
// resulting event log, turn by turn.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/engine"
	"github.com/ttu/skirmish-sim/scenario"
	"github.com/ttu/skirmish-sim/victory"
)

func main() {
	seed := flag.Uint("seed", 1, "PRNG seed")
	scenarioPath := flag.String("scenario", "", "path to a scenario YAML file; a built-in two-versus-two battle runs if empty")
	turns := flag.Int("turns", 10, "number of turns to resolve")
	flag.Parse()

	sc, err := loadScenario(*scenarioPath)
	if err != nil {
		log.Fatalf("skirmish: %v", err)
	}

	e := engine.New(uint32(*seed))
	result, err := e.LoadScenario(sc)
	if err != nil {
		log.Fatalf("skirmish: loading scenario: %v", err)
	}
	fmt.Printf("=== %s (%.0fx%.0f, seed %d) ===\n", result.ScenarioID, result.MapWidth, result.MapHeight, *seed)

	driveWithAI(e, result.PlayerUnitIDs, ecs.PersonalityCautious)
	driveWithAI(e, result.EnemyUnitIDs, ecs.PersonalityAggressive)

	e.SetVictoryConditions([]victory.Condition{
		{Kind: victory.ConditionElimination, Faction: ecs.FactionPlayer},
		{Kind: victory.ConditionElimination, Faction: ecs.FactionEnemy},
	})

	for i := 1; i <= *turns; i++ {
		e.RunAITurn(ecs.FactionPlayer)
		e.RunAITurn(ecs.FactionEnemy)
		e.ResolveTurn()
		printTurn(e, i)

		if outcome := e.EvaluateVictory(); outcome.Decided {
			if outcome.Draw {
				fmt.Println("=== Draw ===")
			} else {
				fmt.Printf("=== %s wins on turn %d ===\n", outcome.Winner, i)
			}
			return
		}
	}
	fmt.Println("=== Turn limit reached, no decision ===")
}

// driveWithAI installs an AIControllerComponent on every unit so the
// demo doesn't need an interactive command source.
func driveWithAI(e *engine.Engine, unitIDs []ecs.EntityID, personality ecs.AIPersonality) {
	for _, id := range unitIDs {
		e.AddComponent(id, ecs.KindAIController, ecs.AIControllerComponent{Personality: personality})
	}
}

func printTurn(e *engine.Engine, turn int) {
	fmt.Printf("--- turn %d ---\n", turn)
	for _, ev := range e.GetEventHistory() {
		if ev.Turn != turn {
			continue
		}
		fmt.Printf("  [%d] %-22s entity=%s target=%s data=%+v\n", ev.Seq, ev.Type, ev.EntityID, ev.TargetID, ev.Data)
	}
}

func loadScenario(path string) (scenario.Scenario, error) {
	if path != "" {
		return scenario.LoadYAMLFile(path)
	}
	return scenario.Scenario{
		ID: "builtin-duel", MapWidth: 40, MapHeight: 40,
		PlayerUnits: []scenario.UnitSpec{{Type: "knight", X: -5, Z: 0}, {Type: "archer", X: -6, Z: 2}},
		EnemyUnits:  []scenario.UnitSpec{{Type: "goblin", X: 5, Z: 0}, {Type: "goblin", X: 6, Z: -2}},
	}, nil
}
