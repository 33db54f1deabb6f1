package ai

import (
	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/spatial"
	"github.com/ttu/skirmish-sim/turn"
)

// RunFaction analyzes the battlefield from faction's perspective and
// queues each of its AI-controlled, living units' planned commands.
// It is the one entry point the engine facade calls once per faction
// per planning phase.
func RunFaction(store *ecs.Store, faction ecs.Faction, bounds spatial.Bounds) {
	analysis := Analyze(store, faction)
	for _, unitID := range analysis.OwnUnits {
		controller, ok := ecs.Get[ecs.AIControllerComponent](store, unitID, ecs.KindAIController)
		if !ok {
			continue
		}
		for _, cmd := range GenerateCommands(store, unitID, controller.Personality, analysis, bounds) {
			turn.QueueCommand(store, unitID, cmd)
		}
	}
}
