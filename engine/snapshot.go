package engine

import (
	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/eventlog"
	"github.com/ttu/skirmish-sim/rng"
	"github.com/ttu/skirmish-sim/spatial"
)

// Snapshot is everything needed to reconstruct an Engine exactly: the
// PRNG's (seed, callCount) pair, the next entity id the store will
// hand out, every entity's full component bag, the complete event
// log, the turn counter, and the bounds/scenario id LoadScenario set.
type Snapshot struct {
	RNGState     rng.State
	NextEntityID ecs.EntityID
	Entities     map[ecs.EntityID]map[ecs.Kind]any
	Events       []eventlog.Event
	Turn         int
	ScenarioID   string
	MapWidth     float64
	MapHeight    float64
}

// CreateSnapshot captures the engine's full mutable state.
func (e *Engine) CreateSnapshot() Snapshot {
	entities := make(map[ecs.EntityID]map[ecs.Kind]any)
	for _, id := range e.store.AllEntityIDs() {
		entities[id] = e.store.Snapshot(id)
	}
	return Snapshot{
		RNGState:     e.rng.State(),
		NextEntityID: e.store.NextEntityID(),
		Entities:     entities,
		Events:       e.log.Snapshot(),
		Turn:         e.turn,
		ScenarioID:   e.scenarioID,
		MapWidth:     e.bounds.Width,
		MapHeight:    e.bounds.Height,
	}
}

// LoadSnapshot replaces the engine's full state with a previously
// captured one. The PRNG is reconstructed by re-seeding from
// InitialSeed and replaying exactly CallCount steps, so every draw
// after restore is byte-identical to the original run's.
func (e *Engine) LoadSnapshot(s Snapshot) {
	e.store = ecs.New()
	for id, components := range s.Entities {
		e.store.LoadEntity(id, components)
	}
	e.store.SetNextEntityID(s.NextEntityID)

	e.rng = rng.Restore(s.RNGState)

	e.log = eventlog.NewLog()
	e.log.LoadSnapshot(s.Events)

	e.turn = s.Turn
	e.scenarioID = s.ScenarioID
	e.bounds = spatial.Bounds{Width: s.MapWidth, Height: s.MapHeight}
}
