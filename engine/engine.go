// Package engine is the facade the host drives: it owns the PRNG, the
// entity-component store, the event log and the turn counter, and is
// the sole mutator of kernel state. Every other package in this module
// is a pure or store-scoped library the facade wires together.
package engine

import (
	"github.com/google/uuid"

	"github.com/ttu/skirmish-sim/ai"
	"github.com/ttu/skirmish-sim/ecs"
	"github.com/ttu/skirmish-sim/eventlog"
	"github.com/ttu/skirmish-sim/movement"
	"github.com/ttu/skirmish-sim/rng"
	"github.com/ttu/skirmish-sim/scenario"
	"github.com/ttu/skirmish-sim/spatial"
	"github.com/ttu/skirmish-sim/turn"
	"github.com/ttu/skirmish-sim/victory"
)

// Engine owns every piece of mutable kernel state. The zero value is
// not usable; construct with New.
type Engine struct {
	store  *ecs.Store
	rng    *rng.Mulberry32
	log    *eventlog.Log
	turn   int
	bounds spatial.Bounds

	scenarioID string
	victoryEval *victory.Evaluator
}

// New creates an engine seeded for deterministic play.
func New(seed uint32) *Engine {
	return &Engine{store: ecs.New(), rng: rng.New(seed), log: eventlog.NewLog()}
}

// CreateEntity allocates a fresh entity id.
func (e *Engine) CreateEntity() ecs.EntityID { return e.store.Create() }

// RemoveEntity deletes an entity and all of its components.
func (e *Engine) RemoveEntity(id ecs.EntityID) { e.store.Remove(id) }

// AddComponent sets (or overwrites) one component on an entity.
func (e *Engine) AddComponent(id ecs.EntityID, kind ecs.Kind, component any) {
	e.store.Set(id, kind, component)
}

// GetComponent returns an entity's component of the given kind.
func (e *Engine) GetComponent(id ecs.EntityID, kind ecs.Kind) (any, bool) {
	bag := e.store.Snapshot(id)
	if bag == nil {
		return nil, false
	}
	v, ok := bag[kind]
	return v, ok
}

// HasComponent reports whether an entity carries a component kind.
func (e *Engine) HasComponent(id ecs.EntityID, kind ecs.Kind) bool {
	return e.store.Has(id, kind)
}

// RemoveComponent deletes a single component kind from an entity.
func (e *Engine) RemoveComponent(id ecs.EntityID, kind ecs.Kind) {
	e.store.RemoveComponent(id, kind)
}

// Query returns every entity id carrying all of the given kinds.
func (e *Engine) Query(kinds ...ecs.Kind) []ecs.EntityID { return e.store.Query(kinds...) }

// Store exposes the underlying entity-component store for packages
// that need direct typed access (ai, turn, victory); the facade itself
// never leaks component pointers across a mutation boundary.
func (e *Engine) Store() *ecs.Store { return e.store }

// LoadResult is what LoadScenario hands back to the host.
type LoadResult struct {
	ScenarioID    string
	MapWidth      float64
	MapHeight     float64
	PlayerUnitIDs []ecs.EntityID
	EnemyUnitIDs  []ecs.EntityID
}

// LoadScenario populates the store from sc and refreshes engagement
// once, since obstacles and units were just spawned (spec §5: "after
// every turn of obstacles/units being spawned").
func (e *Engine) LoadScenario(sc scenario.Scenario) (LoadResult, error) {
	if sc.ID == "" {
		sc.ID = uuid.New().String()
	}
	result, err := scenario.Load(e.store, sc)
	if err != nil {
		return LoadResult{}, err
	}
	e.bounds = spatial.Bounds{Width: result.MapWidth, Height: result.MapHeight}
	e.scenarioID = result.ScenarioID
	movement.RefreshEngagement(e.store, e.livePositions())

	return LoadResult{
		ScenarioID: result.ScenarioID, MapWidth: result.MapWidth, MapHeight: result.MapHeight,
		PlayerUnitIDs: result.PlayerUnitIDs, EnemyUnitIDs: result.EnemyUnitIDs,
	}, nil
}

// SetVictoryConditions installs the evaluator RunAITurn/ResolveTurn's
// caller can check with EvaluateVictory.
func (e *Engine) SetVictoryConditions(conditions []victory.Condition) {
	e.victoryEval = victory.NewEvaluator(conditions)
}

// EvaluateVictory runs the installed victory conditions, if any,
// against the current state and emits VictoryAchieved/DefeatSuffered.
func (e *Engine) EvaluateVictory() victory.Outcome {
	if e.victoryEval == nil {
		return victory.Outcome{}
	}
	outcome := e.victoryEval.Evaluate(e.store, e.turn)
	if !outcome.Decided {
		return outcome
	}
	if outcome.Draw {
		e.log.Append(eventlog.Event{Type: eventlog.TypeDefeatSuffered, Turn: e.turn, Data: eventlog.DataVictory{Winner: "draw"}})
		return outcome
	}
	e.log.Append(eventlog.Event{Type: eventlog.TypeVictoryAchieved, Turn: e.turn, Data: eventlog.DataVictory{Winner: string(outcome.Winner)}})
	return outcome
}

// QueueCommand offers cmd to entityId's command queue. Returns false
// (no side effect, no event) if it would push the unit's queued AP
// total over its current AP.
func (e *Engine) QueueCommand(entityID ecs.EntityID, cmd ecs.Command) bool {
	return turn.QueueCommand(e.store, entityID, cmd)
}

// RunAITurn queues the given faction's AI-controlled units' commands
// for this planning phase.
func (e *Engine) RunAITurn(faction ecs.Faction) {
	ai.RunFaction(e.store, faction, e.bounds)
}

// ResolveTurn runs one full resolution phase (planning is assumed
// closed by the caller) and advances the turn counter.
func (e *Engine) ResolveTurn() int {
	e.turn++
	resolver := turn.NewResolver(e.store, e.log, e.rng, e.bounds)
	dispatched := resolver.ResolveTurn(e.turn)
	return dispatched
}

// CurrentTurn returns the last turn number resolved (0 before the
// first resolution phase).
func (e *Engine) CurrentTurn() int { return e.turn }

// GetEventHistory returns every event recorded so far, oldest first.
func (e *Engine) GetEventHistory() []eventlog.Event { return e.log.All() }

func (e *Engine) livePositions() []movement.LivePosition {
	var out []movement.LivePosition
	for _, id := range e.store.Query(ecs.KindPosition, ecs.KindFaction, ecs.KindHealth) {
		pos := ecs.MustGet[ecs.PositionComponent](e.store, id, ecs.KindPosition)
		faction := ecs.MustGet[ecs.FactionComponent](e.store, id, ecs.KindFaction)
		health := ecs.MustGet[ecs.HealthComponent](e.store, id, ecs.KindHealth)
		out = append(out, movement.LivePosition{ID: id, Position: pos, Faction: faction.Faction, Alive: health.WoundState != ecs.WoundDown})
	}
	return out
}
