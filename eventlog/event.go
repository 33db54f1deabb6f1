// Package eventlog provides the kernel's single append-only event record.
// Every observable state change in the simulation emits exactly one
// correspondingly-typed Event; nothing is ever removed or mutated once
// appended, and the full history fully reconstructs the battle.
package eventlog

import (
	"fmt"

	"github.com/google/uuid"
)

// logNamespace seeds the deterministic UUID derivation below. Event IDs
// must be a pure function of sequence position, not wall-clock or
// process entropy, or two runs of the same seed and command sequence
// would diverge on ID alone (spec §8 property 1).
var logNamespace = uuid.MustParse("6c52b2ac-6d0d-4b0a-9f1a-6a0e0a8f9f62")

// Type is a tag from the kernel's closed event vocabulary.
type Type string

// The closed set of event tags the kernel may emit.
const (
	TypeResolutionPhaseStarted Type = "ResolutionPhaseStarted"
	TypeTurnEnded              Type = "TurnEnded"
	TypeUnitMoved              Type = "UnitMoved"
	TypeUnitTurned             Type = "UnitTurned"
	TypeAttackDeclared         Type = "AttackDeclared"
	TypeAttackRolled           Type = "AttackRolled"
	TypeDefenseRolled          Type = "DefenseRolled"
	TypeHitLocationRolled      Type = "HitLocationRolled"
	TypeDamageDealt            Type = "DamageDealt"
	TypeUnitWounded            Type = "UnitWounded"
	TypeUnitDown               Type = "UnitDown"
	TypeAttackOutOfRange       Type = "AttackOutOfRange"
	TypeWeaponHitDeflected     Type = "WeaponHitDeflected"
	TypeWeaponBroken           Type = "WeaponBroken"
	TypeArmorImpact            Type = "ArmorImpact"
	TypeStaminaDrained         Type = "StaminaDrained"
	TypeExhausted              Type = "Exhausted"
	TypeAmmoSpent              Type = "AmmoSpent"
	TypeMoraleChecked          Type = "MoraleChecked"
	TypeUnitShaken             Type = "UnitShaken"
	TypeUnitBroken             Type = "UnitBroken"
	TypeUnitRouted             Type = "UnitRouted"
	TypeUnitRallied            Type = "UnitRallied"
	TypeOverwatchSet           Type = "OverwatchSet"
	TypeOverwatchTriggered     Type = "OverwatchTriggered"
	TypeWoundEffectApplied     Type = "WoundEffectApplied"
	TypeBleedingDamage         Type = "BleedingDamage"
	TypeVictoryAchieved        Type = "VictoryAchieved"
	TypeDefeatSuffered         Type = "DefeatSuffered"
)

// Event is one immutable record in the log. Data holds the per-Type
// payload (one of the Data* structs in this package); consumers type-
// switch on Type to interpret it.
type Event struct {
	ID        string
	Type      Type
	Turn      int
	Seq       uint64 // logical sequence number; the log's deterministic "timestamp"
	EntityID  string
	TargetID  string
	Data      any
}

// Log is an append-only, totally ordered record of events.
type Log struct {
	events []Event
	seq    uint64
}

// NewLog creates an empty event log.
func NewLog() *Log {
	return &Log{}
}

// Append records a new event, assigning it a fresh ID and sequence number.
// Nothing already in the log is ever altered.
func (l *Log) Append(e Event) Event {
	l.seq++
	e.Seq = l.seq
	e.ID = uuid.NewSHA1(logNamespace, []byte(fmt.Sprintf("%d:%s", e.Seq, e.Type))).String()
	l.events = append(l.events, e)
	return e
}

// All returns every event recorded so far, oldest first.
func (l *Log) All() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// ForTurn returns every event recorded during the given turn, in order.
func (l *Log) ForTurn(turn int) []Event {
	var out []Event
	for _, e := range l.events {
		if e.Turn == turn {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of events recorded.
func (l *Log) Len() int {
	return len(l.events)
}

// Snapshot returns the state needed to reconstruct this log exactly.
func (l *Log) Snapshot() []Event {
	return l.All()
}

// LoadSnapshot replaces the log's contents with a previously captured
// snapshot, restoring the sequence counter so further appends continue
// numbering correctly.
func (l *Log) LoadSnapshot(events []Event) {
	l.events = make([]Event, len(events))
	copy(l.events, events)
	l.seq = 0
	for _, e := range l.events {
		if e.Seq > l.seq {
			l.seq = e.Seq
		}
	}
}
