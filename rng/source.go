// Package rng provides the kernel's single deterministic random source.
// Every dice decision in the simulation draws from one Mulberry32 stream,
// making a full battle a pure function of (seed, scenario, command sequence).
package rng

// Source is the interface every dice decision in the kernel draws from.
// Implementations must be deterministic given the same seed and call
// sequence — this is what makes replay and snapshot/restore possible.
type Source interface {
	// NextFloat01 returns the next value in [0, 1).
	NextFloat01() float64

	// RollD100 returns a value in [1, 100].
	RollD100() int

	// Roll returns bonus + the sum of n dice of the given number of sides,
	// each die contributing a value in [1, sides].
	Roll(n, sides, bonus int) int

	// State returns the source's serializable state.
	State() State
}

// State is the serializable state of a Source: the original seed plus the
// number of times the generator has advanced. Restoring a State means
// re-seeding and replaying exactly CallCount steps, so subsequent draws are
// byte-identical to the original run.
type State struct {
	InitialSeed uint32
	CallCount   uint64
}

// Mulberry32 is a 32-bit deterministic PRNG. The algorithm is fixed (not
// configurable) because spec-level determinism requires every consumer of
// this package to compute bit-identical streams from the same seed.
type Mulberry32 struct {
	seed      uint32
	state     uint32
	callCount uint64
}

// New creates a Mulberry32 source seeded with the given 32-bit seed.
func New(seed uint32) *Mulberry32 {
	return &Mulberry32{seed: seed, state: seed}
}

// Restore reconstructs a Mulberry32 source from a previously captured State,
// replaying exactly CallCount steps so the stream continues where it left
// off without having observed the intervening draws.
func Restore(s State) *Mulberry32 {
	m := New(s.InitialSeed)
	for i := uint64(0); i < s.CallCount; i++ {
		m.step()
	}
	return m
}

// step advances the generator by one 32-bit output, in the canonical
// Mulberry32 sequence.
func (m *Mulberry32) step() uint32 {
	m.state += 0x6D2B79F5
	z := m.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14
	m.callCount++
	return z
}

// NextFloat01 returns the next value in [0, 1).
func (m *Mulberry32) NextFloat01() float64 {
	return float64(m.step()) / 4294967296.0
}

// RollD100 returns a value in [1, 100].
func (m *Mulberry32) RollD100() int {
	return 1 + int(m.NextFloat01()*100)
}

// Roll returns bonus + the sum of n dice of the given sides.
func (m *Mulberry32) Roll(n, sides, bonus int) int {
	total := bonus
	for i := 0; i < n; i++ {
		total += 1 + int(m.NextFloat01()*float64(sides))
	}
	return total
}

// State returns the source's serializable state.
func (m *Mulberry32) State() State {
	return State{InitialSeed: m.seed, CallCount: m.callCount}
}
