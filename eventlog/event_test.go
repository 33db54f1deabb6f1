package eventlog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttu/skirmish-sim/eventlog"
)

func TestAppendAssignsSeqAndID(t *testing.T) {
	log := eventlog.NewLog()
	e1 := log.Append(eventlog.Event{Type: eventlog.TypeTurnEnded, Turn: 1})
	e2 := log.Append(eventlog.Event{Type: eventlog.TypeTurnEnded, Turn: 2})

	require.NotEmpty(t, e1.ID)
	require.NotEmpty(t, e2.ID)
	assert.NotEqual(t, e1.ID, e2.ID)
	assert.Equal(t, uint64(1), e1.Seq)
	assert.Equal(t, uint64(2), e2.Seq)
}

func TestForTurnFilters(t *testing.T) {
	log := eventlog.NewLog()
	log.Append(eventlog.Event{Type: eventlog.TypeUnitMoved, Turn: 1})
	log.Append(eventlog.Event{Type: eventlog.TypeUnitMoved, Turn: 2})
	log.Append(eventlog.Event{Type: eventlog.TypeUnitMoved, Turn: 1})

	turn1 := log.ForTurn(1)
	require.Len(t, turn1, 2)
	for _, e := range turn1 {
		assert.Equal(t, 1, e.Turn)
	}
}

func TestAppendIsImmutable(t *testing.T) {
	log := eventlog.NewLog()
	log.Append(eventlog.Event{Type: eventlog.TypeTurnEnded, Turn: 1})

	all := log.All()
	all[0].Turn = 99 // mutate the copy

	assert.Equal(t, 1, log.All()[0].Turn, "internal log must not be affected by mutating a returned copy")
}

func TestSnapshotRoundTrip(t *testing.T) {
	log := eventlog.NewLog()
	log.Append(eventlog.Event{Type: eventlog.TypeTurnEnded, Turn: 1})
	log.Append(eventlog.Event{Type: eventlog.TypeUnitMoved, Turn: 2})

	snap := log.Snapshot()

	restored := eventlog.NewLog()
	restored.LoadSnapshot(snap)
	assert.Equal(t, log.All(), restored.All())

	// Further appends continue the sequence rather than restarting it.
	e := restored.Append(eventlog.Event{Type: eventlog.TypeTurnEnded, Turn: 3})
	assert.Equal(t, uint64(3), e.Seq)
}
