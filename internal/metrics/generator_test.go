package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titooo7/enhancedchannelmanager-sub006/internal/events"
)

func TestRecordGeneration(t *testing.T) {
	before := Snapshot()

	RecordGeneration("test-record", 12, []string{"test-rule"})
	RecordGeneration("test-record", 8, nil)

	after := Snapshot()
	assert.Equal(t, before.Commands+2, after.Commands)
	assert.Equal(t, before.Warnings["test-rule"]+1, after.Warnings["test-rule"])
}

func TestSnapshotIsCopy(t *testing.T) {
	RecordGeneration("test-copy", 4, []string{"copy-rule"})

	snap := Snapshot()
	snap.Warnings["copy-rule"] = 999

	assert.NotEqual(t, uint64(999), Snapshot().Warnings["copy-rule"])
}

func TestSetPresetCount(t *testing.T) {
	SetPresetCount(7)
	assert.Equal(t, 7, Snapshot().Presets)
}

func TestSubscribe(t *testing.T) {
	bus := events.New()
	unsub := Subscribe(bus)
	defer unsub()

	before := Snapshot().Warnings["bus-rule"]
	bus.Publish(events.CommandGeneratedEvent{Source: "test-bus", FlagCount: 6, Warnings: []string{"bus-rule"}})

	require.Eventually(t, func() bool {
		return Snapshot().Warnings["bus-rule"] == before+1
	}, time.Second, 5*time.Millisecond)
}
