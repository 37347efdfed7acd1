package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBuildStartedEmptyBody(t *testing.T) {
	ev, err := decodeBuildStarted(nil)
	require.NoError(t, err)
	assert.Equal(t, BuildStartedEvent{}, ev)
}

func TestDecodeBuildRequestedTasks(t *testing.T) {
	body := []byte{0x00}
	body = append(body, 0x01)
	body = append(body, str(":app:build")...)
	body = append(body, 0x01)
	body = append(body, str(":app:test")...)

	ev, err := decodeBuildRequestedTasks(body)
	require.NoError(t, err)
	r := ev.(BuildRequestedTasksEvent)
	assert.Equal(t, []string{":app:build"}, r.Requested)
	assert.Equal(t, []string{":app:test"}, r.Excluded)
}

func TestDecodeBuildFinishedNoFailure(t *testing.T) {
	ev, err := decodeBuildFinished([]byte{0x01})
	require.NoError(t, err)
	assert.Nil(t, ev.(BuildFinishedEvent).FailureID)
}

func TestDecodeBuildFinishedWithFailure(t *testing.T) {
	body := []byte{0x00, 0x02} // bit0 present, zigzag(1)=2
	ev, err := decodeBuildFinished(body)
	require.NoError(t, err)
	f := ev.(BuildFinishedEvent)
	require.NotNil(t, f.FailureID)
	assert.Equal(t, int64(1), *f.FailureID)
}

func TestDecodeBuildModes(t *testing.T) {
	// present (clear): bits 1 (rerun), 3 (dry_run), 9 (max_workers)
	flags := uint16(0x3FF)
	for _, b := range []uint{1, 3, 9} {
		flags &^= 1 << b
	}
	body := []byte{byte(flags >> 8), byte(flags)}
	body = append(body, 0x04) // max_workers = 4

	ev, err := decodeBuildModes(body)
	require.NoError(t, err)
	m := ev.(BuildModesEvent)
	assert.True(t, m.Rerun)
	assert.True(t, m.DryRun)
	assert.False(t, m.Offline)
	require.NotNil(t, m.MaxWorkers)
	assert.Equal(t, int32(4), *m.MaxWorkers)
}

func TestDecodeDaemonStateSingleUsePresent(t *testing.T) {
	body := []byte{0x0F} // bits 0-3 absent, bit4 present
	ev, err := decodeDaemonState(body)
	require.NoError(t, err)
	d := ev.(DaemonStateEvent)
	require.NotNil(t, d.SingleUse)
	assert.True(t, *d.SingleUse)
	assert.Nil(t, d.StartTime)
}

func TestDecodeDaemonStateSingleUseAbsent(t *testing.T) {
	ev, err := decodeDaemonState([]byte{0x1F})
	require.NoError(t, err)
	assert.Nil(t, ev.(DaemonStateEvent).SingleUse)
}

func TestDecodeTaskRegistrationSummary(t *testing.T) {
	ev, err := decodeTaskRegistrationSummary([]byte{0x2A})
	require.NoError(t, err)
	assert.Equal(t, int32(42), ev.(TaskRegistrationSummaryEvent).TaskCount)
}

func TestDecodeBasicMemoryStatsWithSnapshot(t *testing.T) {
	body := []byte{0x00}
	body = append(body, 0x02) // free zigzag(1)
	body = append(body, 0x04) // total zigzag(2)
	body = append(body, 0x06) // max zigzag(3)
	body = append(body, 0x08) // gc_time zigzag(4)
	body = append(body, 0x01) // 1 peak snapshot
	// snapshot flags: bit0 name present(0), bit1 heap present(0) => heap true, rest absent
	body = append(body, 0x3C)
	body = append(body, str("G1 Eden Space")...)

	ev, err := decodeBasicMemoryStats(body)
	require.NoError(t, err)
	stats := ev.(BasicMemoryStatsEvent)
	require.NotNil(t, stats.Free)
	assert.Equal(t, int64(1), *stats.Free)
	require.Len(t, stats.PeakSnapshots, 1)
	assert.True(t, stats.PeakSnapshots[0].Heap)
	require.NotNil(t, stats.PeakSnapshots[0].Name)
	assert.Equal(t, "G1 Eden Space", *stats.PeakSnapshots[0].Name)
	assert.Nil(t, stats.PeakSnapshots[0].Init)
}
