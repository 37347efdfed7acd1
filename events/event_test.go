package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDispatchesKnownWireID(t *testing.T) {
	r := NewRegistry()
	ev, err := r.Decode(WireHardware, []byte{0x04})
	require.NoError(t, err)
	assert.Equal(t, HardwareEvent{NumProcessors: 4}, ev)
}

func TestRegistryFallsBackToRawEvent(t *testing.T) {
	r := NewRegistry()
	ev, err := r.Decode(9999, []byte{0xAA, 0xBB})
	require.NoError(t, err)
	raw, ok := ev.(RawEvent)
	require.True(t, ok)
	assert.Equal(t, uint16(9999), raw.WireID())
	assert.Equal(t, []byte{0xAA, 0xBB}, raw.Body)
}

func TestRegistryRawEventCopiesBody(t *testing.T) {
	r := NewRegistry()
	src := []byte{0x01, 0x02}
	ev, err := r.Decode(12345, src)
	require.NoError(t, err)
	src[0] = 0xFF
	assert.Equal(t, byte(0x01), ev.(RawEvent).Body[0])
}
