package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTransformIdentification(t *testing.T) {
	body := []byte{0x00}
	body = append(body, 0x0A)               // zigzag(5) = 10
	body = append(body, 0x03)                // component_identity positive-varint 3
	body = append(body, str("artifact")...)
	body = append(body, str("com.example.Action")...)
	body = append(body, 0x01, 0x01) // from_attributes: 1 element, value 1
	body = append(body, 0x01, 0x02) // to_attributes: 1 element, value 2

	ev, err := decodeTransformIdentification(body)
	require.NoError(t, err)
	id := ev.(TransformIdentificationEvent)
	assert.Equal(t, int64(5), id.ID)
	assert.Equal(t, int32(3), id.ComponentIdentity)
	assert.Equal(t, "artifact", id.InputArtifactName)
	assert.Equal(t, "com.example.Action", id.TransformActionClass)
	assert.Equal(t, []int32{1}, id.FromAttributes)
	assert.Equal(t, []int32{2}, id.ToAttributes)
}

func TestDecodeTransformExecutionStarted(t *testing.T) {
	ev, err := decodeTransformExecutionStarted([]byte{0x0A})
	require.NoError(t, err)
	assert.Equal(t, int64(5), ev.(TransformExecutionStartedEvent).ID)
}

func TestDecodeTransformExecutionFinishedMinimal(t *testing.T) {
	flags := uint16(0x1FF) // all 9 bits absent
	body := []byte{byte(flags >> 8), byte(flags)}

	ev, err := decodeTransformExecutionFinished(body)
	require.NoError(t, err)
	fin := ev.(TransformExecutionFinishedEvent)
	assert.Zero(t, fin.ID)
	assert.Nil(t, fin.FailureID)
	assert.Nil(t, fin.Outcome)
	assert.Empty(t, fin.ExecutionReasons)
}

func TestDecodeTransformExecutionFinishedWithID(t *testing.T) {
	flags := uint16(0x1FF) &^ (1 << 0) // bit0 (id) present
	body := []byte{byte(flags >> 8), byte(flags)}
	body = append(body, 0x0A) // zigzag(5)

	ev, err := decodeTransformExecutionFinished(body)
	require.NoError(t, err)
	fin := ev.(TransformExecutionFinishedEvent)
	assert.Equal(t, int64(5), fin.ID)
}
