package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference outer header bytes:
// 28 c5 00 02 00 16 00 06 47 52 41 44 4c 45 00 05 39 2e 33 2e 31 00 05 34 2e 33 2e 32
var referenceHeaderBytes = []byte{
	0x28, 0xc5, 0x00, 0x02, 0x00, 0x16, 0x00, 0x06, 0x47, 0x52, 0x41, 0x44, 0x4c,
	0x45, // "GRADLE"
	0x00, 0x05, 0x39, 0x2e, 0x33, 0x2e, 0x31, // "9.3.1"
	0x00, 0x05, 0x34, 0x2e, 0x33, 0x2e, 0x32, // "4.3.2"
}

func TestParseReferenceHeader(t *testing.T) {
	h, err := Parse(referenceHeaderBytes)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), h.Version)
	assert.Equal(t, "GRADLE", h.ToolType)
	assert.Equal(t, "9.3.1", h.ToolVersion)
	assert.Equal(t, "4.3.2", h.PluginVersion)
	assert.Equal(t, 28, h.GzipOffset)
}

func TestParseBadMagic(t *testing.T) {
	bad := append([]byte(nil), referenceHeaderBytes...)
	bad[0] = 0x00
	_, err := Parse(bad)
	require.Error(t, err)
}

func TestParseTruncatedHeader(t *testing.T) {
	_, err := Parse(referenceHeaderBytes[:4])
	require.Error(t, err)
}

func TestParseTooShort(t *testing.T) {
	_, err := Parse([]byte{0x28, 0xc5})
	require.Error(t, err)
}
