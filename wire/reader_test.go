package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/buildscan-decoder/errs"
)

func TestUvarintSingleByte(t *testing.T) {
	r := NewReader([]byte{0x05})
	v, err := r.Uvarint()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)
	assert.Equal(t, 1, r.Pos())
}

func TestUvarintTwoBytes(t *testing.T) {
	r := NewReader([]byte{0x92, 0x04})
	v, err := r.Uvarint()
	require.NoError(t, err)
	assert.Equal(t, uint64(530), v)
	assert.Equal(t, 2, r.Pos())
}

func TestUvarintEOF(t *testing.T) {
	r := NewReader([]byte{0x80})
	_, err := r.Uvarint()
	require.Error(t, err)
	var eof *errs.UnexpectedEOF
	assert.ErrorAs(t, err, &eof)
}

func TestZigzagDecodeI32(t *testing.T) {
	assert.Equal(t, int32(0), ZigzagDecodeI32(0))
	assert.Equal(t, int32(-1), ZigzagDecodeI32(1))
	assert.Equal(t, int32(1), ZigzagDecodeI32(2))
	assert.Equal(t, int32(-2), ZigzagDecodeI32(3))
	assert.Equal(t, int32(265), ZigzagDecodeI32(530))
	assert.Equal(t, int32(-259), ZigzagDecodeI32(517))
}

func TestZigzagDecodeI64(t *testing.T) {
	assert.Equal(t, int64(0), ZigzagDecodeI64(0))
	assert.Equal(t, int64(-1), ZigzagDecodeI64(1))
	assert.Equal(t, int64(1), ZigzagDecodeI64(2))
}

func TestReaderZigzagI32(t *testing.T) {
	r := NewReader([]byte{0x92, 0x04})
	v, err := r.ZigzagI32()
	require.NoError(t, err)
	assert.Equal(t, int32(265), v)
}

func TestReaderFixedI64LE(t *testing.T) {
	r := NewReader([]byte{0x01, 0, 0, 0, 0, 0, 0, 0})
	v, err := r.FixedI64LE()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	assert.Equal(t, 8, r.Pos())
}

func TestReaderFixedI64LENegative(t *testing.T) {
	id := int64(-6048516917597647557)
	buf := make([]byte, 8)
	u := uint64(id)
	for i := 0; i < 8; i++ {
		buf[i] = byte(u >> (8 * i))
	}
	r := NewReader(buf)
	v, err := r.FixedI64LE()
	require.NoError(t, err)
	assert.Equal(t, id, v)
}

func TestReaderFixedI64LEEOF(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})
	_, err := r.FixedI64LE()
	require.Error(t, err)
}

func TestReaderFlagsU16BE(t *testing.T) {
	r := NewReader([]byte{0x1F, 0xF8, 0x00})
	v, err := r.FlagsU16BE()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1FF8), v)
	assert.Equal(t, 2, r.Pos())
}

func TestReaderFlagsU16BEEOF(t *testing.T) {
	r := NewReader([]byte{0x1F})
	_, err := r.FlagsU16BE()
	require.Error(t, err)
}

func TestReaderByteArray(t *testing.T) {
	r := NewReader([]byte{0x03, 0xAA, 0xBB, 0xCC})
	b, err := r.ByteArray()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, b)
}

func TestReaderPositiveVarintI64Zero(t *testing.T) {
	r := NewReader([]byte{0x00})
	v, err := r.PositiveVarintI64()
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}

func TestFieldPresentInverted(t *testing.T) {
	assert.True(t, FieldPresent(0x00, 0))
	assert.True(t, FieldPresent(0x00, 1))
	assert.False(t, FieldPresent(0x01, 0))
	assert.True(t, FieldPresent(0x01, 1))
}
