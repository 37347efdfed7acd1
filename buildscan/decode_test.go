package buildscan

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"testing"

	"github.com/arloliu/buildscan-decoder/assemble"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The helpers below encode frames and event bodies by hand, the inverse of
// frame.Reader.readNext and wire.Reader's primitives, to build a complete
// capture payload byte-for-byte for an end-to-end test.

func putUvarint(buf *bytes.Buffer, v uint64) {
	for v >= 0x80 {
		buf.WriteByte(byte(v) | 0x80)
		v >>= 7
	}
	buf.WriteByte(byte(v))
}

func putZigzag32(buf *bytes.Buffer, v int32) {
	putUvarint(buf, uint64(uint32((v<<1)^(v>>31))))
}

func putZigzag64(buf *bytes.Buffer, v int64) {
	putUvarint(buf, uint64((v<<1)^(v>>63)))
}

// putFixedI64LE writes a little-endian 8-byte integer, matching
// wire.Reader.FixedI64LE — used for task/node/transform correlation ids,
// which are never zigzag-encoded.
func putFixedI64LE(buf *bytes.Buffer, v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	buf.Write(b[:])
}

// putFlagsU16BE writes a fixed 2-byte big-endian flags word, matching
// wire.Reader.FlagsU16BE (used by bodies with 9-13 conditional fields).
func putFlagsU16BE(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

// putString writes one fresh (never-backreferenced) interned string: a
// zigzag-encoded char count, then one Uvarint per ASCII rune (each byte
// equal to the rune's code point, matching the fixtures in
// wire/strings_test.go).
func putString(buf *bytes.Buffer, s string) {
	putZigzag32(buf, int32(len(s)))
	for i := 0; i < len(s); i++ {
		putUvarint(buf, uint64(s[i]))
	}
}

// frameEncoder mirrors frame.Reader's running accumulators in reverse.
type frameEncoder struct {
	out       bytes.Buffer
	wireID    int64
	timestamp int64
	ordinal   int32
}

// writeFrame appends one frame whose wire id/timestamp/ordinal are encoded
// as deltas against the running accumulators, and whose wall-clock delta is
// always marked absent (bit2=1), matching frame.Reader's tolerance for that
// bit.
func (e *frameEncoder) writeFrame(wireID uint16, timestamp int64, ordinal int32, body []byte) {
	const flags = 0x04 // bit2 set: wall-clock delta absent

	var head bytes.Buffer
	head.WriteByte(flags)
	putZigzag32(&head, int32(int64(wireID)-e.wireID))
	putZigzag64(&head, timestamp-e.timestamp)
	putZigzag32(&head, ordinal-e.ordinal)
	putUvarint(&head, uint64(len(body)))

	e.out.Write(head.Bytes())
	e.out.Write(body)

	e.wireID = int64(wireID)
	e.timestamp = timestamp
	e.ordinal = ordinal
}

func gzipCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// outerHeader builds the fixed outer envelope (magic, version, three
// length-prefixed UTF-8 strings), matching header/header_test.go's
// reference fixture layout.
func outerHeader(toolType, toolVersion, pluginVersion string) []byte {
	var blob bytes.Buffer
	for _, s := range []string{toolType, toolVersion, pluginVersion} {
		var lenBuf [2]byte
		binary.BigEndian.PutUint16(lenBuf[:], uint16(len(s)))
		blob.Write(lenBuf[:])
		blob.WriteString(s)
	}

	var out bytes.Buffer
	out.Write([]byte{0x28, 0xc5})
	var versionBuf [2]byte
	binary.BigEndian.PutUint16(versionBuf[:], 2)
	out.Write(versionBuf[:])
	var blobLenBuf [2]byte
	binary.BigEndian.PutUint16(blobLenBuf[:], uint16(blob.Len()))
	out.Write(blobLenBuf[:])
	out.Write(blob.Bytes())
	return out.Bytes()
}

func TestDecodeSingleTaskRoundTrip(t *testing.T) {
	// spec.md §8 scenario 2: task identity/started/finished for id=1,
	// expect exactly one assembled task with duration_ms=1000 and
	// outcome=Success (ordinal 3).
	enc := &frameEncoder{}

	// TaskIdentityEvent: bit0=ID (FixedI64LE), bit1=BuildPath, bit2=TaskPath,
	// all present -> flags 0x00.
	var identityBody bytes.Buffer
	identityBody.WriteByte(0x00)
	putFixedI64LE(&identityBody, 1)
	putString(&identityBody, ":")
	putString(&identityBody, ":app:build")
	enc.writeFrame(117, 1000, 1, identityBody.Bytes())

	// TaskStartedEvent: bit0=ID (ZigzagI64) present, bits1-4
	// (build_path/path/class_name/parent ref) absent -> flags 0x1E.
	var startedBody bytes.Buffer
	startedBody.WriteByte(0x1E)
	putZigzag64(&startedBody, 1)
	enc.writeFrame(1563, 2000, 2, startedBody.Bytes())

	// TaskFinishedEvent: bit0=ID (FixedI64LE) and bit2=Outcome
	// (EnumOrdinal) present, all other 11 bits absent -> flags 0x1FFA.
	var finishedBody bytes.Buffer
	putFlagsU16BE(&finishedBody, 0x1FFA)
	putFixedI64LE(&finishedBody, 1)
	putUvarint(&finishedBody, 3) // outcome ordinal
	enc.writeFrame(2074, 3000, 3, finishedBody.Bytes())

	raw := append(outerHeader("GRADLE", "9.3.1", "4.3.2"), gzipCompress(t, enc.out.Bytes())...)

	report, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, report.Tasks, 1)

	task := report.Tasks[0]
	assert.Equal(t, int64(1), task.ID)
	assert.Equal(t, ":app:build", task.TaskPath)
	require.NotNil(t, task.StartedAt)
	assert.Equal(t, int64(2000), *task.StartedAt)
	require.NotNil(t, task.FinishedAt)
	assert.Equal(t, int64(3000), *task.FinishedAt)
	require.NotNil(t, task.DurationMs)
	assert.Equal(t, int64(1000), *task.DurationMs)
	require.NotNil(t, task.Outcome)
	assert.Equal(t, assemble.OutcomeSuccess, *task.Outcome)
}

func TestDecodeOrphanFinishIsUnattributed(t *testing.T) {
	// spec.md §8 scenario 3: a lone TaskFinished frame for an id never seen
	// via TaskIdentity yields no task and no raw-event entry either (the
	// body decoded fine, it just isn't attributable to anything).
	enc := &frameEncoder{}
	var finishedBody bytes.Buffer
	putFlagsU16BE(&finishedBody, 0x1FFA)
	putFixedI64LE(&finishedBody, 42)
	putUvarint(&finishedBody, 3)
	enc.writeFrame(2074, 3000, 1, finishedBody.Bytes())

	raw := append(outerHeader("GRADLE", "9.3.1", "4.3.2"), gzipCompress(t, enc.out.Bytes())...)

	report, err := Decode(raw)
	require.NoError(t, err)
	assert.Empty(t, report.Tasks)
	assert.Empty(t, report.RawEvents)
}

func TestDecodeUnknownSchemaCountsAsRaw(t *testing.T) {
	// spec.md §8 scenario 4: an unregistered wire id falls back to a raw
	// event and is summarized by wire id and count.
	enc := &frameEncoder{}
	enc.writeFrame(9999, 1000, 1, []byte{0x00})

	raw := append(outerHeader("GRADLE", "9.3.1", "4.3.2"), gzipCompress(t, enc.out.Bytes())...)

	report, err := Decode(raw)
	require.NoError(t, err)
	assert.Empty(t, report.Tasks)
	require.Len(t, report.RawEvents, 1)
	assert.Equal(t, uint16(9999), report.RawEvents[0].WireID)
	assert.Equal(t, 1, report.RawEvents[0].Count)
}

func TestDecodeLEB128OverflowFails(t *testing.T) {
	// spec.md §8 scenario 6: 11 consecutive high-bit-set bytes as a
	// TaskIdentity flags varint overflow the 64-bit accumulator.
	enc := &frameEncoder{}
	overflow := bytes.Repeat([]byte{0x80}, 11)
	enc.writeFrame(117, 1000, 1, overflow)

	raw := append(outerHeader("GRADLE", "9.3.1", "4.3.2"), gzipCompress(t, enc.out.Bytes())...)

	_, err := Decode(raw)
	require.Error(t, err)
}

func TestDecodeBadMagicFails(t *testing.T) {
	raw := append([]byte{0x00, 0x00, 0x00, 0x02, 0x00, 0x00}, gzipCompress(t, nil)...)
	_, err := Decode(raw)
	require.Error(t, err)
}

func TestDecodeInvalidGzipFails(t *testing.T) {
	raw := append(outerHeader("GRADLE", "9.3.1", "4.3.2"), 0x00, 0x01, 0x02)
	_, err := Decode(raw)
	require.Error(t, err)
}
