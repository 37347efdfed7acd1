// Package wire implements the shared binary primitives every body decoder
// is built from: unsigned LEB128 varints, zigzag-signed varints, fixed-width
// little/big-endian integers, byte arrays, lists, and the per-event string
// intern table.
//
// Grounded on _examples/original_source/build-scan/lib/src/kryo.rs and
// varint.rs, translated from a data+pos pair into a cursor type in the
// style of the teacher's encoding.ts_delta.go decoders, which thread a
// byte offset through a sequence of fixed-width reads.
package wire

import (
	"github.com/arloliu/buildscan-decoder/endian"
	"github.com/arloliu/buildscan-decoder/errs"
)

var (
	littleEndian = endian.GetLittleEndianEngine()
	bigEndian    = endian.GetBigEndianEngine()
)

// Reader is a forward-only cursor over a single event body. It never
// backtracks; every read advances pos by the number of bytes consumed.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data for sequential reading starting at offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current byte offset.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// Uvarint reads an unsigned LEB128 varint: 7 payload bits per byte, MSB as
// the continuation flag. Errors with *errs.MalformedLEB128 if the
// continuation chain runs past 10 bytes (64 bits) without terminating, or
// *errs.UnexpectedEOF if the input ends mid-varint.
func (r *Reader) Uvarint() (uint64, error) {
	start := r.pos
	var result uint64
	var shift uint
	for {
		if r.pos >= len(r.data) {
			return 0, &errs.UnexpectedEOF{Offset: r.pos}
		}
		b := r.data[r.pos]
		r.pos++
		result |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, &errs.MalformedLEB128{Offset: start}
		}
	}
}

// ZigzagDecodeI32 maps an unsigned zigzag code back to its signed value.
func ZigzagDecodeI32(n uint32) int32 {
	return int32(n>>1) ^ -int32(n&1)
}

// ZigzagDecodeI64 maps an unsigned zigzag code back to its signed value.
func ZigzagDecodeI64(n uint64) int64 {
	return int64(n>>1) ^ -int64(n&1)
}

// ZigzagI32 reads a zigzag-encoded 32-bit signed varint.
func (r *Reader) ZigzagI32() (int32, error) {
	raw, err := r.Uvarint()
	if err != nil {
		return 0, err
	}
	return ZigzagDecodeI32(uint32(raw)), nil
}

// ZigzagI64 reads a zigzag-encoded 64-bit signed varint.
func (r *Reader) ZigzagI64() (int64, error) {
	raw, err := r.Uvarint()
	if err != nil {
		return 0, err
	}
	return ZigzagDecodeI64(raw), nil
}

// PositiveVarintI64 reads an unsigned varint and reinterprets it as an i64,
// matching Kryo's readLong(optimizePositive=true).
func (r *Reader) PositiveVarintI64() (int64, error) {
	raw, err := r.Uvarint()
	if err != nil {
		return 0, err
	}
	return int64(raw), nil
}

// PositiveVarintI32 reads an unsigned varint and truncates it to an i32,
// matching Kryo's readInt(optimizePositive=true). The u64->i32 truncation
// correctly recovers negative values that were encoded via their unsigned
// 32-bit representation.
func (r *Reader) PositiveVarintI32() (int32, error) {
	raw, err := r.Uvarint()
	if err != nil {
		return 0, err
	}
	return int32(uint32(raw)), nil
}

// FixedI64LE reads a little-endian 8-byte signed integer. Used for task ids
// and every other correlation/node/transform identifier in the format.
func (r *Reader) FixedI64LE() (int64, error) {
	if r.pos+8 > len(r.data) {
		return 0, &errs.UnexpectedEOF{Offset: r.pos}
	}
	v := int64(littleEndian.Uint64(r.data[r.pos : r.pos+8]))
	r.pos += 8
	return v, nil
}

// FlagsByte reads a flags word encoded as an unsigned varint and truncated
// to a byte, sufficient for bodies with up to 8 conditional fields.
func (r *Reader) FlagsByte() (uint8, error) {
	raw, err := r.Uvarint()
	if err != nil {
		return 0, err
	}
	return uint8(raw), nil
}

// FlagsU16BE reads a flags word as a fixed 2-byte big-endian integer, used
// by bodies with 9-13 conditional fields (TaskFinished, Jvm,
// TransformExecutionFinished, BuildModes).
func (r *Reader) FlagsU16BE() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, &errs.UnexpectedEOF{Offset: r.pos}
	}
	v := bigEndian.Uint16(r.data[r.pos : r.pos+2])
	r.pos += 2
	return v, nil
}

// EnumOrdinal reads an enum discriminant encoded as an unsigned varint.
func (r *Reader) EnumOrdinal() (uint64, error) {
	return r.Uvarint()
}

// ByteArray reads a varint length prefix followed by that many raw bytes.
func (r *Reader) ByteArray() ([]byte, error) {
	n, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	length := int(n)
	if r.pos+length > len(r.data) {
		return nil, &errs.UnexpectedEOF{Offset: r.pos}
	}
	out := make([]byte, length)
	copy(out, r.data[r.pos:r.pos+length])
	r.pos += length
	return out, nil
}
