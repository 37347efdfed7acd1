// Package frame implements the delta-encoded event framing layer that sits
// between the decompressed byte stream and the per-schema body decoders.
//
// Grounded on
// _examples/original_source/build-scan/lib/src/framing.rs. Exposed as a
// lazy, forward-only iter.Seq2, following the pull-based iterator pattern
// in the teacher's encoding/ts_delta.go (TimestampDeltaDecoder.All).
package frame

import (
	"iter"

	"github.com/arloliu/buildscan-decoder/errs"
	"github.com/arloliu/buildscan-decoder/wire"
)

// Framed is one length-delimited event: a wire id identifying its schema, a
// reconstructed timestamp, a reconstructed ordinal, and its raw body bytes
// (not yet interpreted — that is the Body Decoder Registry's job).
type Framed struct {
	WireID    uint16
	Timestamp int64
	Ordinal   int32
	Body      []byte
}

// Reader decodes a stream of Framed events. Each frame's wire_id, timestamp
// and ordinal are deltas against running accumulators kept across the whole
// stream; the wire_id and timestamp accumulators are kept at full
// signed-64-bit width, and wire_id is only narrowed to uint16 at the point
// of emission, never before, so repeated narrow-then-widen roundtrips can't
// introduce drift. The ordinal accumulator is kept at its emitted int32
// width.
type Reader struct {
	data      []byte
	pos       int
	wireID    int64
	timestamp int64
	ordinal   int32
}

// NewReader creates a frame reader over the decompressed event stream.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// All returns a lazy, forward-only sequence of decoded frames. Iteration
// stops at the first error (yielded as the second value) or cleanly at the
// end of the stream. A structural error here must abort the whole decode;
// callers should stop ranging and propagate the error rather than skip the
// bad frame.
func (r *Reader) All() iter.Seq2[Framed, error] {
	return func(yield func(Framed, error) bool) {
		for r.pos < len(r.data) {
			f, err := r.readNext()
			if err != nil {
				yield(Framed{}, err)
				return
			}
			if !yield(f, nil) {
				return
			}
		}
	}
}

func (r *Reader) readNext() (Framed, error) {
	rd := wire.NewReader(r.data[r.pos:])

	flagsRaw, err := rd.Uvarint()
	if err != nil {
		return Framed{}, offsetErr(err, r.pos)
	}
	flags := uint8(flagsRaw)

	// bit0=0 → wire id delta present
	if flags&1 == 0 {
		delta, err := rd.ZigzagI32()
		if err != nil {
			return Framed{}, offsetErr(err, r.pos)
		}
		r.wireID += int64(delta)
	}

	// bit1=0 → timestamp delta present
	if flags&2 == 0 {
		delta, err := rd.ZigzagI64()
		if err != nil {
			return Framed{}, offsetErr(err, r.pos)
		}
		r.timestamp += delta
	}

	// bit2=0 → wall-clock delta present; read and discard (spec.md Design
	// Notes: this field has no surfaced equivalent in the report).
	if flags&4 == 0 {
		if _, err := rd.ZigzagI64(); err != nil {
			return Framed{}, offsetErr(err, r.pos)
		}
	}

	// bit3=0 → ordinal delta present; bit3=1 → default +1
	if flags&8 == 0 {
		delta, err := rd.ZigzagI32()
		if err != nil {
			return Framed{}, offsetErr(err, r.pos)
		}
		r.ordinal += delta
	} else {
		r.ordinal++
	}

	bodyLen, err := rd.Uvarint()
	if err != nil {
		return Framed{}, offsetErr(err, r.pos)
	}

	consumed := rd.Pos()
	bodyStart := r.pos + consumed
	bodyEnd := bodyStart + int(bodyLen)
	if bodyEnd > len(r.data) {
		return Framed{}, &errs.UnexpectedEOF{Offset: bodyStart}
	}

	body := r.data[bodyStart:bodyEnd]
	r.pos = bodyEnd

	return Framed{
		WireID:    uint16(r.wireID),
		Timestamp: r.timestamp,
		Ordinal:   r.ordinal,
		Body:      body,
	}, nil
}

// offsetErr rewrites an error produced by a sub-reader (whose positions are
// relative to the current frame) into one reporting an absolute offset into
// the whole stream, where applicable.
func offsetErr(err error, frameStart int) error {
	switch e := err.(type) {
	case *errs.UnexpectedEOF:
		return &errs.UnexpectedEOF{Offset: frameStart + e.Offset}
	case *errs.MalformedLEB128:
		return &errs.MalformedLEB128{Offset: frameStart + e.Offset}
	default:
		return err
	}
}
