package wire

import (
	"strings"
	"unicode/utf8"

	"github.com/arloliu/buildscan-decoder/errs"
	"github.com/arloliu/buildscan-decoder/internal/hash"
)

// StringTable is the per-event-body string intern table described in
// _examples/original_source/build-scan/lib/src/kryo.rs. It must be created
// fresh for each event body; it is never shared across bodies.
//
// Encoding: a zigzag varint selects new-string-vs-backref. A non-negative
// value is a character count: that many unsigned LEB128 Unicode scalar
// values follow, one rune each. A negative value N is a back-reference to
// the (-1-N)th previously decoded string in this same table.
type StringTable struct {
	strings []string
}

// NewStringTable returns an empty intern table.
func NewStringTable() *StringTable {
	return &StringTable{}
}

// Read decodes one interned string from r, either reading fresh rune data
// or resolving a back-reference into strings already read from this table.
func (t *StringTable) Read(r *Reader) (string, error) {
	raw, err := r.ZigzagI32()
	if err != nil {
		return "", err
	}

	if raw < 0 {
		index := int(-1 - raw)
		if index < 0 || index >= len(t.strings) {
			return "", &errs.InvalidStringRef{Index: index}
		}
		return t.strings[index], nil
	}

	count := int(raw)
	runes := make([]rune, 0, count)
	for i := 0; i < count; i++ {
		scalar, err := r.Uvarint()
		if err != nil {
			return "", err
		}
		ch := rune(scalar)
		if scalar > utf8.MaxRune || !utf8.ValidRune(ch) {
			return "", errs.ErrInvalidUTF8
		}
		runes = append(runes, ch)
	}

	s := string(runes)
	t.strings = append(t.strings, s)
	return s, nil
}

// Digest returns an xxHash64 fingerprint of every distinct string interned
// into the table so far, in insertion order. Back-references do not add a
// new entry to t.strings, so a table whose body repeats the same string via
// backrefs hashes identically to one that spells it out once — a cheap
// debug-build check for a producer that stopped using backrefs and started
// bloating bodies with duplicate literal strings instead.
func (t *StringTable) Digest() uint64 {
	d := hash.ID(strings.Join(t.strings, "\x00"))
	return d
}

// ReadList reads a varint count followed by that many interned strings.
func (t *StringTable) ReadList(r *Reader) ([]string, error) {
	n, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, n)
	for i := uint64(0); i < n; i++ {
		s, err := t.Read(r)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}
