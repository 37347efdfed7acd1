// Package header parses the outer envelope that precedes the gzip-compressed
// event stream: a magic number, a version field, and three length-prefixed
// UTF-8 strings identifying the reporting tool.
//
// Grounded on
// _examples/original_source/build-scan/lib/src/outer_header.rs.
package header

import (
	"unicode/utf8"

	"github.com/arloliu/buildscan-decoder/endian"
	"github.com/arloliu/buildscan-decoder/errs"
)

const magic = 0x28C5

var bigEndian = endian.GetBigEndianEngine()

// Header is the parsed outer envelope. Version is tolerated but never
// validated against a known set (see SPEC_FULL.md Open Question 1) — future
// tool versions may bump it without invalidating the rest of the format.
type Header struct {
	Version       uint16
	ToolType      string
	ToolVersion   string
	PluginVersion string

	// GzipOffset is the byte offset at which the gzip-compressed event
	// stream begins.
	GzipOffset int
}

// Parse reads the outer header from the start of data.
func Parse(data []byte) (Header, error) {
	if len(data) < 6 {
		return Header{}, errs.ErrHeaderTooShort
	}

	if bigEndian.Uint16(data[0:2]) != magic {
		return Header{}, errs.ErrBadMagic
	}

	version := bigEndian.Uint16(data[2:4])
	blobLen := int(bigEndian.Uint16(data[4:6]))
	blobEnd := 6 + blobLen
	if len(data) < blobEnd {
		return Header{}, errs.ErrTruncatedHeader
	}

	pos := 6
	toolType, err := readUTF(data, &pos, blobEnd)
	if err != nil {
		return Header{}, err
	}
	toolVersion, err := readUTF(data, &pos, blobEnd)
	if err != nil {
		return Header{}, err
	}
	pluginVersion, err := readUTF(data, &pos, blobEnd)
	if err != nil {
		return Header{}, err
	}

	return Header{
		Version:       version,
		ToolType:      toolType,
		ToolVersion:   toolVersion,
		PluginVersion: pluginVersion,
		GzipOffset:    blobEnd,
	}, nil
}

// readUTF reads a 2-byte big-endian length prefix followed by that many
// bytes of UTF-8, never reading past limit.
func readUTF(data []byte, pos *int, limit int) (string, error) {
	if *pos+2 > limit {
		return "", errs.ErrTruncatedHeader
	}
	length := int(bigEndian.Uint16(data[*pos : *pos+2]))
	*pos += 2

	if *pos+length > limit {
		return "", errs.ErrTruncatedHeader
	}
	raw := data[*pos : *pos+length]
	*pos += length

	if !utf8.Valid(raw) {
		return "", errs.ErrInvalidUTF8
	}
	return string(raw), nil
}
