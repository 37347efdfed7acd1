// Package buildscan is the top-level entry point for decoding a Gradle
// build-scan capture payload: outer header, gzip decompression, frame
// reading, per-schema body decoding, and assembly into a Report.
//
// Grounded on _examples/original_source/build-scan/lib/src/lib.rs's parse
// function, which wires the same five stages in the same order.
package buildscan

import (
	"fmt"

	"github.com/arloliu/buildscan-decoder/assemble"
	"github.com/arloliu/buildscan-decoder/decompress"
	"github.com/arloliu/buildscan-decoder/events"
	"github.com/arloliu/buildscan-decoder/frame"
	"github.com/arloliu/buildscan-decoder/header"
)

// Decode parses a complete build-scan capture payload and returns the
// assembled Report. A structural error at any stage aborts the decode and
// is returned wrapped with the stage name; there is no partial result.
func Decode(raw []byte) (assemble.Report, error) {
	h, err := header.Parse(raw)
	if err != nil {
		return assemble.Report{}, fmt.Errorf("buildscan: outer header: %w", err)
	}

	decompressed, err := decompress.Decompress(raw[h.GzipOffset:])
	if err != nil {
		return assemble.Report{}, fmt.Errorf("buildscan: decompress: %w", err)
	}

	registry := events.NewRegistry()

	var pairs []assemble.Pair
	for f, err := range frame.NewReader(decompressed).All() {
		if err != nil {
			return assemble.Report{}, fmt.Errorf("buildscan: frame: %w", err)
		}
		decoded, err := registry.Decode(f.WireID, f.Body)
		if err != nil {
			return assemble.Report{}, fmt.Errorf("buildscan: event wire id %d: %w", f.WireID, err)
		}
		pairs = append(pairs, assemble.Pair{Frame: f, Event: decoded})
	}

	return assemble.Assemble(pairs), nil
}
