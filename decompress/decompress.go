// Package decompress extracts the gzip-compressed event stream from the
// outer payload. Real-world capture pipelines sometimes prepend a few
// stray bytes before the gzip stream starts, so this scans for the gzip
// signature rather than assuming it begins at offset 0.
//
// Grounded on
// _examples/original_source/build-scan/lib/src/decompress.rs. Uses
// github.com/klauspost/compress/gzip, the teacher's existing compression
// dependency (see compress/zstd.go in the teacher tree), in place of
// stdlib compress/gzip.
package decompress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/buildscan-decoder/errs"
	"github.com/arloliu/buildscan-decoder/internal/pool"
)

var gzipSignature = [3]byte{0x1f, 0x8b, 0x08}

// Decompress scans raw for the gzip magic bytes, tolerating a garbage
// prefix, then inflates everything from that point to the end of raw.
func Decompress(raw []byte) ([]byte, error) {
	start := findGzipSignature(raw)

	gz, err := gzip.NewReader(bytes.NewReader(raw[start:]))
	if err != nil {
		return nil, errs.ErrInvalidGzip
	}
	defer gz.Close()

	buf := pool.Get()
	defer pool.Put(buf)

	if _, err := io.Copy(buf, gz); err != nil {
		return nil, errs.ErrInvalidGzip
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// findGzipSignature returns the offset of the first 1f 8b 08 sequence in
// raw, or 0 if none is found (decompression will then fail with
// ErrInvalidGzip, which correctly reports a payload with no gzip stream at
// all).
func findGzipSignature(raw []byte) int {
	if len(raw) < 3 {
		return 0
	}
	for i := 0; i <= len(raw)-3; i++ {
		if raw[i] == gzipSignature[0] && raw[i+1] == gzipSignature[1] && raw[i+2] == gzipSignature[2] {
			return i
		}
	}
	return 0
}
