package hash

import "github.com/cespare/xxhash/v2"

// Digest incrementally hashes a sequence of byte chunks into one xxHash64
// value. Used by assemble to compute Report.PayloadDigest over the raw
// frame stream without buffering it into one big string first.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest returns an empty digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write feeds p into the running hash. Never returns an error; present to
// satisfy io.Writer so a Digest can be used anywhere one is expected.
func (h *Digest) Write(p []byte) (int, error) {
	return h.d.Write(p)
}

// Sum64 returns the hash of everything written so far.
func (h *Digest) Sum64() uint64 {
	return h.d.Sum64()
}
