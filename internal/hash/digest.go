// Package hash computes the xxHash64 digests used to fingerprint payloads.
package hash

import "github.com/cespare/xxhash/v2"

// Digest computes the xxHash64 of a payload.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digester accumulates an xxHash64 over several writes.
type Digester struct {
	d *xxhash.Digest
}

// NewDigester creates an empty Digester.
func NewDigester() *Digester {
	return &Digester{d: xxhash.New()}
}

// Write adds p to the digest. It never fails.
func (g *Digester) Write(p []byte) (int, error) {
	return g.d.Write(p)
}

// Sum64 returns the digest of everything written so far.
func (g *Digester) Sum64() uint64 {
	return g.d.Sum64()
}
