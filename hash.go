package sketch

import (
	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// Hasher is a seeded 64-bit hash function.
//
// Implementations must be deterministic: the same input always produces the
// same digest for the lifetime of the process. A Hasher is an immutable seed;
// every call hashes on a fresh copy of the seeded state, so a single Hasher
// may digest any number of elements without one call affecting the next.
type Hasher interface {
	Sum64(data []byte) uint64
	Sum64String(s string) uint64
}

// XXH3 returns a Hasher computing seeded xxh3 digests.
func XXH3(seed uint64) Hasher {
	return xxh3Hasher(seed)
}

type xxh3Hasher uint64

func (h xxh3Hasher) Sum64(data []byte) uint64 {
	return xxh3.HashSeed(data, uint64(h))
}

func (h xxh3Hasher) Sum64String(s string) uint64 {
	return xxh3.HashStringSeed(s, uint64(h))
}

// XXHash returns a Hasher computing seeded xxhash64 digests.
func XXHash(seed uint64) Hasher {
	return &xxhashHasher{seed: *xxhash.NewWithSeed(seed)}
}

// xxhashHasher keeps a freshly seeded digest and copies it by value on every
// call. The prototype itself is never written to.
type xxhashHasher struct {
	seed xxhash.Digest
}

func (h *xxhashHasher) Sum64(data []byte) uint64 {
	d := h.seed
	_, _ = d.Write(data)
	return d.Sum64()
}

func (h *xxhashHasher) Sum64String(s string) uint64 {
	d := h.seed
	_, _ = d.WriteString(s)
	return d.Sum64()
}

// Murmur3 returns a Hasher computing seeded 64-bit murmur3 digests.
func Murmur3(seed uint32) Hasher {
	return murmur3Hasher(seed)
}

type murmur3Hasher uint32

func (h murmur3Hasher) Sum64(data []byte) uint64 {
	return murmur3.Sum64WithSeed(data, uint32(h))
}

func (h murmur3Hasher) Sum64String(s string) uint64 {
	return murmur3.Sum64WithSeed([]byte(s), uint32(h))
}

// IndexFunc derives the i-th of several positions in [0, m) from a pair of
// digests. All arithmetic wraps modulo 2^64; m must be non-zero.
type IndexFunc func(m, h1, h2 uint64, i uint32) uint64

// DoubleHashIndex computes (h1 + i*h2) mod m, the Kirsch-Mitzenmacher
// construction. A zero h2 is replaced with 1 so that rounds stay distinct.
func DoubleHashIndex(m, h1, h2 uint64, i uint32) uint64 {
	if h2 == 0 {
		h2 = 1
	}
	return (h1 + uint64(i)*h2) % m
}

// SummedIndex computes (h1 + h2 + i) mod m. Successive rounds land on
// adjacent positions, which makes Bloom false positives considerably more
// likely than DoubleHashIndex for the same m and k.
func SummedIndex(m, h1, h2 uint64, i uint32) uint64 {
	return (h1 + (uint64(i) + h2)) % m
}

// Kernel pairs two hashers with an index derivation. It is shared by Filter
// and CountMin, which both hash an element once and probe k positions.
// H1 and H2 are required; a nil Index means DoubleHashIndex.
type Kernel struct {
	H1, H2 Hasher
	Index  IndexFunc
}

// Digest returns both digests of data.
func (k Kernel) Digest(data []byte) (h1, h2 uint64) {
	return k.H1.Sum64(data), k.H2.Sum64(data)
}

// DigestString returns both digests of s.
func (k Kernel) DigestString(s string) (h1, h2 uint64) {
	return k.H1.Sum64String(s), k.H2.Sum64String(s)
}

// Position returns the i-th index in [0, m) for a digest pair.
func (k Kernel) Position(m, h1, h2 uint64, i uint32) uint64 {
	if k.Index == nil {
		return DoubleHashIndex(m, h1, h2, i)
	}
	return k.Index(m, h1, h2, i)
}
