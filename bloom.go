package sketch

import "github.com/bits-and-blooms/bitset"

// Filter is a Bloom filter: a bit array of m bits probed k times per
// element. Positions are derived from two digests by the Kernel, so each
// element is hashed exactly twice regardless of k.
//
// Filter is not safe for concurrent use.
type Filter struct {
	bits   *bitset.BitSet
	m      uint64 // Number of bits
	k      uint32 // Number of rounds
	kernel Kernel
	count  uint64 // Number of Insert calls
}

// New creates a Bloom filter sized for n expected items at false positive
// rate p, using the parameters from OptimalParams.
func New(n uint64, p float64, opts ...Option) *Filter {
	m, k, _ := OptimalParams(n, p)
	return NewWithParams(m, k, opts...)
}

// NewWithParams creates a Bloom filter with m bits and k rounds.
//
// The parameters are not validated. A filter with m == 0 panics on first
// use; CheckBloomParams can be used to reject such values up front.
func NewWithParams(m uint64, k uint32, opts ...Option) *Filter {
	o := buildOptions(opts)
	return &Filter{
		bits:   bitset.New(uint(m)),
		m:      m,
		k:      k,
		kernel: o.kernel(),
	}
}

// Insert adds data to the filter.
func (f *Filter) Insert(data []byte) {
	h1, h2 := f.kernel.Digest(data)
	f.insertWithHash(h1, h2)
}

// InsertString adds s to the filter without allocating.
func (f *Filter) InsertString(s string) {
	h1, h2 := f.kernel.DigestString(s)
	f.insertWithHash(h1, h2)
}

func (f *Filter) insertWithHash(h1, h2 uint64) {
	for i := uint32(0); i < f.k; i++ {
		f.bits.Set(uint(f.kernel.Position(f.m, h1, h2, i)))
	}
	f.count++
}

// Contains reports whether data might be in the filter. A false result is
// definite; a true result is wrong with the filter's false positive rate.
func (f *Filter) Contains(data []byte) bool {
	h1, h2 := f.kernel.Digest(data)
	return f.testWithHash(h1, h2)
}

// ContainsString reports whether s might be in the filter.
func (f *Filter) ContainsString(s string) bool {
	h1, h2 := f.kernel.DigestString(s)
	return f.testWithHash(h1, h2)
}

func (f *Filter) testWithHash(h1, h2 uint64) bool {
	for i := uint32(0); i < f.k; i++ {
		if !f.bits.Test(uint(f.kernel.Position(f.m, h1, h2, i))) {
			return false
		}
	}
	return true
}

// CheckAndInsert reports whether data might already have been in the filter,
// then inserts it.
func (f *Filter) CheckAndInsert(data []byte) bool {
	h1, h2 := f.kernel.Digest(data)
	present := f.testWithHash(h1, h2)
	f.insertWithHash(h1, h2)
	return present
}

// CheckAndInsertString is CheckAndInsert for string keys.
func (f *Filter) CheckAndInsertString(s string) bool {
	h1, h2 := f.kernel.DigestString(s)
	present := f.testWithHash(h1, h2)
	f.insertWithHash(h1, h2)
	return present
}

// Cap returns the size of the bit array.
func (f *Filter) Cap() uint64 {
	return f.m
}

// K returns the number of rounds.
func (f *Filter) K() uint32 {
	return f.k
}

// Count returns the number of Insert calls, duplicates included.
func (f *Filter) Count() uint64 {
	return f.count
}

// EstimatedFillRatio returns the proportion of bits that are set.
func (f *Filter) EstimatedFillRatio() float64 {
	if f.m == 0 {
		return 0
	}
	return float64(f.bits.Count()) / float64(f.m)
}

// EstimatedFalsePositiveRate estimates the current false positive rate
// based on the number of insertions.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.m, f.k, f.count)
}
