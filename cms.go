package sketch

import "math"

// CountMin is a Count-Min sketch: k rows of m counters. Every insertion
// increments one counter per row; a query returns the smallest of the k
// counters the element maps to, which is never below its true count.
//
// CountMin is not safe for concurrent use.
type CountMin struct {
	counters []uint64 // Flattened k x m table, row-major
	k        uint32   // Rows
	m        uint64   // Columns
	kernel   Kernel
	total    uint64
}

// NewCountMin creates a sketch with k rows of m zeroed counters.
//
// The parameters are not validated; CheckCountMinParams can be used to
// reject a zero k or m before construction.
func NewCountMin(k uint32, m uint64, opts ...Option) *CountMin {
	o := buildOptions(opts)
	return &CountMin{
		counters: make([]uint64, uint64(k)*m),
		k:        k,
		m:        m,
		kernel:   o.kernel(),
	}
}

// NewCountMinWithEstimates creates a sketch sized by CountMinParams.
func NewCountMinWithEstimates(epsilon, delta float64, opts ...Option) *CountMin {
	k, m := CountMinParams(epsilon, delta)
	return NewCountMin(k, m, opts...)
}

// Insert counts one occurrence of data.
func (s *CountMin) Insert(data []byte) {
	h1, h2 := s.kernel.Digest(data)
	s.addWithHash(h1, h2, 1)
}

// InsertString counts one occurrence of str.
func (s *CountMin) InsertString(str string) {
	h1, h2 := s.kernel.DigestString(str)
	s.addWithHash(h1, h2, 1)
}

// InsertN counts n occurrences of data. A count of zero is a no-op.
func (s *CountMin) InsertN(data []byte, n uint64) {
	if n == 0 {
		return
	}
	h1, h2 := s.kernel.Digest(data)
	s.addWithHash(h1, h2, n)
}

func (s *CountMin) addWithHash(h1, h2, n uint64) {
	for row := uint32(0); row < s.k; row++ {
		col := s.kernel.Position(s.m, h1, h2, row)
		s.counters[uint64(row)*s.m+col] += n
	}
	s.total += n
}

// Count returns the estimated number of occurrences of data.
func (s *CountMin) Count(data []byte) uint64 {
	h1, h2 := s.kernel.Digest(data)
	return s.countWithHash(h1, h2)
}

// CountString returns the estimated number of occurrences of str.
func (s *CountMin) CountString(str string) uint64 {
	h1, h2 := s.kernel.DigestString(str)
	return s.countWithHash(h1, h2)
}

// countWithHash returns math.MaxUint64 for a sketch with no rows.
func (s *CountMin) countWithHash(h1, h2 uint64) uint64 {
	minVal := uint64(math.MaxUint64)
	for row := uint32(0); row < s.k; row++ {
		col := s.kernel.Position(s.m, h1, h2, row)
		minVal = min(minVal, s.counters[uint64(row)*s.m+col])
	}
	return minVal
}

// Depth returns the number of rows.
func (s *CountMin) Depth() uint32 {
	return s.k
}

// Width returns the number of counters per row.
func (s *CountMin) Width() uint64 {
	return s.m
}

// Total returns the number of occurrences inserted so far.
func (s *CountMin) Total() uint64 {
	return s.total
}
