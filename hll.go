package sketch

import (
	"encoding/binary"
	"math"
	"math/bits"
)

// Register is the HyperLogLog accumulator: 2^b one-byte registers, each
// holding the largest rank observed among the hashes routed to it.
//
// The low b bits of a hash select the register. The remaining 64-b bits
// supply the rank: the 1-indexed position of their most significant set bit,
// or 64-b+1 when they are all zero.
type Register struct {
	groups []uint8
	mask   uint64
	b      uint8
}

// NewRegister creates 2^b zeroed registers. b is not validated.
func NewRegister(b uint8) *Register {
	m := uint64(1) << b
	return &Register{
		groups: make([]uint8, m),
		mask:   m - 1,
		b:      b,
	}
}

// Insert records an already-hashed value.
func (r *Register) Insert(x uint64) {
	group := x & r.mask
	w := x >> r.b
	// w carries b zero bits above the remaining hash bits.
	rank := uint8(bits.LeadingZeros64(w)) - r.b + 1
	if rank > r.groups[group] {
		r.groups[group] = rank
	}
}

// Get returns the value of register group.
func (r *Register) Get(group uint64) uint8 {
	return r.groups[group]
}

// Len returns the number of registers.
func (r *Register) Len() int {
	return len(r.groups)
}

// CountZeroGroups returns the number of registers that have never been
// updated.
func (r *Register) CountZeroGroups() int {
	var n int
	for _, g := range r.groups {
		if g == 0 {
			n++
		}
	}
	return n
}

// Estimator identifies which formula produced a cardinality estimate.
type Estimator int

const (
	// EstimatorHyperLogLog is the harmonic-mean estimate alpha*m^2/sum(2^-reg).
	EstimatorHyperLogLog Estimator = iota
	// EstimatorLinearCounting is m*ln(m/z), used when the raw estimate is
	// below 2.5m and z registers are still zero.
	EstimatorLinearCounting
)

// String returns the string representation of the estimator.
func (e Estimator) String() string {
	switch e {
	case EstimatorHyperLogLog:
		return "hyperloglog"
	case EstimatorLinearCounting:
		return "linear_counting"
	default:
		return "unknown"
	}
}

// HyperLogLog estimates the number of distinct elements inserted into it
// using 2^b bytes of memory, with a relative standard error of about
// 1.04/sqrt(2^b).
//
// Unlike Filter and CountMin it hashes each element once, with the first
// hasher of its options, and feeds the digest to a Register. No correction
// is applied near the top of the 64-bit hash range.
//
// HyperLogLog is not safe for concurrent use.
type HyperLogLog struct {
	register *Register
	hasher   Hasher
	alpha    float64
	m        uint64
	b        uint8
}

// NewHyperLogLog creates an estimator with 2^b registers. b should lie in
// [MinPrecision, MaxPrecision]; it is not validated here, see
// CheckPrecision.
func NewHyperLogLog(b uint8, opts ...Option) *HyperLogLog {
	o := buildOptions(opts)
	return &HyperLogLog{
		register: NewRegister(b),
		hasher:   o.h1,
		alpha:    Alpha(b),
		m:        uint64(1) << b,
		b:        b,
	}
}

// Insert adds data to the estimator.
func (h *HyperLogLog) Insert(data []byte) {
	h.register.Insert(h.hasher.Sum64(data))
}

// InsertString adds s to the estimator.
func (h *HyperLogLog) InsertString(s string) {
	h.register.Insert(h.hasher.Sum64String(s))
}

// InsertUint64 adds v, hashed from its little-endian encoding.
func (h *HyperLogLog) InsertUint64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.register.Insert(h.hasher.Sum64(buf[:]))
}

// Cardinality returns the estimated number of distinct elements inserted.
func (h *HyperLogLog) Cardinality() float64 {
	est, _ := h.Estimate()
	return est
}

// Estimate returns the cardinality estimate along with the estimator that
// produced it.
func (h *HyperLogLog) Estimate() (float64, Estimator) {
	m := float64(h.m)
	est := rawEstimate(h.alpha, m, h.register.groups)
	if est < 2.5*m {
		if z := h.register.CountZeroGroups(); z > 0 {
			return linearCounting(m, float64(z)), EstimatorLinearCounting
		}
	}
	return est, EstimatorHyperLogLog
}

// Register returns the underlying registers.
func (h *HyperLogLog) Register() *Register {
	return h.register
}

// Precision returns b.
func (h *HyperLogLog) Precision() uint8 {
	return h.b
}

// Size returns the number of registers, 2^b.
func (h *HyperLogLog) Size() uint64 {
	return h.m
}

// Alpha returns the bias-correction constant in use.
func (h *HyperLogLog) Alpha() float64 {
	return h.alpha
}

// StandardError returns the expected relative error of Cardinality.
func (h *HyperLogLog) StandardError() float64 {
	return StandardError(h.b)
}

func rawEstimate(alpha, m float64, registers []uint8) float64 {
	var sum float64
	for _, r := range registers {
		sum += math.Ldexp(1, -int(r))
	}
	return alpha * m * m / sum
}

func linearCounting(m, zeros float64) float64 {
	return m * math.Log(m/zeros)
}
