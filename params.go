package sketch

import (
	"fmt"
	"math"
)

const (
	// ln2 is the natural logarithm of 2.
	ln2 = 0.6931471805599453
	// ln2Squared is ln(2)^2.
	ln2Squared = 0.4804530139182014

	// MinPrecision and MaxPrecision bound the HyperLogLog group-index width
	// for which the estimator is calibrated.
	MinPrecision = 4
	MaxPrecision = 16
)

// OptimalParams calculates the Bloom filter size and round count for n
// expected items at false positive rate p.
//
//	m = ceil(-n * ln(p) / ln(2)^2)
//	k = ceil(-ln(p) / ln(2))
//
// No clamping is applied; p must be in (0, 1). CheckFalsePositiveRate can be
// used to check this.
func OptimalParams(n uint64, p float64) (m uint64, k uint32, bitsPerItem float64) {
	bitsPerItem = -math.Log(p) / ln2Squared
	m = uint64(math.Ceil(float64(n) * bitsPerItem))
	k = uint32(math.Ceil(-math.Log(p) / ln2))
	return m, k, bitsPerItem
}

// EstimateFalsePositiveRate estimates the false positive rate of a Bloom
// filter with m bits and k rounds after n insertions.
// Formula: (1 - e^(-kn/m))^k
func EstimateFalsePositiveRate(m uint64, k uint32, n uint64) float64 {
	if m == 0 || n == 0 {
		return 0
	}
	kf := float64(k)
	return math.Pow(1-math.Exp(-kf*float64(n)/float64(m)), kf)
}

// CountMinParams returns the row count k and row width m for a Count-Min
// sketch whose estimates exceed the true count by at most epsilon times the
// total insertions, with probability at least 1-delta.
//
//	m = ceil(e / epsilon)
//	k = ceil(ln(1 / delta))
func CountMinParams(epsilon, delta float64) (k uint32, m uint64) {
	m = uint64(math.Ceil(math.E / epsilon))
	k = uint32(math.Ceil(math.Log(1 / delta)))
	return k, m
}

// Alpha returns the HyperLogLog bias-correction constant for precision b.
func Alpha(b uint8) float64 {
	switch b {
	case 4:
		return 0.673
	case 5:
		return 0.697
	case 6:
		return 0.709
	default:
		return 0.7213 / (1 + 1.079/float64(uint64(1)<<b))
	}
}

// StandardError returns the relative standard error, 1.04/sqrt(2^b), of a
// HyperLogLog with precision b.
func StandardError(b uint8) float64 {
	return 1.04 / math.Sqrt(float64(uint64(1)<<b))
}

// CheckBloomParams validates explicit Bloom filter parameters.
func CheckBloomParams(m uint64, k uint32) error {
	if m == 0 {
		return ErrZeroWidth
	}
	if k == 0 {
		return ErrZeroRounds
	}
	return nil
}

// CheckCountMinParams validates explicit Count-Min parameters.
func CheckCountMinParams(k uint32, m uint64) error {
	return CheckBloomParams(m, k)
}

// CheckFalsePositiveRate validates the rate passed to New and OptimalParams.
func CheckFalsePositiveRate(p float64) error {
	if !(p > 0 && p < 1) {
		return fmt.Errorf("%w: got %v", ErrFalsePositiveRate, p)
	}
	return nil
}

// CheckEstimates validates the error bounds passed to CountMinParams.
func CheckEstimates(epsilon, delta float64) error {
	if !(epsilon > 0) {
		return fmt.Errorf("%w: got %v", ErrEpsilon, epsilon)
	}
	if !(delta > 0 && delta < 1) {
		return fmt.Errorf("%w: got %v", ErrDelta, delta)
	}
	return nil
}

// CheckPrecision validates a HyperLogLog precision.
func CheckPrecision(b uint8) error {
	if b < MinPrecision || b > MaxPrecision {
		return fmt.Errorf("%w: got %d (valid range: %d-%d)", ErrPrecisionRange, b, MinPrecision, MaxPrecision)
	}
	return nil
}
