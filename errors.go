package sketch

import "errors"

var (
	// ErrZeroWidth is returned when a Bloom bit array or Count-Min row has
	// no cells.
	ErrZeroWidth = errors.New("sketch: width m must be positive")

	// ErrZeroRounds is returned when a Bloom filter or Count-Min sketch has
	// no hash rounds.
	ErrZeroRounds = errors.New("sketch: round count k must be positive")

	// ErrFalsePositiveRate is returned when a target false positive rate is
	// not in the open interval (0, 1).
	ErrFalsePositiveRate = errors.New("sketch: false positive rate must be in (0, 1)")

	// ErrEpsilon is returned when a Count-Min error bound is not positive.
	ErrEpsilon = errors.New("sketch: epsilon must be positive")

	// ErrDelta is returned when a Count-Min failure probability is not in
	// the open interval (0, 1).
	ErrDelta = errors.New("sketch: delta must be in (0, 1)")

	// ErrPrecisionRange is returned when a HyperLogLog precision is outside
	// [MinPrecision, MaxPrecision].
	ErrPrecisionRange = errors.New("sketch: precision out of range")
)
