// Package sketch provides three probabilistic data structures for stream
// processing: a Bloom filter for set membership, a Count-Min sketch for
// frequency estimation and a HyperLogLog for distinct counting.
//
// Each structure uses memory that does not grow with the number of distinct
// elements inserted, and each trades exactness for a statistical error bound.
// None of them stores the elements themselves, and none supports deletion.
//
// # Hashing
//
// [Filter] and [CountMin] hash every element with two independently seeded
// functions and derive all k probe positions from that pair (see [Kernel]).
// By default positions follow the Kirsch-Mitzenmacher construction
//
//	index(i) = (h1 + i*h2) mod m
//
// [SummedIndex] selects (h1 + h2 + i) mod m instead, via [WithIndexFunc].
// Its rounds land on adjacent bits, so a Bloom filter using it has a
// noticeably higher false positive rate than its parameters suggest.
//
// [HyperLogLog] hashes each element once.
//
// Hash functions are injected as [Hasher] values. [XXH3] is the default,
// seeded randomly per structure; [XXHash] and [Murmur3] are also provided.
// Use [WithSeeds] or [WithHashers] when results must be reproducible.
//
// # Choosing Parameters
//
//	// Bloom filter for 1 million items with 1% false positive rate
//	f := sketch.New(1_000_000, 0.01)
//
//	// Count-Min sketch with 4 rows of 1000 counters
//	c := sketch.NewCountMin(4, 1000)
//
//	// HyperLogLog with 2^14 registers (~0.8% standard error)
//	h := sketch.NewHyperLogLog(14)
//
// Constructors do not validate their arguments. A zero width or row count
// panics on first use, and a HyperLogLog precision outside [4,16] silently
// degrades accuracy. [CheckBloomParams], [CheckCountMinParams],
// [CheckFalsePositiveRate], [CheckEstimates] and [CheckPrecision] return
// descriptive errors for callers that want to reject bad input early.
//
// # Memory Usage
//
// A Bloom filter sized for n items with false positive rate p uses
//
//	m ≈ -n * ln(p) / (ln(2))² bits
//
// A Count-Min sketch uses 8*k*m bytes, a HyperLogLog 2^b bytes.
//
// # Thread Safety
//
// None of the types are safe for concurrent use. Guard every call, reads
// included, with a mutex when sharing a structure between goroutines.
//
// # References
//
//   - Less Hashing, Same Performance: https://www.eecs.harvard.edu/~michaelm/postscripts/rsa2008.pdf
//   - An Improved Data Stream Summary: The Count-Min Sketch and its Applications (Cormode, Muthukrishnan)
//   - HyperLogLog: the analysis of a near-optimal cardinality estimation algorithm (Flajolet et al.)
package sketch
