package sketch

import "math/rand/v2"

// Option configures the hashing of a Filter, CountMin or HyperLogLog.
type Option func(*options)

type options struct {
	h1, h2 Hasher
	index  IndexFunc
}

// WithSeeds uses xxh3 seeded with the given values instead of random seeds.
// Structures built with equal seeds hash identically, which makes their
// contents reproducible. HyperLogLog only uses seed1.
func WithSeeds(seed1, seed2 uint64) Option {
	return func(o *options) {
		o.h1 = XXH3(seed1)
		o.h2 = XXH3(seed2)
	}
}

// WithHashers uses arbitrary hash functions. HyperLogLog only uses h1.
func WithHashers(h1, h2 Hasher) Option {
	return func(o *options) {
		o.h1 = h1
		o.h2 = h2
	}
}

// WithIndexFunc replaces DoubleHashIndex as the index derivation for Filter
// and CountMin.
func WithIndexFunc(fn IndexFunc) Option {
	return func(o *options) {
		o.index = fn
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.h1 == nil {
		o.h1 = XXH3(rand.Uint64())
	}
	if o.h2 == nil {
		o.h2 = XXH3(rand.Uint64())
	}
	if o.index == nil {
		o.index = DoubleHashIndex
	}
	return o
}

func (o options) kernel() Kernel {
	return Kernel{H1: o.h1, H2: o.h2, Index: o.index}
}
