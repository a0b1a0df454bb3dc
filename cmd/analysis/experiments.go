package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/jcalabro/sketch"
)

var errUndercount = errors.New("count-min estimate below true count")

type bloomResult struct {
	Bits       uint64
	Rounds     uint32
	Expected   float64
	Estimated  float64
	Observed   float64
	FalseHits  uint64
	FillRatio  float64
	IndexName  string
	HasherName string
}

// runBloom fills a filter with Items keys and probes it with keys that were
// never inserted.
func runBloom(c BloomConfig, seed uint64) (bloomResult, error) {
	index, err := c.indexFunc()
	if err != nil {
		return bloomResult{}, err
	}
	h1, h2, err := c.hashers(seed)
	if err != nil {
		return bloomResult{}, err
	}

	f := sketch.New(c.Items, c.FalsePositiveRate, sketch.WithHashers(h1, h2), sketch.WithIndexFunc(index))
	for i := range c.Items {
		f.InsertString("item-" + strconv.FormatUint(i, 10))
	}

	var hits uint64
	for i := range c.Probes {
		if f.ContainsString("probe-" + strconv.FormatUint(i, 10)) {
			hits++
		}
	}

	res := bloomResult{
		Bits:       f.Cap(),
		Rounds:     f.K(),
		Expected:   c.FalsePositiveRate,
		Estimated:  f.EstimatedFalsePositiveRate(),
		FalseHits:  hits,
		FillRatio:  f.EstimatedFillRatio(),
		IndexName:  c.Index,
		HasherName: c.Hasher,
	}
	if c.Probes > 0 {
		res.Observed = float64(hits) / float64(c.Probes)
	}
	return res, nil
}

type countMinResult struct {
	Total        uint64
	Distinct     int
	Epsilon      float64
	MaxOvercount uint64
	MeanOver     float64
	// WithinBound is the share of keys whose overcount is at most
	// Epsilon*Total.
	WithinBound float64
}

// runCountMin feeds a Zipf-distributed stream into a sketch and compares
// every estimate against the exact count.
func runCountMin(c CountMinConfig, seed uint64) (countMinResult, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	zipf := rand.NewZipf(rng, c.Skew, 1, c.Keys-1)

	s := sketch.NewCountMin(c.Rows, c.Width, sketch.WithSeeds(seed, seed+1))
	truth := make(map[uint64]uint64)
	for range c.Events {
		k := zipf.Uint64()
		s.InsertString("key-" + strconv.FormatUint(k, 10))
		truth[k]++
	}

	res := countMinResult{
		Total:    s.Total(),
		Distinct: len(truth),
		Epsilon:  math.E / float64(c.Width),
	}
	bound := res.Epsilon * float64(res.Total)

	var sum uint64
	var within int
	for k, want := range truth {
		got := s.CountString("key-" + strconv.FormatUint(k, 10))
		if got < want {
			return res, fmt.Errorf("%w: key %d got %d want %d", errUndercount, k, got, want)
		}
		over := got - want
		sum += over
		res.MaxOvercount = max(res.MaxOvercount, over)
		if float64(over) <= bound {
			within++
		}
	}
	if len(truth) > 0 {
		res.MeanOver = float64(sum) / float64(len(truth))
		res.WithinBound = float64(within) / float64(len(truth))
	}
	return res, nil
}

type hllResult struct {
	Precision     uint8
	Cardinality   uint64
	Estimate      float64
	Estimator     sketch.Estimator
	RelativeError float64
	StandardError float64
}

// runHyperLogLog estimates every configured cardinality at every configured
// precision.
func runHyperLogLog(c HyperLogLogConfig, seed uint64) []hllResult {
	results := make([]hllResult, 0, len(c.Precisions)*len(c.Cardinalities))
	for _, b := range c.Precisions {
		for _, n := range c.Cardinalities {
			h := sketch.NewHyperLogLog(b, sketch.WithSeeds(seed, 0))
			for i := range n {
				h.InsertUint64(i)
			}
			est, estimator := h.Estimate()

			res := hllResult{
				Precision:     b,
				Cardinality:   n,
				Estimate:      est,
				Estimator:     estimator,
				StandardError: h.StandardError(),
			}
			if n > 0 {
				res.RelativeError = (est - float64(n)) / float64(n)
			}
			results = append(results, res)
		}
	}
	return results
}
