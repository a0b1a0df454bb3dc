package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jcalabro/sketch"
	"gopkg.in/yaml.v3"
)

// Config describes one analysis run. Fields omitted from the YAML file keep
// their DefaultConfig values; fields set explicitly, zeros included, replace
// them.
type Config struct {
	Seed        uint64            `yaml:"seed"`
	Bloom       BloomConfig       `yaml:"bloom"`
	CountMin    CountMinConfig    `yaml:"count_min"`
	HyperLogLog HyperLogLogConfig `yaml:"hyperloglog"`
}

// BloomConfig measures the empirical false positive rate of a filter built
// with sketch.New.
type BloomConfig struct {
	Items             uint64  `yaml:"items"`
	FalsePositiveRate float64 `yaml:"false_positive_rate"`
	// Probes is the number of never-inserted keys tested.
	Probes uint64 `yaml:"probes"`
	// Index is "double" (default) or "summed".
	Index string `yaml:"index"`
	// Hasher is "xxh3" (default), "xxhash" or "murmur3".
	Hasher string `yaml:"hasher"`
}

// CountMinConfig measures overcounting on a Zipf-distributed stream.
type CountMinConfig struct {
	Rows   uint32 `yaml:"rows"`
	Width  uint64 `yaml:"width"`
	Keys   uint64 `yaml:"keys"`
	Events uint64 `yaml:"events"`
	// Skew is the Zipf s parameter and must be greater than 1.
	Skew float64 `yaml:"skew"`
}

// HyperLogLogConfig measures relative error for every precision and
// cardinality combination.
type HyperLogLogConfig struct {
	Precisions    []uint8  `yaml:"precisions"`
	Cardinalities []uint64 `yaml:"cardinalities"`
}

// DefaultConfig returns the parameters used when no file is given.
func DefaultConfig() Config {
	return Config{
		Seed: 1,
		Bloom: BloomConfig{
			Items:             100_000,
			FalsePositiveRate: 0.01,
			Probes:            100_000,
			Index:             "double",
			Hasher:            "xxh3",
		},
		CountMin: CountMinConfig{
			Rows:   4,
			Width:  2048,
			Keys:   10_000,
			Events: 200_000,
			Skew:   1.1,
		},
		HyperLogLog: HyperLogLogConfig{
			Precisions:    []uint8{4, 8, 12, 14},
			Cardinalities: []uint64{100, 1_000, 10_000, 100_000},
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. An empty path returns
// the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

var (
	errUnknownIndex  = errors.New("unknown index function")
	errUnknownHasher = errors.New("unknown hasher")
	errSkew          = errors.New("zipf skew must be greater than 1")
	errNoKeys        = errors.New("key space must be positive")
	errEmptySweep    = errors.New("hyperloglog sweep is empty")
)

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error

	if err := sketch.CheckFalsePositiveRate(c.Bloom.FalsePositiveRate); err != nil {
		errs = append(errs, fmt.Errorf("bloom: %w", err))
	} else {
		m, k, _ := sketch.OptimalParams(c.Bloom.Items, c.Bloom.FalsePositiveRate)
		if err := sketch.CheckBloomParams(m, k); err != nil {
			errs = append(errs, fmt.Errorf("bloom: %w: items %d", err, c.Bloom.Items))
		}
	}
	if _, err := c.Bloom.indexFunc(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Bloom.hashers(c.Seed); err != nil {
		errs = append(errs, err)
	}

	if err := sketch.CheckCountMinParams(c.CountMin.Rows, c.CountMin.Width); err != nil {
		errs = append(errs, fmt.Errorf("count_min: %w", err))
	}
	if c.CountMin.Keys == 0 {
		errs = append(errs, fmt.Errorf("count_min: %w", errNoKeys))
	}
	if !(c.CountMin.Skew > 1) {
		errs = append(errs, fmt.Errorf("count_min: %w: got %v", errSkew, c.CountMin.Skew))
	}

	if len(c.HyperLogLog.Precisions) == 0 || len(c.HyperLogLog.Cardinalities) == 0 {
		errs = append(errs, errEmptySweep)
	}
	for _, b := range c.HyperLogLog.Precisions {
		if err := sketch.CheckPrecision(b); err != nil {
			errs = append(errs, fmt.Errorf("hyperloglog: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (c BloomConfig) indexFunc() (sketch.IndexFunc, error) {
	switch c.Index {
	case "", "double":
		return sketch.DoubleHashIndex, nil
	case "summed":
		return sketch.SummedIndex, nil
	default:
		return nil, fmt.Errorf("bloom: %w %q", errUnknownIndex, c.Index)
	}
}

func (c BloomConfig) hashers(seed uint64) (h1, h2 sketch.Hasher, err error) {
	switch c.Hasher {
	case "", "xxh3":
		return sketch.XXH3(seed), sketch.XXH3(seed + 1), nil
	case "xxhash":
		return sketch.XXHash(seed), sketch.XXHash(seed + 1), nil
	case "murmur3":
		return sketch.Murmur3(uint32(seed)), sketch.Murmur3(uint32(seed + 1)), nil
	default:
		return nil, nil, fmt.Errorf("bloom: %w %q", errUnknownHasher, c.Hasher)
	}
}
