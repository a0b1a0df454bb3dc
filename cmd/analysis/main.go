// Command analysis measures the accuracy of the sketch package's Bloom
// filter, Count-Min sketch and HyperLogLog against exact answers.
//
// Usage:
//
//	analysis [-config experiments.yaml] [-debug]
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML experiment config")
	debug := flag.Bool("debug", false, "enable development logging")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(logger, *configPath); err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(logger *zap.Logger, configPath string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger.Debug("loaded config", zap.String("path", configPath), zap.Uint64("seed", cfg.Seed))

	// Each experiment owns its structures, so they can run side by side.
	var (
		bloom bloomResult
		cms   countMinResult
		hll   []hllResult
		g     errgroup.Group
	)
	g.Go(func() (err error) {
		bloom, err = runBloom(cfg.Bloom, cfg.Seed)
		return err
	})
	g.Go(func() (err error) {
		cms, err = runCountMin(cfg.CountMin, cfg.Seed)
		return err
	})
	g.Go(func() error {
		hll = runHyperLogLog(cfg.HyperLogLog, cfg.Seed)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("bloom filter",
		zap.Uint64("items", cfg.Bloom.Items),
		zap.Uint64("bits", bloom.Bits),
		zap.Uint32("rounds", bloom.Rounds),
		zap.String("index", bloom.IndexName),
		zap.String("hasher", bloom.HasherName),
		zap.Float64("target_fp", bloom.Expected),
		zap.Float64("estimated_fp", bloom.Estimated),
		zap.Float64("observed_fp", bloom.Observed),
		zap.Uint64("false_hits", bloom.FalseHits),
		zap.Float64("fill_ratio", bloom.FillRatio),
	)
	if bloom.Observed > 2*bloom.Expected {
		logger.Warn("observed false positive rate exceeds twice the target",
			zap.Float64("observed_fp", bloom.Observed),
			zap.Float64("target_fp", bloom.Expected),
		)
	}

	logger.Info("count-min sketch",
		zap.Uint32("rows", cfg.CountMin.Rows),
		zap.Uint64("width", cfg.CountMin.Width),
		zap.Uint64("total", cms.Total),
		zap.Int("distinct", cms.Distinct),
		zap.Float64("epsilon", cms.Epsilon),
		zap.Uint64("max_overcount", cms.MaxOvercount),
		zap.Float64("mean_overcount", cms.MeanOver),
		zap.Float64("within_bound", cms.WithinBound),
	)

	for _, r := range hll {
		logger.Info("hyperloglog",
			zap.Uint8("precision", r.Precision),
			zap.Uint64("cardinality", r.Cardinality),
			zap.Float64("estimate", r.Estimate),
			zap.Stringer("estimator", r.Estimator),
			zap.Float64("relative_error", r.RelativeError),
			zap.Float64("standard_error", r.StandardError),
		)
	}
	return nil
}
