// Package soak stress-tests sorted lists. Each trial applies a long random
// sequence of operations to one list and to a plain sorted slice, and checks
// after every batch that the two agree and that the tree invariants hold.
// Trials run concurrently on a bounded worker pool; every list stays owned by
// a single goroutine.
package soak

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/amp-sortedlist/errors"
	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/amp-labs/amp-sortedlist/validate"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// ErrTrialsFailed is returned by Run when at least one trial failed.
var ErrTrialsFailed = stdErrors.New("soak trials failed")

// Report summarizes a run.
type Report struct {
	RunID      string
	Results    []TrialResult
	Operations int64
	Failures   int64
	Duration   time.Duration
}

// Failed returns the results of the trials that failed.
func (r Report) Failed() []TrialResult {
	var failed []TrialResult

	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}

	return failed
}

// Run validates cfg and runs its trials on a pool of cfg.Workers goroutines.
// It returns the report even when trials fail; the error then wraps
// ErrTrialsFailed and every trial error.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if err := validate.Validate(ctx, cfg); err != nil {
		return Report{}, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	report := Report{RunID: uuid.NewString()}
	start := time.Now()

	ctx = logger.With(ctx, "run_id", report.RunID)
	log := logger.Get(ctx)

	log.Info("soak run started",
		"trials", cfg.Trials, "operations", cfg.Operations, "workers", cfg.Workers,
		"elements", cfg.Elements, "descending", cfg.Descending, "seed", cfg.Seed)

	operations := atomic.NewInt64(0)
	failures := atomic.NewInt64(0)

	pool := pond.NewResultPool[TrialResult](cfg.Workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()

	for i := range cfg.Trials {
		group.Submit(func() TrialResult {
			res := RunTrial(ctx, cfg, i)

			operations.Add(int64(res.Operations))

			if res.Err != nil {
				failures.Inc()
				logger.Get(ctx).Error("soak trial failed", "error", res.Err)
			}

			return res
		})
	}

	results, err := group.Wait()

	report.Results = results
	report.Operations = operations.Load()
	report.Failures = failures.Load()
	report.Duration = time.Since(start)

	if err != nil {
		return report, fmt.Errorf("running soak trials: %w", err)
	}

	if report.Failures > 0 {
		var errs errors.Collection

		errs.Add(fmt.Errorf("%w: %d of %d", ErrTrialsFailed, report.Failures, cfg.Trials))

		for _, res := range report.Failed() {
			errs.Add(fmt.Errorf("trial %d (seed %d): %w", res.Trial, res.Seed, res.Err))
		}

		return report, errs.GetError()
	}

	log.Info("soak run finished",
		"operations", report.Operations, "duration", report.Duration)

	return report, nil
}
