// Package validator proves signals carry no lookahead bias by re-running the
// pipeline over the prefix that ends at each signal bar and comparing the result
// with the full run.
package validator

import (
	"context"
	"sync"

	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Simulator is a pure bars-to-records function, normally a pipeline.Pipeline.
type Simulator interface {
	Run(bars []types.Bar) ([]types.SignalRecord, error)
}

// Violation is a bar whose record changed when future bars were removed.
type Violation struct {
	Index    int
	Expected types.SignalRecord
	Actual   types.SignalRecord
}

// Report is the validation outcome. Violations are findings, not errors.
type Report struct {
	NoBias     bool
	Mode       Mode
	Checked    []int
	Violations []Violation
}

// ProgressFunc is called after each re-simulation with the number completed.
type ProgressFunc func(done, total int)

type Option func(*Validator)

// WithProgress reports progress to fn. fn may be called from several goroutines
// but never concurrently.
func WithProgress(fn ProgressFunc) Option {
	return func(v *Validator) {
		v.onCheck = fn
	}
}

type Validator struct {
	simulator Simulator
	config    Config
	log       *logger.Logger
	onCheck   ProgressFunc
}

func NewValidator(simulator Simulator, config Config, log *logger.Logger, opts ...Option) (*Validator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	v := &Validator{
		simulator: simulator,
		config:    config,
		log:       log,
		onCheck:   nil,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// check is the outcome of one re-simulation.
type check struct {
	index     int
	actual    types.SignalRecord
	violation bool
}

// Validate re-simulates the signal bars of records chosen by the mode.
// It returns an error only when a re-simulation fails or ctx is done.
func (v *Validator) Validate(ctx context.Context, bars []types.Bar, records []types.SignalRecord) (Report, error) {
	if len(bars) != len(records) {
		return Report{}, errors.Newf(errors.ErrCodeMisalignedRows, "%d records for %d bars", len(records), len(bars))
	}

	indices := v.selectIndices(records)
	report := Report{
		NoBias:     true,
		Mode:       v.config.Mode,
		Checked:    []int{},
		Violations: []Violation{},
	}

	if len(indices) == 0 {
		v.log.Info("No signals to validate", zap.String("mode", string(v.config.Mode)))

		return report, nil
	}

	var (
		checks []check
		err    error
	)

	if v.config.Parallelism > 1 {
		checks, err = v.runParallel(ctx, bars, records, indices)
	} else {
		checks, err = v.runSequential(ctx, bars, records, indices)
	}

	if err != nil {
		return Report{}, err
	}

	for _, c := range checks {
		report.Checked = append(report.Checked, c.index)

		if !c.violation {
			continue
		}

		violation := Violation{
			Index:    c.index,
			Expected: records[c.index],
			Actual:   c.actual,
		}
		report.Violations = append(report.Violations, violation)
		report.NoBias = false

		v.log.Warn("Lookahead bias detected",
			zap.Int("index", c.index),
			zap.Int("expected_signal", int(violation.Expected.Signal)),
			zap.String("expected_trade_type", string(violation.Expected.TradeType)),
			zap.Int("actual_signal", int(violation.Actual.Signal)),
			zap.String("actual_trade_type", string(violation.Actual.TradeType)),
		)

		if v.config.Mode == ModeSampled {
			break
		}
	}

	v.log.Info("Lookahead validation finished",
		zap.String("mode", string(v.config.Mode)),
		zap.Bool("no_bias", report.NoBias),
		zap.Int("checked", len(report.Checked)),
		zap.Int("violations", len(report.Violations)),
	)

	return report, nil
}

func (v *Validator) selectIndices(records []types.SignalRecord) []int {
	indices := []int{}

	for i, record := range records {
		if !record.IsSignal() {
			continue
		}

		indices = append(indices, i)

		if v.config.Mode == ModeSampled && len(indices) == v.config.SampleSize {
			break
		}
	}

	return indices
}

func (v *Validator) runSequential(ctx context.Context, bars []types.Bar, records []types.SignalRecord, indices []int) ([]check, error) {
	checks := make([]check, 0, len(indices))

	for n, index := range indices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, err := v.check(bars, records, index)
		if err != nil {
			return nil, err
		}

		checks = append(checks, c)
		v.progress(n+1, len(indices))

		if c.violation && v.config.Mode == ModeSampled {
			break
		}
	}

	return checks, nil
}

// runParallel checks every index; the caller walks the results in index order,
// so the report matches a sequential run.
func (v *Validator) runParallel(ctx context.Context, bars []types.Bar, records []types.SignalRecord, indices []int) ([]check, error) {
	checks := make([]check, len(indices))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.config.Parallelism)

	var (
		mu   sync.Mutex
		done int
	)

	for n, index := range indices {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			c, err := v.check(bars, records, index)
			if err != nil {
				return err
			}

			checks[n] = c

			mu.Lock()
			done++
			v.progress(done, len(indices))
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return checks, nil
}

func (v *Validator) check(bars []types.Bar, records []types.SignalRecord, index int) (check, error) {
	prefix := types.Truncate(bars, index)

	out, err := v.simulator.Run(prefix)
	if err != nil {
		return check{}, errors.Wrapf(errors.ErrCodeSimulationFailed, err, "re-simulation up to bar %d failed", index)
	}

	if len(out) != len(prefix) {
		return check{}, errors.Newf(errors.ErrCodeSimulationFailed, "re-simulation up to bar %d returned %d records for %d bars", index, len(out), len(prefix))
	}

	actual := out[index]
	expected := records[index]

	v.log.Debug("Re-simulated prefix",
		zap.Int("index", index),
		zap.String("trade_type", string(actual.TradeType)),
	)

	return check{
		index:     index,
		actual:    actual,
		violation: actual.Signal != expected.Signal || actual.TradeType != expected.TradeType,
	}, nil
}

func (v *Validator) progress(done, total int) {
	if v.onCheck != nil {
		v.onCheck(done, total)
	}
}
