// Package signal turns bars and their indicator rows into LONG/SHORT/HOLD/REVERSE
// signals with a causal position state machine.
//
// Bar i is decided from bar i, indicator rows i and i-1 and the state left by bar
// i-1. Nothing at an index greater than i is ever read, so running the engine
// over bars[0..i] yields the same record at i as the full run.
package signal

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

// Engine is the signal state machine. It holds no per-run state and is safe for
// concurrent runs.
type Engine struct {
	config Config
	warmup int
	policy policy
	log    *logger.Logger
}

// NewEngine creates an engine. lookback is used as the warm-up offset when the
// config leaves it unset.
func NewEngine(config Config, lookback int, log *logger.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if lookback < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidWarmup, "lookback must not be negative, got %d", lookback)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Engine{
		config: config,
		warmup: config.WarmupOffset.TakeOr(lookback),
		policy: newPolicy(config),
		log:    log,
	}, nil
}

// WarmupOffset is the first bar index the engine evaluates.
func (e *Engine) WarmupOffset() int {
	return e.warmup
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// RequiredIndicators lists the columns that must be defined for a bar to be evaluated.
func (e *Engine) RequiredIndicators() []types.IndicatorName {
	return e.policy.required()
}

// Run produces one record per bar.
func (e *Engine) Run(bars []types.Bar, rows []types.IndicatorRow) ([]types.SignalRecord, error) {
	records, _, err := e.run(bars, rows, false)

	return records, err
}

// RunWithTrace is Run plus the state left after every bar.
func (e *Engine) RunWithTrace(bars []types.Bar, rows []types.IndicatorRow) ([]types.SignalRecord, []Snapshot, error) {
	return e.run(bars, rows, true)
}

func (e *Engine) run(bars []types.Bar, rows []types.IndicatorRow, trace bool) ([]types.SignalRecord, []Snapshot, error) {
	if err := e.preRunCheck(bars, rows); err != nil {
		return nil, nil, err
	}

	records := make([]types.SignalRecord, len(bars))
	for i := range records {
		records[i] = types.Hold(i)
	}

	var snapshots []Snapshot
	if trace {
		snapshots = make([]Snapshot, len(bars))
	}

	state := NewSimulationState()

	for i := range bars {
		if i >= e.warmup {
			records[i], state = e.Step(state, bars, rows, i)
		}

		if trace {
			snapshots[i] = state.snapshot(i)
		}
	}

	return records, snapshots, nil
}

func (e *Engine) preRunCheck(bars []types.Bar, rows []types.IndicatorRow) error {
	if len(bars) != len(rows) {
		return errors.Newf(errors.ErrCodeMisalignedRows, "indicator table has %d rows for %d bars", len(rows), len(bars))
	}

	if e.config.RejectShortSeries && e.warmup > len(bars) {
		return errors.Newf(errors.ErrCodeInvalidWarmup, "warm-up offset %d exceeds series length %d", e.warmup, len(bars))
	}

	for i := range rows {
		if rows[i].Index != i {
			return errors.Newf(errors.ErrCodeMisalignedRows, "indicator row %d carries index %d", i, rows[i].Index)
		}
	}

	for i := e.warmup; i < len(bars); i++ {
		if err := bars[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Step decides bar i from state, the state left by bar i-1. It is pure: the
// returned state is a new value and state is not modified.
func (e *Engine) Step(state SimulationState, bars []types.Bar, rows []types.IndicatorRow, i int) (types.SignalRecord, SimulationState) {
	row := rows[i]
	if !row.AllDefined(e.policy.required()...) {
		return types.Hold(i), state
	}

	prev := optional.None[types.IndicatorRow]()
	if i > 0 {
		prev = optional.Some(rows[i-1])
	}

	c := NewConfirmations(bars[i], row, prev, e.config)
	multiplier := e.config.TrailingStopMultiplier

	var (
		record types.SignalRecord
		next   SimulationState
	)

	switch state.Position {
	case types.PositionFlat:
		record, next = e.stepFlat(state, c, i)
	case types.PositionLong:
		record, next = e.stepLong(state, c, i)
	case types.PositionShort:
		record, next = e.stepShort(state, c, i)
	default:
		return types.Hold(i), state
	}

	if next.Position != state.Position {
		e.log.Debug("Position changed",
			zap.Int("index", i),
			zap.String("from", state.Position.String()),
			zap.String("to", next.Position.String()),
			zap.String("trade_type", string(record.TradeType)),
			zap.Float64("close", c.Close),
			zap.Float64("atr", c.ATR),
			zap.Float64("multiplier", multiplier),
		)
	}

	return record, next
}

func (e *Engine) stepFlat(state SimulationState, c Confirmations, i int) (types.SignalRecord, SimulationState) {
	multiplier := e.config.TrailingStopMultiplier

	// short wins when both sets confirm
	if e.policy.shortEntry(c) {
		return record(i, types.SignalSell, types.TradeTypeShort), state.enterShort(c.Close, c.ATR, multiplier)
	}

	if e.policy.longEntry(c) {
		return record(i, types.SignalBuy, types.TradeTypeLong), state.enterLong(c.Close, c.ATR, multiplier)
	}

	return types.Hold(i), state
}

func (e *Engine) stepLong(state SimulationState, c Confirmations, i int) (types.SignalRecord, SimulationState) {
	multiplier := e.config.TrailingStopMultiplier

	if e.policy.longReversal(c) {
		return record(i, types.SignalReverseToShort, types.TradeTypeReverseLongToShort), state.enterShort(c.Close, c.ATR, multiplier)
	}

	stopBreached := c.Close < state.TrailingStop.TakeOr(math.Inf(-1))
	if stopBreached || e.targetHit(state, c.Close) || e.policy.longExit(c) {
		return record(i, types.SignalSell, types.TradeTypeCloseLong), NewSimulationState()
	}

	return types.Hold(i), state.ratchet(c.Close, c.ATR, multiplier)
}

func (e *Engine) stepShort(state SimulationState, c Confirmations, i int) (types.SignalRecord, SimulationState) {
	multiplier := e.config.TrailingStopMultiplier

	if e.policy.shortReversal(c) {
		return record(i, types.SignalReverseToLong, types.TradeTypeReverseShortToLong), state.enterLong(c.Close, c.ATR, multiplier)
	}

	stopBreached := c.Close > state.TrailingStop.TakeOr(math.Inf(1))
	if stopBreached || e.targetHit(state, c.Close) || e.policy.shortExit(c) {
		return record(i, types.SignalBuy, types.TradeTypeCloseShort), NewSimulationState()
	}

	return types.Hold(i), state.ratchet(c.Close, c.ATR, multiplier)
}

func (e *Engine) targetHit(state SimulationState, close float64) bool {
	target, err := e.config.ProfitTarget.Take()
	if err != nil {
		return false
	}

	return state.profit(close) > target
}

func record(i int, signal types.SignalCode, tradeType types.TradeType) types.SignalRecord {
	return types.SignalRecord{
		Index:     i,
		Signal:    signal,
		TradeType: tradeType,
	}
}
