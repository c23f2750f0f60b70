// Package pipeline composes the indicator provider and the signal engine into
// one pure function from bars to signal records.
package pipeline

import (
	"fmt"

	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/signal"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Pipeline runs provider then engine. It carries no per-run state, so one value
// can serve concurrent runs.
type Pipeline struct {
	provider indicator.Provider
	engine   *signal.Engine
}

// New composes provider and engine.
func New(provider indicator.Provider, engine *signal.Engine) *Pipeline {
	return &Pipeline{
		provider: provider,
		engine:   engine,
	}
}

// NewFromConfig builds the standard provider and an engine warmed up by its lookback.
func NewFromConfig(indicators indicator.Config, strategy signal.Config, log *logger.Logger) (*Pipeline, error) {
	provider, err := indicator.NewProvider(indicators, log)
	if err != nil {
		return nil, err
	}

	engine, err := signal.NewEngine(strategy, provider.Lookback(), log)
	if err != nil {
		return nil, err
	}

	return New(provider, engine), nil
}

// Engine returns the signal engine.
func (p *Pipeline) Engine() *signal.Engine {
	return p.engine
}

// Run computes indicators over bars and feeds them to the engine.
func (p *Pipeline) Run(bars []types.Bar) ([]types.SignalRecord, error) {
	_, records, err := p.run(bars)

	return records, err
}

// RunTable is Run joined with bars and indicator rows into output rows.
func (p *Pipeline) RunTable(bars []types.Bar) ([]types.SignalRow, error) {
	rows, records, err := p.run(bars)
	if err != nil {
		return nil, err
	}

	return types.JoinSignalRows(bars, rows, records), nil
}

func (p *Pipeline) run(bars []types.Bar) ([]types.IndicatorRow, []types.SignalRecord, error) {
	rows, err := p.provider.Compute(bars)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute indicators: %w", err)
	}

	records, err := p.engine.Run(bars, rows)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to run signal engine: %w", err)
	}

	return rows, records, nil
}
