package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

// ProviderV1 runs every registered calculator over the full series.
type ProviderV1 struct {
	registry Registry
	log      *logger.Logger
}

// NewProvider registers the standard columns for config.
func NewProvider(config Config, log *logger.Logger) (*ProviderV1, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	registry := NewIndicatorRegistry()
	calculators := []Calculator{
		NewATR(config.ATRPeriod),
		NewSMA(types.IndicatorSMAFast, config.SMAFastPeriod),
		NewSMA(types.IndicatorSMAMid, config.SMAMidPeriod),
		NewSMA(types.IndicatorSMASlow, config.SMASlowPeriod),
		NewRSI(config.RSIPeriod),
		NewMACD(config.MACDFast, config.MACDSlow, config.MACDSignal),
		NewBollingerBands(config.BollingerPeriod, config.BollingerStdDev),
		NewVolumeSMA(config.VolumeSMAPeriod),
		NewVolatility(config.VolatilityPeriod),
	}

	for _, calculator := range calculators {
		if err := registry.RegisterIndicator(calculator); err != nil {
			return nil, err
		}
	}

	return NewProviderWithRegistry(registry, log), nil
}

// NewProviderWithRegistry builds a provider over a caller-supplied registry.
func NewProviderWithRegistry(registry Registry, log *logger.Logger) *ProviderV1 {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &ProviderV1{
		registry: registry,
		log:      log,
	}
}

// Compute implements Provider.
func (p *ProviderV1) Compute(bars []types.Bar) ([]types.IndicatorRow, error) {
	rows := make([]types.IndicatorRow, len(bars))
	for i := range rows {
		rows[i] = types.NewIndicatorRow(i)
	}

	for _, name := range p.registry.ListIndicators() {
		calculator, err := p.registry.GetIndicator(name)
		if err != nil {
			return nil, err
		}

		if err := calculator.Calculate(bars, rows); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "failed to calculate %s", name)
		}
	}

	p.log.Debug("Computed indicators",
		zap.Int("bars", len(bars)),
		zap.Int("calculators", len(p.registry.ListIndicators())),
	)

	return rows, nil
}

// Lookback implements Provider. One bar is added on top of the slowest column
// so the previous row read by crossovers is defined too.
func (p *ProviderV1) Lookback() int {
	lookback := 0

	for _, name := range p.registry.ListIndicators() {
		calculator, err := p.registry.GetIndicator(name)
		if err != nil {
			continue
		}

		lookback = max(lookback, calculator.Lookback())
	}

	return lookback + 1
}

// Registry exposes the calculators used by the provider.
func (p *ProviderV1) Registry() Registry {
	return p.registry
}
