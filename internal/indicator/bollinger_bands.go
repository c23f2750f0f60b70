package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// BollingerBands is an SMA band of +/- stdDev population standard deviations.
type BollingerBands struct {
	period int
	stdDev float64
}

func NewBollingerBands(period int, stdDev float64) *BollingerBands {
	return &BollingerBands{
		period: period,
		stdDev: stdDev,
	}
}

func (b *BollingerBands) Name() string {
	return "bollinger_bands"
}

func (b *BollingerBands) Columns() []types.IndicatorName {
	return []types.IndicatorName{types.IndicatorBBUpper, types.IndicatorBBMiddle, types.IndicatorBBLower}
}

func (b *BollingerBands) Lookback() int {
	return b.period - 1
}

func (b *BollingerBands) Calculate(bars []types.Bar, rows []types.IndicatorRow) error {
	prices := closes(bars)
	middle := rollingSMA(prices, b.period)
	deviation := rollingStdDev(prices, b.period, 0)

	upper := undefinedSeries(len(prices))
	lower := undefinedSeries(len(prices))

	for i := range prices {
		if defined(middle[i]) && defined(deviation[i]) {
			upper[i] = middle[i] + b.stdDev*deviation[i]
			lower[i] = middle[i] - b.stdDev*deviation[i]
		}
	}

	for i := range rows {
		rows[i].BBUpper = toOption(upper[i])
		rows[i].BBMiddle = toOption(middle[i])
		rows[i].BBLower = toOption(lower[i])
	}

	return nil
}
