package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Volatility writes the bar-over-bar price change and its rolling sample standard deviation.
type Volatility struct {
	period int
}

func NewVolatility(period int) *Volatility {
	return &Volatility{period: period}
}

func (v *Volatility) Name() string {
	return string(types.IndicatorVolatility)
}

func (v *Volatility) Columns() []types.IndicatorName {
	return []types.IndicatorName{types.IndicatorPriceChange, types.IndicatorVolatility}
}

func (v *Volatility) Lookback() int {
	return v.period
}

func (v *Volatility) Calculate(bars []types.Bar, rows []types.IndicatorRow) error {
	change := priceChange(closes(bars))
	volatility := rollingStdDev(change, v.period, 1)

	for i := range rows {
		rows[i].PriceChange = toOption(change[i])
		rows[i].Volatility = toOption(volatility[i])
	}

	return nil
}

// priceChange is close[i]/close[i-1] - 1, undefined at 0 and after a zero close.
func priceChange(prices []float64) []float64 {
	out := undefinedSeries(len(prices))

	for i := 1; i < len(prices); i++ {
		if !defined(prices[i]) || !defined(prices[i-1]) || prices[i-1] == 0 {
			continue
		}

		out[i] = prices[i]/prices[i-1] - 1
	}

	return out
}
