package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-signal/internal/types"
)

// RSI is the Wilder relative strength index over price changes.
type RSI struct {
	period int
}

func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

func (r *RSI) Name() string {
	return string(types.IndicatorRSI)
}

func (r *RSI) Columns() []types.IndicatorName {
	return []types.IndicatorName{types.IndicatorRSI}
}

func (r *RSI) Lookback() int {
	return r.period
}

func (r *RSI) Calculate(bars []types.Bar, rows []types.IndicatorRow) error {
	values := rsiSeries(closes(bars), r.period)
	for i := range rows {
		rows[i].RSI = toOption(values[i])
	}

	return nil
}

func rsiSeries(prices []float64, period int) []float64 {
	gains := undefinedSeries(len(prices))
	losses := undefinedSeries(len(prices))

	for i := 1; i < len(prices); i++ {
		if !defined(prices[i]) || !defined(prices[i-1]) {
			continue
		}

		change := prices[i] - prices[i-1]
		gains[i] = math.Max(change, 0)
		losses[i] = math.Max(-change, 0)
	}

	avgGain := wilderSeries(gains, period)
	avgLoss := wilderSeries(losses, period)
	out := undefinedSeries(len(prices))

	for i := range prices {
		if !defined(avgGain[i]) || !defined(avgLoss[i]) {
			continue
		}

		out[i] = rsiValue(avgGain[i], avgLoss[i])
	}

	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			// no movement at all
			return math.NaN()
		}

		return 100
	}

	rs := avgGain / avgLoss

	return 100 - 100/(1+rs)
}
