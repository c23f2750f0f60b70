package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-signal/internal/types"
)

// ATR is the Average True Range with Wilder smoothing.
// True range needs the previous close, so the first value is at index period.
type ATR struct {
	period int
}

func NewATR(period int) *ATR {
	return &ATR{period: period}
}

func (a *ATR) Name() string {
	return string(types.IndicatorATR)
}

func (a *ATR) Columns() []types.IndicatorName {
	return []types.IndicatorName{types.IndicatorATR}
}

func (a *ATR) Lookback() int {
	return a.period
}

func (a *ATR) Calculate(bars []types.Bar, rows []types.IndicatorRow) error {
	values := wilderSeries(trueRange(bars), a.period)
	for i := range rows {
		rows[i].ATR = toOption(values[i])
	}

	return nil
}

// trueRange is max(high-low, |high-prevClose|, |low-prevClose|), undefined at index 0.
func trueRange(bars []types.Bar) []float64 {
	out := undefinedSeries(len(bars))

	for i := 1; i < len(bars); i++ {
		high := bars[i].High
		low := bars[i].Low
		prevClose := bars[i-1].Close

		if !defined(high) || !defined(low) || !defined(prevClose) {
			continue
		}

		out[i] = math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
	}

	return out
}
