package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// MACD writes the MACD line, its signal line and the histogram.
// The signal EMA is seeded from the first signalPeriod defined MACD values.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

func NewMACD(fastPeriod, slowPeriod, signalPeriod int) *MACD {
	return &MACD{
		fastPeriod:   fastPeriod,
		slowPeriod:   slowPeriod,
		signalPeriod: signalPeriod,
	}
}

func (m *MACD) Name() string {
	return string(types.IndicatorMACD)
}

func (m *MACD) Columns() []types.IndicatorName {
	return []types.IndicatorName{types.IndicatorMACD, types.IndicatorMACDSignal, types.IndicatorMACDHist}
}

func (m *MACD) Lookback() int {
	return max(m.fastPeriod, m.slowPeriod) - 1 + m.signalPeriod - 1
}

func (m *MACD) Calculate(bars []types.Bar, rows []types.IndicatorRow) error {
	prices := closes(bars)
	line := subtract(emaSeries(prices, m.fastPeriod), emaSeries(prices, m.slowPeriod))
	signal := emaSeries(line, m.signalPeriod)
	hist := subtract(line, signal)

	for i := range rows {
		rows[i].MACD = toOption(line[i])
		rows[i].MACDSignal = toOption(signal[i])
		rows[i].MACDHist = toOption(hist[i])
	}

	return nil
}
