package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// SMA is a simple moving average of close or volume written to one column.
type SMA struct {
	name   string
	column types.IndicatorName
	period int
	source func([]types.Bar) []float64
}

// NewSMA averages closes over period into column.
func NewSMA(column types.IndicatorName, period int) *SMA {
	return &SMA{
		name:   string(column),
		column: column,
		period: period,
		source: closes,
	}
}

// NewVolumeSMA averages volume over period.
func NewVolumeSMA(period int) *SMA {
	return &SMA{
		name:   string(types.IndicatorVolumeSMA),
		column: types.IndicatorVolumeSMA,
		period: period,
		source: volumes,
	}
}

func (s *SMA) Name() string {
	return s.name
}

func (s *SMA) Columns() []types.IndicatorName {
	return []types.IndicatorName{s.column}
}

func (s *SMA) Lookback() int {
	return s.period - 1
}

func (s *SMA) Calculate(bars []types.Bar, rows []types.IndicatorRow) error {
	values := rollingSMA(s.source(bars), s.period)
	for i := range rows {
		rows[i].Set(s.column, toOption(values[i]))
	}

	return nil
}
