package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Provider maps a bar series to an aligned table of indicator rows.
// Row i must depend only on bars[0..i], so computing over a prefix yields the
// same rows as the prefix of the full computation.
type Provider interface {
	// Compute returns one IndicatorRow per bar. It must not mutate bars.
	Compute(bars []types.Bar) ([]types.IndicatorRow, error)
	// Lookback returns the first index at which every row the signal engine reads,
	// including the previous row used by crossovers, is defined.
	Lookback() int
}

// Calculator computes one group of indicator columns in place.
type Calculator interface {
	// Name identifies the calculator in the registry.
	Name() string
	// Columns lists the IndicatorRow columns the calculator writes.
	Columns() []types.IndicatorName
	// Lookback is the first index at which all of its columns can be defined.
	Lookback() int
	// Calculate fills its columns in rows. len(rows) == len(bars).
	Calculate(bars []types.Bar, rows []types.IndicatorRow) error
}
