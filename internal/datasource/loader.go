package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// LoadBars collects the bars of ds. Timestamps must be strictly increasing.
func LoadBars(ds DataSource, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.Bar, error) {
	bars := []types.Bar{}

	for bar, err := range ds.ReadAll(start, end) {
		if err != nil {
			return nil, err
		}

		if n := len(bars); n > 0 && !bar.Time.After(bars[n-1].Time) {
			return nil, errors.Newf(errors.ErrCodeUnorderedTimestamps, "bar %d at %s does not follow bar %d at %s",
				bar.Index, bar.Time.Format(time.RFC3339), n-1, bars[n-1].Time.Format(time.RFC3339))
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

// LoadSignalRows collects the signal rows of ds under the same ordering rule as LoadBars.
func LoadSignalRows(ds DataSource, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.SignalRow, error) {
	rows := []types.SignalRow{}

	for row, err := range ds.ReadSignals(start, end) {
		if err != nil {
			return nil, err
		}

		if n := len(rows); n > 0 && !row.Bar.Time.After(rows[n-1].Bar.Time) {
			return nil, errors.Newf(errors.ErrCodeUnorderedTimestamps, "row %d does not follow row %d in time", row.Bar.Index, n-1)
		}

		rows = append(rows, row)
	}

	return rows, nil
}
