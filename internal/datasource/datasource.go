package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// DataSource reads an OHLCV series, and optionally its signal columns, from a
// csv or parquet file.
type DataSource interface {
	// Initialize opens the file at path. The format is chosen by extension.
	Initialize(path string) error
	// ReadAll yields bars ordered by time. Non-numeric prices are yielded as NaN.
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.Bar, error) bool)
	// ReadSignals yields bars with their signal and trade_type columns.
	ReadSignals(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.SignalRow, error) bool)
	// Count returns the number of rows in the range.
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close releases the underlying database.
	Close() error
}
