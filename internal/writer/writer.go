package writer

import (
	"math"
	"strconv"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Format is the file format of a signal table.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// AllFormats is used for the config schema enum.
var AllFormats = []any{FormatCSV, FormatParquet}

// TimeLayout is how timestamps are written to the signal table.
const TimeLayout = "2006-01-02 15:04:05"

// SignalTableWriter persists the joined bar, indicator and signal table.
type SignalTableWriter interface {
	// Write replaces the file at Path with rows.
	Write(rows []types.SignalRow) error
	// Path returns the output file.
	Path() string
}

// NewSignalTableWriter returns the writer for format.
func NewSignalTableWriter(format Format, path string, log *logger.Logger) (SignalTableWriter, error) {
	switch format {
	case FormatCSV, "":
		return NewCSVWriter(path, log), nil
	case FormatParquet:
		return NewParquetWriter(path, log), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported output format %q", format)
	}
}

// Columns returns the signal table header.
func Columns() []string {
	columns := []string{"time", "open", "high", "low", "close", "volume"}
	for _, name := range types.AllIndicators {
		columns = append(columns, string(name))
	}

	return append(columns, "signal", "trade_type")
}

func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOption(v optional.Option[float64]) string {
	if v.IsNone() {
		return ""
	}

	return formatFloat(v.Unwrap())
}

// nullable maps NaN and None to SQL NULL.
func nullable(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return v
}

func nullableOption(v optional.Option[float64]) any {
	if v.IsNone() {
		return nil
	}

	return nullable(v.Unwrap())
}
