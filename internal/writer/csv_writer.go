package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

// CSVWriter writes the signal table as csv. Undefined values are empty cells.
type CSVWriter struct {
	path   string
	logger *logger.Logger
}

func NewCSVWriter(path string, log *logger.Logger) *CSVWriter {
	return &CSVWriter{
		path:   path,
		logger: log,
	}
}

// Path implements SignalTableWriter.
func (w *CSVWriter) Path() string {
	return w.path
}

// Write implements SignalTableWriter.
func (w *CSVWriter) Write(rows []types.SignalRow) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to create output directory", err)
	}

	file, err := os.Create(w.path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to create signal table", err)
	}
	defer file.Close()

	out := csv.NewWriter(file)

	if err := out.Write(Columns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		if err := out.Write(csvRecord(row)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.Bar.Index, err)
		}
	}

	out.Flush()

	if err := out.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to flush signal table", err)
	}

	w.logger.Info("Wrote signal table", zap.String("path", w.path), zap.Int("rows", len(rows)))

	return nil
}

func csvRecord(row types.SignalRow) []string {
	record := []string{
		row.Bar.Time.UTC().Format(TimeLayout),
		formatFloat(row.Bar.Open),
		formatFloat(row.Bar.High),
		formatFloat(row.Bar.Low),
		formatFloat(row.Bar.Close),
		formatFloat(row.Bar.Volume),
	}

	for _, name := range types.AllIndicators {
		record = append(record, formatOption(row.Indicators.Get(name)))
	}

	return append(record, strconv.Itoa(int(row.Record.Signal)), string(row.Record.TradeType))
}
