package writer

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

// ParquetWriter stages rows in an in-memory DuckDB table and exports it with COPY.
type ParquetWriter struct {
	path   string
	logger *logger.Logger
}

func NewParquetWriter(path string, log *logger.Logger) *ParquetWriter {
	return &ParquetWriter{
		path:   path,
		logger: log,
	}
}

// Path implements SignalTableWriter.
func (w *ParquetWriter) Path() string {
	return w.path
}

func createTableStatement() string {
	columns := []string{
		"time TIMESTAMP",
		"open DOUBLE",
		"high DOUBLE",
		"low DOUBLE",
		"close DOUBLE",
		"volume DOUBLE",
	}

	for _, name := range types.AllIndicators {
		columns = append(columns, string(name)+" DOUBLE")
	}

	columns = append(columns, "signal INTEGER", "trade_type TEXT")

	return fmt.Sprintf("CREATE TABLE signal_table (%s)", strings.Join(columns, ", "))
}

func insertStatement() string {
	columns := Columns()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")

	return fmt.Sprintf("INSERT INTO signal_table (%s) VALUES (%s)", strings.Join(columns, ", "), placeholders)
}

// Write implements SignalTableWriter.
func (w *ParquetWriter) Write(rows []types.SignalRow) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to create output directory", err)
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	if _, err = db.Exec(createTableStatement()); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(insertStatement())
	if err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("failed to prepare statement: %w", err)
	}

	for _, row := range rows {
		if _, err = stmt.Exec(parquetValues(row)...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()

			return fmt.Errorf("failed to insert row %d: %w", row.Bar.Index, err)
		}
	}

	if err = stmt.Close(); err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("failed to close statement: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	quoted := strings.ReplaceAll(w.path, "'", "''")
	if _, err = db.Exec(fmt.Sprintf(`COPY signal_table TO '%s' (FORMAT PARQUET)`, quoted)); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to export to Parquet", err)
	}

	w.logger.Info("Wrote signal table", zap.String("path", w.path), zap.Int("rows", len(rows)))

	return nil
}

func parquetValues(row types.SignalRow) []any {
	values := []any{
		row.Bar.Time.UTC(),
		nullable(row.Bar.Open),
		nullable(row.Bar.High),
		nullable(row.Bar.Low),
		nullable(row.Bar.Close),
		nullable(row.Bar.Volume),
	}

	for _, name := range types.AllIndicators {
		values = append(values, nullableOption(row.Indicators.Get(name)))
	}

	return append(values, int(row.Record.Signal), string(row.Record.TradeType))
}
