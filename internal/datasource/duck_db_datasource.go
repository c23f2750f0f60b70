package datasource

import (
	"database/sql"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

// DefaultTimeColumn is the timestamp column read when none is configured.
const DefaultTimeColumn = "time"

type DuckDBDataSource struct {
	db         *sql.DB
	logger     *logger.Logger
	sq         squirrel.StatementBuilderType
	timeColumn string
}

// NewDataSource opens an in-memory DuckDB database. timeColumn names the
// timestamp column of the files it will read.
func NewDataSource(timeColumn string, logger *logger.Logger) (*DuckDBDataSource, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB", err)
	}

	if timeColumn == "" {
		timeColumn = DefaultTimeColumn
	}

	return &DuckDBDataSource{
		db:         db,
		logger:     logger,
		sq:         squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		timeColumn: timeColumn,
	}, nil
}

// Initialize implements DataSource.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	reader, err := readerFor(path)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`DROP VIEW IF EXISTS market_data;`)
	if err != nil {
		return fmt.Errorf("failed to drop existing view: %w", err)
	}

	// squirrel has no CREATE VIEW
	query := fmt.Sprintf(`
		CREATE VIEW market_data AS
		SELECT * FROM %s;
	`, reader)

	if _, err = d.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read %s", path)
	}

	return nil
}

func readerFor(path string) (string, error) {
	quoted := strings.ReplaceAll(path, "'", "''")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return fmt.Sprintf("read_csv_auto('%s', header = true)", quoted), nil
	case ".parquet", ".pq":
		return fmt.Sprintf("read_parquet('%s')", quoted), nil
	default:
		return "", errors.Newf(errors.ErrCodeDataSourceUnavailable, "unsupported data file %s: expected .csv or .parquet", path)
	}
}

func (d *DuckDBDataSource) timeExpr() string {
	return fmt.Sprintf(`CAST("%s" AS TIMESTAMP)`, d.timeColumn)
}

func (d *DuckDBDataSource) withRange(query squirrel.SelectBuilder, start, end optional.Option[time.Time]) squirrel.SelectBuilder {
	if start.IsSome() {
		query = query.Where(squirrel.Expr(d.timeExpr()+" >= ?", start.Unwrap()))
	}

	if end.IsSome() {
		query = query.Where(squirrel.Expr(d.timeExpr()+" <= ?", end.Unwrap()))
	}

	return query
}

func (d *DuckDBDataSource) barColumns() []string {
	return []string{
		d.timeExpr() + " AS bar_time",
		"TRY_CAST(open AS DOUBLE) AS open",
		"TRY_CAST(high AS DOUBLE) AS high",
		"TRY_CAST(low AS DOUBLE) AS low",
		"TRY_CAST(close AS DOUBLE) AS close",
		"TRY_CAST(volume AS DOUBLE) AS volume",
	}
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	query, args, err := d.withRange(d.sq.Select("COUNT(*)").From("market_data"), start, end).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err := d.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count market data", err)
	}

	return count, nil
}

// ReadAll implements DataSource.
func (d *DuckDBDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.Bar, error) bool) {
	return func(yield func(types.Bar, error) bool) {
		d.logger.Debug("Reading bars from DuckDB")

		builder := d.withRange(d.sq.Select(d.barColumns()...).From("market_data"), start, end).OrderBy("bar_time ASC")

		rows, err := d.query(builder)
		if err != nil {
			yield(types.Bar{}, err)

			return
		}
		defer rows.Close()

		index := 0

		for rows.Next() {
			bar, err := scanBar(rows, index)
			if err != nil {
				yield(types.Bar{}, err)

				return
			}

			if !yield(bar, nil) {
				return
			}

			index++
		}

		if err := rows.Err(); err != nil {
			yield(types.Bar{}, fmt.Errorf("error iterating rows: %w", err))
		}
	}
}

// ReadSignals implements DataSource. A missing signal reads as HOLD.
func (d *DuckDBDataSource) ReadSignals(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.SignalRow, error) bool) {
	return func(yield func(types.SignalRow, error) bool) {
		d.logger.Debug("Reading signals from DuckDB")

		columns := append(d.barColumns(),
			"TRY_CAST(signal AS INTEGER) AS signal",
			"CAST(trade_type AS VARCHAR) AS trade_type",
		)

		builder := d.withRange(d.sq.Select(columns...).From("market_data"), start, end).OrderBy("bar_time ASC")

		rows, err := d.query(builder)
		if err != nil {
			yield(types.SignalRow{}, err)

			return
		}
		defer rows.Close()

		index := 0

		for rows.Next() {
			row, err := scanSignalRow(rows, index)
			if err != nil {
				yield(types.SignalRow{}, err)

				return
			}

			if !yield(row, nil) {
				return
			}

			index++
		}

		if err := rows.Err(); err != nil {
			yield(types.SignalRow{}, fmt.Errorf("error iterating rows: %w", err))
		}
	}
}

func (d *DuckDBDataSource) query(builder squirrel.SelectBuilder) (*sql.Rows, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query market data", err)
	}

	return rows, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}

func nanIfNull(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}

	return v.Float64
}

func scanBar(rows *sql.Rows, index int) (types.Bar, error) {
	var (
		timestamp                      sql.NullTime
		open, high, low, close, volume sql.NullFloat64
	)

	if err := rows.Scan(&timestamp, &open, &high, &low, &close, &volume); err != nil {
		return types.Bar{}, fmt.Errorf("failed to scan row: %w", err)
	}

	if !timestamp.Valid {
		return types.Bar{}, errors.NewDataError("row %d has no timestamp", index)
	}

	return types.Bar{
		Index:  index,
		Time:   timestamp.Time,
		Open:   nanIfNull(open),
		High:   nanIfNull(high),
		Low:    nanIfNull(low),
		Close:  nanIfNull(close),
		Volume: nanIfNull(volume),
	}, nil
}

func scanSignalRow(rows *sql.Rows, index int) (types.SignalRow, error) {
	var (
		timestamp                      sql.NullTime
		open, high, low, close, volume sql.NullFloat64
		signal                         sql.NullInt64
		tradeType                      sql.NullString
	)

	if err := rows.Scan(&timestamp, &open, &high, &low, &close, &volume, &signal, &tradeType); err != nil {
		return types.SignalRow{}, fmt.Errorf("failed to scan row: %w", err)
	}

	if !timestamp.Valid {
		return types.SignalRow{}, errors.NewDataError("row %d has no timestamp", index)
	}

	record := types.Hold(index)

	if signal.Valid {
		record.Signal = types.SignalCode(signal.Int64)
		if !record.Signal.Valid() {
			return types.SignalRow{}, errors.NewDataError("row %d has signal %d outside [-2, 2]", index, signal.Int64)
		}
	}

	if tradeType.Valid && tradeType.String != "" {
		parsed, ok := types.ParseTradeType(tradeType.String)
		if !ok {
			return types.SignalRow{}, errors.NewDataError("row %d has unknown trade_type %q", index, tradeType.String)
		}

		record.TradeType = parsed
	}

	return types.SignalRow{
		Bar: types.Bar{
			Index:  index,
			Time:   timestamp.Time,
			Open:   nanIfNull(open),
			High:   nanIfNull(high),
			Low:    nanIfNull(low),
			Close:  nanIfNull(close),
			Volume: nanIfNull(volume),
		},
		Indicators: types.NewIndicatorRow(index),
		Record:     record,
	}, nil
}
