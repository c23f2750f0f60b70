// Package backtest replays a signal table against its prices and reports the
// resulting trades and statistics.
package backtest

import (
	"math"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/datasource"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultPeriodsPerYear annualizes the Sharpe ratio of daily bars.
const DefaultPeriodsPerYear = 365

type Config struct {
	Symbol string
	// SignalDataPath is the signal table with signal and trade_type columns.
	SignalDataPath string
	// MasterDataPath supplies the prices trades are filled at. Empty means SignalDataPath.
	MasterDataPath string
	// Compound sizes each position from current equity instead of the initial capital.
	Compound       bool
	PeriodsPerYear int
}

type Backtester struct {
	config Config
	rows   []types.SignalRow
	prices []types.Bar
	logger *logger.Logger

	computed       bool
	initialCapital float64
	trades         []types.Trade
	equity         []float64
}

// NewBacktester loads the signal table and the master prices through ds.
func NewBacktester(config Config, ds datasource.DataSource, log *logger.Logger) (*Backtester, error) {
	if config.SignalDataPath == "" {
		return nil, errors.New(errors.ErrCodeBacktestConfigError, "signal data path is required")
	}

	if err := ds.Initialize(config.SignalDataPath); err != nil {
		return nil, err
	}

	rows, err := datasource.LoadSignalRows(ds, optional.None[time.Time](), optional.None[time.Time]())
	if err != nil {
		return nil, err
	}

	prices := signalBars(rows)

	if config.MasterDataPath != "" && config.MasterDataPath != config.SignalDataPath {
		if err := ds.Initialize(config.MasterDataPath); err != nil {
			return nil, err
		}

		prices, err = datasource.LoadBars(ds, optional.None[time.Time](), optional.None[time.Time]())
		if err != nil {
			return nil, err
		}

		if err := alignPrices(rows, prices); err != nil {
			return nil, err
		}
	}

	return newBacktester(config, rows, prices, log), nil
}

// NewBacktesterFromRows uses the bars of rows as the master prices.
func NewBacktesterFromRows(symbol string, rows []types.SignalRow, compound bool, log *logger.Logger) *Backtester {
	config := Config{
		Symbol:   symbol,
		Compound: compound,
	}

	return newBacktester(config, rows, signalBars(rows), log)
}

func newBacktester(config Config, rows []types.SignalRow, prices []types.Bar, log *logger.Logger) *Backtester {
	if config.PeriodsPerYear <= 0 {
		config.PeriodsPerYear = DefaultPeriodsPerYear
	}

	return &Backtester{
		config: config,
		rows:   rows,
		prices: prices,
		logger: log,
	}
}

func signalBars(rows []types.SignalRow) []types.Bar {
	bars := make([]types.Bar, len(rows))
	for i, row := range rows {
		bars[i] = row.Bar
	}

	return bars
}

func alignPrices(rows []types.SignalRow, prices []types.Bar) error {
	if len(rows) != len(prices) {
		return errors.Newf(errors.ErrCodeMisalignedRows, "signal table has %d rows but master data has %d", len(rows), len(prices))
	}

	for i := range rows {
		if !rows[i].Bar.Time.Equal(prices[i].Time) {
			return errors.Newf(errors.ErrCodeMisalignedRows, "row %d: signal time %s does not match master time %s",
				i, rows[i].Bar.Time.Format(time.RFC3339), prices[i].Time.Format(time.RFC3339))
		}
	}

	return nil
}

type openPosition struct {
	side     types.PositionState
	index    int
	price    float64
	quantity float64
}

// ComputeTrades fills every signal at the bar's close. Positions still open on the
// last bar are closed there.
func (b *Backtester) ComputeTrades(initialCapital float64) ([]types.Trade, error) {
	if initialCapital <= 0 || math.IsNaN(initialCapital) {
		return nil, errors.Newf(errors.ErrCodeBacktestConfigError, "initial capital must be positive, got %v", initialCapital)
	}

	if len(b.rows) == 0 {
		return nil, errors.New(errors.ErrCodeBacktestNoSignals, "signal table is empty")
	}

	trades := []types.Trade{}
	equity := make([]float64, len(b.rows))
	realized := decimal.NewFromFloat(initialCapital)
	position := optional.None[openPosition]()

	open := func(side types.PositionState, i int, price float64) error {
		base := initialCapital
		if b.config.Compound {
			base, _ = realized.Float64()
		}

		if base <= 0 {
			return errors.Newf(errors.ErrCodeBacktestInvalidTrade, "row %d: cannot open %s with equity %v", i, side, base)
		}

		position = optional.Some(openPosition{side: side, index: i, price: price, quantity: base / price})

		return nil
	}

	closeAt := func(i int, price float64, reason types.ExitReason) {
		p := position.Unwrap()
		trade := b.trade(p, i, price, reason)
		realized = realized.Add(trade.PnL)
		trades = append(trades, trade)
		position = optional.None[openPosition]()

		b.logger.Debug("Closed trade",
			zap.Int("entry_index", trade.EntryIndex),
			zap.Int("exit_index", trade.ExitIndex),
			zap.String("side", trade.Side.String()),
			zap.String("pnl", trade.PnL.StringFixed(2)),
		)
	}

	for i, row := range b.rows {
		price := b.prices[i].Close

		if row.Record.IsSignal() || row.Record.TradeType != types.TradeTypeHold {
			if math.IsNaN(price) || price <= 0 {
				return nil, errors.Newf(errors.ErrCodeBacktestInvalidTrade, "row %d: cannot fill %s at price %v", i, row.Record.TradeType, price)
			}

			side := types.PositionFlat
			if position.IsSome() {
				side = position.Unwrap().side
			}

			var err error

			switch {
			case row.Record.TradeType == types.TradeTypeLong && side == types.PositionFlat:
				err = open(types.PositionLong, i, price)
			case row.Record.TradeType == types.TradeTypeShort && side == types.PositionFlat:
				err = open(types.PositionShort, i, price)
			case row.Record.TradeType == types.TradeTypeCloseLong && side == types.PositionLong:
				closeAt(i, price, types.ExitReasonSignal)
			case row.Record.TradeType == types.TradeTypeCloseShort && side == types.PositionShort:
				closeAt(i, price, types.ExitReasonSignal)
			case row.Record.TradeType == types.TradeTypeReverseLongToShort && side == types.PositionLong:
				closeAt(i, price, types.ExitReasonReversal)
				err = open(types.PositionShort, i, price)
			case row.Record.TradeType == types.TradeTypeReverseShortToLong && side == types.PositionShort:
				closeAt(i, price, types.ExitReasonReversal)
				err = open(types.PositionLong, i, price)
			default:
				err = errors.Newf(errors.ErrCodeBacktestInvalidTrade, "row %d: %s is not valid from %s", i, row.Record.TradeType, side)
			}

			if err != nil {
				return nil, err
			}
		}

		equity[i] = markToMarket(realized, position, price)
	}

	if position.IsSome() {
		last := len(b.rows) - 1
		closeAt(last, b.prices[last].Close, types.ExitReasonEndOfData)
		equity[last], _ = realized.Float64()
	}

	b.computed = true
	b.initialCapital = initialCapital
	b.trades = trades
	b.equity = equity

	b.logger.Info("Computed trades",
		zap.String("symbol", b.config.Symbol),
		zap.Int("trades", len(trades)),
		zap.Bool("compound", b.config.Compound),
	)

	return trades, nil
}

func (b *Backtester) trade(p openPosition, exitIndex int, exitPrice float64, reason types.ExitReason) types.Trade {
	quantity := decimal.NewFromFloat(p.quantity)
	move := decimal.NewFromFloat(exitPrice).Sub(decimal.NewFromFloat(p.price))

	if p.side == types.PositionShort {
		move = move.Neg()
	}

	return types.Trade{
		Symbol:     b.config.Symbol,
		Side:       p.side,
		EntryIndex: p.index,
		ExitIndex:  exitIndex,
		EntryTime:  b.prices[p.index].Time,
		ExitTime:   b.prices[exitIndex].Time,
		EntryPrice: p.price,
		ExitPrice:  exitPrice,
		Quantity:   p.quantity,
		PnL:        move.Mul(quantity),
		ExitReason: reason,
	}
}

// markToMarket values realized equity plus the open position at price. A bar with
// no usable price carries the realized value.
func markToMarket(realized decimal.Decimal, position optional.Option[openPosition], price float64) float64 {
	if position.IsNone() || math.IsNaN(price) {
		value, _ := realized.Float64()

		return value
	}

	p := position.Unwrap()
	move := decimal.NewFromFloat(price).Sub(decimal.NewFromFloat(p.price))

	if p.side == types.PositionShort {
		move = move.Neg()
	}

	value, _ := realized.Add(move.Mul(decimal.NewFromFloat(p.quantity))).Float64()

	return value
}

// Trades returns the result of the last ComputeTrades call.
func (b *Backtester) Trades() []types.Trade {
	return b.trades
}

// EquityCurve returns the mark-to-market equity per row.
func (b *Backtester) EquityCurve() []float64 {
	return b.equity
}
