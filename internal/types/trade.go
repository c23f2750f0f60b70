package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExitReason describes why the backtester closed a trade.
type ExitReason string

const (
	ExitReasonSignal    ExitReason = "signal"
	ExitReasonReversal  ExitReason = "reversal"
	ExitReasonEndOfData ExitReason = "end_of_data"
)

// Trade is one round trip produced by the backtester.
type Trade struct {
	Symbol     string        `csv:"symbol"`
	Side       PositionState `csv:"side"`
	EntryIndex int           `csv:"entry_index"`
	ExitIndex  int           `csv:"exit_index"`
	EntryTime  time.Time     `csv:"entry_time"`
	ExitTime   time.Time     `csv:"exit_time"`
	EntryPrice float64       `csv:"entry_price"`
	ExitPrice  float64       `csv:"exit_price"`
	Quantity   float64       `csv:"quantity"`
	// PnL is (exit - entry) * quantity for a long and (entry - exit) * quantity for a short.
	PnL        decimal.Decimal `csv:"pnl"`
	ExitReason ExitReason      `csv:"exit_reason"`
}

// Pnl returns the trade PnL as a float.
func (t Trade) Pnl() float64 {
	pnl, _ := t.PnL.Float64()

	return pnl
}

// ReturnPct returns the trade return relative to the entry notional.
func (t Trade) ReturnPct() float64 {
	notional := decimal.NewFromFloat(t.EntryPrice).Mul(decimal.NewFromFloat(t.Quantity))
	if notional.IsZero() {
		return 0
	}

	ret, _ := t.PnL.Div(notional).Float64()

	return ret
}

// HoldingBars is the number of bars between entry and exit.
func (t Trade) HoldingBars() int {
	return t.ExitIndex - t.EntryIndex
}
