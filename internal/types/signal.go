package types

// PositionState is the engine's position for a single simulation run.
type PositionState int

const (
	PositionFlat PositionState = iota
	PositionLong
	PositionShort
)

func (p PositionState) String() string {
	switch p {
	case PositionLong:
		return "LONG"
	case PositionShort:
		return "SHORT"
	default:
		return "FLAT"
	}
}

// SignalCode is the integer signal column. Its meaning depends on the position it was
// emitted from: +1 enters a long from FLAT but closes a short from SHORT.
type SignalCode int

const (
	SignalReverseToShort SignalCode = -2
	SignalSell           SignalCode = -1
	SignalHold           SignalCode = 0
	SignalBuy            SignalCode = 1
	SignalReverseToLong  SignalCode = 2
)

// Valid reports whether the code is in the domain {-2,-1,0,1,2}.
func (s SignalCode) Valid() bool {
	return s >= SignalReverseToShort && s <= SignalReverseToLong
}

// TradeType is the trade label emitted alongside the signal code.
type TradeType string

const (
	TradeTypeHold               TradeType = "HOLD"
	TradeTypeLong               TradeType = "LONG"
	TradeTypeShort              TradeType = "SHORT"
	TradeTypeCloseLong          TradeType = "CLOSE_LONG"
	TradeTypeCloseShort         TradeType = "CLOSE_SHORT"
	TradeTypeReverseLongToShort TradeType = "REVERSE_LONG_TO_SHORT"
	TradeTypeReverseShortToLong TradeType = "REVERSE_SHORT_TO_LONG"
)

// AllTradeTypes lists every label.
var AllTradeTypes = []TradeType{
	TradeTypeHold,
	TradeTypeLong,
	TradeTypeShort,
	TradeTypeCloseLong,
	TradeTypeCloseShort,
	TradeTypeReverseLongToShort,
	TradeTypeReverseShortToLong,
}

// ParseTradeType returns the label for s and whether it is known.
func ParseTradeType(s string) (TradeType, bool) {
	for _, t := range AllTradeTypes {
		if string(t) == s {
			return t, true
		}
	}

	return TradeTypeHold, false
}

// OpensLong reports whether the label leaves the run in a LONG position.
func (t TradeType) OpensLong() bool {
	return t == TradeTypeLong || t == TradeTypeReverseShortToLong
}

// OpensShort reports whether the label leaves the run in a SHORT position.
func (t TradeType) OpensShort() bool {
	return t == TradeTypeShort || t == TradeTypeReverseLongToShort
}

// SignalRecord is the per-bar engine output.
type SignalRecord struct {
	Index     int        `csv:"index"`
	Signal    SignalCode `csv:"signal"`
	TradeType TradeType  `csv:"trade_type"`
}

// Hold returns the HOLD record for bar index.
func Hold(index int) SignalRecord {
	return SignalRecord{
		Index:     index,
		Signal:    SignalHold,
		TradeType: TradeTypeHold,
	}
}

// IsSignal reports whether the record carries a non-zero signal.
func (r SignalRecord) IsSignal() bool {
	return r.Signal != SignalHold
}

// SignalRow is one row of the output signal table.
type SignalRow struct {
	Bar        Bar
	Indicators IndicatorRow
	Record     SignalRecord
}

// JoinSignalRows zips bars, indicator rows and records into table rows. The slices
// must have equal length.
func JoinSignalRows(bars []Bar, rows []IndicatorRow, records []SignalRecord) []SignalRow {
	n := min(len(bars), len(rows), len(records))
	table := make([]SignalRow, n)

	for i := 0; i < n; i++ {
		table[i] = SignalRow{
			Bar:        bars[i],
			Indicators: rows[i],
			Record:     records[i],
		}
	}

	return table
}
