package types

import (
	"github.com/moznion/go-optional"
)

// IndicatorName identifies one indicator column.
type IndicatorName string

const (
	IndicatorATR         IndicatorName = "atr"
	IndicatorSMAFast     IndicatorName = "sma_fast"
	IndicatorSMAMid      IndicatorName = "sma_mid"
	IndicatorSMASlow     IndicatorName = "sma_slow"
	IndicatorRSI         IndicatorName = "rsi"
	IndicatorMACD        IndicatorName = "macd"
	IndicatorMACDSignal  IndicatorName = "macd_signal"
	IndicatorMACDHist    IndicatorName = "macd_hist"
	IndicatorBBUpper     IndicatorName = "bb_upper"
	IndicatorBBMiddle    IndicatorName = "bb_middle"
	IndicatorBBLower     IndicatorName = "bb_lower"
	IndicatorVolumeSMA   IndicatorName = "volume_sma"
	IndicatorPriceChange IndicatorName = "price_change"
	IndicatorVolatility  IndicatorName = "volatility"
)

// AllIndicators lists every column in output order.
var AllIndicators = []IndicatorName{
	IndicatorATR,
	IndicatorSMAFast,
	IndicatorSMAMid,
	IndicatorSMASlow,
	IndicatorRSI,
	IndicatorMACD,
	IndicatorMACDSignal,
	IndicatorMACDHist,
	IndicatorBBUpper,
	IndicatorBBMiddle,
	IndicatorBBLower,
	IndicatorVolumeSMA,
	IndicatorPriceChange,
	IndicatorVolatility,
}

// IndicatorRow holds the indicator values for one bar. A value is None until enough
// history exists to compute it.
type IndicatorRow struct {
	Index       int
	ATR         optional.Option[float64]
	SMAFast     optional.Option[float64]
	SMAMid      optional.Option[float64]
	SMASlow     optional.Option[float64]
	RSI         optional.Option[float64]
	MACD        optional.Option[float64]
	MACDSignal  optional.Option[float64]
	MACDHist    optional.Option[float64]
	BBUpper     optional.Option[float64]
	BBMiddle    optional.Option[float64]
	BBLower     optional.Option[float64]
	VolumeSMA   optional.Option[float64]
	PriceChange optional.Option[float64]
	Volatility  optional.Option[float64]
}

// NewIndicatorRow returns a row with every value undefined.
func NewIndicatorRow(index int) IndicatorRow {
	return IndicatorRow{Index: index}
}

func (r *IndicatorRow) field(name IndicatorName) *optional.Option[float64] {
	switch name {
	case IndicatorATR:
		return &r.ATR
	case IndicatorSMAFast:
		return &r.SMAFast
	case IndicatorSMAMid:
		return &r.SMAMid
	case IndicatorSMASlow:
		return &r.SMASlow
	case IndicatorRSI:
		return &r.RSI
	case IndicatorMACD:
		return &r.MACD
	case IndicatorMACDSignal:
		return &r.MACDSignal
	case IndicatorMACDHist:
		return &r.MACDHist
	case IndicatorBBUpper:
		return &r.BBUpper
	case IndicatorBBMiddle:
		return &r.BBMiddle
	case IndicatorBBLower:
		return &r.BBLower
	case IndicatorVolumeSMA:
		return &r.VolumeSMA
	case IndicatorPriceChange:
		return &r.PriceChange
	case IndicatorVolatility:
		return &r.Volatility
	default:
		return nil
	}
}

// Get returns the value for name, or None for an unknown name.
func (r IndicatorRow) Get(name IndicatorName) optional.Option[float64] {
	f := r.field(name)
	if f == nil {
		return optional.None[float64]()
	}

	return *f
}

// Set assigns the value for name. Unknown names are ignored and reported as false.
func (r *IndicatorRow) Set(name IndicatorName, value optional.Option[float64]) bool {
	f := r.field(name)
	if f == nil {
		return false
	}

	*f = value

	return true
}

// AllDefined reports whether every named value is present.
func (r IndicatorRow) AllDefined(names ...IndicatorName) bool {
	for _, name := range names {
		if r.Get(name).IsNone() {
			return false
		}
	}

	return true
}
