package signal

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

func bar(i int, close float64) types.Bar {
	return types.Bar{
		Index:  i,
		Time:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		Open:   close,
		High:   close + 0.5,
		Low:    close - 0.5,
		Close:  close,
		Volume: 1000,
	}
}

// neutralRow has every column defined with no trend, crossover or MACD reading.
func neutralRow(i int) types.IndicatorRow {
	return types.IndicatorRow{
		Index:       i,
		ATR:         optional.Some(1.0),
		SMAFast:     optional.Some(100.0),
		SMAMid:      optional.Some(100.0),
		SMASlow:     optional.Some(100.0),
		RSI:         optional.Some(50.0),
		MACD:        optional.Some(0.0),
		MACDSignal:  optional.Some(0.0),
		MACDHist:    optional.Some(0.0),
		BBUpper:     optional.Some(102.0),
		BBMiddle:    optional.Some(100.0),
		BBLower:     optional.Some(98.0),
		VolumeSMA:   optional.Some(1000.0),
		PriceChange: optional.Some(0.0),
		Volatility:  optional.Some(0.0),
	}
}

// bullishCrossRow has the mid SMA above the slow SMA and MACD above its signal.
func bullishCrossRow(i int) types.IndicatorRow {
	row := neutralRow(i)
	row.SMAMid = optional.Some(101.0)
	row.MACD = optional.Some(0.5)

	return row
}

// bearishCrossRow has the mid SMA below the slow SMA and MACD below its signal.
func bearishCrossRow(i int) types.IndicatorRow {
	row := neutralRow(i)
	row.SMAMid = optional.Some(99.0)
	row.MACD = optional.Some(-0.5)

	return row
}

func simpleConfig(warmup int) Config {
	config := DefaultConfig(VariantSimple)
	config.WarmupOffset = optional.Some(warmup)

	return config
}
