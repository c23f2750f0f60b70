package signal

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Confirmations are the boolean readings of bar i. They use only bar i,
// indicator row i and indicator row i-1.
type Confirmations struct {
	Close float64
	ATR   float64
	RSI   float64

	TrendBullish bool
	TrendBearish bool
	// CrossUp is the mid SMA crossing above the slow SMA between i-1 and i.
	CrossUp   bool
	CrossDown bool

	MACDBullish bool
	MACDBearish bool

	VolumeSurge bool
	VolumeFloor bool

	AboveFastSMA bool
	BelowFastSMA bool

	AboveBandMiddle bool
	BelowBandMiddle bool
	AboveLowerBand  bool
	BelowUpperBand  bool
}

// value reads an indicator as NaN when undefined so every comparison against it is false.
func value(v optional.Option[float64]) float64 {
	return v.TakeOr(math.NaN())
}

// NewConfirmations evaluates bar against row and the previous row, if any.
func NewConfirmations(bar types.Bar, row types.IndicatorRow, prev optional.Option[types.IndicatorRow], config Config) Confirmations {
	smaFast := value(row.SMAFast)
	smaMid := value(row.SMAMid)
	smaSlow := value(row.SMASlow)
	macd := value(row.MACD)
	macdSignal := value(row.MACDSignal)
	volumeSMA := value(row.VolumeSMA)
	bbMiddle := value(row.BBMiddle)
	bbUpper := value(row.BBUpper)
	bbLower := value(row.BBLower)

	c := Confirmations{
		Close: bar.Close,
		ATR:   value(row.ATR),
		RSI:   value(row.RSI),

		TrendBullish: smaFast > smaMid && smaMid > smaSlow,
		TrendBearish: smaFast < smaMid && smaMid < smaSlow,

		MACDBullish: macd > macdSignal,
		MACDBearish: macd < macdSignal,

		VolumeSurge: bar.Volume > volumeSMA*config.VolumeSurgeRatio,
		VolumeFloor: bar.Volume > volumeSMA*config.VolumeFloorRatio,

		AboveFastSMA: bar.Close > smaFast,
		BelowFastSMA: bar.Close < smaFast,

		AboveBandMiddle: bar.Close > bbMiddle,
		BelowBandMiddle: bar.Close < bbMiddle,
		AboveLowerBand:  bar.Close > bbLower*(1+config.BandTolerance),
		BelowUpperBand:  bar.Close < bbUpper*(1-config.BandTolerance),
	}

	if p, err := prev.Take(); err == nil {
		prevMid := value(p.SMAMid)
		prevSlow := value(p.SMASlow)

		c.CrossUp = smaMid > smaSlow && prevMid <= prevSlow
		c.CrossDown = smaMid < smaSlow && prevMid >= prevSlow
	}

	return c
}

func count(conditions ...bool) int {
	n := 0

	for _, c := range conditions {
		if c {
			n++
		}
	}

	return n
}
