package signal

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// policy decides entries, reversals and variant-specific exits. The trailing
// stop and profit target exits are shared and applied by the engine.
type policy interface {
	required() []types.IndicatorName
	longEntry(c Confirmations) bool
	shortEntry(c Confirmations) bool
	longReversal(c Confirmations) bool
	shortReversal(c Confirmations) bool
	longExit(c Confirmations) bool
	shortExit(c Confirmations) bool
}

func newPolicy(config Config) policy {
	if config.Variant == VariantSimple {
		return simplePolicy{}
	}

	return enhancedPolicy{config: config}
}

type simplePolicy struct{}

func (simplePolicy) required() []types.IndicatorName {
	return []types.IndicatorName{
		types.IndicatorATR,
		types.IndicatorSMAFast,
		types.IndicatorSMAMid,
		types.IndicatorSMASlow,
		types.IndicatorMACD,
		types.IndicatorMACDSignal,
	}
}

func (simplePolicy) longEntry(c Confirmations) bool {
	return c.CrossUp && c.MACDBullish
}

func (simplePolicy) shortEntry(c Confirmations) bool {
	return c.CrossDown && c.MACDBearish
}

func (simplePolicy) longReversal(c Confirmations) bool {
	return c.CrossDown && c.MACDBearish
}

func (simplePolicy) shortReversal(c Confirmations) bool {
	return c.CrossUp && c.MACDBullish
}

func (simplePolicy) longExit(c Confirmations) bool {
	return c.TrendBearish && c.BelowFastSMA
}

func (simplePolicy) shortExit(c Confirmations) bool {
	return c.TrendBullish && c.AboveFastSMA
}

type enhancedPolicy struct {
	config Config
}

func (enhancedPolicy) required() []types.IndicatorName {
	return []types.IndicatorName{
		types.IndicatorATR,
		types.IndicatorSMAFast,
		types.IndicatorSMAMid,
		types.IndicatorSMASlow,
		types.IndicatorRSI,
		types.IndicatorMACD,
		types.IndicatorMACDSignal,
		types.IndicatorBBUpper,
		types.IndicatorBBMiddle,
		types.IndicatorBBLower,
		types.IndicatorVolumeSMA,
	}
}

func (p enhancedPolicy) longEntry(c Confirmations) bool {
	return count(
		c.CrossUp || (c.TrendBullish && c.AboveFastSMA),
		c.RSI < p.config.RSIOverbought && c.RSI > p.config.RSILongFloor,
		c.MACDBullish,
		c.AboveBandMiddle || c.AboveLowerBand,
		c.VolumeSurge || c.VolumeFloor,
	) >= p.config.MinConfirmations
}

func (p enhancedPolicy) shortEntry(c Confirmations) bool {
	return count(
		c.CrossDown || (c.TrendBearish && c.BelowFastSMA),
		c.RSI > p.config.RSIOversold && c.RSI < p.config.RSIShortCeiling,
		c.MACDBearish,
		c.BelowBandMiddle || c.BelowUpperBand,
		c.VolumeSurge || c.VolumeFloor,
	) >= p.config.MinConfirmations
}

func (p enhancedPolicy) longReversal(c Confirmations) bool {
	return (c.CrossDown && c.MACDBearish && c.RSI < p.config.RSIDivergenceLong) || c.TrendBearish
}

func (p enhancedPolicy) shortReversal(c Confirmations) bool {
	return (c.CrossUp && c.MACDBullish && c.RSI > p.config.RSIDivergenceShort) || c.TrendBullish
}

func (p enhancedPolicy) longExit(c Confirmations) bool {
	return c.RSI > p.config.RSIExtremeOverbought ||
		(c.MACDBearish && c.RSI > p.config.RSIDivergenceLong) ||
		(c.TrendBearish && c.BelowFastSMA)
}

func (p enhancedPolicy) shortExit(c Confirmations) bool {
	return c.RSI < p.config.RSIExtremeOversold ||
		(c.MACDBullish && c.RSI < p.config.RSIDivergenceShort) ||
		(c.TrendBullish && c.AboveFastSMA)
}
