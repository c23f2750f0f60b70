package indicator

import (
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Config holds the periods of every indicator column.
type Config struct {
	ATRPeriod        int     `yaml:"atr_period" json:"atr_period" jsonschema:"title=ATR Period,default=14" validate:"gt=0"`
	SMAFastPeriod    int     `yaml:"sma_fast_period" json:"sma_fast_period" jsonschema:"title=Fast SMA Period,default=20" validate:"gt=0"`
	SMAMidPeriod     int     `yaml:"sma_mid_period" json:"sma_mid_period" jsonschema:"title=Mid SMA Period,default=50" validate:"gt=0"`
	SMASlowPeriod    int     `yaml:"sma_slow_period" json:"sma_slow_period" jsonschema:"title=Slow SMA Period,default=200" validate:"gt=0"`
	RSIPeriod        int     `yaml:"rsi_period" json:"rsi_period" jsonschema:"title=RSI Period,default=14" validate:"gt=0"`
	MACDFast         int     `yaml:"macd_fast" json:"macd_fast" jsonschema:"title=MACD Fast Period,default=12" validate:"gt=0"`
	MACDSlow         int     `yaml:"macd_slow" json:"macd_slow" jsonschema:"title=MACD Slow Period,default=26" validate:"gt=0"`
	MACDSignal       int     `yaml:"macd_signal" json:"macd_signal" jsonschema:"title=MACD Signal Period,default=9" validate:"gt=0"`
	BollingerPeriod  int     `yaml:"bollinger_period" json:"bollinger_period" jsonschema:"title=Bollinger Period,default=20" validate:"gt=0"`
	BollingerStdDev  float64 `yaml:"bollinger_std_dev" json:"bollinger_std_dev" jsonschema:"title=Bollinger Std Dev,default=2" validate:"gt=0"`
	VolumeSMAPeriod  int     `yaml:"volume_sma_period" json:"volume_sma_period" jsonschema:"title=Volume SMA Period,default=20" validate:"gt=0"`
	VolatilityPeriod int     `yaml:"volatility_period" json:"volatility_period" jsonschema:"title=Volatility Period,default=14" validate:"gt=1"`
}

// DefaultConfig returns the standard indicator periods.
func DefaultConfig() Config {
	return Config{
		ATRPeriod:        14,
		SMAFastPeriod:    20,
		SMAMidPeriod:     50,
		SMASlowPeriod:    200,
		RSIPeriod:        14,
		MACDFast:         12,
		MACDSlow:         26,
		MACDSignal:       9,
		BollingerPeriod:  20,
		BollingerStdDev:  2.0,
		VolumeSMAPeriod:  20,
		VolatilityPeriod: 14,
	}
}

// Validate checks every period is usable.
func (c Config) Validate() error {
	periods := []struct {
		name  string
		value int
	}{
		{"atr_period", c.ATRPeriod},
		{"sma_fast_period", c.SMAFastPeriod},
		{"sma_mid_period", c.SMAMidPeriod},
		{"sma_slow_period", c.SMASlowPeriod},
		{"rsi_period", c.RSIPeriod},
		{"macd_fast", c.MACDFast},
		{"macd_slow", c.MACDSlow},
		{"macd_signal", c.MACDSignal},
		{"bollinger_period", c.BollingerPeriod},
		{"volume_sma_period", c.VolumeSMAPeriod},
	}

	for _, p := range periods {
		if p.value <= 0 {
			return errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", p.name, p.value)
		}
	}

	// sample std needs at least two observations
	if c.VolatilityPeriod < 2 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "volatility_period must be at least 2, got %d", c.VolatilityPeriod)
	}

	if c.MACDFast >= c.MACDSlow {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "macd_fast (%d) must be less than macd_slow (%d)", c.MACDFast, c.MACDSlow)
	}

	if c.BollingerStdDev <= 0 {
		return errors.Newf(errors.ErrCodeInvalidMultiplier, "bollinger_std_dev must be positive, got %v", c.BollingerStdDev)
	}

	return nil
}
