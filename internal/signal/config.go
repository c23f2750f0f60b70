package signal

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Variant selects the entry and exit policy of the engine.
type Variant string

const (
	// VariantSimple enters on a moving-average crossover confirmed by MACD.
	VariantSimple Variant = "simple"
	// VariantEnhanced enters when enough of five confirmations agree.
	VariantEnhanced Variant = "enhanced"
)

// AllVariants lists the supported variants.
var AllVariants = []any{string(VariantSimple), string(VariantEnhanced)}

// Config holds the signal engine parameters.
type Config struct {
	Variant Variant `yaml:"variant" json:"variant" jsonschema:"title=Variant,description=Entry policy of the signal engine,enum=simple,enum=enhanced,default=enhanced"`
	// WarmupOffset is the first bar the engine evaluates. None uses the indicator lookback.
	WarmupOffset optional.Option[int] `yaml:"warmup_offset" json:"warmup_offset" jsonschema:"title=Warm-up Offset,description=First bar index evaluated by the engine"`
	// RejectShortSeries turns a series shorter than the warm-up into a ConfigurationError instead of all HOLD.
	RejectShortSeries      bool    `yaml:"reject_short_series" json:"reject_short_series" jsonschema:"title=Reject Short Series"`
	TrailingStopMultiplier float64 `yaml:"trailing_stop_multiplier" json:"trailing_stop_multiplier" jsonschema:"title=Trailing Stop Multiplier,description=ATR multiple between close and trailing stop"`
	// MinConfirmations is the number of entry confirmations the enhanced variant requires.
	MinConfirmations     int     `yaml:"min_confirmations" json:"min_confirmations" jsonschema:"title=Minimum Confirmations,minimum=1,maximum=5"`
	RSIOverbought        float64 `yaml:"rsi_overbought" json:"rsi_overbought" jsonschema:"minimum=0,maximum=100"`
	RSIOversold          float64 `yaml:"rsi_oversold" json:"rsi_oversold" jsonschema:"minimum=0,maximum=100"`
	RSILongFloor         float64 `yaml:"rsi_long_floor" json:"rsi_long_floor" jsonschema:"minimum=0,maximum=100"`
	RSIShortCeiling      float64 `yaml:"rsi_short_ceiling" json:"rsi_short_ceiling" jsonschema:"minimum=0,maximum=100"`
	RSIExtremeOverbought float64 `yaml:"rsi_extreme_overbought" json:"rsi_extreme_overbought" jsonschema:"minimum=0,maximum=100"`
	RSIExtremeOversold   float64 `yaml:"rsi_extreme_oversold" json:"rsi_extreme_oversold" jsonschema:"minimum=0,maximum=100"`
	RSIDivergenceLong    float64 `yaml:"rsi_divergence_long" json:"rsi_divergence_long" jsonschema:"minimum=0,maximum=100"`
	RSIDivergenceShort   float64 `yaml:"rsi_divergence_short" json:"rsi_divergence_short" jsonschema:"minimum=0,maximum=100"`
	// ProfitTarget closes a position once its return exceeds the fraction. None disables it.
	ProfitTarget     optional.Option[float64] `yaml:"profit_target" json:"profit_target" jsonschema:"title=Profit Target,description=Return fraction that closes a position; 0 disables"`
	VolumeSurgeRatio float64                  `yaml:"volume_surge_ratio" json:"volume_surge_ratio" jsonschema:"minimum=0"`
	VolumeFloorRatio float64                  `yaml:"volume_floor_ratio" json:"volume_floor_ratio" jsonschema:"minimum=0"`
	BandTolerance    float64                  `yaml:"band_tolerance" json:"band_tolerance" jsonschema:"minimum=0,maximum=1"`
}

// DefaultConfig returns the parameters of variant. Unknown variants fall back to enhanced.
func DefaultConfig(variant Variant) Config {
	config := Config{
		Variant:                VariantEnhanced,
		WarmupOffset:           optional.None[int](),
		RejectShortSeries:      false,
		TrailingStopMultiplier: 2.0,
		MinConfirmations:       3,
		RSIOverbought:          70,
		RSIOversold:            30,
		RSILongFloor:           40,
		RSIShortCeiling:        60,
		RSIExtremeOverbought:   75,
		RSIExtremeOversold:     25,
		RSIDivergenceLong:      65,
		RSIDivergenceShort:     35,
		ProfitTarget:           optional.Some(0.15),
		VolumeSurgeRatio:       1.2,
		VolumeFloorRatio:       0.8,
		BandTolerance:          0.01,
	}

	if variant == VariantSimple {
		config.Variant = VariantSimple
		config.TrailingStopMultiplier = 2.5
		config.ProfitTarget = optional.None[float64]()
	}

	return config
}

// UnmarshalYAML fills unset fields from the variant's defaults.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type Config struct {
		Variant                *Variant `yaml:"variant"`
		WarmupOffset           *int     `yaml:"warmup_offset"`
		RejectShortSeries      *bool    `yaml:"reject_short_series"`
		TrailingStopMultiplier *float64 `yaml:"trailing_stop_multiplier"`
		MinConfirmations       *int     `yaml:"min_confirmations"`
		RSIOverbought          *float64 `yaml:"rsi_overbought"`
		RSIOversold            *float64 `yaml:"rsi_oversold"`
		RSILongFloor           *float64 `yaml:"rsi_long_floor"`
		RSIShortCeiling        *float64 `yaml:"rsi_short_ceiling"`
		RSIExtremeOverbought   *float64 `yaml:"rsi_extreme_overbought"`
		RSIExtremeOversold     *float64 `yaml:"rsi_extreme_oversold"`
		RSIDivergenceLong      *float64 `yaml:"rsi_divergence_long"`
		RSIDivergenceShort     *float64 `yaml:"rsi_divergence_short"`
		ProfitTarget           *float64 `yaml:"profit_target"`
		VolumeSurgeRatio       *float64 `yaml:"volume_surge_ratio"`
		VolumeFloorRatio       *float64 `yaml:"volume_floor_ratio"`
		BandTolerance          *float64 `yaml:"band_tolerance"`
	}

	var config Config
	if err := unmarshal(&config); err != nil {
		return err
	}

	variant := VariantEnhanced
	if config.Variant != nil {
		variant = *config.Variant
	}

	*c = DefaultConfig(variant)
	// keep an unknown variant so Validate can report it
	c.Variant = variant

	if config.WarmupOffset != nil {
		c.WarmupOffset = optional.Some(*config.WarmupOffset)
	}

	if config.ProfitTarget != nil {
		if *config.ProfitTarget == 0 {
			c.ProfitTarget = optional.None[float64]()
		} else {
			c.ProfitTarget = optional.Some(*config.ProfitTarget)
		}
	}

	setBool(&c.RejectShortSeries, config.RejectShortSeries)
	setInt(&c.MinConfirmations, config.MinConfirmations)
	setFloat(&c.TrailingStopMultiplier, config.TrailingStopMultiplier)
	setFloat(&c.RSIOverbought, config.RSIOverbought)
	setFloat(&c.RSIOversold, config.RSIOversold)
	setFloat(&c.RSILongFloor, config.RSILongFloor)
	setFloat(&c.RSIShortCeiling, config.RSIShortCeiling)
	setFloat(&c.RSIExtremeOverbought, config.RSIExtremeOverbought)
	setFloat(&c.RSIExtremeOversold, config.RSIExtremeOversold)
	setFloat(&c.RSIDivergenceLong, config.RSIDivergenceLong)
	setFloat(&c.RSIDivergenceShort, config.RSIDivergenceShort)
	setFloat(&c.VolumeSurgeRatio, config.VolumeSurgeRatio)
	setFloat(&c.VolumeFloorRatio, config.VolumeFloorRatio)
	setFloat(&c.BandTolerance, config.BandTolerance)

	return nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// Validate reports a ConfigurationError for unusable parameters.
func (c Config) Validate() error {
	if c.Variant != VariantSimple && c.Variant != VariantEnhanced {
		return errors.Newf(errors.ErrCodeInvalidParameter, "unknown variant %q", c.Variant)
	}

	if c.WarmupOffset.IsSome() && c.WarmupOffset.Unwrap() < 0 {
		return errors.Newf(errors.ErrCodeInvalidWarmup, "warmup_offset must not be negative, got %d", c.WarmupOffset.Unwrap())
	}

	if c.TrailingStopMultiplier <= 0 {
		return errors.Newf(errors.ErrCodeInvalidMultiplier, "trailing_stop_multiplier must be positive, got %v", c.TrailingStopMultiplier)
	}

	if c.MinConfirmations < 1 || c.MinConfirmations > 5 {
		return errors.Newf(errors.ErrCodeInvalidThreshold, "min_confirmations must be between 1 and 5, got %d", c.MinConfirmations)
	}

	thresholds := []struct {
		name  string
		value float64
	}{
		{"rsi_overbought", c.RSIOverbought},
		{"rsi_oversold", c.RSIOversold},
		{"rsi_long_floor", c.RSILongFloor},
		{"rsi_short_ceiling", c.RSIShortCeiling},
		{"rsi_extreme_overbought", c.RSIExtremeOverbought},
		{"rsi_extreme_oversold", c.RSIExtremeOversold},
		{"rsi_divergence_long", c.RSIDivergenceLong},
		{"rsi_divergence_short", c.RSIDivergenceShort},
	}

	for _, t := range thresholds {
		if t.value < 0 || t.value > 100 {
			return errors.Newf(errors.ErrCodeInvalidThreshold, "%s must be within [0, 100], got %v", t.name, t.value)
		}
	}

	if c.RSIOversold >= c.RSIOverbought {
		return errors.Newf(errors.ErrCodeInvalidThreshold, "rsi_oversold (%v) must be below rsi_overbought (%v)", c.RSIOversold, c.RSIOverbought)
	}

	if c.ProfitTarget.IsSome() && c.ProfitTarget.Unwrap() <= 0 {
		return errors.Newf(errors.ErrCodeInvalidThreshold, "profit_target must be positive, got %v", c.ProfitTarget.Unwrap())
	}

	if c.VolumeSurgeRatio < 0 || c.VolumeFloorRatio < 0 {
		return errors.Newf(errors.ErrCodeInvalidThreshold, "volume ratios must not be negative")
	}

	if c.BandTolerance < 0 || c.BandTolerance >= 1 {
		return errors.Newf(errors.ErrCodeInvalidThreshold, "band_tolerance must be within [0, 1), got %v", c.BandTolerance)
	}

	return nil
}
