package signal

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaultConfig() {
	enhanced := DefaultConfig(VariantEnhanced)
	suite.Equal(VariantEnhanced, enhanced.Variant)
	suite.Equal(2.0, enhanced.TrailingStopMultiplier)
	suite.Equal(0.15, enhanced.ProfitTarget.Unwrap())
	suite.Equal(3, enhanced.MinConfirmations)
	suite.True(enhanced.WarmupOffset.IsNone())
	suite.NoError(enhanced.Validate())

	simple := DefaultConfig(VariantSimple)
	suite.Equal(VariantSimple, simple.Variant)
	suite.Equal(2.5, simple.TrailingStopMultiplier)
	suite.True(simple.ProfitTarget.IsNone())
	suite.NoError(simple.Validate())
}

func (suite *ConfigTestSuite) TestUnmarshalYAMLDefaults() {
	var config Config
	err := yaml.Unmarshal([]byte("variant: simple\n"), &config)
	suite.Require().NoError(err)

	suite.Equal(DefaultConfig(VariantSimple), config)
}

func (suite *ConfigTestSuite) TestUnmarshalYAMLOverrides() {
	data := `
variant: enhanced
warmup_offset: 150
reject_short_series: true
trailing_stop_multiplier: 3
min_confirmations: 4
rsi_overbought: 80
profit_target: 0.2
band_tolerance: 0.02
`

	var config Config
	err := yaml.Unmarshal([]byte(data), &config)
	suite.Require().NoError(err)

	suite.Equal(VariantEnhanced, config.Variant)
	suite.Equal(150, config.WarmupOffset.Unwrap())
	suite.True(config.RejectShortSeries)
	suite.Equal(3.0, config.TrailingStopMultiplier)
	suite.Equal(4, config.MinConfirmations)
	suite.Equal(80.0, config.RSIOverbought)
	suite.Equal(30.0, config.RSIOversold)
	suite.Equal(0.2, config.ProfitTarget.Unwrap())
	suite.Equal(0.02, config.BandTolerance)
}

func (suite *ConfigTestSuite) TestUnmarshalYAMLZeroProfitTargetDisables() {
	var config Config
	err := yaml.Unmarshal([]byte("profit_target: 0\n"), &config)
	suite.Require().NoError(err)

	suite.Equal(VariantEnhanced, config.Variant)
	suite.True(config.ProfitTarget.IsNone())
}

func (suite *ConfigTestSuite) TestUnmarshalYAMLUnknownVariant() {
	var config Config
	err := yaml.Unmarshal([]byte("variant: aggressive\n"), &config)
	suite.Require().NoError(err)

	err = config.Validate()
	suite.Error(err)
	suite.True(errors.IsConfigurationError(err))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		code   errors.ErrorCode
	}{
		{name: "negative warmup", mutate: func(c *Config) { c.WarmupOffset = optional.Some(-5) }, code: errors.ErrCodeInvalidWarmup},
		{name: "zero multiplier", mutate: func(c *Config) { c.TrailingStopMultiplier = 0 }, code: errors.ErrCodeInvalidMultiplier},
		{name: "negative multiplier", mutate: func(c *Config) { c.TrailingStopMultiplier = -1 }, code: errors.ErrCodeInvalidMultiplier},
		{name: "no confirmations", mutate: func(c *Config) { c.MinConfirmations = 0 }, code: errors.ErrCodeInvalidThreshold},
		{name: "six confirmations", mutate: func(c *Config) { c.MinConfirmations = 6 }, code: errors.ErrCodeInvalidThreshold},
		{name: "rsi above 100", mutate: func(c *Config) { c.RSIExtremeOverbought = 120 }, code: errors.ErrCodeInvalidThreshold},
		{name: "oversold above overbought", mutate: func(c *Config) { c.RSIOversold = 75 }, code: errors.ErrCodeInvalidThreshold},
		{name: "negative profit target", mutate: func(c *Config) { c.ProfitTarget = optional.Some(-0.1) }, code: errors.ErrCodeInvalidThreshold},
		{name: "negative volume ratio", mutate: func(c *Config) { c.VolumeFloorRatio = -1 }, code: errors.ErrCodeInvalidThreshold},
		{name: "band tolerance of one", mutate: func(c *Config) { c.BandTolerance = 1 }, code: errors.ErrCodeInvalidThreshold},
		{name: "unknown variant", mutate: func(c *Config) { c.Variant = "other" }, code: errors.ErrCodeInvalidParameter},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig(VariantEnhanced)
			tc.mutate(&config)

			err := config.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tc.code))
			assert.True(t, errors.IsConfigurationError(err))
		})
	}
}
