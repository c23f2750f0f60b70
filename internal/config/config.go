// Package config loads the run configuration of the signals command.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/backtest"
	"github.com/rxtech-lab/argo-signal/internal/datasource"
	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/signal"
	appvalidator "github.com/rxtech-lab/argo-signal/internal/validator"
	"github.com/rxtech-lab/argo-signal/internal/version"
	"github.com/rxtech-lab/argo-signal/internal/writer"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"gopkg.in/yaml.v3"
)

// dateLayouts are accepted for start and end.
var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

type BacktestConfig struct {
	// PeriodsPerYear annualizes the Sharpe ratio. 365 for daily crypto bars, 252 for equities.
	PeriodsPerYear int `yaml:"periods_per_year" json:"periods_per_year" jsonschema:"title=Periods Per Year,minimum=1,default=365" validate:"gte=1"`
}

type RunConfig struct {
	Version        string        `yaml:"version" json:"version" jsonschema:"title=Version,description=Engine version this config was written for"`
	Symbol         string        `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol,description=Instrument identifier used in results,required" validate:"required"`
	DataPath       string        `yaml:"data_path" json:"data_path" jsonschema:"title=Data Path,description=OHLCV csv or parquet file,required" validate:"required"`
	TimeColumn     string        `yaml:"time_column" json:"time_column" jsonschema:"title=Time Column,default=time" validate:"required"`
	Start          string        `yaml:"start" json:"start" jsonschema:"title=Start,description=First timestamp to load (RFC3339 or YYYY-MM-DD)"`
	End            string        `yaml:"end" json:"end" jsonschema:"title=End,description=Last timestamp to load (RFC3339 or YYYY-MM-DD)"`
	ResultsFolder  string        `yaml:"results_folder" json:"results_folder" jsonschema:"title=Results Folder,default=results" validate:"required"`
	InitialCapital float64       `yaml:"initial_capital" json:"initial_capital" jsonschema:"title=Initial Capital,default=1000" validate:"gt=0"`
	Compound       bool          `yaml:"compound" json:"compound" jsonschema:"title=Compound,description=Size positions from current equity,default=true"`
	LogLevel       string        `yaml:"log_level" json:"log_level" jsonschema:"title=Log Level,enum=debug,enum=info,enum=warn,enum=error,default=info" validate:"oneof=debug info warn error"`
	OutputFormat   writer.Format `yaml:"output_format" json:"output_format" jsonschema:"title=Output Format,enum=csv,enum=parquet,default=csv" validate:"oneof=csv parquet"`

	Indicators indicator.Config    `yaml:"indicators" json:"indicators" jsonschema:"title=Indicators"`
	Strategy   signal.Config       `yaml:"strategy" json:"strategy" jsonschema:"title=Strategy"`
	Validation appvalidator.Config `yaml:"validation" json:"validation" jsonschema:"title=Validation"`
	Backtest   BacktestConfig      `yaml:"backtest" json:"backtest" jsonschema:"title=Backtest"`
}

// DefaultRunConfig returns a config with every optional field set. Symbol and
// DataPath have no default.
func DefaultRunConfig() RunConfig {
	strategy := signal.DefaultConfig(signal.VariantEnhanced)
	strategy.RejectShortSeries = true

	return RunConfig{
		Version:        version.GetVersion(),
		TimeColumn:     datasource.DefaultTimeColumn,
		ResultsFolder:  "results",
		InitialCapital: 1000,
		Compound:       true,
		LogLevel:       "info",
		OutputFormat:   writer.FormatCSV,
		Indicators:     indicator.DefaultConfig(),
		Strategy:       strategy,
		Validation:     appvalidator.DefaultConfig(),
		Backtest: BacktestConfig{
			PeriodsPerYear: backtest.DefaultPeriodsPerYear,
		},
	}
}

// Load reads and validates the config at path.
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, errors.NewConfigurationError("failed to read config file %s: %v", path, err)
	}

	return Parse(data)
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte) (RunConfig, error) {
	config := DefaultRunConfig()

	if err := yaml.Unmarshal(data, &config); err != nil {
		return RunConfig{}, errors.Wrap(errors.ErrCodeConfigurationError, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return RunConfig{}, err
	}

	return config, nil
}

// Validate checks struct tags first, then the rules of each section.
func (c RunConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeConfigurationError, "invalid config", err)
	}

	if err := version.CheckConfigVersion(version.GetVersion(), c.Version); err != nil {
		return err
	}

	if err := c.Indicators.Validate(); err != nil {
		return err
	}

	if err := c.Strategy.Validate(); err != nil {
		return err
	}

	if err := c.Validation.Validate(); err != nil {
		return err
	}

	start, end, err := c.TimeRange()
	if err != nil {
		return err
	}

	if start.IsSome() && end.IsSome() && end.Unwrap().Before(start.Unwrap()) {
		return errors.Newf(errors.ErrCodeInvalidParameter, "end %s is before start %s", c.End, c.Start)
	}

	return nil
}

// TimeRange parses Start and End. Empty values are None.
func (c RunConfig) TimeRange() (optional.Option[time.Time], optional.Option[time.Time], error) {
	start, err := parseTime("start", c.Start)
	if err != nil {
		return optional.None[time.Time](), optional.None[time.Time](), err
	}

	end, err := parseTime("end", c.End)
	if err != nil {
		return optional.None[time.Time](), optional.None[time.Time](), err
	}

	return start, end, nil
}

func parseTime(field, value string) (optional.Option[time.Time], error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return optional.None[time.Time](), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return optional.Some(t), nil
		}
	}

	return optional.None[time.Time](), errors.Newf(errors.ErrCodeInvalidParameter, "%s %q is not RFC3339 or YYYY-MM-DD", field, value)
}
