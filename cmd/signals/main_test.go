package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-signal/internal/backtest"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/internal/validator"
	"github.com/rxtech-lab/argo-signal/internal/writer"
	"github.com/rxtech-lab/argo-signal/mocks"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type SignalsCmdTestSuite struct {
	suite.Suite
	tempDir string
}

func TestSignalsCmdSuite(t *testing.T) {
	suite.Run(t, new(SignalsCmdTestSuite))
}

func (suite *SignalsCmdTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func (suite *SignalsCmdTestSuite) writeData(bars []types.Bar) string {
	path := filepath.Join(suite.tempDir, "bars.csv")
	rows := make([]types.SignalRow, len(bars))

	for i, bar := range bars {
		rows[i] = types.SignalRow{Bar: bar, Indicators: types.NewIndicatorRow(i), Record: types.Hold(i)}
	}

	suite.Require().NoError(writer.NewCSVWriter(path, logger.NewNopLogger()).Write(rows))

	return path
}

func (suite *SignalsCmdTestSuite) writeConfig(content string) string {
	path := filepath.Join(suite.tempDir, "run.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	return path
}

func (suite *SignalsCmdTestSuite) config(dataPath string) string {
	return suite.writeConfig("symbol: BTC\n" +
		"data_path: " + dataPath + "\n" +
		"results_folder: " + filepath.Join(suite.tempDir, "results") + "\n" +
		"log_level: error\n")
}

func (suite *SignalsCmdTestSuite) TestRun() {
	configPath := suite.config(suite.writeData(mocks.FlatThenRise(200, 40)))

	err := newCommand().Run(context.Background(), []string{"signals", "run", "--config", configPath})
	suite.Require().NoError(err)

	results := filepath.Join(suite.tempDir, "results")
	suite.FileExists(filepath.Join(results, "signals.csv"))
	suite.FileExists(filepath.Join(results, backtest.TradesFileName))

	data, err := os.ReadFile(filepath.Join(results, backtest.StatsFileName))
	suite.Require().NoError(err)

	var stats []types.TradeStats
	suite.Require().NoError(yaml.Unmarshal(data, &stats))
	suite.Require().Len(stats, 1)
	suite.Equal("BTC", stats[0].Symbol)
	suite.Equal("enhanced", stats[0].Strategy.Variant)
	suite.Equal(200, stats[0].Strategy.WarmupOffset)
	suite.True(stats[0].Strategy.LookaheadValid)
}

func (suite *SignalsCmdTestSuite) TestValidate() {
	configPath := suite.config(suite.writeData(mocks.FlatThenRise(200, 40)))

	err := newCommand().Run(context.Background(), []string{"signals", "validate", "--config", configPath, "--mode", "exhaustive"})
	suite.NoError(err)
}

func (suite *SignalsCmdTestSuite) TestShortSeriesIsRejected() {
	configPath := suite.config(suite.writeData(mocks.FlatThenRise(50, 10)))

	err := newCommand().Run(context.Background(), []string{"signals", "run", "--config", configPath})
	suite.Require().Error(err)
	suite.True(errors.IsConfigurationError(err))
}

func (suite *SignalsCmdTestSuite) TestInvalidConfig() {
	configPath := suite.writeConfig("symbol: BTC\n")

	err := newCommand().Run(context.Background(), []string{"signals", "run", "--config", configPath})
	suite.Require().Error(err)
	suite.True(errors.IsConfigurationError(err))
}

func (suite *SignalsCmdTestSuite) TestSchema() {
	suite.NoError(newCommand().Run(context.Background(), []string{"signals", "schema"}))
}

func (suite *SignalsCmdTestSuite) TestRenderReport() {
	clean := renderReport(validator.Report{NoBias: true, Mode: validator.ModeSampled, Checked: []int{200, 201}})
	suite.Contains(clean, "No lookahead bias detected")
	suite.Contains(clean, "sampled")

	biased := validator.Report{
		Mode:    validator.ModeExhaustive,
		Checked: []int{199},
		Violations: []validator.Violation{{
			Index:    199,
			Expected: types.SignalRecord{Index: 199, Signal: types.SignalBuy, TradeType: types.TradeTypeLong},
			Actual:   types.Hold(199),
		}},
	}

	rendered := renderReport(biased)
	suite.Contains(rendered, "bar 199")
	suite.Contains(rendered, "LONG")
	suite.Contains(rendered, "Lookahead bias detected in 1 bar(s)")

	err := lookaheadError(biased)
	suite.True(errors.HasCode(err, errors.ErrCodeLookaheadViolation))
}

func (suite *SignalsCmdTestSuite) TestExitCode() {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"configuration", errors.NewConfigurationError("bad %s", "symbol"), exitConfiguration},
		{"invalid period", errors.New(errors.ErrCodeInvalidPeriod, "period 0"), exitConfiguration},
		{"data", errors.NewDataError("row %d", 3), exitData},
		{"wrapped data", errors.Wrap(errors.ErrCodeBacktestInvalidTrade, "fill", errors.New(errors.ErrCodeUnorderedTimestamps, "dup")), exitData},
		{"lookahead", errors.New(errors.ErrCodeLookaheadViolation, "bias"), exitLookahead},
		{"other", os.ErrNotExist, exitFailure},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.code, exitCode(tc.err))
		})
	}

	err := newCommand().Run(context.Background(), []string{"signals", "run", "--config", filepath.Join(suite.tempDir, "missing.yaml")})
	suite.Equal(exitConfiguration, exitCode(err))
}

func (suite *SignalsCmdTestSuite) TestRenderTradesAndStatistics() {
	suite.Contains(renderTrades(nil, 10), "No trades executed.")

	trades := make([]types.Trade, 12)
	for i := range trades {
		trades[i] = types.Trade{Side: types.PositionLong, PnL: decimal.NewFromInt(int64(i - 5)), ExitReason: types.ExitReasonSignal}
	}

	rendered := renderTrades(trades, 10)
	suite.Contains(rendered, "Trade 10:")
	suite.NotContains(rendered, "Trade 11:")
	suite.Contains(rendered, "... and 2 more trades")
	suite.Contains(rendered, "6/12 winning trades (50.0% win rate)")

	stats := renderStatistics(map[string]float64{
		backtest.StatTotalTrades: 12,
		backtest.StatWinRate:     0.5,
		backtest.StatSharpeRatio: 1.23456,
	})
	suite.Contains(stats, "12")
	suite.Contains(stats, "50.00%")
	suite.Contains(stats, "1.2346")
}
