package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type StatisticsTestSuite struct {
	suite.Suite
	tempDir string
}

func TestStatisticsSuite(t *testing.T) {
	suite.Run(t, new(StatisticsTestSuite))
}

func (suite *StatisticsTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "statistics_test")
	suite.NoError(err)
	suite.tempDir = tempDir
}

func (suite *StatisticsTestSuite) TearDownTest() {
	os.RemoveAll(suite.tempDir)
}

func (suite *StatisticsTestSuite) TestWriteTradeStats() {
	stats := []TradeStats{
		{
			ID:             "run-1",
			Symbol:         "SPY",
			Compound:       true,
			InitialCapital: 10000,
			TradeResult: TradeResult{
				NumberOfTrades:        10,
				NumberOfWinningTrades: 6,
				NumberOfLosingTrades:  4,
				WinRate:               0.6,
				MaxDrawdown:           0.12,
				TotalReturn:           0.25,
				SharpeRatio:           1.4,
			},
			TradeHoldingTime: TradeHoldingTime{
				Min: 2,
				Max: 40,
				Avg: 11,
			},
			TradePnl: TradePnl{
				TotalPnL:      2500.0,
				MaximumLoss:   -300.0,
				MaximumProfit: 900.0,
			},
			BuyAndHoldReturn: 0.18,
			Strategy: StrategyInfo{
				Variant:        "enhanced",
				EngineVersion:  "1.0.0",
				WarmupOffset:   200,
				LookaheadValid: true,
			},
		},
	}

	filePath := filepath.Join(suite.tempDir, "stats.yaml")
	err := WriteTradeStats(filePath, stats)
	suite.NoError(err)

	data, err := os.ReadFile(filePath)
	suite.NoError(err)

	var readStats []TradeStats
	err = yaml.Unmarshal(data, &readStats)
	suite.NoError(err)

	suite.Len(readStats, 1)
	suite.Equal("SPY", readStats[0].Symbol)
	suite.True(readStats[0].Compound)
	suite.Equal(10, readStats[0].TradeResult.NumberOfTrades)
	suite.Equal(6, readStats[0].TradeResult.NumberOfWinningTrades)
	suite.Equal(4, readStats[0].TradeResult.NumberOfLosingTrades)
	suite.Equal(0.6, readStats[0].TradeResult.WinRate)
	suite.Equal(0.12, readStats[0].TradeResult.MaxDrawdown)
	suite.Equal(40, readStats[0].TradeHoldingTime.Max)
	suite.Equal(2500.0, readStats[0].TradePnl.TotalPnL)
	suite.Equal(0.18, readStats[0].BuyAndHoldReturn)
	suite.Equal("enhanced", readStats[0].Strategy.Variant)
	suite.Equal(200, readStats[0].Strategy.WarmupOffset)
}

func (suite *StatisticsTestSuite) TestWriteTradeStatsInvalidPath() {
	err := WriteTradeStats(filepath.Join(suite.tempDir, "missing", "stats.yaml"), []TradeStats{{}})
	suite.Error(err)
	suite.Contains(err.Error(), "failed to write trade stats to file")
}
