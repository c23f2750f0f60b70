package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type TradeHoldingTime struct {
	// Minimum holding time of a trade in bars
	Min int `yaml:"min"`
	// Maximum holding time of a trade in bars
	Max int `yaml:"max"`
	// Average holding time of a trade in bars
	Avg int `yaml:"avg"`
}

type TradePnl struct {
	// Total PnL. Sum of every closed trade's pnl.
	TotalPnL float64 `yaml:"total_pnl"`
	// Maximum loss. The minimum pnl over all trades.
	MaximumLoss float64 `yaml:"maximum_loss"`
	// Maximum profit. The maximum pnl over all trades.
	MaximumProfit float64 `yaml:"maximum_profit"`
}

type TradeResult struct {
	// Count of all trades.
	NumberOfTrades int `yaml:"number_of_trades"`
	// Count of winning trades that has positive pnl.
	NumberOfWinningTrades int `yaml:"number_of_winning_trades"`
	// Count of losing trades that has negative pnl.
	NumberOfLosingTrades int `yaml:"number_of_losing_trades"`
	// Win rate.
	WinRate float64 `yaml:"win_rate"`
	// Maximum drawdown of the equity curve as a fraction of its peak.
	MaxDrawdown float64 `yaml:"max_drawdown"`
	// Total return over the initial capital.
	TotalReturn float64 `yaml:"total_return"`
	// Annualized Sharpe ratio of per-bar equity returns.
	SharpeRatio float64 `yaml:"sharpe_ratio"`
}

// StrategyInfo describes the signal variant that produced the trades.
type StrategyInfo struct {
	Variant        string `yaml:"variant" json:"variant"`
	EngineVersion  string `yaml:"engine_version" json:"engine_version"`
	WarmupOffset   int    `yaml:"warmup_offset" json:"warmup_offset"`
	LookaheadValid bool   `yaml:"lookahead_valid" json:"lookahead_valid"`
}

type TradeStats struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Symbol of the traded instrument.
	Symbol string `yaml:"symbol"`
	// Compound reports whether position sizes followed equity.
	Compound bool `yaml:"compound"`
	// InitialCapital used to size positions.
	InitialCapital float64 `yaml:"initial_capital"`
	// Result of all trades.
	TradeResult TradeResult `yaml:"trade_result"`
	// Holding time of all trades.
	TradeHoldingTime TradeHoldingTime `yaml:"trade_holding_time"`
	// PnL of all trades.
	TradePnl TradePnl `yaml:"trade_pnl"`
	// Buy and hold return over the same bars.
	BuyAndHoldReturn float64 `yaml:"buy_and_hold_return"`
	// TradesFilePath is the path to the trades csv file.
	TradesFilePath string `yaml:"trades_file_path" json:"trades_file_path"`
	// SignalsFilePath is the path to the signal table.
	SignalsFilePath string `yaml:"signals_file_path" json:"signals_file_path"`
	Strategy        StrategyInfo `yaml:"strategy" json:"strategy"`
	// DataPath is the path to the market data file used for this backtest.
	DataPath string `yaml:"data_path" json:"data_path"`
}

func WriteTradeStats(path string, stats []TradeStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal trade stats to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trade stats to file: %w", err)
	}

	return nil
}
