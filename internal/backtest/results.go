package backtest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

const (
	StatsFileName  = "stats.yaml"
	TradesFileName = "trades.csv"
)

// WriteResults writes stats.yaml and trades.csv into folder and returns the stats written.
func (b *Backtester) WriteResults(folder string, strategy types.StrategyInfo) (types.TradeStats, error) {
	if !b.computed {
		return types.TradeStats{}, errors.New(errors.ErrCodeBacktestConfigError, "trades have not been computed")
	}

	if err := os.MkdirAll(folder, 0755); err != nil {
		return types.TradeStats{}, errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create results folder", err)
	}

	tradesPath := filepath.Join(folder, TradesFileName)
	if err := writeTrades(tradesPath, b.trades); err != nil {
		return types.TradeStats{}, err
	}

	stats := b.Stats(strategy)
	stats.TradesFilePath = tradesPath

	if err := types.WriteTradeStats(filepath.Join(folder, StatsFileName), []types.TradeStats{stats}); err != nil {
		return types.TradeStats{}, errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write stats", err)
	}

	b.logger.Info("Wrote backtest results", zap.String("folder", folder), zap.Int("trades", len(b.trades)))

	return stats, nil
}

func writeTrades(path string, trades []types.Trade) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create trades file", err)
	}
	defer file.Close()

	out := csv.NewWriter(file)

	if err := out.Write([]string{
		"symbol", "side", "entry_index", "exit_index", "entry_time", "exit_time",
		"entry_price", "exit_price", "quantity", "pnl", "exit_reason",
	}); err != nil {
		return fmt.Errorf("failed to write trades header: %w", err)
	}

	for _, trade := range trades {
		record := []string{
			trade.Symbol,
			trade.Side.String(),
			strconv.Itoa(trade.EntryIndex),
			strconv.Itoa(trade.ExitIndex),
			trade.EntryTime.Format(time.RFC3339),
			trade.ExitTime.Format(time.RFC3339),
			fmt.Sprintf("%f", trade.EntryPrice),
			fmt.Sprintf("%f", trade.ExitPrice),
			fmt.Sprintf("%f", trade.Quantity),
			trade.PnL.StringFixed(2),
			string(trade.ExitReason),
		}

		if err := out.Write(record); err != nil {
			return fmt.Errorf("failed to write trade: %w", err)
		}
	}

	out.Flush()

	return out.Error()
}
