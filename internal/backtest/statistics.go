package backtest

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/shopspring/decimal"
)

const (
	StatTotalTrades      = "Total Trades"
	StatWinningTrades    = "Winning Trades"
	StatLosingTrades     = "Losing Trades"
	StatWinRate          = "Win Rate"
	StatTotalReturn      = "Total Return"
	StatTotalPnL         = "Total PnL"
	StatMaxDrawdown      = "Max Drawdown"
	StatSharpeRatio      = "Sharpe Ratio"
	StatBuyAndHoldReturn = "Buy And Hold Return"
)

// ComputeStatistics summarizes the last ComputeTrades call. It is empty before
// trades have been computed.
func (b *Backtester) ComputeStatistics() map[string]float64 {
	if !b.computed {
		return map[string]float64{}
	}

	result := b.tradeResult()
	pnl := b.tradePnl()

	return map[string]float64{
		StatTotalTrades:      float64(result.NumberOfTrades),
		StatWinningTrades:    float64(result.NumberOfWinningTrades),
		StatLosingTrades:     float64(result.NumberOfLosingTrades),
		StatWinRate:          result.WinRate,
		StatTotalReturn:      result.TotalReturn,
		StatTotalPnL:         pnl.TotalPnL,
		StatMaxDrawdown:      result.MaxDrawdown,
		StatSharpeRatio:      result.SharpeRatio,
		StatBuyAndHoldReturn: b.buyAndHoldReturn(),
	}
}

// Stats builds the stats.yaml record for the last ComputeTrades call.
func (b *Backtester) Stats(strategy types.StrategyInfo) types.TradeStats {
	return types.TradeStats{
		ID:               uuid.New().String(),
		Timestamp:        time.Now(),
		Symbol:           b.config.Symbol,
		Compound:         b.config.Compound,
		InitialCapital:   b.initialCapital,
		TradeResult:      b.tradeResult(),
		TradeHoldingTime: b.holdingTime(),
		TradePnl:         b.tradePnl(),
		BuyAndHoldReturn: b.buyAndHoldReturn(),
		Strategy:         strategy,
		DataPath:         b.dataPath(),
		SignalsFilePath:  b.config.SignalDataPath,
	}
}

func (b *Backtester) dataPath() string {
	if b.config.MasterDataPath != "" {
		return b.config.MasterDataPath
	}

	return b.config.SignalDataPath
}

func (b *Backtester) tradeResult() types.TradeResult {
	result := types.TradeResult{
		NumberOfTrades: len(b.trades),
		MaxDrawdown:    maxDrawdown(b.equity),
		SharpeRatio:    sharpeRatio(b.equity, b.config.PeriodsPerYear),
	}

	for _, trade := range b.trades {
		switch {
		case trade.PnL.IsPositive():
			result.NumberOfWinningTrades++
		case trade.PnL.IsNegative():
			result.NumberOfLosingTrades++
		}
	}

	if result.NumberOfTrades > 0 {
		result.WinRate = float64(result.NumberOfWinningTrades) / float64(result.NumberOfTrades)
	}

	if n := len(b.equity); n > 0 && b.initialCapital > 0 {
		result.TotalReturn = b.equity[n-1]/b.initialCapital - 1
	}

	return result
}

func (b *Backtester) tradePnl() types.TradePnl {
	if len(b.trades) == 0 {
		return types.TradePnl{}
	}

	total := decimal.Zero
	maxLoss := b.trades[0].PnL
	maxProfit := b.trades[0].PnL

	for _, trade := range b.trades {
		total = total.Add(trade.PnL)
		maxLoss = decimal.Min(maxLoss, trade.PnL)
		maxProfit = decimal.Max(maxProfit, trade.PnL)
	}

	totalPnl, _ := total.Float64()
	loss, _ := maxLoss.Float64()
	profit, _ := maxProfit.Float64()

	return types.TradePnl{
		TotalPnL:      totalPnl,
		MaximumLoss:   loss,
		MaximumProfit: profit,
	}
}

func (b *Backtester) holdingTime() types.TradeHoldingTime {
	if len(b.trades) == 0 {
		return types.TradeHoldingTime{}
	}

	holding := types.TradeHoldingTime{
		Min: b.trades[0].HoldingBars(),
		Max: b.trades[0].HoldingBars(),
	}
	sum := 0

	for _, trade := range b.trades {
		bars := trade.HoldingBars()
		holding.Min = min(holding.Min, bars)
		holding.Max = max(holding.Max, bars)
		sum += bars
	}

	holding.Avg = sum / len(b.trades)

	return holding
}

// buyAndHoldReturn compares the first and last usable closes.
func (b *Backtester) buyAndHoldReturn() float64 {
	first, last := math.NaN(), math.NaN()

	for _, bar := range b.prices {
		if math.IsNaN(bar.Close) || bar.Close <= 0 {
			continue
		}

		if math.IsNaN(first) {
			first = bar.Close
		}

		last = bar.Close
	}

	if math.IsNaN(first) {
		return 0
	}

	return last/first - 1
}

// maxDrawdown is the largest peak to trough fall as a fraction of the peak.
func maxDrawdown(equity []float64) float64 {
	peak := math.Inf(-1)
	drawdown := 0.0

	for _, value := range equity {
		peak = math.Max(peak, value)
		if peak > 0 {
			drawdown = math.Max(drawdown, (peak-value)/peak)
		}
	}

	return drawdown
}

// sharpeRatio annualizes the mean over the sample deviation of per-row returns.
func sharpeRatio(equity []float64, periodsPerYear int) float64 {
	returns := make([]float64, 0, len(equity))

	for i := 1; i < len(equity); i++ {
		if equity[i-1] == 0 {
			continue
		}

		returns = append(returns, equity[i]/equity[i-1]-1)
	}

	if len(returns) < 2 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}

	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}

	std := math.Sqrt(variance / float64(len(returns)-1))
	if std == 0 {
		return 0
	}

	return mean / std * math.Sqrt(float64(periodsPerYear))
}
