package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-signal/internal/backtest"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/internal/validator"
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true)
	LabelStyle   = lipgloss.NewStyle().Width(22)
	HelpStyle    = lipgloss.NewStyle().Faint(true)
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// statisticsOrder is the print order of ComputeStatistics keys.
var statisticsOrder = []string{
	backtest.StatTotalTrades,
	backtest.StatWinningTrades,
	backtest.StatLosingTrades,
	backtest.StatWinRate,
	backtest.StatTotalReturn,
	backtest.StatTotalPnL,
	backtest.StatMaxDrawdown,
	backtest.StatSharpeRatio,
	backtest.StatBuyAndHoldReturn,
}

func renderReport(report validator.Report) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Lookahead Validation") + "\n")
	b.WriteString(fmt.Sprintf("%s%s\n", LabelStyle.Render("Mode"), report.Mode))
	b.WriteString(fmt.Sprintf("%s%d\n", LabelStyle.Render("Checked bars"), len(report.Checked)))

	if report.NoBias {
		b.WriteString(SuccessStyle.Render("No lookahead bias detected"))

		return b.String()
	}

	for _, v := range report.Violations {
		b.WriteString(fmt.Sprintf("  bar %d: full series %s (%d), truncated %s (%d)\n",
			v.Index, v.Expected.TradeType, v.Expected.Signal, v.Actual.TradeType, v.Actual.Signal))
	}

	b.WriteString(ErrorStyle.Render(fmt.Sprintf("Lookahead bias detected in %d bar(s)", len(report.Violations))))

	return b.String()
}

func renderTrades(trades []types.Trade, limit int) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Individual Trades") + "\n")

	if len(trades) == 0 {
		b.WriteString(HelpStyle.Render("No trades executed."))

		return b.String()
	}

	winning := 0

	for i, trade := range trades {
		if trade.PnL.IsPositive() {
			winning++
		}

		if i >= limit {
			continue
		}

		b.WriteString(fmt.Sprintf("Trade %d: %s %s -> %s at %.2f -> %.2f (%s) | PnL: $%s\n",
			i+1, trade.Side, trade.EntryTime.Format("2006-01-02"), trade.ExitTime.Format("2006-01-02"),
			trade.EntryPrice, trade.ExitPrice, trade.ExitReason, trade.PnL.StringFixed(2)))
	}

	if len(trades) > limit {
		b.WriteString(HelpStyle.Render(fmt.Sprintf("... and %d more trades", len(trades)-limit)) + "\n")
	}

	b.WriteString(fmt.Sprintf("Trade Summary: %d/%d winning trades (%.1f%% win rate)",
		winning, len(trades), float64(winning)/float64(len(trades))*100))

	return b.String()
}

func renderStatistics(stats map[string]float64) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Performance Statistics"))

	for _, key := range statisticsOrder {
		value, ok := stats[key]
		if !ok {
			continue
		}

		var formatted string

		switch {
		case strings.Contains(key, "Rate") || strings.Contains(key, "Return") || key == backtest.StatMaxDrawdown:
			formatted = fmt.Sprintf("%.2f%%", value*100)
		case strings.Contains(key, "Trades"):
			formatted = fmt.Sprintf("%d", int(value))
		default:
			formatted = fmt.Sprintf("%.4f", value)
		}

		b.WriteString("\n" + LabelStyle.Render(key) + formatted)
	}

	return b.String()
}
