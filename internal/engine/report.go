package engine

import (
	"fmt"
	"io"
	"math"

	"github.com/shopspring/decimal"
)

const reportRule = "-----------------------------------------"

// Report rendering degrades per metric: a statistic that is undefined for
// this series prints as N/A and the rest of the report still renders.

func displayRow(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-30s %-15s\n", label, value)
}

func fmtPct(value float64, err error) string {
	if err != nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", value)
}

func fmtRatio(value float64, err error) string {
	if err != nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", value)
}

func fmtDays(value float64, err error) string {
	if err != nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f Days", value)
}

func fmtMoney(value decimal.Decimal) string {
	return "$" + value.StringFixed(2)
}

// WriteReport prints the portfolio statistics as a two-column table.
func (a *PerformanceAnalyzer) WriteReport(w io.Writer) {
	maxDD, maxDDErr := a.MaxDrawdown()
	longestDD, longestDDErr := a.LongestDrawdown()

	displayRow(w, "", "Portfolio")
	fmt.Fprintln(w, reportRule)
	displayRow(w, "Overview", "")
	displayRow(w, "Start Date", a.StartDate().Format("2006-01-02"))
	displayRow(w, "End Date", a.EndDate().Format("2006-01-02"))
	displayRow(w, "Time Period", fmt.Sprintf("%d Days", a.TimePeriodDays()))
	displayRow(w, "Initial Capital", fmtMoney(a.InitialCapital()))
	displayRow(w, "Peak Equity", fmtMoney(a.PeakEquity()))
	displayRow(w, "Trough Equity", fmtMoney(a.TroughEquity()))
	displayRow(w, "Ending Capital", fmtMoney(a.EndingCapital()))
	displayRow(w, "Net Profits", fmtMoney(a.NetProfit()))
	displayRow(w, "Net Profits%", fmtPct(a.NetProfitPct()))
	displayRow(w, "Annual Returns", fmtPct(a.AnnualReturnPct()))
	fmt.Fprintln(w, reportRule)
	displayRow(w, "Risk", "")
	displayRow(w, "Annual Risk", fmtPct(a.AnnualRiskPct()))
	displayRow(w, "Downside Deviation", fmtPct(a.DownsideDeviationPct()))
	displayRow(w, "Var(95)", fmtPct(a.VaR95Pct()))
	fmt.Fprintln(w, reportRule)
	displayRow(w, "Risk Adjusted Return", "")
	displayRow(w, "Sharpe Ratio", fmtRatio(a.SharpeRatio()))
	displayRow(w, "Sortino Ratio", fmtRatio(a.SortinoRatio()))
	displayRow(w, "Calmar Ratio", fmtRatio(a.CalmarRatio()))
	fmt.Fprintln(w, reportRule)
	displayRow(w, "Drawdown Analysis", "")
	displayRow(w, "Max Drawdown", fmtPct(maxDD.MaxDrawdownPct, maxDDErr))
	displayRow(w, "Max Drawdown Period", fmtDays(float64(maxDD.LengthDays), maxDDErr))
	displayRow(w, "Longest Drawdown", fmtPct(longestDD.MaxDrawdownPct, longestDDErr))
	displayRow(w, "Longest Drawdown Period", fmtDays(float64(longestDD.LengthDays), longestDDErr))
	displayRow(w, "Average Drawdown", fmtPct(a.AverageDrawdownPct()))
	displayRow(w, "Average Drawdown Period", fmtDays(a.AverageDrawdownDays()))
	fmt.Fprintln(w, reportRule)
}

// Metrics returns the portfolio statistics as a name->value map for
// programmatic consumption. Undefined metrics are omitted. Values are
// rounded to 2 decimals like the printed report.
func (a *PerformanceAnalyzer) Metrics() map[string]float64 {
	m := map[string]float64{
		"time_period_days": float64(a.TimePeriodDays()),
		"initial_capital":  a.InitialCapital().InexactFloat64(),
		"ending_capital":   a.EndingCapital().InexactFloat64(),
		"peak_equity":      a.PeakEquity().InexactFloat64(),
		"trough_equity":    a.TroughEquity().InexactFloat64(),
		"net_profit":       a.NetProfit().InexactFloat64(),
	}
	putMetric(m, "net_profit_pct")(a.NetProfitPct())
	putMetric(m, "annual_return_pct")(a.AnnualReturnPct())
	putMetric(m, "annual_risk_pct")(a.AnnualRiskPct())
	putMetric(m, "downside_deviation_pct")(a.DownsideDeviationPct())
	putMetric(m, "var_95_pct")(a.VaR95Pct())
	putMetric(m, "sharpe_ratio")(a.SharpeRatio())
	putMetric(m, "sortino_ratio")(a.SortinoRatio())
	putMetric(m, "calmar_ratio")(a.CalmarRatio())
	putMetric(m, "average_drawdown_pct")(a.AverageDrawdownPct())
	putMetric(m, "average_drawdown_days")(a.AverageDrawdownDays())
	if maxDD, err := a.MaxDrawdown(); err == nil {
		m["max_drawdown_pct"] = round2(maxDD.MaxDrawdownPct)
		m["max_drawdown_days"] = float64(maxDD.LengthDays)
	}
	if longest, err := a.LongestDrawdown(); err == nil {
		m["longest_drawdown_pct"] = round2(longest.MaxDrawdownPct)
		m["longest_drawdown_days"] = float64(longest.LengthDays)
	}
	return m
}

// WriteReport prints the trade statistics as a two-column table.
func (a *TradeAnalyzer) WriteReport(w io.Writer) {
	displayRow(w, "All Trades", "Portfolio")
	fmt.Fprintln(w, reportRule)
	displayRow(w, "Frequency", fmt.Sprintf("%d", a.TotalTrades()))
	displayRow(w, "Average Length", fmtDays(a.AverageHoldingDays(), nil))
	displayRow(w, "Average Returns", fmtPct(a.AverageReturnPct(), nil))
	fmt.Fprintln(w, reportRule)
	displayRow(w, "Winning Trades", "")
	displayRow(w, "Frequency", fmt.Sprintf("%d", a.WinningTrades()))
	displayRow(w, "Average Length", fmtDays(a.AverageWinningHoldingDays()))
	displayRow(w, "Win Rate", fmtPct(a.WinRatePct(), nil))
	displayRow(w, "Average Win Return", fmtPct(a.AverageWinReturnPct()))
	displayRow(w, "Best Trade", fmtPct(a.BestWinReturnPct()))
	displayRow(w, "Worst Trade", fmtPct(a.WorstWinReturnPct()))
	displayRow(w, "Longest Win Streak", fmt.Sprintf("%d", a.LongestWinStreak()))
	fmt.Fprintln(w, reportRule)
	displayRow(w, "Losing Trades", "")
	displayRow(w, "Frequency", fmt.Sprintf("%d", a.LosingTrades()))
	displayRow(w, "Average Length", fmtDays(a.AverageLosingHoldingDays()))
	displayRow(w, "Loss Rate", fmtPct(a.LossRatePct(), nil))
	displayRow(w, "Average Loss Return", fmtPct(a.AverageLossReturnPct()))
	displayRow(w, "Best Trade", fmtPct(a.BestLossReturnPct()))
	displayRow(w, "Worst Trade", fmtPct(a.WorstLossReturnPct()))
	displayRow(w, "Longest Loss Streak", fmt.Sprintf("%d", a.LongestLossStreak()))
	fmt.Fprintln(w, reportRule)
}

// Metrics returns the trade statistics as a name->value map. Undefined
// metrics (empty win or loss class) are omitted.
func (a *TradeAnalyzer) Metrics() map[string]float64 {
	m := map[string]float64{
		"total_trades":         float64(a.TotalTrades()),
		"winning_trades":       float64(a.WinningTrades()),
		"losing_trades":        float64(a.LosingTrades()),
		"win_rate_pct":         round2(a.WinRatePct()),
		"loss_rate_pct":        round2(a.LossRatePct()),
		"average_holding_days": round2(a.AverageHoldingDays()),
		"average_return_pct":   round2(a.AverageReturnPct()),
		"longest_win_streak":   float64(a.LongestWinStreak()),
		"longest_loss_streak":  float64(a.LongestLossStreak()),
	}
	putMetric(m, "average_win_holding_days")(a.AverageWinningHoldingDays())
	putMetric(m, "average_loss_holding_days")(a.AverageLosingHoldingDays())
	putMetric(m, "average_win_return_pct")(a.AverageWinReturnPct())
	putMetric(m, "average_loss_return_pct")(a.AverageLossReturnPct())
	putMetric(m, "best_win_return_pct")(a.BestWinReturnPct())
	putMetric(m, "worst_win_return_pct")(a.WorstWinReturnPct())
	putMetric(m, "best_loss_return_pct")(a.BestLossReturnPct())
	putMetric(m, "worst_loss_return_pct")(a.WorstLossReturnPct())
	return m
}

func putMetric(m map[string]float64, name string) func(float64, error) {
	return func(value float64, err error) {
		if err == nil {
			m[name] = round2(value)
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
