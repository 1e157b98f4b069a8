package engine

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"btrader/types"

	"github.com/shopspring/decimal"
)

func TestPerformanceReportRenders(t *testing.T) {
	a := newAnalyzer(t, equitySeries(day(2022, 3, 7), "100", "90", "95", "100", "80", "100"))

	var buf bytes.Buffer
	a.WriteReport(&buf)
	out := buf.String()

	for _, label := range []string{
		"Start Date", "End Date", "Time Period", "Initial Capital",
		"Peak Equity", "Trough Equity", "Ending Capital",
		"Net Profits", "Net Profits%", "Annual Returns",
		"Annual Risk", "Downside Deviation", "Var(95)",
		"Sharpe Ratio", "Sortino Ratio", "Calmar Ratio",
		"Max Drawdown", "Longest Drawdown", "Average Drawdown",
	} {
		if !strings.Contains(out, label) {
			t.Fatalf("report is missing label %q", label)
		}
	}
	if !strings.Contains(out, "Max Drawdown                   20.00%") {
		t.Fatalf("max drawdown row not found in:\n%s", out)
	}
	if !strings.Contains(out, "Initial Capital                $100.00") {
		t.Fatalf("initial capital row not found in:\n%s", out)
	}
}

func TestPerformanceReportDegradesToNA(t *testing.T) {
	// A flat series has zero variance: Sharpe, Sortino and Calmar are all
	// undefined but the report still renders.
	a := newAnalyzer(t, equitySeries(day(2022, 3, 7), "100", "100", "100"))

	var buf bytes.Buffer
	a.WriteReport(&buf)
	out := buf.String()

	if !strings.Contains(out, "Sharpe Ratio                   N/A") {
		t.Fatalf("sharpe row did not degrade in:\n%s", out)
	}
	if !strings.Contains(out, "Max Drawdown                   N/A") {
		t.Fatalf("max drawdown row did not degrade in:\n%s", out)
	}
	if !strings.Contains(out, "Net Profits%                   0.00%") {
		t.Fatalf("net profit row not found in:\n%s", out)
	}
}

func TestPerformanceMetricsOmitsUndefined(t *testing.T) {
	a := newAnalyzer(t, equitySeries(day(2022, 3, 7), "100", "100", "100"))
	m := a.Metrics()

	if _, ok := m["sharpe_ratio"]; ok {
		t.Fatal("sharpe_ratio should be omitted for a flat series")
	}
	if _, ok := m["max_drawdown_pct"]; ok {
		t.Fatal("max_drawdown_pct should be omitted for a flat series")
	}
	if got := m["net_profit_pct"]; got != 0 {
		t.Fatalf("net_profit_pct got=%f, want=0", got)
	}
	if got := m["initial_capital"]; got != 100 {
		t.Fatalf("initial_capital got=%f, want=100", got)
	}
	if got := m["annual_risk_pct"]; got != 0 {
		t.Fatalf("annual_risk_pct got=%f, want=0", got)
	}
}

func TestTradeReportRenders(t *testing.T) {
	src, trades := tradeFixture()
	a, err := NewTradeAnalyzer(context.Background(), src, trades)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	a.WriteReport(&buf)
	out := buf.String()

	for _, label := range []string{
		"All Trades", "Winning Trades", "Losing Trades",
		"Frequency", "Average Length", "Win Rate", "Loss Rate",
		"Longest Win Streak", "Longest Loss Streak",
	} {
		if !strings.Contains(out, label) {
			t.Fatalf("report is missing label %q", label)
		}
	}
	if !strings.Contains(out, "Win Rate                       50.00%") {
		t.Fatalf("win rate row not found in:\n%s", out)
	}
}

func TestTradeReportDegradesToNA(t *testing.T) {
	src := &stubSource{series: map[string][]types.Candle{
		"AAPL": candles("AAPL", day(2022, 3, 7), "100", "105"),
	}}
	trades := []types.Trade{
		types.NewTrade(1, "AAPL", decimal.NewFromInt(10), decimal.NewFromInt(1), day(2022, 3, 7), day(2022, 3, 8)),
	}
	a, err := NewTradeAnalyzer(context.Background(), src, trades)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	a.WriteReport(&buf)
	out := buf.String()

	if !strings.Contains(out, "Average Loss Return            N/A") {
		t.Fatalf("loss-side rows did not degrade in:\n%s", out)
	}

	m := a.Metrics()
	if _, ok := m["average_loss_return_pct"]; ok {
		t.Fatal("average_loss_return_pct should be omitted without losers")
	}
	if got := m["win_rate_pct"]; got != 100 {
		t.Fatalf("win_rate_pct got=%f, want=100", got)
	}
}
