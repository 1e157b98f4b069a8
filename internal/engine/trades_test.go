package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"btrader/types"

	"github.com/shopspring/decimal"
)

func tradeFixture() (*stubSource, []types.Trade) {
	src := &stubSource{series: map[string][]types.Candle{
		"AAPL": candles("AAPL", day(2022, 3, 7), "100", "105"),
		"MSFT": candles("MSFT", day(2022, 3, 7), "100", "97"),
		"NVDA": candles("NVDA", day(2022, 3, 7), "100", "102"),
		"TSLA": candles("TSLA", day(2022, 3, 7), "100", "99"),
	}}
	one := decimal.NewFromInt(1)
	qty := decimal.NewFromInt(10)
	trades := []types.Trade{
		types.NewTrade(1, "AAPL", qty, one, day(2022, 3, 7), day(2022, 3, 8)),
		types.NewTrade(2, "MSFT", qty, one, day(2022, 3, 7), day(2022, 3, 8)),
		types.NewTrade(3, "NVDA", qty, one, day(2022, 3, 7), day(2022, 3, 8)),
		types.NewTrade(4, "TSLA", qty, one, day(2022, 3, 7), day(2022, 3, 8)),
	}
	return src, trades
}

func TestTradeAnalyzerReturns(t *testing.T) {
	src, trades := tradeFixture()
	a, err := NewTradeAnalyzer(context.Background(), src, trades)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{5, -3, 2, -1}
	got := a.Returns()
	if len(got) != len(want) {
		t.Fatalf("got %d returns, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("return %d got=%f, want=%f", i, got[i], want[i])
		}
	}
}

func TestTradeAnalyzerCounts(t *testing.T) {
	src, trades := tradeFixture()
	a, err := NewTradeAnalyzer(context.Background(), src, trades)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := a.TotalTrades(); got != 4 {
		t.Fatalf("total got=%d, want=4", got)
	}
	if got := a.WinningTrades(); got != 2 {
		t.Fatalf("winners got=%d, want=2", got)
	}
	if got := a.LosingTrades(); got != 2 {
		t.Fatalf("losers got=%d, want=2", got)
	}
	if got := a.WinRatePct(); math.Abs(got-50) > 1e-9 {
		t.Fatalf("win rate got=%f, want=50", got)
	}
	if got := a.LossRatePct(); math.Abs(got-50) > 1e-9 {
		t.Fatalf("loss rate got=%f, want=50", got)
	}
	// Wins and losses alternate, so no streak exceeds one.
	if got := a.LongestWinStreak(); got != 1 {
		t.Fatalf("win streak got=%d, want=1", got)
	}
	if got := a.LongestLossStreak(); got != 1 {
		t.Fatalf("loss streak got=%d, want=1", got)
	}
}

func TestTradeAnalyzerAverages(t *testing.T) {
	src, trades := tradeFixture()
	a, err := NewTradeAnalyzer(context.Background(), src, trades)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := a.AverageReturnPct(); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("average return got=%f, want=0.75", got)
	}
	if got, err := a.AverageWinReturnPct(); err != nil || math.Abs(got-3.5) > 1e-9 {
		t.Fatalf("average win got=%f err=%v, want=3.5", got, err)
	}
	if got, err := a.AverageLossReturnPct(); err != nil || math.Abs(got+2) > 1e-9 {
		t.Fatalf("average loss got=%f err=%v, want=-2", got, err)
	}
	if got := a.AverageHoldingDays(); math.Abs(got-1) > 1e-9 {
		t.Fatalf("average length got=%f, want=1", got)
	}
}

func TestTradeAnalyzerExtremes(t *testing.T) {
	src, trades := tradeFixture()
	a, err := NewTradeAnalyzer(context.Background(), src, trades)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		fn   func() (float64, error)
		want float64
	}{
		{"best win", a.BestWinReturnPct, 5},
		{"worst win", a.WorstWinReturnPct, 2},
		{"best loss", a.BestLossReturnPct, -1},
		{"worst loss", a.WorstLossReturnPct, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("got=%f, want=%f", got, tt.want)
			}
		})
	}
}

func TestTradeAnalyzerZeroReturnIsWin(t *testing.T) {
	src := &stubSource{series: map[string][]types.Candle{
		"AAPL": candles("AAPL", day(2022, 3, 7), "100", "100"),
	}}
	trades := []types.Trade{
		types.NewTrade(1, "AAPL", decimal.NewFromInt(10), decimal.NewFromInt(1), day(2022, 3, 7), day(2022, 3, 8)),
	}
	a, err := NewTradeAnalyzer(context.Background(), src, trades)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := a.WinningTrades(); got != 1 {
		t.Fatalf("winners got=%d, want=1", got)
	}
	if got := a.LosingTrades(); got != 0 {
		t.Fatalf("losers got=%d, want=0", got)
	}
	// Loss-side statistics have no members to aggregate.
	if _, err := a.AverageLosingHoldingDays(); !errors.Is(err, ErrArithmeticUndefined) {
		t.Fatalf("got=%v, want ErrArithmeticUndefined", err)
	}
	if _, err := a.AverageLossReturnPct(); !errors.Is(err, ErrArithmeticUndefined) {
		t.Fatalf("got=%v, want ErrArithmeticUndefined", err)
	}
	if _, err := a.WorstLossReturnPct(); !errors.Is(err, ErrArithmeticUndefined) {
		t.Fatalf("got=%v, want ErrArithmeticUndefined", err)
	}
}

func TestTradeAnalyzerEmpty(t *testing.T) {
	src := &stubSource{series: map[string][]types.Candle{}}
	if _, err := NewTradeAnalyzer(context.Background(), src, nil); !errors.Is(err, ErrNoTrades) {
		t.Fatalf("got=%v, want ErrNoTrades", err)
	}
}

func TestTradeAnalyzerMissingPrices(t *testing.T) {
	src := &stubSource{series: map[string][]types.Candle{
		"AAPL": candles("AAPL", day(2022, 3, 7), "100"),
	}}
	trades := []types.Trade{
		types.NewTrade(1, "AAPL", decimal.NewFromInt(10), decimal.NewFromInt(1), day(2022, 3, 7), day(2022, 3, 8)),
	}
	if _, err := NewTradeAnalyzer(context.Background(), src, trades); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("got=%v, want ErrDataUnavailable", err)
	}
}
