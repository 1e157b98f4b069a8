package engine

import (
	"context"
	"fmt"

	"btrader/internal/calendar"
	"btrader/types"
)

// TradeAnalyzer computes per-trade return statistics independent of
// portfolio-level cash effects. A trade's return is the percentage move of
// the ticker's price between entry and exit.
//
// Zero-return trades count as wins: the win/loss boundary is return >= 0.
type TradeAnalyzer struct {
	trades  []types.Trade
	returns []float64
}

// NewTradeAnalyzer resolves every trade's entry and exit price through src.
// The full window of every traded ticker must be covered or construction
// fails; no partial statistics are produced.
func NewTradeAnalyzer(ctx context.Context, src priceSource, trades []types.Trade) (*TradeAnalyzer, error) {
	if len(trades) == 0 {
		return nil, fmt.Errorf("empty trade list: %w", ErrNoTrades)
	}
	if err := validateTrades(trades); err != nil {
		return nil, err
	}

	start, end := tradeWindow(trades)
	book, err := buildPriceBook(ctx, src, distinctTickers(trades), start, end)
	if err != nil {
		return nil, err
	}
	if err := checkCoverage(book, trades); err != nil {
		return nil, err
	}

	returns := make([]float64, 0, len(trades))
	for _, trade := range trades {
		entryPrice, _ := book.price(trade.Ticker, trade.EntryDate)
		exitPrice, _ := book.price(trade.Ticker, trade.ExitDate)
		if entryPrice.IsZero() {
			return nil, fmt.Errorf("trade %d entry price is zero: %w", trade.ID, ErrArithmeticUndefined)
		}
		returns = append(returns, 100*(exitPrice.Div(entryPrice).InexactFloat64()-1))
	}
	return &TradeAnalyzer{trades: trades, returns: returns}, nil
}

// Returns exposes the per-trade percentage returns in trade-list order.
func (a *TradeAnalyzer) Returns() []float64 {
	return a.returns
}

func (a *TradeAnalyzer) TotalTrades() int { return len(a.trades) }

func (a *TradeAnalyzer) WinningTrades() int {
	count := 0
	for _, r := range a.returns {
		if r >= 0 {
			count++
		}
	}
	return count
}

func (a *TradeAnalyzer) LosingTrades() int {
	return len(a.trades) - a.WinningTrades()
}

func (a *TradeAnalyzer) WinRatePct() float64 {
	return 100 * float64(a.WinningTrades()) / float64(len(a.trades))
}

func (a *TradeAnalyzer) LossRatePct() float64 {
	return 100 - a.WinRatePct()
}

// AverageHoldingDays is the mean calendar-day span over all trades.
func (a *TradeAnalyzer) AverageHoldingDays() float64 {
	sum := 0
	for _, trade := range a.trades {
		sum += calendar.DaysBetween(trade.EntryDate, trade.ExitDate)
	}
	return float64(sum) / float64(len(a.trades))
}

func (a *TradeAnalyzer) AverageWinningHoldingDays() (float64, error) {
	return a.averageHoldingDays(true)
}

func (a *TradeAnalyzer) AverageLosingHoldingDays() (float64, error) {
	return a.averageHoldingDays(false)
}

func (a *TradeAnalyzer) averageHoldingDays(winners bool) (float64, error) {
	sum, count := 0, 0
	for i, trade := range a.trades {
		if (a.returns[i] >= 0) != winners {
			continue
		}
		sum += calendar.DaysBetween(trade.EntryDate, trade.ExitDate)
		count++
	}
	if count == 0 {
		return 0, fmt.Errorf("no %s: %w", className(winners), ErrArithmeticUndefined)
	}
	return float64(sum) / float64(count), nil
}

func (a *TradeAnalyzer) AverageReturnPct() float64 {
	sum := 0.0
	for _, r := range a.returns {
		sum += r
	}
	return sum / float64(len(a.returns))
}

func (a *TradeAnalyzer) AverageWinReturnPct() (float64, error) {
	wins, err := a.classReturns(true)
	if err != nil {
		return 0, err
	}
	return mean(wins), nil
}

func (a *TradeAnalyzer) AverageLossReturnPct() (float64, error) {
	losses, err := a.classReturns(false)
	if err != nil {
		return 0, err
	}
	return mean(losses), nil
}

// BestWinReturnPct is the largest winning return.
func (a *TradeAnalyzer) BestWinReturnPct() (float64, error) {
	wins, err := a.classReturns(true)
	if err != nil {
		return 0, err
	}
	return maxOf(wins), nil
}

// WorstWinReturnPct is the smallest winning return.
func (a *TradeAnalyzer) WorstWinReturnPct() (float64, error) {
	wins, err := a.classReturns(true)
	if err != nil {
		return 0, err
	}
	return minOf(wins), nil
}

// BestLossReturnPct is the mildest losing return.
func (a *TradeAnalyzer) BestLossReturnPct() (float64, error) {
	losses, err := a.classReturns(false)
	if err != nil {
		return 0, err
	}
	return maxOf(losses), nil
}

// WorstLossReturnPct is the deepest losing return.
func (a *TradeAnalyzer) WorstLossReturnPct() (float64, error) {
	losses, err := a.classReturns(false)
	if err != nil {
		return 0, err
	}
	return minOf(losses), nil
}

// LongestWinStreak scans returns in trade order and reports the longest run
// of consecutive wins.
func (a *TradeAnalyzer) LongestWinStreak() int {
	return a.longestStreak(true)
}

func (a *TradeAnalyzer) LongestLossStreak() int {
	return a.longestStreak(false)
}

func (a *TradeAnalyzer) longestStreak(winners bool) int {
	longest, current := 0, 0
	for _, r := range a.returns {
		if (r >= 0) == winners {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}

func (a *TradeAnalyzer) classReturns(winners bool) ([]float64, error) {
	var out []float64
	for _, r := range a.returns {
		if (r >= 0) == winners {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no %s: %w", className(winners), ErrArithmeticUndefined)
	}
	return out, nil
}

func className(winners bool) string {
	if winners {
		return "winning trades"
	}
	return "losing trades"
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maxOf(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func minOf(values []float64) float64 {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}
