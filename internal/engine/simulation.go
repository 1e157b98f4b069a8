package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"btrader/internal/calendar"
	"btrader/types"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

// Simulator turns a trade list into a day-indexed equity timeseries.
//
// Cash effects are modeled as step functions applied "from this date
// onward" rather than running deltas: the whole series is recomputed from
// the trade list and prices alone, which keeps reruns deterministic.
type Simulator struct {
	source          priceSource
	portfolioConfig *PortfolioConfig
	config          *SimulationConfig
}

func NewSimulator(src priceSource, portfolioConfig *PortfolioConfig, config *SimulationConfig) *Simulator {
	return &Simulator{
		source:          src,
		portfolioConfig: portfolioConfig,
		config:          config,
	}
}

// Run produces one EquityPoint per business day from the earliest entry to
// one business day after the latest exit (sale proceeds post with a
// settlement lag). The input trade list is not mutated.
func (s *Simulator) Run(ctx context.Context, trades []types.Trade) ([]types.EquityPoint, error) {
	if err := validateTrades(trades); err != nil {
		return nil, err
	}

	start, end := tradeWindow(trades)
	end = calendar.AddBusinessDays(end, s.config.settlementLagDays)
	dates := calendar.Range(start, end)

	dateIndex := make(map[int64]int, len(dates))
	for i, d := range dates {
		dateIndex[dateKey(d)] = i
	}

	tickers := distinctTickers(trades)
	book, err := buildPriceBook(ctx, s.source, tickers, start, end)
	if err != nil {
		return nil, err
	}
	if err := checkCoverage(book, trades); err != nil {
		return nil, err
	}

	cash := make([]decimal.Decimal, len(dates))
	for i := range cash {
		cash[i] = s.portfolioConfig.initialCash
	}
	quantities := make(map[string][]decimal.Decimal, len(tickers))
	for _, ticker := range tickers {
		quantities[ticker] = make([]decimal.Decimal, len(dates))
	}

	for _, trade := range trades {
		entryIdx, ok := dateIndex[dateKey(trade.EntryDate)]
		if !ok {
			return nil, fmt.Errorf("trade %d entry %s is not a business day: %w",
				trade.ID, trade.EntryDate.Format("2006-01-02"), ErrInvalidInput)
		}
		exitIdx, ok := dateIndex[dateKey(trade.ExitDate)]
		if !ok {
			return nil, fmt.Errorf("trade %d exit %s is not a business day: %w",
				trade.ID, trade.ExitDate.Format("2006-01-02"), ErrInvalidInput)
		}

		// Position quantity held over [entry, exit]. Overlapping trades on
		// one ticker are not supported: the last-applied trade's quantity
		// wins on the overlapping dates.
		qty := quantities[trade.Ticker]
		for i := entryIdx; i <= exitIdx; i++ {
			qty[i] = trade.Quantity
		}

		entryPrice, _ := book.price(trade.Ticker, trade.EntryDate)
		cost := trade.Quantity.Mul(entryPrice)
		for i := entryIdx; i < len(dates); i++ {
			cash[i] = cash[i].Sub(cost)
		}

		exitPrice, _ := book.price(trade.Ticker, trade.ExitDate)
		proceeds := trade.Quantity.Mul(exitPrice)
		for i := exitIdx + s.config.settlementLagDays; i < len(dates); i++ {
			cash[i] = cash[i].Add(proceeds)
		}
	}

	bar := s.progressBar(len(dates))
	points := make([]types.EquityPoint, 0, len(dates))
	for i, date := range dates {
		point := types.EquityPoint{
			Date:      date,
			Cash:      cash[i],
			Positions: make(map[string]decimal.Decimal),
		}
		total := cash[i]
		for _, ticker := range tickers {
			qty := quantities[ticker][i]
			if qty.IsZero() {
				continue
			}
			price, ok := book.price(ticker, date)
			if !ok {
				return nil, fmt.Errorf("%s has no price on %s: %w",
					ticker, date.Format("2006-01-02"), ErrDataUnavailable)
			}
			value := qty.Mul(price)
			point.Positions[ticker] = value
			total = total.Add(value)
		}
		point.TotalValue = total
		points = append(points, point)
		if bar != nil {
			bar.Add(1)
		}
	}
	return points, nil
}

func validateTrades(trades []types.Trade) error {
	if len(trades) == 0 {
		return fmt.Errorf("empty trade list: %w", ErrInvalidInput)
	}
	for _, trade := range trades {
		if !trade.Quantity.IsPositive() {
			return fmt.Errorf("trade %d quantity %s: %w", trade.ID, trade.Quantity, ErrInvalidInput)
		}
		if trade.EntryDate.After(trade.ExitDate) {
			return fmt.Errorf("trade %d entry after exit: %w", trade.ID, ErrInvalidInput)
		}
	}
	return nil
}

func tradeWindow(trades []types.Trade) (time.Time, time.Time) {
	start := calendar.Normalize(trades[0].EntryDate)
	end := calendar.Normalize(trades[0].ExitDate)
	for _, trade := range trades[1:] {
		if entry := calendar.Normalize(trade.EntryDate); entry.Before(start) {
			start = entry
		}
		if exit := calendar.Normalize(trade.ExitDate); exit.After(end) {
			end = exit
		}
	}
	return start, end
}

func distinctTickers(trades []types.Trade) []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, trade := range trades {
		if !seen[trade.Ticker] {
			seen[trade.Ticker] = true
			tickers = append(tickers, trade.Ticker)
		}
	}
	sort.Strings(tickers)
	return tickers
}

func checkCoverage(book *priceBook, trades []types.Trade) error {
	for _, trade := range trades {
		if !book.covers(trade.Ticker, trade.EntryDate) {
			return fmt.Errorf("%s has no price on entry %s of trade %d: %w",
				trade.Ticker, trade.EntryDate.Format("2006-01-02"), trade.ID, ErrDataUnavailable)
		}
		if !book.covers(trade.Ticker, trade.ExitDate) {
			return fmt.Errorf("%s has no price on exit %s of trade %d: %w",
				trade.Ticker, trade.ExitDate.Format("2006-01-02"), trade.ID, ErrDataUnavailable)
		}
	}
	return nil
}

func (s *Simulator) progressBar(maxTicks int) *progressbar.ProgressBar {
	if !s.config.showProgress {
		return nil
	}
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Simulating portfolio..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
