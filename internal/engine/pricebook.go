package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"btrader/internal/calendar"

	"github.com/shopspring/decimal"
)

// priceBook is the resolved per-ticker date->price lookup the simulator and
// trade analyzer work from. Prices are adjusted closes keyed by normalized
// date.
type priceBook struct {
	prices map[string]map[int64]decimal.Decimal
}

func dateKey(t time.Time) int64 {
	return calendar.Normalize(t).Unix()
}

// buildPriceBook fetches every ticker's series over [start, end]. Fetches
// run concurrently but the book is all-or-nothing: the first failure aborts
// and no partial result escapes.
func buildPriceBook(ctx context.Context, src priceSource, tickers []string, start, end time.Time) (*priceBook, error) {
	book := &priceBook{prices: make(map[string]map[int64]decimal.Decimal, len(tickers))}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, ticker := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			series, err := src.GetSeries(ctx, ticker, start, end)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("fetch %s: %w: %v", ticker, ErrDataUnavailable, err)
				}
				return
			}
			byDate := make(map[int64]decimal.Decimal, len(series))
			for _, candle := range series {
				byDate[dateKey(candle.Timestamp)] = candle.Close
			}
			book.prices[ticker] = byDate
		}(ticker)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return book, nil
}

func (b *priceBook) price(ticker string, date time.Time) (decimal.Decimal, bool) {
	p, ok := b.prices[ticker][dateKey(date)]
	return p, ok
}

func (b *priceBook) covers(ticker string, date time.Time) bool {
	_, ok := b.prices[ticker][dateKey(date)]
	return ok
}
