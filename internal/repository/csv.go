package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"btrader/internal/calendar"
	"btrader/types"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// csvBar is one row of a <TICKER>.csv file.
type csvBar struct {
	Date   string          `csv:"date"`
	Open   decimal.Decimal `csv:"open"`
	High   decimal.Decimal `csv:"high"`
	Low    decimal.Decimal `csv:"low"`
	Close  decimal.Decimal `csv:"close"`
	Volume decimal.Decimal `csv:"volume"`
}

// CSVSource serves price history from per-ticker CSV files in a directory,
// for offline runs without a database.
type CSVSource struct {
	dir string
}

func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

func (s *CSVSource) GetSeries(ctx context.Context, ticker string, start, end time.Time) ([]types.Candle, error) {
	path := filepath.Join(s.dir, ticker+".csv")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("ticker %s %w", ticker, ErrAssetNotFound)
		}
		return nil, err
	}
	defer f.Close()

	var bars []csvBar
	if err := gocsv.UnmarshalFile(f, &bars); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	start, end = calendar.Normalize(start), calendar.Normalize(end)
	var candles []types.Candle
	for _, bar := range bars {
		ts, err := time.Parse("2006-01-02", bar.Date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q in %s: %w", bar.Date, path, err)
		}
		if ts.Before(start) || ts.After(end) {
			continue
		}
		candles = append(candles, types.Candle{
			Ticker:    ticker,
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Close:     bar.Close,
			Volume:    bar.Volume,
			Interval:  types.Day,
			Timestamp: ts,
		})
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("ticker %s in [%s, %s]: %w",
			ticker, start.Format("2006-01-02"), end.Format("2006-01-02"), ErrNoCandles)
	}
	return candles, nil
}
