package repository

import (
	"testing"
	"time"

	"btrader/types"

	"github.com/shopspring/decimal"
)

func TestConvertCandles(t *testing.T) {
	bucket := time.Date(2022, 3, 7, 0, 0, 0, 0, time.UTC)
	daos := []candleRow{
		{
			AssetID: 42,
			Bucket:  bucket,
			Open:    decimal.RequireFromString("100"),
			High:    decimal.RequireFromString("103"),
			Low:     decimal.RequireFromString("99"),
			Close:   decimal.RequireFromString("102"),
			Volume:  decimal.RequireFromString("1000"),
		},
	}

	candles := convertCandles(daos, "AAPL")
	if len(candles) != 1 {
		t.Fatalf("got %d candles, want 1", len(candles))
	}

	candle := candles[0]
	if candle.AssetId != 42 {
		t.Fatalf("asset id got=%d, want=42", candle.AssetId)
	}
	if candle.Ticker != "AAPL" {
		t.Fatalf("ticker got=%s, want=AAPL", candle.Ticker)
	}
	if candle.Interval != types.Day {
		t.Fatalf("interval got=%s, want=%s", candle.Interval, types.Day)
	}
	if !candle.Timestamp.Equal(bucket) {
		t.Fatalf("timestamp got=%s, want=%s", candle.Timestamp, bucket)
	}
	if !candle.Close.Equal(decimal.RequireFromString("102")) {
		t.Fatalf("close got=%s, want=102", candle.Close)
	}
}
