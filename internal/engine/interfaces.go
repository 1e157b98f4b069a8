package engine

import (
	"context"
	"time"

	"btrader/types"
)

// priceSource supplies adjusted daily bars per ticker. Implementations must
// signal absence with an explicit error, never an empty series: an empty
// result would otherwise read as a zero price downstream.
type priceSource interface {
	GetSeries(ctx context.Context, ticker string, start, end time.Time) ([]types.Candle, error)
}
