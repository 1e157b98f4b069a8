package repository

import (
	"context"
	"time"

	"btrader/types"

	"github.com/shopspring/decimal"
)

const dailyCandlesSQL = `
SELECT asset_id, bucket, open, high, low, close, volume
FROM daily_candles
WHERE asset_id = $1 AND bucket >= $2 AND bucket <= $3
ORDER BY bucket`

type candleRow struct {
	AssetID int
	Bucket  time.Time
	Open    decimal.Decimal
	High    decimal.Decimal
	Low     decimal.Decimal
	Close   decimal.Decimal
	Volume  decimal.Decimal
}

// GetDailyCandles returns the adjusted daily bars for an asset over
// [start, end], oldest first.
func (db *Database) GetDailyCandles(assetId int, ticker string, start, end time.Time, ctx context.Context) ([]types.Candle, error) {
	rows, err := db.pool.Query(ctx, dailyCandlesSQL, assetId, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var daos []candleRow
	for rows.Next() {
		var dao candleRow
		if err := rows.Scan(&dao.AssetID, &dao.Bucket, &dao.Open, &dao.High, &dao.Low, &dao.Close, &dao.Volume); err != nil {
			return nil, err
		}
		daos = append(daos, dao)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(daos) == 0 {
		return nil, ErrNoCandles
	}
	return convertCandles(daos, ticker), nil
}

// GetSeries resolves the ticker to an asset and loads its daily candles.
// It is the priceSource implementation consumed by the engine.
func (db *Database) GetSeries(ctx context.Context, ticker string, start, end time.Time) ([]types.Candle, error) {
	asset, err := db.GetAssetByTicker(ticker, ctx)
	if err != nil {
		return nil, err
	}
	return db.GetDailyCandles(asset.Id, ticker, start, end, ctx)
}

func convertCandles(candleDAOs []candleRow, ticker string) []types.Candle {
	var candles []types.Candle
	for _, dao := range candleDAOs {
		candles = append(candles, types.Candle{
			AssetId:   dao.AssetID,
			Ticker:    ticker,
			Open:      dao.Open,
			Close:     dao.Close,
			High:      dao.High,
			Low:       dao.Low,
			Volume:    dao.Volume,
			Interval:  types.Day,
			Timestamp: dao.Bucket,
		})
	}
	return candles
}
