package repository

import (
	"context"
	"errors"
	"fmt"

	"btrader/types"

	"github.com/jackc/pgx/v5"
)

const assetByTickerSQL = `
SELECT id, ticker, name, type, created_at, modified_at
FROM assets
WHERE ticker = $1`

// GetAssetByTicker retrieves a types.Asset by its ticker.
func (db *Database) GetAssetByTicker(ticker string, ctx context.Context) (*types.Asset, error) {
	row := db.pool.QueryRow(ctx, assetByTickerSQL, ticker)

	var asset types.Asset
	var assetType string
	err := row.Scan(&asset.Id, &asset.Ticker, &asset.Name, &assetType, &asset.CreatedAt, &asset.ModifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ticker %s %w", ticker, ErrAssetNotFound)
		}
		return nil, err
	}
	asset.Type = types.AssetType(assetType)
	return &asset, nil
}
