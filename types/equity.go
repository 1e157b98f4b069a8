package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquityPoint is one business day of the simulated portfolio: cash on hand,
// the mark-to-market value of every held position and their sum.
// TotalValue = Cash + sum(Positions) holds at every point.
type EquityPoint struct {
	Date       time.Time
	Cash       decimal.Decimal
	Positions  map[string]decimal.Decimal
	TotalValue decimal.Decimal
}
