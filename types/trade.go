package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideTypeBuy  Side = "BUY"
	SideTypeSell Side = "SELL"
)

// Trade is a closed round trip produced by a strategy: buy Quantity of
// Ticker on EntryDate, sell it on ExitDate. Trades are immutable once
// built; the simulator and trade analyzer only read them.
type Trade struct {
	ID        int
	Ticker    string
	Quantity  decimal.Decimal
	Leverage  decimal.Decimal
	EntryDate time.Time
	ExitDate  time.Time
}

func NewTrade(id int, ticker string, quantity, leverage decimal.Decimal, entryDate, exitDate time.Time) Trade {
	return Trade{
		ID:        id,
		Ticker:    ticker,
		Quantity:  quantity,
		Leverage:  leverage,
		EntryDate: entryDate,
		ExitDate:  exitDate,
	}
}
