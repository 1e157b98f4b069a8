package smacross

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"btrader/types"
)

var (
	ErrUnknownIndicator = errors.New("unknown indicator")
	ErrNotEnoughCandles = errors.New("not enough candles for indicator period")
)

// State is the position state of the crossover machine.
type State int

const (
	StateFlat State = iota
	StateLong
)

func (s State) String() string {
	if s == StateLong {
		return "LONG"
	}
	return "FLAT"
}

type Config struct {
	Ticker    string
	Indicator string
	Period    int
	Quantity  decimal.Decimal
}

type Strategy struct {
	config    Config
	indicator Indicator
}

func New(config Config, registry *Registry) (*Strategy, error) {
	if config.Period < 1 {
		return nil, fmt.Errorf("period %d: %w", config.Period, ErrNotEnoughCandles)
	}
	fn, ok := registry.Lookup(config.Indicator)
	if !ok {
		return nil, fmt.Errorf("%q: %w", config.Indicator, ErrUnknownIndicator)
	}
	return &Strategy{config: config, indicator: fn}, nil
}

// next is the pure transition function: above the moving average means long,
// at or below means flat.
func next(close, ma float64) State {
	if close > ma {
		return StateLong
	}
	return StateFlat
}

// Trades folds the candle series through the state machine and returns the
// round-trip trades. A position still open on the last candle is closed at
// that candle's date.
func (s *Strategy) Trades(candles []types.Candle) ([]types.Trade, error) {
	if len(candles) < s.config.Period+1 {
		return nil, fmt.Errorf("%d candles, period %d: %w", len(candles), s.config.Period, ErrNotEnoughCandles)
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close.InexactFloat64()
	}
	ma := s.indicator(closes, s.config.Period)

	var trades []types.Trade
	state := StateFlat
	var entry int
	id := 1
	for i := s.config.Period - 1; i < len(candles); i++ {
		to := next(closes[i], ma[i])
		switch {
		case state == StateFlat && to == StateLong:
			entry = i
		case state == StateLong && to == StateFlat:
			trades = append(trades, types.NewTrade(id, s.config.Ticker, s.config.Quantity, decimal.NewFromInt(1), candles[entry].Timestamp, candles[i].Timestamp))
			id++
		}
		state = to
	}
	if state == StateLong {
		last := len(candles) - 1
		trades = append(trades, types.NewTrade(id, s.config.Ticker, s.config.Quantity, decimal.NewFromInt(1), candles[entry].Timestamp, candles[last].Timestamp))
	}
	return trades, nil
}
