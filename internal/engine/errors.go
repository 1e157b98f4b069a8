package engine

import "errors"

// Global error declarations.
var (
	// ErrInvalidInput covers malformed trade lists: empty list,
	// non-positive quantity, entry date after exit date. Raised before any
	// price data is fetched.
	ErrInvalidInput = errors.New("invalid trade input")

	// ErrDataUnavailable means a ticker has no price coverage for a date
	// the simulation needs. The whole run aborts; partial data is never used.
	ErrDataUnavailable = errors.New("price data unavailable")

	// ErrInsufficientData means a statistic needs more records than the
	// series provides (fewer than 2 equity points, fewer than 2 samples
	// for a standard deviation).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrArithmeticUndefined is returned instead of silently producing
	// Inf/NaN when a ratio's denominator is zero.
	ErrArithmeticUndefined = errors.New("arithmetic undefined")

	// ErrNoTrades is returned by the trade analyzer for an empty trade list.
	ErrNoTrades = errors.New("no trades")
)
