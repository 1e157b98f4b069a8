package types

type Interval string

// The simulator works on daily bars; weekly/monthly exist for context data.
const (
	Day   Interval = "D"
	Week  Interval = "W"
	Month Interval = "M"
)
