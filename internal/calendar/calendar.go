// Package calendar centralizes business-day arithmetic so that the
// simulator's settlement lag and the analyzer's period math cannot drift
// apart. Business days are weekdays; there is no holiday table.
package calendar

import "time"

// Normalize truncates t to midnight UTC. All date comparisons in the
// engine go through normalized times.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextBusinessDay returns the first business day strictly after t.
func NextBusinessDay(t time.Time) time.Time {
	next := Normalize(t).AddDate(0, 0, 1)
	for !IsBusinessDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// AddBusinessDays advances t by n business days (n >= 0).
func AddBusinessDays(t time.Time, n int) time.Time {
	cur := Normalize(t)
	for i := 0; i < n; i++ {
		cur = NextBusinessDay(cur)
	}
	return cur
}

// Range returns every business day from start to end inclusive, in order.
// A start falling on a weekend rolls forward to the next business day.
func Range(start, end time.Time) []time.Time {
	start, end = Normalize(start), Normalize(end)
	var days []time.Time
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		if IsBusinessDay(cur) {
			days = append(days, cur)
		}
	}
	return days
}

// DaysBetween is the calendar-day span from start to end.
func DaysBetween(start, end time.Time) int {
	return int(Normalize(end).Sub(Normalize(start)).Hours() / 24)
}
