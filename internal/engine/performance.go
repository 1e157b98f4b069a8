package engine

import (
	"fmt"
	"math"
	"time"

	"btrader/internal/calendar"
	"btrader/types"

	gaussian "github.com/chobie/go-gaussian"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// DrawdownSegment is one maximal run of days where the portfolio sits below
// its running peak. EndDate is the first day back at the peak, or the last
// day of the series when the drawdown never recovers.
type DrawdownSegment struct {
	StartDate      time.Time
	EndDate        time.Time
	LengthDays     int
	MaxDrawdownPct float64
}

// PerformanceAnalyzer derives return, risk and drawdown statistics from an
// equity timeseries. The series is treated as immutable; drawdown segments
// are computed once at construction. Individually-undefined metrics return
// errors at request time so a report can degrade per metric.
type PerformanceAnalyzer struct {
	series     []types.EquityPoint
	config     *ReportingConfig
	pctChanges []float64
	drawdowns  []DrawdownSegment
}

func NewPerformanceAnalyzer(series []types.EquityPoint, config *ReportingConfig) (*PerformanceAnalyzer, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("equity timeseries has %d records, need at least 2: %w",
			len(series), ErrInsufficientData)
	}
	return &PerformanceAnalyzer{
		series:     series,
		config:     config,
		pctChanges: dailyPctChanges(series),
		drawdowns:  segmentDrawdowns(series),
	}, nil
}

func (a *PerformanceAnalyzer) StartDate() time.Time { return a.series[0].Date }
func (a *PerformanceAnalyzer) EndDate() time.Time   { return a.series[len(a.series)-1].Date }

// TimePeriodDays is the calendar-day span of the series.
func (a *PerformanceAnalyzer) TimePeriodDays() int {
	return calendar.DaysBetween(a.StartDate(), a.EndDate())
}

func (a *PerformanceAnalyzer) InitialCapital() decimal.Decimal {
	return a.series[0].TotalValue
}

func (a *PerformanceAnalyzer) EndingCapital() decimal.Decimal {
	return a.series[len(a.series)-1].TotalValue
}

func (a *PerformanceAnalyzer) PeakEquity() decimal.Decimal {
	peak := a.series[0].TotalValue
	for _, p := range a.series[1:] {
		if p.TotalValue.GreaterThan(peak) {
			peak = p.TotalValue
		}
	}
	return peak
}

func (a *PerformanceAnalyzer) TroughEquity() decimal.Decimal {
	trough := a.series[0].TotalValue
	for _, p := range a.series[1:] {
		if p.TotalValue.LessThan(trough) {
			trough = p.TotalValue
		}
	}
	return trough
}

func (a *PerformanceAnalyzer) NetProfit() decimal.Decimal {
	return a.EndingCapital().Sub(a.InitialCapital())
}

func (a *PerformanceAnalyzer) NetProfitPct() (float64, error) {
	initial := a.InitialCapital()
	if initial.IsZero() {
		return 0, fmt.Errorf("zero initial capital: %w", ErrArithmeticUndefined)
	}
	return 100 * a.NetProfit().InexactFloat64() / initial.InexactFloat64(), nil
}

// AnnualReturnPct compounds the net return over the configured calendar
// basis (365 days).
func (a *PerformanceAnalyzer) AnnualReturnPct() (float64, error) {
	days := a.TimePeriodDays()
	if days == 0 {
		return 0, fmt.Errorf("zero-day period: %w", ErrArithmeticUndefined)
	}
	netPct, err := a.NetProfitPct()
	if err != nil {
		return 0, err
	}
	exponent := float64(a.config.annualBasisDays) / float64(days)
	return 100 * (math.Pow(1+netPct/100, exponent) - 1), nil
}

// AnnualRiskPct is the sample standard deviation of daily percentage
// changes, scaled by sqrt(trading days per year).
func (a *PerformanceAnalyzer) AnnualRiskPct() (float64, error) {
	if len(a.pctChanges) < 2 {
		return 0, fmt.Errorf("%d daily changes, need at least 2: %w",
			len(a.pctChanges), ErrInsufficientData)
	}
	return stat.StdDev(a.pctChanges, nil) * math.Sqrt(float64(a.config.tradingDaysPerYear)), nil
}

func (a *PerformanceAnalyzer) SharpeRatio() (float64, error) {
	annualReturn, err := a.AnnualReturnPct()
	if err != nil {
		return 0, err
	}
	annualRisk, err := a.AnnualRiskPct()
	if err != nil {
		return 0, err
	}
	if annualRisk == 0 {
		return 0, fmt.Errorf("zero annual risk: %w", ErrArithmeticUndefined)
	}
	return (annualReturn - a.config.riskFreeRatePct) / annualRisk, nil
}

// DownsideDeviationPct annualizes the standard deviation of the negative
// daily changes only.
func (a *PerformanceAnalyzer) DownsideDeviationPct() (float64, error) {
	var negatives []float64
	for _, change := range a.pctChanges {
		if change < 0 {
			negatives = append(negatives, change/100)
		}
	}
	if len(negatives) < 2 {
		return 0, fmt.Errorf("%d negative daily changes, need at least 2: %w",
			len(negatives), ErrInsufficientData)
	}
	return 100 * stat.StdDev(negatives, nil) * math.Sqrt(float64(a.config.tradingDaysPerYear)), nil
}

func (a *PerformanceAnalyzer) SortinoRatio() (float64, error) {
	annualReturn, err := a.AnnualReturnPct()
	if err != nil {
		return 0, err
	}
	downside, err := a.DownsideDeviationPct()
	if err != nil {
		return 0, err
	}
	if downside == 0 {
		return 0, fmt.Errorf("zero downside deviation: %w", ErrArithmeticUndefined)
	}
	return (annualReturn - a.config.riskFreeRatePct) / downside, nil
}

// VaR95Pct is the parametric one-tail value at risk under a normal
// assumption: annual return minus the 95th-percentile normal quantile times
// annual risk.
func (a *PerformanceAnalyzer) VaR95Pct() (float64, error) {
	annualReturn, err := a.AnnualReturnPct()
	if err != nil {
		return 0, err
	}
	annualRisk, err := a.AnnualRiskPct()
	if err != nil {
		return 0, err
	}
	z := gaussian.NewGaussian(0, 1).Ppf(0.95)
	return annualReturn - z*annualRisk, nil
}

// Drawdowns returns the segments in chronological order.
func (a *PerformanceAnalyzer) Drawdowns() []DrawdownSegment {
	return a.drawdowns
}

// MaxDrawdown is the segment with the deepest decline.
func (a *PerformanceAnalyzer) MaxDrawdown() (DrawdownSegment, error) {
	if len(a.drawdowns) == 0 {
		return DrawdownSegment{}, fmt.Errorf("no drawdown segments: %w", ErrInsufficientData)
	}
	max := a.drawdowns[0]
	for _, segment := range a.drawdowns[1:] {
		if segment.MaxDrawdownPct > max.MaxDrawdownPct {
			max = segment
		}
	}
	return max, nil
}

// LongestDrawdown is the segment spanning the most calendar days.
func (a *PerformanceAnalyzer) LongestDrawdown() (DrawdownSegment, error) {
	if len(a.drawdowns) == 0 {
		return DrawdownSegment{}, fmt.Errorf("no drawdown segments: %w", ErrInsufficientData)
	}
	longest := a.drawdowns[0]
	for _, segment := range a.drawdowns[1:] {
		if segment.LengthDays > longest.LengthDays {
			longest = segment
		}
	}
	return longest, nil
}

func (a *PerformanceAnalyzer) AverageDrawdownPct() (float64, error) {
	if len(a.drawdowns) == 0 {
		return 0, fmt.Errorf("no drawdown segments: %w", ErrInsufficientData)
	}
	sum := 0.0
	for _, segment := range a.drawdowns {
		sum += segment.MaxDrawdownPct
	}
	return sum / float64(len(a.drawdowns)), nil
}

func (a *PerformanceAnalyzer) AverageDrawdownDays() (float64, error) {
	if len(a.drawdowns) == 0 {
		return 0, fmt.Errorf("no drawdown segments: %w", ErrInsufficientData)
	}
	sum := 0
	for _, segment := range a.drawdowns {
		sum += segment.LengthDays
	}
	return float64(sum) / float64(len(a.drawdowns)), nil
}

func (a *PerformanceAnalyzer) CalmarRatio() (float64, error) {
	annualReturn, err := a.AnnualReturnPct()
	if err != nil {
		return 0, err
	}
	max, err := a.MaxDrawdown()
	if err != nil {
		return 0, err
	}
	if max.MaxDrawdownPct == 0 {
		return 0, fmt.Errorf("zero maximum drawdown: %w", ErrArithmeticUndefined)
	}
	return (annualReturn - a.config.riskFreeRatePct) / max.MaxDrawdownPct, nil
}

// dailyPctChanges returns 100*(v[i]/v[i-1] - 1) for i >= 1. Days following
// a non-positive total are skipped rather than producing infinities.
func dailyPctChanges(series []types.EquityPoint) []float64 {
	changes := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev := series[i-1].TotalValue.InexactFloat64()
		if prev <= 0 {
			continue
		}
		cur := series[i].TotalValue.InexactFloat64()
		changes = append(changes, 100*(cur/prev-1))
	}
	return changes
}

// segmentDrawdowns walks the series against its running peak. A segment
// opens the first day the total dips below the peak and closes the first
// day it is back at (or above) the peak, or at the series end.
func segmentDrawdowns(series []types.EquityPoint) []DrawdownSegment {
	peak := series[0].TotalValue
	var segments []DrawdownSegment
	var start time.Time
	open := false
	maxDD := 0.0

	for i, point := range series {
		if point.TotalValue.GreaterThan(peak) {
			peak = point.TotalValue
		}
		below := point.TotalValue.LessThan(peak)

		if below {
			if !open {
				open = true
				start = point.Date
				maxDD = 0
			}
			if !peak.IsZero() {
				dd := 100 * peak.Sub(point.TotalValue).Div(peak).InexactFloat64()
				if dd > maxDD {
					maxDD = dd
				}
			}
		}
		if open && (!below || i == len(series)-1) {
			segments = append(segments, DrawdownSegment{
				StartDate:      start,
				EndDate:        point.Date,
				LengthDays:     calendar.DaysBetween(start, point.Date),
				MaxDrawdownPct: maxDD,
			})
			open = false
		}
	}
	return segments
}
