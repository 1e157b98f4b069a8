package engine

import (
	"github.com/shopspring/decimal"
)

type PortfolioConfig struct {
	initialCash decimal.Decimal
}

func NewPortfolioConfig(initialCash decimal.Decimal) *PortfolioConfig {
	return &PortfolioConfig{
		initialCash: initialCash,
	}
}

type SimulationConfig struct {
	settlementLagDays int
	showProgress      bool
}

// NewSimulationConfig configures the simulator. settlementLagDays is the
// number of business days between a sale and its cash posting; the
// conventional value is 1.
func NewSimulationConfig(settlementLagDays int, showProgress bool) *SimulationConfig {
	return &SimulationConfig{
		settlementLagDays: settlementLagDays,
		showProgress:      showProgress,
	}
}

type ReportingConfig struct {
	riskFreeRatePct    float64
	tradingDaysPerYear int
	annualBasisDays    int
}

// NewReportingConfig carries the annualization constants: annual risk-free
// rate in percent, trading days per year (252) and the calendar basis for
// annualized returns (365).
func NewReportingConfig(riskFreeRatePct float64, tradingDaysPerYear, annualBasisDays int) *ReportingConfig {
	return &ReportingConfig{
		riskFreeRatePct:    riskFreeRatePct,
		tradingDaysPerYear: tradingDaysPerYear,
		annualBasisDays:    annualBasisDays,
	}
}

// DefaultReportingConfig matches the historical defaults: 4% risk-free,
// 252 trading days, 365-day annualization basis.
func DefaultReportingConfig() *ReportingConfig {
	return NewReportingConfig(4, 252, 365)
}
