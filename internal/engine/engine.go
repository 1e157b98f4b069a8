package engine

import (
	"context"
	"io"

	"btrader/types"
)

// Engine wires the simulator and the two analyzers behind one call.
type Engine struct {
	source          priceSource
	simulator       *Simulator
	reportingConfig *ReportingConfig
}

// Result bundles one backtest run: the equity timeseries and the analyzers
// built from it.
type Result struct {
	Equity      []types.EquityPoint
	Performance *PerformanceAnalyzer
	Trades      *TradeAnalyzer
}

func NewEngine(src priceSource, portfolioConfig *PortfolioConfig, simulationConfig *SimulationConfig, reportingConfig *ReportingConfig) *Engine {
	return &Engine{
		source:          src,
		simulator:       NewSimulator(src, portfolioConfig, simulationConfig),
		reportingConfig: reportingConfig,
	}
}

// Run simulates the trade list and constructs both analyzers. Validation
// errors surface here; per-metric errors surface when the metric is read.
func (e *Engine) Run(ctx context.Context, trades []types.Trade) (*Result, error) {
	equity, err := e.simulator.Run(ctx, trades)
	if err != nil {
		return nil, err
	}
	performance, err := NewPerformanceAnalyzer(equity, e.reportingConfig)
	if err != nil {
		return nil, err
	}
	tradeStats, err := NewTradeAnalyzer(ctx, e.source, trades)
	if err != nil {
		return nil, err
	}
	return &Result{
		Equity:      equity,
		Performance: performance,
		Trades:      tradeStats,
	}, nil
}

// WriteReports prints the portfolio report followed by the trade report.
func (r *Result) WriteReports(w io.Writer) {
	r.Performance.WriteReport(w)
	io.WriteString(w, "\n")
	r.Trades.WriteReport(w)
}
