package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"btrader/internal/engine"
	"btrader/internal/repository"
	"btrader/strategies/smacross"
	"btrader/types"
)

const dateLayout = "2006-01-02"

type priceSource interface {
	GetSeries(ctx context.Context, ticker string, start, end time.Time) ([]types.Candle, error)
}

func main() {
	dbURL := flag.String("db", "", "postgres connection url")
	csvDir := flag.String("csv", "", "directory of <ticker>.csv bar files")
	ticker := flag.String("ticker", "AAPL", "ticker to backtest")
	indicator := flag.String("indicator", "sma", "moving average: sma, ema, wma, trima")
	period := flag.Int("period", 20, "moving average period in days")
	startArg := flag.String("start", "2022-01-01", "first candle date (YYYY-MM-DD)")
	endArg := flag.String("end", "2022-12-31", "last candle date (YYYY-MM-DD)")
	qty := flag.String("qty", "10", "shares per trade")
	cash := flag.String("cash", "100000", "initial cash")
	chartPath := flag.String("chart", "", "write equity chart PNG to this path")
	equityPath := flag.String("equity-csv", "", "write equity timeseries CSV to this path")
	flag.Parse()

	start, err := time.Parse(dateLayout, *startArg)
	if err != nil {
		log.Fatal(err)
	}
	end, err := time.Parse(dateLayout, *endArg)
	if err != nil {
		log.Fatal(err)
	}
	quantity, err := decimal.NewFromString(*qty)
	if err != nil {
		log.Fatal(err)
	}
	initialCash, err := decimal.NewFromString(*cash)
	if err != nil {
		log.Fatal(err)
	}

	var source priceSource
	switch {
	case *csvDir != "":
		source = repository.NewCSVSource(*csvDir)
	case *dbURL != "":
		db, err := repository.NewDatabase(*dbURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		source = &db
	default:
		log.Fatal("either -db or -csv is required")
	}

	ctx := context.Background()
	candles, err := source.GetSeries(ctx, *ticker, start, end)
	if err != nil {
		log.Fatal(err)
	}

	strategy, err := smacross.New(smacross.Config{
		Ticker:    *ticker,
		Indicator: *indicator,
		Period:    *period,
		Quantity:  quantity,
	}, smacross.DefaultRegistry())
	if err != nil {
		log.Fatal(err)
	}
	trades, err := strategy.Trades(candles)
	if err != nil {
		log.Fatal(err)
	}

	eng := engine.NewEngine(
		source,
		engine.NewPortfolioConfig(initialCash),
		engine.NewSimulationConfig(1, true),
		engine.DefaultReportingConfig(),
	)
	result, err := eng.Run(ctx, trades)
	if err != nil {
		log.Fatal(err)
	}
	result.WriteReports(os.Stdout)

	if *chartPath != "" {
		if err := engine.WriteEquityChartFile(*chartPath, result.Equity); err != nil {
			log.Fatal(err)
		}
	}
	if *equityPath != "" {
		if err := engine.WriteEquityCSVFile(*equityPath, result.Equity); err != nil {
			log.Fatal(err)
		}
	}
}
