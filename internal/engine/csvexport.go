package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"btrader/types"
)

// WriteEquityCSVFile writes the equity timeseries to a CSV file at the given path.
func WriteEquityCSVFile(path string, series []types.EquityPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create equity file: %w", err)
	}
	defer f.Close()

	return WriteEquityCSV(f, series)
}

// WriteEquityCSV writes the equity timeseries to any io.Writer as CSV.
// You can pass os.Stdout for debugging, or a file.
func WriteEquityCSV(w io.Writer, series []types.EquityPoint) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	tickers := seriesTickers(series)

	header := []string{"date", "cash"}
	header = append(header, tickers...)
	header = append(header, "total_value")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, point := range series {
		record := []string{
			point.Date.Format("2006-01-02"),
			point.Cash.String(),
		}
		for _, ticker := range tickers {
			record = append(record, point.Positions[ticker].String())
		}
		record = append(record, point.TotalValue.String())

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	// Check for any error from the csv.Writer
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

// seriesTickers collects the sorted union of tickers held anywhere in the series.
func seriesTickers(series []types.EquityPoint) []string {
	seen := make(map[string]bool)
	for _, point := range series {
		for ticker := range point.Positions {
			seen[ticker] = true
		}
	}
	tickers := make([]string, 0, len(seen))
	for ticker := range seen {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	return tickers
}
