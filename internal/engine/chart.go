package engine

import (
	"fmt"
	"os"

	"btrader/types"

	charts "github.com/vicanso/go-charts/v2"
)

// RenderEquityChart renders the equity curve as PNG bytes.
func RenderEquityChart(series []types.EquityPoint) ([]byte, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("empty equity timeseries: %w", ErrInsufficientData)
	}

	values := make([]float64, 0, len(series))
	labels := make([]string, 0, len(series))
	for _, point := range series {
		values = append(values, point.TotalValue.InexactFloat64())
		labels = append(labels, point.Date.Format("2006-01-02"))
	}

	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc("Portfolio Performance"),
		charts.XAxisDataOptionFunc(labels),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("render equity chart: %w", err)
	}

	return painter.Bytes()
}

// WriteEquityChartFile renders the equity curve and writes it as a PNG file.
func WriteEquityChartFile(path string, series []types.EquityPoint) error {
	img, err := RenderEquityChart(series)
	if err != nil {
		return err
	}
	return os.WriteFile(path, img, 0o644)
}
