package export

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// MonthPoint is one month of the summary chart. Values are float64 because
// this is chart geometry, not bookkeeping.
type MonthPoint struct {
	Label   string
	Income  float64
	Expense float64
}

var (
	incomeColor  = drawing.Color{R: 46, G: 160, B: 67, A: 255}
	expenseColor = drawing.Color{R: 207, G: 34, B: 46, A: 255}
)

// MonthlyChartPNG renders the per-month income/expense totals as a grouped
// bar chart.
func MonthlyChartPNG(w io.Writer, year int, points []MonthPoint) error {
	bars := make([]chart.Value, 0, len(points)*2)
	maxVal := 0.0
	for _, p := range points {
		bars = append(bars,
			chart.Value{Label: p.Label, Value: p.Income, Style: chart.Style{FillColor: incomeColor, StrokeColor: incomeColor}},
			chart.Value{Label: "", Value: p.Expense, Style: chart.Style{FillColor: expenseColor, StrokeColor: expenseColor}},
		)
		if p.Income > maxVal {
			maxVal = p.Income
		}
		if p.Expense > maxVal {
			maxVal = p.Expense
		}
	}
	if maxVal == 0 {
		maxVal = 1 // keep the y range non-degenerate when there is no data
	}
	graph := chart.BarChart{
		Title:    fmt.Sprintf("Monthly summary %d", year),
		Width:    1200,
		Height:   500,
		BarWidth: 24,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxVal * 1.1},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}
