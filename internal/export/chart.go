package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/piwi3910/kerfcut/internal/engine"
	"github.com/piwi3910/kerfcut/internal/model"
)

// ExportChart renders an HTML page with a stacked bar per sheet showing the
// used and wasted share of its area.
func ExportChart(w io.Writer, result model.OptimizationResult) error {
	if len(result.Sheets) == 0 {
		return ErrNoSheets
	}

	stats := engine.CalculateStats(result)
	names := make([]string, len(result.Sheets))
	used := make([]opts.BarData, len(result.Sheets))
	waste := make([]opts.BarData, len(result.Sheets))
	for i, s := range result.Sheets {
		eff := math.Round(s.Efficiency()*10) / 10
		names[i] = fmt.Sprintf("%d: %s", i+1, s.Stock.Name)
		used[i] = opts.BarData{Value: eff}
		waste[i] = opts.BarData{Value: math.Round((100-eff)*10) / 10}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "kerfcut sheet utilization"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Sheet utilization",
			Subtitle: fmt.Sprintf("%d sheets, %s%% waste, %d unplaced", stats.Sheets, stats.Waste.StringFixed(1), stats.Unplaced),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%", Max: 100}),
		charts.WithLegendOpts(opts.Legend{Right: "10%"}),
	)
	bar.SetXAxis(names).
		AddSeries("Used", used).
		AddSeries("Waste", waste).
		SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "area"}))

	return bar.Render(w)
}
