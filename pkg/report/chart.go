package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// ChartSink renders the comparison as a grouped bar chart (HTML),
// one bar group per metric and one series per labeled run.
type ChartSink struct {
	Path  string
	Title string
}

func (s ChartSink) Write(table *ComparisonTable) error {
	if len(table.Rows) == 0 {
		return fmt.Errorf("comparison table is empty")
	}

	title := s.Title
	if title == "" {
		title = "Scheduler Comparison"
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Metric Value",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	names := make([]string, len(table.Rows))
	for i, row := range table.Rows {
		names[i] = row.Metric
	}
	bar.SetXAxis(names)

	for li, label := range table.Labels {
		data := make([]opts.BarData, len(table.Rows))
		for ri, row := range table.Rows {
			data[ri] = opts.BarData{Value: row.Values[li]}
		}
		bar.AddSeries(label, data)
	}
	bar.SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
	)

	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	return bar.Render(f)
}
