package report

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Veraticus/reviewlens/internal/analysis"
	"github.com/Veraticus/reviewlens/internal/classification"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth  = "960px"
	chartHeight = "520px"
)

// heatmapColors runs from no share to the whole group.
var heatmapColors = []string{"#F7FBFF", "#6BAED6", "#08306B"}

// Renderer is anything that writes itself as a standalone HTML document.
type Renderer interface {
	Render(w io.Writer) error
}

func initOpts(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: title,
		Width:     chartWidth,
		Height:    chartHeight,
	})
}

// PieChart draws the review-type share with fixed positive, neutral and
// negative wedges.
func PieChart(s analysis.Summary) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts("Review types"),
		charts.WithTitleOpts(opts.Title{
			Title:    "Review type distribution",
			Subtitle: fmt.Sprintf("%d reviews", s.Total),
		}),
	)

	data := make([]opts.PieData, 0, len(pieSlices))
	for _, slice := range PieSlices(s) {
		data = append(data, opts.PieData{
			Name:      string(slice.Type),
			Value:     slice.Count,
			ItemStyle: &opts.ItemStyle{Color: slice.Color},
		})
	}
	pie.AddSeries("Review type", data)
	return pie
}

// HeatmapChart draws a distribution matrix: groups down, ratings across.
// Percentage matrices are scaled 0 to 100; count matrices to their largest cell.
func HeatmapChart(d analysis.Distribution) *charts.HeatMap {
	ratings := make([]string, len(d.Ratings))
	for j, v := range d.Ratings {
		ratings[j] = analysis.FormatRating(v)
	}

	title, scale := "Rating distribution (%)", 100.0
	if !d.Percentage {
		title, scale = "Rating counts", 0
		for _, row := range d.Values {
			for _, v := range row {
				scale = math.Max(scale, v)
			}
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		initOpts(title),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Rating", Type: "category", Data: ratings}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: d.Groups}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min:     0,
			Max:     float32(scale),
			InRange: &opts.VisualMapInRange{Color: heatmapColors},
		}),
	)

	data := make([]opts.HeatMapData, 0, len(d.Groups)*len(d.Ratings))
	for i := range d.Groups {
		for j := range d.Ratings {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, roundCell(d.Values[i][j])}})
		}
	}
	hm.AddSeries("Distribution", data)
	return hm
}

// TrendChart draws one line per series over the trend's months. Months
// without a point in a series are gaps.
func TrendChart(t *analysis.Trend) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("Rating trend"),
		charts.WithTitleOpts(opts.Title{
			Title:    "Monthly mean rating",
			Subtitle: fmt.Sprintf("%d rows without a date excluded", t.Excluded),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Mean rating", Min: 1, Max: 5}),
	)
	line.SetXAxis(t.Months)

	for _, series := range t.Series {
		byMonth := make(map[string]float64, len(series.Points))
		for _, p := range series.Points {
			byMonth[p.Month] = p.Mean
		}

		data := make([]opts.LineData, len(t.Months))
		for i, m := range t.Months {
			if v, ok := byMonth[m]; ok {
				data[i] = opts.LineData{Value: v}
			} else {
				data[i] = opts.LineData{Value: "-"}
			}
		}
		line.AddSeries(series.Group, data)
	}
	return line
}

// RatingBarChart draws counts per rating value; it is the fallback view when
// the richer charts cannot be built.
func RatingBarChart(b analysis.Breakdown) *charts.Bar {
	labels := make([]string, len(b.RatingCounts))
	data := make([]opts.BarData, len(b.RatingCounts))
	for i, rc := range b.RatingCounts {
		labels[i] = analysis.FormatRating(rc.Rating)
		data[i] = opts.BarData{Value: rc.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts("Rating counts"),
		charts.WithTitleOpts(opts.Title{
			Title:    "Reviews per rating",
			Subtitle: fmt.Sprintf("%d high, %d low of %d", b.High, b.Low, b.Total),
		}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("Reviews", data)
	return bar
}

// CategoryBarChart draws matched counts per category of a classification run.
func CategoryBarChart(stats []classification.CategoryStat) *charts.Bar {
	labels := make([]string, len(stats))
	matched := make([]opts.BarData, len(stats))
	unmatched := make([]opts.BarData, len(stats))
	for i, s := range stats {
		labels[i] = s.Name
		matched[i] = opts.BarData{Value: s.Matched}
		unmatched[i] = opts.BarData{Value: s.Unmatched}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts("Category matches"),
		charts.WithTitleOpts(opts.Title{Title: "Reviews per category"}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("Matched", matched)
	bar.AddSeries("Unmatched", unmatched)
	return bar
}

// Page combines the charts of every usable dashboard section, substituting
// fallbacks for failed ones.
func Page(d *Dashboard) *components.Page {
	page := components.NewPage()
	page.PageTitle = "Review dashboard"

	if d.Summary.OK() {
		page.AddCharts(PieChart(d.Summary.Value))
	}

	switch {
	case d.Distribution.OK():
		page.AddCharts(HeatmapChart(d.Distribution.Value))
	case d.RatingCounts != nil && d.RatingCounts.OK():
		page.AddCharts(HeatmapChart(d.RatingCounts.Value))
	}

	switch {
	case d.Trend.OK():
		page.AddCharts(TrendChart(d.Trend.Value))
	case d.OverallTrend != nil && d.OverallTrend.OK():
		page.AddCharts(TrendChart(d.OverallTrend.Value))
	}

	if d.Breakdown != nil && d.Breakdown.OK() {
		page.AddCharts(RatingBarChart(d.Breakdown.Value))
	}

	return page
}

func roundCell(v float64) float64 {
	return math.Round(v*100) / 100
}

// RenderFile writes r to path as an HTML document.
func RenderFile(path string, r Renderer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := r.Render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return f.Close()
}
