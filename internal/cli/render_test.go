package cli

import (
	"errors"
	"testing"

	"github.com/Veraticus/reviewlens/internal/analysis"
	"github.com/Veraticus/reviewlens/internal/classification"
	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/report"
	"github.com/Veraticus/reviewlens/internal/storage"
	"github.com/Veraticus/reviewlens/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestRenderOverview(t *testing.T) {
	out := RenderOverview(analysis.Overview{MeanRating: f(4.25), Rows: 8, Products: 2, FirstMonth: "2024-01", LastMonth: "2024-03"})
	assert.Contains(t, out, "4.25")
	assert.Contains(t, out, "2024-01 to 2024-03")

	out = RenderOverview(analysis.Overview{})
	assert.Contains(t, out, "Mean rating:  -")
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(analysis.Summary{Total: 4, Types: []analysis.TypeCount{
		{Type: model.ReviewTypePositive, Count: 3, Percentage: 75},
		{Type: model.ReviewTypeNegative, Count: 1, Percentage: 25},
	}})
	assert.Contains(t, out, "positive")
	assert.Contains(t, out, "75.00%")
	assert.Contains(t, out, "4 reviews in total")
}

func TestRenderGroups(t *testing.T) {
	out := RenderGroups(analysis.ByAsinModel, []analysis.GroupStat{
		{Key: "A1 - M1", Count: 3, Mean: f(4), Std: nil, TypeCounts: map[model.ReviewType]int{model.ReviewTypePositive: 2}},
	})
	assert.Contains(t, out, "Asin + Model")
	assert.Contains(t, out, "A1 - M1")
	assert.Contains(t, out, "4.00")
}

func TestRenderDistribution(t *testing.T) {
	d := analysis.Distribution{Groups: []string{"A1"}, Ratings: []float64{1, 4.5}, Values: [][]float64{{25, 75}}, Percentage: true}
	out := RenderDistribution(d)
	assert.Contains(t, out, "Rating distribution")
	assert.Contains(t, out, "4.5")
	assert.Contains(t, out, "75.00%")

	d.Percentage = false
	d.Values = [][]float64{{1, 3}}
	assert.Contains(t, RenderDistribution(d), "Rating counts")
}

func TestRenderTrend(t *testing.T) {
	out := RenderTrend(&analysis.Trend{
		Months: []string{"2024-01", "2024-02"},
		Series: []analysis.TrendSeries{
			{Group: "A1", Points: []analysis.TrendPoint{{Month: "2024-01", Mean: 4.5, Count: 2}}},
		},
		Excluded: 3,
	})
	assert.Contains(t, out, "4.50 (2)")
	assert.Contains(t, out, "3 reviews without a date")
}

func TestRenderDashboardFallbacks(t *testing.T) {
	tbl := testutil.NewReviewBuilder(t).
		WithColumns("Rating").
		WithRatings([]float64{5, 1}).
		Build()

	d := report.Build(tbl, report.Options{})
	require.NotEmpty(t, d.Failed())

	out := RenderDashboard(d)
	assert.Contains(t, out, "Overview unavailable")
	assert.Contains(t, out, "Rating breakdown")
	assert.Contains(t, out, "1 high (4+), 1 low (2-) of 2 reviews")
}

func TestRenderClassification(t *testing.T) {
	out := RenderClassification([]classification.CategoryStat{
		{Name: "Kids", Keywords: 2, Matched: 1, Unmatched: 3, Percentage: 25},
	}, 4)
	assert.Contains(t, out, "Classification of 4 reviews")
	assert.Contains(t, out, "Kids")
	assert.Contains(t, out, "25.00%")
}

func TestRenderCategories(t *testing.T) {
	assert.Contains(t, RenderCategories(nil), "No categories defined")
	out := RenderCategories([]model.Category{{Name: "Pets", Keywords: "dog,cat"}})
	assert.Contains(t, out, "Pets")
	assert.Contains(t, out, "dog,cat")
}

func TestRenderPresets(t *testing.T) {
	presets := storage.Presets()
	out := RenderPresets(presets, func(name string) bool { return name == presets[0].Name })
	assert.Contains(t, out, presets[0].Name)
	assert.Contains(t, out, SuccessIcon)
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("saved"), "saved")
	assert.Contains(t, FormatError("failed"), ErrorIcon)
	assert.Contains(t, FormatWarning(errors.New("careful").Error()), "careful")
	assert.Contains(t, RenderBox("Title", "body"), "body")
}

func TestRenderTableDrawsBorders(t *testing.T) {
	out := renderTable([]string{"Name", "Count"}, [][]string{{"Kids", "2"}})
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Kids")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "│")
}
