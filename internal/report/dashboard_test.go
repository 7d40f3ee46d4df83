package report

import (
	"errors"
	"testing"

	"github.com/Veraticus/reviewlens/internal/analysis"
	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/table"
	"github.com/Veraticus/reviewlens/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	return testutil.NewReviewBuilder(t).
		Add(testutil.Product("A1", "M1"), testutil.Rating(5), testutil.Date("2024-01-05")).
		Add(testutil.Product("A1", "M1"), testutil.Rating(4), testutil.Date("2024-02-05")).
		Add(testutil.Product("A1", "M2"), testutil.Rating(2), testutil.Date("2024-02-07")).
		Add(testutil.Product("B2", ""), testutil.Rating(3), testutil.NoDate()).
		Build()
}

func TestBuild_AllSections(t *testing.T) {
	d := Build(sampleTable(t), Options{})

	assert.Empty(t, d.Failed())
	assert.Equal(t, analysis.ByAsin, d.By)

	assert.Equal(t, 4, d.Overview.Value.Rows)
	assert.Equal(t, 2, d.Summary.Value.Count(model.ReviewTypePositive))
	assert.Len(t, d.Groups.Value.Groups, 2)
	assert.Equal(t, []string{"A1", "B2"}, d.Distribution.Value.Groups)
	assert.Equal(t, 1, d.Trend.Value.Excluded)

	assert.Nil(t, d.Breakdown)
	assert.Nil(t, d.BasicGroups)
	assert.Nil(t, d.RatingCounts)
	assert.Nil(t, d.OverallTrend)
}

func TestBuild_FallbacksWhenReviewTypeMissing(t *testing.T) {
	tbl := sampleTable(t)
	tbl.Columns = []string{table.ColID, table.ColAsin, table.ColModel, table.ColRating, table.ColDate}

	d := Build(tbl, Options{By: analysis.ByAsinModel})

	assert.Equal(t, []string{"groups", "summary"}, d.Failed())
	assert.True(t, errors.Is(d.Summary.Err, common.ErrSchema))
	assert.NotEmpty(t, d.Summary.Error)

	// Sections that do not need the missing column still render.
	assert.True(t, d.Overview.OK())
	assert.True(t, d.Distribution.OK())
	assert.True(t, d.Trend.OK())

	require.NotNil(t, d.Breakdown)
	require.True(t, d.Breakdown.OK())
	assert.Equal(t, 2, d.Breakdown.Value.High)

	require.NotNil(t, d.BasicGroups)
	require.True(t, d.BasicGroups.OK())
	assert.Len(t, d.BasicGroups.Value, 3)
}

func TestBuild_TrendFallsBackToOverall(t *testing.T) {
	tbl := sampleTable(t)

	d := Build(tbl, Options{Trend: analysis.TrendOptions{By: analysis.GroupBy{"Rating"}}})

	assert.False(t, d.Trend.OK())
	assert.True(t, errors.Is(d.Trend.Err, analysis.ErrInvalidGroup))
	require.NotNil(t, d.OverallTrend)
	require.True(t, d.OverallTrend.OK())
	assert.Equal(t, analysis.OverallSeries, d.OverallTrend.Value.Series[0].Group)
}

func TestBuild_DistributionFallsBackToCounts(t *testing.T) {
	tbl := sampleTable(t)
	tbl.Columns = []string{table.ColAsin}

	d := Build(tbl, Options{})

	assert.True(t, d.Overview.Err != nil)
	assert.False(t, d.Distribution.OK())
	require.NotNil(t, d.RatingCounts)
	assert.False(t, d.RatingCounts.OK(), "fallbacks report their own errors")
	require.NotNil(t, d.Breakdown)
	assert.False(t, d.Breakdown.OK())
}

func TestRun_RecoversPanics(t *testing.T) {
	s := run("boom", func() (int, error) {
		var m map[string]int
		m["x"] = 1
		return 1, nil
	})

	assert.False(t, s.OK())
	assert.True(t, errors.Is(s.Err, common.ErrAnalysisFailed))
	assert.Contains(t, s.Error, "boom")
	assert.Zero(t, s.Value)

	ok := run("fine", func() (string, error) { return "v", nil })
	assert.True(t, ok.OK())
	assert.Equal(t, "v", ok.Value)
	assert.Empty(t, ok.Error)
}

func TestPieSlices_ZeroFill(t *testing.T) {
	s := analysis.Summary{Total: 3, Types: []analysis.TypeCount{
		{Type: model.ReviewTypeNegative, Count: 2},
		{Type: model.ReviewTypeUnknown, Count: 1},
	}}

	assert.Equal(t, []Slice{
		{Type: model.ReviewTypePositive, Color: "#2ECC71", Count: 0},
		{Type: model.ReviewTypeNeutral, Color: "#F1C40F", Count: 0},
		{Type: model.ReviewTypeNegative, Color: "#E74C3C", Count: 2},
	}, PieSlices(s))
}
