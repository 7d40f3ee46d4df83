package analysis_test

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

func TestGroupStatistics_CompositeKey(t *testing.T) {
	tbl := testutil.NewReviewBuilder(t).
		WithRatings([]float64{4, 5}, testutil.Product("A1", "M1")).
		WithRatings([]float64{2}, testutil.Product("A1", "M2")).
		Build()

	stats, err := analysis.GroupStatistics(tbl, analysis.ByAsinModel)
	require.NoError(t, err)
	require.Len(t, stats.Groups, 2)

	m1, ok := stats.Group("A1 - M1")
	require.True(t, ok)
	assert.Equal(t, 2, m1.Count)
	require.NotNil(t, m1.Mean)
	assert.InDelta(t, 4.5, *m1.Mean, 1e-9)
	require.NotNil(t, m1.Std)
	assert.InDelta(t, 0.71, *m1.Std, 1e-9)
	assert.Equal(t, map[model.ReviewType]int{model.ReviewTypePositive: 2}, m1.TypeCounts)

	m2, ok := stats.Group("A1 - M2")
	require.True(t, ok)
	assert.Equal(t, 1, m2.Count)
	require.NotNil(t, m2.Mean)
	assert.InDelta(t, 2.0, *m2.Mean, 1e-9)
	assert.Nil(t, m2.Std, "deviation of a single row is undefined")
	assert.Equal(t, map[model.ReviewType]int{model.ReviewTypeNegative: 1}, m2.TypeCounts)
}

func TestGroupStatistics_Distribution(t *testing.T) {
	tbl := testutil.NewReviewBuilder(t).
		WithRatings([]float64{5, 5, 1}, testutil.Product("B", "")).
		WithRatings([]float64{3, 4, 4, 2}, testutil.Product("A", "")).
		Add(testutil.Product("C", ""), testutil.NoRating()).
		Build()

	stats, err := analysis.GroupStatistics(tbl, analysis.ByAsin)
	require.NoError(t, err)

	d := stats.Distribution
	assert.Equal(t, []string{"A", "B", "C"}, d.Groups)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, d.Ratings)
	assert.True(t, d.Percentage)

	assert.InDeltaSlice(t, []float64{0, 25, 25, 50, 0}, d.Values[0], 1e-9)
	assert.InDeltaSlice(t, []float64{100.0 / 3, 0, 0, 0, 200.0 / 3}, d.Values[1], 1e-9)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, d.Values[2])

	assert.InDelta(t, 100, d.RowTotal(0), 0.01)
	assert.InDelta(t, 100, d.RowTotal(1), 0.01)
	assert.InDelta(t, 0, d.RowTotal(2), 0.01, "group without ratings sums to 0")

	c, ok := stats.Group("C")
	require.True(t, ok)
	assert.Equal(t, 1, c.Count)
	assert.Nil(t, c.Mean)
	assert.Nil(t, c.Std)
	assert.Equal(t, map[model.ReviewType]int{model.ReviewTypeUnknown: 1}, c.TypeCounts)
}

func TestRatingCounts(t *testing.T) {
	tbl := testutil.NewReviewBuilder(t).
		WithRatings([]float64{5, 5, 1}, testutil.Product("A", "")).
		WithRatings([]float64{4.5}, testutil.Product("B", "")).
		Build()

	d, err := analysis.RatingCounts(tbl, analysis.ByAsin)
	require.NoError(t, err)
	assert.False(t, d.Percentage)
	assert.Equal(t, []float64{1, 4.5, 5}, d.Ratings)
	assert.Equal(t, [][]float64{{1, 0, 2}, {0, 1, 0}}, d.Values)

	pct, err := analysis.RatingDistribution(tbl, analysis.ByAsin)
	require.NoError(t, err)
	assert.InDelta(t, 100, pct.RowTotal(1), 1e-9)
}

func TestBasicGroupStatistics(t *testing.T) {
	tbl := testutil.NewReviewBuilder(t).
		WithColumns(table.ColAsin, table.ColRating).
		WithRatings([]float64{1, 2, 3}, testutil.Product("A", "")).
		Build()

	stats, err := analysis.BasicGroupStatistics(tbl, analysis.ByAsin)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 3, stats[0].Count)
	assert.InDelta(t, 2.0, *stats[0].Mean, 1e-9)
	assert.InDelta(t, 1.0, *stats[0].Std, 1e-9)
	assert.Nil(t, stats[0].TypeCounts)

	_, err = analysis.GroupStatistics(tbl, analysis.ByAsin)
	assert.True(t, errors.Is(err, common.ErrSchema), "full statistics need Review Type")
}

func TestGroupBy(t *testing.T) {
	g, err := analysis.ParseGroupBy(" Asin , Model ")
	require.NoError(t, err)
	assert.Equal(t, analysis.ByAsinModel, g)
	assert.Equal(t, "Asin + Model", g.String())
	assert.Equal(t, "X - ", g.Key(model.Review{Asin: "X"}))

	for _, bad := range []string{"", "Rating", "Asin,Model,Title"} {
		_, err := analysis.ParseGroupBy(bad)
		assert.True(t, errors.Is(err, analysis.ErrInvalidGroup), bad)
	}

	_, err = analysis.GroupStatistics(testutil.NewReviewBuilder(t).Build(), analysis.GroupBy{"Content"})
	assert.True(t, errors.Is(err, analysis.ErrInvalidGroup))
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "4", analysis.FormatRating(4))
	assert.Equal(t, "4.5", analysis.FormatRating(4.5))
}
