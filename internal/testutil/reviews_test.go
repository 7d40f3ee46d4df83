package testutil_test

import (
	"testing"

	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/table"
	"github.com/Veraticus/reviewlens/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewBuilder(t *testing.T) {
	tbl := testutil.NewReviewBuilder(t).
		WithRatings([]float64{5, 3}, testutil.Product("A2", "M1")).
		Add(testutil.NoRating(), testutil.NoDate(), testutil.Content("hi")).
		Build()

	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, table.StatisticsColumns, tbl.Columns)

	assert.Equal(t, 1, tbl.Reviews[0].ID)
	assert.Equal(t, "A2", tbl.Reviews[0].Asin)
	assert.Equal(t, model.ReviewTypePositive, tbl.Reviews[0].ReviewType)
	assert.Equal(t, model.ReviewTypeNeutral, tbl.Reviews[1].ReviewType)

	last := tbl.Reviews[2]
	assert.Equal(t, 3, last.ID)
	assert.Nil(t, last.Rating)
	assert.Nil(t, last.Date)
	assert.Equal(t, model.ReviewTypeUnknown, last.ReviewType)
	assert.Equal(t, "hi", last.ContentText())
}

func TestReviewBuilder_WithColumns(t *testing.T) {
	tbl := testutil.NewReviewBuilder(t).
		WithColumns(table.ClassificationColumns...).
		WithContents([]string{"a", "b"}).
		Build()

	assert.True(t, tbl.Has(table.ColContent))
	assert.False(t, tbl.Has(table.ColAsin))
	assert.Equal(t, 2, tbl.Len())
}
