package testutil

import (
	"testing"

	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/table"
)

// ReviewOption customises one review added to a ReviewBuilder.
type ReviewOption func(*model.Review)

// Rating sets the rating and derives the review type from it.
func Rating(v float64) ReviewOption {
	return func(r *model.Review) {
		r.Rating = &v
		r.ReviewType = model.ClassifyRating(r.Rating)
	}
}

// NoRating leaves the rating undefined, as for an unparseable cell.
func NoRating() ReviewOption {
	return func(r *model.Review) {
		r.Rating = nil
		r.ReviewType = model.ReviewTypeUnknown
	}
}

// Type overrides the review type label.
func Type(rt model.ReviewType) ReviewOption {
	return func(r *model.Review) {
		r.ReviewType = rt
	}
}

// Content sets the review text.
func Content(s string) ReviewOption {
	return func(r *model.Review) {
		r.Content = &s
	}
}

// NoContent leaves the review text missing.
func NoContent() ReviewOption {
	return func(r *model.Review) {
		r.Content = nil
	}
}

// Product sets the ASIN and model.
func Product(asin, modelName string) ReviewOption {
	return func(r *model.Review) {
		r.Asin = asin
		r.Model = modelName
	}
}

// Title sets the review title.
func Title(s string) ReviewOption {
	return func(r *model.Review) {
		r.Title = s
	}
}

// Date sets the review date from a YYYY-MM-DD string.
func Date(s string) ReviewOption {
	return func(r *model.Review) {
		d := table.ParseDate(s)
		if d == nil {
			panic("testutil: bad date " + s)
		}
		r.Date = d
	}
}

// NoDate leaves the review date missing.
func NoDate() ReviewOption {
	return func(r *model.Review) {
		r.Date = nil
	}
}

// ReviewBuilder provides a fluent interface for constructing review tables.
// Reviews get sequential IDs from 1; the defaults are product "A1", an empty
// model, a rating of 5 and the date 2024-01-15.
type ReviewBuilder struct {
	t       *testing.T
	columns []string
	reviews []model.Review
}

// NewReviewBuilder creates a builder producing a table with the full
// statistics schema.
func NewReviewBuilder(t *testing.T) *ReviewBuilder {
	t.Helper()
	return &ReviewBuilder{t: t, columns: table.StatisticsColumns}
}

// WithColumns restricts the columns the built table reports.
func (b *ReviewBuilder) WithColumns(columns ...string) *ReviewBuilder {
	b.columns = columns
	return b
}

// Add appends one review.
func (b *ReviewBuilder) Add(opts ...ReviewOption) *ReviewBuilder {
	r := model.Review{ID: len(b.reviews) + 1, Asin: "A1"}
	Rating(5)(&r)
	Date("2024-01-15")(&r)

	for _, opt := range opts {
		opt(&r)
	}
	b.reviews = append(b.reviews, r)
	return b
}

// WithRatings appends one review per rating, sharing opts.
func (b *ReviewBuilder) WithRatings(ratings []float64, opts ...ReviewOption) *ReviewBuilder {
	for _, v := range ratings {
		b.Add(append([]ReviewOption{Rating(v)}, opts...)...)
	}
	return b
}

// WithContents appends one review per text, sharing opts.
func (b *ReviewBuilder) WithContents(contents []string, opts ...ReviewOption) *ReviewBuilder {
	for _, c := range contents {
		b.Add(append([]ReviewOption{Content(c)}, opts...)...)
	}
	return b
}

// Build returns the table.
func (b *ReviewBuilder) Build() *table.Table {
	b.t.Helper()

	reviews := make([]model.Review, len(b.reviews))
	copy(reviews, b.reviews)
	return table.New(b.columns, reviews)
}
