// Package analysis computes review statistics over a decoded review table:
// the review-type summary, grouped rating statistics with their distribution
// matrix, monthly rating trends, and the overview and fallback breakdowns.
// Every function is a pure pass over the table.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/table"
)

// OverallSeries names the single trend series produced without a group key.
const OverallSeries = "Overall"

// KeySeparator joins the columns of a composite group key.
const KeySeparator = " - "

// ErrInvalidGroup is returned for group keys that name unsupported columns.
var ErrInvalidGroup = errors.New("invalid group key")

// GroupBy is a single column or a composite of columns whose values, joined
// with KeySeparator, partition the table.
type GroupBy []string

// Common group keys.
var (
	ByAsin      = GroupBy{table.ColAsin}
	ByAsinModel = GroupBy{table.ColAsin, table.ColModel}
)

// ParseGroupBy reads a comma-separated column list such as "Asin,Model".
func ParseGroupBy(s string) (GroupBy, error) {
	var g GroupBy
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			g = append(g, part)
		}
	}
	return g, g.validate()
}

// String renders the key the way it is labelled in reports.
func (g GroupBy) String() string {
	return strings.Join(g, " + ")
}

// Key derives the group value of r.
func (g GroupBy) Key(r model.Review) string {
	parts := make([]string, len(g))
	for i, col := range g {
		parts[i] = columnValue(r, col)
	}
	return strings.Join(parts, KeySeparator)
}

func (g GroupBy) validate() error {
	if len(g) == 0 || len(g) > 2 {
		return fmt.Errorf("%w: expected one or two columns, got %d", ErrInvalidGroup, len(g))
	}
	for _, col := range g {
		switch col {
		case table.ColAsin, table.ColModel, table.ColTitle:
		default:
			return fmt.Errorf("%w: cannot group by %q", ErrInvalidGroup, col)
		}
	}
	return nil
}

// required returns the columns a grouped computation reads.
func (g GroupBy) required(extra ...string) []string {
	return append(append([]string{}, g...), extra...)
}

func columnValue(r model.Review, column string) string {
	switch column {
	case table.ColAsin:
		return r.Asin
	case table.ColModel:
		return r.Model
	case table.ColTitle:
		return r.Title
	}
	return ""
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptr(v float64) *float64 {
	return &v
}

// percent returns part as a percentage of whole rounded to two decimals, or 0
// when whole is 0.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}

// meanStd returns the mean and sample standard deviation of values. The mean
// is nil without values and the deviation is nil with fewer than two.
func meanStd(values []float64) (mean, std *float64) {
	if len(values) == 0 {
		return nil, nil
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	mean = ptr(round2(m))

	if len(values) < 2 {
		return mean, nil
	}

	var sq float64
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	std = ptr(round2(math.Sqrt(sq / float64(len(values)-1))))
	return mean, std
}

// ratings returns the defined ratings of reviews.
func ratings(reviews []model.Review) []float64 {
	out := make([]float64, 0, len(reviews))
	for _, r := range reviews {
		if r.Rating != nil {
			out = append(out, *r.Rating)
		}
	}
	return out
}

// FormatRating renders a rating value as a column label: 4 becomes "4", 4.5 stays "4.5".
func FormatRating(v float64) string {
	return fmt.Sprintf("%g", v)
}
