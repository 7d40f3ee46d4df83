package analysis

import (
	"sort"
	"time"

	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/table"
)

// Rating thresholds of the fallback breakdown.
const (
	highRating = 4
	lowRating  = 2
)

// Overview is the headline summary of a table. FirstMonth and LastMonth are
// empty when no row has a date.
type Overview struct {
	MeanRating *float64 `json:"mean_rating"`
	FirstMonth string   `json:"first_month,omitempty"`
	LastMonth  string   `json:"last_month,omitempty"`
	Rows       int      `json:"rows"`
	Products   int      `json:"products"`
}

// Period renders the covered date range as "YYYY-MM to YYYY-MM".
func (o Overview) Period() string {
	if o.FirstMonth == "" {
		return ""
	}
	return o.FirstMonth + " to " + o.LastMonth
}

// ComputeOverview returns row count, mean rating, distinct product count and
// the covered month range.
func ComputeOverview(t *table.Table) (Overview, error) {
	if err := t.Require([]string{table.ColAsin, table.ColRating, table.ColDate}); err != nil {
		return Overview{}, err
	}

	o := Overview{Rows: t.Len()}
	o.MeanRating, _ = meanStd(ratings(t.Reviews))

	products := make(map[string]struct{})
	var first, last *time.Time
	for _, r := range t.Reviews {
		if r.Asin != "" {
			products[r.Asin] = struct{}{}
		}
		if r.Date == nil {
			continue
		}
		if first == nil || r.Date.Before(*first) {
			first = r.Date
		}
		if last == nil || r.Date.After(*last) {
			last = r.Date
		}
	}
	o.Products = len(products)

	if first != nil {
		o.FirstMonth = model.MonthKey(*first)
		o.LastMonth = model.MonthKey(*last)
	}
	return o, nil
}

// RatingCount is the number of rows with one rating value.
type RatingCount struct {
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
}

// Breakdown is the fallback view shown when a richer section fails: the
// number of high (4 and above) and low (2 and below) ratings, the mean, and
// counts per rating value.
type Breakdown struct {
	Mean         *float64      `json:"mean"`
	RatingCounts []RatingCount `json:"rating_counts"`
	Total        int           `json:"total"`
	High         int           `json:"high"`
	Low          int           `json:"low"`
}

// ComputeBreakdown needs only the Rating column.
func ComputeBreakdown(t *table.Table) (Breakdown, error) {
	if err := t.Require([]string{table.ColRating}); err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{Total: t.Len()}
	values := ratings(t.Reviews)
	b.Mean, _ = meanStd(values)

	counts := make(map[float64]int)
	for _, v := range values {
		counts[v]++
		switch {
		case v >= highRating:
			b.High++
		case v <= lowRating:
			b.Low++
		}
	}

	b.RatingCounts = make([]RatingCount, 0, len(counts))
	for v, n := range counts {
		b.RatingCounts = append(b.RatingCounts, RatingCount{Rating: v, Count: n})
	}
	sort.Slice(b.RatingCounts, func(i, j int) bool {
		return b.RatingCounts[i].Rating < b.RatingCounts[j].Rating
	})

	return b, nil
}
