package analysis

import (
	"sort"
	"time"

	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/table"
)

// TrendOptions selects how a trend is grouped and filtered.
type TrendOptions struct {
	// By groups the series; nil produces the single Overall series.
	By GroupBy
	// Asins restricts the trend to these products; empty keeps every row.
	Asins []string
}

// TrendPoint is the mean rating of one group in one month.
type TrendPoint struct {
	Month string  `json:"month"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// TrendSeries is the chronological run of points of one group.
type TrendSeries struct {
	Group  string       `json:"group"`
	Points []TrendPoint `json:"points"`
}

// Trend is a monthly rating trend. Months lists every month that has a point
// in any series, chronologically. Excluded counts rows left out because
// their date is missing or unparseable.
type Trend struct {
	Months   []string      `json:"months"`
	Series   []TrendSeries `json:"series"`
	Excluded int           `json:"excluded"`
}

// RatingTrend buckets rows by calendar month and averages their ratings per
// month and group. Rows without a date are skipped and counted in Excluded;
// a month whose rows in a group carry no rating produces no point.
func RatingTrend(t *table.Table, opts TrendOptions) (*Trend, error) {
	required := []string{table.ColRating, table.ColDate}
	if opts.By != nil {
		if err := opts.By.validate(); err != nil {
			return nil, err
		}
		required = opts.By.required(required...)
	}
	if len(opts.Asins) > 0 {
		required = append(required, table.ColAsin)
	}
	if err := t.Require(required); err != nil {
		return nil, err
	}

	keep := asinFilter(opts.Asins)

	type bucket struct {
		sum   float64
		count int
	}
	months := make(map[string]time.Time)
	buckets := make(map[string]map[string]*bucket) // group -> month -> bucket
	trend := &Trend{}

	for _, r := range t.Reviews {
		if !keep(r) {
			continue
		}
		if r.Date == nil {
			trend.Excluded++
			continue
		}
		if r.Rating == nil {
			continue
		}

		month := model.MonthKey(*r.Date)
		months[month] = time.Date(r.Date.Year(), r.Date.Month(), 1, 0, 0, 0, 0, time.UTC)

		group := OverallSeries
		if opts.By != nil {
			group = opts.By.Key(r)
		}
		if buckets[group] == nil {
			buckets[group] = make(map[string]*bucket)
		}
		b := buckets[group][month]
		if b == nil {
			b = &bucket{}
			buckets[group][month] = b
		}
		b.sum += *r.Rating
		b.count++
	}

	trend.Months = make([]string, 0, len(months))
	for m := range months {
		trend.Months = append(trend.Months, m)
	}
	sort.Slice(trend.Months, func(i, j int) bool {
		return months[trend.Months[i]].Before(months[trend.Months[j]])
	})

	groups := make([]string, 0, len(buckets))
	for g := range buckets {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	for _, g := range groups {
		series := TrendSeries{Group: g}
		for _, m := range trend.Months {
			if b, ok := buckets[g][m]; ok {
				series.Points = append(series.Points, TrendPoint{
					Month: m,
					Mean:  round2(b.sum / float64(b.count)),
					Count: b.count,
				})
			}
		}
		trend.Series = append(trend.Series, series)
	}

	return trend, nil
}

// Find returns the series of group.
func (t *Trend) Find(group string) (TrendSeries, bool) {
	for _, s := range t.Series {
		if s.Group == group {
			return s, true
		}
	}
	return TrendSeries{}, false
}

func asinFilter(asins []string) func(model.Review) bool {
	if len(asins) == 0 {
		return func(model.Review) bool { return true }
	}
	set := make(map[string]struct{}, len(asins))
	for _, a := range asins {
		set[a] = struct{}{}
	}
	return func(r model.Review) bool {
		_, ok := set[r.Asin]
		return ok
	}
}
