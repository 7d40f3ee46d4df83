package analysis

import (
	"sort"

	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/table"
)

// GroupStat holds the statistics of one group. Mean and Std are nil when
// undefined: Mean without any rating, Std with fewer than two ratings.
type GroupStat struct {
	Mean       *float64                 `json:"mean"`
	Std        *float64                 `json:"std"`
	TypeCounts map[model.ReviewType]int `json:"type_counts,omitempty"`
	Key        string                   `json:"key"`
	Count      int                      `json:"count"`
}

// Distribution is a group by rating matrix. Ratings are the distinct ratings
// of the whole table in ascending order; Values[i][j] belongs to Groups[i]
// and Ratings[j]. Percentage matrices hold the unrounded share of the group's
// rated rows, so a row sums to 100 or to 0 for a group without ratings; count
// matrices hold raw row counts.
type Distribution struct {
	Groups     []string    `json:"groups"`
	Ratings    []float64   `json:"ratings"`
	Values     [][]float64 `json:"values"`
	Percentage bool        `json:"percentage"`
}

// RowTotal sums row i of the matrix.
func (d Distribution) RowTotal(i int) float64 {
	var sum float64
	for _, v := range d.Values[i] {
		sum += v
	}
	return sum
}

// GroupStats is the result of a grouped statistics run.
type GroupStats struct {
	By           GroupBy      `json:"by"`
	Groups       []GroupStat  `json:"groups"`
	Distribution Distribution `json:"distribution"`
}

// Group returns the statistics for key.
func (g *GroupStats) Group(key string) (GroupStat, bool) {
	for _, s := range g.Groups {
		if s.Key == key {
			return s, true
		}
	}
	return GroupStat{}, false
}

// GroupStatistics computes per-group row count, mean and standard deviation
// of the rating, review-type counts, and the rating-percentage distribution.
// Groups are ordered by key.
func GroupStatistics(t *table.Table, by GroupBy) (*GroupStats, error) {
	if err := by.validate(); err != nil {
		return nil, err
	}
	if err := t.Require(by.required(table.ColRating, table.ColReviewType)); err != nil {
		return nil, err
	}

	keys, groups := partition(t.Reviews, by)

	result := &GroupStats{By: by, Groups: make([]GroupStat, 0, len(keys))}
	for _, key := range keys {
		stat := basicStat(key, groups[key])
		stat.TypeCounts = make(map[model.ReviewType]int)
		for _, r := range groups[key] {
			if r.ReviewType != "" {
				stat.TypeCounts[r.ReviewType]++
			}
		}
		result.Groups = append(result.Groups, stat)
	}

	result.Distribution = distribution(t.Reviews, keys, groups, true)
	return result, nil
}

// BasicGroupStatistics computes only count, mean and deviation per group. It
// needs no Review Type column and is the fallback when the full statistics
// cannot be produced.
func BasicGroupStatistics(t *table.Table, by GroupBy) ([]GroupStat, error) {
	if err := by.validate(); err != nil {
		return nil, err
	}
	if err := t.Require(by.required(table.ColRating)); err != nil {
		return nil, err
	}

	keys, groups := partition(t.Reviews, by)
	out := make([]GroupStat, 0, len(keys))
	for _, key := range keys {
		out = append(out, basicStat(key, groups[key]))
	}
	return out, nil
}

// RatingDistribution computes the percentage matrix on its own.
func RatingDistribution(t *table.Table, by GroupBy) (Distribution, error) {
	return distributionOf(t, by, true)
}

// RatingCounts computes the raw count matrix used when percentages are not
// available.
func RatingCounts(t *table.Table, by GroupBy) (Distribution, error) {
	return distributionOf(t, by, false)
}

func distributionOf(t *table.Table, by GroupBy, percentage bool) (Distribution, error) {
	if err := by.validate(); err != nil {
		return Distribution{}, err
	}
	if err := t.Require(by.required(table.ColRating)); err != nil {
		return Distribution{}, err
	}

	keys, groups := partition(t.Reviews, by)
	return distribution(t.Reviews, keys, groups, percentage), nil
}

func basicStat(key string, reviews []model.Review) GroupStat {
	mean, std := meanStd(ratings(reviews))
	return GroupStat{Key: key, Count: len(reviews), Mean: mean, Std: std}
}

// partition splits reviews by group key, returning the sorted keys.
func partition(reviews []model.Review, by GroupBy) ([]string, map[string][]model.Review) {
	groups := make(map[string][]model.Review)
	for _, r := range reviews {
		key := by.Key(r)
		groups[key] = append(groups[key], r)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, groups
}

// distinctRatings returns every defined rating in reviews, ascending.
func distinctRatings(reviews []model.Review) []float64 {
	seen := make(map[float64]struct{})
	for _, r := range reviews {
		if r.Rating != nil {
			seen[*r.Rating] = struct{}{}
		}
	}

	out := make([]float64, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

func distribution(all []model.Review, keys []string, groups map[string][]model.Review, percentage bool) Distribution {
	d := Distribution{
		Groups:     keys,
		Ratings:    distinctRatings(all),
		Values:     make([][]float64, len(keys)),
		Percentage: percentage,
	}

	column := make(map[float64]int, len(d.Ratings))
	for j, v := range d.Ratings {
		column[v] = j
	}

	for i, key := range keys {
		counts := make([]int, len(d.Ratings))
		rated := 0
		for _, r := range groups[key] {
			if r.Rating == nil {
				continue
			}
			counts[column[*r.Rating]]++
			rated++
		}

		row := make([]float64, len(d.Ratings))
		for j, n := range counts {
			if percentage {
				if rated > 0 {
					row[j] = float64(n) / float64(rated) * 100
				}
			} else {
				row[j] = float64(n)
			}
		}
		d.Values[i] = row
	}

	return d
}
