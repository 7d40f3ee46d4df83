package analysis

import (
	"sort"

	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/table"
)

// TypeCount is the size of one review type within a table.
type TypeCount struct {
	Type       model.ReviewType `json:"type"`
	Count      int              `json:"count"`
	Percentage float64          `json:"percentage"`
}

// Summary is the review-type summary of a table. Only types that occur are
// listed; percentages are of every row, including rows without a label.
type Summary struct {
	Types []TypeCount `json:"types"`
	Total int         `json:"total"`
}

// Count returns the number of rows of type rt, 0 when absent.
func (s Summary) Count(rt model.ReviewType) int {
	for _, tc := range s.Types {
		if tc.Type == rt {
			return tc.Count
		}
	}
	return 0
}

// ReviewTypeSummary counts each review type present in t. Entries are ordered
// by count, largest first, with ties in positive, neutral, negative, unknown
// order.
func ReviewTypeSummary(t *table.Table) (Summary, error) {
	if err := t.Require([]string{table.ColReviewType}); err != nil {
		return Summary{}, err
	}

	counts := make(map[model.ReviewType]int)
	for _, r := range t.Reviews {
		if r.ReviewType != "" {
			counts[r.ReviewType]++
		}
	}

	s := Summary{Total: t.Len(), Types: make([]TypeCount, 0, len(counts))}
	for rt, n := range counts {
		s.Types = append(s.Types, TypeCount{Type: rt, Count: n, Percentage: percent(n, s.Total)})
	}

	sort.Slice(s.Types, func(i, j int) bool {
		if s.Types[i].Count != s.Types[j].Count {
			return s.Types[i].Count > s.Types[j].Count
		}
		return s.Types[i].Type.Order() < s.Types[j].Type.Order()
	})

	return s, nil
}
