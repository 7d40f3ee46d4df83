package classification

import (
	"math"

	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/table"
)

// Row is one classified review. Matches[i] belongs to Result.Categories[i].
type Row struct {
	Content    *string          `json:"content"`
	ReviewType model.ReviewType `json:"review_type"`
	Matches    []bool           `json:"matches"`
	ID         int              `json:"id"`
}

// CategoryStat rolls up one category. Percentage is of every row, rounded to
// two decimals.
type CategoryStat struct {
	Name       string  `json:"name"`
	Matched    int     `json:"matched"`
	Unmatched  int     `json:"unmatched"`
	Percentage float64 `json:"percentage"`
	Keywords   int     `json:"keywords"`
}

// Result is the output of a classification run.
type Result struct {
	Categories []string       `json:"categories"`
	Rows       []Row          `json:"rows"`
	Stats      []CategoryStat `json:"stats"`
}

// Index returns the column of category, or -1.
func (r *Result) Index(category string) int {
	for i, name := range r.Categories {
		if name == category {
			return i
		}
	}
	return -1
}

// Stat returns the roll-up of category.
func (r *Result) Stat(category string) (CategoryStat, error) {
	i := r.Index(category)
	if i < 0 {
		return CategoryStat{}, common.NewNotFound("category", category)
	}
	return r.Stats[i], nil
}

// Filter returns the rows that match category.
func (r *Result) Filter(category string) ([]Row, error) {
	i := r.Index(category)
	if i < 0 {
		return nil, common.NewNotFound("category", category)
	}

	out := []Row{}
	for _, row := range r.Rows {
		if row.Matches[i] {
			out = append(out, row)
		}
	}
	return out, nil
}

// Sheet renders the classified table: ID, Content, Original Review Type and
// one "Is <category>" column per category.
func (r *Result) Sheet() table.Sheet {
	header := []string{table.ColID, table.ColContent, ColOriginalReviewType}
	for _, name := range r.Categories {
		header = append(header, MatchColumn(name))
	}

	rows := make([][]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		cells := make([]any, 0, len(header))
		cells = append(cells, row.ID)
		if row.Content != nil {
			cells = append(cells, *row.Content)
		} else {
			cells = append(cells, nil)
		}
		if row.ReviewType != "" {
			cells = append(cells, string(row.ReviewType))
		} else {
			cells = append(cells, nil)
		}
		for _, m := range row.Matches {
			cells = append(cells, m)
		}
		rows = append(rows, cells)
	}

	return table.Sheet{Header: header, Rows: rows}
}

// StatsSheet renders the per-category roll-up.
func (r *Result) StatsSheet() table.Sheet {
	s := table.Sheet{Header: []string{"Category", "Matched", "Percentage", "Unmatched"}}
	for _, st := range r.Stats {
		s.Rows = append(s.Rows, []any{st.Name, st.Matched, st.Percentage, st.Unmatched})
	}
	return s
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}
