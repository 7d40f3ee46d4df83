package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/Veraticus/reviewlens/internal/model"
)

// Diagnostics counts cells that were degraded to sentinel values while decoding.
type Diagnostics struct {
	BadRatings    int `json:"bad_ratings"`
	BadDates      int `json:"bad_dates"`
	BadIDs        int `json:"bad_ids"`
	UnknownLabels int `json:"unknown_labels"`
}

// Table is a decoded review table.
type Table struct {
	Columns     []string
	Reviews     []model.Review
	Diagnostics Diagnostics
}

// New builds a Table from already decoded reviews.
func New(columns []string, reviews []model.Review) *Table {
	return &Table{Columns: columns, Reviews: reviews}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Reviews)
}

// Require fails with a SchemaError naming every required column the table lacks.
func (t *Table) Require(required []string) error {
	return Validate(t.Columns, required)
}

// Has reports whether the table was loaded with column.
func (t *Table) Has(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Filter returns a table holding only the reviews keep accepts.
func (t *Table) Filter(keep func(model.Review) bool) *Table {
	out := &Table{Columns: t.Columns, Diagnostics: t.Diagnostics}
	for _, r := range t.Reviews {
		if keep(r) {
			out.Reviews = append(out.Reviews, r)
		}
	}
	return out
}

// Decode validates raw against required and converts each row into a review.
// Cells that cannot be coerced degrade (nil rating, nil date, undefined label)
// and are counted in Diagnostics; they never abort decoding.
func Decode(raw *Raw, required []string) (*Table, error) {
	if err := Validate(raw.Header, required); err != nil {
		return nil, err
	}

	t := &Table{
		Columns: raw.Header,
		Reviews: make([]model.Review, 0, len(raw.Rows)),
	}

	for i := range raw.Rows {
		t.Reviews = append(t.Reviews, t.decodeRow(raw, i))
	}

	if t.Diagnostics != (Diagnostics{}) {
		common.LogDebug("decoded table with degraded cells", common.Fields{
			"rows":           len(t.Reviews),
			"bad_ratings":    t.Diagnostics.BadRatings,
			"bad_dates":      t.Diagnostics.BadDates,
			"bad_ids":        t.Diagnostics.BadIDs,
			"unknown_labels": t.Diagnostics.UnknownLabels,
		})
	}

	return t, nil
}

func (t *Table) decodeRow(raw *Raw, i int) model.Review {
	line := i + 2 // header is line 1
	var r model.Review

	if v, ok := raw.Cell(i, ColID); ok {
		id, err := parseID(v)
		if err != nil {
			t.Diagnostics.BadIDs++
			common.LogDebug("unreadable ID", common.Fields{"line": line, "value": v})
		}
		r.ID = id
	}

	r.Asin, _ = raw.Cell(i, ColAsin)
	r.Title, _ = raw.Cell(i, ColTitle)
	r.Model, _ = raw.Cell(i, ColModel)

	if v, ok := raw.Cell(i, ColContent); ok {
		r.Content = &v
	}

	if v, ok := raw.Cell(i, ColRating); ok {
		r.Rating = model.ParseRating(v)
		if r.Rating == nil {
			t.Diagnostics.BadRatings++
			common.LogDebug("unreadable rating", common.Fields{"line": line, "value": v})
		}
	}

	if v, ok := raw.Cell(i, ColDate); ok {
		r.Date = ParseDate(v)
		if r.Date == nil {
			t.Diagnostics.BadDates++
			common.LogDebug("unreadable date", common.Fields{"line": line, "value": v})
		}
	}

	if v, ok := raw.Cell(i, ColReviewType); ok {
		rt, valid := model.ParseReviewType(v)
		if !valid {
			t.Diagnostics.UnknownLabels++
			common.LogDebug("unrecognised review type", common.Fields{"line": line, "value": v})
		}
		r.ReviewType = rt
	}

	return r
}

func parseID(v string) (int, error) {
	v = strings.TrimSpace(v)
	if id, err := strconv.Atoi(v); err == nil {
		return id, nil
	}
	// Spreadsheets sometimes store integers as floats ("12.0").
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid ID %q", v)
	}
	return int(f), nil
}
