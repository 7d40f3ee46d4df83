package table

import (
	"strings"

	"github.com/Veraticus/reviewlens/internal/model"
)

// Preprocess turns a raw review export into a processed table: it keeps the
// raw columns, trims the text columns, coerces ratings and dates, numbers the
// rows from 1 and derives each review type from its rating.
func Preprocess(raw *Raw) (*Table, error) {
	if err := Validate(raw.Header, RawColumns); err != nil {
		return nil, err
	}

	t := &Table{
		Columns: StatisticsColumns,
		Reviews: make([]model.Review, 0, len(raw.Rows)),
	}

	for i := range raw.Rows {
		r := model.Review{ID: i + 1}

		r.Asin, _ = raw.Cell(i, ColAsin)
		title, _ := raw.Cell(i, ColTitle)
		r.Title = strings.TrimSpace(title)
		modelName, _ := raw.Cell(i, ColModel)
		r.Model = strings.TrimSpace(modelName)

		if content, ok := raw.Cell(i, ColContent); ok {
			if content = strings.TrimSpace(content); content != "" {
				r.Content = &content
			}
		}

		if v, ok := raw.Cell(i, ColRating); ok {
			if r.Rating = model.ParseRating(v); r.Rating == nil {
				t.Diagnostics.BadRatings++
			}
		}

		if v, ok := raw.Cell(i, ColDate); ok {
			if r.Date = ParseDate(v); r.Date == nil {
				t.Diagnostics.BadDates++
			}
		}

		r.ReviewType = model.ClassifyRating(r.Rating)
		t.Reviews = append(t.Reviews, r)
	}

	return t, nil
}
