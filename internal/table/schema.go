// Package table loads review spreadsheets, validates their columns and writes
// processed tables back out as xlsx, csv or tab-delimited text.
package table

import "github.com/Veraticus/reviewlens/internal/common"

// Column names of a processed review table.
const (
	ColID         = "ID"
	ColAsin       = "Asin"
	ColTitle      = "Title"
	ColContent    = "Content"
	ColModel      = "Model"
	ColRating     = "Rating"
	ColDate       = "Date"
	ColReviewType = "Review Type"
)

// Required column sets for the entry points.
var (
	// StatisticsColumns is the full processed schema used by the aggregation engine.
	StatisticsColumns = []string{ColID, ColAsin, ColTitle, ColContent, ColModel, ColRating, ColDate, ColReviewType}
	// ClassificationColumns is the minimal schema used by keyword classification.
	ClassificationColumns = []string{ColID, ColContent, ColReviewType}
	// RawColumns is what preprocessing needs from an uncleaned export.
	RawColumns = []string{ColAsin, ColTitle, ColContent, ColModel, ColRating, ColDate}
)

// Validate checks that columns is a superset of required. It reports every
// missing column, in the order required lists them.
func Validate(columns, required []string) error {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}

	var missing []string
	for _, c := range required {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}

	if len(missing) > 0 {
		return &common.SchemaError{Missing: missing}
	}
	return nil
}
