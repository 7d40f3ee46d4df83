package report

import (
	"github.com/Veraticus/reviewlens/internal/analysis"
	"github.com/Veraticus/reviewlens/internal/model"
)

// Slice is one wedge of the review-type pie.
type Slice struct {
	Type  model.ReviewType
	Color string
	Count int
}

// Fixed pie order and colours.
var pieSlices = []Slice{
	{Type: model.ReviewTypePositive, Color: "#2ECC71"},
	{Type: model.ReviewTypeNeutral, Color: "#F1C40F"},
	{Type: model.ReviewTypeNegative, Color: "#E74C3C"},
}

// PieSlices re-indexes a summary to positive, neutral, negative, filling
// absent types with zero. Unknown ratings are not part of the pie.
func PieSlices(s analysis.Summary) []Slice {
	out := make([]Slice, len(pieSlices))
	for i, p := range pieSlices {
		p.Count = s.Count(p.Type)
		out[i] = p
	}
	return out
}
