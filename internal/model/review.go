// Package model defines the review records and category definitions shared by
// the analysis and classification engines.
package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ReviewType is the sentiment bucket derived from a rating.
type ReviewType string

const (
	// ReviewTypePositive covers ratings of 4 and above.
	ReviewTypePositive ReviewType = "positive"
	// ReviewTypeNeutral covers a rating of exactly 3.
	ReviewTypeNeutral ReviewType = "neutral"
	// ReviewTypeNegative covers ratings below 3.
	ReviewTypeNegative ReviewType = "negative"
	// ReviewTypeUnknown marks ratings that could not be read as numbers.
	ReviewTypeUnknown ReviewType = "unknown"
)

// ReviewTypes lists every review type in reporting order.
var ReviewTypes = []ReviewType{
	ReviewTypePositive,
	ReviewTypeNeutral,
	ReviewTypeNegative,
	ReviewTypeUnknown,
}

// Order returns the position of t in ReviewTypes, or len(ReviewTypes) for
// labels outside the fixed set.
func (t ReviewType) Order() int {
	for i, rt := range ReviewTypes {
		if rt == t {
			return i
		}
	}
	return len(ReviewTypes)
}

// ParseReviewType reads a stored label. Blank or unrecognised labels report false.
func ParseReviewType(s string) (ReviewType, bool) {
	rt := ReviewType(strings.ToLower(strings.TrimSpace(s)))
	if rt.Order() == len(ReviewTypes) {
		return "", false
	}
	return rt, true
}

// ClassifyRating maps a rating to its review type. A nil rating is unknown.
func ClassifyRating(rating *float64) ReviewType {
	if rating == nil || math.IsNaN(*rating) {
		return ReviewTypeUnknown
	}

	switch r := *rating; {
	case r >= 4:
		return ReviewTypePositive
	case r == 3:
		return ReviewTypeNeutral
	default:
		return ReviewTypeNegative
	}
}

// ClassifyReviewType derives the review type from any raw rating value. It
// never fails: values that are not numbers come back as ReviewTypeUnknown.
func ClassifyReviewType(value any) ReviewType {
	return ClassifyRating(ParseRating(value))
}

// ParseRating coerces a raw cell value into a rating. Values that are not
// finite numbers yield nil.
func ParseRating(value any) *float64 {
	var f float64

	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case *float64:
		if v == nil {
			return nil
		}
		f = *v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Review is one row of a review table.
type Review struct {
	Content    *string
	Rating     *float64
	Date       *time.Time
	Asin       string
	Title      string
	Model      string
	ReviewType ReviewType
	ID         int
}

// ContentText returns the review content, or "" when it is missing.
func (r Review) ContentText() string {
	if r.Content == nil {
		return ""
	}
	return *r.Content
}

// Month returns the calendar month bucket of the review date as YYYY-MM.
func (r Review) Month() (string, bool) {
	if r.Date == nil {
		return "", false
	}
	return MonthKey(*r.Date), true
}

// MonthKey formats t as a YYYY-MM bucket.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
