package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyReviewType(t *testing.T) {
	tests := []struct {
		value any
		name  string
		want  ReviewType
	}{
		{name: "five", value: 5.0, want: ReviewTypePositive},
		{name: "exactly four", value: 4.0, want: ReviewTypePositive},
		{name: "just under four", value: 3.999, want: ReviewTypeNegative},
		{name: "exactly three", value: 3, want: ReviewTypeNeutral},
		{name: "just under three", value: 2.999, want: ReviewTypeNegative},
		{name: "two", value: 2.0, want: ReviewTypeNegative},
		{name: "one", value: int64(1), want: ReviewTypeNegative},
		{name: "numeric string", value: " 4 ", want: ReviewTypePositive},
		{name: "word", value: "five stars", want: ReviewTypeUnknown},
		{name: "empty string", value: "", want: ReviewTypeUnknown},
		{name: "nil", value: nil, want: ReviewTypeUnknown},
		{name: "nan", value: math.NaN(), want: ReviewTypeUnknown},
		{name: "nan string", value: "NaN", want: ReviewTypeUnknown},
		{name: "unsupported type", value: []int{5}, want: ReviewTypeUnknown},
		{name: "nil pointer", value: (*float64)(nil), want: ReviewTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyReviewType(tt.value))
			// Deterministic across calls.
			assert.Equal(t, ClassifyReviewType(tt.value), ClassifyReviewType(tt.value))
		})
	}
}

func TestClassifyReviewType_ThreeNotFour(t *testing.T) {
	// 3.5 is neither >= 4 nor == 3, so it falls through to negative.
	assert.Equal(t, ReviewTypeNegative, ClassifyReviewType(3.5))
}

func TestParseReviewType(t *testing.T) {
	rt, ok := ParseReviewType(" Positive ")
	assert.True(t, ok)
	assert.Equal(t, ReviewTypePositive, rt)

	_, ok = ParseReviewType("")
	assert.False(t, ok)

	_, ok = ParseReviewType("mixed")
	assert.False(t, ok)

	assert.Equal(t, 3, ReviewTypeUnknown.Order())
	assert.Equal(t, 4, ReviewType("mixed").Order())
}

func TestReview_Month(t *testing.T) {
	d := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	r := Review{Date: &d}

	month, ok := r.Month()
	assert.True(t, ok)
	assert.Equal(t, "2024-03", month)

	_, ok = Review{}.Month()
	assert.False(t, ok)
	assert.Equal(t, "", Review{}.ContentText())
}

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "simple", raw: "kids,girl", want: []string{"kids", "girl"}},
		{name: "trims and drops empties", raw: " kids , ,girl ,", want: []string{"kids", "girl"}},
		{name: "preserves case", raw: "Boosts endurance", want: []string{"Boosts endurance"}},
		{name: "empty", raw: "", want: []string{}},
		{name: "whitespace only", raw: "  ,  ", want: []string{}},
		{name: "non-ascii", raw: "niño, 孕妇", want: []string{"niño", "孕妇"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKeywords(tt.raw))
		})
	}

	assert.Equal(t, 2, Category{Name: "Kids", Keywords: "kids, girl"}.KeywordCount())
}
