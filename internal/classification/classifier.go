// Package classification tags reviews with analyst-defined categories by
// keyword matching. Categories are evaluated independently, so a review can
// match any number of them.
package classification

import (
	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/pattern"
	"github.com/Veraticus/reviewlens/internal/table"
)

// Column names of the classified export.
const (
	ColOriginalReviewType = "Original Review Type"
	matchColumnPrefix     = "Is "
)

// MatchColumn names the boolean export column of a category.
func MatchColumn(category string) string {
	return matchColumnPrefix + category
}

// ProgressFunc is called after each classified row.
type ProgressFunc func(done, total int)

// Option configures a classification run.
type Option func(*options)

type options struct {
	progress ProgressFunc
}

// WithProgress reports progress after every row.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// compiledCategory pairs a category with its matcher.
type compiledCategory struct {
	matcher *pattern.Matcher
	model.Category
}

// Classifier applies a point-in-time snapshot of categories to tables.
type Classifier struct {
	categories []compiledCategory
}

// NewClassifier parses every category's keyword string once. A category
// whose keywords are empty or all whitespace never matches.
func NewClassifier(categories []model.Category) *Classifier {
	compiled := make([]compiledCategory, 0, len(categories))
	for _, c := range categories {
		compiled = append(compiled, compiledCategory{
			Category: c,
			matcher:  pattern.NewMatcher(c.KeywordList()),
		})
	}
	return &Classifier{categories: compiled}
}

// Unmatchable lists the categories without any usable keyword, in category
// order. Their match columns are always false.
func (c *Classifier) Unmatchable() []string {
	var names []string
	for _, cat := range c.categories {
		if cat.matcher.Empty() {
			names = append(names, cat.Name)
		}
	}
	return names
}

// Classify is shorthand for NewClassifier(categories).Classify(t, opts...).
func Classify(t *table.Table, categories []model.Category, opts ...Option) (*Result, error) {
	return NewClassifier(categories).Classify(t, opts...)
}

// Classify tests every row's Content against every category and rolls up
// the matched counts. The table must carry ID, Content and Review Type.
func (c *Classifier) Classify(t *table.Table, opts ...Option) (*Result, error) {
	if err := t.Require(table.ClassificationColumns); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	result := &Result{
		Categories: make([]string, len(c.categories)),
		Rows:       make([]Row, 0, t.Len()),
	}
	for i, cat := range c.categories {
		result.Categories[i] = cat.Name
	}

	if empty := c.Unmatchable(); len(empty) > 0 {
		common.LogDebug("categories without keywords never match", common.Fields{
			"categories": empty,
		})
	}

	matched := make([]int, len(c.categories))
	total := t.Len()

	for i, r := range t.Reviews {
		row := Row{
			ID:         r.ID,
			Content:    r.Content,
			ReviewType: r.ReviewType,
			Matches:    make([]bool, len(c.categories)),
		}
		for j, cat := range c.categories {
			if cat.matcher.Match(r.Content) {
				row.Matches[j] = true
				matched[j]++
			}
		}
		result.Rows = append(result.Rows, row)

		if o.progress != nil {
			o.progress(i+1, total)
		}
	}

	result.Stats = make([]CategoryStat, len(c.categories))
	for j, cat := range c.categories {
		result.Stats[j] = CategoryStat{
			Name:       cat.Name,
			Matched:    matched[j],
			Unmatched:  total - matched[j],
			Percentage: percentage(matched[j], total),
			Keywords:   cat.KeywordCount(),
		}
	}

	common.LogDebug("classified reviews", common.Fields{
		"rows":       total,
		"categories": len(c.categories),
	})
	return result, nil
}
