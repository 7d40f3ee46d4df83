// Package report assembles the statistics dashboard. Each section runs on its
// own: a failing section records its error and, where one exists, a simpler
// fallback view, while the other sections still render.
package report

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/Veraticus/reviewlens/internal/analysis"
	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/Veraticus/reviewlens/internal/table"
)

// Section is the outcome of one dashboard part: its value or the error that
// stopped it.
type Section[T any] struct {
	Value T      `json:"value,omitempty"`
	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

// OK reports whether the section produced its value.
func (s Section[T]) OK() bool {
	return s.Err == nil
}

// Options configures a dashboard build.
type Options struct {
	// By groups the statistics and distribution; defaults to ByAsin.
	By analysis.GroupBy
	// Trend groups and filters the trend; a nil Trend.By means the Overall series.
	Trend analysis.TrendOptions
}

// Dashboard holds every section plus the fallbacks of the ones that failed.
// A fallback pointer is nil when the section it stands in for succeeded.
type Dashboard struct {
	Breakdown    *Section[analysis.Breakdown]    `json:"breakdown,omitempty"`
	BasicGroups  *Section[[]analysis.GroupStat]  `json:"basic_groups,omitempty"`
	RatingCounts *Section[analysis.Distribution] `json:"rating_counts,omitempty"`
	OverallTrend *Section[*analysis.Trend]       `json:"overall_trend,omitempty"`

	Overview     Section[analysis.Overview]     `json:"overview"`
	Summary      Section[analysis.Summary]      `json:"summary"`
	Groups       Section[*analysis.GroupStats]  `json:"groups"`
	Distribution Section[analysis.Distribution] `json:"distribution"`
	Trend        Section[*analysis.Trend]       `json:"trend"`

	By          analysis.GroupBy  `json:"by"`
	Diagnostics table.Diagnostics `json:"diagnostics"`
}

// Failed lists the names of the sections that did not produce a value.
func (d *Dashboard) Failed() []string {
	var failed []string
	for name, ok := range map[string]bool{
		"overview":     d.Overview.OK(),
		"summary":      d.Summary.OK(),
		"groups":       d.Groups.OK(),
		"distribution": d.Distribution.OK(),
		"trend":        d.Trend.OK(),
	} {
		if !ok {
			failed = append(failed, name)
		}
	}
	sort.Strings(failed)
	return failed
}

// Build runs every section over t.
func Build(t *table.Table, opts Options) *Dashboard {
	if opts.By == nil {
		opts.By = analysis.ByAsin
	}

	d := &Dashboard{By: opts.By, Diagnostics: t.Diagnostics}

	d.Overview = run("overview", func() (analysis.Overview, error) {
		return analysis.ComputeOverview(t)
	})
	d.Summary = run("summary", func() (analysis.Summary, error) {
		return analysis.ReviewTypeSummary(t)
	})
	d.Groups = run("groups", func() (*analysis.GroupStats, error) {
		return analysis.GroupStatistics(t, opts.By)
	})
	d.Distribution = run("distribution", func() (analysis.Distribution, error) {
		return analysis.RatingDistribution(t, opts.By)
	})
	d.Trend = run("trend", func() (*analysis.Trend, error) {
		return analysis.RatingTrend(t, opts.Trend)
	})

	if !d.Summary.OK() || !d.Groups.OK() || !d.Distribution.OK() {
		s := run("breakdown", func() (analysis.Breakdown, error) {
			return analysis.ComputeBreakdown(t)
		})
		d.Breakdown = &s
	}
	if !d.Groups.OK() {
		s := run("basic groups", func() ([]analysis.GroupStat, error) {
			return analysis.BasicGroupStatistics(t, opts.By)
		})
		d.BasicGroups = &s
	}
	if !d.Distribution.OK() {
		s := run("rating counts", func() (analysis.Distribution, error) {
			return analysis.RatingCounts(t, opts.By)
		})
		d.RatingCounts = &s
	}
	if !d.Trend.OK() && opts.Trend.By != nil {
		s := run("overall trend", func() (*analysis.Trend, error) {
			return analysis.RatingTrend(t, analysis.TrendOptions{Asins: opts.Trend.Asins})
		})
		d.OverallTrend = &s
	}

	return d
}

// run evaluates one section. A panic inside fn is converted into an
// ErrAnalysisFailed for that section alone.
func run[T any](name string, fn func() (T, error)) (s Section[T]) {
	defer func() {
		if r := recover(); r != nil {
			s = Section[T]{Err: fmt.Errorf("%w: %s: %v", common.ErrAnalysisFailed, name, r)}
		}
		if s.Err != nil {
			s.Error = s.Err.Error()
			slog.Warn("dashboard section failed", "section", name, "error", s.Err)
		}
	}()

	v, err := fn()
	return Section[T]{Value: v, Err: err}
}
