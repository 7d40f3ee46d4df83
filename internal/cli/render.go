package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/reviewlens/internal/analysis"
	"github.com/Veraticus/reviewlens/internal/classification"
	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/report"
	"github.com/Veraticus/reviewlens/internal/storage"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const missingValue = "-"

// typeColors colors review type labels the way the pie chart does.
var typeColors = map[model.ReviewType]lipgloss.Color{
	model.ReviewTypePositive: PositiveColor,
	model.ReviewTypeNeutral:  NeutralColor,
	model.ReviewTypeNegative: NegativeColor,
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(SubtleColor)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		}).
		String()
}

func formatFloat(v *float64) string {
	if v == nil {
		return missingValue
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func typeLabel(rt model.ReviewType) string {
	if rt == "" {
		return missingValue
	}
	if color, ok := typeColors[rt]; ok {
		return lipgloss.NewStyle().Foreground(color).Render(string(rt))
	}
	return string(rt)
}

// RenderOverview renders the headline numbers of a table.
func RenderOverview(o analysis.Overview) string {
	period := o.Period()
	if period == "" {
		period = missingValue
	}
	lines := []string{
		fmt.Sprintf("Reviews:      %d", o.Rows),
		fmt.Sprintf("Products:     %d", o.Products),
		fmt.Sprintf("Mean rating:  %s", formatFloat(o.MeanRating)),
		fmt.Sprintf("Period:       %s", period),
	}
	return RenderBox("Overview", strings.Join(lines, "\n"))
}

// RenderSummary renders the review-type counts and shares.
func RenderSummary(s analysis.Summary) string {
	rows := make([][]string, 0, len(s.Types))
	for _, tc := range s.Types {
		rows = append(rows, []string{typeLabel(tc.Type), fmt.Sprint(tc.Count), formatPercent(tc.Percentage)})
	}
	return FormatTitle("Review types") + "\n" +
		renderTable([]string{"Type", "Count", "Share"}, rows) + "\n" +
		SubtleStyle.Render(fmt.Sprintf("%d reviews in total", s.Total))
}

// RenderGroups renders per-group rating statistics with review type counts.
func RenderGroups(by analysis.GroupBy, groups []analysis.GroupStat) string {
	headers := []string{by.String(), "Count", "Mean", "Std"}
	for _, rt := range model.ReviewTypes {
		headers = append(headers, string(rt))
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		row := []string{g.Key, fmt.Sprint(g.Count), formatFloat(g.Mean), formatFloat(g.Std)}
		for _, rt := range model.ReviewTypes {
			if g.TypeCounts == nil {
				row = append(row, missingValue)
				continue
			}
			row = append(row, fmt.Sprint(g.TypeCounts[rt]))
		}
		rows = append(rows, row)
	}
	return FormatTitle("Ratings by "+by.String()) + "\n" + renderTable(headers, rows)
}

// RenderDistribution renders the group by rating matrix, as percentages or
// raw counts depending on d.
func RenderDistribution(d analysis.Distribution) string {
	headers := []string{"Group"}
	for _, r := range d.Ratings {
		headers = append(headers, analysis.FormatRating(r))
	}

	rows := make([][]string, 0, len(d.Groups))
	for i, g := range d.Groups {
		row := []string{g}
		for _, v := range d.Values[i] {
			if d.Percentage {
				row = append(row, formatPercent(v))
			} else {
				row = append(row, fmt.Sprintf("%g", v))
			}
		}
		rows = append(rows, row)
	}

	title := "Rating distribution"
	if !d.Percentage {
		title = "Rating counts"
	}
	return FormatTitle(title) + "\n" + renderTable(headers, rows)
}

// RenderTrend renders a month by series table of mean ratings.
func RenderTrend(t *analysis.Trend) string {
	headers := []string{"Month"}
	lookup := make([]map[string]analysis.TrendPoint, len(t.Series))
	for i, s := range t.Series {
		headers = append(headers, s.Group)
		lookup[i] = make(map[string]analysis.TrendPoint, len(s.Points))
		for _, p := range s.Points {
			lookup[i][p.Month] = p
		}
	}

	rows := make([][]string, 0, len(t.Months))
	for _, month := range t.Months {
		row := []string{month}
		for i := range t.Series {
			p, ok := lookup[i][month]
			if !ok {
				row = append(row, missingValue)
				continue
			}
			row = append(row, fmt.Sprintf("%.2f (%d)", p.Mean, p.Count))
		}
		rows = append(rows, row)
	}

	out := FormatTitle("Monthly rating trend") + "\n" + renderTable(headers, rows)
	if t.Excluded > 0 {
		out += "\n" + SubtleStyle.Render(fmt.Sprintf("%d reviews without a date were left out", t.Excluded))
	}
	return out
}

// RenderBreakdown renders the basic rating breakdown used as a fallback.
func RenderBreakdown(b analysis.Breakdown) string {
	rows := make([][]string, 0, len(b.RatingCounts))
	for _, rc := range b.RatingCounts {
		rows = append(rows, []string{analysis.FormatRating(rc.Rating), fmt.Sprint(rc.Count)})
	}
	summary := fmt.Sprintf("Mean %s, %d high (4+), %d low (2-) of %d reviews",
		formatFloat(b.Mean), b.High, b.Low, b.Total)
	return FormatTitle("Rating breakdown") + "\n" +
		renderTable([]string{"Rating", "Count"}, rows) + "\n" +
		SubtleStyle.Render(summary)
}

func sectionError(name string, err error) string {
	return FormatError(fmt.Sprintf("%s unavailable: %v", name, err))
}

// RenderDashboard renders every dashboard section, substituting fallbacks and
// error notes for the sections that failed.
func RenderDashboard(d *report.Dashboard) string {
	var parts []string

	if d.Overview.OK() {
		parts = append(parts, RenderOverview(d.Overview.Value))
	} else {
		parts = append(parts, sectionError("Overview", d.Overview.Err))
	}

	if d.Summary.OK() {
		parts = append(parts, RenderSummary(d.Summary.Value))
	} else {
		parts = append(parts, sectionError("Review type summary", d.Summary.Err))
	}

	switch {
	case d.Groups.OK():
		parts = append(parts, RenderGroups(d.By, d.Groups.Value.Groups))
	case d.BasicGroups != nil && d.BasicGroups.OK():
		parts = append(parts,
			sectionError("Group statistics", d.Groups.Err),
			RenderGroups(d.By, d.BasicGroups.Value))
	default:
		parts = append(parts, sectionError("Group statistics", d.Groups.Err))
	}

	switch {
	case d.Distribution.OK():
		parts = append(parts, RenderDistribution(d.Distribution.Value))
	case d.RatingCounts != nil && d.RatingCounts.OK():
		parts = append(parts,
			sectionError("Rating distribution", d.Distribution.Err),
			RenderDistribution(d.RatingCounts.Value))
	default:
		parts = append(parts, sectionError("Rating distribution", d.Distribution.Err))
	}

	switch {
	case d.Trend.OK():
		parts = append(parts, RenderTrend(d.Trend.Value))
	case d.OverallTrend != nil && d.OverallTrend.OK():
		parts = append(parts,
			sectionError("Rating trend", d.Trend.Err),
			RenderTrend(d.OverallTrend.Value))
	default:
		parts = append(parts, sectionError("Rating trend", d.Trend.Err))
	}

	if d.Breakdown != nil && d.Breakdown.OK() {
		parts = append(parts, RenderBreakdown(d.Breakdown.Value))
	}

	diag := d.Diagnostics
	if diag.BadRatings+diag.BadDates+diag.BadIDs+diag.UnknownLabels > 0 {
		parts = append(parts, FormatWarning(fmt.Sprintf(
			"Unreadable cells: %d ratings, %d dates, %d IDs, %d review types",
			diag.BadRatings, diag.BadDates, diag.BadIDs, diag.UnknownLabels)))
	}

	return strings.Join(parts, "\n\n")
}

// RenderClassification renders the per-category match statistics.
func RenderClassification(stats []classification.CategoryStat, total int) string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Name,
			fmt.Sprint(s.Keywords),
			fmt.Sprint(s.Matched),
			fmt.Sprint(s.Unmatched),
			formatPercent(s.Percentage),
		})
	}
	return FormatTitle(fmt.Sprintf("Classification of %d reviews", total)) + "\n" +
		renderTable([]string{"Category", "Keywords", "Matched", "Unmatched", "Share"}, rows)
}

// RenderCategories lists category definitions.
func RenderCategories(categories []model.Category) string {
	if len(categories) == 0 {
		return SubtleStyle.Render("No categories defined. Add one or import a preset.")
	}
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{c.Name, fmt.Sprint(c.KeywordCount()), c.Keywords})
	}
	return renderTable([]string{"Name", "Keywords", "Definition"}, rows)
}

// RenderPresets lists the built-in categories, marking the imported ones.
func RenderPresets(presets []model.Category, imported func(string) bool) string {
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		mark := ""
		if imported(p.Name) {
			mark = SuccessIcon
		}
		rows = append(rows, []string{mark, p.Name, storage.PresetPreview(p)})
	}
	return renderTable([]string{"", "Preset", "Keywords"}, rows)
}
