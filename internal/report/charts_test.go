package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/Veraticus/reviewlens/internal/analysis"
	"github.com/Veraticus/reviewlens/internal/classification"
	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDoc(t *testing.T, r Renderer) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func scripts(doc *goquery.Document) string {
	var sb strings.Builder
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		sb.WriteString(s.Text())
	})
	return sb.String()
}

func TestPieChart(t *testing.T) {
	doc := renderDoc(t, PieChart(analysis.Summary{Total: 2, Types: []analysis.TypeCount{
		{Type: model.ReviewTypePositive, Count: 2, Percentage: 100},
	}}))

	assert.Equal(t, "Review types", strings.TrimSpace(doc.Find("title").Text()))

	js := scripts(doc)
	for _, want := range []string{`"positive"`, `"neutral"`, `"negative"`, "#2ECC71", "#E74C3C"} {
		assert.Contains(t, js, want)
	}
	assert.NotContains(t, js, `"unknown"`)
}

func TestHeatmapChart(t *testing.T) {
	doc := renderDoc(t, HeatmapChart(analysis.Distribution{
		Groups:     []string{"A1 - M1", "A1 - M2"},
		Ratings:    []float64{1, 4.5},
		Values:     [][]float64{{100.0 / 3, 200.0 / 3}, {0, 0}},
		Percentage: true,
	}))

	js := scripts(doc)
	assert.Contains(t, js, "A1 - M1")
	assert.Contains(t, js, `["1","4.5"]`, "ratings label the x axis")
	assert.Contains(t, js, "33.33")
	assert.Greater(t, doc.Find("div").Length(), 0)
}

func TestTrendChart(t *testing.T) {
	doc := renderDoc(t, TrendChart(&analysis.Trend{
		Months: []string{"2024-01", "2024-02"},
		Series: []analysis.TrendSeries{
			{Group: "A1", Points: []analysis.TrendPoint{{Month: "2024-02", Mean: 4.25, Count: 4}}},
		},
		Excluded: 3,
	}))

	js := scripts(doc)
	assert.Contains(t, js, "2024-01")
	assert.Contains(t, js, "4.25")
	assert.Contains(t, js, `"-"`)
	assert.Contains(t, js, "3 rows without a date excluded")
}

func TestCategoryBarChart(t *testing.T) {
	doc := renderDoc(t, CategoryBarChart([]classification.CategoryStat{
		{Name: "儿童或青少年", Matched: 3, Unmatched: 7},
	}))

	js := scripts(doc)
	assert.Contains(t, js, "儿童或青少年")
	assert.Contains(t, js, "Unmatched")
}

func TestPage_UsesFallbacks(t *testing.T) {
	tbl := sampleTable(t)
	tbl.Columns = []string{"ID", "Asin", "Model", "Rating", "Date"}

	doc := renderDoc(t, Page(Build(tbl, Options{})))
	assert.Equal(t, "Review dashboard", strings.TrimSpace(doc.Find("title").Text()))

	js := scripts(doc)
	assert.NotContains(t, js, "#2ECC71", "failed summary has no pie")
	assert.Contains(t, js, "Reviews per rating", "breakdown bar replaces it")
	assert.Contains(t, js, "Monthly mean rating")
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pie.html")
	require.NoError(t, RenderFile(path, PieChart(analysis.Summary{})))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html")
}
