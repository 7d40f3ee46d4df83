package tui

import (
	"testing"

	"github.com/Veraticus/reviewlens/internal/classification"
	"github.com/Veraticus/reviewlens/internal/testutil"
	"github.com/Veraticus/reviewlens/internal/testutil/categories"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult(t *testing.T) *classification.Result {
	t.Helper()

	tbl := testutil.NewReviewBuilder(t).
		WithContents([]string{
			"My kids love it",
			"The dog chews it",
			"Nothing special",
			"Bought for my girl and the cat",
		}).
		Build()
	cats := categories.NewBuilder(t).
		WithCategories(categories.CategoryKids, categories.CategoryPets).
		List()

	result, err := classification.Classify(tbl, cats)
	require.NoError(t, err)
	return result
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func rowIDs(rows []classification.Row) []int {
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func TestNewShowsAllRows(t *testing.T) {
	m := New(testResult(t))
	assert.Equal(t, "All reviews", m.FilterName())
	assert.Len(t, m.Rows(), 4)
	assert.Contains(t, m.View(), "4 of 4 reviews")
}

func TestCycleFilter(t *testing.T) {
	m := New(testResult(t))

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Kids", m.FilterName())
	assert.Equal(t, []int{1, 4}, rowIDs(m.Rows()))

	m = press(m, runes("f"))
	assert.Equal(t, "Pets", m.FilterName())
	assert.Equal(t, []int{2, 4}, rowIDs(m.Rows()))

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "All reviews", m.FilterName())

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "Pets", m.FilterName())
}

func TestNavigationAndDetail(t *testing.T) {
	m := New(testResult(t))

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	row, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 2, row.ID)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	assert.Contains(t, view, "Review 2")
	assert.Contains(t, view, "Categories: Pets")
	assert.Contains(t, view, "The dog chews it")

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotContains(t, m.View(), "Review 2")
}

func TestFilterResetsCursor(t *testing.T) {
	m := New(testResult(t))
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})

	row, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, row.ID)
}

func TestWindowResize(t *testing.T) {
	m := New(testResult(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	m = next.(Model)
	assert.Equal(t, 60, m.width)
	assert.Len(t, m.Rows(), 4)
}

func TestQuit(t *testing.T) {
	m := New(testResult(t))
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestToggleHelp(t *testing.T) {
	m := New(testResult(t))
	m = press(m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "previous category")
}

func TestEmptyResult(t *testing.T) {
	m := New(&classification.Result{})
	_, ok := m.Selected()
	assert.False(t, ok)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "No review selected")

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "All reviews", m.FilterName())
}
