// Package tui implements an interactive browser over classified reviews.
package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/reviewlens/internal/classification"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	allFilter     = -1
	defaultWidth  = 100
	defaultHeight = 24
	chromeHeight  = 7
	idWidth       = 6
	typeWidth     = 10
	matchWidth    = 24
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	filterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)
)

// Model is the bubbletea model of the review browser.
type Model struct {
	result     *classification.Result
	rows       []classification.Row
	keys       KeyMap
	help       help.Model
	table      table.Model
	filter     int
	width      int
	height     int
	showDetail bool
}

// New creates a browser over result showing every row.
func New(result *classification.Result) Model {
	m := Model{
		result: result,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		filter: allFilter,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	m.applyFilter()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(m.columns())
		m.table.SetHeight(m.tableHeight())
		m.table.SetRows(m.tableRows())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleHelp):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.ToggleDetail):
			m.showDetail = !m.showDetail
			return m, nil
		case key.Matches(msg, m.keys.NextFilter):
			m.cycleFilter(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevFilter):
			m.cycleFilter(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Classified reviews"))
	b.WriteString("  ")
	b.WriteString(filterStyle.Render(m.FilterName()))
	b.WriteString(subtleStyle.Render(fmt.Sprintf("  %d of %d reviews", len(m.rows), len(m.result.Rows))))
	b.WriteString("\n\n")

	if m.showDetail {
		b.WriteString(m.detailView())
	} else {
		b.WriteString(m.table.View())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// FilterName returns the label of the active filter.
func (m Model) FilterName() string {
	if m.filter == allFilter {
		return "All reviews"
	}
	return m.result.Categories[m.filter]
}

// Rows returns the rows visible under the active filter.
func (m Model) Rows() []classification.Row {
	return m.rows
}

// Selected returns the row under the cursor.
func (m Model) Selected() (classification.Row, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return classification.Row{}, false
	}
	return m.rows[i], true
}

// cycleFilter steps through All followed by each category, wrapping around.
func (m *Model) cycleFilter(step int) {
	n := len(m.result.Categories) + 1
	pos := (m.filter + 1 + step + n) % n
	m.filter = pos - 1
	m.applyFilter()
}

func (m *Model) applyFilter() {
	if m.filter == allFilter {
		m.rows = m.result.Rows
	} else {
		// the index always names a known category
		m.rows, _ = m.result.Filter(m.result.Categories[m.filter])
	}
	m.table.SetRows(m.tableRows())
	m.table.GotoTop()
	m.showDetail = false
}

func (m Model) tableHeight() int {
	return max(m.height-chromeHeight, 3)
}

func (m Model) columns() []table.Column {
	content := max(m.width-idWidth-typeWidth-matchWidth-8, 20)
	return []table.Column{
		{Title: "ID", Width: idWidth},
		{Title: "Type", Width: typeWidth},
		{Title: "Categories", Width: matchWidth},
		{Title: "Content", Width: content},
	}
}

func (m Model) tableRows() []table.Row {
	rows := make([]table.Row, 0, len(m.rows))
	for _, r := range m.rows {
		rows = append(rows, table.Row{
			fmt.Sprint(r.ID),
			string(r.ReviewType),
			strings.Join(m.matched(r), ", "),
			oneLine(r.Content),
		})
	}
	return rows
}

func (m Model) matched(r classification.Row) []string {
	var names []string
	for i, ok := range r.Matches {
		if ok {
			names = append(names, m.result.Categories[i])
		}
	}
	return names
}

func (m Model) detailView() string {
	r, ok := m.Selected()
	if !ok {
		return subtleStyle.Render("No review selected")
	}

	matched := strings.Join(m.matched(r), ", ")
	if matched == "" {
		matched = "none"
	}
	content := "(no content)"
	if r.Content != nil {
		content = *r.Content
	}

	body := fmt.Sprintf("Review %d  %s\nCategories: %s\n\n%s", r.ID, r.ReviewType, matched, content)
	return detailStyle.Width(max(m.width-4, 20)).Render(body)
}

func oneLine(content *string) string {
	if content == nil {
		return ""
	}
	return strings.Join(strings.Fields(*content), " ")
}
