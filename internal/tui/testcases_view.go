package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/testcases"
	"github.com/mwiater/evalboard/internal/util"
)

var caseColumns = []table.Column{
	{Title: "ID", Width: 5},
	{Title: "Name", Width: 30},
	{Title: "Category", Width: 16},
	{Title: "Difficulty", Width: 10},
	{Title: "Created", Width: 16},
}

func caseRows(list []evalapi.TestCase) []table.Row {
	rows := make([]table.Row, 0, len(list))
	for _, tc := range list {
		difficulty := tc.Difficulty
		if difficulty == "" {
			difficulty = "-"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(tc.ID),
			tc.Name,
			tc.Category,
			difficulty,
			util.FormatTimestamp(tc.CreatedAt),
		})
	}
	return rows
}

func (m *model) query() testcases.Query {
	return testcases.Query{Search: m.search.Value(), Category: m.category}
}

func (m *model) refreshCaseRows() {
	m.visibleCases = testcases.Filter(m.caseList, m.query())
	m.caseTable.SetRows(caseRows(m.visibleCases))
	m.caseTable.SetCursor(0)
}

func (m *model) updateCaseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.caseTable.Blur()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Category):
		m.category = testcases.NextCategory(testcases.CategoryOptions(m.caseList), m.category)
		m.refreshCaseRows()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		cursor := m.caseTable.Cursor()
		if cursor < 0 || cursor >= len(m.visibleCases) {
			return m, nil
		}
		m.selectedCase = m.visibleCases[cursor]
		m.detailOpen = true
		m.setDetailContent()
		return m, nil
	case key.Matches(msg, m.keys.Close):
		if m.search.Value() != "" {
			m.search.Reset()
			m.refreshCaseRows()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.caseTable, cmd = m.caseTable.Update(msg)
	return m, cmd
}

// updateSearch feeds keys to the search input and re-filters on every change.
func (m *model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Reset()
		fallthrough
	case tea.KeyEnter:
		m.search.Blur()
		m.caseTable.Focus()
		m.refreshCaseRows()
		return m, nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.refreshCaseRows()
	}
	return m, cmd
}

func (m *model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Close) {
		m.detailOpen = false
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *model) setDetailContent() {
	width := m.detail.Width
	if width <= 0 {
		width = 80
	}
	m.detail.SetContent(testcases.DetailText(m.selectedCase, width))
	m.detail.GotoTop()
}

func (m *model) testCasesView() string {
	if m.casesLoading && !m.casesLoaded {
		return m.loadingLine("Loading test cases...")
	}
	if m.detailOpen {
		title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(testcases.DifficultyColor(m.selectedCase.Difficulty))).
			Render(fmt.Sprintf("Test case #%d", m.selectedCase.ID))
		return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.detail.View(), "", mutedStyle.Render("esc to close")))
	}

	category := mutedStyle.Render("Category: ") + activeTabStyle.Render(m.category)
	counter := mutedStyle.Render(fmt.Sprintf("%d of %d", len(m.visibleCases), len(m.caseList)))
	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, m.search.View(), "  ", category, "  ", counter),
		"",
	}
	if len(m.visibleCases) == 0 {
		sections = append(sections, mutedStyle.Render("No test cases match the current search."))
	} else {
		sections = append(sections, m.caseTable.View())
	}
	if m.casesErr != nil {
		sections = append(sections, "", errorBanner(m.casesErr))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
