package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/models"
	"github.com/mwiater/evalboard/internal/util"
)

var modelColumns = []table.Column{
	{Title: "Name", Width: 24},
	{Title: "Provider", Width: 11},
	{Title: "Model ID", Width: 22},
	{Title: "Cost/1K", Width: 9},
	{Title: "Tier", Width: 7},
	{Title: "Max Tokens", Width: 10},
	{Title: "Context", Width: 9},
	{Title: "Status", Width: 8},
}

func modelRows(list []evalapi.Model) []table.Row {
	rows := make([]table.Row, 0, len(list))
	for _, mdl := range list {
		status := "inactive"
		if mdl.IsActive {
			status = "active"
		}
		rows = append(rows, table.Row{
			mdl.Name,
			models.Provider(mdl.Provider).Name,
			mdl.ModelID,
			util.FormatCurrency(mdl.CostPer1KTokens),
			models.CostTier(mdl.CostPer1KTokens),
			strconv.Itoa(mdl.MaxTokens),
			models.ContextSize(mdl.MaxTokens),
			status,
		})
	}
	return rows
}

func (m *model) refreshModelRows() {
	m.modelTable.SetRows(modelRows(models.Apply(m.modelList, m.modelFilter)))
	m.modelTable.SetCursor(0)
}

func (m *model) updateModelKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Filter) {
		m.modelFilter = m.modelFilter.Next()
		m.refreshModelRows()
		return m, nil
	}
	var cmd tea.Cmd
	m.modelTable, cmd = m.modelTable.Update(msg)
	return m, cmd
}

func (m *model) filterBar() string {
	counts := models.Counts(m.modelList)
	parts := make([]string, 0, len(models.Filters))
	for _, f := range models.Filters {
		label := fmt.Sprintf("%s (%d)", f, counts[f])
		if f == m.modelFilter {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *model) modelsView() string {
	if m.modelsLoading && !m.modelsLoaded {
		return m.loadingLine("Loading models...")
	}
	sections := []string{m.filterBar(), ""}
	if len(m.modelTable.Rows()) == 0 {
		sections = append(sections, mutedStyle.Render("No models match the current filter."))
	} else {
		sections = append(sections, m.modelTable.View())
		if row := m.modelTable.SelectedRow(); row != nil {
			info := models.Provider(providerOf(m.modelList, row[2]))
			sections = append(sections, lipgloss.NewStyle().Foreground(lipgloss.Color(info.Color)).Render(strings.Join([]string{row[0], info.Name, row[2]}, " | ")))
		}
	}
	if m.modelsErr != nil {
		sections = append(sections, "", errorBanner(m.modelsErr))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// providerOf returns the raw provider of the model with the given model id.
func providerOf(list []evalapi.Model, modelID string) string {
	for _, mdl := range list {
		if mdl.ModelID == modelID {
			return mdl.Provider
		}
	}
	return ""
}
