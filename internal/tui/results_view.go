package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/results"
	"github.com/mwiater/evalboard/internal/util"
)

var resultColumns = []table.Column{
	{Title: "Model", Width: 20},
	{Title: "Test Case", Width: 26},
	{Title: "Category", Width: 14},
	{Title: "Accuracy", Width: 9},
	{Title: "Latency", Width: 8},
	{Title: "Cost", Width: 9},
	{Title: "Error", Width: 20},
}

func resultRows(list []evalapi.Result) []table.Row {
	rows := make([]table.Row, 0, len(list))
	for _, r := range list {
		errText := "-"
		if !r.Succeeded() {
			errText = util.Truncate(r.Error, 20)
		}
		rows = append(rows, table.Row{
			r.ModelName,
			r.TestCaseName,
			r.Category,
			util.FormatPercent(r.AccuracyScore),
			util.FormatLatency(r.ResponseTimeMS),
			util.FormatCurrency(r.CostUSD),
			errText,
		})
	}
	return rows
}

// setEvaluations keeps the completed runs and auto-selects the most recent one.
func (m *model) setEvaluations(evals []evalapi.Evaluation) tea.Cmd {
	m.completed = results.Completed(evals)
	m.evalsLoaded = true
	m.evalsLoading = false
	m.evalsErr = nil
	m.selectedRun = 0
	return m.selectRun(0)
}

func (m *model) selectedEvaluation() (evalapi.Evaluation, bool) {
	if m.selectedRun < 0 || m.selectedRun >= len(m.completed) {
		return evalapi.Evaluation{}, false
	}
	return m.completed[m.selectedRun], true
}

// selectRun switches to the completed run at index and fetches its results.
func (m *model) selectRun(index int) tea.Cmd {
	m.runResults = nil
	m.runMetrics = nil
	m.resultsErr = nil
	if index < 0 || index >= len(m.completed) {
		m.resultsLoading = false
		m.refreshResultRows()
		return nil
	}
	m.selectedRun = index
	m.resultsLoading = true
	m.refreshResultRows()
	return loadResultsCmd(m.ctx, m.client, m.completed[index].ID)
}

func (m *model) refreshResultRows() {
	var rows []evalapi.Result
	if m.runResults != nil {
		rows = m.runResults.Results
	}
	m.resultTable.SetRows(resultRows(rows))
	m.resultTable.SetCursor(0)
}

func (m *model) updateResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevRun):
		if m.selectedRun > 0 {
			return m, m.selectRun(m.selectedRun - 1)
		}
		return m, nil
	case key.Matches(msg, m.keys.NextRun):
		if m.selectedRun+1 < len(m.completed) {
			return m, m.selectRun(m.selectedRun + 1)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.resultTable, cmd = m.resultTable.Update(msg)
	return m, cmd
}

func (m *model) runPicker() string {
	run, ok := m.selectedEvaluation()
	if !ok {
		return ""
	}
	label := fmt.Sprintf("Run %d of %d: #%d %s", m.selectedRun+1, len(m.completed), run.ID, run.Name)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		headingStyle.Render(label), "  ",
		renderStatusBadge(run.Status), "  ",
		mutedStyle.Render(util.FormatTimestamp(run.CreatedAt)),
	)
}

func (m *model) resultsView() string {
	if m.evalsLoading && !m.evalsLoaded {
		return m.loadingLine("Loading evaluations...")
	}
	if m.evalsErr != nil {
		return errorBanner(m.evalsErr)
	}
	if len(m.completed) == 0 {
		return mutedStyle.Render("No completed evaluations yet. Run a demo from the dashboard.")
	}

	sections := []string{m.runPicker(), ""}
	switch {
	case m.resultsLoading:
		sections = append(sections, m.loadingLine("Loading results..."))
	case m.resultsErr != nil:
		sections = append(sections, errorBanner(m.resultsErr))
	case m.runResults == nil || len(m.runResults.Results) == 0:
		sections = append(sections, mutedStyle.Render("This evaluation has no results."))
	default:
		totals := results.Summarize(m.runResults.Results)
		sections = append(sections,
			mutedStyle.Render(fmt.Sprintf("%d results, %d successful (%s), total cost %s",
				totals.Results, totals.Successful, util.FormatPercent(totals.SuccessRate), util.FormatCurrency(totals.TotalCost))),
			m.resultTable.View(),
			"",
			headingStyle.Render("By model"),
			modelStatsView(results.Aggregate(m.runResults.Results)),
		)
		if len(m.runMetrics) > 0 {
			sections = append(sections, "", headingStyle.Render("Rankings"), metricsView(m.runMetrics))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func modelStatsView(stats []results.ModelStat) string {
	lines := make([]string, 0, len(stats)+1)
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("  %-20s %6s %9s %9s %10s %8s", "Model", "Count", "Accuracy", "Latency", "Cost", "Success")))
	for _, s := range stats {
		lines = append(lines, fmt.Sprintf("  %-20s %6d %9s %9s %10s %8s",
			util.Truncate(s.Model, 20),
			s.Count,
			util.FormatPercent(s.MeanAccuracy),
			util.FormatLatency(s.MeanLatencyMS),
			util.FormatCurrency(s.TotalCost),
			util.FormatPercent(s.SuccessRate),
		))
	}
	return strings.Join(lines, "\n")
}

func metricsView(metrics []evalapi.PerformanceMetric) string {
	lines := make([]string, 0, len(metrics)+1)
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("  %-20s %-14s %8s %6s %6s %6s", "Model", "Category", "Overall", "Acc", "Speed", "Cost")))
	for _, pm := range metrics {
		lines = append(lines, fmt.Sprintf("  %-20s %-14s %8d %6d %6d %6d",
			util.Truncate(pm.ModelName, 20),
			util.Truncate(pm.Category, 14),
			pm.OverallRank, pm.AccuracyRank, pm.SpeedRank, pm.CostRank,
		))
	}
	return strings.Join(lines, "\n")
}
