package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/util"
)

func (m *model) updateDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Demo) {
		if m.demo != demoIdle {
			return m, nil
		}
		m.demo = demoRunning
		m.demoMessage = "Starting demo..."
		return m, triggerDemoCmd(m.ctx, m.client)
	}
	return m, nil
}

func (m *model) dashboardView() string {
	if !m.dashLoaded {
		return m.loadingLine("Loading dashboard...")
	}

	counts := m.snapshot.Counts()
	statusPanel := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render("Overview"),
		renderCountBadge("Models", counts.Models, "42"),
		renderCountBadge("Active models", counts.ActiveModels, "46"),
		renderCountBadge("Test cases", counts.TestCases, "33"),
		renderCountBadge("Categories", counts.Categories, "141"),
		renderCountBadge("Evaluations", counts.Evaluations, "214"),
	))

	statuses := []string{headingStyle.Render("Runs by status")}
	for _, status := range []string{evalapi.StatusRunning, evalapi.StatusCompleted, evalapi.StatusFailed, evalapi.StatusPending} {
		statuses = append(statuses, fmt.Sprintf("%s %d", renderStatusBadge(status), counts.ByStatus[status]))
	}
	statusesPanel := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, statuses...))

	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, statusPanel, " ", statusesPanel),
		"",
		headingStyle.Render("Recent evaluations"),
		m.recentView(),
		"",
		m.demoView(),
	}
	if err := m.snapshot.Err(); err != nil {
		sections = append(sections, "", errorBanner(err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *model) recentView() string {
	recent := m.snapshot.Recent(m.cfg.RecentCount())
	if len(recent) == 0 {
		return mutedStyle.Render("  No evaluations yet. Press r to run a demo.")
	}
	now := m.now()
	lines := make([]string, 0, len(recent))
	for _, e := range recent {
		when := util.FormatTimestamp(e.CreatedAt)
		if t, ok := util.ParseTimestamp(e.CreatedAt); ok {
			when = fmt.Sprintf("%s (%s)", when, util.RelativeTime(t, now))
		}
		lines = append(lines, fmt.Sprintf("  #%-4d %-32s %s  %s",
			e.ID,
			util.Truncate(e.Name, 32),
			renderStatusBadge(e.Status),
			mutedStyle.Render(when),
		))
	}
	return strings.Join(lines, "\n")
}

func (m *model) demoView() string {
	switch m.demo {
	case demoRunning:
		return m.loadingLine(m.demoMessage)
	case demoStarted:
		return successStyle.Render(m.demoMessage)
	case demoFailed:
		return errorStyle.Render(m.demoMessage)
	}
	return mutedStyle.Render("Press r to run a quick demo evaluation.")
}
