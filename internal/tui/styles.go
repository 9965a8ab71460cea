package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/evalboard/internal/evalapi"
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("250"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230"))
	brandStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginRight(2)
	headingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(1, 2)
)

// statusColor maps an evaluation status to a badge background.
func statusColor(status string) lipgloss.Color {
	switch strings.ToLower(status) {
	case evalapi.StatusCompleted:
		return lipgloss.Color("28")
	case evalapi.StatusRunning:
		return lipgloss.Color("214")
	case evalapi.StatusPending:
		return lipgloss.Color("33")
	default:
		return lipgloss.Color("160")
	}
}

// renderStatusBadge returns a Lipgloss-styled badge for an evaluation status.
func renderStatusBadge(status string) string {
	label := strings.TrimSpace(status)
	if label == "" {
		label = "unknown"
	}
	return lipgloss.NewStyle().Background(statusColor(label)).Foreground(lipgloss.Color("0")).Padding(0, 1).Render(label)
}

// renderCountBadge renders a labelled count for the dashboard status panel.
func renderCountBadge(label string, count int, color string) string {
	value := lipgloss.NewStyle().Background(lipgloss.Color(color)).Foreground(lipgloss.Color("0")).Padding(0, 1).Render(strconv.Itoa(count))
	return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(18).Render(label), value)
}
