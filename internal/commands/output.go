package evalboard

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/mwiater/evalboard/internal/evalapi"
)

var (
	completedBadge = color.New(color.FgGreen, color.Bold).SprintFunc()
	runningBadge   = color.New(color.FgYellow, color.Bold).SprintFunc()
	pendingBadge   = color.New(color.FgCyan).SprintFunc()
	failedBadge    = color.New(color.FgRed, color.Bold).SprintFunc()
	headingText    = color.New(color.Bold).SprintFunc()
	mutedText      = color.New(color.FgHiBlack).SprintFunc()
)

// statusBadge colours an evaluation status for terminal output.
func statusBadge(status string) string {
	switch strings.ToLower(status) {
	case evalapi.StatusCompleted:
		return completedBadge(status)
	case evalapi.StatusRunning:
		return runningBadge(status)
	case evalapi.StatusPending:
		return pendingBadge(status)
	default:
		return failedBadge(status)
	}
}

// printJSON writes v as indented JSON.
func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// emit prints v as JSON in JSON mode, otherwise calls render. Debug mode also
// dumps the raw value.
func emit(out io.Writer, v any, render func(io.Writer) error) error {
	if JSONModeEnabled() {
		return printJSON(out, v)
	}
	if err := render(out); err != nil {
		return err
	}
	if DebugEnabled() {
		fmt.Fprintln(out)
		pp.Fprintln(out, v)
	}
	return nil
}

// renderTable draws a bordered table with a bold header row.
func renderTable(out io.Writer, headers []string, rows [][]string) {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(out, t.Render())
}
