package models

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/util"
)

// Render writes the filtered models grouped under a filter header, one line per model.
func Render(out io.Writer, all []evalapi.Model, f Filter) {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	inactiveStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

	counts := Counts(all)
	var tabs []string
	for _, option := range Filters {
		label := fmt.Sprintf("%s (%d)", option, counts[option])
		if option == f {
			label = "[" + label + "]"
		}
		tabs = append(tabs, label)
	}
	fmt.Fprintln(out, headerStyle.Render("Models: "+strings.Join(tabs, "  ")))

	shown := Apply(all, f)
	if len(shown) == 0 {
		fmt.Fprintln(out, "  No models match this filter.")
		return
	}
	for _, m := range shown {
		provider := Provider(m.Provider)
		providerLabel := lipgloss.NewStyle().Foreground(lipgloss.Color(provider.Color)).Render(provider.Name)
		status := activeStyle.Render("active")
		if !m.IsActive {
			status = inactiveStyle.Render("inactive")
		}
		fmt.Fprintf(out, "  >>> %s (%s) %s  %s/1K [%s]  %d tokens [%s]  %s\n",
			m.Name, m.ModelID, providerLabel,
			util.FormatCurrency(m.CostPer1KTokens), CostTier(m.CostPer1KTokens),
			m.MaxTokens, ContextSize(m.MaxTokens), status)
	}
}
