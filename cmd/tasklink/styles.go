package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"tasklink/internal/types"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	keywordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	statusStyles = map[types.Status]lipgloss.Style{
		types.StatusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		types.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		types.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

// renderStatus returns a colored, fixed-width status label.
func renderStatus(s types.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(fmt.Sprintf("%-11s", s))
}
