package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/wegive/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	collectedText = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	tabStyle       = lipgloss.NewStyle().Padding(0, 2)
	activeTabStyle = tabStyle.Bold(true).Foreground(lipgloss.Color("42")).Underline(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	modalStyle = panelStyle.BorderForeground(lipgloss.Color("12"))
	alertStyle = panelStyle.BorderForeground(lipgloss.Color("9"))
)

// badge renders a status the same way everywhere.
func badge(s model.Status) string {
	switch s {
	case model.StatusAvailable:
		return successStyle.Render("● " + string(s))
	case model.StatusClaimed:
		return pendingStyle.Render("◐ " + string(s))
	case model.StatusCollected:
		return mutedStyle.Render("✔ " + string(s))
	}
	return string(s)
}

func panelString(inner string) string {
	return panelStyle.Render(inner)
}
