package ui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("#1E88E5")
	successColor   = lipgloss.Color("#28A745")
	errorColor     = lipgloss.Color("#DC3545")
	secondaryColor = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.
				BorderForeground(primaryColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	busyStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 2)

	focusedButtonStyle = buttonStyle.
				Underline(true).
				Bold(true)

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#DDDDDD")).
				Background(secondaryColor).
				Padding(0, 2)
)
