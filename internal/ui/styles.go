package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#00E5FF")
	colorSuccess = lipgloss.Color("#2AFFAA")
	colorError   = lipgloss.Color("#FF5555")
	colorWarning = lipgloss.Color("#FFB500")
	colorMuted   = lipgloss.Color("#6C7280")
	colorText    = lipgloss.Color("#ECEFF4")

	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle = lipgloss.NewStyle().Foreground(colorText)

	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
)
