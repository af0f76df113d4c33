package tui

import "github.com/charmbracelet/lipgloss"

// Colors, as ANSI codes for terminal compatibility.
const (
	colorPrimary lipgloss.Color = "7"
	colorAccent  lipgloss.Color = "6"
	colorMuted   lipgloss.Color = "8"
	colorActive  lipgloss.Color = "2"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	phaseStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	movingStyle = lipgloss.NewStyle().
			Foreground(colorActive)

	bodyStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(colorMuted).
			PaddingLeft(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
