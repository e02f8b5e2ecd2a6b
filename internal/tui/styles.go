package tui

import "github.com/charmbracelet/lipgloss"

var (
	Surface  = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext  = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)

	cell = lipgloss.NewStyle().
		Width(4).
		Align(lipgloss.Center).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface).
		Foreground(Text)

	cellHidden   = cell.Foreground(Subtext)
	cellRevealed = cell.BorderForeground(Peach)
	cellMatched  = cell.BorderForeground(Green).Foreground(Green)
)
