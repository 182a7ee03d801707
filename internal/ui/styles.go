// ABOUTME: Lipgloss styles for the reader TUI
// ABOUTME: Keeps colors for titles, labels and lock states in one place
package ui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	timecode lipgloss.Style
	dim      lipgloss.Style
	help     lipgloss.Style
	good     lipgloss.Style
	warn     lipgloss.Style
	bad      lipgloss.Style
}

func newStyles() styles {
	primary := lipgloss.Color("#00ff9f")
	dim := lipgloss.Color("#6e7681")

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		label:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		timecode: lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(primary),
		dim:      lipgloss.NewStyle().Foreground(dim),
		help:     lipgloss.NewStyle().Foreground(dim),
		good:     lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff9f")),
		warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd75f")),
		bad:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")),
	}
}
