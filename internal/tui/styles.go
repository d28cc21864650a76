package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	colorTitle   = lipgloss.Color("33")
	colorFocus   = lipgloss.Color("212")
	colorMuted   = lipgloss.Color("242")
	colorError   = lipgloss.Color("196")
	colorCorrect = lipgloss.Color("42")
)

// stylize colours text unless colour output is disabled.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor || text == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func bold(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}

func bankTableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252")).Bold(true)
	styles.Selected = styles.Selected.Foreground(colorFocus)
	return styles
}
