// ABOUTME: Lipgloss style palette for foldview, selected by the configured theme name.
// ABOUTME: Kept intentionally small: gutter, fold placeholder, cursor, status line, help.

package main

import "github.com/charmbracelet/lipgloss"

// styles bundles every lipgloss.Style foldview's View uses.
type styles struct {
	Gutter   lipgloss.Style
	Fold     lipgloss.Style
	Cursor   lipgloss.Style
	Status   lipgloss.Style
	HelpHint lipgloss.Style
}

// buildStyles resolves a styles bundle for the named theme ("dark", "light",
// or anything else which falls back to dark).
func buildStyles(theme string) styles {
	if theme == "light" {
		return styles{
			Gutter:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			Fold:     lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
			Cursor:   lipgloss.NewStyle().Reverse(true),
			Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")),
			HelpHint: lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Italic(true),
		}
	}
	return styles{
		Gutter:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Fold:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Cursor:   lipgloss.NewStyle().Reverse(true),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("214")),
		HelpHint: lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true),
	}
}
