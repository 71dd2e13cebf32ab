package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains pre-configured lipgloss styles for the review TUI.
type Styles struct {
	// Title style for the header line.
	Title lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for hints and metadata.
	Muted lipgloss.Style

	// Selected style for the highlighted item row.
	Selected lipgloss.Style

	// Approved style for approved status markers.
	Approved lipgloss.Style

	// Rejected style for rejected status markers.
	Rejected lipgloss.Style

	// Error style for failure messages.
	Error lipgloss.Style

	// Pane style for the similarity side pane.
	Pane lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#06B6D4")),
		Approved: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1")),
		Rejected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F38BA8")),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1),
	}
}
