package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired; status colors come from the server
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	// Primary accent colors
	ColorPrimary = lipgloss.Color("#BD93F9")
	ColorInfo    = lipgloss.Color("#8BE9FD")
	ColorSuccess = lipgloss.Color("#50FA7B")
	ColorWarning = lipgloss.Color("#FFB86C")

	// Selection highlight
	ColorSelectedBg = lipgloss.Color("#50FA7B")
	ColorSelectedFg = lipgloss.Color("#1E1F29")
)

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES - For split view layouts
// ══════════════════════════════════════════════════════════════════════════════

var (
	// PanelStyle is the default style for panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight)

	// PanelTitleStyle renders " List of Issues " style titles
	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	ItemStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorSelectedFg).
				Background(ColorSelectedBg).
				Bold(true)

	ColKeyStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	ColAssigneeStyle = lipgloss.NewStyle().
				Foreground(ColorSubtext)

	MetaStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SummaryStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	CommentAuthorStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext)

	MessageStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)
)

// ══════════════════════════════════════════════════════════════════════════════
// BADGE RENDERING
// ══════════════════════════════════════════════════════════════════════════════

// RenderStatusBadge renders a status name on the status's own color.
// Backlog sends colors as "#rrggbb"; anything else falls back to muted.
func RenderStatusBadge(name, hex string) string {
	bg := ColorMuted
	if isHexColor(hex) {
		bg = lipgloss.Color(hex)
	}
	if name == "" {
		name = "?"
	}
	return lipgloss.NewStyle().
		Foreground(ColorText).
		Background(bg).
		Padding(0, 1).
		Render(name)
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range strings.ToLower(s[1:]) {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
