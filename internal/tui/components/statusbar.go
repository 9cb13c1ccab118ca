package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// ledger info on the right. A non-empty warning replaces the info in orange.
func RenderStatusBar(width int, info, warning string) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	left := " [?]help  [r]eload  [+/-]window  [q]uit"
	right := info + " "
	rightStyle := base
	if warning != "" {
		right = warning + " "
		rightStyle = lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return base.Render(left+strings.Repeat(" ", padding)) + rightStyle.Render(right)
}
