package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// BudgetBar renders a labeled utilization bar for one budget. pct is 0-100
// and may exceed 100; the bar is clamped full while the label shows the
// real figure. detail is printed after the percentage.
func BudgetBar(label string, pct float64, detail string, labelW, barWidth int) string {
	t := theme.Active
	color := t.ForUtilization(pct)

	fill := pct / 100
	fill = min(max(fill, 0), 1)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	detailStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(label, labelW))) +
		spaceStyle.Render(" ") +
		bar.ViewAs(fill) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct)) +
		spaceStyle.Render("  ") +
		detailStyle.Render(detail)
}

// ShareBar renders a bar for part of a whole (0-1) with no percentage.
func ShareBar(frac float64, width int, color lipgloss.Color) string {
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(theme.Active.Surface)
	return bar.ViewAs(min(max(frac, 0), 1))
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if limit <= 0 {
		return ""
	}
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
