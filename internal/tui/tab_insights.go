package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

func (a App) renderInsightsTab(cw int) string {
	t := theme.Active
	ins := a.insights
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if ins.Empty() {
		return components.ContentCard("Insights", muted.Render(ins.Message), cw)
	}

	top := "-"
	if ins.TopCategory != "" {
		top = cli.Capitalize(ins.TopCategory)
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Average expense", Value: cli.FormatMoney(ins.AverageExpense)},
		{Label: "Largest expense", Value: cli.FormatMoney(ins.LargestExpense)},
		{Label: "Smallest expense", Value: cli.FormatMoney(ins.SmallestExpense)},
		{Label: "Top category", Value: top, Note: fmt.Sprintf("%d transactions", ins.TotalTransactions)},
	}, cw))
	b.WriteString("\n")

	var body string
	if len(ins.Recommendations) == 0 {
		body = lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).
			Render("Your finances look healthy. Keep it up!")
	} else {
		warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		lines := make([]string, len(ins.Recommendations))
		for i, r := range ins.Recommendations {
			lines[i] = warn.Render("• " + r)
		}
		body = strings.Join(lines, "\n")
	}
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Recommendations · last %d days", ins.PeriodDays), body, cw))

	return b.String()
}
