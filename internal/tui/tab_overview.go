package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	cf := a.cashFlow

	netNote := "income covers spending"
	if cf.Net.IsNegative() {
		netNote = "spending exceeds income"
	}
	spentNote := ""
	if cf.Income.IsPositive() {
		spentNote = cli.FormatShare(cf.Expenses, cf.Income) + " of income"
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Income", Value: cli.FormatMoney(cf.Income), Color: t.Green},
		{Label: "Expenses", Value: cli.FormatMoney(cf.Expenses), Note: spentNote, Color: t.Red},
		{Label: "Net", Value: cli.FormatMoney(cf.Net), Note: netNote, Color: t.Money(!cf.Net.IsNegative())},
		{Label: "Transactions", Value: cli.FormatNumber(int64(a.txCount)), Note: fmt.Sprintf("last %d days", a.days)},
	}, cw))
	b.WriteString("\n")

	// Daily spend, oldest on the left.
	values := make([]float64, len(a.daily))
	for i, d := range a.daily {
		values[len(a.daily)-1-i] = d.Expenses.InexactFloat64()
	}
	chart := components.BarChart(values, chartDateLabels(a.daily), t.Blue, components.CardInnerWidth(cw), 8)
	b.WriteString(components.ContentCard("Daily Spending", chart, cw))
	b.WriteString("\n")

	widths := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Top Categories", a.topCategories(components.CardInnerWidth(widths[0]), 5), widths[0]),
		components.ContentCard("Latest", a.latestTransactions(components.CardInnerWidth(widths[1]), 5), widths[1]),
	}))
	return b.String()
}

func (a App) topCategories(innerW, limit int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(a.spending) == 0 {
		return muted.Render("No expenses in this window.")
	}

	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	lines := make([]string, 0, limit)
	for _, ct := range a.spending[:min(limit, len(a.spending))] {
		amount := cli.FormatMoney(ct.Total)
		name := truncStr(cli.Capitalize(ct.Category), innerW-len(amount)-1)
		pad := max(innerW-lipgloss.Width(name)-len(amount), 1)
		lines = append(lines, text.Render(name+strings.Repeat(" ", pad)+amount))
	}
	return strings.Join(lines, "\n")
}

func (a App) latestTransactions(innerW, limit int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(a.recent) == 0 {
		return muted.Render("No transactions in this window.")
	}

	lines := make([]string, 0, limit)
	for _, tx := range a.recent[:min(limit, len(a.recent))] {
		amount := cli.FormatSignedMoney(tx.Amount, tx.Kind)
		amtStyle := lipgloss.NewStyle().Foreground(t.Money(tx.Kind == model.Income)).Background(t.Surface)
		label := truncStr(tx.Date[5:]+" "+cli.Capitalize(tx.Category), innerW-len(amount)-1)
		pad := max(innerW-lipgloss.Width(label)-len(amount), 1)
		lines = append(lines, muted.Render(label+strings.Repeat(" ", pad))+amtStyle.Render(amount))
	}
	return strings.Join(lines, "\n")
}
