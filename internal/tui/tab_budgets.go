package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/report"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

func (a App) renderBudgetsTab(cw int) string {
	t := theme.Active
	title := fmt.Sprintf("Budgets · last %d days", report.DefaultDays)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(a.budgets) == 0 {
		return components.ContentCard(title,
			muted.Render("No budgets set. Use `fintrack budget set <category> <amount>`."), cw)
	}

	var over, warn int
	for _, bs := range a.budgets {
		switch bs.Level() {
		case model.OverBudget:
			over++
		case model.Warning:
			warn++
		}
	}

	innerW := components.CardInnerWidth(cw)
	const labelW = 16
	barW := max(innerW-labelW-36, 10)

	var b strings.Builder
	for i, bs := range a.budgets {
		if i > 0 {
			b.WriteString("\n")
		}
		detail := fmt.Sprintf("%s of %s", cli.FormatMoney(bs.Spent), cli.FormatMoney(bs.Budget))
		if !bs.Budget.IsPositive() {
			detail = "no limit"
		}
		b.WriteString(components.BudgetBar(cli.Capitalize(bs.Category), bs.Percentage, detail, labelW, barW))
	}

	summary := fmt.Sprintf("%d budgets · %d over · %d warning", len(a.budgets), over, warn)
	summaryStyle := muted
	if over > 0 {
		summaryStyle = lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	}
	b.WriteString("\n\n")
	b.WriteString(summaryStyle.Render(summary))

	return components.ContentCard(title, b.String(), cw)
}
