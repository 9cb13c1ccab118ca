package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

func (a App) renderSpendingTab(cw int) string {
	t := theme.Active
	title := fmt.Sprintf("Spending by Category · last %d days", a.days)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(a.spending) == 0 {
		return components.ContentCard(title, muted.Render("No expenses in this window."), cw)
	}

	var total decimal.Decimal
	for _, ct := range a.spending {
		total = total.Add(ct.Total)
	}

	innerW := components.CardInnerWidth(cw)
	const nameW, amountW, shareW = 16, 14, 7
	barW := max(innerW-nameW-amountW-shareW-3, 10)

	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)
	top := a.spending[0].Total

	var b strings.Builder
	for i, ct := range a.spending {
		if i > 0 {
			b.WriteString("\n")
		}
		frac := 0.0
		if top.IsPositive() {
			frac = ct.Total.Div(top).InexactFloat64()
		}
		b.WriteString(text.Render(fmt.Sprintf("%-*s", nameW, truncStr(cli.Capitalize(ct.Category), nameW))))
		b.WriteString(space.Render(" "))
		b.WriteString(components.ShareBar(frac, barW, t.Blue))
		b.WriteString(text.Render(fmt.Sprintf(" %*s", amountW, cli.FormatMoney(ct.Total))))
		b.WriteString(muted.Render(fmt.Sprintf(" %*s", shareW, cli.FormatShare(ct.Total, total))))
	}
	b.WriteString("\n\n")
	b.WriteString(muted.Render(fmt.Sprintf("%d categories · total ", len(a.spending))))
	b.WriteString(text.Bold(true).Render(cli.FormatMoney(total)))

	return components.ContentCard(title, b.String(), cw)
}
