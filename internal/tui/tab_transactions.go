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

// card border, padding, title and column header
const txListOverhead = 4

func (a App) renderTransactionsTab(cw, h int) string {
	t := theme.Active
	title := fmt.Sprintf("Transactions · last %d days · newest first", a.days)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(a.recent) == 0 {
		return components.ContentCard(title, muted.Render("No transactions in this window."), cw)
	}

	innerW := components.CardInnerWidth(cw)
	const dateW, amountW, catW = 10, 14, 16
	descW := max(innerW-dateW-amountW-catW-3, 8)

	visible := max(h-txListOverhead, 1)
	offset := 0
	if a.cursor >= visible {
		offset = a.cursor - visible + 1
	}
	end := min(offset+visible, len(a.recent))

	header := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selected := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover)

	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("%-*s %*s %-*s %-*s",
		dateW, "Date", amountW, "Amount", catW, "Category", descW, "Description")))

	for i := offset; i < end; i++ {
		tx := a.recent[i]
		style := row
		if i == a.cursor {
			style = selected
		}
		amtStyle := style.Foreground(t.Money(tx.Kind == model.Income))

		b.WriteString("\n")
		b.WriteString(style.Render(fmt.Sprintf("%-*s ", dateW, tx.Date)))
		b.WriteString(amtStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatSignedMoney(tx.Amount, tx.Kind))))
		b.WriteString(style.Render(fmt.Sprintf(" %-*s %-*s",
			catW, truncStr(cli.Capitalize(tx.Category), catW),
			descW, truncStr(tx.Description, descW))))
	}

	if len(a.recent) > visible {
		b.WriteString("\n")
		b.WriteString(muted.Render(fmt.Sprintf("%d of %d", a.cursor+1, len(a.recent))))
	}

	return components.ContentCard(title, b.String(), cw)
}
