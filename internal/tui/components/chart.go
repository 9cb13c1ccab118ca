package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a one-line unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := maxOf(values)

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-2))
		buf.WriteRune(blocks[min(max(idx, 0), len(blocks)-2)+1])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

// BarChart renders values as vertical bars, oldest on the left, with a money
// axis. labels, if given, must match values one to one and are printed under
// the first and last bar.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)

	ceiling := niceCeiling(maxOf(values))
	yLabelW := max(len(formatMoneyTick(ceiling)), 4)

	// Keep the most recent values when there are more than fit.
	chartW := max(width-yLabelW-1, 5)
	n := len(values)
	barW, gap := 1, 0
	if n*2-1 <= chartW {
		barW, gap = max(1, min((chartW+1)/n-1, 4)), 1
	}
	if fit := (chartW + gap) / (barW + gap); n > fit {
		values = values[n-fit:]
		if len(labels) == n {
			labels = labels[n-fit:]
		}
		n = fit
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		top := ceiling * float64(row) / float64(height)
		bottom := ceiling * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = formatMoneyTick(ceiling)
		} else if row == (height+1)/2 {
			label = formatMoneyTick(ceiling * float64(row) / float64(height))
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blankStyle.Render(strings.Repeat(" ", gap)))
			}
			var cell rune
			switch {
			case v >= top:
				cell = '█'
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * 8)
				cell = blocks[min(max(idx, 1), 8)]
			default:
				cell = ' '
			}
			b.WriteString(barStyle.Render(strings.Repeat(string(cell), barW)))
		}
		b.WriteString("\n")
	}

	axisLen := n*barW + max(n-1, 0)*gap
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n && n > 0 {
		first, last := labels[0], labels[n-1]
		pad := max(axisLen-len(first)-len(last), 1)
		b.WriteString("\n")
		b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW+1) + first + strings.Repeat(" ", pad) + last))
	}
	return b.String()
}

func maxOf(values []float64) float64 {
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		return 1
	}
	return peak
}

// niceCeiling rounds v up to 1, 2 or 5 times a power of ten.
func niceCeiling(v float64) float64 {
	if v <= 0 {
		return 1
	}
	base := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if v <= m*base {
			return m * base
		}
	}
	return 10 * base
}

func formatMoneyTick(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("$%.0fk", v/1e3)
		}
		return fmt.Sprintf("$%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("$%.0f", v)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}
