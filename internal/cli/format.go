// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

// FormatMoney formats an amount as dollars with two decimals and thousands
// separators. e.g., 1234.5 -> "$1,234.50", -10 -> "-$10.00"
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatMoney(d.Neg())
	}
	s := d.StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return "$" + s
	}
	return "$" + FormatNumber(n) + "." + frac
}

// FormatSignedMoney prefixes the amount with the sign of its kind.
// e.g., 25 income -> "+$25.00", 25 expense -> "-$25.00"
func FormatSignedMoney(d decimal.Decimal, kind model.Kind) string {
	return kind.Sign() + FormatMoney(d.Abs())
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatShare formats part as a percentage of whole. A zero whole is 0%.
func FormatShare(part, whole decimal.Decimal) string {
	if !whole.IsPositive() {
		return FormatPercent(0)
	}
	return FormatPercent(part.Div(whole).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

// Capitalize upper-cases the first letter of a category name for display.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatDate renders a day as "Mon 06-02".
func FormatDate(t time.Time) string {
	return FormatDayOfWeek(int(t.Weekday())) + " " + t.Format("01-02")
}
