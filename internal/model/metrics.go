package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal holds the summed expense amount for one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// CashFlow holds income and expense totals for a period.
type CashFlow struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// Insights holds the derived report for a period.
// When Message is set the period had no transactions and every other field is zero.
type Insights struct {
	Message string

	PeriodDays        int
	TotalTransactions int
	AverageExpense    decimal.Decimal
	LargestExpense    decimal.Decimal
	SmallestExpense   decimal.Decimal
	TopCategory       string
	Recommendations   []string
}

// Empty reports whether the insights carry only the no-data message.
func (i Insights) Empty() bool {
	return i.Message != ""
}

// DailyTotal holds income and expense sums for one calendar day.
type DailyTotal struct {
	Date     time.Time
	Income   decimal.Decimal
	Expenses decimal.Decimal
}
