package model

import "github.com/shopspring/decimal"

// BudgetStatus holds budget utilization for one category over the trailing window.
type BudgetStatus struct {
	Category   string
	Budget     decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Percentage float64 // 0 when Budget <= 0
}

// BudgetLevel classifies a budget percentage for display.
type BudgetLevel int

const (
	OnTrack BudgetLevel = iota
	Warning
	OverBudget
)

// Level returns the display classification of the status.
func (b BudgetStatus) Level() BudgetLevel {
	switch {
	case b.Percentage > 100:
		return OverBudget
	case b.Percentage > 75:
		return Warning
	default:
		return OnTrack
	}
}

func (l BudgetLevel) String() string {
	switch l {
	case OverBudget:
		return "OVER BUDGET"
	case Warning:
		return "WARNING"
	default:
		return "ON TRACK"
	}
}
