package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

// NoDataMessage is returned in Insights.Message for an empty period.
const NoDataMessage = "No transactions found for the specified period."

const (
	highSpendRatio = 0.8
	budgetAlertPct = 90
	budgetWarnPct  = 75
)

// FinancialInsights summarizes the period's expenses and derives recommendations.
//
// Recommendations are evaluated in a fixed order: overspending (net < 0), high
// spend ratio (expenses above 80% of income), then one entry per budget over
// 75% in category name order. Budget checks use the DefaultDays window, not days.
func (e *Engine) FinancialInsights(days int) (model.Insights, error) {
	txs, err := e.TransactionsInPeriod(days)
	if err != nil {
		return model.Insights{}, err
	}
	if len(txs) == 0 {
		return model.Insights{Message: NoDataMessage}, nil
	}

	ins := model.Insights{
		PeriodDays:        days,
		TotalTransactions: len(txs),
		Recommendations:   []string{},
	}

	var expenses []decimal.Decimal
	for _, t := range txs {
		if t.IsExpense() {
			expenses = append(expenses, t.Amount)
		}
	}
	if len(expenses) > 0 {
		ins.AverageExpense = decimal.Avg(expenses[0], expenses[1:]...)
		ins.LargestExpense = decimal.Max(expenses[0], expenses[1:]...)
		ins.SmallestExpense = decimal.Min(expenses[0], expenses[1:]...)
	}

	if spending := spendingByCategory(txs); len(spending) > 0 {
		ins.TopCategory = spending[0].Category
	}

	cf := cashFlow(txs)
	if cf.Net.IsNegative() {
		ins.Recommendations = append(ins.Recommendations,
			"You're spending more than you earn. Consider reducing expenses.")
	}
	if cf.Expenses.GreaterThan(cf.Income.Mul(decimal.NewFromFloat(highSpendRatio))) {
		ins.Recommendations = append(ins.Recommendations,
			"You're spending 80%+ of your income. Try to save more.")
	}

	budgets, err := e.BudgetStatusList()
	if err != nil {
		return model.Insights{}, err
	}
	for _, bs := range budgets {
		switch {
		case bs.Percentage > budgetAlertPct:
			ins.Recommendations = append(ins.Recommendations,
				fmt.Sprintf("You've exceeded 90%% of your %s budget!", bs.Category))
		case bs.Percentage > budgetWarnPct:
			ins.Recommendations = append(ins.Recommendations,
				fmt.Sprintf("You're at %.1f%% of your %s budget.", bs.Percentage, bs.Category))
		}
	}

	return ins, nil
}
