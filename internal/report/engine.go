// Package report computes read-only views, aggregates and insights over a ledger.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

const (
	// DefaultDays is the reporting window used when none is given, and the
	// fixed window for budget checks.
	DefaultDays = 30
	// RecentDays is the default window for the recent transactions view.
	RecentDays = 7
)

// Source is the read side of a ledger.
type Source interface {
	Transactions() []model.Transaction
	Budgets() map[string]decimal.Decimal
	BudgetCategories() []string
}

// DateParseError reports a transaction whose date is not a YYYY-MM-DD calendar date.
type DateParseError struct {
	ID    model.TxID
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("transaction %s: invalid date %q: %v", e.ID, e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// Engine answers reporting queries against the current state of a Source.
type Engine struct {
	src Source
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used to compute period cutoffs.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New returns an Engine reading from src.
func New(src Source, opts ...Option) *Engine {
	e := &Engine{src: src, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TransactionsInPeriod returns transactions dated on or after now minus days,
// in insertion order. Any unparseable date fails the whole call.
func (e *Engine) TransactionsInPeriod(days int) ([]model.Transaction, error) {
	now := e.now()
	cutoff := now.AddDate(0, 0, -days)

	var result []model.Transaction
	for _, t := range e.src.Transactions() {
		d, err := parseDate(t, now.Location())
		if err != nil {
			return nil, err
		}
		if d.Before(cutoff) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

// SpendingByCategory sums expenses per category over the period, largest first.
// Equal totals keep the order in which their categories first appeared.
func (e *Engine) SpendingByCategory(days int) ([]model.CategoryTotal, error) {
	txs, err := e.TransactionsInPeriod(days)
	if err != nil {
		return nil, err
	}
	return spendingByCategory(txs), nil
}

func spendingByCategory(txs []model.Transaction) []model.CategoryTotal {
	idx := make(map[string]int)
	var totals []model.CategoryTotal

	for _, t := range txs {
		if !t.IsExpense() {
			continue
		}
		i, ok := idx[t.Category]
		if !ok {
			i = len(totals)
			idx[t.Category] = i
			totals = append(totals, model.CategoryTotal{Category: t.Category})
		}
		totals[i].Total = totals[i].Total.Add(t.Amount)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return totals
}

// IncomeVsExpenses totals income and expenses over the period.
func (e *Engine) IncomeVsExpenses(days int) (model.CashFlow, error) {
	txs, err := e.TransactionsInPeriod(days)
	if err != nil {
		return model.CashFlow{}, err
	}
	return cashFlow(txs), nil
}

func cashFlow(txs []model.Transaction) model.CashFlow {
	var cf model.CashFlow
	for _, t := range txs {
		switch t.Kind {
		case model.Income:
			cf.Income = cf.Income.Add(t.Amount)
		case model.Expense:
			cf.Expenses = cf.Expenses.Add(t.Amount)
		}
	}
	cf.Net = cf.Income.Sub(cf.Expenses)
	return cf
}

// BudgetStatus reports utilization for every budgeted category over the
// trailing DefaultDays window, keyed by category.
func (e *Engine) BudgetStatus() (map[string]model.BudgetStatus, error) {
	list, err := e.BudgetStatusList()
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.BudgetStatus, len(list))
	for _, bs := range list {
		out[bs.Category] = bs
	}
	return out, nil
}

// BudgetStatusList is BudgetStatus ordered by category name.
// The window is always DefaultDays regardless of any report period.
func (e *Engine) BudgetStatusList() ([]model.BudgetStatus, error) {
	spending, err := e.SpendingByCategory(DefaultDays)
	if err != nil {
		return nil, err
	}
	spent := make(map[string]decimal.Decimal, len(spending))
	for _, ct := range spending {
		spent[ct.Category] = ct.Total
	}

	budgets := e.src.Budgets()
	cats := e.src.BudgetCategories()
	list := make([]model.BudgetStatus, 0, len(cats))
	for _, cat := range cats {
		limit := budgets[cat]
		s := spent[cat]
		bs := model.BudgetStatus{
			Category:  cat,
			Budget:    limit,
			Spent:     s,
			Remaining: limit.Sub(s),
		}
		if limit.IsPositive() {
			bs.Percentage = s.Div(limit).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		list = append(list, bs)
	}
	return list, nil
}

// Recent returns the period's transactions newest date first.
// Transactions sharing a date keep insertion order.
func (e *Engine) Recent(days int) ([]model.Transaction, error) {
	txs, err := e.TransactionsInPeriod(days)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date > txs[j].Date
	})
	return txs, nil
}

// DailyTotals returns per-day income and expense sums for every day in the
// period, most recent first. Days without transactions are zero.
func (e *Engine) DailyTotals(days int) ([]model.DailyTotal, error) {
	txs, err := e.TransactionsInPeriod(days)
	if err != nil {
		return nil, err
	}

	now := e.now()
	loc := now.Location()
	dayMap := make(map[string]*model.DailyTotal)
	for _, t := range txs {
		dt, ok := dayMap[t.Date]
		if !ok {
			d, _ := time.ParseInLocation(model.DateLayout, t.Date, loc)
			dt = &model.DailyTotal{Date: d}
			dayMap[t.Date] = dt
		}
		switch t.Kind {
		case model.Income:
			dt.Income = dt.Income.Add(t.Amount)
		case model.Expense:
			dt.Expenses = dt.Expenses.Add(t.Amount)
		}
	}

	// Fill every day in the range so charts show gaps as zeros
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	for day := today.AddDate(0, 0, -days+1); !day.After(today); day = day.AddDate(0, 0, 1) {
		key := day.Format(model.DateLayout)
		if _, ok := dayMap[key]; !ok {
			dayMap[key] = &model.DailyTotal{Date: day}
		}
	}

	result := make([]model.DailyTotal, 0, len(dayMap))
	for _, dt := range dayMap {
		result = append(result, *dt)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

func parseDate(t model.Transaction, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(model.DateLayout, t.Date, loc)
	if err != nil {
		return time.Time{}, &DateParseError{ID: t.ID, Value: t.Date, Err: err}
	}
	return d, nil
}
