package report

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// fakeLedger is an in-memory Source.
type fakeLedger struct {
	txs     []model.Transaction
	budgets map[string]decimal.Decimal
}

func (f *fakeLedger) Transactions() []model.Transaction { return f.txs }

func (f *fakeLedger) Budgets() map[string]decimal.Decimal { return f.budgets }

func (f *fakeLedger) BudgetCategories() []string {
	cats := make([]string, 0, len(f.budgets))
	for c := range f.budgets {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

func (f *fakeLedger) add(kind model.Kind, amount float64, category, date string) {
	f.txs = append(f.txs, model.Transaction{
		ID:       model.NewTxID(int64(len(f.txs) + 1)),
		Amount:   decimal.NewFromFloat(amount),
		Category: category,
		Kind:     kind,
		Date:     date,
	})
}

func (f *fakeLedger) budget(category string, amount float64) {
	if f.budgets == nil {
		f.budgets = make(map[string]decimal.Decimal)
	}
	f.budgets[category] = decimal.NewFromFloat(amount)
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

const today = "2025-06-15"

func newEngine(f *fakeLedger) *Engine {
	return New(f, WithClock(func() time.Time { return testNow }))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTransactionsInPeriod_Cutoff(t *testing.T) {
	f := &fakeLedger{}
	f.add(model.Expense, 1, "a", today)
	f.add(model.Expense, 2, "a", "2025-05-17") // 29 days back
	f.add(model.Expense, 3, "a", "2025-05-16") // midnight is before now-30d at noon
	f.add(model.Expense, 4, "a", "2024-01-01")

	got, err := newEngine(f).TransactionsInPeriod(30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ids []model.TxID
	for _, tx := range got {
		ids = append(ids, tx.ID)
	}
	if diff := cmp.Diff([]model.TxID{"1", "2"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestTransactionsInPeriod_BadDateFails(t *testing.T) {
	f := &fakeLedger{}
	f.add(model.Expense, 1, "a", today)
	f.add(model.Expense, 1, "a", "15/06/2025")

	_, err := newEngine(f).TransactionsInPeriod(30)
	var dpe *DateParseError
	if !errors.As(err, &dpe) {
		t.Fatalf("err = %v, want DateParseError", err)
	}
	if dpe.ID != "2" || dpe.Value != "15/06/2025" {
		t.Errorf("DateParseError = %+v, want ID 2 value 15/06/2025", dpe)
	}

	// Every query built on the period filter propagates it.
	if _, err := newEngine(f).SpendingByCategory(30); !errors.As(err, &dpe) {
		t.Errorf("SpendingByCategory err = %v, want DateParseError", err)
	}
	if _, err := newEngine(f).BudgetStatus(); !errors.As(err, &dpe) {
		t.Errorf("BudgetStatus err = %v, want DateParseError", err)
	}
	if _, err := newEngine(f).FinancialInsights(7); !errors.As(err, &dpe) {
		t.Errorf("FinancialInsights err = %v, want DateParseError", err)
	}
}

func TestSpendingByCategory(t *testing.T) {
	f := &fakeLedger{}
	f.add(model.Expense, 10, "food", today)
	f.add(model.Income, 500, "salary", today)
	f.add(model.Expense, 30, "rent", today)
	f.add(model.Expense, 15, "food", today)
	f.add(model.Expense, 25, "fun", today)

	got, err := newEngine(f).SpendingByCategory(30)
	if err != nil {
		t.Fatal(err)
	}
	want := []model.CategoryTotal{
		{Category: "rent", Total: dec("30")},
		{Category: "food", Total: dec("25")},
		{Category: "fun", Total: dec("25")}, // tie keeps first-seen order
	}
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Errorf("spending mismatch (-want +got):\n%s", diff)
	}
}

func TestSpendingByCategory_OrderInvariant(t *testing.T) {
	a := &fakeLedger{}
	a.add(model.Expense, 10, "food", today)
	a.add(model.Expense, 40, "rent", today)
	a.add(model.Income, 99, "rent", today)
	a.add(model.Expense, 5, "food", today)

	b := &fakeLedger{txs: []model.Transaction{a.txs[3], a.txs[2], a.txs[1], a.txs[0]}}

	ga, err := newEngine(a).SpendingByCategory(30)
	if err != nil {
		t.Fatal(err)
	}
	gb, err := newEngine(b).SpendingByCategory(30)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ga, gb, decimalEqual); diff != "" {
		t.Errorf("permutation changed result (-a +b):\n%s", diff)
	}
}

func TestSpendingByCategory_Empty(t *testing.T) {
	got, err := newEngine(&fakeLedger{}).SpendingByCategory(30)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestIncomeVsExpenses(t *testing.T) {
	f := &fakeLedger{}
	f.add(model.Expense, 50, "food", today)
	f.add(model.Income, 1000, "salary", today)

	got, err := newEngine(f).IncomeVsExpenses(30)
	if err != nil {
		t.Fatal(err)
	}
	want := model.CashFlow{Income: dec("1000"), Expenses: dec("50"), Net: dec("950")}
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Errorf("cash flow mismatch (-want +got):\n%s", diff)
	}
}

func TestIncomeVsExpenses_Empty(t *testing.T) {
	got, err := newEngine(&fakeLedger{}).IncomeVsExpenses(30)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Income.IsZero() || !got.Expenses.IsZero() || !got.Net.IsZero() {
		t.Errorf("got %+v, want all zero", got)
	}
}

func TestBudgetStatus_OverBudget(t *testing.T) {
	f := &fakeLedger{}
	f.budget("food", 100)
	f.add(model.Expense, 40, "food", today)
	f.add(model.Expense, 70, "food", today)

	status, err := newEngine(f).BudgetStatus()
	if err != nil {
		t.Fatal(err)
	}
	want := model.BudgetStatus{
		Category:   "food",
		Budget:     dec("100"),
		Spent:      dec("110"),
		Remaining:  dec("-10"),
		Percentage: 110.0,
	}
	if diff := cmp.Diff(want, status["food"], decimalEqual); diff != "" {
		t.Errorf("status mismatch (-want +got):\n%s", diff)
	}
}

func TestBudgetStatus_ZeroAndNegativeBudget(t *testing.T) {
	f := &fakeLedger{}
	f.budget("food", 0)
	f.budget("fun", -20)
	f.add(model.Expense, 40, "food", today)
	f.add(model.Expense, 40, "fun", today)

	status, err := newEngine(f).BudgetStatus()
	if err != nil {
		t.Fatal(err)
	}
	for _, cat := range []string{"food", "fun"} {
		if status[cat].Percentage != 0 {
			t.Errorf("%s Percentage = %.1f, want 0", cat, status[cat].Percentage)
		}
	}
	if !status["fun"].Remaining.Equal(dec("-60")) {
		t.Errorf("fun Remaining = %s, want -60", status["fun"].Remaining)
	}
}

func TestBudgetStatus_OnlyBudgetedCategoriesAndFixedWindow(t *testing.T) {
	f := &fakeLedger{}
	f.budget("rent", 1000)
	f.add(model.Expense, 50, "food", today)
	f.add(model.Expense, 900, "rent", "2025-04-01") // outside 30 days

	list, err := newEngine(f).BudgetStatusList()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Category != "rent" {
		t.Fatalf("list = %+v, want only rent", list)
	}
	if !list[0].Spent.IsZero() {
		t.Errorf("rent Spent = %s, want 0", list[0].Spent)
	}
}

func TestFinancialInsights_NoData(t *testing.T) {
	f := &fakeLedger{}
	f.add(model.Expense, 10, "food", "2020-01-01")

	got, err := newEngine(f).FinancialInsights(30)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Empty() || got.Message != NoDataMessage {
		t.Errorf("got %+v, want no-data message", got)
	}
	if got.TotalTransactions != 0 || got.Recommendations != nil {
		t.Errorf("no-data insights carry extra fields: %+v", got)
	}
}

func TestFinancialInsights_BudgetAlert(t *testing.T) {
	f := &fakeLedger{}
	f.budget("food", 100)
	f.add(model.Expense, 40, "food", today)
	f.add(model.Expense, 70, "food", today)

	got, err := newEngine(f).FinancialInsights(30)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"You're spending more than you earn. Consider reducing expenses.",
		"You're spending 80%+ of your income. Try to save more.",
		"You've exceeded 90% of your food budget!",
	}
	if diff := cmp.Diff(want, got.Recommendations); diff != "" {
		t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
	}
	if got.TotalTransactions != 2 || got.PeriodDays != 30 || got.TopCategory != "food" {
		t.Errorf("summary = %+v", got)
	}
	if !got.AverageExpense.Equal(dec("55")) || !got.LargestExpense.Equal(dec("70")) || !got.SmallestExpense.Equal(dec("40")) {
		t.Errorf("expense stats avg=%s max=%s min=%s, want 55/70/40",
			got.AverageExpense, got.LargestExpense, got.SmallestExpense)
	}
}

func TestFinancialInsights_RuleOrderAndWarnings(t *testing.T) {
	f := &fakeLedger{}
	f.budget("zoo", 100)
	f.budget("books", 100)
	f.budget("cafe", 100)
	f.add(model.Income, 1000, "salary", today)
	f.add(model.Expense, 80, "zoo", today)   // 80% -> warning
	f.add(model.Expense, 95, "books", today) // 95% -> alert
	f.add(model.Expense, 10, "cafe", today)  // 10% -> nothing

	got, err := newEngine(f).FinancialInsights(30)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"You've exceeded 90% of your books budget!",
		"You're at 80.0% of your zoo budget.",
	}
	if diff := cmp.Diff(want, got.Recommendations); diff != "" {
		t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
	}
	if got.TopCategory != "books" {
		t.Errorf("TopCategory = %q, want books", got.TopCategory)
	}
}

func TestFinancialInsights_IncomeOnly(t *testing.T) {
	f := &fakeLedger{}
	f.add(model.Income, 100, "salary", today)

	got, err := newEngine(f).FinancialInsights(30)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Recommendations) != 0 {
		t.Errorf("Recommendations = %v, want none", got.Recommendations)
	}
	if !got.AverageExpense.IsZero() || got.TopCategory != "" {
		t.Errorf("expense stats should be zero: %+v", got)
	}
}

func TestFinancialInsights_BudgetWindowIgnoresDays(t *testing.T) {
	f := &fakeLedger{}
	f.budget("food", 100)
	f.add(model.Expense, 95, "food", "2025-06-01") // inside 30d, outside 7d
	f.add(model.Income, 1000, "salary", today)

	got, err := newEngine(f).FinancialInsights(7)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"You've exceeded 90% of your food budget!"}
	if diff := cmp.Diff(want, got.Recommendations); diff != "" {
		t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	f := &fakeLedger{}
	f.add(model.Expense, 1, "a", "2025-06-10")
	f.add(model.Expense, 2, "a", today)
	f.add(model.Expense, 3, "a", "2025-06-12")
	f.add(model.Expense, 4, "a", today)
	f.add(model.Expense, 5, "a", "2025-05-01")

	got, err := newEngine(f).Recent(RecentDays)
	if err != nil {
		t.Fatal(err)
	}
	var ids []model.TxID
	for _, tx := range got {
		ids = append(ids, tx.ID)
	}
	if diff := cmp.Diff([]model.TxID{"2", "4", "3", "1"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestDailyTotals_FillsGaps(t *testing.T) {
	f := &fakeLedger{}
	f.add(model.Expense, 10, "a", today)
	f.add(model.Income, 20, "b", today)
	f.add(model.Expense, 5, "a", "2025-06-13")

	got, err := newEngine(f).DailyTotals(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantDates := []string{"2025-06-15", "2025-06-14", "2025-06-13"}
	for i, d := range got {
		if d.Date.Format(model.DateLayout) != wantDates[i] {
			t.Errorf("day %d = %s, want %s", i, d.Date.Format(model.DateLayout), wantDates[i])
		}
	}
	if !got[0].Expenses.Equal(dec("10")) || !got[0].Income.Equal(dec("20")) {
		t.Errorf("today = %+v, want expenses 10 income 20", got[0])
	}
	if !got[1].Expenses.IsZero() || !got[2].Expenses.Equal(dec("5")) {
		t.Errorf("gap fill wrong: %+v", got)
	}
}
