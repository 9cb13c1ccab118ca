package ledger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/theirongolddev/fintrack/internal/model"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func quietLogger() logrus.FieldLogger {
	l, _ := logtest.NewNullLogger()
	return l
}

func ledgerPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), DefaultFile)
}

func writeLedger(t *testing.T, body string) string {
	t.Helper()
	path := ledgerPath(t)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"), quietLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	if len(s.Budgets()) != 0 {
		t.Errorf("Budgets = %v, want empty", s.Budgets())
	}
	if s.LoadWarning() != nil {
		t.Errorf("LoadWarning = %v, want nil", s.LoadWarning())
	}
}

func TestAddTransaction_RoundTrip(t *testing.T) {
	path := ledgerPath(t)
	s := New(path, quietLogger())

	expense, err := s.AddTransaction(decimal.RequireFromString("50.00"), "Food", "lunch", model.Expense)
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	income, err := s.AddTransaction(decimal.RequireFromString("1000.25"), "Salary", "june", model.Income)
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	loaded, err := Load(path, quietLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []model.Transaction{expense, income}
	if diff := cmp.Diff(want, loaded.Transactions(), decimalEqual); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if loaded.Transactions()[0].Category != "food" {
		t.Errorf("Category = %q, want food", loaded.Transactions()[0].Category)
	}
}

func TestAddTransaction_StoresAbsoluteAmount(t *testing.T) {
	s := New(ledgerPath(t), quietLogger())

	neg, err := s.AddTransaction(decimal.NewFromInt(-50), "food", "x", model.Expense)
	if err != nil {
		t.Fatal(err)
	}
	pos, err := s.AddTransaction(decimal.NewFromInt(50), "food", "x", model.Expense)
	if err != nil {
		t.Fatal(err)
	}

	neg.ID, pos.ID = "", ""
	if diff := cmp.Diff(pos, neg, decimalEqual); diff != "" {
		t.Errorf("records differ (-pos +neg):\n%s", diff)
	}
}

func TestAddTransaction_IDsStrictlyIncrease(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	s := New(ledgerPath(t), quietLogger(), WithClock(fixedClock(ts)))

	var last decimal.Decimal
	for i := 0; i < 5; i++ {
		tx, err := s.AddTransaction(decimal.NewFromInt(1), "a", "", model.Expense)
		if err != nil {
			t.Fatal(err)
		}
		if !tx.ID.Value().GreaterThan(last) {
			t.Fatalf("ID %s not greater than previous %s", tx.ID, last)
		}
		last = tx.ID.Value()
	}
	if got := s.Transactions()[0].Date; got != "2025-06-01" {
		t.Errorf("Date = %q, want 2025-06-01", got)
	}
}

func TestAddTransaction_IDsContinueAfterLoad(t *testing.T) {
	path := writeLedger(t, `{"transactions":[{"id":9000000000000000000,"amount":1,"category":"a","description":"","type":"income","date":"2025-01-01"}],"budgets":{}}`)
	s, err := Load(path, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	tx, err := s.AddTransaction(decimal.NewFromInt(1), "a", "", model.Income)
	if err != nil {
		t.Fatal(err)
	}
	if tx.ID != "9000000000000000001" {
		t.Errorf("ID = %s, want 9000000000000000001", tx.ID)
	}
}

func TestAddTransaction_RejectsInvalidKind(t *testing.T) {
	path := ledgerPath(t)
	s := New(path, quietLogger())

	_, err := s.AddTransaction(decimal.NewFromInt(5), "food", "", model.Kind("expnse"))
	if !errors.Is(err, model.ErrInvalidKind) {
		t.Fatalf("err = %v, want ErrInvalidKind", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ledger file written for rejected transaction (stat err = %v)", err)
	}
}

func TestSetBudget_NormalizesAndPersists(t *testing.T) {
	path := ledgerPath(t)
	s := New(path, quietLogger())

	if err := s.SetBudget("Food", decimal.NewFromInt(100)); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBudget("FOOD", decimal.NewFromInt(120)); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBudget("rent", decimal.NewFromInt(-5)); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]decimal.Decimal{
		"food": decimal.NewFromInt(120),
		"rent": decimal.NewFromInt(-5),
	}
	if diff := cmp.Diff(want, loaded.Budgets(), decimalEqual); diff != "" {
		t.Errorf("budgets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"food", "rent"}, loaded.BudgetCategories()); diff != "" {
		t.Errorf("BudgetCategories mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingAmountRecovers(t *testing.T) {
	path := writeLedger(t, `{
  "transactions": [
    {"id": 1, "category": "food", "description": "x", "type": "expense", "date": "2025-06-01"}
  ],
  "budgets": {"food": 100}
}`)

	logger, hook := logtest.NewNullLogger()
	s, err := Load(path, logger)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.Len() != 0 || len(s.Budgets()) != 0 {
		t.Errorf("store not empty: %d transactions, %d budgets", s.Len(), len(s.Budgets()))
	}

	var mf *MissingFieldError
	if !errors.As(s.LoadWarning(), &mf) {
		t.Fatalf("LoadWarning = %v, want MissingFieldError", s.LoadWarning())
	}
	if mf.Field != "amount" || mf.Index != 0 {
		t.Errorf("MissingFieldError = %+v, want field amount at index 0", mf)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning log entry, got %+v", entry)
	}
}

func TestLoad_MalformedJSONRecovers(t *testing.T) {
	for name, body := range map[string]string{
		"truncated":   `{"transactions": [`,
		"wrong shape": `{"transactions": {"id": 1}}`,
		"bad type":    `{"transactions":[{"id":1,"amount":1,"category":"a","description":"","type":"gift","date":"2025-01-01"}]}`,
		"string id":   `{"transactions":[{"id":"x","amount":1,"category":"a","description":"","type":"income","date":"2025-01-01"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			s, err := Load(writeLedger(t, body), quietLogger())
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if s.Len() != 0 {
				t.Errorf("Len = %d, want 0", s.Len())
			}
			if s.LoadWarning() == nil {
				t.Error("LoadWarning = nil, want cause")
			}
		})
	}
}

func TestLoad_NormalizesLegacyCasing(t *testing.T) {
	path := writeLedger(t, `{"transactions":[{"id":3,"amount":-12.5,"category":"Food","description":"d","type":"EXPENSE","date":"2025-01-01"}],"budgets":{"Food":40}}`)
	s, err := Load(path, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	got := s.Transactions()[0]
	if got.Category != "food" || got.Kind != model.Expense || !got.Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("transaction = %+v, want normalized food/expense/12.5", got)
	}
	if _, ok := s.Budgets()["food"]; !ok {
		t.Errorf("Budgets = %v, want lowercase key food", s.Budgets())
	}
}

func TestSave_WritesBareNumbers(t *testing.T) {
	path := ledgerPath(t)
	s := New(path, quietLogger(), WithClock(fixedClock(time.Unix(1700000000, 0))))
	if _, err := s.AddTransaction(decimal.RequireFromString("40.50"), "food", "groceries", model.Expense); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBudget("food", decimal.NewFromInt(100)); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw struct {
		Transactions []map[string]any `json:"transactions"`
		Budgets      map[string]any   `json:"budgets"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("written file is not JSON: %v", err)
	}
	tx := raw.Transactions[0]
	if _, ok := tx["amount"].(float64); !ok {
		t.Errorf("amount encoded as %T, want number", tx["amount"])
	}
	if _, ok := tx["id"].(float64); !ok {
		t.Errorf("id encoded as %T, want number", tx["id"])
	}
	if tx["type"] != "expense" || tx["date"] != time.Unix(1700000000, 0).Format(model.DateLayout) {
		t.Errorf("unexpected record: %v", tx)
	}
	if raw.Budgets["food"] != float64(100) {
		t.Errorf("budgets = %v, want food: 100", raw.Budgets)
	}
	if !strings.Contains(string(data), "\n  \"transactions\"") {
		t.Error("expected two-space indented output")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the ledger (temp file left behind?)", len(entries))
	}
}

func TestSave_UnwritableDestination(t *testing.T) {
	// A regular file where the parent directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	s := New(filepath.Join(blocker, DefaultFile), quietLogger())
	_, err := s.AddTransaction(decimal.NewFromInt(10), "food", "", model.Expense)

	var ioErr *IOFailure
	if !errors.As(err, &ioErr) {
		t.Fatalf("err = %v, want IOFailure", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want in-memory transaction kept after failed save", s.Len())
	}
}

func TestLoad_DirectoryIsIOFailure(t *testing.T) {
	_, err := Load(t.TempDir(), quietLogger())
	var ioErr *IOFailure
	if !errors.As(err, &ioErr) {
		t.Fatalf("err = %v, want IOFailure", err)
	}
}

func TestLoad_FractionalIDsSurviveSave(t *testing.T) {
	path := writeLedger(t, `{"transactions":[{"id":1718901234.567891,"amount":50.0,"category":"food","description":"lunch","type":"expense","date":"2025-06-20"}],"budgets":{"food":100.0}}`)

	ts := time.Date(2025, 6, 21, 9, 0, 0, 0, time.Local)
	s, err := Load(path, quietLogger(), WithClock(fixedClock(ts)))
	if err != nil {
		t.Fatal(err)
	}
	if s.LoadWarning() != nil {
		t.Fatalf("LoadWarning = %v, want nil", s.LoadWarning())
	}
	if s.Len() != 1 || len(s.Budgets()) != 1 {
		t.Fatalf("loaded %d transactions and %d budgets, want 1 and 1", s.Len(), len(s.Budgets()))
	}
	if got := s.Transactions()[0].ID; got != "1718901234.567891" {
		t.Errorf("ID = %s, want 1718901234.567891", got)
	}

	tx, err := s.AddTransaction(decimal.NewFromInt(5), "food", "", model.Expense)
	if err != nil {
		t.Fatal(err)
	}
	if !tx.ID.Value().GreaterThan(decimal.RequireFromString("1718901234.567891")) {
		t.Errorf("new ID %s not greater than the loaded one", tx.ID)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"id": 1718901234.567891,`) {
		t.Errorf("original id not written back verbatim:\n%s", data)
	}
	if !strings.Contains(string(data), `"food": 100`) {
		t.Errorf("budget lost on save:\n%s", data)
	}
}

func TestLoad_IDsContinueAfterFractionalMax(t *testing.T) {
	path := writeLedger(t, `{"transactions":[{"id":9000000000000000000.5,"amount":1,"category":"a","description":"","type":"income","date":"2025-01-01"}],"budgets":{}}`)
	s, err := Load(path, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	tx, err := s.AddTransaction(decimal.NewFromInt(1), "a", "", model.Income)
	if err != nil {
		t.Fatal(err)
	}
	if tx.ID != "9000000000000000001" {
		t.Errorf("ID = %s, want 9000000000000000001", tx.ID)
	}
}

func TestLoad_BudgetCaseCollisionPrefersLowercaseKey(t *testing.T) {
	body := `{"transactions":[],"budgets":{"Food":10,"food":100,"FOOD":5,"Rent":900}}`
	for i := 0; i < 20; i++ {
		s, err := Load(writeLedger(t, body), quietLogger())
		if err != nil {
			t.Fatal(err)
		}
		want := map[string]decimal.Decimal{
			"food": decimal.NewFromInt(100),
			"rent": decimal.NewFromInt(900),
		}
		if diff := cmp.Diff(want, s.Budgets(), decimalEqual); diff != "" {
			t.Fatalf("budgets mismatch on load %d (-want +got):\n%s", i, diff)
		}
	}
}
