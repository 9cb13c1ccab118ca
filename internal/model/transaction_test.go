package model

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"income", Income, true},
		{"Expense", Expense, true},
		{" INCOME ", Income, true},
		{"expenses", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Errorf("ParseKind(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidKind) {
			t.Errorf("ParseKind(%q) err = %v, want ErrInvalidKind", tc.in, err)
		}
	}
}

func TestNewTransaction_NormalizesAmountAndCategory(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 30, 0, 0, time.Local)

	neg := NewTransaction(decimal.NewFromInt(-50), "Food", "lunch", Expense, "", now)
	pos := NewTransaction(decimal.NewFromInt(50), "food", "lunch", Expense, "", now)

	if !neg.Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Amount = %s, want 50", neg.Amount)
	}
	if neg.Category != "food" {
		t.Errorf("Category = %q, want food", neg.Category)
	}
	if neg.Date != "2025-06-15" {
		t.Errorf("Date = %q, want 2025-06-15", neg.Date)
	}
	neg.ID, pos.ID = "", ""
	if !neg.Amount.Equal(pos.Amount) || neg.Category != pos.Category || neg.Date != pos.Date {
		t.Errorf("negative and positive inputs differ: %+v vs %+v", neg, pos)
	}
}

func TestNewTransaction_KeepsExplicitDate(t *testing.T) {
	tx := NewTransaction(decimal.NewFromInt(1), "x", "", Income, "2024-01-02", time.Now())
	if tx.Date != "2024-01-02" {
		t.Errorf("Date = %q, want 2024-01-02", tx.Date)
	}
	if tx.Kind != Income || tx.IsExpense() {
		t.Error("kind predicates disagree with Income")
	}
	if tx.Kind.Sign() != "+" || Expense.Sign() != "-" {
		t.Error("unexpected kind signs")
	}
}

func TestBudgetStatusLevel(t *testing.T) {
	cases := []struct {
		pct  float64
		want BudgetLevel
	}{
		{0, OnTrack},
		{75, OnTrack},
		{75.1, Warning},
		{100, Warning},
		{110, OverBudget},
	}
	for _, tc := range cases {
		if got := (BudgetStatus{Percentage: tc.pct}).Level(); got != tc.want {
			t.Errorf("Level(%.1f) = %s, want %s", tc.pct, got, tc.want)
		}
	}
}

func TestTxID(t *testing.T) {
	if got := NewTxID(1718901234567891000); got != "1718901234567891000" {
		t.Errorf("NewTxID = %q", got)
	}

	id, err := ParseTxID("1718901234.567891")
	if err != nil {
		t.Fatalf("ParseTxID: %v", err)
	}
	if id.String() != "1718901234.567891" {
		t.Errorf("String = %q, want the id unchanged", id)
	}
	if !id.Value().Equal(decimal.RequireFromString("1718901234.567891")) {
		t.Errorf("Value = %s", id.Value())
	}

	if _, err := ParseTxID("abc"); err == nil {
		t.Error("ParseTxID(abc) succeeded, want error")
	}
	if !TxID("junk").Value().IsZero() {
		t.Error("Value of a non-number should be zero")
	}
}
