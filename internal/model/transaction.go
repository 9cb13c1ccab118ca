// Package model defines domain types for fintrack transactions and reports.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for transaction dates.
const DateLayout = "2006-01-02"

// Kind is the direction of a transaction.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// ErrInvalidKind is returned for a transaction type other than income or expense.
var ErrInvalidKind = errors.New("invalid transaction type")

// ParseKind normalizes s and returns the matching Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Income, Expense:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q (want income or expense)", ErrInvalidKind, s)
	}
}

func (k Kind) String() string { return string(k) }

// Sign returns "+" for income and "-" for expenses.
func (k Kind) Sign() string {
	if k == Income {
		return "+"
	}
	return "-"
}

// TxID identifies a transaction. It keeps the number exactly as it appears in
// the ledger file, so fractional timestamp ids survive a load and save.
type TxID string

// NewTxID returns the TxID for an integer id.
func NewTxID(n int64) TxID { return TxID(strconv.FormatInt(n, 10)) }

// ParseTxID checks that s is a number and returns it unchanged as a TxID.
func ParseTxID(s string) (TxID, error) {
	if _, err := decimal.NewFromString(s); err != nil {
		return "", fmt.Errorf("invalid id %q: %w", s, err)
	}
	return TxID(s), nil
}

func (id TxID) String() string { return string(id) }

// Value returns the numeric value of id, or zero when id is not a number.
func (id TxID) Value() decimal.Decimal {
	d, err := decimal.NewFromString(string(id))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Transaction is one recorded monetary movement. It is never mutated after creation.
type Transaction struct {
	ID          TxID
	Amount      decimal.Decimal // always >= 0, Kind carries the direction
	Category    string          // lowercased
	Description string
	Kind        Kind
	Date        string // YYYY-MM-DD, parsed lazily by the reporting engine
}

// NewTransaction builds a transaction with a normalized amount and category.
// An empty date defaults to now's calendar date. The ID is left for the store to assign.
func NewTransaction(amount decimal.Decimal, category, description string, kind Kind, date string, now time.Time) Transaction {
	if date == "" {
		date = now.Format(DateLayout)
	}
	return Transaction{
		Amount:      amount.Abs(),
		Category:    NormalizeCategory(category),
		Description: description,
		Kind:        kind,
		Date:        date,
	}
}

// NormalizeCategory returns the canonical (lowercased) form of a category label.
func NormalizeCategory(category string) string {
	return strings.ToLower(category)
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool { return t.Kind == Expense }
