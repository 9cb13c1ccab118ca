// Package ledger owns the transaction list and category budgets and keeps
// them persisted to a JSON file that is rewritten after every mutation.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/fintrack/internal/model"
)

// DefaultFile is the ledger file name used when no path is configured.
const DefaultFile = "finance_data.json"

// Store is the in-memory ledger bound to a file path.
// It is not safe for concurrent use.
type Store struct {
	path string
	log  logrus.FieldLogger
	now  func() time.Time

	transactions []model.Transaction
	budgets      map[string]decimal.Decimal
	lastID       decimal.Decimal
	loadWarning  error
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for default dates and IDs.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store bound to path. Nothing is read or written.
func New(path string, log logrus.FieldLogger, opts ...Option) *Store {
	if log == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		log = l
	}
	s := &Store{
		path:    path,
		log:     log,
		now:     time.Now,
		budgets: make(map[string]decimal.Decimal),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the ledger at path. A missing file yields an empty store.
// Malformed content is discarded with a warning and also yields an empty
// store; the cause is kept in LoadWarning. Only an unreadable file is an error.
func Load(path string, log logrus.FieldLogger, opts ...Option) (*Store, error) {
	s := New(path, log, opts...)

	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the local user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, &IOFailure{Op: "read", Path: path, Err: err}
	}

	txs, budgets, err := decodeFile(data)
	if err != nil {
		s.log.WithError(err).WithField("path", path).Warn("could not load existing data, starting fresh")
		s.loadWarning = err
		return s, nil
	}

	s.transactions = txs
	s.budgets = budgets
	for _, t := range txs {
		if v := t.ID.Value(); v.GreaterThan(s.lastID) {
			s.lastID = v
		}
	}
	return s, nil
}

// Path returns the file the store persists to.
func (s *Store) Path() string { return s.path }

// LoadWarning returns the reason persisted data was discarded at load, if any.
func (s *Store) LoadWarning() error { return s.loadWarning }

// Len returns the number of transactions.
func (s *Store) Len() int { return len(s.transactions) }

// Transactions returns a copy of the transactions in insertion order.
func (s *Store) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Budgets returns a copy of the category budget limits.
func (s *Store) Budgets() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(s.budgets))
	for k, v := range s.budgets {
		out[k] = v
	}
	return out
}

// BudgetCategories returns the budgeted categories in name order.
func (s *Store) BudgetCategories() []string {
	cats := make([]string, 0, len(s.budgets))
	for k := range s.budgets {
		cats = append(cats, k)
	}
	sort.Strings(cats)
	return cats
}

// AddTransaction records a transaction dated today and persists the ledger.
func (s *Store) AddTransaction(amount decimal.Decimal, category, description string, kind model.Kind) (model.Transaction, error) {
	return s.AddTransactionOn(amount, category, description, kind, "")
}

// AddTransactionOn records a transaction on the given YYYY-MM-DD date (today
// when empty) and persists the ledger. If the save fails the transaction stays
// in memory and the IOFailure is returned.
func (s *Store) AddTransactionOn(amount decimal.Decimal, category, description string, kind model.Kind, date string) (model.Transaction, error) {
	if _, err := model.ParseKind(string(kind)); err != nil {
		return model.Transaction{}, err
	}

	now := s.now()
	t := model.NewTransaction(amount, category, description, kind, date, now)
	t.ID = s.nextID(now)
	s.transactions = append(s.transactions, t)

	s.log.WithFields(logrus.Fields{
		"id":       t.ID.String(),
		"type":     t.Kind,
		"category": t.Category,
		"amount":   t.Amount.String(),
	}).Debug("transaction added")

	return t, s.Save()
}

// SetBudget sets the spending limit for a category and persists the ledger.
// The amount is not range checked.
func (s *Store) SetBudget(category string, amount decimal.Decimal) error {
	cat := model.NormalizeCategory(category)
	s.budgets[cat] = amount

	s.log.WithFields(logrus.Fields{
		"category": cat,
		"amount":   amount.String(),
	}).Debug("budget set")

	return s.Save()
}

// Save writes the full ledger to a temp file next to the target and renames
// it into place, so readers never see a partial file.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(encodeFile(s.transactions, s.budgets), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return &IOFailure{Op: "mkdir", Path: dir, Err: err}
	}

	f, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &IOFailure{Op: "write", Path: s.path, Err: err}
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return &IOFailure{Op: "write", Path: s.path, Err: err}
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return &IOFailure{Op: "sync", Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOFailure{Op: "write", Path: s.path, Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return &IOFailure{Op: "rename", Path: s.path, Err: err}
	}
	return nil
}

// nextID returns a creation-time ID that is numerically greater than any
// loaded or previously assigned one.
func (s *Store) nextID(now time.Time) model.TxID {
	id := decimal.NewFromInt(now.UnixNano())
	if id.LessThanOrEqual(s.lastID) {
		id = s.lastID.Floor().Add(decimal.NewFromInt(1))
	}
	s.lastID = id
	return model.TxID(id.String())
}
