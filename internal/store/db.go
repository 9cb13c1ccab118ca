// Package store writes ledger snapshots to a SQLite database and reads them back.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DB is an open snapshot database.
type DB struct {
	db *sql.DB
}

// Open opens or creates the snapshot database at dbPath and migrates it.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening export db: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Snapshot describes what a snapshot database holds.
type Snapshot struct {
	ExportedAt   time.Time // zero when nothing was exported yet
	Transactions int
	Budgets      int
}

// Export writes a full snapshot of the ledger to dbPath, replacing any
// snapshot already there. It returns a description of the replaced snapshot.
func Export(ctx context.Context, dbPath string, txs []model.Transaction, budgets map[string]decimal.Decimal) (Snapshot, error) {
	d, err := Open(dbPath)
	if err != nil {
		return Snapshot{}, err
	}
	prev, err := d.Describe(ctx)
	if err != nil {
		_ = d.Close()
		return Snapshot{}, fmt.Errorf("reading previous snapshot: %w", err)
	}
	if err := d.Replace(ctx, txs, budgets, time.Now()); err != nil {
		_ = d.Close()
		return Snapshot{}, err
	}
	return prev, d.Close()
}

// Describe summarizes the snapshot currently stored.
func (d *DB) Describe(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	var err error
	if s.ExportedAt, err = d.ExportedAt(ctx); err != nil {
		return Snapshot{}, err
	}
	if s.Transactions, err = d.TransactionCount(ctx); err != nil {
		return Snapshot{}, err
	}
	budgets, err := d.LoadBudgets(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	s.Budgets = len(budgets)
	return s, nil
}

// Replace swaps the stored transactions and budgets for the given ones in a
// single SQL transaction. Transactions keep their slice order.
func (d *DB) Replace(ctx context.Context, txs []model.Transaction, budgets map[string]decimal.Decimal, at time.Time) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{"DELETE FROM transactions", "DELETE FROM budgets"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	insTx, err := tx.PrepareContext(ctx, `INSERT INTO transactions
		(seq, id, amount, category, description, type, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = insTx.Close() }()

	for i, t := range txs {
		if _, err := insTx.ExecContext(ctx,
			i+1, t.ID.String(), t.Amount.String(), t.Category, t.Description, string(t.Kind), t.Date,
		); err != nil {
			return fmt.Errorf("inserting transaction %s: %w", t.ID, err)
		}
	}

	cats := make([]string, 0, len(budgets))
	for c := range budgets {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO budgets (category, amount) VALUES (?, ?)", c, budgets[c].String(),
		); err != nil {
			return fmt.Errorf("inserting budget %q: %w", c, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO export_meta (key, value) VALUES ('exported_at', ?)",
		at.UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadBudgets reads the stored category budgets.
func (d *DB) LoadBudgets(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT category, amount FROM budgets")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	budgets := make(map[string]decimal.Decimal)
	for rows.Next() {
		var cat, amount string
		if err := rows.Scan(&cat, &amount); err != nil {
			return nil, err
		}
		v, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("budget %q amount: %w", cat, err)
		}
		budgets[cat] = v
	}
	return budgets, rows.Err()
}

// ExportedAt returns when the snapshot was last written, or the zero time.
func (d *DB) ExportedAt(ctx context.Context) (time.Time, error) {
	var s string
	err := d.db.QueryRowContext(ctx, "SELECT value FROM export_meta WHERE key = 'exported_at'").Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, s)
}

// TransactionCount returns the number of stored transactions.
func (d *DB) TransactionCount(ctx context.Context) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&n)
	return n, err
}
