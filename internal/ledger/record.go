package ledger

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

// fileData is the on-disk document.
type fileData struct {
	Transactions []record              `json:"transactions"`
	Budgets      map[string]json.Number `json:"budgets"`
}

// record is the wire form of a transaction. Pointer fields tell a missing
// key apart from a zero value.
type record struct {
	ID          *json.Number `json:"id"`
	Amount      *json.Number `json:"amount"`
	Category    *string      `json:"category"`
	Description *string      `json:"description"`
	Type        *string      `json:"type"`
	Date        *string      `json:"date"`
}

func encodeRecord(t model.Transaction) record {
	id := json.Number(t.ID.String())
	amount := json.Number(t.Amount.String())
	kind := t.Kind.String()
	return record{
		ID:          &id,
		Amount:      &amount,
		Category:    &t.Category,
		Description: &t.Description,
		Type:        &kind,
		Date:        &t.Date,
	}
}

func decodeRecord(idx int, r record) (model.Transaction, error) {
	switch {
	case r.ID == nil:
		return model.Transaction{}, &MissingFieldError{Index: idx, Field: "id"}
	case r.Amount == nil:
		return model.Transaction{}, &MissingFieldError{Index: idx, Field: "amount"}
	case r.Category == nil:
		return model.Transaction{}, &MissingFieldError{Index: idx, Field: "category"}
	case r.Description == nil:
		return model.Transaction{}, &MissingFieldError{Index: idx, Field: "description"}
	case r.Type == nil:
		return model.Transaction{}, &MissingFieldError{Index: idx, Field: "type"}
	case r.Date == nil:
		return model.Transaction{}, &MissingFieldError{Index: idx, Field: "date"}
	}

	id, err := model.ParseTxID(r.ID.String())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %d: id: %w", idx, err)
	}
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %d: amount: %w", idx, err)
	}
	kind, err := model.ParseKind(*r.Type)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %d: %w", idx, err)
	}

	return model.Transaction{
		ID:          id,
		Amount:      amount.Abs(),
		Category:    model.NormalizeCategory(*r.Category),
		Description: *r.Description,
		Kind:        kind,
		Date:        *r.Date,
	}, nil
}

func encodeFile(txs []model.Transaction, budgets map[string]decimal.Decimal) fileData {
	fd := fileData{
		Transactions: make([]record, 0, len(txs)),
		Budgets:      make(map[string]json.Number, len(budgets)),
	}
	for _, t := range txs {
		fd.Transactions = append(fd.Transactions, encodeRecord(t))
	}
	for cat, limit := range budgets {
		fd.Budgets[cat] = json.Number(limit.String())
	}
	return fd
}

func decodeFile(data []byte) ([]model.Transaction, map[string]decimal.Decimal, error) {
	var fd fileData
	if err := json.Unmarshal(data, &fd); err != nil {
		return nil, nil, fmt.Errorf("parsing ledger: %w", err)
	}

	txs := make([]model.Transaction, 0, len(fd.Transactions))
	for i, r := range fd.Transactions {
		t, err := decodeRecord(i, r)
		if err != nil {
			return nil, nil, err
		}
		txs = append(txs, t)
	}

	// Keys that differ only in case collapse to one budget. They are applied in
	// byte order, so an already-lowercase key wins over its variants.
	keys := make([]string, 0, len(fd.Budgets))
	for cat := range fd.Budgets {
		keys = append(keys, cat)
	}
	sort.Strings(keys)

	budgets := make(map[string]decimal.Decimal, len(fd.Budgets))
	for _, cat := range keys {
		limit, err := decimal.NewFromString(fd.Budgets[cat].String())
		if err != nil {
			return nil, nil, fmt.Errorf("budget %q: %w", cat, err)
		}
		budgets[model.NormalizeCategory(cat)] = limit
	}

	return txs, budgets, nil
}
