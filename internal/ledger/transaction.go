// Package ledger defines the transaction data model and scenario settings
// shared by the derivation engine, the persistence layer, and the HTTP API.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtydash/realty-dashboard/pkg/constants"
)

// TransactionType classifies the direction of a cash movement. The amount is
// always a non-negative magnitude; the type alone carries the sign.
type TransactionType string

const (
	TypeIncome     TransactionType = "income"
	TypeExpense    TransactionType = "expense"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeSaving     TransactionType = "saving"
)

// ParseTransactionType maps a stored type string onto the closed type set.
// Unknown or empty values coerce to expense: early revisions of the stored
// data only knew income and expense, and untyped legacy rows were expenses.
func ParseTransactionType(s string) TransactionType {
	switch TransactionType(s) {
	case TypeIncome:
		return TypeIncome
	case TypeWithdrawal:
		return TypeWithdrawal
	case TypeSaving:
		return TypeSaving
	case TypeExpense:
		return TypeExpense
	default:
		return TypeExpense
	}
}

// Status marks whether a transaction has settled. Only income meaningfully
// uses pending, representing an expected but not-yet-closed deal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// ParseStatus maps a stored status string onto the status set; unknown values
// coerce to completed.
func ParseStatus(s string) Status {
	if Status(s) == StatusPending {
		return StatusPending
	}
	return StatusCompleted
}

// Transaction is a single ledger record. Records are immutable by
// replacement: edits swap the whole record by ID.
type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"` // YYYY-MM-DD, lexically sortable
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      float64         `json:"amount"` // non-negative magnitude
	Type        TransactionType `json:"type"`
	Status      Status          `json:"status"`
}

// Kind returns the transaction's normalized type, coercing legacy values.
func (t Transaction) Kind() TransactionType {
	return ParseTransactionType(string(t.Type))
}

// IsPendingIncome reports whether the record is an open deal in the pipeline.
func (t Transaction) IsPendingIncome() bool {
	return t.Kind() == TypeIncome && ParseStatus(string(t.Status)) == StatusPending
}

// NewTransaction creates a record with a fresh ID, today's date, and pending
// status, mirroring the defaults applied on user entry.
func NewTransaction(now time.Time, description, category string, amount float64, typ TransactionType) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Date:        now.Format(constants.DateLayout),
		Description: description,
		Category:    category,
		Amount:      amount,
		Type:        typ,
		Status:      StatusPending,
	}
}

// Append returns a new slice with tx added; the input is not modified.
func Append(txs []Transaction, tx Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs)+1)
	out = append(out, txs...)
	return append(out, tx)
}

// ReplaceByID returns a new slice with the record matching tx.ID swapped for
// tx. If no record matches, the copy is returned unchanged.
func ReplaceByID(txs []Transaction, tx Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	for i := range out {
		if out[i].ID == tx.ID {
			out[i] = tx
			break
		}
	}
	return out
}

// RemoveByID returns a new slice without the record matching id.
func RemoveByID(txs []Transaction, id string) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// FindByID returns the record matching id, if present.
func FindByID(txs []Transaction, id string) (Transaction, bool) {
	for _, t := range txs {
		if t.ID == id {
			return t, true
		}
	}
	return Transaction{}, false
}
