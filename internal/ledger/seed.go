package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Suggested category vocabularies. Any string is accepted on a transaction;
// these only drive entry-form suggestions.
var (
	ExpenseCategories = []string{
		"Marketing", "Staging", "Lead Gen", "Office", "Travel", "Education", "Licensing",
	}
	IncomeCategories = []string{
		"Commission", "Consulting", "Referral Fee",
	}
)

type seedRow struct {
	day         int
	description string
	category    string
	amount      float64
	typ         TransactionType
	status      Status
}

var seedRows = []seedRow{
	{15, "123 Maple Drive Closing", "Commission", 12500, TypeIncome, StatusCompleted},
	{20, "450 Oak Ave Listing", "Commission", 8750, TypeIncome, StatusPending},
	{10, "789 Pine Ln Buyer Rep", "Commission", 9200, TypeIncome, StatusCompleted},
	{2, "Zillow Premier Agent", "Lead Gen", 850, TypeExpense, StatusCompleted},
	{5, "Luxury Staging Co.", "Staging", 2100, TypeExpense, StatusCompleted},
	{12, "Pro Photography - Maple Dr", "Marketing", 450, TypeExpense, StatusCompleted},
	{18, "Open House Catering", "Marketing", 175, TypeExpense, StatusCompleted},
	{1, "Brokerage Desk Fees", "Office", 300, TypeExpense, StatusCompleted},
	{19, "Facebook Ads", "Marketing", 250, TypeExpense, StatusCompleted},
}

// SeedTransactions builds the starter dataset handed to a first-time user so
// every derivation has non-degenerate output on first run. All rows land in
// now's month, with days clamped to the month's length.
func SeedTransactions(now time.Time) []Transaction {
	year, month := now.Year(), now.Month()
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, now.Location()).Day()

	txs := make([]Transaction, 0, len(seedRows))
	for _, row := range seedRows {
		day := row.day
		if day > lastDay {
			day = lastDay
		}
		txs = append(txs, Transaction{
			ID:          uuid.NewString(),
			Date:        fmt.Sprintf("%04d-%02d-%02d", year, month, day),
			Description: row.description,
			Category:    row.category,
			Amount:      row.amount,
			Type:        row.typ,
			Status:      row.status,
		})
	}
	return txs
}

// SeedUserData bundles the seed transactions with default settings.
func SeedUserData(now time.Time) UserData {
	return UserData{
		Transactions: SeedTransactions(now),
		Settings:     DefaultSettings(),
	}
}
