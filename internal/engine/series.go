package engine

import (
	"sort"

	"github.com/realtydash/realty-dashboard/internal/ledger"
	"github.com/realtydash/realty-dashboard/pkg/datetime"
)

// MonthBucket is one calendar month of grouped transaction totals for the
// cash-flow chart.
type MonthBucket struct {
	MonthKey    string  `json:"monthKey"` // YYYY-MM
	Income      float64 `json:"income"`
	Expense     float64 `json:"expense"`
	Withdrawal  float64 `json:"withdrawal"`
	Saving      float64 `json:"saving"`
	GrossProfit float64 `json:"grossProfit"`
	NetProfit   float64 `json:"netProfit"`
}

// BuildMonthlySeries groups transactions by calendar month into an ascending
// chronological series. Only months with at least one transaction appear;
// transactions with unparseable dates are skipped. Input order is irrelevant.
func BuildMonthlySeries(txs []ledger.Transaction, settings ledger.GlobalSettings) []MonthBucket {
	buckets := make(map[string]*MonthBucket)

	for _, t := range txs {
		d, err := datetime.ParseDay(t.Date)
		if err != nil {
			continue
		}
		key := datetime.MonthKey(d)
		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{MonthKey: key}
			buckets[key] = b
		}
		switch t.Kind() {
		case ledger.TypeIncome:
			b.Income += t.Amount
		case ledger.TypeWithdrawal:
			b.Withdrawal += t.Amount
		case ledger.TypeSaving:
			b.Saving += t.Amount
		case ledger.TypeExpense:
			b.Expense += t.Amount
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	// YYYY-MM keys sort lexically in calendar order.
	sort.Strings(keys)

	taxMultiplier := settings.TaxMultiplier()
	series := make([]MonthBucket, 0, len(keys))
	for _, key := range keys {
		b := *buckets[key]
		b.GrossProfit = b.Income - b.Expense
		b.NetProfit = b.GrossProfit * taxMultiplier
		series = append(series, b)
	}
	return series
}

// CategorySlice is one expense category's share of total spending.
type CategorySlice struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// BuildCategoryBreakdown sums expense transactions by category, sorted
// descending by total. Ties keep first-encountered category order, so the
// result is deterministic for a given input order while the totals themselves
// are order-independent. Folding small categories into an "other" bucket is
// left to the presentation layer.
func BuildCategoryBreakdown(txs []ledger.Transaction) []CategorySlice {
	totals := make(map[string]float64)
	var order []string

	for _, t := range txs {
		if t.Kind() != ledger.TypeExpense {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] += t.Amount
	}

	slices := make([]CategorySlice, 0, len(order))
	for _, cat := range order {
		slices = append(slices, CategorySlice{Category: cat, Total: totals[cat]})
	}
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Total > slices[j].Total
	})
	return slices
}
