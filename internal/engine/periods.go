package engine

import (
	"time"

	"github.com/realtydash/realty-dashboard/internal/ledger"
	"github.com/realtydash/realty-dashboard/pkg/datetime"
	"github.com/realtydash/realty-dashboard/pkg/mathutil"
)

// PeriodSummary is the rollup of one time window for the insights sidebar.
type PeriodSummary struct {
	Period     string  `json:"period"`
	Income     float64 `json:"income"`
	Expense    float64 `json:"expense"`
	Withdrawal float64 `json:"withdrawal"`
	Saving     float64 `json:"saving"`

	// Net is pre-tax cash flow: income - expense - withdrawal - saving.
	// NetAfterTax applies the tax multiplier to the income-minus-expense part
	// only; withdrawals and savings are cash movements, not taxable profit.
	// Both are exposed so the consuming UI picks the interpretation it wants.
	Net         float64 `json:"net"`
	NetAfterTax float64 `json:"netAfterTax"`
}

// PeriodSummaries holds the day/week/month rollups relative to a reference time.
type PeriodSummaries struct {
	Day   PeriodSummary `json:"day"`
	Week  PeriodSummary `json:"week"`
	Month PeriodSummary `json:"month"`
}

// SummarizePeriods computes the today / this-week / this-month rollups
// relative to ref. The week window is the ISO-8601 week (Thursday-anchored).
// Transactions with unparseable dates are skipped.
func SummarizePeriods(txs []ledger.Transaction, settings ledger.GlobalSettings, ref time.Time) PeriodSummaries {
	return PeriodSummaries{
		Day:   summarize(txs, settings, "Today", func(d time.Time) bool { return datetime.SameDay(d, ref) }),
		Week:  summarize(txs, settings, "This Week", func(d time.Time) bool { return datetime.SameISOWeek(d, ref) }),
		Month: summarize(txs, settings, "This Month", func(d time.Time) bool { return datetime.SameMonth(d, ref) }),
	}
}

func summarize(txs []ledger.Transaction, settings ledger.GlobalSettings, period string, inWindow func(time.Time) bool) PeriodSummary {
	s := PeriodSummary{Period: period}

	for _, t := range txs {
		d, err := datetime.ParseDay(t.Date)
		if err != nil {
			continue
		}
		if !inWindow(d) {
			continue
		}
		switch t.Kind() {
		case ledger.TypeIncome:
			s.Income += t.Amount
		case ledger.TypeWithdrawal:
			s.Withdrawal += t.Amount
		case ledger.TypeSaving:
			s.Saving += t.Amount
		case ledger.TypeExpense:
			s.Expense += t.Amount
		}
	}

	s.Net = s.Income - s.Expense - s.Withdrawal - s.Saving
	s.NetAfterTax = (s.Income-s.Expense)*settings.TaxMultiplier() - s.Withdrawal - s.Saving
	return s
}

// GoalProgress measures the month rollup against the configured goal.
type GoalProgress struct {
	Target float64 `json:"target"`
	Actual float64 `json:"actual"`

	// Percent is the unclamped ratio for surfaces that show >100%; Display is
	// clamped to [0, 100] for progress bars.
	Percent float64 `json:"percent"`
	Display float64 `json:"display"`
}

// MeasureGoal computes goal progress from the month summary. A savings goal
// measures against the month's saving total, a revenue goal against income.
// A non-positive goal target yields zero progress.
func MeasureGoal(month PeriodSummary, settings ledger.GlobalSettings) GoalProgress {
	actual := month.Income
	if ledger.ParseGoalType(string(settings.GoalType)) == ledger.GoalSavings {
		actual = month.Saving
	}

	g := GoalProgress{Target: settings.MonthlyRevenueGoal, Actual: actual}
	if settings.MonthlyRevenueGoal <= 0 {
		return g
	}
	g.Percent = mathutil.CalculatePercentage(actual, settings.MonthlyRevenueGoal)
	g.Display = mathutil.Clamp(g.Percent, 0, 100)
	return g
}
