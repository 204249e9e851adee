package engine

import (
	"testing"

	"github.com/realtydash/realty-dashboard/internal/ledger"
	"github.com/realtydash/realty-dashboard/pkg/datetime"
	"github.com/realtydash/realty-dashboard/pkg/mathutil"
)

func TestSummarizePeriodsWindows(t *testing.T) {
	// 2024-05-15 is a Wednesday; its ISO week runs Mon 2024-05-13 through
	// Sun 2024-05-19.
	ref := datetime.MustParseTime(datetime.DateLayout, "2024-05-15")

	txs := []ledger.Transaction{
		closedDeal("2024-05-15", 1000),               // today
		closedDeal("2024-05-13", 500),                // this week, not today
		closedDeal("2024-05-19", 250),                // this week, not today
		closedDeal("2024-05-01", 2000),               // this month, not this week
		closedDeal("2024-04-30", 9999),               // previous month
		expense("2024-05-15", "Office", 100),         // today
		expense("2024-05-02", "Marketing", 300),      // this month only
	}
	settings := ledger.GlobalSettings{TaxRate: 0}

	s := SummarizePeriods(txs, settings, ref)

	if s.Day.Income != 1000 || s.Day.Expense != 100 {
		t.Errorf("day window = %+v, expected income 1000 expense 100", s.Day)
	}
	if s.Week.Income != 1750 || s.Week.Expense != 100 {
		t.Errorf("week window = %+v, expected income 1750 expense 100", s.Week)
	}
	if s.Month.Income != 3750 || s.Month.Expense != 400 {
		t.Errorf("month window = %+v, expected income 3750 expense 400", s.Month)
	}

	if s.Day.Period != "Today" || s.Week.Period != "This Week" || s.Month.Period != "This Month" {
		t.Errorf("period labels = %q/%q/%q", s.Day.Period, s.Week.Period, s.Month.Period)
	}
}

func TestSummarizePeriodsISOWeekAcrossMonthBoundary(t *testing.T) {
	// 2024-07-31 is a Wednesday; 2024-08-02 (Friday) is in the same ISO week
	// but a different calendar month.
	ref := datetime.MustParseTime(datetime.DateLayout, "2024-07-31")
	txs := []ledger.Transaction{
		closedDeal("2024-08-02", 700),
	}

	s := SummarizePeriods(txs, ledger.GlobalSettings{}, ref)
	if s.Week.Income != 700 {
		t.Errorf("week income = %v, expected 700 (ISO week spans month boundary)", s.Week.Income)
	}
	if s.Month.Income != 0 {
		t.Errorf("month income = %v, expected 0", s.Month.Income)
	}
}

func TestSummarizePeriodsNetAndNetAfterTax(t *testing.T) {
	ref := datetime.MustParseTime(datetime.DateLayout, "2024-05-15")
	txs := []ledger.Transaction{
		closedDeal("2024-05-15", 1000),
		expense("2024-05-15", "Office", 200),
		{ID: "w", Date: "2024-05-15", Amount: 100, Type: ledger.TypeWithdrawal, Status: ledger.StatusCompleted},
		{ID: "s", Date: "2024-05-15", Amount: 100, Type: ledger.TypeSaving, Status: ledger.StatusCompleted},
	}
	settings := ledger.GlobalSettings{TaxRate: 25}

	s := SummarizePeriods(txs, settings, ref)

	if s.Day.Net != 600 {
		t.Errorf("Net = %v, expected pre-tax 600", s.Day.Net)
	}
	// (1000 - 200) * 0.75 - 100 - 100
	if !mathutil.WithinTolerance(s.Day.NetAfterTax, 400, 0.001) {
		t.Errorf("NetAfterTax = %v, expected 400", s.Day.NetAfterTax)
	}
}

func TestSummarizePeriodsEmptyInput(t *testing.T) {
	ref := datetime.MustParseTime(datetime.DateLayout, "2024-05-15")
	s := SummarizePeriods(nil, ledger.DefaultSettings(), ref)

	if s.Day.Net != 0 || s.Week.Net != 0 || s.Month.Net != 0 {
		t.Errorf("empty input produced non-zero nets: %+v", s)
	}
}

func TestMeasureGoal(t *testing.T) {
	month := PeriodSummary{Income: 17500, Saving: 5000}

	tests := []struct {
		name            string
		settings        ledger.GlobalSettings
		expectedPercent float64
		expectedDisplay float64
	}{
		{
			name:            "Revenue goal halfway",
			settings:        ledger.GlobalSettings{MonthlyRevenueGoal: 35000, GoalType: ledger.GoalRevenue},
			expectedPercent: 50,
			expectedDisplay: 50,
		},
		{
			name:            "Revenue goal exceeded keeps raw ratio",
			settings:        ledger.GlobalSettings{MonthlyRevenueGoal: 10000, GoalType: ledger.GoalRevenue},
			expectedPercent: 175,
			expectedDisplay: 100,
		},
		{
			name:            "Savings goal measures saving total",
			settings:        ledger.GlobalSettings{MonthlyRevenueGoal: 10000, GoalType: ledger.GoalSavings},
			expectedPercent: 50,
			expectedDisplay: 50,
		},
		{
			name:            "Zero goal yields zero progress",
			settings:        ledger.GlobalSettings{MonthlyRevenueGoal: 0, GoalType: ledger.GoalRevenue},
			expectedPercent: 0,
			expectedDisplay: 0,
		},
		{
			name:            "Unknown goal type measures revenue",
			settings:        ledger.GlobalSettings{MonthlyRevenueGoal: 35000, GoalType: "networth"},
			expectedPercent: 50,
			expectedDisplay: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MeasureGoal(month, tt.settings)
			if !mathutil.WithinTolerance(g.Percent, tt.expectedPercent, 0.001) {
				t.Errorf("Percent = %v, expected %v", g.Percent, tt.expectedPercent)
			}
			if !mathutil.WithinTolerance(g.Display, tt.expectedDisplay, 0.001) {
				t.Errorf("Display = %v, expected %v", g.Display, tt.expectedDisplay)
			}
		})
	}
}
