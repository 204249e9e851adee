// Package output provides utilities for formatting and displaying dashboard
// reports on the command line.
package output

import (
	"fmt"
	"strings"

	"github.com/realtydash/realty-dashboard/internal/engine"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report bundles the derived figures printed by the report command.
type Report struct {
	Username      string
	ReferenceDate string
	Metrics       engine.Metrics
	MonthlySeries []engine.MonthBucket
	Breakdown     []engine.CategorySlice
	Forecast      []engine.ForecastMonth
	Periods       engine.PeriodSummaries
	Goal          engine.GoalProgress
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(r Report) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Dashboard for %s (as of %s) ---\n", r.Username, r.ReferenceDate)
	_, _ = p.Printf("Total Income:        $%.2f\n", r.Metrics.TotalIncome)
	_, _ = p.Printf("Total Expense:       $%.2f\n", r.Metrics.TotalExpense)
	_, _ = p.Printf("Gross Income:        $%.2f\n", r.Metrics.GrossIncome)
	_, _ = p.Printf("Net Income:          $%.2f\n", r.Metrics.NetIncome)
	_, _ = p.Printf("Net Cash Flow:       $%.2f\n", r.Metrics.NetCashFlow)
	_, _ = p.Printf("Pending Commissions: $%.2f\n", r.Metrics.PendingCommissions)
	_, _ = p.Printf("Goal Progress:       %.1f%% of $%.2f\n", r.Goal.Percent, r.Goal.Target)

	fmt.Printf("\nMonth   | Income        | Expense       | Net Profit\n")
	fmt.Printf("_____   | ______        | _______       | __________\n")
	for _, b := range r.MonthlySeries {
		_, _ = p.Printf("%s | $%.2f | $%.2f | $%.2f\n", b.MonthKey, b.Income, b.Expense, b.NetProfit)
	}

	fmt.Printf("\nExpense Breakdown\n")
	for _, slice := range r.Breakdown {
		_, _ = p.Printf("  %s: $%.2f\n", slice.Category, slice.Total)
	}

	fmt.Printf("\nForecast | Income        | Expense       | Net Potential\n")
	fmt.Printf("________ | ______        | _______       | _____________\n")
	for _, m := range r.Forecast {
		_, _ = p.Printf("%s   | $%.2f | $%.2f | $%.2f\n", m.Label, m.ForecastIncome, m.ProjectedExpense, m.NetPotential)
	}
}

// CsvFormat outputs the monthly series and forecast in comma-separated value
// format.
func CsvFormat(r Report) {
	fmt.Printf(`"section","period","income","expense","net"`)
	fmt.Printf("\n")
	for _, b := range r.MonthlySeries {
		fmt.Printf(`"history","%s","%.2f","%.2f","%.2f"`, b.MonthKey, b.Income, b.Expense, b.NetProfit)
		fmt.Printf("\n")
	}
	for _, m := range r.Forecast {
		label := strings.ReplaceAll(m.Label, `"`, `""`)
		fmt.Printf(`"forecast","%s","%.2f","%.2f","%.2f"`, label, m.ForecastIncome, m.ProjectedExpense, m.NetPotential)
		fmt.Printf("\n")
	}
}
