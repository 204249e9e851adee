// Package engine computes all derived dashboard figures from a transaction
// collection and the scenario settings. Every function here is a pure,
// total transform of its inputs: no I/O, no retained state, no errors.
// Callers re-run the derivations in full on any input change.
package engine

import (
	"time"

	"github.com/realtydash/realty-dashboard/internal/ledger"
	"github.com/realtydash/realty-dashboard/pkg/constants"
	"github.com/realtydash/realty-dashboard/pkg/datetime"
)

// Metrics is the summary block shown across the top of the dashboard.
type Metrics struct {
	TotalIncome     float64 `json:"totalIncome"`
	TotalExpense    float64 `json:"totalExpense"`
	TotalWithdrawal float64 `json:"totalWithdrawal"`
	TotalSaving     float64 `json:"totalSaving"`

	// GrossIncome is income minus expense before tax; NetIncome applies the
	// tax multiplier to it.
	GrossIncome float64 `json:"grossIncome"`
	NetIncome   float64 `json:"netIncome"`

	// NetCashFlow is actual liquid movement, tax-agnostic.
	NetCashFlow float64 `json:"netCashFlow"`

	// PendingCommissions is the post-tax value of open deals in the pipeline.
	PendingCommissions float64 `json:"pendingCommissions"`

	ProjectedNextYearExpense float64 `json:"projectedNextYearExpense"`
	ProjectedScenarioNet     float64 `json:"projectedScenarioNet"`

	// MonthsSpan is the whole-month span of the dataset used for
	// annualization, never less than 1.
	MonthsSpan int `json:"monthsSpan"`
}

// ComputeMetrics reduces the full transaction set into summary totals and
// tax/inflation-adjusted derived figures. Totals are order-independent.
// Transactions with unparseable dates still count toward the type totals but
// are excluded from the date span used for annualization.
func ComputeMetrics(txs []ledger.Transaction, settings ledger.GlobalSettings) Metrics {
	var m Metrics
	var pendingAmount float64
	var minDate, maxDate time.Time
	haveDates := false

	for _, t := range txs {
		switch t.Kind() {
		case ledger.TypeIncome:
			m.TotalIncome += t.Amount
			if t.IsPendingIncome() {
				pendingAmount += t.Amount
			}
		case ledger.TypeWithdrawal:
			m.TotalWithdrawal += t.Amount
		case ledger.TypeSaving:
			m.TotalSaving += t.Amount
		case ledger.TypeExpense:
			m.TotalExpense += t.Amount
		}

		d, err := datetime.ParseDay(t.Date)
		if err != nil {
			continue
		}
		if !haveDates || d.Before(minDate) {
			minDate = d
		}
		if !haveDates || d.After(maxDate) {
			maxDate = d
		}
		haveDates = true
	}

	taxMultiplier := settings.TaxMultiplier()
	inflationMultiplier := settings.InflationMultiplier()

	m.MonthsSpan = 1
	if haveDates {
		m.MonthsSpan = datetime.SpanMonths(minDate, maxDate, constants.MetricsMonthDivisor)
	}

	annualizedIncome := m.TotalIncome / float64(m.MonthsSpan) * constants.MonthsPerYear
	annualizedExpense := m.TotalExpense / float64(m.MonthsSpan) * constants.MonthsPerYear

	m.GrossIncome = m.TotalIncome - m.TotalExpense
	m.NetIncome = m.GrossIncome * taxMultiplier
	m.NetCashFlow = m.TotalIncome - m.TotalExpense - m.TotalWithdrawal - m.TotalSaving
	m.PendingCommissions = pendingAmount * taxMultiplier
	m.ProjectedNextYearExpense = m.TotalExpense * inflationMultiplier
	m.ProjectedScenarioNet = (annualizedIncome - annualizedExpense*inflationMultiplier) * taxMultiplier

	return m
}
