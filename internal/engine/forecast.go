package engine

import (
	"math"
	"time"

	"github.com/realtydash/realty-dashboard/internal/ledger"
	"github.com/realtydash/realty-dashboard/pkg/constants"
	"github.com/realtydash/realty-dashboard/pkg/datetime"
	"github.com/realtydash/realty-dashboard/pkg/mathutil"
)

// ForecastMonth is one month of the 12-month forward projection.
type ForecastMonth struct {
	Label string `json:"label"` // e.g. "Jan 26"

	// ForecastIncome is the larger of the month's known pending deals and the
	// historical monthly run-rate, rounded to whole currency.
	ForecastIncome float64 `json:"forecastIncome"`

	// ProjectedExpense compounds the historical average expense forward by
	// monthly inflation, rounded to whole currency.
	ProjectedExpense float64 `json:"projectedExpense"`

	// Pending is the unrounded sum of pending income dated in this month.
	Pending float64 `json:"pending"`

	NetPotential float64 `json:"netPotential"`
}

// ProjectForward computes the 12-month income/expense projection starting at
// ref's month. The income forecast per month is the higher of the pipeline
// (pending deals dated in that month) and the historical run-rate, so the
// chart jumps where a known deal closes and otherwise shows the baseline
// eroded by inflation-compounded costs. Transactions with unparseable dates
// are skipped throughout.
func ProjectForward(txs []ledger.Transaction, settings ledger.GlobalSettings, ref time.Time) []ForecastMonth {
	var completedIncome, expenses []ledger.Transaction
	for _, t := range txs {
		switch {
		case t.Kind() == ledger.TypeIncome && ledger.ParseStatus(string(t.Status)) == ledger.StatusCompleted:
			completedIncome = append(completedIncome, t)
		case t.Kind() == ledger.TypeExpense:
			expenses = append(expenses, t)
		}
	}

	avgIncome := monthlyAverage(completedIncome)
	avgExpense := monthlyAverage(expenses)

	monthlyInflation := settings.InflationRate / constants.PercentageMultiplier / constants.MonthsPerYear

	start := datetime.MonthStart(ref)
	projection := make([]ForecastMonth, 0, constants.ForecastHorizonMonths)
	for i := 0; i < constants.ForecastHorizonMonths; i++ {
		month := start.AddDate(0, i, 0)

		var pending float64
		for _, t := range txs {
			if !t.IsPendingIncome() {
				continue
			}
			d, err := datetime.ParseDay(t.Date)
			if err != nil {
				continue
			}
			if datetime.SameMonth(d, month) {
				pending += t.Amount
			}
		}

		forecastIncome := mathutil.Max(pending, avgIncome)
		projectedExpense := avgExpense * math.Pow(1+monthlyInflation, float64(i))

		projection = append(projection, ForecastMonth{
			Label:            month.Format(constants.MonthLabelLayout),
			ForecastIncome:   math.Round(forecastIncome),
			ProjectedExpense: math.Round(projectedExpense),
			Pending:          pending,
			NetPotential:     math.Round(forecastIncome - projectedExpense),
		})
	}
	return projection
}

// monthlyAverage is the historical run-rate of a transaction subset: total
// amount divided by the whole-month span of the subset's dates. Records with
// unparseable dates are excluded from both the total and the span. Zero when
// nothing usable remains.
func monthlyAverage(txs []ledger.Transaction) float64 {
	var total float64
	var minDate, maxDate time.Time
	haveDates := false

	for _, t := range txs {
		d, err := datetime.ParseDay(t.Date)
		if err != nil {
			continue
		}
		total += t.Amount
		if !haveDates || d.Before(minDate) {
			minDate = d
		}
		if !haveDates || d.After(maxDate) {
			maxDate = d
		}
		haveDates = true
	}

	if !haveDates {
		return 0
	}
	months := datetime.SpanMonths(minDate, maxDate, constants.RunRateMonthDivisor)
	return total / float64(months)
}
