// Package constants provides shared constants for the realty-dashboard application.
package constants

// DateLayout is the calendar-date format used for transaction dates in storage
// and over the API.
const DateLayout = "2006-01-02"

// MonthKeyLayout is the year-month format used for chart bucketing.
const MonthKeyLayout = "2006-01"

// MonthLabelLayout is the short human-readable month label used in forecasts.
const MonthLabelLayout = "Jan 06"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// ForecastHorizonMonths is the number of months projected forward
	ForecastHorizonMonths = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// MetricsMonthDivisor converts a day span to months when annualizing totals
	MetricsMonthDivisor = 30.0

	// RunRateMonthDivisor converts a day span to months for forecast run-rates
	RunRateMonthDivisor = 30.44

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Default scenario settings, applied when a user has no stored settings.
const (
	DefaultTaxRate            = 25.0
	DefaultInflationRate      = 3.0
	DefaultReinvestmentRate   = 50.0
	DefaultAnnualWithdrawal   = 0.0
	DefaultRMDStartYear       = 10
	DefaultMonthlyRevenueGoal = 35000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultTokenTTLHours is the default session token lifetime
	DefaultTokenTTLHours = 24

	// DefaultBcryptCost matches the cost used for stored credential hashes
	DefaultBcryptCost = 10
)
