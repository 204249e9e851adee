package ledger

import (
	"encoding/json"

	"github.com/realtydash/realty-dashboard/pkg/constants"
)

// GoalType selects which summary figure the monthly goal is measured against.
type GoalType string

const (
	GoalRevenue GoalType = "revenue"
	GoalSavings GoalType = "savings"
)

// ParseGoalType maps a stored goal type onto the goal set; unknown values
// coerce to revenue, the only goal older revisions knew.
func ParseGoalType(s string) GoalType {
	if GoalType(s) == GoalSavings {
		return GoalSavings
	}
	return GoalRevenue
}

// GlobalSettings holds the user-adjustable what-if parameters applied
// uniformly to every derivation. The struct is replaced wholesale on any
// field change.
type GlobalSettings struct {
	TaxRate            float64  `json:"taxRate"`          // percent, 0-50
	InflationRate      float64  `json:"inflationRate"`    // percent annual, 0-10
	ReinvestmentRate   float64  `json:"reinvestmentRate"` // percent, 0-100
	AnnualWithdrawal   float64  `json:"annualWithdrawal"`
	RMDStartYear       int      `json:"rmdStartYear"`
	MonthlyRevenueGoal float64  `json:"monthlyRevenueGoal"`
	GoalType           GoalType `json:"goalType"`
}

// DefaultSettings returns the settings handed to a user with no stored data.
func DefaultSettings() GlobalSettings {
	return GlobalSettings{
		TaxRate:            constants.DefaultTaxRate,
		InflationRate:      constants.DefaultInflationRate,
		ReinvestmentRate:   constants.DefaultReinvestmentRate,
		AnnualWithdrawal:   constants.DefaultAnnualWithdrawal,
		RMDStartYear:       constants.DefaultRMDStartYear,
		MonthlyRevenueGoal: constants.DefaultMonthlyRevenueGoal,
		GoalType:           GoalRevenue,
	}
}

// TaxMultiplier converts the tax rate into the fraction of gross profit kept.
func (s GlobalSettings) TaxMultiplier() float64 {
	return 1 - s.TaxRate/constants.PercentageMultiplier
}

// InflationMultiplier converts the annual inflation rate into a one-year
// growth factor.
func (s GlobalSettings) InflationMultiplier() float64 {
	return 1 + s.InflationRate/constants.PercentageMultiplier
}

// UnmarshalJSON decodes settings from persisted data, filling the goal fields
// added in later schema revisions when they are absent. The rate fields have
// existed since the first revision and decode as-is.
func (s *GlobalSettings) UnmarshalJSON(data []byte) error {
	type alias GlobalSettings
	aux := struct {
		MonthlyRevenueGoal *float64 `json:"monthlyRevenueGoal"`
		GoalType           *string  `json:"goalType"`
		*alias
	}{alias: (*alias)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.MonthlyRevenueGoal != nil {
		s.MonthlyRevenueGoal = *aux.MonthlyRevenueGoal
	} else {
		s.MonthlyRevenueGoal = constants.DefaultMonthlyRevenueGoal
	}
	if aux.GoalType != nil {
		s.GoalType = ParseGoalType(*aux.GoalType)
	} else {
		s.GoalType = GoalRevenue
	}
	return nil
}

// UserData is the full per-user persisted state: the transaction collection
// plus the scenario settings.
type UserData struct {
	Transactions []Transaction  `json:"transactions"`
	Settings     GlobalSettings `json:"settings"`
}
