package schedule

// Resolved is the expected shift of one employee on one date.
// On days off the boundaries still carry the nominal shift so that
// punches recorded on a rest day can be evaluated.
type Resolved struct {
	Date             string `json:"date"`
	IsWorkingDay     bool   `json:"is_working_day"`
	ExpectedCheckIn  string `json:"expected_check_in"`
	ExpectedCheckOut string `json:"expected_check_out"`
}

// AverageWeeksPerMonth converts weekly scheduled hours to monthly hours.
const AverageWeeksPerMonth = "4.33"

// DefaultExpectedWorkingDays is used when a month resolves to no working day at all.
const DefaultExpectedWorkingDays = 22
