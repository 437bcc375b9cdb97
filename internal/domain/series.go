package domain

// CountrySnapshot is the most recent record for a location that still
// carries at least one key metric, used for headline display.
type CountrySnapshot struct {
	Location string  `json:"location"`
	ISOCode  string  `json:"iso_code"`
	Latest   *Record `json:"latest"`
}

type RollingPoint struct {
	Date  Day    `json:"date"`
	Value Metric `json:"value"`
}

// RollingSeries is a trailing-window average of one metric for one
// location, one point per date present in the underlying series.
type RollingSeries struct {
	Location   string         `json:"location"`
	Metric     MetricName     `json:"metric"`
	WindowDays int            `json:"window_days"`
	Points     []RollingPoint `json:"points"`
}

// Comparison holds two rolling series aligned on the union of their
// dates; a date one location lacks shows up as a missing point.
type Comparison struct {
	Primary RollingSeries `json:"primary"`
	Compare RollingSeries `json:"compare"`
}

// KeyMetricsPanel is the headline payload for one location, each field
// independently nullable.
type KeyMetricsPanel struct {
	Location        string `json:"location"`
	AsOf            Day    `json:"as_of"`
	TotalCases      Metric `json:"total_cases"`
	TotalDeaths     Metric `json:"total_deaths"`
	FullyVaccinated Metric `json:"fully_vaccinated"`
	VaccinationRate Metric `json:"vaccination_rate"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
