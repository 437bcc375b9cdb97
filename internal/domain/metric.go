package domain

import (
	"bytes"
	"strconv"
)

// MetricName identifies one tracked numeric column of the source dataset.
type MetricName string

const (
	MetricTotalCases                      MetricName = "total_cases"
	MetricTotalDeaths                     MetricName = "total_deaths"
	MetricNewCases                        MetricName = "new_cases"
	MetricNewDeaths                       MetricName = "new_deaths"
	MetricPeopleFullyVaccinated           MetricName = "people_fully_vaccinated"
	MetricPeopleFullyVaccinatedPerHundred MetricName = "people_fully_vaccinated_per_hundred"
	MetricTotalCasesPerMillion            MetricName = "total_cases_per_million"
	MetricTotalDeathsPerMillion           MetricName = "total_deaths_per_million"
)

// TrackedMetrics lists every metric column the loader requires in the
// source header.
func TrackedMetrics() []MetricName {
	return []MetricName{
		MetricTotalCases,
		MetricTotalDeaths,
		MetricNewCases,
		MetricNewDeaths,
		MetricPeopleFullyVaccinated,
		MetricPeopleFullyVaccinatedPerHundred,
		MetricTotalCasesPerMillion,
		MetricTotalDeathsPerMillion,
	}
}

// KeyMetrics are the metrics that make a trailing record usable as the
// latest snapshot for a location. Kept as a list, not a literal check,
// so the set can be tuned without touching the scan.
func KeyMetrics() []MetricName {
	return []MetricName{
		MetricTotalCases,
		MetricTotalDeaths,
		MetricPeopleFullyVaccinatedPerHundred,
	}
}

func ValidMetricName(name string) bool {
	for _, m := range TrackedMetrics() {
		if string(m) == name {
			return true
		}
	}
	return false
}

// Metric is one optionally-missing observation value. Missing data is a
// normal state in the source, so the zero value means "no data", never
// zero. Serializes to a JSON number or null.
type Metric struct {
	Value float64
	Valid bool
}

func SomeMetric(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

var nullLiteral = []byte("null")

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return nullLiteral, nil
	}
	return strconv.AppendFloat(nil, m.Value, 'f', -1, 64), nil
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, nullLiteral) {
		*m = Metric{}
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}

	*m = Metric{Value: v, Valid: true}
	return nil
}
