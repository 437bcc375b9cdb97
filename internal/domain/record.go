package domain

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar date at UTC midnight, serialized as YYYY-MM-DD.
type Day struct {
	time.Time
}

func NewDay(t time.Time) Day {
	return Day{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("failed to parse day %q: %w", s, err)
	}
	return Day{t}, nil
}

func (d Day) AddDays(n int) Day {
	return Day{d.AddDate(0, 0, n)}
}

func (d Day) String() string {
	return d.Format(dayLayout)
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dayLayout) + `"`), nil
}

func (d *Day) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("invalid day literal %q", string(data))
	}
	parsed, err := ParseDay(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Record is one (location, day) observation. Any metric may be missing.
type Record struct {
	ISOCode  string `json:"iso_code"`
	Location string `json:"location"`
	Date     Day    `json:"date"`

	TotalCases                      Metric `json:"total_cases"`
	TotalDeaths                     Metric `json:"total_deaths"`
	NewCases                        Metric `json:"new_cases"`
	NewDeaths                       Metric `json:"new_deaths"`
	PeopleFullyVaccinated           Metric `json:"people_fully_vaccinated"`
	PeopleFullyVaccinatedPerHundred Metric `json:"people_fully_vaccinated_per_hundred"`
	TotalCasesPerMillion            Metric `json:"total_cases_per_million"`
	TotalDeathsPerMillion           Metric `json:"total_deaths_per_million"`
}

// Metric returns the named metric value; ok is false for names that are
// not tracked columns.
func (r *Record) Metric(name MetricName) (Metric, bool) {
	switch name {
	case MetricTotalCases:
		return r.TotalCases, true
	case MetricTotalDeaths:
		return r.TotalDeaths, true
	case MetricNewCases:
		return r.NewCases, true
	case MetricNewDeaths:
		return r.NewDeaths, true
	case MetricPeopleFullyVaccinated:
		return r.PeopleFullyVaccinated, true
	case MetricPeopleFullyVaccinatedPerHundred:
		return r.PeopleFullyVaccinatedPerHundred, true
	case MetricTotalCasesPerMillion:
		return r.TotalCasesPerMillion, true
	case MetricTotalDeathsPerMillion:
		return r.TotalDeathsPerMillion, true
	}
	return Metric{}, false
}

func (r *Record) SetMetric(name MetricName, m Metric) bool {
	switch name {
	case MetricTotalCases:
		r.TotalCases = m
	case MetricTotalDeaths:
		r.TotalDeaths = m
	case MetricNewCases:
		r.NewCases = m
	case MetricNewDeaths:
		r.NewDeaths = m
	case MetricPeopleFullyVaccinated:
		r.PeopleFullyVaccinated = m
	case MetricPeopleFullyVaccinatedPerHundred:
		r.PeopleFullyVaccinatedPerHundred = m
	case MetricTotalCasesPerMillion:
		r.TotalCasesPerMillion = m
	case MetricTotalDeathsPerMillion:
		r.TotalDeathsPerMillion = m
	default:
		return false
	}
	return true
}

// HasAny reports whether at least one of the named metrics is present.
func (r *Record) HasAny(names []MetricName) bool {
	for _, name := range names {
		if m, ok := r.Metric(name); ok && m.Valid {
			return true
		}
	}
	return false
}
