package domain

import "sort"

// Dataset is the loaded source table: per-location record series sorted
// by date ascending. Built once per load, immutable afterwards; derived
// structures are pure functions of it.
type Dataset struct {
	byLocation  map[string][]*Record
	locations   []string
	droppedRows int
}

func NewDataset(byLocation map[string][]*Record, droppedRows int) *Dataset {
	locations := make([]string, 0, len(byLocation))
	for location, series := range byLocation {
		sort.Slice(series, func(i, j int) bool {
			return series[i].Date.Before(series[j].Date.Time)
		})
		locations = append(locations, location)
	}
	sort.Strings(locations)

	return &Dataset{
		byLocation:  byLocation,
		locations:   locations,
		droppedRows: droppedRows,
	}
}

// Locations returns the sorted location names. Callers must not mutate
// the returned slice.
func (d *Dataset) Locations() []string {
	return d.locations
}

func (d *Dataset) Series(location string) ([]*Record, bool) {
	series, ok := d.byLocation[location]
	return series, ok
}

// DroppedRows is the count of source rows discarded for unparseable
// dates, surfaced for diagnostics.
func (d *Dataset) DroppedRows() int {
	return d.droppedRows
}

func (d *Dataset) Len() int {
	return len(d.locations)
}
