package metrics

import (
	"fmt"

	"github.com/ougirez/coviddash/internal/domain"
	"github.com/ougirez/coviddash/internal/pkg/constants"
)

// Index holds the derived lookups for one loaded dataset: the latest
// usable snapshot per location. Built once, read-only afterwards.
type Index struct {
	dataset    *domain.Dataset
	keyMetrics []domain.MetricName
	snapshots  map[string]*domain.CountrySnapshot
}

func NewIndex(dataset *domain.Dataset, keyMetrics []domain.MetricName) *Index {
	index := &Index{
		dataset:    dataset,
		keyMetrics: keyMetrics,
		snapshots:  make(map[string]*domain.CountrySnapshot, dataset.Len()),
	}

	for _, location := range dataset.Locations() {
		series, _ := dataset.Series(location)
		if latest := latestUsable(series, keyMetrics); latest != nil {
			index.snapshots[location] = &domain.CountrySnapshot{
				Location: location,
				ISOCode:  latest.ISOCode,
				Latest:   latest,
			}
		}
	}

	return index
}

// latestUsable scans backward for the first record carrying at least one
// key metric. A trailing all-missing row must never win, so plain
// "last row" selection is not enough.
func latestUsable(series []*domain.Record, keyMetrics []domain.MetricName) *domain.Record {
	for i := len(series) - 1; i >= 0; i-- {
		if series[i].HasAny(keyMetrics) {
			return series[i]
		}
	}
	return nil
}

// Snapshot returns the latest usable record for a location. A location
// without one is a normal outcome, reported as ErrNotFound.
func (i *Index) Snapshot(location string) (*domain.CountrySnapshot, error) {
	snapshot, ok := i.snapshots[location]
	if !ok {
		return nil, fmt.Errorf("no usable snapshot for %q: %w", location, constants.ErrNotFound)
	}
	return snapshot, nil
}

// AllSnapshots returns the snapshot per location; locations with no
// usable record are omitted. Callers must not mutate the returned map.
func (i *Index) AllSnapshots() map[string]*domain.CountrySnapshot {
	return i.snapshots
}

// Series returns a location's records ordered by date ascending.
func (i *Index) Series(location string) ([]*domain.Record, error) {
	series, ok := i.dataset.Series(location)
	if !ok {
		return nil, fmt.Errorf("unknown location %q: %w", location, constants.ErrNotFound)
	}
	return series, nil
}

func (i *Index) Dataset() *domain.Dataset {
	return i.dataset
}
