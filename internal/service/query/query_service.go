package query

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/ougirez/coviddash/internal/domain"
	"github.com/ougirez/coviddash/internal/pkg/constants"
	"github.com/ougirez/coviddash/internal/pkg/logger"
	"github.com/ougirez/coviddash/internal/service/dataset"
	"github.com/ougirez/coviddash/internal/service/fetcher"
	"github.com/ougirez/coviddash/internal/service/metrics"
)

// aggregate iso codes carry this prefix in the source and are not
// countries, so the map payload skips them
const aggregateISOPrefix = "OWID_"

// state is one fully-built generation of the dataset and its derived
// structures. Reload builds a new one off to the side and swaps the
// pointer, so readers never observe a half-updated dataset.
type state struct {
	dataset    *domain.Dataset
	index      *metrics.Index
	aggregator *metrics.Aggregator
}

// Service is the read-only facade the presentation layer calls.
type Service struct {
	fetcherService *fetcher.Service
	datasetService *dataset.Service
	keyMetrics     []domain.MetricName
	windowDays     int
	reloadRetries  uint64

	current atomic.Pointer[state]
}

type Options struct {
	// KeyMetrics designate the metrics that make a trailing record usable
	// as a snapshot. Empty means domain.KeyMetrics().
	KeyMetrics []domain.MetricName
	// WindowDays is the default rolling window. Zero means
	// metrics.DefaultWindowDays.
	WindowDays int
	// ReloadRetries bounds the extra network attempts an explicit reload
	// makes before falling back to the cache.
	ReloadRetries uint64
}

func NewQueryService(fetcherService *fetcher.Service, datasetService *dataset.Service, opts Options) *Service {
	if len(opts.KeyMetrics) == 0 {
		opts.KeyMetrics = domain.KeyMetrics()
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = metrics.DefaultWindowDays
	}

	return &Service{
		fetcherService: fetcherService,
		datasetService: datasetService,
		keyMetrics:     opts.KeyMetrics,
		windowDays:     opts.WindowDays,
		reloadRetries:  opts.ReloadRetries,
	}
}

// Init fetches (single attempt, cache fallback) and loads the dataset.
// Must succeed before any query is served; failure is fatal to startup.
func (s *Service) Init(ctx context.Context) error {
	raw, err := s.fetcherService.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	return s.loadAndSwap(ctx, raw)
}

// Reload refreshes the dataset on an explicit operator request. The new
// generation is built completely before the swap; on any failure the
// previous one stays live.
func (s *Service) Reload(ctx context.Context) error {
	raw, err := s.fetcherService.FetchWithRetry(ctx, s.reloadRetries)
	if err != nil {
		return fmt.Errorf("fetch with retry: %w", err)
	}

	return s.loadAndSwap(ctx, raw)
}

func (s *Service) loadAndSwap(ctx context.Context, raw []byte) error {
	ds, err := s.datasetService.Load(ctx, raw)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	index := metrics.NewIndex(ds, s.keyMetrics)
	s.current.Store(&state{
		dataset:    ds,
		index:      index,
		aggregator: metrics.NewAggregator(index),
	})

	logger.Infof(ctx, "dataset generation swapped in: %d locations, %d dropped rows", ds.Len(), ds.DroppedRows())
	return nil
}

func (s *Service) state() (*state, error) {
	st := s.current.Load()
	if st == nil {
		return nil, fmt.Errorf("no dataset loaded: %w", constants.ErrDataUnavailable)
	}
	return st, nil
}

// ListLocations returns the sorted locations for the UI dropdowns.
func (s *Service) ListLocations() ([]string, error) {
	st, err := s.state()
	if err != nil {
		return nil, err
	}
	return st.dataset.Locations(), nil
}

// LatestMetricForChoropleth maps iso code to the latest value of one
// metric. Missing stays null in the payload, distinguishable from zero.
// Aggregate rows (continents, income groups) are excluded.
func (s *Service) LatestMetricForChoropleth(metric domain.MetricName) (map[string]domain.Metric, error) {
	if !domain.ValidMetricName(string(metric)) {
		return nil, fmt.Errorf("%q: %w", metric, constants.ErrUnknownMetric)
	}

	st, err := s.state()
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.Metric)
	for _, snapshot := range st.index.AllSnapshots() {
		if snapshot.ISOCode == "" || strings.HasPrefix(snapshot.ISOCode, aggregateISOPrefix) {
			continue
		}
		value, _ := snapshot.Latest.Metric(metric)
		out[snapshot.ISOCode] = value
	}

	return out, nil
}

// ComparisonChart returns two rolling series aligned on the union of
// their dates. windowDays<=0 selects the configured default.
func (s *Service) ComparisonChart(ctx context.Context, primary, compare string, metric domain.MetricName, windowDays int) (*domain.Comparison, error) {
	st, err := s.state()
	if err != nil {
		return nil, err
	}

	if windowDays <= 0 {
		windowDays = s.windowDays
	}

	return st.aggregator.Compare(ctx, primary, compare, metric, windowDays)
}

// RollingSeries exposes one location's smoothed metric for the single
// line charts.
func (s *Service) RollingSeries(location string, metric domain.MetricName, windowDays int) (domain.RollingSeries, error) {
	st, err := s.state()
	if err != nil {
		return domain.RollingSeries{}, err
	}

	if windowDays <= 0 {
		windowDays = s.windowDays
	}

	return st.aggregator.RollingAverage(location, metric, windowDays)
}

// KeyMetricsPanel builds the headline payload from the location's
// snapshot; every field is independently nullable.
func (s *Service) KeyMetricsPanel(location string) (*domain.KeyMetricsPanel, error) {
	st, err := s.state()
	if err != nil {
		return nil, err
	}

	snapshot, err := st.index.Snapshot(location)
	if err != nil {
		return nil, err
	}

	return &domain.KeyMetricsPanel{
		Location:        snapshot.Location,
		AsOf:            snapshot.Latest.Date,
		TotalCases:      snapshot.Latest.TotalCases,
		TotalDeaths:     snapshot.Latest.TotalDeaths,
		FullyVaccinated: snapshot.Latest.PeopleFullyVaccinated,
		VaccinationRate: snapshot.Latest.PeopleFullyVaccinatedPerHundred,
	}, nil
}
