package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ougirez/coviddash/internal/domain"
	"github.com/ougirez/coviddash/internal/pkg/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultWindowDays is the trailing window used when the caller does not
// ask for another one.
const DefaultWindowDays = 7

// Aggregator computes missing-aware trailing-window averages over the
// indexed series.
type Aggregator struct {
	index *Index
}

func NewAggregator(index *Index) *Aggregator {
	return &Aggregator{index: index}
}

// RollingAverage averages the metric over the trailing windowDays
// calendar days ending at each date of the location's series. Missing
// values are excluded from both the sum and the divisor; a window with
// nothing in it yields a missing point, not zero. A day absent from the
// series entirely counts as a missing day inside later windows, which
// keeps output dates aligned with input dates.
func (a *Aggregator) RollingAverage(location string, metric domain.MetricName, windowDays int) (domain.RollingSeries, error) {
	if windowDays < 1 {
		return domain.RollingSeries{}, constants.NewCodedError(http.StatusBadRequest, fmt.Sprintf("window must be at least 1 day, got %d", windowDays))
	}
	if !domain.ValidMetricName(string(metric)) {
		return domain.RollingSeries{}, fmt.Errorf("%q: %w", metric, constants.ErrUnknownMetric)
	}

	series, err := a.index.Series(location)
	if err != nil {
		return domain.RollingSeries{}, err
	}

	byDate := make(map[time.Time]*domain.Record, len(series))
	for _, record := range series {
		byDate[record.Date.Time] = record
	}

	out := domain.RollingSeries{
		Location:   location,
		Metric:     metric,
		WindowDays: windowDays,
		Points:     make([]domain.RollingPoint, 0, len(series)),
	}
	for _, record := range series {
		sum := decimal.Zero
		count := 0
		for back := 0; back < windowDays; back++ {
			day := record.Date.AddDays(-back)
			windowed, ok := byDate[day.Time]
			if !ok {
				continue
			}
			value, _ := windowed.Metric(metric)
			if !value.Valid {
				continue
			}
			sum = sum.Add(decimal.NewFromFloat(value.Value))
			count++
		}

		point := domain.RollingPoint{Date: record.Date}
		if count > 0 {
			avg := sum.Div(decimal.NewFromInt(int64(count))).Round(3)
			point.Value = domain.SomeMetric(avg.InexactFloat64())
		}
		out.Points = append(out.Points, point)
	}

	return out, nil
}

// Compare computes the rolling series for both locations and aligns them
// on the union of their dates; a date one location lacks becomes a
// missing point for it, never zero.
func (a *Aggregator) Compare(ctx context.Context, primary, compare string, metric domain.MetricName, windowDays int) (*domain.Comparison, error) {
	var first, second domain.RollingSeries

	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		first, err = a.RollingAverage(primary, metric, windowDays)
		if err != nil {
			return fmt.Errorf("rolling average for %q: %w", primary, err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		second, err = a.RollingAverage(compare, metric, windowDays)
		if err != nil {
			return fmt.Errorf("rolling average for %q: %w", compare, err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	union := dateUnion(first.Points, second.Points)
	first.Points = alignPoints(first.Points, union)
	second.Points = alignPoints(second.Points, union)

	return &domain.Comparison{Primary: first, Compare: second}, nil
}

func dateUnion(a, b []domain.RollingPoint) []domain.Day {
	union := make([]domain.Day, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b) || (i < len(a) && a[i].Date.Before(b[j].Date.Time)):
			union = append(union, a[i].Date)
			i++
		case i >= len(a) || b[j].Date.Before(a[i].Date.Time):
			union = append(union, b[j].Date)
			j++
		default:
			union = append(union, a[i].Date)
			i++
			j++
		}
	}
	return union
}

func alignPoints(points []domain.RollingPoint, union []domain.Day) []domain.RollingPoint {
	byDate := make(map[time.Time]domain.Metric, len(points))
	for _, p := range points {
		byDate[p.Date.Time] = p.Value
	}

	aligned := make([]domain.RollingPoint, 0, len(union))
	for _, day := range union {
		aligned = append(aligned, domain.RollingPoint{Date: day, Value: byDate[day.Time]})
	}
	return aligned
}
