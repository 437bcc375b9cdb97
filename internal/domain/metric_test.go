package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricJSONNullVsZero(t *testing.T) {
	missing, err := json.Marshal(Metric{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(missing))

	zero, err := json.Marshal(SomeMetric(0))
	require.NoError(t, err)
	assert.Equal(t, "0", string(zero))

	var decoded Metric
	require.NoError(t, json.Unmarshal([]byte("null"), &decoded))
	assert.False(t, decoded.Valid)

	require.NoError(t, json.Unmarshal([]byte("7.5"), &decoded))
	assert.True(t, decoded.Valid)
	assert.Equal(t, 7.5, decoded.Value)
}

func TestDayJSON(t *testing.T) {
	day, err := ParseDay("2023-01-10")
	require.NoError(t, err)

	raw, err := json.Marshal(day)
	require.NoError(t, err)
	assert.Equal(t, `"2023-01-10"`, string(raw))

	var decoded Day
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Equal(day.Time))
}

func TestRecordHasAny(t *testing.T) {
	record := &Record{Date: NewDay(time.Now())}
	assert.False(t, record.HasAny(KeyMetrics()))

	for _, metric := range KeyMetrics() {
		r := &Record{}
		require.True(t, r.SetMetric(metric, SomeMetric(1)))
		assert.True(t, r.HasAny(KeyMetrics()), "metric %s should qualify on its own", metric)
	}

	// non-key metrics never qualify
	r := &Record{NewCases: SomeMetric(10), NewDeaths: SomeMetric(1)}
	assert.False(t, r.HasAny(KeyMetrics()))
}

func TestDatasetSortsSeriesAndLocations(t *testing.T) {
	day := func(s string) Day {
		d, err := ParseDay(s)
		require.NoError(t, err)
		return d
	}

	ds := NewDataset(map[string][]*Record{
		"Norway": {
			{Location: "Norway", Date: day("2023-01-03")},
			{Location: "Norway", Date: day("2023-01-01")},
			{Location: "Norway", Date: day("2023-01-02")},
		},
		"Canada": {
			{Location: "Canada", Date: day("2023-01-01")},
		},
	}, 2)

	assert.Equal(t, []string{"Canada", "Norway"}, ds.Locations())
	assert.Equal(t, 2, ds.DroppedRows())

	series, ok := ds.Series("Norway")
	require.True(t, ok)
	require.Len(t, series, 3)
	for i := 1; i < len(series); i++ {
		assert.True(t, series[i-1].Date.Before(series[i].Date.Time))
	}
}
