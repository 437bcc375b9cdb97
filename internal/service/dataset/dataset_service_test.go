package dataset

import (
	"context"
	"strings"
	"testing"

	"github.com/ougirez/coviddash/internal/domain"
	"github.com/ougirez/coviddash/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "iso_code,location,date,total_cases,total_deaths,new_cases,new_deaths," +
	"people_fully_vaccinated,people_fully_vaccinated_per_hundred,total_cases_per_million,total_deaths_per_million"

func csvOf(rows ...string) []byte {
	return []byte(header + "\n" + strings.Join(rows, "\n") + "\n")
}

func TestLoadGroupsAndSorts(t *testing.T) {
	raw := csvOf(
		"NOR,Norway,2023-01-02,105,,5,,,,,",
		"CAN,Canada,2023-01-01,50,2,1,0,1000,30.5,1200.1,48.2",
		"NOR,Norway,2023-01-01,100,4,10,1,,,,",
	)

	ds, err := NewDatasetService().Load(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"Canada", "Norway"}, ds.Locations())
	assert.Zero(t, ds.DroppedRows())

	norway, ok := ds.Series("Norway")
	require.True(t, ok)
	require.Len(t, norway, 2)
	assert.Equal(t, "2023-01-01", norway[0].Date.String())
	assert.Equal(t, "2023-01-02", norway[1].Date.String())
	assert.Equal(t, "NOR", norway[1].ISOCode)
	assert.Equal(t, domain.SomeMetric(105), norway[1].TotalCases)
	// empty cells are missing, not zero
	assert.False(t, norway[1].TotalDeaths.Valid)

	canada, ok := ds.Series("Canada")
	require.True(t, ok)
	assert.Equal(t, domain.SomeMetric(30.5), canada[0].PeopleFullyVaccinatedPerHundred)
}

func TestLoadMissingColumnIsSchemaError(t *testing.T) {
	raw := []byte("iso_code,location,date,total_cases\nNOR,Norway,2023-01-01,1\n")

	_, err := NewDatasetService().Load(context.Background(), raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, constants.ErrSchema)
	assert.Contains(t, err.Error(), "total_deaths")
}

func TestLoadEmptyInputIsSchemaError(t *testing.T) {
	_, err := NewDatasetService().Load(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, constants.ErrSchema)
}

func TestLoadDropsBadDateRows(t *testing.T) {
	raw := csvOf(
		"NOR,Norway,2023-01-01,100,4,10,1,,,,",
		"NOR,Norway,not-a-date,101,4,1,0,,,,",
		"NOR,Norway,2023-01-02,105,5,5,1,,,,",
	)

	ds, err := NewDatasetService().Load(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 1, ds.DroppedRows())
	norway, _ := ds.Series("Norway")
	assert.Len(t, norway, 2)
}

func TestLoadBadNumericCellBecomesMissing(t *testing.T) {
	raw := csvOf("NOR,Norway,2023-01-01,garbage,4,,,,,,")

	ds, err := NewDatasetService().Load(context.Background(), raw)
	require.NoError(t, err)
	assert.Zero(t, ds.DroppedRows())

	norway, _ := ds.Series("Norway")
	require.Len(t, norway, 1)
	assert.False(t, norway[0].TotalCases.Valid)
	assert.Equal(t, domain.SomeMetric(4), norway[0].TotalDeaths)
}

func TestLoadToleratesShortRows(t *testing.T) {
	// truncated row: cells past the end are missing metrics
	raw := csvOf("NOR,Norway,2023-01-01,100")

	ds, err := NewDatasetService().Load(context.Background(), raw)
	require.NoError(t, err)

	norway, _ := ds.Series("Norway")
	require.Len(t, norway, 1)
	assert.Equal(t, domain.SomeMetric(100), norway[0].TotalCases)
	assert.False(t, norway[0].NewCases.Valid)
}
