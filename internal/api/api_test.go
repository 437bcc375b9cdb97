package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ougirez/coviddash/internal/domain"
	"github.com/ougirez/coviddash/internal/pkg/constants"
	"github.com/ougirez/coviddash/internal/pkg/utils"
	"github.com/ougirez/coviddash/internal/service/dataset"
	"github.com/ougirez/coviddash/internal/service/fetcher"
	"github.com/ougirez/coviddash/internal/service/query"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureCSV = "iso_code,location,date,total_cases,total_deaths,new_cases,new_deaths," +
	"people_fully_vaccinated,people_fully_vaccinated_per_hundred,total_cases_per_million,total_deaths_per_million\n" +
	"NOR,Norway,2023-01-01,100,4,10,1,900,16.6,18500.5,0.74\n" +
	"NOR,Norway,2023-01-02,105,5,5,1,,,,\n" +
	"CAN,Canada,2023-01-01,50,2,1,0,0,0,1200.1,48.2\n"

func testAPIService(t *testing.T) *APIService {
	t.Helper()

	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fixtureCSV))
	}))
	t.Cleanup(source.Close)

	queryService := query.NewQueryService(
		fetcher.NewFetcherService(source.URL, filepath.Join(t.TempDir(), "cache.csv"), time.Second),
		dataset.NewDatasetService(),
		query.Options{},
	)
	require.NoError(t, queryService.Init(context.Background()))

	viper.Set(constants.ViperKeyCORSOrigin, "http://localhost:3000")
	svc, err := NewAPIService(queryService)
	require.NoError(t, err)
	return svc
}

func do(svc *APIService, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	svc.Router().ServeHTTP(rec, req)
	return rec
}

func TestListLocationsEndpoint(t *testing.T) {
	svc := testAPIService(t)

	rec := do(svc, httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var locations []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &locations))
	assert.Equal(t, []string{"Canada", "Norway"}, locations)
}

func TestMapEndpoint(t *testing.T) {
	svc := testAPIService(t)

	rec := do(svc, httptest.NewRequest(http.MethodGet, "/api/v1/map?metric=total_cases", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Metric string                   `json:"metric"`
		Values map[string]domain.Metric `json:"values"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "total_cases", resp.Metric)
	assert.Equal(t, domain.SomeMetric(105), resp.Values["NOR"])
	assert.Equal(t, domain.SomeMetric(50), resp.Values["CAN"])
}

func TestMapEndpointUnknownMetric(t *testing.T) {
	svc := testAPIService(t)

	rec := do(svc, httptest.NewRequest(http.MethodGet, "/api/v1/map?metric=bogus", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCompareEndpointValidation(t *testing.T) {
	svc := testAPIService(t)

	// missing required params fail before reaching the aggregator
	rec := do(svc, httptest.NewRequest(http.MethodGet, "/api/v1/compare?primary=Norway", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(svc, httptest.NewRequest(http.MethodGet,
		"/api/v1/compare?primary=Norway&compare=Canada&metric=new_cases&window=7", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var comparison domain.Comparison
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comparison))
	assert.Equal(t, "Norway", comparison.Primary.Location)
	assert.Equal(t, "Canada", comparison.Compare.Location)
	require.Len(t, comparison.Primary.Points, 2)
	assert.False(t, comparison.Compare.Points[1].Value.Valid)
}

func TestKeyMetricsEndpointNotFound(t *testing.T) {
	svc := testAPIService(t)

	rec := do(svc, httptest.NewRequest(http.MethodGet, "/api/v1/countries/Utopia/key-metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestKeyMetricsEndpoint(t *testing.T) {
	svc := testAPIService(t)

	rec := do(svc, httptest.NewRequest(http.MethodGet, "/api/v1/countries/Norway/key-metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var panel domain.KeyMetricsPanel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &panel))
	assert.Equal(t, "Norway", panel.Location)
	assert.Equal(t, "2023-01-02", panel.AsOf.String())
	assert.Equal(t, domain.SomeMetric(105), panel.TotalCases)
	assert.False(t, panel.VaccinationRate.Valid)
}

func TestReloadEndpointAuth(t *testing.T) {
	svc := testAPIService(t)

	viper.Set(constants.ViperSecretKey, "s3cret")
	viper.Set(constants.ViperSigningKey, "signing-key")

	// no cookie
	rec := do(svc, httptest.NewRequest(http.MethodPost, "/api/v1/admin/reload", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// wrong secret inside a valid token
	bad, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{Secret: "wrong"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reload", nil)
	req.AddCookie(&http.Cookie{Name: constants.CookieKeySecretToken, Value: bad})
	assert.Equal(t, http.StatusUnauthorized, do(svc, req).Code)

	// proper token reloads
	good, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{Secret: "s3cret"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/reload", nil)
	req.AddCookie(&http.Cookie{Name: constants.CookieKeySecretToken, Value: good})
	assert.Equal(t, http.StatusOK, do(svc, req).Code)
}

func TestRequestIDHeader(t *testing.T) {
	svc := testAPIService(t)

	rec := do(svc, httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil))
	assert.NotEmpty(t, rec.Header().Get(constants.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil)
	req.Header.Set(constants.HeaderRequestID, "fixed-id")
	assert.Equal(t, "fixed-id", do(svc, req).Header().Get(constants.HeaderRequestID))
}
