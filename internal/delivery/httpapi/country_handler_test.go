package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/LavaJover/shvark-country-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCountryUsecase struct {
	countries []*domain.Country
	listErr   error
	getErr    error
	deleteErr error
	status    *domain.ServiceStatus
}

func (f *fakeCountryUsecase) List(params map[string][]string) ([]*domain.Country, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.countries, nil
}

func (f *fakeCountryUsecase) GetByName(name string) (*domain.Country, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, country := range f.countries {
		if country.Name == name {
			return country, nil
		}
	}
	return nil, domain.ErrCountryNotFound
}

func (f *fakeCountryUsecase) DeleteByName(name string) error {
	return f.deleteErr
}

func (f *fakeCountryUsecase) Status() (*domain.ServiceStatus, error) {
	return f.status, nil
}

type fakeRefreshUsecase struct {
	result *domain.RefreshResult
	err    error
}

func (f *fakeRefreshUsecase) Refresh(ctx context.Context) (*domain.RefreshResult, error) {
	return f.result, f.err
}

func serve(t *testing.T, handler *CountryHandler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	NewRouter(handler).ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
	return recorder
}

func testCountry() *domain.Country {
	capital := "Paris"
	region := "Europe"
	code := "EUR"
	rate := decimal.RequireFromString("0.9")
	gdpValue := decimal.RequireFromString("111675000000.25")
	flag := "https://example.com/fr.svg"
	return &domain.Country{
		ID:              "9f4b41e2-9f08-40cc-a1a9-0687eb85ac2e",
		Name:            "France",
		Capital:         &capital,
		Region:          &region,
		Population:      67000000,
		CurrencyCode:    &code,
		ExchangeRate:    &rate,
		EstimatedGDP:    &gdpValue,
		FlagURL:         &flag,
		LastRefreshedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRefreshEndpointSuccess(t *testing.T) {
	handler := NewCountryHandler(&fakeCountryUsecase{}, &fakeRefreshUsecase{
		result: &domain.RefreshResult{Processed: 250, Created: 10, Updated: 240, Errors: []string{"Brokenland: boom"}},
	}, "")

	recorder := serve(t, handler, http.MethodPost, "/countries/refresh")

	require.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Countries data refreshed successfully", body["message"])
	assert.EqualValues(t, 250, body["countries_processed"])
	assert.EqualValues(t, 10, body["countries_created"])
	assert.EqualValues(t, 240, body["countries_updated"])
	assert.EqualValues(t, 1, body["errors"])
}

func TestRefreshEndpointSourceUnavailable(t *testing.T) {
	handler := NewCountryHandler(&fakeCountryUsecase{}, &fakeRefreshUsecase{
		err: &domain.ExternalSourceError{Source: "exchange rates API", Reason: "timeout"},
	}, "")

	recorder := serve(t, handler, http.MethodPost, "/countries/refresh")

	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "External data source unavailable", body["error"])
	assert.Contains(t, body["details"], "timeout")
}

func TestRefreshEndpointInternalError(t *testing.T) {
	handler := NewCountryHandler(&fakeCountryUsecase{}, &fakeRefreshUsecase{
		err: errors.New("db connection lost"),
	}, "")

	recorder := serve(t, handler, http.MethodPost, "/countries/refresh")

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
}

func TestListEndpoint(t *testing.T) {
	handler := NewCountryHandler(&fakeCountryUsecase{countries: []*domain.Country{testCountry()}}, &fakeRefreshUsecase{}, "")

	recorder := serve(t, handler, http.MethodGet, "/countries")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var countries []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &countries))
	require.Len(t, countries, 1)
	assert.Equal(t, "France", countries[0]["name"])
	assert.Equal(t, "EUR", countries[0]["currency_code"])

	// decimals go out as JSON numbers, not strings
	assert.Contains(t, recorder.Body.String(), `"exchange_rate":0.9`)
	assert.Contains(t, recorder.Body.String(), `"estimated_gdp":111675000000.25`)
}

func TestListEndpointInvalidParams(t *testing.T) {
	handler := NewCountryHandler(&fakeCountryUsecase{
		listErr: &domain.InvalidQueryError{
			Invalid: []string{"bogus"},
			Valid:   []string{"region", "currency", "name", "sort"},
		},
	}, &fakeRefreshUsecase{}, "")

	recorder := serve(t, handler, http.MethodGet, "/countries?bogus=1")

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var body struct {
		Error             string   `json:"error"`
		InvalidParameters []string `json:"invalid_parameters"`
		ValidParameters   []string `json:"valid_parameters"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Invalid query parameters", body.Error)
	assert.Equal(t, []string{"bogus"}, body.InvalidParameters)
	assert.Equal(t, []string{"region", "currency", "name", "sort"}, body.ValidParameters)
}

func TestGetEndpoint(t *testing.T) {
	handler := NewCountryHandler(&fakeCountryUsecase{countries: []*domain.Country{testCountry()}}, &fakeRefreshUsecase{}, "")

	recorder := serve(t, handler, http.MethodGet, "/countries/France")

	require.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "France", body["name"])
	assert.Equal(t, "9f4b41e2-9f08-40cc-a1a9-0687eb85ac2e", body["id"])
}

func TestGetEndpointNotFound(t *testing.T) {
	handler := NewCountryHandler(&fakeCountryUsecase{}, &fakeRefreshUsecase{}, "")

	recorder := serve(t, handler, http.MethodGet, "/countries/Narnia")

	require.Equal(t, http.StatusNotFound, recorder.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Country not found", body["error"])
}

func TestDeleteEndpoint(t *testing.T) {
	handler := NewCountryHandler(&fakeCountryUsecase{}, &fakeRefreshUsecase{}, "")

	recorder := serve(t, handler, http.MethodDelete, "/countries/France")

	require.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Country France deleted successfully", body["message"])
}

func TestDeleteEndpointNotFound(t *testing.T) {
	handler := NewCountryHandler(&fakeCountryUsecase{deleteErr: domain.ErrCountryNotFound}, &fakeRefreshUsecase{}, "")

	recorder := serve(t, handler, http.MethodDelete, "/countries/Narnia")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestStatusEndpoint(t *testing.T) {
	marker := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	handler := NewCountryHandler(&fakeCountryUsecase{
		status: &domain.ServiceStatus{TotalCountries: 250, LastRefreshedAt: &marker},
	}, &fakeRefreshUsecase{}, "")

	recorder := serve(t, handler, http.MethodGet, "/status")

	require.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.EqualValues(t, 250, body["total_countries"])
	assert.NotNil(t, body["last_refreshed_at"])
}

func TestStatusEndpointNeverRefreshed(t *testing.T) {
	handler := NewCountryHandler(&fakeCountryUsecase{
		status: &domain.ServiceStatus{TotalCountries: 0},
	}, &fakeRefreshUsecase{}, "")

	recorder := serve(t, handler, http.MethodGet, "/status")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"last_refreshed_at":null`)
}

func TestImageEndpoint(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "summary.png")
	require.NoError(t, os.WriteFile(imagePath, []byte("\x89PNG\r\n\x1a\nfake"), 0o644))

	handler := NewCountryHandler(&fakeCountryUsecase{}, &fakeRefreshUsecase{}, imagePath)

	recorder := serve(t, handler, http.MethodGet, "/countries/image")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	assert.NotEmpty(t, recorder.Body.Bytes())
}

func TestImageEndpointNotGenerated(t *testing.T) {
	handler := NewCountryHandler(&fakeCountryUsecase{}, &fakeRefreshUsecase{}, filepath.Join(t.TempDir(), "summary.png"))

	recorder := serve(t, handler, http.MethodGet, "/countries/image")

	require.Equal(t, http.StatusNotFound, recorder.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Summary image not found", body["error"])
}

func TestHealthz(t *testing.T) {
	handler := NewCountryHandler(&fakeCountryUsecase{}, &fakeRefreshUsecase{}, "")

	recorder := serve(t, handler, http.MethodGet, "/healthz")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", recorder.Body.String())
}
