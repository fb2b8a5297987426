package exchangerates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LavaJover/shvark-country-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRatesSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"success","rates":{"USD":1,"EUR":0.9012345678,"NGN":1600.5}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	rates, err := client.FetchRates(context.Background())

	require.NoError(t, err)
	require.Len(t, rates, 3)
	assert.Equal(t, "1", rates["USD"].String())
	assert.Equal(t, "0.9012345678", rates["EUR"].String())
	assert.Equal(t, "1600.5", rates["NGN"].String())
}

func TestFetchRatesErrorResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"error","error-type":"invalid-key"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchRates(context.Background())

	var sourceErr *domain.ExternalSourceError
	require.ErrorAs(t, err, &sourceErr)
	assert.Equal(t, "exchange rates API", sourceErr.Source)
}

func TestFetchRatesNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchRates(context.Background())

	var sourceErr *domain.ExternalSourceError
	require.ErrorAs(t, err, &sourceErr)
}

func TestFetchRatesConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchRates(context.Background())

	var sourceErr *domain.ExternalSourceError
	require.ErrorAs(t, err, &sourceErr)
}

func TestFetchRatesMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchRates(context.Background())

	var sourceErr *domain.ExternalSourceError
	require.ErrorAs(t, err, &sourceErr)
}
