package restcountries

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-country-service/internal/domain"
)

const fetchTimeout = 30 * time.Second

const sourceName = "countries API"

type Client struct {
	URL        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		URL:        url,
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

func (c *Client) FetchCountries(ctx context.Context) ([]domain.RawCountry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, &domain.ExternalSourceError{Source: sourceName, Reason: "failed to build request", Err: err}
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.ExternalSourceError{Source: sourceName, Reason: "request failed", Err: err}
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &domain.ExternalSourceError{Source: sourceName, Reason: "failed to read response", Err: err}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &domain.ExternalSourceError{Source: sourceName, Reason: http.StatusText(response.StatusCode)}
	}

	var rawCountries []domain.RawCountry
	if err := json.Unmarshal(responseBodyBytes, &rawCountries); err != nil {
		return nil, &domain.ExternalSourceError{Source: sourceName, Reason: "failed to decode response", Err: err}
	}

	return rawCountries, nil
}
