package exchangerates

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-country-service/internal/domain"
	"github.com/shopspring/decimal"
)

const fetchTimeout = 30 * time.Second

const sourceName = "exchange rates API"

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

type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// FetchRates pulls the full currency-code -> rate mapping. The upstream
// payload carries its own result field, so a 200 with result != "success"
// still counts as an unavailable source.
func (c *Client) FetchRates(ctx context.Context) (domain.Rates, error) {
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

	var ratesResp ratesResponse
	if err := json.Unmarshal(responseBodyBytes, &ratesResp); err != nil {
		return nil, &domain.ExternalSourceError{Source: sourceName, Reason: "failed to decode response", Err: err}
	}
	if ratesResp.Result != "success" {
		return nil, &domain.ExternalSourceError{Source: sourceName, Reason: "API returned error result"}
	}

	rates := make(domain.Rates, len(ratesResp.Rates))
	for code, rate := range ratesResp.Rates {
		rates[code] = decimal.NewFromFloat(rate).Round(10)
	}

	return rates, nil
}
