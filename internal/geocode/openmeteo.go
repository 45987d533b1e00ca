package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// OpenMeteoAPIURL is the Open-Meteo geocoding JSON API endpoint.
	OpenMeteoAPIURL = "https://geocoding-api.open-meteo.com/v1/search"

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout = 10 * time.Second
)

// OpenMeteoProvider queries the Open-Meteo geocoding API.
type OpenMeteoProvider struct {
	client  *http.Client
	baseURL string
}

// NewOpenMeteoProvider creates a new Open-Meteo API client. An empty
// baseURL uses the public endpoint.
func NewOpenMeteoProvider(baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = OpenMeteoAPIURL
	}
	return &OpenMeteoProvider{
		client: &http.Client{
			Timeout: RequestTimeout,
		},
		baseURL: baseURL,
	}
}

// Name implements Provider.
func (p *OpenMeteoProvider) Name() string {
	return "open-meteo"
}

// Lookup implements Provider. It asks for a single best match and does
// not retry; callers decide what to do on failure.
func (p *OpenMeteoProvider) Lookup(ctx context.Context, query string) (Place, error) {
	params := url.Values{}
	params.Set("name", query)
	params.Set("count", "1")
	params.Set("format", "json")

	reqURL := p.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Place{}, fmt.Errorf("geocode request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Place{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Place{}, fmt.Errorf("geocode returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Place{}, fmt.Errorf("failed to read response: %w", err)
	}

	return parseOpenMeteoResponse(body)
}

// openMeteoResponse represents the JSON API response.
type openMeteoResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

// parseOpenMeteoResponse extracts the first result from the API
// response. The API reports a timezone name rather than an offset, so
// the civil offset is estimated from longitude.
func parseOpenMeteoResponse(body []byte) (Place, error) {
	var resp openMeteoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Place{}, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if len(resp.Results) == 0 {
		return Place{}, ErrNoResults
	}

	r := resp.Results[0]
	return Place{
		Name:      r.Name,
		Country:   r.Country,
		LatDeg:    r.Latitude,
		LonDeg:    r.Longitude,
		UTCOffset: EstimateUTCOffset(r.Longitude),
	}, nil
}
