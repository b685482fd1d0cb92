package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"weather-lookup/internal/httpclient"
)

// ErrMissingAPIKey is returned before any network call when the geocoding
// provider key is not configured.
var ErrMissingAPIKey = errors.New("geocoding api key is not configured")

// Client queries the geocoding provider.
type Client struct {
	apiKey  string
	baseURL string
	httpCfg httpclient.Config
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a geocoding client sharing the given HTTP client.
func NewClient(client *http.Client, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api/geocode/json",
		httpCfg: httpclient.Config{
			Client:  client,
			Backoff: httpclient.DefaultBackoff(),
		},
		circuit: httpclient.NewBreaker("geocode"),
	}
}

// Search resolves a free-text query to candidate locations. Zero results is
// a failure (*Error), not an empty success.
func (c *Client) Search(ctx context.Context, query string) ([]Hit, error) {
	return c.lookup(ctx, url.Values{"address": {query}})
}

// Reverse resolves a coordinate pair to candidate addresses.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) ([]Hit, error) {
	latlng := strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
	return c.lookup(ctx, url.Values{"latlng": {latlng}})
}

func (c *Client) lookup(ctx context.Context, params url.Values) ([]Hit, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		for k, vs := range params {
			for _, v := range vs {
				values.Add(k, v)
			}
		}
		values.Set("key", c.apiKey)

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpclient.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw rawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding geocoding response: %w", err)
	}

	return normalize(raw)
}
