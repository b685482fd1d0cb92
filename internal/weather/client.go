package weather

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

// ErrMissingAPIKey is returned before any network call when the weather
// provider key is not configured.
var ErrMissingAPIKey = errors.New("weather api key is not configured")

const (
	// DefaultForecastDays is requested when the caller does not say how many.
	DefaultForecastDays = 5
	// MaxForecastDays is the provider's upper bound on a single request.
	MaxForecastDays = 10
)

// Client fetches current conditions and daily forecasts from the weather
// provider and normalizes the payloads.
type Client struct {
	apiKey  string
	baseURL string
	httpCfg httpclient.Config
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a weather provider client sharing the given HTTP client.
func NewClient(client *http.Client, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://weather.googleapis.com/v1",
		httpCfg: httpclient.Config{
			Client:  client,
			Backoff: httpclient.DefaultBackoff(),
		},
		circuit: httpclient.NewBreaker("weather"),
	}
}

// CurrentConditions fetches and normalizes current conditions for a
// coordinate pair.
func (c *Client) CurrentConditions(ctx context.Context, lat, lng float64) (WeatherSummary, error) {
	if c.apiKey == "" {
		return WeatherSummary{}, ErrMissingAPIKey
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", c.apiKey)
		values.Set("location.latitude", formatCoord(lat))
		values.Set("location.longitude", formatCoord(lng))

		u := fmt.Sprintf("%s/currentConditions:lookup?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpclient.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return WeatherSummary{}, err
	}
	defer resp.Body.Close()

	var raw rawCurrentConditions
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return WeatherSummary{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return normalizeCurrent(raw)
}

// Forecast fetches and normalizes a daily forecast. Days outside 1..10 are
// clamped; zero means the default of 5. The day count the provider actually
// returns is passed through without re-validation.
func (c *Client) Forecast(ctx context.Context, lat, lng float64, days int) (ForecastBundle, error) {
	if c.apiKey == "" {
		return ForecastBundle{}, ErrMissingAPIKey
	}

	days = ClampForecastDays(days)

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", c.apiKey)
		values.Set("location.latitude", formatCoord(lat))
		values.Set("location.longitude", formatCoord(lng))
		values.Set("days", strconv.Itoa(days))

		u := fmt.Sprintf("%s/forecast/days:lookup?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpclient.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return ForecastBundle{}, err
	}
	defer resp.Body.Close()

	var raw rawForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return ForecastBundle{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return normalizeForecast(raw), nil
}

// ClampForecastDays folds a requested day count into the provider's bounds.
func ClampForecastDays(days int) int {
	if days <= 0 {
		return DefaultForecastDays
	}
	if days > MaxForecastDays {
		return MaxForecastDays
	}
	return days
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
