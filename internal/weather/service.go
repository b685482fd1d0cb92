package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"weather-lookup/internal/geocode"
)

// Validation failures reported before any network call is attempted.
var (
	ErrEmptyQuery    = errors.New("location query must not be empty")
	ErrBadDateRange  = errors.New("start date must not be after end date")
	ErrStoreDisabled = errors.New("persistence is not configured")
)

// Provider is the weather data source the service orchestrates.
type Provider interface {
	CurrentConditions(ctx context.Context, lat, lng float64) (WeatherSummary, error)
	Forecast(ctx context.Context, lat, lng float64, days int) (ForecastBundle, error)
}

// Geocoder resolves place queries to coordinates and back.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]geocode.Hit, error)
	Reverse(ctx context.Context, lat, lng float64) ([]geocode.Hit, error)
}

// RequestStore is the contract the relational store must satisfy for saved
// weather requests.
type RequestStore interface {
	Create(ctx context.Context, req *WeatherRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (WeatherRequest, error)
	List(ctx context.Context) ([]WeatherRequest, error)
	Update(ctx context.Context, req *WeatherRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service orchestrates geocoding, weather fetches, aggregation, and saved
// request persistence.
type Service struct {
	geocoder Geocoder
	provider Provider
	store    RequestStore // nil when no database is configured
}

// NewService creates a new Service. store may be nil; saved-request
// operations then fail with ErrStoreDisabled.
func NewService(geocoder Geocoder, provider Provider, store RequestStore) *Service {
	return &Service{
		geocoder: geocoder,
		provider: provider,
		store:    store,
	}
}

// SearchLocations resolves a free-text query to candidate locations.
func (s *Service) SearchLocations(ctx context.Context, query string) ([]geocode.Hit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	return s.geocoder.Search(ctx, query)
}

// ReverseGeocode resolves a coordinate pair to candidate addresses.
func (s *Service) ReverseGeocode(ctx context.Context, lat, lng float64) ([]geocode.Hit, error) {
	return s.geocoder.Reverse(ctx, lat, lng)
}

// CurrentConditions fetches normalized current conditions.
func (s *Service) CurrentConditions(ctx context.Context, lat, lng float64) (WeatherSummary, error) {
	return s.provider.CurrentConditions(ctx, lat, lng)
}

// Forecast fetches a normalized daily forecast.
func (s *Service) Forecast(ctx context.Context, lat, lng float64, days int) (ForecastBundle, error) {
	return s.provider.Forecast(ctx, lat, lng, days)
}

// Lookup fetches current conditions and the forecast concurrently, then
// aggregates the forecast temperatures. The two fetches are independent;
// if either fails the whole lookup fails, with no partial result.
func (s *Service) Lookup(ctx context.Context, lat, lng float64, days int) (LookupResult, error) {
	var (
		wg          sync.WaitGroup
		current     WeatherSummary
		forecast    ForecastBundle
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = s.provider.CurrentConditions(ctx, lat, lng)
	}()
	go func() {
		defer wg.Done()
		forecast, forecastErr = s.provider.Forecast(ctx, lat, lng, days)
	}()
	wg.Wait()

	if currentErr != nil {
		return LookupResult{}, currentErr
	}
	if forecastErr != nil {
		return LookupResult{}, forecastErr
	}

	return LookupResult{
		Current:  current,
		Forecast: forecast,
		Stats:    ComputeBundleTemperatureStats(forecast),
	}, nil
}

// SaveRequestInput carries the user-supplied fields of a saved request.
type SaveRequestInput struct {
	LocationName string
	LocationLat  float64
	LocationLng  float64
	StartDate    time.Time
	EndDate      time.Time
}

func (in SaveRequestInput) validate() error {
	if strings.TrimSpace(in.LocationName) == "" {
		return ErrEmptyQuery
	}
	if in.StartDate.After(in.EndDate) {
		return ErrBadDateRange
	}
	return nil
}

// forecastDaysFor maps the saved date range onto a forecast day count,
// clamped to what the provider can serve.
func forecastDaysFor(start, end time.Time) int {
	span := int(end.Sub(start).Hours()/24) + 1
	return ClampForecastDays(span)
}

// CreateRequest validates the input, fetches a forecast covering the
// requested range, computes the temperature stats, and persists the record.
func (s *Service) CreateRequest(ctx context.Context, in SaveRequestInput) (WeatherRequest, error) {
	if s.store == nil {
		return WeatherRequest{}, ErrStoreDisabled
	}
	if err := in.validate(); err != nil {
		return WeatherRequest{}, err
	}

	req := WeatherRequest{
		LocationName: in.LocationName,
		LocationLat:  in.LocationLat,
		LocationLng:  in.LocationLng,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
	}
	if err := s.fillWeather(ctx, &req); err != nil {
		return WeatherRequest{}, err
	}

	if err := s.store.Create(ctx, &req); err != nil {
		return WeatherRequest{}, fmt.Errorf("saving weather request: %w", err)
	}
	return req, nil
}

// GetRequest returns one saved request by id.
func (s *Service) GetRequest(ctx context.Context, id uuid.UUID) (WeatherRequest, error) {
	if s.store == nil {
		return WeatherRequest{}, ErrStoreDisabled
	}
	return s.store.GetByID(ctx, id)
}

// ListRequests returns all saved requests.
func (s *Service) ListRequests(ctx context.Context) ([]WeatherRequest, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}
	return s.store.List(ctx)
}

// UpdateRequest replaces the user-supplied fields of a saved request and
// recomputes its weather data.
func (s *Service) UpdateRequest(ctx context.Context, id uuid.UUID, in SaveRequestInput) (WeatherRequest, error) {
	if s.store == nil {
		return WeatherRequest{}, ErrStoreDisabled
	}
	if err := in.validate(); err != nil {
		return WeatherRequest{}, err
	}

	req, err := s.store.GetByID(ctx, id)
	if err != nil {
		return WeatherRequest{}, err
	}

	req.LocationName = in.LocationName
	req.LocationLat = in.LocationLat
	req.LocationLng = in.LocationLng
	req.StartDate = in.StartDate
	req.EndDate = in.EndDate
	if err := s.fillWeather(ctx, &req); err != nil {
		return WeatherRequest{}, err
	}

	if err := s.store.Update(ctx, &req); err != nil {
		return WeatherRequest{}, fmt.Errorf("updating weather request: %w", err)
	}
	return req, nil
}

// DeleteRequest removes a saved request.
func (s *Service) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	if s.store == nil {
		return ErrStoreDisabled
	}
	return s.store.Delete(ctx, id)
}

// RefreshSavedRequests re-fetches weather for every saved request and
// updates the stored stats and summary payload. Per-record failures are
// logged and skipped; a stale record is better than a destroyed one.
func (s *Service) RefreshSavedRequests(ctx context.Context) error {
	if s.store == nil {
		return ErrStoreDisabled
	}

	reqs, err := s.store.List(ctx)
	if err != nil {
		return err
	}

	for i := range reqs {
		req := reqs[i]
		if err := s.fillWeather(ctx, &req); err != nil {
			log.Printf("refresh failed for request %s (%s): %v", req.ID, req.LocationName, err)
			continue
		}
		if err := s.store.Update(ctx, &req); err != nil {
			log.Printf("refresh update failed for request %s: %v", req.ID, err)
		}
	}
	return nil
}

// fillWeather fetches the forecast for the request's range and writes the
// computed stats and summary payload into the record.
func (s *Service) fillWeather(ctx context.Context, req *WeatherRequest) error {
	days := forecastDaysFor(req.StartDate, req.EndDate)
	bundle, err := s.provider.Forecast(ctx, req.LocationLat, req.LocationLng, days)
	if err != nil {
		return err
	}

	stats := ComputeBundleTemperatureStats(bundle)
	req.AvgTempC = stats.AvgTempC
	req.MinTempC = stats.MinTempC
	req.MaxTempC = stats.MaxTempC

	payload, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("encoding weather summary: %w", err)
	}
	req.WeatherSummary = payload
	return nil
}
