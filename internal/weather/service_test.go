package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"weather-lookup/internal/geocode"
)

type fakeProvider struct {
	current       WeatherSummary
	currentErr    error
	forecast      ForecastBundle
	forecastErr   error
	forecastCalls int
}

func (f *fakeProvider) CurrentConditions(ctx context.Context, lat, lng float64) (WeatherSummary, error) {
	return f.current, f.currentErr
}

func (f *fakeProvider) Forecast(ctx context.Context, lat, lng float64, days int) (ForecastBundle, error) {
	f.forecastCalls++
	if f.forecastErr != nil {
		return ForecastBundle{}, f.forecastErr
	}
	bundle := f.forecast
	if len(bundle.Forecast) == 0 {
		bundle = fiveDayBundle(days)
	}
	return bundle, nil
}

func fiveDayBundle(days int) ForecastBundle {
	bundle := ForecastBundle{TimeZoneID: "America/Los_Angeles"}
	base := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		bundle.Forecast = append(bundle.Forecast, DailyForecast{
			DateISO:  base.AddDate(0, 0, i).Format(time.RFC3339),
			MaxTempC: 18 + float64(i),
			MinTempC: 9 + float64(i),
		})
	}
	return bundle
}

type fakeGeocoder struct {
	hits []geocode.Hit
	err  error
}

func (f *fakeGeocoder) Search(ctx context.Context, query string) ([]geocode.Hit, error) {
	return f.hits, f.err
}

func (f *fakeGeocoder) Reverse(ctx context.Context, lat, lng float64) ([]geocode.Hit, error) {
	return f.hits, f.err
}

type fakeStore struct {
	records map[uuid.UUID]WeatherRequest
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[uuid.UUID]WeatherRequest)}
}

func (f *fakeStore) Create(ctx context.Context, req *WeatherRequest) error {
	req.ID = uuid.New()
	f.records[req.ID] = *req
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (WeatherRequest, error) {
	req, ok := f.records[id]
	if !ok {
		return WeatherRequest{}, fmt.Errorf("no weather request with this id")
	}
	return req, nil
}

func (f *fakeStore) List(ctx context.Context) ([]WeatherRequest, error) {
	var reqs []WeatherRequest
	for _, req := range f.records {
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (f *fakeStore) Update(ctx context.Context, req *WeatherRequest) error {
	f.records[req.ID] = *req
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.records, id)
	return nil
}

func TestLookupCombinesCurrentAndForecast(t *testing.T) {
	provider := &fakeProvider{
		current: WeatherSummary{ConditionType: "CLEAR", TemperatureC: 17.5},
	}
	svc := NewService(&fakeGeocoder{}, provider, nil)

	result, err := svc.Lookup(context.Background(), 37.77, -122.41, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Current.ConditionType != "CLEAR" {
		t.Fatalf("unexpected current conditions: %+v", result.Current)
	}
	if result.Stats.PeriodDays != 5 {
		t.Fatalf("expected PeriodDays 5, got %d", result.Stats.PeriodDays)
	}
	if result.Stats.MinTempC > result.Stats.AvgTempC || result.Stats.AvgTempC > result.Stats.MaxTempC {
		t.Fatalf("expected min <= avg <= max, got %+v", result.Stats)
	}
}

// If either of the two concurrent fetches fails, the whole lookup fails;
// there is no partial result.
func TestLookupFailsFast(t *testing.T) {
	wantErr := errors.New("forecast unavailable")
	provider := &fakeProvider{forecastErr: wantErr}
	svc := NewService(&fakeGeocoder{}, provider, nil)

	_, err := svc.Lookup(context.Background(), 0, 0, 5)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected forecast error, got %v", err)
	}

	provider = &fakeProvider{currentErr: errors.New("conditions unavailable")}
	svc = NewService(&fakeGeocoder{}, provider, nil)

	if _, err := svc.Lookup(context.Background(), 0, 0, 5); err == nil {
		t.Fatal("expected error when current conditions fetch fails")
	}
}

func TestSearchLocationsRejectsEmptyQuery(t *testing.T) {
	svc := NewService(&fakeGeocoder{}, &fakeProvider{}, nil)

	for _, q := range []string{"", "   "} {
		if _, err := svc.SearchLocations(context.Background(), q); !errors.Is(err, ErrEmptyQuery) {
			t.Fatalf("query %q: expected ErrEmptyQuery, got %v", q, err)
		}
	}
}

// Query -> geocode -> forecast -> stats, end to end over fakes.
func TestLookupScenario(t *testing.T) {
	geocoder := &fakeGeocoder{hits: []geocode.Hit{{
		FormattedAddress: "San Francisco, CA 94103, USA",
		PlaceID:          "ChIJd8kTowl-j4AR8qUaIAQF-lM",
		Location:         geocode.LatLng{Lat: 37.77, Lng: -122.41},
	}}}
	svc := NewService(geocoder, &fakeProvider{}, nil)

	hits, err := svc.SearchLocations(context.Background(), "94103")
	if err != nil {
		t.Fatalf("unexpected geocoding error: %v", err)
	}
	if len(hits) < 1 {
		t.Fatal("expected at least one geocode hit")
	}

	loc := hits[0].Location
	result, err := svc.Lookup(context.Background(), loc.Lat, loc.Lng, 5)
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	if result.Stats.PeriodDays != 5 {
		t.Fatalf("expected PeriodDays 5, got %d", result.Stats.PeriodDays)
	}
	if result.Stats.MinTempC > result.Stats.AvgTempC || result.Stats.AvgTempC > result.Stats.MaxTempC {
		t.Fatalf("expected min <= avg <= max, got %+v", result.Stats)
	}
}

func TestCreateRequestComputesStats(t *testing.T) {
	st := newFakeStore()
	svc := NewService(&fakeGeocoder{}, &fakeProvider{}, st)

	req, err := svc.CreateRequest(context.Background(), SaveRequestInput{
		LocationName: "San Francisco",
		LocationLat:  37.77,
		LocationLng:  -122.41,
		StartDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.ID == uuid.Nil {
		t.Fatal("expected an assigned id")
	}
	if req.MinTempC > req.AvgTempC || req.AvgTempC > req.MaxTempC {
		t.Fatalf("expected min <= avg <= max, got %+v", req)
	}

	var bundle ForecastBundle
	if err := json.Unmarshal(req.WeatherSummary, &bundle); err != nil {
		t.Fatalf("weather summary payload is not a forecast bundle: %v", err)
	}
	if len(bundle.Forecast) != 5 {
		t.Fatalf("expected 5 forecast days in payload, got %d", len(bundle.Forecast))
	}
}

func TestCreateRequestValidation(t *testing.T) {
	svc := NewService(&fakeGeocoder{}, &fakeProvider{}, newFakeStore())

	_, err := svc.CreateRequest(context.Background(), SaveRequestInput{
		LocationName: "Paris",
		StartDate:    time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrBadDateRange) {
		t.Fatalf("expected ErrBadDateRange, got %v", err)
	}

	_, err = svc.CreateRequest(context.Background(), SaveRequestInput{
		LocationName: "  ",
		StartDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestSavedRequestOperationsWithoutStore(t *testing.T) {
	svc := NewService(&fakeGeocoder{}, &fakeProvider{}, nil)

	if _, err := svc.ListRequests(context.Background()); !errors.Is(err, ErrStoreDisabled) {
		t.Fatalf("expected ErrStoreDisabled, got %v", err)
	}
	if err := svc.DeleteRequest(context.Background(), uuid.New()); !errors.Is(err, ErrStoreDisabled) {
		t.Fatalf("expected ErrStoreDisabled, got %v", err)
	}
}

func TestRefreshSavedRequestsUpdatesRecords(t *testing.T) {
	st := newFakeStore()
	provider := &fakeProvider{}
	svc := NewService(&fakeGeocoder{}, provider, st)

	created, err := svc.CreateRequest(context.Background(), SaveRequestInput{
		LocationName: "Berlin",
		LocationLat:  52.52,
		LocationLng:  13.40,
		StartDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Colder data on the next fetch must overwrite the stored stats.
	provider.forecast = ForecastBundle{Forecast: []DailyForecast{
		{DateISO: "2025-06-01T22:00:00Z", MaxTempC: 2, MinTempC: -4},
	}}

	if err := svc.RefreshSavedRequests(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	refreshed, err := st.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshed.MaxTempC != 2 || refreshed.MinTempC != -4 || refreshed.AvgTempC != -1 {
		t.Fatalf("expected refreshed stats, got %+v", refreshed)
	}
	if provider.forecastCalls != 2 {
		t.Fatalf("expected one fetch at create and one at refresh, got %d", provider.forecastCalls)
	}
}

func TestForecastDaysForRange(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		end  time.Time
		want int
	}{
		{start, 1},
		{start.AddDate(0, 0, 4), 5},
		{start.AddDate(0, 0, 30), MaxForecastDays},
	}
	for _, tc := range cases {
		if got := forecastDaysFor(start, tc.end); got != tc.want {
			t.Fatalf("range to %v: expected %d days, got %d", tc.end, tc.want, got)
		}
	}
}
