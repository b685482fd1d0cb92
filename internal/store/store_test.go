package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"weather-lookup/internal/weather"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	st, err := New(db)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return st
}

func sampleRequest() weather.WeatherRequest {
	return weather.WeatherRequest{
		LocationName:   "San Francisco, CA 94103, USA",
		LocationLat:    37.77,
		LocationLng:    -122.41,
		StartDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		AvgTempC:       14.5,
		MinTempC:       9,
		MaxTempC:       20,
		WeatherSummary: []byte(`{"timeZoneId":"America/Los_Angeles","forecast":[]}`),
	}
}

func TestStoreCreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	req := sampleRequest()
	if err := st.Create(ctx, &req); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if req.ID == uuid.Nil {
		t.Fatal("expected an assigned id")
	}

	got, err := st.GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.LocationName != req.LocationName || got.AvgTempC != 14.5 {
		t.Fatalf("unexpected record: %+v", got)
	}
	if string(got.WeatherSummary) != string(req.WeatherSummary) {
		t.Fatalf("summary payload not round-tripped: %s", got.WeatherSummary)
	}
}

func TestStoreGetMissing(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreList(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		req := sampleRequest()
		if err := st.Create(ctx, &req); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	reqs, err := st.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reqs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(reqs))
	}
}

func TestStoreUpdate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	req := sampleRequest()
	if err := st.Create(ctx, &req); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	req.LocationName = "Oakland, CA, USA"
	req.AvgTempC = 0 // zero values must be persisted too
	if err := st.Update(ctx, &req); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := st.GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.LocationName != "Oakland, CA, USA" || got.AvgTempC != 0 {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestStoreUpdateMissing(t *testing.T) {
	st := newTestStore(t)

	req := sampleRequest()
	req.ID = uuid.New()
	if err := st.Update(context.Background(), &req); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	req := sampleRequest()
	if err := st.Create(ctx, &req); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := st.Delete(ctx, req.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := st.GetByID(ctx, req.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := st.Delete(ctx, req.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}
