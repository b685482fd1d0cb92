// Package store persists saved weather requests in a relational database
// via GORM.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"weather-lookup/internal/weather"
)

// ErrNotFound is returned when no saved request exists for the given id.
var ErrNotFound = errors.New("no weather request with this id")

// Store is a GORM-backed implementation of the weather.RequestStore
// contract.
type Store struct {
	db *gorm.DB
}

// New wraps an open database handle and ensures the schema exists.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&weather.WeatherRequest{}); err != nil {
		return nil, fmt.Errorf("migrating weather_requests: %w", err)
	}
	return &Store{db: db}, nil
}

// Create inserts a new request, assigning its id.
func (s *Store) Create(ctx context.Context, req *weather.WeatherRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(req).Error
}

// GetByID returns one saved request.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (weather.WeatherRequest, error) {
	var req weather.WeatherRequest
	err := s.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return weather.WeatherRequest{}, ErrNotFound
	}
	if err != nil {
		return weather.WeatherRequest{}, err
	}
	return req, nil
}

// List returns all saved requests, newest first.
func (s *Store) List(ctx context.Context) ([]weather.WeatherRequest, error) {
	var reqs []weather.WeatherRequest
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// Update saves all fields of an existing request.
func (s *Store) Update(ctx context.Context, req *weather.WeatherRequest) error {
	res := s.db.WithContext(ctx).Model(&weather.WeatherRequest{}).
		Where("id = ?", req.ID).
		Select("*").Omit("id", "created_at").
		Updates(req)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a saved request.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&weather.WeatherRequest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
