package weather

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Wind holds normalized wind readings for a point in time.
type Wind struct {
	DirectionDegrees  float64 `json:"directionDegrees"`
	DirectionCardinal string  `json:"directionCardinal"`
	SpeedKph          float64 `json:"speedKph"`
	GustKph           float64 `json:"gustKph"`
}

// WeatherSummary is the fully-populated view of current conditions for one
// coordinate pair. The normalizer never leaves a field unset: numerics
// default to 0, enums/strings to "UNKNOWN"/"Unknown"/empty per field.
type WeatherSummary struct {
	CurrentTimeUTC string `json:"currentTimeUtc"`
	TimeZoneID     string `json:"timeZoneId"`
	IsDaytime      bool   `json:"isDaytime"`

	ConditionType string `json:"conditionType"`
	Description   string `json:"description"`
	IconURL       string `json:"iconUrl"`

	TemperatureC            float64 `json:"temperatureC"`
	FeelsLikeC              float64 `json:"feelsLikeC"`
	UVIndex                 float64 `json:"uvIndex"`
	ThunderstormProbability float64 `json:"thunderstormProbabilityPercent"`
	MaxTempRecentC          float64 `json:"maxTempRecentC"`
	MinTempRecentC          float64 `json:"minTempRecentC"`
	VisibilityKm            float64 `json:"visibilityKm"`

	Wind Wind `json:"wind"`
}

// DisplayDate is the provider-local calendar date of a forecast day. It may
// legitimately diverge from the calendar date of DateISO across a timezone
// boundary.
type DisplayDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// DailyBlock holds the daytime or nighttime half of a forecast day. A block
// the provider omits comes back all-default rather than nil.
type DailyBlock struct {
	Description       string   `json:"description"`
	IconURL           string   `json:"iconUrl"`
	UVIndex           float64  `json:"uvIndex"`
	PrecipPercent     float64  `json:"precipPercent"`
	WindKph           float64  `json:"windKph"`
	WindGustKph       float64  `json:"windGustKph"`
	WindDirCardinal   string   `json:"windDirCardinal"`
	WindDirDegrees    float64  `json:"windDirDegrees"`
	CloudCoverPercent *float64 `json:"cloudCover,omitempty"`
	HumidityPercent   *float64 `json:"humidity,omitempty"`
}

// DailyForecast is one calendar day's outlook. Constructed fresh per fetch,
// never merged across fetches.
type DailyForecast struct {
	DateISO     string      `json:"dateIso"`
	DisplayDate DisplayDate `json:"displayDate"`

	MaxTempC      float64 `json:"maxTempC"`
	MinTempC      float64 `json:"minTempC"`
	FeelsLikeMaxC float64 `json:"feelsLikeMaxC"`
	FeelsLikeMinC float64 `json:"feelsLikeMinC"`
	SunriseTime   string  `json:"sunriseTime"`
	SunsetTime    string  `json:"sunsetTime"`

	Daytime   DailyBlock `json:"daytime"`
	Nighttime DailyBlock `json:"nighttime"`
}

// ForecastBundle is the normalized multi-day forecast for one coordinate
// pair. Day order is the provider's order.
type ForecastBundle struct {
	TimeZoneID string          `json:"timeZoneId"`
	Forecast   []DailyForecast `json:"forecast"`
}

// ForecastTemperatureStats summarizes temperatures over a forecast period.
// PeriodDays == 0 iff the input was empty; in that state every numeric field
// is 0 and both ISO bounds are nil. That is a defined sentinel, not an error.
type ForecastTemperatureStats struct {
	PeriodDays     int     `json:"periodDays"`
	PeriodStartISO *string `json:"periodStartIso"`
	PeriodEndISO   *string `json:"periodEndIso"`
	MinTempC       float64 `json:"minTempC"`
	MaxTempC       float64 `json:"maxTempC"`
	AvgTempC       float64 `json:"avgTempC"`
}

// LookupResult is the combined current + forecast view handed to callers.
type LookupResult struct {
	Current  WeatherSummary           `json:"current"`
	Forecast ForecastBundle           `json:"forecast"`
	Stats    ForecastTemperatureStats `json:"stats"`
}

// WeatherRequest is a user-saved weather query: the location and date range
// the user searched, plus the temperature stats computed at save time and an
// opaque summary payload kept for later display.
type WeatherRequest struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	LocationName string  `gorm:"not null" json:"location_name"`
	LocationLat  float64 `json:"location_lat"`
	LocationLng  float64 `json:"location_lng"`

	StartDate time.Time `gorm:"type:date" json:"start_date"`
	EndDate   time.Time `gorm:"type:date" json:"end_date"`

	AvgTempC float64 `json:"avg_temp_c"`
	MinTempC float64 `json:"min_temp_c"`
	MaxTempC float64 `json:"max_temp_c"`

	// Raw snapshot of the forecast the stats were computed from.
	WeatherSummary json.RawMessage `gorm:"type:jsonb" json:"weather_summary,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
