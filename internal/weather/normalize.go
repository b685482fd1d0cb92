package weather

import (
	"errors"
)

// ErrInvalidResponse reports a provider payload that is missing a
// structurally required field. Distinct from a transport-level failure: the
// HTTP call succeeded but the contract was violated.
var ErrInvalidResponse = errors.New("invalid provider response")

// Raw payload schema for the weather provider. Every field is optional;
// normalization substitutes type-appropriate defaults for whatever is
// missing, so downstream code never sees a nil.

type rawLocalizedText struct {
	Text *string `json:"text"`
}

type rawCondition struct {
	Type        *string           `json:"type"`
	Description *rawLocalizedText `json:"description"`
	IconBaseURI *string           `json:"iconBaseUri"`
}

type rawDegrees struct {
	Degrees *float64 `json:"degrees"`
}

type rawQuantity struct {
	Value *float64 `json:"value"`
}

type rawWindDirection struct {
	Degrees  *float64 `json:"degrees"`
	Cardinal *string  `json:"cardinal"`
}

type rawWind struct {
	Direction *rawWindDirection `json:"direction"`
	Speed     *rawQuantity      `json:"speed"`
	Gust      *rawQuantity      `json:"gust"`
}

type rawTimeZone struct {
	ID *string `json:"id"`
}

type rawConditionsHistory struct {
	MaxTemperature *rawDegrees `json:"maxTemperature"`
	MinTemperature *rawDegrees `json:"minTemperature"`
}

type rawVisibility struct {
	Distance *float64 `json:"distance"`
}

type rawCurrentConditions struct {
	CurrentTime             *string               `json:"currentTime"`
	TimeZone                *rawTimeZone          `json:"timeZone"`
	IsDaytime               *bool                 `json:"isDaytime"`
	WeatherCondition        *rawCondition         `json:"weatherCondition"`
	Temperature             *rawDegrees           `json:"temperature"`
	FeelsLikeTemperature    *rawDegrees           `json:"feelsLikeTemperature"`
	UVIndex                 *float64              `json:"uvIndex"`
	ThunderstormProbability *float64              `json:"thunderstormProbability"`
	CurrentHistory          *rawConditionsHistory `json:"currentConditionsHistory"`
	Visibility              *rawVisibility        `json:"visibility"`
	Wind                    *rawWind              `json:"wind"`
}

type rawInterval struct {
	StartTime *string `json:"startTime"`
}

type rawDisplayDate struct {
	Year  *int `json:"year"`
	Month *int `json:"month"`
	Day   *int `json:"day"`
}

type rawProbability struct {
	Percent *float64 `json:"percent"`
}

type rawPrecipitation struct {
	Probability *rawProbability `json:"probability"`
}

type rawForecastBlock struct {
	WeatherCondition *rawCondition     `json:"weatherCondition"`
	UVIndex          *float64          `json:"uvIndex"`
	Precipitation    *rawPrecipitation `json:"precipitation"`
	Wind             *rawWind          `json:"wind"`
	CloudCover       *float64          `json:"cloudCover"`
	RelativeHumidity *float64          `json:"relativeHumidity"`
}

type rawSunEvents struct {
	SunriseTime *string `json:"sunriseTime"`
	SunsetTime  *string `json:"sunsetTime"`
}

type rawForecastDay struct {
	Interval                *rawInterval      `json:"interval"`
	DisplayDate             *rawDisplayDate   `json:"displayDate"`
	MaxTemperature          *rawDegrees       `json:"maxTemperature"`
	MinTemperature          *rawDegrees       `json:"minTemperature"`
	FeelsLikeMaxTemperature *rawDegrees       `json:"feelsLikeMaxTemperature"`
	FeelsLikeMinTemperature *rawDegrees       `json:"feelsLikeMinTemperature"`
	SunEvents               *rawSunEvents     `json:"sunEvents"`
	DaytimeForecast         *rawForecastBlock `json:"daytimeForecast"`
	NighttimeForecast       *rawForecastBlock `json:"nighttimeForecast"`
}

type rawForecastResponse struct {
	TimeZone     *rawTimeZone     `json:"timeZone"`
	ForecastDays []rawForecastDay `json:"forecastDays"`
}

// Default-fill helpers. These are the whole normalization policy: a missing
// link anywhere in a path yields the type's default, never a panic or error.

func floatOr(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}

func stringOr(p *string, def string) string {
	if p != nil {
		return *p
	}
	return def
}

func boolOr(p *bool) bool {
	return p != nil && *p
}

func degreesOr(d *rawDegrees) float64 {
	if d == nil {
		return 0
	}
	return floatOr(d.Degrees, 0)
}

func quantityOr(q *rawQuantity) float64 {
	if q == nil {
		return 0
	}
	return floatOr(q.Value, 0)
}

// iconURL builds the icon URL from the provider base URI. A missing base is
// an empty URL, never an error.
func iconURL(c *rawCondition) string {
	if c == nil || c.IconBaseURI == nil || *c.IconBaseURI == "" {
		return ""
	}
	return *c.IconBaseURI + ".png"
}

func conditionDescription(c *rawCondition) string {
	if c == nil || c.Description == nil {
		return "Unknown"
	}
	return stringOr(c.Description.Text, "Unknown")
}

func normalizeWind(w *rawWind) Wind {
	out := Wind{DirectionCardinal: "UNKNOWN"}
	if w == nil {
		return out
	}
	if w.Direction != nil {
		out.DirectionDegrees = floatOr(w.Direction.Degrees, 0)
		out.DirectionCardinal = stringOr(w.Direction.Cardinal, "UNKNOWN")
	}
	out.SpeedKph = quantityOr(w.Speed)
	out.GustKph = quantityOr(w.Gust)
	return out
}

// normalizeCurrent converts a raw current-conditions payload into a fully
// populated WeatherSummary. The only hard requirement is the top-level
// condition object; its absence means the provider broke its contract.
func normalizeCurrent(raw rawCurrentConditions) (WeatherSummary, error) {
	if raw.WeatherCondition == nil {
		return WeatherSummary{}, ErrInvalidResponse
	}

	out := WeatherSummary{
		CurrentTimeUTC: stringOr(raw.CurrentTime, ""),
		IsDaytime:      boolOr(raw.IsDaytime),

		ConditionType: stringOr(raw.WeatherCondition.Type, "UNKNOWN"),
		Description:   conditionDescription(raw.WeatherCondition),
		IconURL:       iconURL(raw.WeatherCondition),

		TemperatureC:            degreesOr(raw.Temperature),
		FeelsLikeC:              degreesOr(raw.FeelsLikeTemperature),
		UVIndex:                 floatOr(raw.UVIndex, 0),
		ThunderstormProbability: floatOr(raw.ThunderstormProbability, 0),

		Wind: normalizeWind(raw.Wind),
	}

	if raw.TimeZone != nil {
		out.TimeZoneID = stringOr(raw.TimeZone.ID, "Unknown")
	} else {
		out.TimeZoneID = "Unknown"
	}
	if raw.CurrentHistory != nil {
		out.MaxTempRecentC = degreesOr(raw.CurrentHistory.MaxTemperature)
		out.MinTempRecentC = degreesOr(raw.CurrentHistory.MinTemperature)
	}
	if raw.Visibility != nil {
		out.VisibilityKm = floatOr(raw.Visibility.Distance, 0)
	}

	return out, nil
}

func normalizeBlock(b *rawForecastBlock) DailyBlock {
	out := DailyBlock{
		Description:     "Unknown",
		WindDirCardinal: "UNKNOWN",
	}
	if b == nil {
		return out
	}
	out.Description = conditionDescription(b.WeatherCondition)
	out.IconURL = iconURL(b.WeatherCondition)
	out.UVIndex = floatOr(b.UVIndex, 0)
	if b.Precipitation != nil && b.Precipitation.Probability != nil {
		out.PrecipPercent = floatOr(b.Precipitation.Probability.Percent, 0)
	}
	wind := normalizeWind(b.Wind)
	out.WindKph = wind.SpeedKph
	out.WindGustKph = wind.GustKph
	out.WindDirCardinal = wind.DirectionCardinal
	out.WindDirDegrees = wind.DirectionDegrees
	out.CloudCoverPercent = b.CloudCover
	out.HumidityPercent = b.RelativeHumidity
	return out
}

func normalizeForecastDay(raw rawForecastDay) DailyForecast {
	out := DailyForecast{
		MaxTempC:      degreesOr(raw.MaxTemperature),
		MinTempC:      degreesOr(raw.MinTemperature),
		FeelsLikeMaxC: degreesOr(raw.FeelsLikeMaxTemperature),
		FeelsLikeMinC: degreesOr(raw.FeelsLikeMinTemperature),
		Daytime:       normalizeBlock(raw.DaytimeForecast),
		Nighttime:     normalizeBlock(raw.NighttimeForecast),
	}
	if raw.Interval != nil {
		out.DateISO = stringOr(raw.Interval.StartTime, "")
	}
	if raw.DisplayDate != nil {
		out.DisplayDate = DisplayDate{
			Year:  intOr(raw.DisplayDate.Year),
			Month: intOr(raw.DisplayDate.Month),
			Day:   intOr(raw.DisplayDate.Day),
		}
	}
	if raw.SunEvents != nil {
		out.SunriseTime = stringOr(raw.SunEvents.SunriseTime, "")
		out.SunsetTime = stringOr(raw.SunEvents.SunsetTime, "")
	}
	return out
}

func intOr(p *int) int {
	if p != nil {
		return *p
	}
	return 0
}

// normalizeForecast converts a raw forecast payload into a ForecastBundle.
// Provider day order is preserved verbatim; no sorting, no date validation,
// no re-check of the returned day count.
func normalizeForecast(raw rawForecastResponse) ForecastBundle {
	out := ForecastBundle{
		TimeZoneID: "Unknown",
		Forecast:   make([]DailyForecast, 0, len(raw.ForecastDays)),
	}
	if raw.TimeZone != nil {
		out.TimeZoneID = stringOr(raw.TimeZone.ID, "Unknown")
	}
	for _, day := range raw.ForecastDays {
		out.Forecast = append(out.Forecast, normalizeForecastDay(day))
	}
	return out
}
