package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"weather-lookup/internal/geocode"
	"weather-lookup/internal/httpclient"
	"weather-lookup/internal/store"
	"weather-lookup/internal/weather"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/geocode", func(c *fiber.Ctx) error {
		hits, err := service.SearchLocations(c.Context(), c.Query("q"))
		if err != nil {
			return mapError(err)
		}
		return c.JSON(fiber.Map{"hits": hits})
	})

	v1.Get("/geocode/reverse", func(c *fiber.Ctx) error {
		coords, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		hits, err := service.ReverseGeocode(c.Context(), coords.Lat, coords.Lng)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(fiber.Map{"hits": hits})
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		coords, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		summary, err := service.CurrentConditions(c.Context(), coords.Lat, coords.Lng)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(summary)
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		coords, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		days, err := parseDaysQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		bundle, err := service.Forecast(c.Context(), coords.Lat, coords.Lng, days)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(bundle)
	})

	v1.Get("/weather/lookup", func(c *fiber.Ctx) error {
		coords, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		days, err := parseDaysQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := service.Lookup(c.Context(), coords.Lat, coords.Lng, days)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(result)
	})

	v1.Post("/requests", func(c *fiber.Ctx) error {
		input, err := parseRequestBody(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		req, err := service.CreateRequest(c.Context(), input)
		if err != nil {
			return mapError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(req)
	})

	v1.Get("/requests", func(c *fiber.Ctx) error {
		reqs, err := service.ListRequests(c.Context())
		if err != nil {
			return mapError(err)
		}
		return c.JSON(fiber.Map{"requests": reqs})
	})

	v1.Get("/requests/:id", func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
		}

		req, err := service.GetRequest(c.Context(), id)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(req)
	})

	v1.Put("/requests/:id", func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
		}
		input, err := parseRequestBody(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		req, err := service.UpdateRequest(c.Context(), id, input)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(req)
	})

	v1.Delete("/requests/:id", func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
		}

		if err := service.DeleteRequest(c.Context(), id); err != nil {
			return mapError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// coordQuery holds query parameters identifying a coordinate pair.
type coordQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lng float64 `validate:"gte=-180,lte=180"`
}

func parseCoordQuery(c *fiber.Ctx) (coordQuery, error) {
	var q coordQuery

	latStr := c.Query("lat")
	lngStr := c.Query("lng")
	if latStr == "" || lngStr == "" {
		return q, errors.New("lat and lng query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return q, errors.New("lat must be a decimal number")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return q, errors.New("lng must be a decimal number")
	}
	q.Lat = lat
	q.Lng = lng

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// daysQuery bounds the forecast day count to what the provider serves.
type daysQuery struct {
	Days int `validate:"gte=1,lte=10"`
}

func parseDaysQuery(c *fiber.Ctx) (int, error) {
	q := daysQuery{Days: c.QueryInt("days", weather.DefaultForecastDays)}
	if err := validate.Struct(q); err != nil {
		return 0, err
	}
	return q.Days, nil
}

// requestBody is the JSON body for creating or updating a saved request.
type requestBody struct {
	LocationName string  `json:"location_name"`
	LocationLat  float64 `json:"location_lat"`
	LocationLng  float64 `json:"location_lng"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
}

// savedRequestPayload is the validated form of requestBody.
type savedRequestPayload struct {
	LocationName string    `validate:"required"`
	LocationLat  float64   `validate:"gte=-90,lte=90"`
	LocationLng  float64   `validate:"gte=-180,lte=180"`
	StartDate    time.Time `validate:"required"`
	EndDate      time.Time `validate:"required,gtefield=StartDate"`
}

func parseRequestBody(c *fiber.Ctx) (weather.SaveRequestInput, error) {
	var body requestBody
	if err := c.BodyParser(&body); err != nil {
		return weather.SaveRequestInput{}, errors.New("invalid request body")
	}
	if body.StartDate == "" || body.EndDate == "" {
		return weather.SaveRequestInput{}, errors.New("start_date and end_date are required")
	}

	start, err := time.Parse(dateLayout, body.StartDate)
	if err != nil {
		return weather.SaveRequestInput{}, errors.New("start_date must be formatted YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, body.EndDate)
	if err != nil {
		return weather.SaveRequestInput{}, errors.New("end_date must be formatted YYYY-MM-DD")
	}

	payload := savedRequestPayload{
		LocationName: body.LocationName,
		LocationLat:  body.LocationLat,
		LocationLng:  body.LocationLng,
		StartDate:    start,
		EndDate:      end,
	}
	if err := validate.Struct(payload); err != nil {
		return weather.SaveRequestInput{}, err
	}

	return weather.SaveRequestInput{
		LocationName: payload.LocationName,
		LocationLat:  payload.LocationLat,
		LocationLng:  payload.LocationLng,
		StartDate:    payload.StartDate,
		EndDate:      payload.EndDate,
	}, nil
}

// mapError translates service and provider failures into HTTP statuses.
func mapError(err error) *fiber.Error {
	var geoErr *geocode.Error
	var statusErr *httpclient.StatusError

	switch {
	case errors.Is(err, weather.ErrEmptyQuery), errors.Is(err, weather.ErrBadDateRange):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &geoErr):
		return fiber.NewError(fiber.StatusUnprocessableEntity, geoErr.Message)
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.As(err, &statusErr),
		errors.Is(err, weather.ErrInvalidResponse),
		errors.Is(err, httpclient.ErrCircuitOpen),
		errors.Is(err, httpclient.ErrRateLimited),
		errors.Is(err, httpclient.ErrServerError):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	case errors.Is(err, weather.ErrMissingAPIKey), errors.Is(err, geocode.ErrMissingAPIKey):
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	case errors.Is(err, weather.ErrStoreDisabled):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "request failed")
	}
}
