// Package geocode resolves free-text place queries and coordinate pairs
// against the geocoding provider and normalizes its responses.
package geocode

// LatLng is a coordinate pair in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Hit is one candidate resolution of a geocoding query.
type Hit struct {
	FormattedAddress string `json:"formattedAddress"`
	PlaceID          string `json:"placeId"`
	Location         LatLng `json:"location"`
}

// Error reports a provider-level geocoding failure: any response status
// other than "OK", including zero results. Message carries the provider's
// error_message when present, else the status string verbatim.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return "geocoding failed: " + e.Message
}

const statusOK = "OK"

type rawResult struct {
	FormattedAddress string `json:"formatted_address"`
	PlaceID          string `json:"place_id"`
	Geometry         struct {
		Location LatLng `json:"location"`
	} `json:"geometry"`
}

type rawResponse struct {
	Status       string      `json:"status"`
	Results      []rawResult `json:"results"`
	ErrorMessage string      `json:"error_message"`
}

// normalize maps a raw geocoding response to hits. All non-OK statuses
// (ZERO_RESULTS, OVER_QUERY_LIMIT, REQUEST_DENIED, INVALID_REQUEST, ...)
// surface identically as *Error; no retryable/non-retryable distinction is
// made here. Result order is the provider's, passed through without
// filtering, dedup, or ranking.
func normalize(raw rawResponse) ([]Hit, error) {
	if raw.Status != statusOK {
		msg := raw.ErrorMessage
		if msg == "" {
			msg = raw.Status
		}
		return nil, &Error{Message: msg}
	}

	hits := make([]Hit, 0, len(raw.Results))
	for _, r := range raw.Results {
		hits = append(hits, Hit{
			FormattedAddress: r.FormattedAddress,
			PlaceID:          r.PlaceID,
			Location:         r.Geometry.Location,
		})
	}
	return hits, nil
}
