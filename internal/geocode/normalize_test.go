package geocode

import (
	"errors"
	"testing"
)

func TestNormalizeSuccessMapsResultsVerbatim(t *testing.T) {
	raw := rawResponse{
		Status: "OK",
		Results: []rawResult{
			{FormattedAddress: "San Francisco, CA 94103, USA", PlaceID: "ChIJd8kTowl-j4AR8qUaIAQF-lM"},
			{FormattedAddress: "SoMa, San Francisco, CA, USA", PlaceID: "ChIJny0Sf4l-j4ARUKgUbMu-1WQ"},
		},
	}
	raw.Results[0].Geometry.Location = LatLng{Lat: 37.77, Lng: -122.41}

	hits, err := normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].FormattedAddress != "San Francisco, CA 94103, USA" {
		t.Fatalf("unexpected address: %q", hits[0].FormattedAddress)
	}
	if hits[0].PlaceID != "ChIJd8kTowl-j4AR8qUaIAQF-lM" {
		t.Fatalf("unexpected place id: %q", hits[0].PlaceID)
	}
	if hits[0].Location != (LatLng{Lat: 37.77, Lng: -122.41}) {
		t.Fatalf("unexpected location: %+v", hits[0].Location)
	}
	// Provider result order is passed through.
	if hits[1].FormattedAddress != "SoMa, San Francisco, CA, USA" {
		t.Fatalf("result order not preserved: %+v", hits)
	}
}

// Zero results is a reportable failure, not an empty success; the status
// string stands in when the provider sends no message.
func TestNormalizeZeroResults(t *testing.T) {
	_, err := normalize(rawResponse{Status: "ZERO_RESULTS"})

	var geoErr *Error
	if !errors.As(err, &geoErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if geoErr.Message != "ZERO_RESULTS" {
		t.Fatalf("expected message %q, got %q", "ZERO_RESULTS", geoErr.Message)
	}
}

func TestNormalizePrefersProviderMessage(t *testing.T) {
	_, err := normalize(rawResponse{Status: "OVER_QUERY_LIMIT", ErrorMessage: "quota"})

	var geoErr *Error
	if !errors.As(err, &geoErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if geoErr.Message != "quota" {
		t.Fatalf("expected message %q, got %q", "quota", geoErr.Message)
	}
}

func TestNormalizeAllNonOKStatusesFail(t *testing.T) {
	for _, status := range []string{"ZERO_RESULTS", "OVER_QUERY_LIMIT", "REQUEST_DENIED", "INVALID_REQUEST"} {
		_, err := normalize(rawResponse{Status: status})

		var geoErr *Error
		if !errors.As(err, &geoErr) {
			t.Fatalf("status %s: expected *Error, got %v", status, err)
		}
		if geoErr.Message != status {
			t.Fatalf("status %s: expected verbatim status in message, got %q", status, geoErr.Message)
		}
	}
}
