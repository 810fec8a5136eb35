package gis

import (
	"context"
	"io"
	"math"
	"net/http"
	"strings"
	"testing"

	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"

	"github.com/hardikraval/medlocate-backend/pkg/config"
)

func TestClientNearbyHospitalsRequest(t *testing.T) {
	respBody := `{"type":"FeatureCollection","features":[` +
		`{"type":"Feature","geometry":{"type":"Point","coordinates":[77.21,28.64]},"properties":{"name":"City Hospital"}},` +
		`{"type":"Feature","geometry":{"type":"Polygon","coordinates":[]},"properties":{"name":"Campus"}}]}`

	var capturedURL string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(config.GISConfig{BaseURL: "http://gis.test"}, WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	collection, err := client.NearbyHospitals(context.Background(), 28.6139, 77.209, 5)
	if err != nil {
		t.Fatalf("nearby hospitals: %v", err)
	}

	if !strings.HasPrefix(capturedURL, "http://gis.test/hospitals?") {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	for _, param := range []string{"lat=28.6139", "lng=77.209", "radius_km=5"} {
		if !strings.Contains(capturedURL, param) {
			t.Fatalf("URL %q missing %q", capturedURL, param)
		}
	}

	if len(collection.Features) != 2 {
		t.Fatalf("expected 2 features got %d", len(collection.Features))
	}

	distance, ok := collection.Features[0].Properties["distance_meters"].(float64)
	if !ok {
		t.Fatalf("point feature missing distance_meters: %+v", collection.Features[0].Properties)
	}
	// roughly 3km between the two Delhi points
	if distance < 1000 || distance > 10000 {
		t.Fatalf("implausible distance %f", distance)
	}
	if math.IsNaN(distance) {
		t.Fatalf("distance is NaN")
	}

	if _, ok := collection.Features[1].Properties["distance_meters"]; ok {
		t.Fatalf("polygon feature should not be annotated")
	}
}

func TestClientNearbyHospitalsUpstreamError(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("upstream down")),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(config.GISConfig{BaseURL: "http://gis.test"}, WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.NearbyHospitals(context.Background(), 12.97, 77.59, 5)
	if err == nil {
		t.Fatalf("expected error for upstream failure")
	}
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code got %s", appErr.Code())
	}
}

func TestClientNearbyHospitalsEmptyBody(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{}`)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(config.GISConfig{BaseURL: "http://gis.test"}, WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	collection, err := client.NearbyHospitals(context.Background(), 12.97, 77.59, 5)
	if err != nil {
		t.Fatalf("nearby hospitals: %v", err)
	}
	if collection.Type != "FeatureCollection" {
		t.Fatalf("expected normalized type got %q", collection.Type)
	}
	if collection.Features == nil || len(collection.Features) != 0 {
		t.Fatalf("expected empty feature slice")
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(config.GISConfig{BaseURL: "   "}); err == nil {
		t.Fatalf("expected error for blank base url")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
