package gis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hardikraval/medlocate-backend/pkg/config"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
	"github.com/hardikraval/medlocate-backend/pkg/geo"
)

const (
	hospitalsPath             = "hospitals"
	responseBodyLimit   int64 = 1024
	distanceMetersField       = "distance_meters"
)

// Client talks to the hospital GIS service that serves GeoJSON hospital layers.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured GIS base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the GIS client from config.
func NewClient(cfg config.GISConfig, opts ...Option) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, fmt.Errorf("gis base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}

	return client, nil
}

// Geometry is the GeoJSON geometry payload. Coordinates are lng/lat order.
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Feature is a single GeoJSON feature returned by the GIS service.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// FeatureCollection is the GeoJSON envelope returned to clients.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// NearbyHospitals fetches hospitals around the given point and annotates each
// point feature with its distance from the origin.
func (c *Client) NearbyHospitals(ctx context.Context, lat, lng, radiusKm float64) (*FeatureCollection, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "gis client not configured")
	}

	endpoint := fmt.Sprintf("%s/%s", strings.TrimRight(c.baseURL, "/"), hospitalsPath)
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	query.Set("radius_km", strconv.FormatFloat(radiusKm, 'f', -1, 64))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build hospitals request")
	}
	httpReq.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute hospitals request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "hospitals request failed")
	}

	var collection FeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode hospitals response")
	}
	if collection.Type == "" {
		collection.Type = "FeatureCollection"
	}
	if collection.Features == nil {
		collection.Features = []Feature{}
	}

	annotateDistances(&collection, geo.Point{Lat: lat, Lng: lng})
	return &collection, nil
}

func annotateDistances(collection *FeatureCollection, origin geo.Point) {
	for i := range collection.Features {
		feature := &collection.Features[i]
		if !strings.EqualFold(feature.Geometry.Type, "Point") || len(feature.Geometry.Coordinates) < 2 {
			continue
		}
		target := geo.Point{
			Lat: feature.Geometry.Coordinates[1],
			Lng: feature.Geometry.Coordinates[0],
		}
		if feature.Properties == nil {
			feature.Properties = map[string]any{}
		}
		feature.Properties[distanceMetersField] = geo.DistanceMeters(origin, target)
	}
}
