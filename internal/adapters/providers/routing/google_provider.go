package routing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/domain/providers"
)

const (
	googleDirectionsURL  = "https://maps.googleapis.com/maps/api/directions/json"
	defaultRouteCacheTTL = 60 * 5
	defaultHTTPTimeout   = 8 * time.Second
)

// GoogleRoutingProvider fetches drive-time estimates from the Google
// Directions API with live traffic. Results are cached briefly since
// ambulance routing queries cluster on the same hospital pool.
type GoogleRoutingProvider struct {
	apiKey     string
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
}

// NewGoogleRoutingProvider creates a new Google routing provider.
func NewGoogleRoutingProvider(apiKey string, cache providers.CacheProvider) providers.RoutingProvider {
	return NewGoogleRoutingProviderWithOptions(apiKey, cache, googleDirectionsURL, nil)
}

// NewGoogleRoutingProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGoogleRoutingProviderWithOptions(apiKey string, cache providers.CacheProvider, baseURL string, httpClient *http.Client) providers.RoutingProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleDirectionsURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GoogleRoutingProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      cache,
		baseURL:    baseURL,
	}
}

// Route returns a live travel-time estimate between two points.
func (g *GoogleRoutingProvider) Route(ctx context.Context, fromLat, fromLon, toLat, toLon float64) (*entities.RouteEstimate, error) {
	cacheKey := "route:v1:" + hashKey(fmt.Sprintf("%.4f,%.4f:%.4f,%.4f", fromLat, fromLon, toLat, toLon))
	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var estimate entities.RouteEstimate
			if err := json.Unmarshal(cached, &estimate); err == nil && estimate.ETAMinutes > 0 {
				return &estimate, nil
			}
		}
	}

	resp, err := g.doDirectionsRequest(ctx, fromLat, fromLon, toLat, toLon)
	if err != nil {
		return nil, err
	}

	if len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 {
		return nil, fmt.Errorf("no route found")
	}

	leg := resp.Routes[0].Legs[0]
	durationSec := leg.Duration.Value
	trafficSec := durationSec
	if leg.DurationInTraffic != nil {
		trafficSec = leg.DurationInTraffic.Value
	}

	estimate := entities.RouteEstimate{
		ETAMinutes:      secondsToMinutes(trafficSec),
		DistanceKm:      float64(leg.Distance.Value) / 1000,
		TrafficDelayMin: secondsToMinutes(maxInt(trafficSec-durationSec, 0)),
		Source:          entities.RouteSourceLive,
	}
	if estimate.ETAMinutes < 1 {
		estimate.ETAMinutes = 1
	}

	if g.cache != nil {
		if payload, err := json.Marshal(estimate); err == nil {
			_ = g.cache.Set(ctx, cacheKey, payload, defaultRouteCacheTTL)
		}
	}

	return &estimate, nil
}

func (g *GoogleRoutingProvider) doDirectionsRequest(ctx context.Context, fromLat, fromLon, toLat, toLon float64) (*googleDirectionsResponse, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("google maps api key is required")
	}

	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", fromLat, fromLon))
	params.Set("destination", fmt.Sprintf("%f,%f", toLat, toLon))
	params.Set("departure_time", "now")
	params.Set("key", g.apiKey)

	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directions request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("directions request returned status %d", resp.StatusCode)
	}

	var payload googleDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode directions response: %w", err)
	}

	if payload.Status != "OK" {
		if payload.ErrorMessage != "" {
			return nil, fmt.Errorf("directions request failed: %s - %s", payload.Status, payload.ErrorMessage)
		}
		return nil, fmt.Errorf("directions request failed: %s", payload.Status)
	}

	return &payload, nil
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func secondsToMinutes(seconds int) int {
	return int(math.Round(float64(seconds) / 60))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

type googleDirectionsResponse struct {
	Status       string                  `json:"status"`
	ErrorMessage string                  `json:"error_message,omitempty"`
	Routes       []googleDirectionsRoute `json:"routes"`
}

type googleDirectionsRoute struct {
	Legs []googleDirectionsLeg `json:"legs"`
}

type googleDirectionsLeg struct {
	Distance          googleValueText  `json:"distance"`
	Duration          googleValueText  `json:"duration"`
	DurationInTraffic *googleValueText `json:"duration_in_traffic,omitempty"`
}

type googleValueText struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}
