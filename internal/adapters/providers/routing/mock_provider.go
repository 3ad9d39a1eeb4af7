package routing

import (
	"context"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/domain/providers"
	"github.com/codezero-health/er-intake/internal/geo"
)

// MockRoutingProvider estimates travel time from straight-line distance.
// It behaves like the haversine fallback but reports itself through the
// provider interface, which keeps development setups on one code path.
type MockRoutingProvider struct{}

// NewMockRoutingProvider creates a new mock routing provider.
func NewMockRoutingProvider() providers.RoutingProvider {
	return &MockRoutingProvider{}
}

// Route returns a deterministic estimate based on haversine distance.
func (m *MockRoutingProvider) Route(ctx context.Context, fromLat, fromLon, toLat, toLon float64) (*entities.RouteEstimate, error) {
	distanceKm := geo.Distance(fromLat, fromLon, toLat, toLon)
	return &entities.RouteEstimate{
		ETAMinutes:      geo.EstimateETA(distanceKm),
		DistanceKm:      distanceKm,
		TrafficDelayMin: 0,
		Source:          entities.RouteSourceEstimated,
	}, nil
}
