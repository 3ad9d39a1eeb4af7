package providers

import (
	"context"

	"github.com/codezero-health/er-intake/internal/domain/entities"
)

// CacheProvider defines the interface for caching operations
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error
	Delete(ctx context.Context, key string) error
}

// RoutingProvider supplies live travel-time estimates. The geo ranker
// falls back to haversine estimation whenever this is nil or errors.
type RoutingProvider interface {
	Route(ctx context.Context, fromLat, fromLon, toLat, toLon float64) (*entities.RouteEstimate, error)
}

// EventBus publishes intake events for dashboard consumers
type EventBus interface {
	Publish(ctx context.Context, channel string, event *entities.IntakeEvent) error
	Subscribe(ctx context.Context, channel string) (<-chan *entities.IntakeEvent, error)
	Close() error
}

// AssessmentProvider is the optional AI-augmented assessment path.
// Its output shape equals the deterministic classifier's; when it is
// absent or returns an unusable result the classifier is authoritative.
type AssessmentProvider interface {
	Assess(ctx context.Context, complaint string, answers []entities.Answer) (*entities.Assessment, error)
}
