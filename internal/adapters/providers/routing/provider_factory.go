package routing

import (
	"github.com/codezero-health/er-intake/internal/domain/providers"
	"github.com/codezero-health/er-intake/pkg/config"
)

// NewRoutingProvider selects a routing provider from configuration.
// Without an API key the ranker runs on the haversine mock, which is
// the expected shape for dev and tests.
func NewRoutingProvider(cfg config.RoutingConfig, cache providers.CacheProvider) providers.RoutingProvider {
	switch cfg.Provider {
	case "google":
		if cfg.APIKey == "" {
			return NewMockRoutingProvider()
		}
		return NewGoogleRoutingProvider(cfg.APIKey, cache)
	default:
		return NewMockRoutingProvider()
	}
}
