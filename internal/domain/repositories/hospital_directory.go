package repositories

import (
	"context"

	"github.com/codezero-health/er-intake/internal/domain/entities"
)

// HospitalDirectory provides the hospital reference pool for ranking.
// Implementations may back this with a search index; the static pool
// is the mandatory fallback.
type HospitalDirectory interface {
	// ByCountry returns hospitals in the given country. An empty
	// result means the caller should fall back to the full pool.
	ByCountry(ctx context.Context, country string) ([]entities.Hospital, error)

	// All returns the full pool.
	All(ctx context.Context) ([]entities.Hospital, error)

	// SearchByName returns hospitals whose name or address matches
	// the query.
	SearchByName(ctx context.Context, query string, limit int) ([]entities.Hospital, error)
}
