package repositories

import (
	"context"

	"github.com/codezero-health/er-intake/internal/domain/entities"
)

// OccupancyStore is the injectable registry of per-hospital occupancy
// levels, keyed by hospital name. A missing key reads as medium.
type OccupancyStore interface {
	Get(ctx context.Context, hospitalName string) (entities.OccupancyLevel, error)
	Set(ctx context.Context, hospitalName string, level entities.OccupancyLevel) error
}
