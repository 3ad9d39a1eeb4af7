package memory

import (
	"context"
	"sync"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/domain/repositories"
	apperrors "github.com/codezero-health/er-intake/pkg/errors"
)

// OccupancyStore is the in-memory occupancy registry. Missing keys
// read as medium.
type OccupancyStore struct {
	mu     sync.RWMutex
	levels map[string]entities.OccupancyLevel
}

// NewOccupancyStore creates an empty in-memory occupancy store
func NewOccupancyStore() repositories.OccupancyStore {
	return &OccupancyStore{
		levels: make(map[string]entities.OccupancyLevel),
	}
}

// Get returns the stored level, defaulting to medium
func (s *OccupancyStore) Get(ctx context.Context, hospitalName string) (entities.OccupancyLevel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if level, ok := s.levels[hospitalName]; ok {
		return level, nil
	}
	return entities.OccupancyMedium, nil
}

// Set stores the level for a hospital
func (s *OccupancyStore) Set(ctx context.Context, hospitalName string, level entities.OccupancyLevel) error {
	if !level.IsValid() {
		return apperrors.NewValidationError("invalid occupancy level")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[hospitalName] = level
	return nil
}
