package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/domain/repositories"
	redisclient "github.com/codezero-health/er-intake/internal/infrastructure/clients/redis"
	apperrors "github.com/codezero-health/er-intake/pkg/errors"
)

const occupancyKeyPrefix = "occupancy:"

// RedisOccupancyStore keeps hospital occupancy levels in Redis so
// every instance sees the same ETA penalties. Unknown hospitals read
// back as medium.
type RedisOccupancyStore struct {
	client *redisclient.Client
}

// NewRedisOccupancyStore creates a Redis-backed occupancy store
func NewRedisOccupancyStore(client *redisclient.Client) repositories.OccupancyStore {
	return &RedisOccupancyStore{
		client: client,
	}
}

// Get returns the reported occupancy level for a hospital
func (s *RedisOccupancyStore) Get(ctx context.Context, hospitalName string) (entities.OccupancyLevel, error) {
	result, err := s.client.Client().Get(ctx, occupancyKeyPrefix+hospitalName).Result()
	if err == redis.Nil {
		return entities.OccupancyMedium, nil
	}
	if err != nil {
		return entities.OccupancyMedium, fmt.Errorf("failed to read occupancy: %w", err)
	}

	level := entities.OccupancyLevel(result)
	if !level.IsValid() {
		return entities.OccupancyMedium, nil
	}
	return level, nil
}

// Set records the occupancy level for a hospital
func (s *RedisOccupancyStore) Set(ctx context.Context, hospitalName string, level entities.OccupancyLevel) error {
	if hospitalName == "" {
		return apperrors.NewValidationError("hospital name is required")
	}
	if !level.IsValid() {
		return apperrors.NewValidationError(fmt.Sprintf("invalid occupancy level %q", level))
	}
	if err := s.client.Client().Set(ctx, occupancyKeyPrefix+hospitalName, string(level), 0).Err(); err != nil {
		return fmt.Errorf("failed to store occupancy: %w", err)
	}
	return nil
}
