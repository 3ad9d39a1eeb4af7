package geo

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/domain/providers"
	"github.com/codezero-health/er-intake/internal/domain/repositories"
)

// searchRadiusKm is advisory: candidates within it are preferred, but
// the ranker widens to the full country pool rather than return fewer
// than the requested count.
const searchRadiusKm = 20.0

// Ranker computes effective ETAs over the hospital pool. Both the
// occupancy store and routing provider are injectable; nil means the
// documented defaults (medium occupancy, haversine estimation).
type Ranker struct {
	directory repositories.HospitalDirectory
	occupancy repositories.OccupancyStore
	routing   providers.RoutingProvider
}

// NewRanker creates a new hospital ranker
func NewRanker(directory repositories.HospitalDirectory, occupancy repositories.OccupancyStore, routing providers.RoutingProvider) *Ranker {
	return &Ranker{
		directory: directory,
		occupancy: occupancy,
		routing:   routing,
	}
}

// RankHospitals filters the pool to the given country (no filtering if
// the country has no entries), computes effective ETA per hospital,
// and returns the top count sorted ascending by effective ETA. Ties
// keep input iteration order.
func (r *Ranker) RankHospitals(ctx context.Context, patientLat, patientLon float64, country string, count int) ([]entities.RankedHospital, error) {
	if count <= 0 {
		count = 3
	}

	pool := r.poolForCountry(ctx, country)
	if len(pool) == 0 {
		pool = r.fullPool(ctx)
	}

	ranked := make([]entities.RankedHospital, 0, len(pool))
	for _, hospital := range pool {
		estimate := r.estimateRoute(ctx, patientLat, patientLon, hospital)
		level := r.occupancyFor(ctx, hospital.Name)

		ranked = append(ranked, entities.RankedHospital{
			Hospital:     hospital,
			DistanceKm:   estimate.DistanceKm,
			ETAMinutes:   estimate.ETAMinutes,
			Occupancy:    level,
			EffectiveETA: estimate.ETAMinutes + level.PenaltyMinutes(),
			Source:       estimate.Source,
		})
	}

	// Prefer local candidates; the radius never excludes when the
	// local pool is too thin.
	within := make([]entities.RankedHospital, 0, len(ranked))
	for _, h := range ranked {
		if h.DistanceKm <= searchRadiusKm {
			within = append(within, h)
		}
	}
	if len(within) >= count {
		ranked = within
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EffectiveETA < ranked[j].EffectiveETA
	})

	if len(ranked) > count {
		ranked = ranked[:count]
	}
	return ranked, nil
}

// EstimateRoute returns the travel estimate for a single destination,
// preferring the live routing provider and falling back to haversine
// estimation under the same result shape.
func (r *Ranker) EstimateRoute(ctx context.Context, fromLat, fromLon, toLat, toLon float64) *entities.RouteEstimate {
	if r.routing != nil {
		if estimate, err := r.routing.Route(ctx, fromLat, fromLon, toLat, toLon); err == nil && estimate != nil {
			return estimate
		} else if err != nil {
			log.Warn().Err(err).Msg("live routing unavailable, estimating from distance")
		}
	}

	distanceKm := Distance(fromLat, fromLon, toLat, toLon)
	return &entities.RouteEstimate{
		ETAMinutes:      EstimateETA(distanceKm),
		DistanceKm:      distanceKm,
		TrafficDelayMin: 0,
		Source:          entities.RouteSourceEstimated,
	}
}

func (r *Ranker) estimateRoute(ctx context.Context, patientLat, patientLon float64, hospital entities.Hospital) *entities.RouteEstimate {
	return r.EstimateRoute(ctx, patientLat, patientLon, hospital.Lat, hospital.Lon)
}

func (r *Ranker) poolForCountry(ctx context.Context, country string) []entities.Hospital {
	if country == "" {
		return nil
	}
	if r.directory != nil {
		hospitals, err := r.directory.ByCountry(ctx, country)
		if err != nil {
			log.Warn().Err(err).Str("country", country).Msg("hospital directory lookup failed, using static pool")
		} else if len(hospitals) > 0 {
			return hospitals
		}
	}

	var pool []entities.Hospital
	for _, h := range StaticHospitals {
		if h.Country == country {
			pool = append(pool, h)
		}
	}
	return pool
}

func (r *Ranker) fullPool(ctx context.Context) []entities.Hospital {
	if r.directory != nil {
		if hospitals, err := r.directory.All(ctx); err == nil && len(hospitals) > 0 {
			return hospitals
		}
	}
	return StaticHospitals
}

func (r *Ranker) occupancyFor(ctx context.Context, hospitalName string) entities.OccupancyLevel {
	if r.occupancy == nil {
		return entities.OccupancyMedium
	}
	level, err := r.occupancy.Get(ctx, hospitalName)
	if err != nil || !level.IsValid() {
		return entities.OccupancyMedium
	}
	return level
}
