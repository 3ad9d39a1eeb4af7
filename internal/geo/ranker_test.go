package geo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/geo"
)

type stubDirectory struct {
	hospitals []entities.Hospital
}

func (d *stubDirectory) ByCountry(ctx context.Context, country string) ([]entities.Hospital, error) {
	var out []entities.Hospital
	for _, h := range d.hospitals {
		if h.Country == country {
			out = append(out, h)
		}
	}
	return out, nil
}

func (d *stubDirectory) All(ctx context.Context) ([]entities.Hospital, error) {
	return d.hospitals, nil
}

func (d *stubDirectory) SearchByName(ctx context.Context, query string, limit int) ([]entities.Hospital, error) {
	return nil, nil
}

type stubOccupancy struct {
	levels map[string]entities.OccupancyLevel
	err    error
}

func (s *stubOccupancy) Get(ctx context.Context, hospitalName string) (entities.OccupancyLevel, error) {
	if s.err != nil {
		return "", s.err
	}
	if level, ok := s.levels[hospitalName]; ok {
		return level, nil
	}
	return entities.OccupancyMedium, nil
}

func (s *stubOccupancy) Set(ctx context.Context, hospitalName string, level entities.OccupancyLevel) error {
	if s.levels == nil {
		s.levels = make(map[string]entities.OccupancyLevel)
	}
	s.levels[hospitalName] = level
	return nil
}

type stubRouting struct {
	estimates map[string]*entities.RouteEstimate
	err       error
}

func (s *stubRouting) Route(ctx context.Context, fromLat, fromLon, toLat, toLon float64) (*entities.RouteEstimate, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, est := range s.estimates {
		return est, nil
	}
	return nil, errors.New("no estimate")
}

// Test pool around central Stuttgart. Distances from the patient point
// (48.7758, 9.1829) are roughly 1 km, 2 km, and 15 km.
var testPool = []entities.Hospital{
	{Name: "Near Clinic", Lat: 48.7823, Lon: 9.1695, Country: "DE"},
	{Name: "Mid Clinic", Lat: 48.7639, Lon: 9.1686, Country: "DE"},
	{Name: "Far Clinic", Lat: 48.8976, Lon: 9.1873, Country: "DE"},
	{Name: "London Clinic", Lat: 51.4989, Lon: -0.1181, Country: "UK"},
}

func TestRanker_SortedByEffectiveETA(t *testing.T) {
	ranker := geo.NewRanker(&stubDirectory{hospitals: testPool}, &stubOccupancy{}, nil)

	ranked, err := ranker.RankHospitals(context.Background(), 48.7758, 9.1829, "DE", 3)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i].EffectiveETA, ranked[i-1].EffectiveETA)
	}
}

func TestRanker_CountryFilterExcludesForeignPool(t *testing.T) {
	ranker := geo.NewRanker(&stubDirectory{hospitals: testPool}, &stubOccupancy{}, nil)

	ranked, err := ranker.RankHospitals(context.Background(), 48.7758, 9.1829, "DE", 4)
	require.NoError(t, err)

	for _, h := range ranked {
		assert.Equal(t, "DE", h.Country)
	}
}

func TestRanker_OccupancyPenaltyReordersCloserHospital(t *testing.T) {
	occupancy := &stubOccupancy{levels: map[string]entities.OccupancyLevel{
		"Near Clinic": entities.OccupancyFull,
		"Mid Clinic":  entities.OccupancyLow,
	}}
	ranker := geo.NewRanker(&stubDirectory{hospitals: testPool}, occupancy, nil)

	ranked, err := ranker.RankHospitals(context.Background(), 48.7758, 9.1829, "DE", 3)
	require.NoError(t, err)
	require.NotEmpty(t, ranked)

	// The nearest hospital is saturated (+60 min), so the slightly
	// farther low-occupancy one must rank first.
	assert.Equal(t, "Mid Clinic", ranked[0].Name)

	for _, h := range ranked {
		if h.Name == "Near Clinic" {
			assert.Equal(t, entities.OccupancyFull, h.Occupancy)
			assert.Equal(t, h.ETAMinutes+60, h.EffectiveETA)
		}
	}
}

func TestRanker_OccupancyErrorDefaultsToMedium(t *testing.T) {
	occupancy := &stubOccupancy{err: errors.New("store down")}
	ranker := geo.NewRanker(&stubDirectory{hospitals: testPool}, occupancy, nil)

	ranked, err := ranker.RankHospitals(context.Background(), 48.7758, 9.1829, "DE", 3)
	require.NoError(t, err)

	for _, h := range ranked {
		assert.Equal(t, entities.OccupancyMedium, h.Occupancy)
		assert.Equal(t, h.ETAMinutes+10, h.EffectiveETA)
	}
}

func TestRanker_RoutingFailureFallsBackToEstimation(t *testing.T) {
	routing := &stubRouting{err: errors.New("provider down")}
	ranker := geo.NewRanker(&stubDirectory{hospitals: testPool}, &stubOccupancy{}, routing)

	ranked, err := ranker.RankHospitals(context.Background(), 48.7758, 9.1829, "DE", 3)
	require.NoError(t, err)
	require.NotEmpty(t, ranked)

	for _, h := range ranked {
		assert.Equal(t, entities.RouteSourceEstimated, h.Source)
		assert.Greater(t, h.ETAMinutes, 0)
	}
}

func TestRanker_LiveRoutingReported(t *testing.T) {
	routing := &stubRouting{estimates: map[string]*entities.RouteEstimate{
		"any": {ETAMinutes: 12, DistanceKm: 8, TrafficDelayMin: 3, Source: entities.RouteSourceLive},
	}}
	ranker := geo.NewRanker(&stubDirectory{hospitals: testPool[:1]}, &stubOccupancy{}, routing)

	ranked, err := ranker.RankHospitals(context.Background(), 48.7758, 9.1829, "DE", 1)
	require.NoError(t, err)
	require.Len(t, ranked, 1)

	assert.Equal(t, entities.RouteSourceLive, ranked[0].Source)
	assert.Equal(t, 12, ranked[0].ETAMinutes)
	assert.Equal(t, 22, ranked[0].EffectiveETA)
}

func TestRanker_DefaultCountWhenNotPositive(t *testing.T) {
	ranker := geo.NewRanker(&stubDirectory{hospitals: testPool}, &stubOccupancy{}, nil)

	ranked, err := ranker.RankHospitals(context.Background(), 48.7758, 9.1829, "DE", 0)
	require.NoError(t, err)
	assert.Len(t, ranked, 3)
}

func TestRanker_WidensBeyondRadiusWhenPoolThin(t *testing.T) {
	// Only one hospital within 20 km; asking for two must include the
	// distant one rather than come up short.
	pool := []entities.Hospital{
		{Name: "Near Clinic", Lat: 48.7823, Lon: 9.1695, Country: "DE"},
		{Name: "Distant Clinic", Lat: 48.1106, Lon: 11.4706, Country: "DE"},
	}
	ranker := geo.NewRanker(&stubDirectory{hospitals: pool}, &stubOccupancy{}, nil)

	ranked, err := ranker.RankHospitals(context.Background(), 48.7758, 9.1829, "DE", 2)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

func TestRanker_UnknownCountryFallsBackToFullPool(t *testing.T) {
	ranker := geo.NewRanker(&stubDirectory{hospitals: testPool}, &stubOccupancy{}, nil)

	ranked, err := ranker.RankHospitals(context.Background(), 48.7758, 9.1829, "XX", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, ranked)
}

func TestDetectCountry(t *testing.T) {
	assert.Equal(t, "DE", geo.DetectCountry(48.7758, 9.1829))
	assert.Equal(t, "UK", geo.DetectCountry(51.5, -0.12))
	assert.Equal(t, "TR", geo.DetectCountry(39.9, 32.8))
	assert.Equal(t, "DE", geo.DetectCountry(0, 0))
}

func TestEmergencyNumberFor(t *testing.T) {
	assert.Equal(t, "112", geo.EmergencyNumberFor("DE").Number)
	assert.Equal(t, "999", geo.EmergencyNumberFor("UK").Number)
	assert.Equal(t, "112", geo.EmergencyNumberFor("ZZ").Number)
}
