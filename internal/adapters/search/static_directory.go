package search

import (
	"context"
	"strings"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/domain/repositories"
	"github.com/codezero-health/er-intake/internal/geo"
)

// StaticDirectory serves the built-in hospital pool. It is the
// mandatory fallback when no search index is configured.
type StaticDirectory struct {
	hospitals []entities.Hospital
}

var _ repositories.HospitalDirectory = (*StaticDirectory)(nil)

// NewStaticDirectory creates a directory over the built-in pool
func NewStaticDirectory() *StaticDirectory {
	return &StaticDirectory{hospitals: geo.StaticHospitals}
}

// NewStaticDirectoryWith creates a directory over a caller-supplied pool
func NewStaticDirectoryWith(hospitals []entities.Hospital) *StaticDirectory {
	return &StaticDirectory{hospitals: hospitals}
}

// ByCountry returns hospitals in the given country
func (d *StaticDirectory) ByCountry(ctx context.Context, country string) ([]entities.Hospital, error) {
	country = strings.ToUpper(strings.TrimSpace(country))
	var matched []entities.Hospital
	for _, h := range d.hospitals {
		if strings.ToUpper(h.Country) == country {
			matched = append(matched, h)
		}
	}
	return matched, nil
}

// All returns the full pool
func (d *StaticDirectory) All(ctx context.Context) ([]entities.Hospital, error) {
	out := make([]entities.Hospital, len(d.hospitals))
	copy(out, d.hospitals)
	return out, nil
}

// SearchByName returns hospitals whose name or address contains the query
func (d *StaticDirectory) SearchByName(ctx context.Context, query string, limit int) ([]entities.Hospital, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	var matched []entities.Hospital
	for _, h := range d.hospitals {
		if strings.Contains(strings.ToLower(h.Name), query) ||
			strings.Contains(strings.ToLower(h.Address), query) {
			matched = append(matched, h)
			if limit > 0 && len(matched) >= limit {
				break
			}
		}
	}
	return matched, nil
}
