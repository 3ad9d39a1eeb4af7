package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/domain/repositories"
	tsclient "github.com/codezero-health/er-intake/internal/infrastructure/clients/typesense"
)

// TypesenseDirectory serves the hospital pool from a Typesense index.
// Every lookup falls back to the static pool on index errors so ranking
// never depends on search availability.
type TypesenseDirectory struct {
	client   *tsclient.Client
	fallback *StaticDirectory
}

var _ repositories.HospitalDirectory = (*TypesenseDirectory)(nil)

// NewTypesenseDirectory creates a new Typesense-backed directory
func NewTypesenseDirectory(client *tsclient.Client) *TypesenseDirectory {
	return &TypesenseDirectory{
		client:   client,
		fallback: NewStaticDirectory(),
	}
}

// InitSchema ensures the hospitals collection exists and seeds it with
// the static pool
func (d *TypesenseDirectory) InitSchema(ctx context.Context) error {
	_, err := d.client.Client().Collection(tsclient.HospitalsCollection).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: tsclient.HospitalsCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "address", Type: "string"},
			{Name: "country", Type: "string", Facet: pointer.True()},
			{Name: "location", Type: "geopoint"},
		},
	}

	if _, err := d.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	hospitals, _ := d.fallback.All(ctx)
	for _, h := range hospitals {
		if err := d.Index(ctx, h); err != nil {
			return err
		}
	}
	return nil
}

// Index upserts a hospital into the index
func (d *TypesenseDirectory) Index(ctx context.Context, hospital entities.Hospital) error {
	document := map[string]interface{}{
		"id":       strings.ToLower(strings.ReplaceAll(hospital.Name, " ", "-")),
		"name":     hospital.Name,
		"address":  hospital.Address,
		"country":  hospital.Country,
		"location": []float64{hospital.Lat, hospital.Lon},
	}

	if _, err := d.client.Client().Collection(tsclient.HospitalsCollection).Documents().Upsert(ctx, document); err != nil {
		return fmt.Errorf("failed to index hospital: %w", err)
	}
	return nil
}

// ByCountry returns hospitals in the given country
func (d *TypesenseDirectory) ByCountry(ctx context.Context, country string) ([]entities.Hospital, error) {
	country = strings.ToUpper(strings.TrimSpace(country))
	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String("*"),
		QueryBy:  pointer.String("name"),
		FilterBy: pointer.String(fmt.Sprintf("country:=%s", country)),
		PerPage:  pointer.Int(100),
	}

	hospitals, err := d.search(ctx, searchParams)
	if err != nil {
		return d.fallback.ByCountry(ctx, country)
	}
	return hospitals, nil
}

// All returns the full pool
func (d *TypesenseDirectory) All(ctx context.Context) ([]entities.Hospital, error) {
	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String("*"),
		QueryBy: pointer.String("name"),
		PerPage: pointer.Int(100),
	}

	hospitals, err := d.search(ctx, searchParams)
	if err != nil || len(hospitals) == 0 {
		return d.fallback.All(ctx)
	}
	return hospitals, nil
}

// SearchByName returns hospitals whose name or address matches the query
func (d *TypesenseDirectory) SearchByName(ctx context.Context, query string, limit int) ([]entities.Hospital, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,address"),
		PerPage: pointer.Int(limit),
	}

	hospitals, err := d.search(ctx, searchParams)
	if err != nil {
		return d.fallback.SearchByName(ctx, query, limit)
	}
	return hospitals, nil
}

func (d *TypesenseDirectory) search(ctx context.Context, params *api.SearchCollectionParams) ([]entities.Hospital, error) {
	result, err := d.client.Client().Collection(tsclient.HospitalsCollection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search hospitals: %w", err)
	}
	if result.Hits == nil {
		return nil, nil
	}

	hospitals := []entities.Hospital{}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		var lat, lon float64
		if loc, ok := doc["location"].([]interface{}); ok && len(loc) == 2 {
			lat, _ = loc[0].(float64)
			lon, _ = loc[1].(float64)
		}

		hospital := entities.Hospital{
			Lat: lat,
			Lon: lon,
		}
		if val, ok := doc["name"].(string); ok {
			hospital.Name = val
		}
		if val, ok := doc["address"].(string); ok {
			hospital.Address = val
		}
		if val, ok := doc["country"].(string); ok {
			hospital.Country = val
		}

		hospitals = append(hospitals, hospital)
	}

	return hospitals, nil
}
