package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/domain/repositories"
	"github.com/codezero-health/er-intake/internal/geo"
)

// HospitalHandler handles hospital ranking and occupancy reporting.
type HospitalHandler struct {
	ranker    *geo.Ranker
	directory repositories.HospitalDirectory
	occupancy repositories.OccupancyStore
}

// NewHospitalHandler creates a new hospital handler.
func NewHospitalHandler(ranker *geo.Ranker, directory repositories.HospitalDirectory, occupancy repositories.OccupancyStore) *HospitalHandler {
	return &HospitalHandler{
		ranker:    ranker,
		directory: directory,
		occupancy: occupancy,
	}
}

type rankResponse struct {
	Hospitals       []entities.RankedHospital `json:"hospitals"`
	Country         string                    `json:"country"`
	EmergencyNumber geo.EmergencyNumber       `json:"emergency_number"`
}

// RankHospitals handles GET /api/hospitals/rank
func (h *HospitalHandler) RankHospitals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "lat is required")
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "lon is required")
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		respondWithError(w, http.StatusBadRequest, "coordinates out of range")
		return
	}

	count := 3
	if raw := query.Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 20 {
			respondWithError(w, http.StatusBadRequest, "count must be between 1 and 20")
			return
		}
		count = parsed
	}

	country := strings.ToUpper(strings.TrimSpace(query.Get("country")))
	if country == "" {
		country = geo.DetectCountry(lat, lon)
	}

	ranked, err := h.ranker.RankHospitals(r.Context(), lat, lon, country, count)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rankResponse{
		Hospitals:       ranked,
		Country:         country,
		EmergencyNumber: geo.EmergencyNumberFor(country),
	})
}

// SearchHospitals handles GET /api/hospitals/search
func (h *HospitalHandler) SearchHospitals(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "q is required")
		return
	}

	hospitals, err := h.directory.SearchByName(r.Context(), query, 10)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if hospitals == nil {
		hospitals = []entities.Hospital{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
	})
}

type occupancyRequest struct {
	Hospital string `json:"hospital"`
	Level    string `json:"level"`
}

// UpdateOccupancy handles PUT /api/hospitals/occupancy
func (h *HospitalHandler) UpdateOccupancy(w http.ResponseWriter, r *http.Request) {
	var payload occupancyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Hospital = strings.TrimSpace(payload.Hospital)
	if payload.Hospital == "" {
		respondWithError(w, http.StatusBadRequest, "hospital is required")
		return
	}

	level := entities.OccupancyLevel(strings.ToLower(strings.TrimSpace(payload.Level)))
	if !level.IsValid() {
		respondWithError(w, http.StatusBadRequest, "level must be one of low, medium, high, full")
		return
	}

	if err := h.occupancy.Set(r.Context(), payload.Hospital, level); err != nil {
		respondWithAppError(w, err)
		return
	}

	log.Info().
		Str("hospital", payload.Hospital).
		Str("level", string(level)).
		Msg("Hospital occupancy updated")

	respondWithJSON(w, http.StatusOK, map[string]string{
		"hospital": payload.Hospital,
		"level":    string(level),
	})
}
