package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/domain/providers"
	"github.com/codezero-health/er-intake/internal/domain/repositories"
)

// QueueHandler exposes the intake queue to the ER dashboard.
type QueueHandler struct {
	queue        repositories.PatientQueueRepository
	bus          providers.EventBus
	busChannel   string
	defaultLimit int
}

// NewQueueHandler creates a new queue handler.
func NewQueueHandler(queue repositories.PatientQueueRepository, bus providers.EventBus, busChannel string, defaultLimit int) *QueueHandler {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	return &QueueHandler{
		queue:        queue,
		bus:          bus,
		busChannel:   busChannel,
		defaultLimit: defaultLimit,
	}
}

// ListIncoming handles GET /api/queue/incoming
func (h *QueueHandler) ListIncoming(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.parseLimit(w, r)
	if !ok {
		return
	}

	records, err := h.queue.ListIncoming(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if records == nil {
		records = []*entities.PatientRecord{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": records,
		"count":    len(records),
	})
}

// ListAll handles GET /api/queue/all
func (h *QueueHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.parseLimit(w, r)
	if !ok {
		return
	}

	records, err := h.queue.ListAll(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if records == nil {
		records = []*entities.PatientRecord{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": records,
		"count":    len(records),
	})
}

// GetPatient handles GET /api/queue/{id}
func (h *QueueHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID := r.PathValue("id")
	if patientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient id is required")
		return
	}

	record, err := h.queue.GetByID(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/queue/{id}/status
func (h *QueueHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	patientID := r.PathValue("id")
	if patientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient id is required")
		return
	}

	var payload statusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	status := entities.PatientStatus(strings.ToLower(strings.TrimSpace(payload.Status)))
	if err := h.queue.UpdateStatus(r.Context(), patientID, status); err != nil {
		respondWithAppError(w, err)
		return
	}

	h.publish(r, &entities.IntakeEvent{
		ID:        uuid.NewString(),
		Type:      entities.EventStatusChanged,
		PatientID: patientID,
		Status:    string(status),
		Timestamp: time.Now().UTC(),
	})

	log.Info().
		Str("patient_id", patientID).
		Str("status", string(status)).
		Msg("Patient status updated")

	respondWithJSON(w, http.StatusOK, map[string]string{
		"patient_id": patientID,
		"status":     string(status),
	})
}

// Stats handles GET /api/queue/stats
func (h *QueueHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queue.Stats(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// Clear handles DELETE /api/queue
func (h *QueueHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.queue.Clear(r.Context()); err != nil {
		respondWithAppError(w, err)
		return
	}

	h.publish(r, &entities.IntakeEvent{
		ID:        uuid.NewString(),
		Type:      entities.EventQueueCleared,
		Timestamp: time.Now().UTC(),
	})

	log.Info().Msg("Intake queue cleared")
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *QueueHandler) parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 200 {
			respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return 0, false
		}
		limit = parsed
	}
	return limit, true
}

func (h *QueueHandler) publish(r *http.Request, event *entities.IntakeEvent) {
	if h.bus == nil {
		return
	}
	if err := h.bus.Publish(r.Context(), h.busChannel, event); err != nil {
		log.Warn().Err(err).Str("event_type", event.Type).Msg("failed to publish intake event")
	}
}
