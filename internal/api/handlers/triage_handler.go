package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/domain/providers"
	"github.com/codezero-health/er-intake/internal/domain/repositories"
	"github.com/codezero-health/er-intake/internal/geo"
	"github.com/codezero-health/er-intake/internal/infrastructure/observability"
	"github.com/codezero-health/er-intake/internal/triage"
)

const maxIntakeAnswers = 50

// TriageHandler handles triage intake and assessment requests.
type TriageHandler struct {
	classifier *triage.Classifier
	queue      repositories.PatientQueueRepository
	ranker     *geo.Ranker
	bus        providers.EventBus
	busChannel string
	metrics    *observability.Metrics
}

// NewTriageHandler creates a new triage handler.
func NewTriageHandler(
	classifier *triage.Classifier,
	queue repositories.PatientQueueRepository,
	ranker *geo.Ranker,
	bus providers.EventBus,
	busChannel string,
	metrics *observability.Metrics,
) *TriageHandler {
	return &TriageHandler{
		classifier: classifier,
		queue:      queue,
		ranker:     ranker,
		bus:        bus,
		busChannel: busChannel,
		metrics:    metrics,
	}
}

type triageRequest struct {
	ChiefComplaint      string                `json:"chief_complaint"`
	Answers             []entities.Answer     `json:"answers"`
	Language            string                `json:"language"`
	Location            *entities.Location    `json:"location,omitempty"`
	Demographics        entities.Demographics `json:"demographics"`
	ETAMinutes          *int                  `json:"eta_minutes,omitempty"`
	DestinationHospital string                `json:"destination_hospital"`
}

type triageResponse struct {
	Record     *entities.PatientRecord `json:"record"`
	Assessment entities.Assessment     `json:"assessment"`
}

// SubmitTriage handles POST /api/triage: classify, persist, announce.
func (h *TriageHandler) SubmitTriage(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	assessment := h.classifier.Classify(payload.ChiefComplaint, payload.Answers)
	assessment = assessment.WithAdvice(triage.AdviceForLevel(assessment.TriageLevel))

	params := triage.RecordParams{
		Language:            payload.Language,
		ETAMinutes:          payload.ETAMinutes,
		Location:            payload.Location,
		Demographics:        payload.Demographics,
		DestinationHospital: strings.TrimSpace(payload.DestinationHospital),
	}

	// A located patient without a stated destination gets routed to
	// the best-ranked hospital, and its ETA fills the record.
	if payload.Location != nil && params.DestinationHospital == "" && h.ranker != nil {
		country := geo.DetectCountry(payload.Location.Latitude, payload.Location.Longitude)
		ranked, err := h.ranker.RankHospitals(r.Context(), payload.Location.Latitude, payload.Location.Longitude, country, 1)
		if err == nil && len(ranked) > 0 {
			params.DestinationHospital = ranked[0].Name
			if params.ETAMinutes == nil {
				eta := ranked[0].EffectiveETA
				params.ETAMinutes = &eta
			}
		}
	}

	record := triage.NewPatientRecord(payload.ChiefComplaint, assessment, params)
	if err := h.queue.Add(r.Context(), record); err != nil {
		respondWithAppError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordClassification(r.Context(), string(assessment.TriageLevel))
		h.metrics.RecordQueueAddition(r.Context())
	}

	h.publish(r, &entities.IntakeEvent{
		ID:          uuid.NewString(),
		Type:        entities.EventPatientAdded,
		PatientID:   record.PatientID,
		TriageLevel: record.TriageLevel,
		Timestamp:   time.Now().UTC(),
	})

	log.Info().
		Str("patient_id", record.PatientID).
		Str("triage_level", string(record.TriageLevel)).
		Int("risk_score", record.RiskScore).
		Msg("Patient added to intake queue")

	respondWithJSON(w, http.StatusCreated, triageResponse{
		Record:     record,
		Assessment: assessment,
	})
}

// Assess handles POST /api/triage/assess: classification without intake.
func (h *TriageHandler) Assess(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	assessment := h.classifier.Classify(payload.ChiefComplaint, payload.Answers)
	assessment = assessment.WithAdvice(triage.AdviceForLevel(assessment.TriageLevel))

	if h.metrics != nil {
		h.metrics.RecordClassification(r.Context(), string(assessment.TriageLevel))
	}

	respondWithJSON(w, http.StatusOK, assessment)
}

func (h *TriageHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (triageRequest, bool) {
	var payload triageRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return payload, false
	}

	payload.ChiefComplaint = strings.TrimSpace(payload.ChiefComplaint)
	if payload.ChiefComplaint == "" {
		respondWithError(w, http.StatusBadRequest, "chief_complaint is required")
		return payload, false
	}
	if len(payload.Answers) > maxIntakeAnswers {
		respondWithError(w, http.StatusBadRequest, "too many answers")
		return payload, false
	}

	return payload, true
}

func (h *TriageHandler) publish(r *http.Request, event *entities.IntakeEvent) {
	if h.bus == nil {
		return
	}
	if err := h.bus.Publish(r.Context(), h.busChannel, event); err != nil {
		log.Warn().Err(err).Str("patient_id", event.PatientID).Msg("failed to publish intake event")
	}
}
