package routes

import (
	"net/http"

	"github.com/codezero-health/er-intake/internal/api/handlers"
	"github.com/codezero-health/er-intake/internal/api/middleware"
	"github.com/codezero-health/er-intake/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	triageHandler   *handlers.TriageHandler
	hospitalHandler *handlers.HospitalHandler
	queueHandler    *handlers.QueueHandler
	sseHandler      *handlers.SSEHandler

	metrics        *observability.Metrics
	allowedOrigins []string
}

// NewRouter creates a new router
func NewRouter(
	triageHandler *handlers.TriageHandler,
	hospitalHandler *handlers.HospitalHandler,
	queueHandler *handlers.QueueHandler,
	sseHandler *handlers.SSEHandler,
	metrics *observability.Metrics,
	allowedOrigins []string,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		triageHandler:   triageHandler,
		hospitalHandler: hospitalHandler,
		queueHandler:    queueHandler,
		sseHandler:      sseHandler,
		metrics:         metrics,
		allowedOrigins:  allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Triage endpoints
	r.mux.HandleFunc("POST /api/triage", r.triageHandler.SubmitTriage)
	r.mux.HandleFunc("POST /api/triage/assess", r.triageHandler.Assess)

	// Hospital endpoints
	r.mux.HandleFunc("GET /api/hospitals/rank", r.hospitalHandler.RankHospitals)
	r.mux.HandleFunc("GET /api/hospitals/search", r.hospitalHandler.SearchHospitals)
	r.mux.HandleFunc("PUT /api/hospitals/occupancy", r.hospitalHandler.UpdateOccupancy)

	// Queue endpoints
	r.mux.HandleFunc("GET /api/queue/incoming", r.queueHandler.ListIncoming)
	r.mux.HandleFunc("GET /api/queue/all", r.queueHandler.ListAll)
	r.mux.HandleFunc("GET /api/queue/stats", r.queueHandler.Stats)
	r.mux.HandleFunc("GET /api/queue/{id}", r.queueHandler.GetPatient)
	r.mux.HandleFunc("PUT /api/queue/{id}/status", r.queueHandler.UpdateStatus)
	r.mux.HandleFunc("DELETE /api/queue", r.queueHandler.Clear)

	// Event stream for the ER dashboard
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/queue", r.sseHandler.StreamIntakeEvents)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on preflight
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
