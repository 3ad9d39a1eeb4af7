package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/domain/providers"
)

// SSEHandler streams intake events to dashboard clients.
type SSEHandler struct {
	eventBus providers.EventBus
	channel  string
}

// NewSSEHandler creates a new SSE handler.
func NewSSEHandler(eventBus providers.EventBus, channel string) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		channel:  channel,
	}
}

// StreamIntakeEvents handles SSE connections for queue updates
// GET /api/stream/queue
func (h *SSEHandler) StreamIntakeEvents(w http.ResponseWriter, r *http.Request) {
	if h.eventBus == nil {
		respondWithError(w, http.StatusServiceUnavailable, "event streaming not configured")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	eventChan, err := h.eventBus.Subscribe(r.Context(), h.channel)
	if err != nil {
		log.Error().Err(err).Str("channel", h.channel).Msg("Failed to subscribe to intake events")
		respondWithError(w, http.StatusInternalServerError, "failed to subscribe to events")
		return
	}

	h.sendEvent(w, "connected", map[string]interface{}{
		"channel":   h.channel,
		"timestamp": time.Now().UTC(),
	})
	flusher.Flush()

	clientChan := make(chan *entities.IntakeEvent, 10)
	go h.forwardEvents(r.Context(), eventChan, clientChan)

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug().Str("channel", h.channel).Msg("Client disconnected from intake stream")
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now().UTC(),
			})
			flusher.Flush()
		case event := <-clientChan:
			if event == nil {
				continue
			}
			h.sendEvent(w, event.Type, event)
			flusher.Flush()
		}
	}
}

// forwardEvents forwards events from the event bus to a client channel
func (h *SSEHandler) forwardEvents(ctx context.Context, eventChan <-chan *entities.IntakeEvent, clientChan chan<- *entities.IntakeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			select {
			case clientChan <- event:
			default:
				// Client channel full, skip event
			}
		}
	}
}

// sendEvent sends an SSE event to the client
func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to marshal event data")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}
