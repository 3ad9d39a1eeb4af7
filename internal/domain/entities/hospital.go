package entities

import "time"

// Hospital is static reference data for one emergency-capable facility
type Hospital struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
	Country string  `json:"country"`
}

// OccupancyLevel is a discrete load indicator for a hospital ER
type OccupancyLevel string

const (
	OccupancyLow    OccupancyLevel = "low"
	OccupancyMedium OccupancyLevel = "medium"
	OccupancyHigh   OccupancyLevel = "high"
	OccupancyFull   OccupancyLevel = "full"
)

// IsValid reports whether the level is one of the four known levels
func (o OccupancyLevel) IsValid() bool {
	switch o {
	case OccupancyLow, OccupancyMedium, OccupancyHigh, OccupancyFull:
		return true
	}
	return false
}

// PenaltyMinutes returns the fixed minute penalty blended into the
// effective ETA for this occupancy level
func (o OccupancyLevel) PenaltyMinutes() int {
	switch o {
	case OccupancyLow:
		return 0
	case OccupancyMedium:
		return 10
	case OccupancyHigh:
		return 25
	case OccupancyFull:
		return 60
	default:
		return 10
	}
}

// RouteSource identifies which source produced a route estimate
type RouteSource string

const (
	RouteSourceLive      RouteSource = "live_routing"
	RouteSourceEstimated RouteSource = "estimated"
)

// RouteEstimate is the common result shape for travel-time estimation,
// whether it came from a live routing provider or the haversine fallback.
type RouteEstimate struct {
	ETAMinutes      int         `json:"eta_minutes"`
	DistanceKm      float64     `json:"distance_km"`
	TrafficDelayMin int         `json:"traffic_delay_minutes"`
	Source          RouteSource `json:"source"`
}

// RankedHospital extends Hospital with the ranking computation
type RankedHospital struct {
	Hospital
	DistanceKm   float64        `json:"distance_km"`
	ETAMinutes   int            `json:"eta_minutes"`
	Occupancy    OccupancyLevel `json:"occupancy"`
	EffectiveETA int            `json:"effective_eta"`
	Source       RouteSource    `json:"source"`
}

// IntakeEvent is published on the event bus when the queue changes
type IntakeEvent struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	PatientID   string      `json:"patient_id"`
	TriageLevel TriageLevel `json:"triage_level,omitempty"`
	Status      string      `json:"status,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

// Intake event types
const (
	EventPatientAdded  = "patient.added"
	EventStatusChanged = "patient.status_changed"
	EventQueueCleared  = "queue.cleared"
)
