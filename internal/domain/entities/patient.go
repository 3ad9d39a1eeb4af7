package entities

import "time"

// PatientStatus is the forward-only intake state of a patient record
type PatientStatus string

const (
	StatusIncoming    PatientStatus = "incoming"
	StatusArrived     PatientStatus = "arrived"
	StatusInTreatment PatientStatus = "in_treatment"
	StatusDischarged  PatientStatus = "discharged"
)

// IsValid reports whether the status is one of the four intake states
func (s PatientStatus) IsValid() bool {
	switch s {
	case StatusIncoming, StatusArrived, StatusInTreatment, StatusDischarged:
		return true
	}
	return false
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Demographics carries the two quick intake questions
type Demographics struct {
	AgeRange string `json:"age_range,omitempty"`
	Sex      string `json:"sex,omitempty"`
}

// PatientRecord is the immutable intake record built from an assessment.
// It is owned by the intake queue after creation and mutated only via
// status transitions.
type PatientRecord struct {
	PatientID           string        `json:"patient_id" db:"patient_id"`
	Timestamp           time.Time     `json:"timestamp" db:"timestamp"`
	TriageLevel         TriageLevel   `json:"triage_level" db:"triage_level"`
	ChiefComplaint      string        `json:"chief_complaint" db:"chief_complaint"`
	RedFlags            []RedFlag     `json:"red_flags" db:"-"`
	AssessmentText      string        `json:"assessment" db:"assessment"`
	SuspectedConditions []string      `json:"suspected_conditions" db:"-"`
	RiskScore           int           `json:"risk_score" db:"risk_score"`
	RecommendedAction   string        `json:"recommended_action" db:"recommended_action"`
	TimeSensitivity     string        `json:"time_sensitivity" db:"time_sensitivity"`
	ETAMinutes          *int          `json:"eta_minutes,omitempty" db:"eta_minutes"`
	ArrivalTime         *time.Time    `json:"arrival_time,omitempty" db:"arrival_time"`
	Location            *Location     `json:"location,omitempty" db:"-"`
	Language            string        `json:"language" db:"language"`
	Demographics        Demographics  `json:"demographics" db:"-"`
	DestinationHospital string        `json:"destination_hospital,omitempty" db:"destination_hospital"`
	Status              PatientStatus `json:"status" db:"status"`
	UpdatedAt           time.Time     `json:"updated_at" db:"updated_at"`
}
