package triage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codezero-health/er-intake/internal/domain/entities"
)

// RecordParams carries the optional inputs to the record factory
type RecordParams struct {
	Language            string
	ETAMinutes          *int
	Location            *entities.Location
	Demographics        entities.Demographics
	DestinationHospital string
}

// NewPatientRecord builds an immutable patient record from a
// classification result. Pure function of its inputs plus the clock
// and ID entropy; persistence is the caller's responsibility.
func NewPatientRecord(chiefComplaint string, assessment entities.Assessment, params RecordParams) *entities.PatientRecord {
	now := time.Now().UTC()

	language := params.Language
	if language == "" {
		language = "en-US"
	}

	record := &entities.PatientRecord{
		PatientID:           NewPatientID(now),
		Timestamp:           now,
		TriageLevel:         assessment.TriageLevel,
		ChiefComplaint:      chiefComplaint,
		RedFlags:            assessment.RedFlags,
		AssessmentText:      assessment.AssessmentText,
		SuspectedConditions: assessment.SuspectedConditions,
		RiskScore:           assessment.RiskScore,
		RecommendedAction:   assessment.RecommendedAction,
		TimeSensitivity:     assessment.TimeSensitivity,
		ETAMinutes:          params.ETAMinutes,
		Location:            params.Location,
		Language:            language,
		Demographics:        params.Demographics,
		DestinationHospital: params.DestinationHospital,
		Status:              entities.StatusIncoming,
		UpdatedAt:           now,
	}

	if params.ETAMinutes != nil {
		arrival := now.Add(time.Duration(*params.ETAMinutes) * time.Minute)
		record.ArrivalTime = &arrival
	}

	return record
}

// NewPatientID generates a time-partitioned, collision-resistant
// identifier in the form ER-<year>-<4 hex>.
func NewPatientID(now time.Time) string {
	entropy := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("ER-%d-%s", now.Year(), entropy)
}
