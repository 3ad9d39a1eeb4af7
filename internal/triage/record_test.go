package triage_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/triage"
)

var patientIDPattern = regexp.MustCompile(`^ER-\d{4}-[0-9A-F]{4}$`)

func TestNewPatientID_Format(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	id := triage.NewPatientID(now)

	assert.Regexp(t, patientIDPattern, id)
	assert.Contains(t, id, "ER-2026-")
}

func TestNewPatientID_Unique(t *testing.T) {
	now := time.Now().UTC()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[triage.NewPatientID(now)] = struct{}{}
	}
	// 4 hex chars give 65k combinations; 100 draws colliding entirely
	// would mean the entropy source is broken.
	assert.Greater(t, len(seen), 90)
}

func TestNewPatientRecord_Defaults(t *testing.T) {
	classifier := triage.NewClassifier()
	assessment := classifier.Classify("mild headache", nil)

	record := triage.NewPatientRecord("mild headache", assessment, triage.RecordParams{})

	require.NotNil(t, record)
	assert.Regexp(t, patientIDPattern, record.PatientID)
	assert.Equal(t, entities.StatusIncoming, record.Status)
	assert.Equal(t, "en-US", record.Language)
	assert.Equal(t, assessment.TriageLevel, record.TriageLevel)
	assert.Equal(t, assessment.RiskScore, record.RiskScore)
	assert.Equal(t, "mild headache", record.ChiefComplaint)
	assert.Nil(t, record.ETAMinutes)
	assert.Nil(t, record.ArrivalTime)
	assert.Nil(t, record.Location)
	assert.WithinDuration(t, time.Now().UTC(), record.Timestamp, 5*time.Second)
}

func TestNewPatientRecord_ArrivalTimeFromETA(t *testing.T) {
	classifier := triage.NewClassifier()
	assessment := classifier.Classify("chest pain", nil)

	eta := 25
	record := triage.NewPatientRecord("chest pain", assessment, triage.RecordParams{
		Language:   "de-DE",
		ETAMinutes: &eta,
		Location:   &entities.Location{Latitude: 48.78, Longitude: 9.18},
	})

	require.NotNil(t, record.ArrivalTime)
	assert.Equal(t, 25, *record.ETAMinutes)
	assert.WithinDuration(t, record.Timestamp.Add(25*time.Minute), *record.ArrivalTime, time.Second)
	assert.Equal(t, "de-DE", record.Language)
	require.NotNil(t, record.Location)
	assert.Equal(t, 48.78, record.Location.Latitude)
}

func TestNewPatientRecord_CarriesDemographicsAndDestination(t *testing.T) {
	classifier := triage.NewClassifier()
	assessment := classifier.Classify("stomach pain", nil)

	record := triage.NewPatientRecord("stomach pain", assessment, triage.RecordParams{
		Demographics:        entities.Demographics{AgeRange: "30-40", Sex: "f"},
		DestinationHospital: "Marienhospital Stuttgart",
	})

	assert.Equal(t, "30-40", record.Demographics.AgeRange)
	assert.Equal(t, "f", record.Demographics.Sex)
	assert.Equal(t, "Marienhospital Stuttgart", record.DestinationHospital)
}
