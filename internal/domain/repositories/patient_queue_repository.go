package repositories

import (
	"context"

	"github.com/codezero-health/er-intake/internal/domain/entities"
)

// QueueStats summarizes the current intake queue
type QueueStats struct {
	TotalIncoming int                            `json:"total_incoming"`
	ByLevel       map[entities.TriageLevel]int   `json:"by_level"`
	ByStatus      map[entities.PatientStatus]int `json:"by_status"`
}

// PatientQueueRepository is the ordered store of patient records keyed
// by patient ID. Implementations must serialize writes per patient ID
// and serve reads from a consistent snapshot.
type PatientQueueRepository interface {
	// Add upserts a record by patient ID. First insert forces
	// status to incoming; a re-add rewrites the clinical fields but
	// keeps the stored status, so transitions are never rolled back.
	Add(ctx context.Context, record *entities.PatientRecord) error

	// GetByID returns the record or a not found error.
	GetByID(ctx context.Context, patientID string) (*entities.PatientRecord, error)

	// ListIncoming returns incoming records ordered by triage
	// priority rank, then ascending ETA with missing ETAs last.
	ListIncoming(ctx context.Context, limit int) ([]*entities.PatientRecord, error)

	// ListAll returns records regardless of status, most recently
	// updated first.
	ListAll(ctx context.Context, limit int) ([]*entities.PatientRecord, error)

	// UpdateStatus moves a record to the given status. Invalid
	// statuses are a validation error, unknown IDs a not found error.
	UpdateStatus(ctx context.Context, patientID string, status entities.PatientStatus) error

	// Stats returns counts by triage level (incoming only) and by
	// status (all records).
	Stats(ctx context.Context) (*QueueStats, error)

	// Clear removes every record. Administrative, test-only.
	Clear(ctx context.Context) error
}
