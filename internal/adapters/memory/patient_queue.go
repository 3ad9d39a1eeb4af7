package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/domain/repositories"
	apperrors "github.com/codezero-health/er-intake/pkg/errors"
)

// PatientQueue is the in-memory implementation of the intake queue.
// Records are copied on the way in and out so readers always observe a
// consistent snapshot and callers cannot mutate stored state.
type PatientQueue struct {
	mu      sync.RWMutex
	records map[string]*entities.PatientRecord
}

// NewPatientQueue creates an empty in-memory queue
func NewPatientQueue() repositories.PatientQueueRepository {
	return &PatientQueue{
		records: make(map[string]*entities.PatientRecord),
	}
}

// Add upserts by patient ID. First insert forces status to incoming;
// a re-add keeps the stored status so re-triage cannot roll back the
// intake state machine.
func (q *PatientQueue) Add(ctx context.Context, record *entities.PatientRecord) error {
	if record == nil || record.PatientID == "" {
		return apperrors.NewValidationError("patient record requires a patient_id")
	}

	stored := copyRecord(record)
	stored.UpdatedAt = time.Now().UTC()

	q.mu.Lock()
	defer q.mu.Unlock()

	if existing, ok := q.records[stored.PatientID]; ok {
		stored.Status = existing.Status
	} else {
		stored.Status = entities.StatusIncoming
	}
	q.records[stored.PatientID] = stored
	return nil
}

// GetByID returns a copy of the record
func (q *PatientQueue) GetByID(ctx context.Context, patientID string) (*entities.PatientRecord, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	record, ok := q.records[patientID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient %s not found", patientID))
	}
	return copyRecord(record), nil
}

// ListIncoming returns incoming records ordered by triage priority
// rank, then ascending ETA with missing ETAs last
func (q *PatientQueue) ListIncoming(ctx context.Context, limit int) ([]*entities.PatientRecord, error) {
	q.mu.RLock()
	incoming := make([]*entities.PatientRecord, 0, len(q.records))
	for _, record := range q.records {
		if record.Status == entities.StatusIncoming {
			incoming = append(incoming, copyRecord(record))
		}
	}
	q.mu.RUnlock()

	sort.SliceStable(incoming, func(i, j int) bool {
		ri, rj := incoming[i].TriageLevel.PriorityRank(), incoming[j].TriageLevel.PriorityRank()
		if ri != rj {
			return ri < rj
		}
		return etaRank(incoming[i]) < etaRank(incoming[j])
	})

	if limit > 0 && len(incoming) > limit {
		incoming = incoming[:limit]
	}
	return incoming, nil
}

// ListAll returns records regardless of status, most recently updated
// first
func (q *PatientQueue) ListAll(ctx context.Context, limit int) ([]*entities.PatientRecord, error) {
	q.mu.RLock()
	all := make([]*entities.PatientRecord, 0, len(q.records))
	for _, record := range q.records {
		all = append(all, copyRecord(record))
	}
	q.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// UpdateStatus moves a record to the given status. The state machine
// is forward-only by convention; only target validity is enforced
// here.
func (q *PatientQueue) UpdateStatus(ctx context.Context, patientID string, status entities.PatientStatus) error {
	if !status.IsValid() {
		return apperrors.NewValidationError(fmt.Sprintf("invalid status %q", status))
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	record, ok := q.records[patientID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("patient %s not found", patientID))
	}

	updated := copyRecord(record)
	updated.Status = status
	updated.UpdatedAt = time.Now().UTC()
	q.records[patientID] = updated
	return nil
}

// Stats returns counts by triage level (incoming only) and by status
func (q *PatientQueue) Stats(ctx context.Context) (*repositories.QueueStats, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	stats := &repositories.QueueStats{
		ByLevel:  make(map[entities.TriageLevel]int),
		ByStatus: make(map[entities.PatientStatus]int),
	}

	for _, record := range q.records {
		stats.ByStatus[record.Status]++
		if record.Status == entities.StatusIncoming {
			stats.ByLevel[record.TriageLevel]++
			stats.TotalIncoming++
		}
	}
	return stats, nil
}

// Clear removes every record
func (q *PatientQueue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.records = make(map[string]*entities.PatientRecord)
	return nil
}

func etaRank(record *entities.PatientRecord) int {
	if record.ETAMinutes == nil {
		return int(^uint(0) >> 1) // nulls sort last
	}
	return *record.ETAMinutes
}

func copyRecord(record *entities.PatientRecord) *entities.PatientRecord {
	clone := *record
	clone.RedFlags = append([]entities.RedFlag(nil), record.RedFlags...)
	clone.SuspectedConditions = append([]string(nil), record.SuspectedConditions...)
	if record.ETAMinutes != nil {
		eta := *record.ETAMinutes
		clone.ETAMinutes = &eta
	}
	if record.ArrivalTime != nil {
		arrival := *record.ArrivalTime
		clone.ArrivalTime = &arrival
	}
	if record.Location != nil {
		loc := *record.Location
		clone.Location = &loc
	}
	return &clone
}
