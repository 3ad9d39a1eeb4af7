package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codezero-health/er-intake/internal/adapters/memory"
	"github.com/codezero-health/er-intake/internal/domain/entities"
	apperrors "github.com/codezero-health/er-intake/pkg/errors"
)

func newRecord(id string, level entities.TriageLevel, eta *int) *entities.PatientRecord {
	return &entities.PatientRecord{
		PatientID:      id,
		Timestamp:      time.Now().UTC(),
		TriageLevel:    level,
		ChiefComplaint: "test complaint",
		RiskScore:      5,
		ETAMinutes:     eta,
		Language:       "en-US",
		Status:         entities.StatusIncoming,
	}
}

func intPtr(v int) *int { return &v }

func TestPatientQueue_AddAndGet(t *testing.T) {
	queue := memory.NewPatientQueue()
	ctx := context.Background()

	record := newRecord("ER-2026-AB12", entities.TriageUrgent, intPtr(15))
	require.NoError(t, queue.Add(ctx, record))

	got, err := queue.GetByID(ctx, "ER-2026-AB12")
	require.NoError(t, err)
	assert.Equal(t, entities.TriageUrgent, got.TriageLevel)
	assert.Equal(t, entities.StatusIncoming, got.Status)
	assert.Equal(t, 15, *got.ETAMinutes)
}

func TestPatientQueue_AddRequiresPatientID(t *testing.T) {
	queue := memory.NewPatientQueue()

	err := queue.Add(context.Background(), &entities.PatientRecord{})
	assert.True(t, apperrors.IsValidation(err))

	err = queue.Add(context.Background(), nil)
	assert.True(t, apperrors.IsValidation(err))
}

func TestPatientQueue_UpsertPreservesStatus(t *testing.T) {
	queue := memory.NewPatientQueue()
	ctx := context.Background()

	record := newRecord("ER-2026-AB12", entities.TriageUrgent, nil)
	require.NoError(t, queue.Add(ctx, record))
	require.NoError(t, queue.UpdateStatus(ctx, "ER-2026-AB12", entities.StatusArrived))

	// Re-adding the same patient updates fields but keeps the status.
	updated := newRecord("ER-2026-AB12", entities.TriageEmergency, intPtr(5))
	require.NoError(t, queue.Add(ctx, updated))

	got, err := queue.GetByID(ctx, "ER-2026-AB12")
	require.NoError(t, err)
	assert.Equal(t, entities.TriageEmergency, got.TriageLevel)
	assert.Equal(t, entities.StatusArrived, got.Status)

	// An arrived patient must not reappear in the incoming list.
	incoming, err := queue.ListIncoming(ctx, 20)
	require.NoError(t, err)
	for _, r := range incoming {
		assert.NotEqual(t, "ER-2026-AB12", r.PatientID)
	}
}

func TestPatientQueue_ListIncomingOrder(t *testing.T) {
	queue := memory.NewPatientQueue()
	ctx := context.Background()

	require.NoError(t, queue.Add(ctx, newRecord("routine", entities.TriageRoutine, intPtr(5))))
	require.NoError(t, queue.Add(ctx, newRecord("urgent-far", entities.TriageUrgent, intPtr(30))))
	require.NoError(t, queue.Add(ctx, newRecord("urgent-near", entities.TriageUrgent, intPtr(10))))
	require.NoError(t, queue.Add(ctx, newRecord("urgent-unknown", entities.TriageUrgent, nil)))
	require.NoError(t, queue.Add(ctx, newRecord("emergency", entities.TriageEmergency, intPtr(60))))

	records, err := queue.ListIncoming(ctx, 20)
	require.NoError(t, err)
	require.Len(t, records, 5)

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.PatientID
	}
	assert.Equal(t, []string{"emergency", "urgent-near", "urgent-far", "urgent-unknown", "routine"}, ids)
}

func TestPatientQueue_ListIncomingExcludesOtherStatuses(t *testing.T) {
	queue := memory.NewPatientQueue()
	ctx := context.Background()

	require.NoError(t, queue.Add(ctx, newRecord("a", entities.TriageUrgent, nil)))
	require.NoError(t, queue.Add(ctx, newRecord("b", entities.TriageUrgent, nil)))
	require.NoError(t, queue.UpdateStatus(ctx, "a", entities.StatusArrived))

	records, err := queue.ListIncoming(ctx, 20)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "b", records[0].PatientID)
}

func TestPatientQueue_ListIncomingLimit(t *testing.T) {
	queue := memory.NewPatientQueue()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, queue.Add(ctx, newRecord(fmt.Sprintf("p%d", i), entities.TriageRoutine, intPtr(i))))
	}

	records, err := queue.ListIncoming(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestPatientQueue_ListAllIncludesEveryStatus(t *testing.T) {
	queue := memory.NewPatientQueue()
	ctx := context.Background()

	require.NoError(t, queue.Add(ctx, newRecord("a", entities.TriageUrgent, nil)))
	require.NoError(t, queue.Add(ctx, newRecord("b", entities.TriageRoutine, nil)))
	require.NoError(t, queue.UpdateStatus(ctx, "a", entities.StatusDischarged))

	records, err := queue.ListAll(ctx, 20)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestPatientQueue_UpdateStatus(t *testing.T) {
	queue := memory.NewPatientQueue()
	ctx := context.Background()

	require.NoError(t, queue.Add(ctx, newRecord("a", entities.TriageUrgent, nil)))

	require.NoError(t, queue.UpdateStatus(ctx, "a", entities.StatusArrived))
	got, err := queue.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusArrived, got.Status)
}

func TestPatientQueue_UpdateStatusInvalid(t *testing.T) {
	queue := memory.NewPatientQueue()
	ctx := context.Background()

	require.NoError(t, queue.Add(ctx, newRecord("a", entities.TriageUrgent, nil)))

	err := queue.UpdateStatus(ctx, "a", entities.PatientStatus("teleported"))
	assert.True(t, apperrors.IsValidation(err))
}

func TestPatientQueue_UpdateStatusUnknownPatient(t *testing.T) {
	queue := memory.NewPatientQueue()

	err := queue.UpdateStatus(context.Background(), "missing", entities.StatusArrived)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPatientQueue_GetByIDNotFound(t *testing.T) {
	queue := memory.NewPatientQueue()

	_, err := queue.GetByID(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPatientQueue_Stats(t *testing.T) {
	queue := memory.NewPatientQueue()
	ctx := context.Background()

	require.NoError(t, queue.Add(ctx, newRecord("e1", entities.TriageEmergency, nil)))
	require.NoError(t, queue.Add(ctx, newRecord("u1", entities.TriageUrgent, nil)))
	require.NoError(t, queue.Add(ctx, newRecord("u2", entities.TriageUrgent, nil)))
	require.NoError(t, queue.UpdateStatus(ctx, "u2", entities.StatusInTreatment))

	stats, err := queue.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalIncoming)
	assert.Equal(t, 1, stats.ByLevel[entities.TriageEmergency])
	assert.Equal(t, 1, stats.ByLevel[entities.TriageUrgent])
	assert.Equal(t, 2, stats.ByStatus[entities.StatusIncoming])
	assert.Equal(t, 1, stats.ByStatus[entities.StatusInTreatment])
}

func TestPatientQueue_Clear(t *testing.T) {
	queue := memory.NewPatientQueue()
	ctx := context.Background()

	require.NoError(t, queue.Add(ctx, newRecord("a", entities.TriageUrgent, nil)))
	require.NoError(t, queue.Clear(ctx))

	stats, err := queue.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalIncoming)
}

func TestPatientQueue_ReturnedRecordsAreCopies(t *testing.T) {
	queue := memory.NewPatientQueue()
	ctx := context.Background()

	record := newRecord("a", entities.TriageUrgent, nil)
	record.RedFlags = []entities.RedFlag{entities.FlagFever}
	require.NoError(t, queue.Add(ctx, record))

	got, err := queue.GetByID(ctx, "a")
	require.NoError(t, err)
	got.RedFlags[0] = entities.FlagBleeding
	got.Status = entities.StatusDischarged

	fresh, err := queue.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, entities.FlagFever, fresh.RedFlags[0])
	assert.Equal(t, entities.StatusIncoming, fresh.Status)
}

func TestPatientQueue_ConcurrentAccess(t *testing.T) {
	queue := memory.NewPatientQueue()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("p%d", n)
			_ = queue.Add(ctx, newRecord(id, entities.TriageUrgent, intPtr(n)))
			_, _ = queue.ListIncoming(ctx, 10)
			_, _ = queue.Stats(ctx)
		}(i)
	}
	wg.Wait()

	stats, err := queue.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, stats.TotalIncoming)
}
