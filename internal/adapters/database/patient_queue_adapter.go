package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/domain/repositories"
	"github.com/codezero-health/er-intake/internal/infrastructure/clients/postgres"
	apperrors "github.com/codezero-health/er-intake/pkg/errors"
)

const patientQueueTable = "patient_queue"

// PatientQueueAdapter implements the intake queue on Postgres.
// Priority ordering happens in Go via TriageLevel.PriorityRank so the
// ordering rule lives in one place, independent of the storage engine.
type PatientQueueAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPatientQueueAdapter creates a new Postgres queue adapter
func NewPatientQueueAdapter(client *postgres.Client) repositories.PatientQueueRepository {
	return &PatientQueueAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// EnsureSchema creates the patient queue table if it does not exist
func (a *PatientQueueAdapter) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS patient_queue (
			patient_id TEXT PRIMARY KEY,
			timestamp TIMESTAMPTZ NOT NULL,
			triage_level TEXT NOT NULL,
			chief_complaint TEXT NOT NULL,
			red_flags JSONB NOT NULL DEFAULT '[]',
			assessment TEXT NOT NULL DEFAULT '',
			suspected_conditions JSONB NOT NULL DEFAULT '[]',
			risk_score INTEGER NOT NULL DEFAULT 5,
			recommended_action TEXT NOT NULL DEFAULT '',
			time_sensitivity TEXT NOT NULL DEFAULT '',
			eta_minutes INTEGER,
			arrival_time TIMESTAMPTZ,
			location_lat DOUBLE PRECISION,
			location_lon DOUBLE PRECISION,
			language TEXT NOT NULL DEFAULT 'en-US',
			age_range TEXT NOT NULL DEFAULT '',
			sex TEXT NOT NULL DEFAULT '',
			destination_hospital TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'incoming',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := a.client.DB().ExecContext(ctx, query); err != nil {
		return apperrors.NewInternalError("failed to create patient queue table", err)
	}
	return nil
}

// Add upserts a record by patient ID
func (a *PatientQueueAdapter) Add(ctx context.Context, record *entities.PatientRecord) error {
	if record == nil || record.PatientID == "" {
		return apperrors.NewValidationError("patient record requires a patient_id")
	}

	redFlags, err := json.Marshal(record.RedFlags)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal red flags", err)
	}
	conditions, err := json.Marshal(record.SuspectedConditions)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal suspected conditions", err)
	}

	row := goqu.Record{
		"patient_id":           record.PatientID,
		"timestamp":            record.Timestamp,
		"triage_level":         string(record.TriageLevel),
		"chief_complaint":      record.ChiefComplaint,
		"red_flags":            string(redFlags),
		"assessment":           record.AssessmentText,
		"suspected_conditions": string(conditions),
		"risk_score":           record.RiskScore,
		"recommended_action":   record.RecommendedAction,
		"time_sensitivity":     record.TimeSensitivity,
		"eta_minutes":          nullableInt(record.ETAMinutes),
		"arrival_time":         nullableTime(record.ArrivalTime),
		"location_lat":         nullableLat(record.Location),
		"location_lon":         nullableLon(record.Location),
		"language":             record.Language,
		"age_range":            record.Demographics.AgeRange,
		"sex":                  record.Demographics.Sex,
		"destination_hospital": record.DestinationHospital,
		"status":               string(entities.StatusIncoming),
		"updated_at":           time.Now().UTC(),
	}

	update := goqu.Record{}
	for k, v := range row {
		if k == "patient_id" || k == "status" {
			continue // existing status survives an upsert
		}
		update[k] = v
	}

	query, args, err := a.db.Insert(patientQueueTable).
		Rows(row).
		OnConflict(goqu.DoUpdate("patient_id", update)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build queue upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to add patient to queue", err)
	}
	return nil
}

// GetByID retrieves a record by patient ID
func (a *PatientQueueAdapter) GetByID(ctx context.Context, patientID string) (*entities.PatientRecord, error) {
	query, args, err := a.db.From(patientQueueTable).
		Where(goqu.C("patient_id").Eq(patientID)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build queue select query", err)
	}

	record, err := a.scanOne(ctx, query, args)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient %s not found", patientID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient", err)
	}
	return record, nil
}

// ListIncoming returns incoming records in priority order
func (a *PatientQueueAdapter) ListIncoming(ctx context.Context, limit int) ([]*entities.PatientRecord, error) {
	query, args, err := a.db.From(patientQueueTable).
		Where(goqu.C("status").Eq(string(entities.StatusIncoming))).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build incoming query", err)
	}

	records, err := a.scanMany(ctx, query, args)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list incoming patients", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		ri, rj := records[i].TriageLevel.PriorityRank(), records[j].TriageLevel.PriorityRank()
		if ri != rj {
			return ri < rj
		}
		return etaRank(records[i]) < etaRank(records[j])
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// ListAll returns records regardless of status, most recently updated first
func (a *PatientQueueAdapter) ListAll(ctx context.Context, limit int) ([]*entities.PatientRecord, error) {
	ds := a.db.From(patientQueueTable).Order(goqu.C("updated_at").Desc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	records, err := a.scanMany(ctx, query, args)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list patients", err)
	}
	return records, nil
}

// UpdateStatus moves a record to the given status
func (a *PatientQueueAdapter) UpdateStatus(ctx context.Context, patientID string, status entities.PatientStatus) error {
	if !status.IsValid() {
		return apperrors.NewValidationError(fmt.Sprintf("invalid status %q", status))
	}

	query, args, err := a.db.Update(patientQueueTable).
		Set(goqu.Record{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		}).
		Where(goqu.C("patient_id").Eq(patientID)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build status update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update patient status", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to read update result", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("patient %s not found", patientID))
	}
	return nil
}

// Stats returns counts by triage level (incoming only) and by status
func (a *PatientQueueAdapter) Stats(ctx context.Context) (*repositories.QueueStats, error) {
	stats := &repositories.QueueStats{
		ByLevel:  make(map[entities.TriageLevel]int),
		ByStatus: make(map[entities.PatientStatus]int),
	}

	levelQuery, levelArgs, err := a.db.From(patientQueueTable).
		Select(goqu.C("triage_level"), goqu.COUNT("*").As("count")).
		Where(goqu.C("status").Eq(string(entities.StatusIncoming))).
		GroupBy(goqu.C("triage_level")).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build level stats query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, levelQuery, levelArgs...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query level stats", err)
	}
	defer rows.Close()

	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan level stats", err)
		}
		stats.ByLevel[entities.TriageLevel(level)] = count
		stats.TotalIncoming += count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read level stats", err)
	}

	statusQuery, statusArgs, err := a.db.From(patientQueueTable).
		Select(goqu.C("status"), goqu.COUNT("*").As("count")).
		GroupBy(goqu.C("status")).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build status stats query", err)
	}

	statusRows, err := a.client.DB().QueryContext(ctx, statusQuery, statusArgs...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query status stats", err)
	}
	defer statusRows.Close()

	for statusRows.Next() {
		var status string
		var count int
		if err := statusRows.Scan(&status, &count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan status stats", err)
		}
		stats.ByStatus[entities.PatientStatus(status)] = count
	}
	if err := statusRows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read status stats", err)
	}

	return stats, nil
}

// Clear removes every record
func (a *PatientQueueAdapter) Clear(ctx context.Context) error {
	query, args, err := a.db.Delete(patientQueueTable).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build clear query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to clear queue", err)
	}
	return nil
}

func (a *PatientQueueAdapter) scanOne(ctx context.Context, query string, args []interface{}) (*entities.PatientRecord, error) {
	row := a.client.DB().QueryRowContext(ctx, query, args...)
	return scanRecord(row)
}

func (a *PatientQueueAdapter) scanMany(ctx context.Context, query string, args []interface{}) ([]*entities.PatientRecord, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*entities.PatientRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(scanner rowScanner) (*entities.PatientRecord, error) {
	var (
		record      entities.PatientRecord
		level       string
		status      string
		redFlags    []byte
		conditions  []byte
		etaMinutes  sql.NullInt64
		arrivalTime sql.NullTime
		lat, lon    sql.NullFloat64
	)

	err := scanner.Scan(
		&record.PatientID,
		&record.Timestamp,
		&level,
		&record.ChiefComplaint,
		&redFlags,
		&record.AssessmentText,
		&conditions,
		&record.RiskScore,
		&record.RecommendedAction,
		&record.TimeSensitivity,
		&etaMinutes,
		&arrivalTime,
		&lat,
		&lon,
		&record.Language,
		&record.Demographics.AgeRange,
		&record.Demographics.Sex,
		&record.DestinationHospital,
		&status,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.TriageLevel = entities.TriageLevel(level)
	record.Status = entities.PatientStatus(status)

	if err := json.Unmarshal(redFlags, &record.RedFlags); err != nil {
		record.RedFlags = nil
	}
	if err := json.Unmarshal(conditions, &record.SuspectedConditions); err != nil {
		record.SuspectedConditions = nil
	}

	if etaMinutes.Valid {
		eta := int(etaMinutes.Int64)
		record.ETAMinutes = &eta
	}
	if arrivalTime.Valid {
		arrival := arrivalTime.Time
		record.ArrivalTime = &arrival
	}
	if lat.Valid && lon.Valid {
		record.Location = &entities.Location{Latitude: lat.Float64, Longitude: lon.Float64}
	}

	return &record, nil
}

func etaRank(record *entities.PatientRecord) int {
	if record.ETAMinutes == nil {
		return int(^uint(0) >> 1)
	}
	return *record.ETAMinutes
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableTime(v *time.Time) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableLat(loc *entities.Location) interface{} {
	if loc == nil {
		return nil
	}
	return loc.Latitude
}

func nullableLon(loc *entities.Location) interface{} {
	if loc == nil {
		return nil
	}
	return loc.Longitude
}
