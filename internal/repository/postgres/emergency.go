package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/doctor-api/internal/model"
)

func (r *emergencyRepository) GetCrisisProtocol(ctx context.Context, patientID uuid.UUID) (*model.CrisisProtocol, error) {
	query := `
		SELECT id, patient_id, calm_space, soothing_object, other_strategies, updated_at
		FROM crisis_protocols
		WHERE patient_id = $1
		LIMIT 1
	`
	var protocol model.CrisisProtocol
	err := r.db.GetContext(ctx, &protocol, query, patientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get crisis protocol: %w", err)
	}
	return &protocol, nil
}

// UpsertCrisisProtocol relies on UNIQUE (patient_id): concurrent writers for
// the same patient serialize on the constraint and the last one wins.
func (r *emergencyRepository) UpsertCrisisProtocol(ctx context.Context, protocol *model.CrisisProtocol) error {
	query := `
		INSERT INTO crisis_protocols (
			id, patient_id, calm_space, soothing_object, other_strategies, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (patient_id) DO UPDATE SET
			calm_space = EXCLUDED.calm_space,
			soothing_object = EXCLUDED.soothing_object,
			other_strategies = EXCLUDED.other_strategies,
			updated_at = EXCLUDED.updated_at
		RETURNING id, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		protocol.ID,
		protocol.PatientID,
		protocol.CalmSpace,
		protocol.SoothingObject,
		protocol.OtherStrategies,
		protocol.UpdatedAt,
	).Scan(&protocol.ID, &protocol.UpdatedAt)
	if err != nil {
		return writeErr(err, "upsert crisis protocol")
	}
	return nil
}

func (r *emergencyRepository) ListContacts(ctx context.Context, patientID uuid.UUID) ([]*model.EmergencyContact, error) {
	query := `
		SELECT id, patient_id, name, phone, relation, created_at
		FROM emergency_contacts
		WHERE patient_id = $1
		ORDER BY created_at ASC
	`
	contacts := []*model.EmergencyContact{}
	if err := r.db.SelectContext(ctx, &contacts, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list emergency contacts: %w", err)
	}
	return contacts, nil
}

func (r *emergencyRepository) CreateContact(ctx context.Context, contact *model.EmergencyContact) error {
	query := `
		INSERT INTO emergency_contacts (id, patient_id, name, phone, relation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		contact.ID,
		contact.PatientID,
		contact.Name,
		contact.Phone,
		contact.Relation,
		contact.CreatedAt,
	)
	if err != nil {
		return writeErr(err, "create emergency contact")
	}
	return nil
}

func (r *emergencyRepository) DeleteContact(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM emergency_contacts WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete emergency contact: %w", err)
	}
	return rowsAffected(result, "emergency contact")
}

func (r *emergencyRepository) DeletePatientContact(ctx context.Context, patientID, id uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM emergency_contacts WHERE id = $1 AND patient_id = $2`, id, patientID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete emergency contact: %w", err)
	}
	return rowsAffected(result, "emergency contact")
}

func (r *emergencyRepository) ListJournal(ctx context.Context, patientID uuid.UUID) ([]*model.BehaviorJournalEntry, error) {
	query := `
		SELECT id, patient_id, event_date, "trigger", solution, duration, created_at
		FROM behavior_journal
		WHERE patient_id = $1
		ORDER BY event_date DESC, created_at DESC
	`
	entries := []*model.BehaviorJournalEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list behavior journal: %w", err)
	}
	return entries, nil
}

func (r *emergencyRepository) CreateJournalEntry(ctx context.Context, entry *model.BehaviorJournalEntry) error {
	query := `
		INSERT INTO behavior_journal (id, patient_id, event_date, "trigger", solution, duration, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.PatientID,
		entry.EventDate,
		entry.Trigger,
		entry.Solution,
		entry.Duration,
		entry.CreatedAt,
	)
	if err != nil {
		return writeErr(err, "create behavior journal entry")
	}
	return nil
}

func (r *emergencyRepository) DeleteJournalEntry(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM behavior_journal WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete behavior journal entry: %w", err)
	}
	return rowsAffected(result, "behavior journal entry")
}

func (r *emergencyRepository) DeletePatientJournalEntry(ctx context.Context, patientID, id uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM behavior_journal WHERE id = $1 AND patient_id = $2`, id, patientID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete behavior journal entry: %w", err)
	}
	return rowsAffected(result, "behavior journal entry")
}
