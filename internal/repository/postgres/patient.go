package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/doctor-api/internal/model"
)

const patientColumns = `id, name, age, gender, condition, status, created_at, updated_at`

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (id, name, age, gender, condition, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.Name,
		patient.Age,
		patient.Gender,
		patient.Condition,
		patient.Status,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, notFound(err, "patient")
	}
	return &patient, nil
}

// Update overwrites the editable fields. Updating a missing id is not an error.
func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, age = $2, gender = $3, condition = $4, status = $5, updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query,
		patient.Name,
		patient.Age,
		patient.Gender,
		patient.Condition,
		patient.Status,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY name ASC`
	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
