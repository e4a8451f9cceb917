package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/doctor-api/internal/model"
)

const appointmentSelect = `
	SELECT a.id, a.patient_id, p.name AS patient_name,
		   to_char(a.date, 'YYYY-MM-DD') AS date, to_char(a.time, 'HH24:MI') AS time,
		   a.duration, a.type, a.status, a.reason, a.created_at
`

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		WITH a AS (
			INSERT INTO appointments (
				id, patient_id, date, time, duration,
				type, status, reason, created_at
			) VALUES ($1, $2, $3::date, $4::time, $5, $6, $7, $8, $9)
			RETURNING *
		)` + appointmentSelect + `
		FROM a
		JOIN patients p ON p.id = a.patient_id
	`
	err := r.db.GetContext(ctx, appointment, query,
		appointment.ID,
		appointment.PatientID,
		appointment.Date,
		appointment.Time,
		appointment.Duration,
		appointment.Type,
		appointment.Status,
		appointment.Reason,
		appointment.CreatedAt,
	)
	if err != nil {
		return writeErr(err, "create appointment")
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters model.AppointmentFilters) ([]*model.Appointment, error) {
	query := appointmentSelect + `
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
	`
	args := []interface{}{}

	if filters.Date != "" {
		query += ` WHERE a.date = $1::date`
		args = append(args, filters.Date)
	}

	query += ` ORDER BY a.date ASC, a.time ASC`

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
