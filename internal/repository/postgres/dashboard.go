package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/doctor-api/internal/model"
)

func (r *dashboardRepository) GetStats(ctx context.Context) (*model.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM appointments WHERE date = CURRENT_DATE) AS appointments_today,
			(SELECT COUNT(*) FROM appointments WHERE date >= CURRENT_DATE AND status = 'scheduled') AS pending_appointments,
			(SELECT COUNT(*) FROM patients WHERE status = 'active') AS active_patients,
			(SELECT COUNT(*) FROM appointments WHERE status = 'completed') AS completed_appointments,
			(SELECT COUNT(*) FROM appointments WHERE status = 'cancelled') AS cancelled_appointments
	`
	var stats model.DashboardStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return &stats, nil
}

func (r *dashboardRepository) ListUpcomingAppointments(ctx context.Context, limit int) ([]*model.UpcomingAppointment, error) {
	query := `
		SELECT a.id, p.name AS patient,
			   to_char(a.date, 'YYYY-MM-DD') AS date, to_char(a.time, 'HH24:MI') AS time,
			   a.type, a.status
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.date >= CURRENT_DATE AND a.status <> 'cancelled'
		ORDER BY a.date ASC, a.time ASC
		LIMIT $1
	`
	upcoming := []*model.UpcomingAppointment{}
	if err := r.db.SelectContext(ctx, &upcoming, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	return upcoming, nil
}

func (r *dashboardRepository) ListAlerts(ctx context.Context, limit int) ([]*model.Alert, error) {
	query := `
		SELECT id, priority, message, created_at
		FROM alerts
		WHERE active
		ORDER BY created_at DESC
		LIMIT $1
	`
	alerts := []*model.Alert{}
	if err := r.db.SelectContext(ctx, &alerts, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}
