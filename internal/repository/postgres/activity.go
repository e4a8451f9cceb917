package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/doctor-api/internal/model"
)

func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) error {
	query := `
		INSERT INTO activities (id, kind, patient_id, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		activity.ID,
		activity.Kind,
		activity.PatientID,
		activity.Message,
		activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]*model.Activity, error) {
	query := `
		SELECT id, kind, patient_id, message, created_at
		FROM activities
		ORDER BY created_at DESC
		LIMIT $1
	`
	activities := []*model.Activity{}
	if err := r.db.SelectContext(ctx, &activities, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

func (r *activityRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune activities: %w", err)
	}
	return rowsAffected(result, "activities")
}
