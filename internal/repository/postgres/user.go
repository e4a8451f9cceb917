package postgres

import (
	"context"

	"github.com/jwalitptl/doctor-api/internal/model"
)

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, email, role, password_hash
		FROM users
		WHERE lower(email) = lower($1)
	`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}
