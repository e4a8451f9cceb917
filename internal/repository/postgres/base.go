package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jwalitptl/doctor-api/internal/repository"
)

const foreignKeyViolation = pq.ErrorCode("23503")

// writeErr maps a foreign key violation onto repository.ErrUnknownPatient.
func writeErr(err error, action string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return repository.ErrUnknownPatient
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// notFound maps sql.ErrNoRows onto repository.ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

func rowsAffected(result sql.Result, what string) (int64, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected for %s: %w", what, err)
	}
	return n, nil
}
