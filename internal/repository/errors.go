package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shenikar/incident_dispatch/internal/models"
)

const activeSlotIndex = "uq_assignments_active_slot"

// mapError переводит ошибки Postgres в доменные
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.LockNotAvailable, pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return fmt.Errorf("%w: %s", models.ErrContention, pgErr.Message)
	case pgerrcode.UniqueViolation:
		if pgErr.ConstraintName == activeSlotIndex {
			return fmt.Errorf("%w: %s", models.ErrAlreadyAssigned, pgErr.Detail)
		}
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %s", models.ErrNotFound, pgErr.Detail)
	}
	return err
}
