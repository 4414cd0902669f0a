package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ibcplay/ibcplay/internal/domain"
)

// isUniqueViolation reports whether err is a unique constraint rejection
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

// mapConcurrencyError converts serialization failures and broken deadlocks
// into domain.ErrConflict so the service retry loop can recognize them.
// Check violations surface as insufficient funds: the balance CHECK is the
// last line of defense when a concurrent write slipped past the row lock.
func mapConcurrencyError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case PgErrorCodeSerializationFailure, PgErrorCodeDeadlockDetected:
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.Code)
	case PgErrorCodeCheckViolation:
		return fmt.Errorf("%w: %s", domain.ErrInsufficientFunds, pgErr.ConstraintName)
	}
	return err
}
