package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mnemosyne-app/retain-api/internal/store"
)

// PostgreSQL error codes
const uniqueViolationCode = "23505" // unique constraint violation

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation, such as a duplicate (user_id, card_id) pair.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// mapError translates a driver-level error into the store taxonomy.
// sql.ErrNoRows becomes notFound; unique violations become
// ErrDuplicate; everything else is treated as a transient store
// failure and wrapped with ErrUnavailable so callers know a retry with
// the same inputs is safe.
func mapError(entity, operation string, err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return notFound
	case isUniqueViolation(err):
		return store.NewStoreError(entity, operation, "duplicate key", store.ErrDuplicate)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return store.NewStoreError(entity, operation, "query failed",
			fmt.Errorf("%w: %v", store.ErrUnavailable, err))
	}
}
