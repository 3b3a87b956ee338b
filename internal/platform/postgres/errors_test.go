package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/mnemosyne-app/retain-api/internal/store"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("not a pg error")))
	assert.False(t, isUniqueViolation(nil))
}

func TestMapError(t *testing.T) {
	t.Parallel()

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, mapError("card", "get", nil, store.ErrCardNotFound))
	})

	t.Run("no rows becomes the entity sentinel", func(t *testing.T) {
		t.Parallel()
		err := mapError("card", "get", sql.ErrNoRows, store.ErrCardNotFound)
		assert.ErrorIs(t, err, store.ErrCardNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("unique violation becomes duplicate", func(t *testing.T) {
		t.Parallel()
		err := mapError("progress record", "upsert",
			&pgconn.PgError{Code: uniqueViolationCode}, store.ErrProgressNotFound)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("context errors pass through", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t,
			mapError("card", "get", context.Canceled, store.ErrCardNotFound),
			context.Canceled)
		assert.ErrorIs(t,
			mapError("card", "get", context.DeadlineExceeded, store.ErrCardNotFound),
			context.DeadlineExceeded)
	})

	t.Run("driver failures become unavailable", func(t *testing.T) {
		t.Parallel()
		err := mapError("progress record", "upsert",
			errors.New("connection refused"), store.ErrProgressNotFound)
		assert.ErrorIs(t, err, store.ErrUnavailable)

		var storeErr *store.StoreError
		assert.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "upsert", storeErr.Operation)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})
}
