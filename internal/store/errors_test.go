package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mnemosyne-app/retain-api/internal/store"
)

func TestEntityNotFoundErrorsWrapGeneric(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		store.ErrDeckNotFound,
		store.ErrCardNotFound,
		store.ErrProgressNotFound,
	} {
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.True(t, store.IsNotFoundError(err))
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, store.IsNotFoundError(store.ErrNotFound))
	assert.True(t, store.IsNotFoundError(fmt.Errorf("outer: %w", store.ErrCardNotFound)))
	assert.False(t, store.IsNotFoundError(store.ErrUnavailable))
	assert.False(t, store.IsNotFoundError(errors.New("unrelated")))
	assert.False(t, store.IsNotFoundError(nil))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection refused")
	err := store.NewStoreError("progress record", "upsert", "failed to lock row", inner)

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "upsert operation on progress record failed")
	assert.Contains(t, err.Error(), "connection refused")

	var storeErr *store.StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "upsert", storeErr.Operation)

	bare := store.NewStoreError("card", "get", "no rows", nil)
	assert.Equal(t, "get operation on card failed: no rows", bare.Error())
}
