package review_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/domain/srs"
	"github.com/mnemosyne-app/retain-api/internal/mocks"
	"github.com/mnemosyne-app/retain-api/internal/service/review"
	"github.com/mnemosyne-app/retain-api/internal/store"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newServiceFixture wires a review service against in-memory stores
// with one registered card.
func newServiceFixture(t *testing.T) (review.Service, *mocks.MockCardStore, *mocks.MockProgressStore, *domain.Card) {
	t.Helper()

	cards := mocks.NewMockCardStore()
	progress := mocks.NewMockProgressStore()

	card, err := domain.NewCard(uuid.New(), "Bonjour", "Hello")
	require.NoError(t, err)
	cards.Add(card)

	svc := review.NewService(cards, progress, srs.NewScheduler(), nil)
	return svc, cards, progress, card
}

func TestRecordReviewInvalidGradeTouchesNoStore(t *testing.T) {
	t.Parallel()

	svc, cards, progress, card := newServiceFixture(t)

	cards.ExistsFn = func(ctx context.Context, id uuid.UUID) (bool, error) {
		t.Error("card store must not be touched for an invalid grade")
		return false, nil
	}

	for _, grade := range []domain.Grade{-1, 6} {
		_, err := svc.RecordReview(context.Background(), uuid.New(), card.ID, grade, testNow)
		assert.ErrorIs(t, err, review.ErrInvalidGrade)
	}

	assert.Zero(t, progress.UpsertCalls())
}

func TestRecordReviewCardNotFound(t *testing.T) {
	t.Parallel()

	svc, _, progress, _ := newServiceFixture(t)

	_, err := svc.RecordReview(context.Background(), uuid.New(), uuid.New(), 4, testNow)
	assert.ErrorIs(t, err, review.ErrCardNotFound)
	assert.Zero(t, progress.UpsertCalls())
}

func TestRecordReviewCreatesRecordOnFirstReview(t *testing.T) {
	t.Parallel()

	svc, _, progress, card := newServiceFixture(t)
	userID := uuid.New()

	record, err := svc.RecordReview(context.Background(), userID, card.ID, 5, testNow)
	require.NoError(t, err)

	assert.Equal(t, userID, record.UserID)
	assert.Equal(t, card.ID, record.CardID)
	assert.Equal(t, domain.Grade(5), record.LastGrade)
	assert.Equal(t, 1, record.IntervalDays)
	assert.InDelta(t, 2.8, record.EaseFactor, 1e-9)
	assert.True(t, record.DueAt.Equal(testNow.AddDate(0, 0, 1)))
	assert.Equal(t, 1, progress.UpsertCalls())

	// The record is persisted, not just returned.
	stored, err := progress.Get(context.Background(), userID, card.ID)
	require.NoError(t, err)
	assert.Equal(t, record, stored)
}

func TestRecordReviewAdvancesExistingRecord(t *testing.T) {
	t.Parallel()

	svc, _, progress, card := newServiceFixture(t)
	userID := uuid.New()

	prior, err := domain.NewProgressRecord(userID, card.ID, testNow.AddDate(0, 0, -1))
	require.NoError(t, err)
	prior.LastGrade = 4
	prior.IntervalDays = 1
	prior.EaseFactor = 2.65
	progress.Seed(prior)

	record, err := svc.RecordReview(context.Background(), userID, card.ID, 4, testNow)
	require.NoError(t, err)

	assert.Equal(t, 6, record.IntervalDays)
	assert.InDelta(t, 2.8, record.EaseFactor, 1e-9)
	assert.True(t, record.DueAt.Equal(testNow.AddDate(0, 0, 6)))
	assert.True(t, record.CreatedAt.Equal(prior.CreatedAt), "creation time survives updates")
}

func TestRecordReviewLapseSchedulesRelearn(t *testing.T) {
	t.Parallel()

	svc, _, progress, card := newServiceFixture(t)
	userID := uuid.New()

	prior, err := domain.NewProgressRecord(userID, card.ID, testNow.AddDate(0, 0, -20))
	require.NoError(t, err)
	prior.LastGrade = 4
	prior.IntervalDays = 18
	prior.EaseFactor = 2.95
	progress.Seed(prior)

	record, err := svc.RecordReview(context.Background(), userID, card.ID, 1, testNow)
	require.NoError(t, err)

	assert.Equal(t, 1, record.IntervalDays)
	assert.InDelta(t, 2.75, record.EaseFactor, 1e-9)
	assert.True(t, record.DueAt.Equal(testNow.Add(10*time.Minute)))
}

func TestRecordReviewStoreUnavailable(t *testing.T) {
	t.Parallel()

	t.Run("card lookup fails", func(t *testing.T) {
		t.Parallel()

		svc, cards, _, card := newServiceFixture(t)
		cards.ExistsFn = func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, store.ErrUnavailable
		}

		_, err := svc.RecordReview(context.Background(), uuid.New(), card.ID, 4, testNow)
		assert.ErrorIs(t, err, review.ErrStoreUnavailable)

		var svcErr *review.ServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "record_review", svcErr.Operation)
	})

	t.Run("upsert fails", func(t *testing.T) {
		t.Parallel()

		svc, _, progress, card := newServiceFixture(t)
		progress.UpsertFn = func(ctx context.Context, userID, cardID uuid.UUID, fn store.UpsertFn) (*domain.ProgressRecord, error) {
			return nil, store.ErrTransactionFailed
		}

		_, err := svc.RecordReview(context.Background(), uuid.New(), card.ID, 4, testNow)
		assert.ErrorIs(t, err, review.ErrStoreUnavailable)
	})

	t.Run("unrelated errors pass through unmapped", func(t *testing.T) {
		t.Parallel()

		unrelated := errors.New("schema drift")
		svc, _, progress, card := newServiceFixture(t)
		progress.UpsertFn = func(ctx context.Context, userID, cardID uuid.UUID, fn store.UpsertFn) (*domain.ProgressRecord, error) {
			return nil, unrelated
		}

		_, err := svc.RecordReview(context.Background(), uuid.New(), card.ID, 4, testNow)
		assert.ErrorIs(t, err, unrelated)
		assert.NotErrorIs(t, err, review.ErrStoreUnavailable)
	})
}

// TestRecordReviewConcurrentSamePair hammers one (user, card) pair
// from many goroutines. The store's upsert serializes them, so every
// review must be applied exactly once and the final record must be a
// valid chain of schedule steps rather than a lost-update casualty.
func TestRecordReviewConcurrentSamePair(t *testing.T) {
	t.Parallel()

	const workers = 32

	svc, _, progress, card := newServiceFixture(t)
	userID := uuid.New()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.RecordReview(context.Background(), userID, card.ID, 4, testNow)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, progress.UpsertCalls())

	record, err := progress.Get(context.Background(), userID, card.ID)
	require.NoError(t, err)
	require.NoError(t, record.Validate())
	assert.Equal(t, domain.Grade(4), record.LastGrade)
	assert.GreaterOrEqual(t, record.IntervalDays, 1)
}
