package srs_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/domain/srs"
)

func newTestRecord(t *testing.T) *domain.ProgressRecord {
	t.Helper()
	record, err := domain.NewProgressRecord(uuid.New(), uuid.New(), testNow.Add(-24*time.Hour))
	require.NoError(t, err)
	record.LastGrade = 4
	record.IntervalDays = 6
	record.EaseFactor = 2.8
	record.DueAt = testNow
	return record
}

func TestSchedulerNextReview(t *testing.T) {
	t.Parallel()

	scheduler := srs.NewScheduler()
	record := newTestRecord(t)

	next, err := scheduler.NextReview(record, 4, testNow)
	require.NoError(t, err)

	assert.Equal(t, record.UserID, next.UserID)
	assert.Equal(t, record.CardID, next.CardID)
	assert.Equal(t, domain.Grade(4), next.LastGrade)
	assert.Equal(t, 18, next.IntervalDays)
	assert.InDelta(t, 2.95, next.EaseFactor, 1e-9)
	assert.True(t, next.DueAt.Equal(testNow.AddDate(0, 0, 18)))
	assert.True(t, next.UpdatedAt.Equal(testNow))
	assert.True(t, next.CreatedAt.Equal(record.CreatedAt))
}

func TestSchedulerNextReviewDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	scheduler := srs.NewScheduler()
	record := newTestRecord(t)
	original := record.Clone()

	_, err := scheduler.NextReview(record, 1, testNow)
	require.NoError(t, err)

	assert.Equal(t, original, record)
}

func TestSchedulerNextReviewErrors(t *testing.T) {
	t.Parallel()

	scheduler := srs.NewScheduler()

	_, err := scheduler.NextReview(nil, 4, testNow)
	assert.ErrorIs(t, err, srs.ErrNilRecord)

	_, err = scheduler.NextReview(newTestRecord(t), 6, testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidGrade)
}

func TestSchedulerNextReviewCustomParams(t *testing.T) {
	t.Parallel()

	scheduler := srs.NewSchedulerWithParams(srs.NewParams(srs.ParamsConfig{
		RelearnMinutes: 30,
	}))
	record := newTestRecord(t)

	next, err := scheduler.NextReview(record, 0, testNow)
	require.NoError(t, err)

	assert.Equal(t, 1, next.IntervalDays)
	assert.True(t, next.DueAt.Equal(testNow.Add(30*time.Minute)))
}

func TestSchedulerPostpone(t *testing.T) {
	t.Parallel()

	scheduler := srs.NewScheduler()
	record := newTestRecord(t)

	next, err := scheduler.Postpone(record, 3, testNow)
	require.NoError(t, err)

	assert.True(t, next.DueAt.Equal(record.DueAt.AddDate(0, 0, 3)))
	assert.Equal(t, record.LastGrade, next.LastGrade)
	assert.Equal(t, record.IntervalDays, next.IntervalDays)
	assert.InDelta(t, record.EaseFactor, next.EaseFactor, 1e-9)
	assert.True(t, next.UpdatedAt.Equal(testNow))
}

func TestSchedulerPostponeErrors(t *testing.T) {
	t.Parallel()

	scheduler := srs.NewScheduler()

	_, err := scheduler.Postpone(nil, 3, testNow)
	assert.ErrorIs(t, err, srs.ErrNilRecord)

	_, err = scheduler.Postpone(newTestRecord(t), 0, testNow)
	assert.ErrorIs(t, err, srs.ErrInvalidDays)
}
