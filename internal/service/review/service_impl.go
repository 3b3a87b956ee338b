package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/domain/srs"
	"github.com/mnemosyne-app/retain-api/internal/platform/logger"
	"github.com/mnemosyne-app/retain-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	cards     store.CardReader
	progress  store.ProgressStore
	scheduler srs.Scheduler
	logger    *slog.Logger
}

// NewService creates a new review Service implementation.
func NewService(
	cards store.CardReader,
	progress store.ProgressStore,
	scheduler srs.Scheduler,
	log *slog.Logger,
) Service {
	if cards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cards cannot be nil")
	}
	if progress == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("progress cannot be nil")
	}
	if scheduler == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scheduler cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		cards:     cards,
		progress:  progress,
		scheduler: scheduler,
		logger:    log.With(slog.String("component", "review_service")),
	}
}

// RecordReview implements Service.RecordReview.
func (s *serviceImpl) RecordReview(
	ctx context.Context,
	userID, cardID uuid.UUID,
	grade domain.Grade,
	now time.Time,
) (*domain.ProgressRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing review",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.Int("grade", int(grade)))

	// Reject bad grades before any state is read.
	if !grade.Valid() {
		log.Warn("invalid review grade",
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()),
			slog.Int("grade", int(grade)))
		return nil, ErrInvalidGrade
	}

	exists, err := s.cards.Exists(ctx, cardID)
	if err != nil {
		log.Error("failed to check card existence",
			slog.String("card_id", cardID.String()),
			slog.String("error", err.Error()))
		return nil, NewRecordReviewError("failed to check card", s.mapStoreError(err))
	}
	if !exists {
		log.Warn("card not found for review",
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, ErrCardNotFound
	}

	// The whole read-schedule-write cycle runs inside the store's
	// upsert so concurrent reviews of the same pair serialize there.
	record, err := s.progress.Upsert(ctx, userID, cardID,
		func(prior *domain.ProgressRecord) (*domain.ProgressRecord, error) {
			if prior == nil {
				created, err := domain.NewProgressRecord(userID, cardID, now)
				if err != nil {
					return nil, fmt.Errorf("failed to create progress record: %w", err)
				}
				prior = created
			}
			return s.scheduler.NextReview(prior, grade, now)
		})
	if err != nil {
		log.Error("failed to record review",
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()),
			slog.String("error", err.Error()))
		return nil, NewRecordReviewError("failed to persist review", s.mapStoreError(err))
	}

	log.Debug("review recorded",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.Int("grade", int(grade)),
		slog.Int("interval_days", record.IntervalDays),
		slog.Float64("ease_factor", record.EaseFactor),
		slog.Time("due_at", record.DueAt))

	return record, nil
}

// mapStoreError translates store-level transient failures into the
// service's retryable sentinel while leaving other errors intact.
func (s *serviceImpl) mapStoreError(err error) error {
	if errors.Is(err, store.ErrUnavailable) || errors.Is(err, store.ErrTransactionFailed) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
