package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/domain"
	"github.com/mnemosyne-app/retain-api/internal/platform/logger"
	"github.com/mnemosyne-app/retain-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend. It holds a
// *sql.DB rather than a DBTX because Upsert opens its own transaction
// to keep the read-modify-write of a review atomic.
type PostgresProgressStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of
// the ProgressStore interface. If logger is nil, a default logger will
// be used.
func NewPostgresProgressStore(db *sql.DB, log *slog.Logger) *PostgresProgressStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: log.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

const progressColumns = `user_id, card_id, last_grade, interval_days, ease_factor, due_at, created_at, updated_at`

// scanProgress reads one progress row from a row scanner.
func scanProgress(scan func(dest ...any) error) (*domain.ProgressRecord, error) {
	var record domain.ProgressRecord
	err := scan(
		&record.UserID,
		&record.CardID,
		&record.LastGrade,
		&record.IntervalDays,
		&record.EaseFactor,
		&record.DueAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Get implements store.ProgressStore.Get
func (s *PostgresProgressStore) Get(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.ProgressRecord, error) {
	query := `
		SELECT ` + progressColumns + `
		FROM user_card_progress
		WHERE user_id = $1 AND card_id = $2
	`

	record, err := scanProgress(s.db.QueryRowContext(ctx, query, userID, cardID).Scan)
	if err != nil {
		return nil, mapError("progress record", "get", err, store.ErrProgressNotFound)
	}

	return record, nil
}

// Upsert implements store.ProgressStore.Upsert.
//
// Concurrent upserts for the same (user, card) pair must serialize
// even on the learner's first review, when there is no row for
// SELECT ... FOR UPDATE to lock. An advisory transaction lock keyed on
// the pair is taken first, so the second writer blocks until the first
// commits and then reads the freshly inserted row instead of a nil
// prior. The row lock below still covers readers outside this method.
func (s *PostgresProgressStore) Upsert(
	ctx context.Context,
	userID, cardID uuid.UUID,
	fn store.UpsertFn,
) (*domain.ProgressRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var persisted *domain.ProgressRecord
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		lockQuery := `SELECT pg_advisory_xact_lock(hashtext($1::text), hashtext($2::text))`
		if _, err := tx.ExecContext(ctx, lockQuery, userID, cardID); err != nil {
			return mapError("progress record", "upsert", err, store.ErrProgressNotFound)
		}

		selectQuery := `
			SELECT ` + progressColumns + `
			FROM user_card_progress
			WHERE user_id = $1 AND card_id = $2
			FOR UPDATE
		`

		prior, err := scanProgress(tx.QueryRowContext(ctx, selectQuery, userID, cardID).Scan)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return mapError("progress record", "upsert", err, store.ErrProgressNotFound)
		}

		record, err := fn(prior)
		if err != nil {
			return err
		}

		if err := record.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		upsertQuery := `
			INSERT INTO user_card_progress (` + progressColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id, card_id) DO UPDATE SET
				last_grade = EXCLUDED.last_grade,
				interval_days = EXCLUDED.interval_days,
				ease_factor = EXCLUDED.ease_factor,
				due_at = EXCLUDED.due_at,
				updated_at = EXCLUDED.updated_at
		`

		_, err = tx.ExecContext(ctx, upsertQuery,
			record.UserID,
			record.CardID,
			record.LastGrade,
			record.IntervalDays,
			record.EaseFactor,
			record.DueAt,
			record.CreatedAt,
			record.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to upsert progress record",
				slog.String("user_id", userID.String()),
				slog.String("card_id", cardID.String()),
				slog.String("error", err.Error()))
			return mapError("progress record", "upsert", err, store.ErrProgressNotFound)
		}

		persisted = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	return persisted, nil
}

// ListByDeck implements store.ProgressStore.ListByDeck.
// The join through cards scopes the records to the deck's current
// contents; records for cards since removed from the deck are not
// returned.
func (s *PostgresProgressStore) ListByDeck(
	ctx context.Context,
	deckID, userID uuid.UUID,
) ([]*domain.ProgressRecord, error) {
	query := `
		SELECT p.user_id, p.card_id, p.last_grade, p.interval_days, p.ease_factor, p.due_at, p.created_at, p.updated_at
		FROM user_card_progress p
		JOIN cards c ON p.card_id = c.id
		WHERE p.user_id = $1 AND c.deck_id = $2
		ORDER BY p.due_at ASC
	`

	return s.queryRecords(ctx, "list_by_deck", query, userID, deckID)
}

// ListByUser implements store.ProgressStore.ListByUser
func (s *PostgresProgressStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.ProgressRecord, error) {
	query := `
		SELECT ` + progressColumns + `
		FROM user_card_progress
		WHERE user_id = $1
		ORDER BY due_at ASC
	`

	return s.queryRecords(ctx, "list_by_user", query, userID)
}

// queryRecords runs a query returning progress rows and scans them all.
func (s *PostgresProgressStore) queryRecords(
	ctx context.Context,
	operation, query string,
	args ...any,
) ([]*domain.ProgressRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("progress record", operation, err, store.ErrProgressNotFound)
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.ProgressRecord
	for rows.Next() {
		record, err := scanProgress(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError("progress record", operation, err, store.ErrProgressNotFound)
	}

	return records, nil
}
