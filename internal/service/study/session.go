package study

import (
	"errors"
	"time"

	"github.com/mnemosyne-app/retain-api/internal/domain"
)

// Session errors
var (
	// ErrSessionCompleted is returned when recording into a session
	// that has already ended.
	ErrSessionCompleted = errors.New("study session already completed")
)

// Tally counts reviews per four-button bucket during one sitting.
type Tally struct {
	Easy  int `json:"easy"`
	Good  int `json:"good"`
	Hard  int `json:"hard"`
	Again int `json:"again"`
}

// Add buckets one grade into the tally.
func (t *Tally) Add(grade domain.Grade) {
	switch grade.Bucket() {
	case domain.BucketEasy:
		t.Easy++
	case domain.BucketGood:
		t.Good++
	case domain.BucketHard:
		t.Hard++
	case domain.BucketAgain:
		t.Again++
	}
}

// Snapshot is the live state of one study sitting. It belongs to
// exactly one session and is never shared across sessions or users.
type Snapshot struct {
	StartedAt     time.Time `json:"started_at"`
	CardsReviewed int       `json:"cards_reviewed"`
	CorrectStreak int       `json:"correct_streak"`
	LongestStreak int       `json:"longest_streak"`
	Tally         Tally     `json:"grade_tally"`
}

// Summary is the end-of-session report handed to the caller for
// display. The tracker itself is discarded after producing it.
type Summary struct {
	Snapshot
	EndedAt  time.Time     `json:"ended_at"`
	Duration time.Duration `json:"duration"`
}

// SessionTracker aggregates streaks and grade tallies over one study
// sitting. It is a small state machine: active until End is called,
// then completed and read-only. Callers own a tracker exclusively, so
// it needs no locking.
type SessionTracker struct {
	snapshot  Snapshot
	completed bool
}

// NewSessionTracker starts tracking a study session.
func NewSessionTracker(startedAt time.Time) *SessionTracker {
	return &SessionTracker{
		snapshot: Snapshot{StartedAt: startedAt},
	}
}

// Record tallies one review into the session. Grades at or above the
// mastery threshold extend the correct streak; anything lower resets
// it.
func (t *SessionTracker) Record(grade domain.Grade) error {
	if t.completed {
		return ErrSessionCompleted
	}

	if !grade.Valid() {
		return domain.ErrInvalidGrade
	}

	t.snapshot.CardsReviewed++
	t.snapshot.Tally.Add(grade)

	if grade.IsMastery() {
		t.snapshot.CorrectStreak++
		if t.snapshot.CorrectStreak > t.snapshot.LongestStreak {
			t.snapshot.LongestStreak = t.snapshot.CorrectStreak
		}
	} else {
		t.snapshot.CorrectStreak = 0
	}

	return nil
}

// Snapshot returns a copy of the current session state.
func (t *SessionTracker) Snapshot() Snapshot {
	return t.snapshot
}

// Completed reports whether the session has ended.
func (t *SessionTracker) Completed() bool {
	return t.completed
}

// End completes the session and returns its summary. Ending an already
// completed session returns the same summary values with the original
// totals; further Record calls keep failing.
func (t *SessionTracker) End(now time.Time) Summary {
	t.completed = true

	return Summary{
		Snapshot: t.snapshot,
		EndedAt:  now,
		Duration: now.Sub(t.snapshot.StartedAt),
	}
}
