// Package srs implements the spaced repetition scheduling algorithm:
// a pure SM-2 derived function from (grade, prior state) to the next
// interval, ease factor and due date. The algorithm never performs
// I/O and takes the current time as an argument, so identical inputs
// always produce identical outputs.
package srs

import (
	"math"
	"time"

	"github.com/mnemosyne-app/retain-api/internal/domain"
)

// State is the slice of a progress record the algorithm operates on.
type State struct {
	IntervalDays int
	EaseFactor   float64
}

// Result is the schedule produced by a review.
type Result struct {
	IntervalDays int
	EaseFactor   float64
	DueAt        time.Time
}

// Schedule computes the next review schedule for a card given the
// grade of the review just performed. A nil prior means the card has
// never been reviewed by this learner and is treated as
// {IntervalDays: 0, EaseFactor: DefaultEaseFactor}.
//
// Returns domain.ErrInvalidGrade when grade is outside the 0-5 scale.
func Schedule(grade domain.Grade, prior *State, now time.Time, params *Params) (Result, error) {
	if !grade.Valid() {
		return Result{}, domain.ErrInvalidGrade
	}

	if params == nil {
		params = DefaultParams()
	}

	if prior == nil {
		prior = &State{IntervalDays: 0, EaseFactor: params.DefaultEaseFactor}
	}

	ease := nextEaseFactor(prior.EaseFactor, grade, params)
	interval := nextInterval(prior.IntervalDays, ease, grade, params)

	return Result{
		IntervalDays: interval,
		EaseFactor:   ease,
		DueAt:        nextDueAt(interval, grade, now, params),
	}, nil
}

// nextEaseFactor adjusts the ease factor for the review outcome:
// success grades earn EaseBonus per step above the lapse threshold,
// lapses lose EasePenalty. The result is clamped at MinEaseFactor so
// repeated lapses cannot push intervals below the floor.
func nextEaseFactor(current float64, grade domain.Grade, params *Params) float64 {
	var ease float64
	if grade.IsLapse() {
		ease = current - params.EasePenalty
	} else {
		ease = current + params.EaseBonus*float64(grade-domain.LapseThreshold)
	}

	if ease < params.MinEaseFactor {
		ease = params.MinEaseFactor
	}

	return ease
}

// nextInterval computes the day-granularity interval. Lapses reset to
// LapseIntervalDays; the first and second successful reviews use the
// fixed SM-2 steps; later reviews grow by the updated ease factor.
func nextInterval(current int, ease float64, grade domain.Grade, params *Params) int {
	switch {
	case grade.IsLapse():
		return params.LapseIntervalDays
	case current == 0:
		return params.FirstIntervalDays
	case current == params.FirstIntervalDays:
		return params.SecondIntervalDays
	}

	interval := int(math.Round(float64(current) * ease))
	if interval > params.MaxIntervalDays {
		interval = params.MaxIntervalDays
	}

	return interval
}

// nextDueAt converts the interval into an absolute due date. Lapsed
// cards come back after RelearnMinutes instead of a full day so they
// can be re-asked within the same sitting.
func nextDueAt(intervalDays int, grade domain.Grade, now time.Time, params *Params) time.Time {
	if grade.IsLapse() {
		return now.Add(time.Duration(params.RelearnMinutes) * time.Minute)
	}

	return now.AddDate(0, 0, intervalDays)
}
