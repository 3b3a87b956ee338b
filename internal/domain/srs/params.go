package srs

import (
	"github.com/mnemosyne-app/retain-api/internal/domain"
)

// Params defines all configurable parameters for the scheduling
// algorithm. The defaults implement the classical SM-2 contract:
// success grades add EaseBonus per step above 3, lapses subtract
// EasePenalty, and intervals follow the 1 / 6 / round(i * EF)
// progression.
type Params struct {
	// Ease factor limits and adjustments
	DefaultEaseFactor float64
	MinEaseFactor     float64
	EaseBonus         float64 // added per grade step above the lapse threshold
	EasePenalty       float64 // subtracted on a lapse

	// Interval progression
	LapseIntervalDays  int // interval after a failed review
	FirstIntervalDays  int // after the first successful review
	SecondIntervalDays int // after the second successful review
	MaxIntervalDays    int // hard cap on interval growth

	// Lapses are re-asked after minutes rather than a full day.
	RelearnMinutes int
}

// ParamsConfig allows overriding the default parameters when creating
// a new Params instance. Zero values leave the default in place.
type ParamsConfig struct {
	DefaultEaseFactor float64 `mapstructure:"default_ease_factor"`
	MinEaseFactor     float64 `mapstructure:"min_ease_factor"`
	EaseBonus         float64 `mapstructure:"ease_bonus"`
	EasePenalty       float64 `mapstructure:"ease_penalty"`

	LapseIntervalDays  int `mapstructure:"lapse_interval_days"`
	FirstIntervalDays  int `mapstructure:"first_interval_days"`
	SecondIntervalDays int `mapstructure:"second_interval_days"`
	MaxIntervalDays    int `mapstructure:"max_interval_days"`

	RelearnMinutes int `mapstructure:"relearn_minutes"`
}

// DefaultParams creates a new Params instance with default values.
func DefaultParams() *Params {
	return &Params{
		DefaultEaseFactor: domain.DefaultEaseFactor,
		MinEaseFactor:     domain.MinEaseFactor,
		EaseBonus:         0.15,
		EasePenalty:       0.2,

		LapseIntervalDays:  1,
		FirstIntervalDays:  1,
		SecondIntervalDays: 6,
		MaxIntervalDays:    3650,

		// Failed cards come back within the same sitting.
		RelearnMinutes: 10,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Any field left at its zero value keeps the default.
func NewParams(config ParamsConfig) *Params {
	params := DefaultParams()

	if config.DefaultEaseFactor > 0 {
		params.DefaultEaseFactor = config.DefaultEaseFactor
	}
	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.EaseBonus > 0 {
		params.EaseBonus = config.EaseBonus
	}
	if config.EasePenalty > 0 {
		params.EasePenalty = config.EasePenalty
	}

	if config.LapseIntervalDays > 0 {
		params.LapseIntervalDays = config.LapseIntervalDays
	}
	if config.FirstIntervalDays > 0 {
		params.FirstIntervalDays = config.FirstIntervalDays
	}
	if config.SecondIntervalDays > 0 {
		params.SecondIntervalDays = config.SecondIntervalDays
	}
	if config.MaxIntervalDays > 0 {
		params.MaxIntervalDays = config.MaxIntervalDays
	}

	if config.RelearnMinutes > 0 {
		params.RelearnMinutes = config.RelearnMinutes
	}

	return params
}
