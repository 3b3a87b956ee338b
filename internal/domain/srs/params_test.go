package srs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mnemosyne-app/retain-api/internal/domain/srs"
)

func TestDefaultParams(t *testing.T) {
	t.Parallel()

	params := srs.DefaultParams()

	assert.InDelta(t, 2.5, params.DefaultEaseFactor, 1e-9)
	assert.InDelta(t, 1.3, params.MinEaseFactor, 1e-9)
	assert.InDelta(t, 0.15, params.EaseBonus, 1e-9)
	assert.InDelta(t, 0.2, params.EasePenalty, 1e-9)
	assert.Equal(t, 1, params.LapseIntervalDays)
	assert.Equal(t, 1, params.FirstIntervalDays)
	assert.Equal(t, 6, params.SecondIntervalDays)
	assert.Equal(t, 3650, params.MaxIntervalDays)
	assert.Equal(t, 10, params.RelearnMinutes)
}

func TestNewParamsOverrides(t *testing.T) {
	t.Parallel()

	params := srs.NewParams(srs.ParamsConfig{
		DefaultEaseFactor:  2.0,
		SecondIntervalDays: 4,
		RelearnMinutes:     20,
	})

	assert.InDelta(t, 2.0, params.DefaultEaseFactor, 1e-9)
	assert.Equal(t, 4, params.SecondIntervalDays)
	assert.Equal(t, 20, params.RelearnMinutes)

	// Untouched fields keep their defaults.
	assert.InDelta(t, 1.3, params.MinEaseFactor, 1e-9)
	assert.Equal(t, 1, params.FirstIntervalDays)
	assert.Equal(t, 3650, params.MaxIntervalDays)
}

func TestNewParamsZeroConfigKeepsDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, srs.DefaultParams(), srs.NewParams(srs.ParamsConfig{}))
}
