// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  ScoringMode
	}{
		{"ats_simulation", ModeATSSimulation},
		{"ATS", ModeATSSimulation},
		{" strict ", ModeATSSimulation},
		{"ATS Simulation", ModeATSSimulation},
		{"quality_coach", ModeQualityCoach},
		{"Coach", ModeQualityCoach},
		{"lenient", ModeQualityCoach},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMode_Unknown(t *testing.T) {
	_, err := ParseMode("aggressive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aggressive")
}

func TestScoringMode_Valid(t *testing.T) {
	assert.True(t, ModeATSSimulation.Valid())
	assert.True(t, ModeQualityCoach.Valid())
	assert.False(t, ScoringMode("ats").Valid())
	assert.False(t, ScoringMode("").Valid())
}
