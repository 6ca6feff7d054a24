// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// ScoringMode selects the policy (weights and threshold tables) used to score a résumé
type ScoringMode string

const (
	// ModeATSSimulation mimics a strict applicant tracking system; keyword-heavy
	ModeATSSimulation ScoringMode = "ats_simulation"
	// ModeQualityCoach is the lenient policy that rewards writing quality
	ModeQualityCoach ScoringMode = "quality_coach"
)

var modeAliases = map[string]ScoringMode{
	"ats_simulation": ModeATSSimulation,
	"ats-simulation": ModeATSSimulation,
	"ats simulation": ModeATSSimulation,
	"ats":            ModeATSSimulation,
	"strict":         ModeATSSimulation,
	"quality_coach":  ModeQualityCoach,
	"quality-coach":  ModeQualityCoach,
	"quality coach":  ModeQualityCoach,
	"coach":          ModeQualityCoach,
	"quality":        ModeQualityCoach,
	"lenient":        ModeQualityCoach,
}

// ParseMode normalizes a user-supplied mode name. An empty string yields an empty mode,
// which lets the engine infer the mode from the request.
func ParseMode(s string) (ScoringMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", nil
	}
	if mode, ok := modeAliases[key]; ok {
		return mode, nil
	}
	return "", fmt.Errorf("unknown scoring mode %q", s)
}

// Valid reports whether m is one of the canonical modes
func (m ScoringMode) Valid() bool {
	return m == ModeATSSimulation || m == ModeQualityCoach
}

// Modes returns the canonical modes in a stable order
func Modes() []ScoringMode {
	return []ScoringMode{ModeATSSimulation, ModeQualityCoach}
}
