// Package types defines core domain types shared across all layers.
// This package contains NO analysis logic - only type definitions.
package types

import (
	"encoding/json"
	"fmt"
)

// Severity classifies the risk of an interaction or nutrient overage.
// The ordering is total: None < Low < Moderate < High < Critical.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityModerate
	SeverityHigh
	SeverityCritical
)

// String returns the string representation
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityLow:
		return "low"
	case SeverityModerate:
		return "moderate"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// IsValid checks if the severity is a known value
func (s Severity) IsValid() bool {
	return s >= SeverityNone && s <= SeverityCritical
}

// Max returns the higher of two severities
func (s Severity) Max(other Severity) Severity {
	if other > s {
		return other
	}
	return s
}

// ParseSeverity parses a severity string
func ParseSeverity(raw string) (Severity, error) {
	switch raw {
	case "none":
		return SeverityNone, nil
	case "low":
		return SeverityLow, nil
	case "moderate":
		return SeverityModerate, nil
	case "high":
		return SeverityHigh, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return SeverityNone, fmt.Errorf("unknown severity: %q", raw)
	}
}

// MarshalJSON encodes the severity as a lowercase string
func (s Severity) MarshalJSON() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid severity: %d", int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity from its string form
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// EvidenceLevel grades the strength of research backing a rule or limit
type EvidenceLevel string

const (
	EvidenceA EvidenceLevel = "A"
	EvidenceB EvidenceLevel = "B"
	EvidenceC EvidenceLevel = "C"
	EvidenceD EvidenceLevel = "D"
)

// IsValid checks if the evidence level is a known grade
func (e EvidenceLevel) IsValid() bool {
	switch e {
	case EvidenceA, EvidenceB, EvidenceC, EvidenceD:
		return true
	default:
		return false
	}
}

// String returns the string representation
func (e EvidenceLevel) String() string {
	return string(e)
}

// ParseEvidenceLevel parses an evidence level string
func ParseEvidenceLevel(raw string) (EvidenceLevel, error) {
	level := EvidenceLevel(raw)
	if !level.IsValid() {
		return "", fmt.Errorf("unknown evidence level: %q", raw)
	}
	return level, nil
}

// Role distinguishes the two logical sides of an interaction
type Role string

const (
	RoleSupplement Role = "supplement"
	RoleMedication Role = "medication"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	return r == RoleSupplement || r == RoleMedication
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// IngredientKey is the normalized identity of a supplement, herb, mineral,
// vitamin, or medication. Case/format-insensitive matching happens only in
// the normalizer, never downstream.
type IngredientKey string

// String returns the string representation
func (k IngredientKey) String() string {
	return string(k)
}

// NutrientKey identifies a nutrient tracked against an upper limit
type NutrientKey string

// String returns the string representation
func (k NutrientKey) String() string {
	return string(k)
}

// SourceRef is a citation backing a rule
type SourceRef struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// StackItem is one entry in the user's active stack, after normalization.
// The engine treats the stack as an immutable snapshot per analysis call.
type StackItem struct {
	// RawName is the name as the user entered it
	RawName string `json:"raw_name"`

	// Key is the canonical ingredient identity
	Key IngredientKey `json:"key"`

	// Dose is the declared dose
	Dose Dose `json:"dose"`

	// Role is supplement or medication
	Role Role `json:"role"`
}
