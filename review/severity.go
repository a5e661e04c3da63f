package review

import (
	"fmt"
	"strings"
)

// Severity represents the severity of a contract risk or the priority of
// a redline suggestion. Upstream stage output carries these as free-form
// strings with no guaranteed casing, so all comparisons against the
// defined levels are case-insensitive.
type Severity string

const (
	// SeverityCritical indicates an issue that must be resolved before signing.
	SeverityCritical Severity = "critical"

	// SeverityHigh indicates a high-impact issue.
	SeverityHigh Severity = "high"

	// SeverityMedium indicates a moderate issue.
	SeverityMedium Severity = "medium"

	// SeverityLow indicates a minor issue.
	SeverityLow Severity = "low"
)

// severityWeights maps severity levels to numeric weights for ordering.
// Higher weights indicate more severe findings.
var severityWeights = map[Severity]float64{
	SeverityCritical: 10.0,
	SeverityHigh:     7.5,
	SeverityMedium:   5.0,
	SeverityLow:      2.5,
}

// IsValid returns true if the severity level is valid.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	default:
		return false
	}
}

// Weight returns the numeric weight associated with the severity level.
// Returns 0.0 for invalid severity levels.
func (s Severity) Weight() float64 {
	if weight, ok := severityWeights[s]; ok {
		return weight
	}
	return 0.0
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// Matches reports whether a raw upstream string names this severity
// level, ignoring case. Upstream output is not normalized, so
// "High", "HIGH", and "high" all match SeverityHigh.
func (s Severity) Matches(raw string) bool {
	return strings.EqualFold(raw, string(s))
}

// ParseSeverity parses a string into a Severity value, ignoring case.
// Returns an error if the string is not a valid severity level.
func ParseSeverity(s string) (Severity, error) {
	severity := Severity(strings.ToLower(s))
	if !severity.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return severity, nil
}

// CompareSeverity compares two severity levels.
// Returns:
//   - negative if s1 < s2
//   - zero if s1 == s2
//   - positive if s1 > s2
func CompareSeverity(s1, s2 Severity) int {
	w1 := s1.Weight()
	w2 := s2.Weight()
	if w1 < w2 {
		return -1
	}
	if w1 > w2 {
		return 1
	}
	return 0
}
