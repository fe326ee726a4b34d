package analyzer

import (
	"encoding/json"
	"strings"
)

// Severity is the three-valued outcome of a check.
// The zero value is SeverityError so that an absent status never passes.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityGood
)

// String returns the status string used on the wire
func (s Severity) String() string {
	switch s {
	case SeverityGood:
		return "good"
	case SeverityWarning:
		return "warning"
	default:
		return "error"
	}
}

// Weight is the contribution of one check of this severity to a category score
func (s Severity) Weight() float64 {
	switch s {
	case SeverityGood:
		return 1.0
	case SeverityWarning:
		return 0.5
	default:
		return 0.0
	}
}

// ParseSeverity maps a status or severity label to a Severity.
// The second return value is false when the label is not recognized.
func ParseSeverity(label string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "good", "success", "passed", "info":
		return SeverityGood, true
	case "warning", "warn", "medium", "low":
		return SeverityWarning, true
	case "error", "danger", "critical", "high", "failed":
		return SeverityError, true
	}
	return SeverityError, false
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status string. Unknown strings decode as SeverityError.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	*s, _ = ParseSeverity(label)
	return nil
}

func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}
