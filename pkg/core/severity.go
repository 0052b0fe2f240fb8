package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a lint diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError indicates a critical issue that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("unknown severity %q", text)
	}
	*s = v
	return nil
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, true
	case "warning", "warn":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	case "hint":
		return SeverityHint, true
	default:
		return SeverityWarning, false
	}
}

// =============================================================================
// Category
// =============================================================================

// Category groups rules by the kind of concern they raise.
// It is informational: no engine behavior depends on it.
type Category string

// Rule categories.
const (
	CategoryStyle      Category = "style"
	CategoryComplexity Category = "complexity"
	CategoryPedantic   Category = "pedantic"
)

// Categories lists all known categories in display order.
func Categories() []Category {
	return []Category{CategoryStyle, CategoryComplexity, CategoryPedantic}
}

// ParseCategory converts a string to a Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryStyle, CategoryComplexity, CategoryPedantic:
		return c, true
	default:
		return "", false
	}
}

// =============================================================================
// Applicability
// =============================================================================

// Applicability tells whether a suggested rewrite may be applied without
// human review.
type Applicability int

// Applicability levels, from most to least trustworthy.
const (
	// MachineApplicable suggestions are definitely what the user intended and
	// can be applied automatically.
	MachineApplicable Applicability = iota
	// MaybeIncorrect suggestions may not be what the user intended.
	MaybeIncorrect
	// HasPlaceholders suggestions contain placeholder text such as `..`.
	HasPlaceholders
	// Unspecified applicability is unknown.
	Unspecified
)

// String returns the string representation of the applicability.
func (a Applicability) String() string {
	switch a {
	case MachineApplicable:
		return "machine-applicable"
	case MaybeIncorrect:
		return "maybe-incorrect"
	case HasPlaceholders:
		return "has-placeholders"
	case Unspecified:
		return "unspecified"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Applicability) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseApplicability converts a string to an Applicability value.
func ParseApplicability(s string) (Applicability, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "machine-applicable", "machine_applicable", "safe":
		return MachineApplicable, true
	case "maybe-incorrect", "maybe_incorrect", "unsafe":
		return MaybeIncorrect, true
	case "has-placeholders", "has_placeholders":
		return HasPlaceholders, true
	case "unspecified":
		return Unspecified, true
	default:
		return Unspecified, false
	}
}

// =============================================================================
// RuleInfo
// =============================================================================

// RuleInfo provides metadata about a lint rule for documentation/tooling.
// This is a DTO (Data Transfer Object) - it carries data without behavior.
type RuleInfo struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Category        Category `json:"category" yaml:"category"`
	Description     string   `json:"description" yaml:"description"`
	DefaultSeverity Severity `json:"default_severity" yaml:"default_severity"`
	ConfigKeys      []string `json:"config_keys,omitempty" yaml:"config_keys,omitempty"`
	Kinds           []string `json:"kinds" yaml:"kinds"` // Node kinds the rule inspects

	// Documentation fields
	Rationale   string `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty" yaml:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty" yaml:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty" yaml:"fix,omitempty"`
}
