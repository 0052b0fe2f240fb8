// Package core defines the shared vocabulary of the earlylint system.
//
// This package contains:
//   - Diagnostic severities and rule categories
//   - Suggestion applicability levels
//   - RuleInfo, the metadata DTO used by tooling and documentation
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
