package output

import (
	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
)

// CheckOutput is the structured result of `earlylint check`.
type CheckOutput struct {
	Summary CheckSummary `json:"summary" yaml:"summary"`
	Files   []FileResult `json:"files" yaml:"files"`
}

// CheckSummary aggregates counts across all checked files.
type CheckSummary struct {
	FilesChecked    int `json:"files_checked" yaml:"files_checked"`
	FilesWithIssues int `json:"files_with_issues" yaml:"files_with_issues"`
	TotalIssues     int `json:"total_issues" yaml:"total_issues"`
	Errors          int `json:"errors" yaml:"errors"`
	Warnings        int `json:"warnings" yaml:"warnings"`
	Info            int `json:"info" yaml:"info"`
	Hints           int `json:"hints" yaml:"hints"`
	Fixable         int `json:"fixable" yaml:"fixable"`
	ParseErrors     int `json:"parse_errors" yaml:"parse_errors"`
}

// FileResult holds the findings for one file.
type FileResult struct {
	Path        string             `json:"path" yaml:"path"`
	ParseError  string             `json:"parse_error,omitempty" yaml:"parse_error,omitempty"`
	Diagnostics []DiagnosticOutput `json:"diagnostics" yaml:"diagnostics"`
}

// DiagnosticOutput is the serialized form of a lint.Diagnostic.
type DiagnosticOutput struct {
	RuleID           string             `json:"rule_id" yaml:"rule_id"`
	Category         core.Category      `json:"category" yaml:"category"`
	Severity         string             `json:"severity" yaml:"severity"`
	Message          string             `json:"message" yaml:"message"`
	Line             int                `json:"line" yaml:"line"`
	Column           int                `json:"column" yaml:"column"`
	EndLine          int                `json:"end_line" yaml:"end_line"`
	EndColumn        int                `json:"end_column" yaml:"end_column"`
	Help             string             `json:"help,omitempty" yaml:"help,omitempty"`
	DocumentationURL string             `json:"documentation_url,omitempty" yaml:"documentation_url,omitempty"`
	ImpactScore      int                `json:"impact_score" yaml:"impact_score"`
	AutoFixable      bool               `json:"auto_fixable" yaml:"auto_fixable"`
	Suggestions      []SuggestionOutput `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// SuggestionOutput is the serialized form of a lint.Suggestion.
type SuggestionOutput struct {
	Label         string       `json:"label" yaml:"label"`
	Applicability string       `json:"applicability" yaml:"applicability"`
	Edits         []EditOutput `json:"edits" yaml:"edits"`
}

// EditOutput is one text replacement, with 1-based positions.
type EditOutput struct {
	Line      int    `json:"line" yaml:"line"`
	Column    int    `json:"column" yaml:"column"`
	EndLine   int    `json:"end_line" yaml:"end_line"`
	EndColumn int    `json:"end_column" yaml:"end_column"`
	NewText   string `json:"new_text" yaml:"new_text"`
}

// NewDiagnosticOutput converts a diagnostic for serialization.
func NewDiagnosticOutput(d lint.Diagnostic) DiagnosticOutput {
	out := DiagnosticOutput{
		RuleID:           d.RuleID,
		Category:         d.Category,
		Severity:         d.Severity.String(),
		Message:          d.Message,
		Line:             d.Pos.Line,
		Column:           d.Pos.Column,
		EndLine:          d.EndPos.Line,
		EndColumn:        d.EndPos.Column,
		Help:             d.Help,
		DocumentationURL: d.DocumentationURL,
		ImpactScore:      d.ImpactScore,
		AutoFixable:      d.AutoFixable,
	}
	for _, s := range d.Suggestions {
		so := SuggestionOutput{
			Label:         s.Label,
			Applicability: s.Applicability.String(),
			Edits:         make([]EditOutput, 0, len(s.Edits)),
		}
		for _, e := range s.Edits {
			so.Edits = append(so.Edits, EditOutput{
				Line:      e.Span.Start.Line,
				Column:    e.Span.Start.Column,
				EndLine:   e.Span.End.Line,
				EndColumn: e.Span.End.Column,
				NewText:   e.NewText,
			})
		}
		out.Suggestions = append(out.Suggestions, so)
	}
	return out
}

// Add folds one diagnostic into the summary counts.
func (s *CheckSummary) Add(d lint.Diagnostic) {
	s.TotalIssues++
	switch d.Severity {
	case core.SeverityError:
		s.Errors++
	case core.SeverityWarning:
		s.Warnings++
	case core.SeverityInfo:
		s.Info++
	default:
		s.Hints++
	}
	if d.AutoFixable {
		s.Fixable++
	}
}

// FixOutput is the structured result of `earlylint fix`.
type FixOutput struct {
	Files   []FixFileResult `json:"files" yaml:"files"`
	Applied int             `json:"applied" yaml:"applied"`
	Skipped int             `json:"skipped" yaml:"skipped"`
	Written bool            `json:"written" yaml:"written"`
}

// FixFileResult describes the fixes for one file.
type FixFileResult struct {
	Path    string       `json:"path" yaml:"path"`
	Applied []FixEntry   `json:"applied" yaml:"applied"`
	Skipped []FixSkipped `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Diff    string       `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// FixEntry is one applied suggestion.
type FixEntry struct {
	RuleID        string `json:"rule_id" yaml:"rule_id"`
	Label         string `json:"label" yaml:"label"`
	Applicability string `json:"applicability" yaml:"applicability"`
	Line          int    `json:"line" yaml:"line"`
	Column        int    `json:"column" yaml:"column"`
}

// FixSkipped is one suggestion that was not applied.
type FixSkipped struct {
	RuleID string `json:"rule_id" yaml:"rule_id"`
	Label  string `json:"label" yaml:"label"`
	Line   int    `json:"line" yaml:"line"`
	Reason string `json:"reason" yaml:"reason"`
}
