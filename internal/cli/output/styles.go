package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/earlylint/pkg/core"
)

// Styles holds the lipgloss styles used by text mode.
type Styles struct {
	Header1  lipgloss.Style
	Header2  lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Hint     lipgloss.Style
	FilePath lipgloss.Style
	RuleID   lipgloss.Style
	Gutter   lipgloss.Style
	Caret    lipgloss.Style
}

// NewStyles builds the style set on top of a lipgloss renderer.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2:  r.NewStyle().Bold(true).Underline(true),
		Bold:     r.NewStyle().Bold(true),
		Muted:    r.NewStyle().Foreground(lipgloss.Color("8")),
		Success:  r.NewStyle().Foreground(lipgloss.Color("10")),
		Error:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Warning:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		Info:     r.NewStyle().Foreground(lipgloss.Color("14")),
		Hint:     r.NewStyle().Foreground(lipgloss.Color("13")),
		FilePath: r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		RuleID:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Gutter:   r.NewStyle().Foreground(lipgloss.Color("12")),
		Caret:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	}
}

// Severity returns the style matching sev.
func (s *Styles) Severity(sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return s.Error
	case core.SeverityWarning:
		return s.Warning
	case core.SeverityInfo:
		return s.Info
	default:
		return s.Hint
	}
}
