package fix

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// Options configures which suggestions may be applied.
type Options struct {
	// Allowed lists the applicabilities that may be applied. Empty means
	// MachineApplicable only.
	Allowed []core.Applicability
}

// SafeOnly applies only MachineApplicable suggestions.
func SafeOnly() Options {
	return Options{Allowed: []core.Applicability{core.MachineApplicable}}
}

// IncludeUnsafe also applies MaybeIncorrect suggestions.
func IncludeUnsafe() Options {
	return Options{Allowed: []core.Applicability{core.MachineApplicable, core.MaybeIncorrect}}
}

func (o Options) allows(a core.Applicability) bool {
	if len(o.Allowed) == 0 {
		return a == core.MachineApplicable
	}
	return slices.Contains(o.Allowed, a)
}

// AppliedFix records a successfully applied suggestion.
type AppliedFix struct {
	RuleID        string
	Label         string
	Applicability core.Applicability
	Pos           token.Position
	EditCount     int
}

// SkippedFix captures a suggestion that was not applied, with a reason.
type SkippedFix struct {
	RuleID string
	Label  string
	Pos    token.Position
	Reason string
}

// Result holds the rewritten text and what happened to every candidate.
type Result struct {
	Text    string
	Applied []AppliedFix
	Skipped []SkippedFix
}

// Changed reports whether any edit was applied.
func (r *Result) Changed() bool {
	return len(r.Applied) > 0
}

type candidate struct {
	diag  lint.Diagnostic
	sugg  lint.Suggestion
	order int
}

// Apply rewrites src with one suggestion per diagnostic. It returns
// ErrNoFixes, together with a result carrying the unchanged text and the
// skip reasons, when nothing could be applied.
func Apply(src string, diagnostics []lint.Diagnostic, opts Options) (*Result, error) {
	result := &Result{
		Text:    src,
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
	}

	candidates, skips := gatherCandidates(diagnostics, opts)
	result.Skipped = append(result.Skipped, skips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	var accepted []lint.TextEdit
	for _, cand := range candidates {
		if reason := checkEdits(src, accepted, cand.sugg.Edits); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{
				RuleID: cand.diag.RuleID,
				Label:  cand.sugg.Label,
				Pos:    cand.diag.Pos,
				Reason: reason,
			})
			continue
		}
		accepted = append(accepted, cand.sugg.Edits...)
		result.Applied = append(result.Applied, AppliedFix{
			RuleID:        cand.diag.RuleID,
			Label:         cand.sugg.Label,
			Applicability: cand.sugg.Applicability,
			Pos:           cand.diag.Pos,
			EditCount:     len(cand.sugg.Edits),
		})
	}

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	result.Text = applyEdits(src, accepted)
	return result, nil
}

// gatherCandidates picks, for every diagnostic, the first suggestion whose
// applicability is allowed. Each candidate gets an insertion order for a
// stable sort.
func gatherCandidates(diagnostics []lint.Diagnostic, opts Options) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0)
	skips := make([]SkippedFix, 0)

	order := 0
	for _, d := range diagnostics {
		if len(d.Suggestions) == 0 {
			continue
		}
		idx := slices.IndexFunc(d.Suggestions, func(s lint.Suggestion) bool {
			return opts.allows(s.Applicability)
		})
		if idx < 0 {
			first := d.Suggestions[0]
			skips = append(skips, SkippedFix{
				RuleID: d.RuleID,
				Label:  first.Label,
				Pos:    d.Pos,
				Reason: fmt.Sprintf("applicability is %s", first.Applicability),
			})
			continue
		}
		s := d.Suggestions[idx]
		if len(s.Edits) == 0 {
			skips = append(skips, SkippedFix{
				RuleID: d.RuleID,
				Label:  s.Label,
				Pos:    d.Pos,
				Reason: "fix has no edits",
			})
			continue
		}
		cands = append(cands, candidate{diag: d, sugg: s, order: order})
		order++
	}
	return cands, skips
}

// sortCandidates orders candidates by span start, span end, then insertion
// order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := candidates[i].diag.Span, candidates[j].diag.Span
		if si.Start.Offset != sj.Start.Offset {
			return si.Start.Offset < sj.Start.Offset
		}
		if si.End.Offset != sj.End.Offset {
			return si.End.Offset < sj.End.Offset
		}
		return candidates[i].order < candidates[j].order
	})
}

// checkEdits returns a non-empty reason when edits cannot join accepted.
func checkEdits(src string, accepted, edits []lint.TextEdit) string {
	for i, e := range edits {
		start, end := e.Span.Start.Offset, e.Span.End.Offset
		if start < 0 || end < start || end > len(src) {
			return "edit span out of range"
		}
		for _, prev := range accepted {
			if spansConflict(prev.Span, e.Span) {
				return "conflicts with previously applied edits"
			}
		}
		for _, other := range edits[:i] {
			if spansConflict(other.Span, e.Span) {
				return "suggestion has overlapping edits"
			}
		}
	}
	return ""
}

// spansConflict reports whether two edit spans overlap.
// Spans are half-open intervals [Start, End). Two insertions never conflict.
// An insertion conflicts with a replacement when it falls inside it.
func spansConflict(a, b token.Span) bool {
	aStart, aEnd := a.Start.Offset, a.End.Offset
	bStart, bEnd := b.Start.Offset, b.End.Offset

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// applyEdits splices non-overlapping edits into src, last edit first so
// earlier offsets stay valid.
func applyEdits(src string, edits []lint.TextEdit) string {
	sorted := slices.Clone(edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start.Offset == sorted[j].Span.Start.Offset {
			return sorted[i].Span.End.Offset > sorted[j].Span.End.Offset
		}
		return sorted[i].Span.Start.Offset > sorted[j].Span.Start.Offset
	})

	out := src
	for _, e := range sorted {
		out = out[:e.Span.Start.Offset] + e.NewText + out[e.Span.End.Offset:]
	}
	return out
}

// Diff renders a unified diff between before and after. It returns "" when
// the texts are equal.
func Diff(name, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified("a/"+name, "b/"+name, before, edits))
}

// WriteFile replaces path's content, keeping its permissions.
func WriteFile(path string, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
