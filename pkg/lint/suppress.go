package lint

import (
	"strings"

	"github.com/leapstack-labs/earlylint/pkg/token"
)

// Suppression directives recognised in comments:
//
//	// earlylint:allow(rule-a, rule-b)   silences the comment's line and the next
//	// earlylint:allow-file(rule-a)      silences the whole file
//
// The rule list may be "all".
const (
	allowDirective     = "earlylint:allow("
	allowFileDirective = "earlylint:allow-file("
	allRules           = "all"
)

// Suppressions is the set of allow directives found in a file.
type Suppressions struct {
	lines map[int]map[string]bool
	file  map[string]bool
}

// ParseSuppressions collects allow directives from comments.
func ParseSuppressions(comments []*token.Comment) Suppressions {
	s := Suppressions{
		lines: make(map[int]map[string]bool),
		file:  make(map[string]bool),
	}
	for _, c := range comments {
		body := c.Body()
		switch {
		case strings.HasPrefix(body, allowFileDirective):
			for _, id := range directiveIDs(body, allowFileDirective) {
				s.file[id] = true
			}
		case strings.HasPrefix(body, allowDirective):
			ids := directiveIDs(body, allowDirective)
			for _, line := range []int{c.Span.End.Line, c.Span.End.Line + 1} {
				if s.lines[line] == nil {
					s.lines[line] = make(map[string]bool)
				}
				for _, id := range ids {
					s.lines[line][id] = true
				}
			}
		}
	}
	return s
}

// Allows reports whether a diagnostic of ruleID starting on line is silenced.
func (s Suppressions) Allows(ruleID string, line int) bool {
	if s.file[ruleID] || s.file[allRules] {
		return true
	}
	ids := s.lines[line]
	return ids[ruleID] || ids[allRules]
}

// Filter drops silenced diagnostics, keeping order.
func (s Suppressions) Filter(diags []Diagnostic) []Diagnostic {
	if len(s.lines) == 0 && len(s.file) == 0 {
		return diags
	}
	kept := diags[:0:0]
	for _, d := range diags {
		if !s.Allows(d.RuleID, d.Pos.Line) {
			kept = append(kept, d)
		}
	}
	return kept
}

func directiveIDs(body, directive string) []string {
	rest := strings.TrimPrefix(body, directive)
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(rest[:end], ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
