package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/earlylint/pkg/lint"
)

// LineSource returns the text of a 1-based line, "" when unknown.
type LineSource interface {
	Line(n int) string
}

var titleCaser = cases.Title(language.English)

// TitleCase renders a category or heading such as "style" as "Style".
func TitleCase(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "-", " "))
}

// FormatHeader renders a markdown heading of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatCodeBlock wraps code in a fenced block.
func FormatCodeBlock(lang, code string) string {
	return "```" + lang + "\n" + strings.TrimRight(code, "\n") + "\n```"
}

// CaretLine builds the underline for columns [startCol, endCol) of line.
// Columns are 1-based byte columns. Tabs in the prefix are kept so the
// caret lines up under terminals that expand them. Wide runes count by
// their display width.
func CaretLine(line string, startCol, endCol int) string {
	start := clamp(startCol-1, 0, len(line))
	end := clamp(endCol-1, start, len(line))

	var pad strings.Builder
	for _, r := range line[:start] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}

	width := runewidth.StringWidth(line[start:end])
	if width < 1 {
		width = 1
	}
	return pad.String() + strings.Repeat("^", width)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RenderDiagnostic writes one diagnostic in the effective text or markdown
// mode. lines may be nil, in which case no source excerpt is shown.
func (r *Renderer) RenderDiagnostic(path string, lines LineSource, d lint.Diagnostic) {
	if r.EffectiveMode() == ModeMarkdown {
		r.renderDiagnosticMarkdown(path, lines, d)
		return
	}
	r.renderDiagnosticText(path, lines, d)
}

func (r *Renderer) renderDiagnosticText(path string, lines LineSource, d lint.Diagnostic) {
	s := r.styles
	sev := d.Severity.String()

	r.Printf("%s%s %s\n",
		s.Severity(d.Severity).Render(sev),
		s.RuleID.Render("["+d.RuleID+"]"),
		s.Bold.Render(d.Message),
	)

	gutter := strings.Repeat(" ", len(strconv.Itoa(d.Pos.Line)))
	r.Printf("%s%s %s\n", gutter, s.Gutter.Render("-->"), location(path, d))

	if lines != nil && d.Pos.Line > 0 {
		text := lines.Line(d.Pos.Line)
		endCol := d.EndPos.Column
		if d.EndPos.Line != d.Pos.Line {
			endCol = len(text) + 1
		}
		r.Printf("%s %s\n", gutter, s.Gutter.Render("|"))
		r.Printf("%s %s %s\n", s.Gutter.Render(strconv.Itoa(d.Pos.Line)), s.Gutter.Render("|"), text)
		r.Printf("%s %s %s\n", gutter, s.Gutter.Render("|"), s.Caret.Render(CaretLine(text, d.Pos.Column, endCol)))
	}

	if d.Help != "" {
		r.Printf("%s %s %s\n", gutter, s.Gutter.Render("="), "help: "+d.Help)
	}
	for _, sg := range d.Suggestions {
		r.Printf("%s %s %s\n", gutter, s.Gutter.Render("="), suggestionLine(sg))
	}
	if d.DocumentationURL != "" {
		r.Printf("%s %s %s\n", gutter, s.Gutter.Render("="), s.Muted.Render("see "+d.DocumentationURL))
	}
	r.Println("")
}

func (r *Renderer) renderDiagnosticMarkdown(path string, lines LineSource, d lint.Diagnostic) {
	r.Printf("- **%s** `%s` %s (%s)\n", d.Severity, d.RuleID, d.Message, location(path, d))
	if lines != nil && d.Pos.Line > 0 {
		r.Println("")
		r.Println(indent(FormatCodeBlock("rust", lines.Line(d.Pos.Line)), "  "))
		r.Println("")
	}
	if d.Help != "" {
		r.Printf("  - help: %s\n", d.Help)
	}
	for _, sg := range d.Suggestions {
		r.Printf("  - %s\n", suggestionLine(sg))
	}
}

func location(path string, d lint.Diagnostic) string {
	if d.Pos.Line == 0 {
		return path
	}
	return fmt.Sprintf("%s:%d:%d", path, d.Pos.Line, d.Pos.Column)
}

func suggestionLine(s lint.Suggestion) string {
	var texts []string
	for _, e := range s.Edits {
		texts = append(texts, "`"+e.NewText+"`")
	}
	line := fmt.Sprintf("%s (%s)", s.Label, s.Applicability)
	if len(texts) > 0 {
		line += ": " + strings.Join(texts, ", ")
	}
	return line
}

func indent(s, prefix string) string {
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		parts[i] = prefix + p
	}
	return strings.Join(parts, "\n")
}

// RenderSummary writes the closing summary line of a check run.
func (r *Renderer) RenderSummary(sum CheckSummary) {
	parts := []string{fmt.Sprintf("%d issues", sum.TotalIssues)}
	if sum.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", sum.Errors))
	}
	if sum.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", sum.Warnings))
	}
	if sum.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", sum.Info))
	}
	if sum.Hints > 0 {
		parts = append(parts, fmt.Sprintf("%d hints", sum.Hints))
	}
	line := fmt.Sprintf("Summary: %s in %d of %d files", strings.Join(parts, ", "), sum.FilesWithIssues, sum.FilesChecked)
	if sum.Fixable > 0 {
		line += fmt.Sprintf(" (%d fixable with `earlylint fix`)", sum.Fixable)
	}

	if r.EffectiveMode() == ModeMarkdown {
		r.Println("")
		r.Println("**" + line + "**")
		return
	}
	r.Println(r.styles.Bold.Render(line))
}
