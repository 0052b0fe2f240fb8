package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/earlylint/internal/cli/output"
	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	_ "github.com/leapstack-labs/earlylint/pkg/lint/rules" // register rules
)

// categoryDescriptions provides human-readable descriptions for rule categories.
var categoryDescriptions = map[core.Category]string{
	core.CategoryStyle:      "Code that works but reads worse than an equivalent spelling.",
	core.CategoryComplexity: "Code that does something simple in a roundabout way.",
	core.CategoryPedantic:   "Stricter checks that some projects prefer to leave off.",
}

// generateLintDocs writes the rules index and one page per category.
func generateLintDocs(outDir string) error {
	log.Printf("Generating lint docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	grouped := make(map[core.Category][]lint.Rule)
	for _, r := range lint.All() {
		grouped[r.Category()] = append(grouped[r.Category()], r)
	}

	if err := generateLintIndex(outDir, grouped); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, cat := range core.Categories() {
		rules := grouped[cat]
		if len(rules) == 0 {
			continue
		}
		if err := generateCategoryPage(outDir, cat, rules); err != nil {
			return err
		}
		log.Printf("  Generated %s.md", cat)
	}
	return nil
}

// generateLintIndex generates the rules overview page.
func generateLintIndex(outDir string, grouped map[core.Category][]lint.Rule) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "Lint rules checked by earlylint")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("earlylint ships %s. Every rule looks at one syntax tree node at a time "+
		"and needs no type information.", Bold(fmt.Sprintf("%d rules", lint.Count()))))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Critical issue that should be fixed"},
			{InlineCode("warning"), "Potential issue that should be reviewed"},
			{InlineCode("info"), "Informational feedback"},
			{InlineCode("hint"), "Suggestion for improvement"},
		},
	)

	w.Header(2, "Suppressing Findings")
	w.CodeBlock("rust", `// earlylint:allow-file(unseparated-literal-suffix)

fn main() {
    // earlylint:allow(zero-prefixed-literal)
    let mode = 0755;
}`)

	w.Header(2, "All Rules")
	var rows [][]string
	for _, cat := range core.Categories() {
		for _, r := range grouped[cat] {
			link := fmt.Sprintf("[%s](%s#%s)", InlineCode(r.ID()), cat, r.ID())
			rows = append(rows, []string{
				link,
				output.TitleCase(string(cat)),
				InlineCode(r.DefaultSeverity().String()),
				cleanDescription(r.Description()),
			})
		}
	}
	w.Table([]string{"Rule", "Category", "Severity", "Description"}, rows)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateCategoryPage writes full documentation for the rules of one
// category.
func generateCategoryPage(outDir string, cat core.Category, rules []lint.Rule) error {
	title := output.TitleCase(string(cat)) + " Rules"

	w := NewMarkdownWriter()
	w.Frontmatter(title, categoryDescriptions[cat])
	w.GeneratedMarker()

	w.Header(1, title)
	w.Paragraph(categoryDescriptions[cat])

	for _, rule := range rules {
		writeRuleDoc(w, rule)
	}

	return os.WriteFile(filepath.Join(outDir, string(cat)+".md"), w.Bytes(), 0600)
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.Rule) {
	info := lint.GetRuleInfo(rule)

	// ### double-negation - Double negation {#double-negation}
	w.Line(fmt.Sprintf("### %s - %s {#%s}", info.ID, info.Name, info.ID))
	w.Newline()

	w.Line(fmt.Sprintf("%s %s | %s %s",
		Bold("Severity:"), InlineCode(info.DefaultSeverity.String()), Bold("Checks:"), strings.Join(info.Kinds, ", ")))
	w.Newline()

	w.Paragraph(cleanDescription(info.Description))

	if info.Rationale != "" {
		w.Header(4, "Why This Matters")
		w.Paragraph(strings.TrimSpace(info.Rationale))
	}

	if info.BadExample != "" {
		w.Header(4, "Bad")
		w.CodeBlock("rust", info.BadExample)
	}

	if info.GoodExample != "" {
		w.Header(4, "Good")
		w.CodeBlock("rust", info.GoodExample)
	}

	if info.Fix != "" {
		w.Header(4, "How to Fix")
		w.Paragraph(strings.TrimSpace(info.Fix))
	}

	if len(info.ConfigKeys) > 0 {
		w.Header(4, "Configuration")
		w.Paragraph(fmt.Sprintf("This rule accepts the following configuration options under %s: %s",
			InlineCode("lint.rules."+info.ID), InlineCode(strings.Join(info.ConfigKeys, ", "))))
	}

	w.Line("---")
	w.Newline()
}
