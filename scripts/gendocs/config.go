package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/earlylint/internal/cli/config"
)

// ConfigField describes one configuration key.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// getConfigSchema returns the configuration keys read by
// internal/cli/config.
func getConfigSchema() []ConfigField {
	d := config.Defaults()
	return []ConfigField{
		{Name: "verbose", Type: "bool", Default: "false", Description: "Log debug output to stderr"},
		{Name: "output", Type: "string", Default: d.Output, Description: "Output format: auto, text, markdown, json, yaml"},
		{Name: "severity", Type: "string", Default: d.Severity, Description: "Minimum severity reported and fixed: error, warning, info, hint"},
		{Name: "jobs", Type: "int", Default: fmt.Sprint(d.Jobs), Description: "Files analyzed in parallel; 0 uses the number of CPUs"},
		{Name: "docs_url", Type: "string", Description: "Base URL for rule documentation links"},
		{Name: "lint.disabled", Type: "[]string", Description: "Rule IDs that never run"},
		{Name: "lint.severity", Type: "map[string]string", Description: "Severity override per rule ID"},
		{Name: "lint.rules", Type: "map[string]map[string]any", Description: "Options per rule ID"},
		{Name: "fix.applicability", Type: "string", Default: d.Fix.Applicability, Description: "Least certain suggestions applied: machine-applicable or maybe-incorrect"},
	}
}

// generateConfigDocs writes the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "earlylint configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("earlylint reads the first of %s found in the working directory or its parents. "+
		"Pass `--config` to use a specific file.", joinCode(config.ConfigFileNames)))

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"Command-line flags",
		fmt.Sprintf("Environment variables prefixed with %s (%s sets %s)",
			InlineCode(config.EnvPrefix), InlineCode(config.EnvPrefix+"FIX__APPLICABILITY"), InlineCode("fix.applicability")),
		"Configuration file",
		"Built-in defaults",
	})

	w.Header(2, "Keys")
	var rows [][]string
	for _, f := range getConfigSchema() {
		def := f.Default
		if def != "" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode(f.Name), InlineCode(f.Type), def, cleanDescription(f.Description)})
	}
	w.Table([]string{"Key", "Type", "Default", "Description"}, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `severity: warning
lint:
  disabled:
    - unseparated-literal-suffix
  severity:
    zero-prefixed-literal: error
  rules:
    builtin-type-shadow:
      extra_types: [Vec, String]
fix:
  applicability: maybe-incorrect`)

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}

func joinCode(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += InlineCode(item)
	}
	return out
}
