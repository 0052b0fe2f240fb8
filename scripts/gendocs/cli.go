package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/earlylint/internal/cli"
	"github.com/leapstack-labs/earlylint/internal/cli/config"
)

// exitCodes documents the process exit status of every command.
var exitCodes = [][]string{
	{"0", "Success"},
	{"1", "Findings at or above the severity threshold, unparsable files, or another error"},
}

// generateCLIDocs writes an overview page and one page per command of the
// live cobra tree.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	commands := visibleCommands(root)

	pages := map[string][]byte{"index.md": cliIndex(root, commands)}
	for _, cmd := range commands {
		pages[cmd.Name()+".md"] = commandPage(cmd, commands)
	}

	for name, content := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), content, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

// visibleCommands returns the documented subcommands of root by name.
func visibleCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || !cmd.IsAvailableCommand() || cmd.Name() == "help" {
			continue
		}
		out = append(out, cmd)
	}
	slices.SortFunc(out, func(a, b *cobra.Command) int { return strings.Compare(a.Name(), b.Name()) })
	return out
}

func cliIndex(root *cobra.Command, commands []*cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for earlylint")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("earlylint checks Rust sources for syntactic code smells, applies suggested rewrites and documents its rules.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/earlylint/cmd/earlylint@latest")

	w.Header(2, "Usage")
	w.CodeBlock("bash", root.Name()+" <command> [paths...] [flags]")

	w.Header(2, "Commands")
	rows := make([][]string, 0, len(commands))
	for _, cmd := range commands {
		rows = append(rows, []string{commandLink(cmd), cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Flags")
	writeFlagsTable(w, root.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph(fmt.Sprintf("Scalar and list configuration keys can be set with %s variables. "+
		"Nested keys join with a double underscore. Flags win over the environment.", InlineCode(config.EnvPrefix)))
	w.Table([]string{"Variable", "Key", "Description"}, envRows())

	w.Header(2, "Exit Codes")
	codes := make([][]string, 0, len(exitCodes))
	for _, c := range exitCodes {
		codes = append(codes, []string{InlineCode(c[0]), c[1]})
	}
	w.Table([]string{"Code", "Meaning"}, codes)

	return w.Bytes()
}

// envRows lists the variables for every configuration key that is not a map.
func envRows() [][]string {
	var rows [][]string
	for _, f := range getConfigSchema() {
		if strings.HasPrefix(f.Type, "map") {
			continue
		}
		rows = append(rows, []string{InlineCode(envName(f.Name)), InlineCode(f.Name), cleanDescription(f.Description)})
	}
	return rows
}

// envName maps a configuration key such as "fix.applicability" to its
// environment variable.
func envName(key string) string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "__"))
}

func commandLink(cmd *cobra.Command) string {
	return fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
}

func commandPage(cmd *cobra.Command, siblings []*cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)

	w.Header(2, "Usage")
	w.CodeBlock("bash", cmd.UseLine())

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		aliases := make([]string, 0, len(cmd.Aliases))
		for _, a := range cmd.Aliases {
			aliases = append(aliases, InlineCode(a))
		}
		w.BulletList(aliases)
	}

	if cmd.HasAvailableLocalFlags() {
		w.Header(2, "Flags")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	if cmd.HasAvailableInheritedFlags() {
		w.Header(2, "Global Flags")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}

	var related []string
	for _, s := range siblings {
		if s != cmd {
			related = append(related, commandLink(s))
		}
	}
	if len(related) > 0 {
		w.Header(2, "See Also")
		w.Paragraph(strings.Join(related, " · "))
	}

	return w.Bytes()
}

// writeFlagsTable renders the visible flags of fs.
func writeFlagsTable(w *MarkdownWriter, fs *pflag.FlagSet) {
	var rows [][]string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			name += ", " + InlineCode("-"+f.Shorthand)
		}
		def := ""
		if f.DefValue != "" && f.DefValue != "[]" && f.Value.Type() != "bool" {
			def = InlineCode(f.DefValue)
		}
		rows = append(rows, []string{name, f.Value.Type(), def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Flag", "Type", "Default", "Description"}, rows)
}

// dedent strips the indentation shared by all non-blank lines of s.
func dedent(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	width := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if n := len(line) - len(strings.TrimLeft(line, " \t")); width < 0 || n < width {
			width = n
		}
	}
	for i, line := range lines {
		if len(line) >= width && width > 0 {
			lines[i] = line[width:]
		}
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n ")
}
