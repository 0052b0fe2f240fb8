package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/earlylint/internal/cli/config"
	"github.com/leapstack-labs/earlylint/internal/cli/output"
	clitest "github.com/leapstack-labs/earlylint/internal/cli/testutil"
	"github.com/leapstack-labs/earlylint/internal/testutil"
)

// executeCommand runs cmd with cfg in its context and returns stdout and
// stderr.
func executeCommand(t *testing.T, cfg *config.Config, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	if cfg == nil {
		cfg = config.Defaults()
	}

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	ctx := config.WithConfig(context.Background(), cfg)
	ctx = config.WithLogger(ctx, testutil.NewTestLogger(t))
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func decodeCheck(t *testing.T, s string) output.CheckOutput {
	t.Helper()
	var doc output.CheckOutput
	require.NoError(t, json.Unmarshal([]byte(s), &doc), "output: %s", s)
	return doc
}

func ruleIDs(fr output.FileResult) []string {
	ids := make([]string, 0, len(fr.Diagnostics))
	for _, d := range fr.Diagnostics {
		ids = append(ids, d.RuleID)
	}
	return ids
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check [paths...]", cmd.Use)
	assert.Equal(t, []string{"lint"}, cmd.Aliases)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"format", "disable", "rule", "watch", "severity", "jobs"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestCheckCommand_Clean(t *testing.T) {
	dir := t.TempDir()
	clitest.WriteFile(t, dir, "main.rs", clitest.CleanSource)

	out, _, err := executeCommand(t, nil, NewCheckCommand(), dir)
	require.NoError(t, err)

	assert.Contains(t, out, "No lint issues found in 1 files")
	clitest.AssertNoANSI(t, out)
}

func TestCommands_FailureKeepsOutputClean(t *testing.T) {
	tests := []struct {
		name string
		cmd  *cobra.Command
	}{
		{"check", NewCheckCommand()},
		{"fix", NewFixCommand()},
		{"doctor", NewDoctorCommand()},
		{"rules", NewRulesCommand()},
		{"init", NewInitCommand()},
		{"repl", NewReplCommand()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.cmd.SilenceUsage)
			assert.True(t, tt.cmd.SilenceErrors)
		})
	}

	t.Run("check json stays decodable", func(t *testing.T) {
		dir := clitest.SetupTestProject(t)
		out, errOut, err := executeCommand(t, nil, NewCheckCommand(), "--format", "json", dir)
		require.ErrorIs(t, err, ErrLintIssues)
		assert.True(t, json.Valid([]byte(out)), "output: %s", out)
		assert.NotContains(t, out, "Usage:")
		assert.NotContains(t, errOut, "Usage:")
		assert.NotContains(t, errOut, "Error:")
	})
}

func TestCheckCommand_JSON(t *testing.T) {
	dir := clitest.SetupTestProject(t)

	out, _, err := executeCommand(t, nil, NewCheckCommand(), "--format", "json", dir)
	require.ErrorIs(t, err, ErrLintIssues)

	doc := decodeCheck(t, out)
	assert.Equal(t, 2, doc.Summary.FilesChecked, "target/ and hidden dirs are skipped")
	assert.Equal(t, 1, doc.Summary.FilesWithIssues)
	assert.Equal(t, 2, doc.Summary.TotalIssues)
	assert.Equal(t, 1, doc.Summary.Warnings)
	assert.Equal(t, 1, doc.Summary.Hints)
	assert.Equal(t, 1, doc.Summary.Fixable)

	require.Len(t, doc.Files, 1)
	fr := doc.Files[0]
	assert.Equal(t, "geometry.rs", filepath.Base(fr.Path))
	assert.ElementsMatch(t, []string{"unseparated-literal-suffix", "mixed-case-hex-literal"}, ruleIDs(fr))

	for _, d := range fr.Diagnostics {
		switch d.RuleID {
		case "unseparated-literal-suffix":
			assert.Equal(t, "hint", d.Severity)
			assert.Equal(t, 2, d.Line)
			assert.True(t, d.AutoFixable)
			require.Len(t, d.Suggestions, 1)
			assert.Equal(t, "machine-applicable", d.Suggestions[0].Applicability)
			require.Len(t, d.Suggestions[0].Edits, 1)
			assert.Equal(t, "2_u32", d.Suggestions[0].Edits[0].NewText)
		case "mixed-case-hex-literal":
			assert.Equal(t, "warning", d.Severity)
			assert.Equal(t, 3, d.Line)
			assert.Equal(t, 16, d.Column)
			assert.NotEmpty(t, d.DocumentationURL)
		}
	}
}

func TestCheckCommand_Filters(t *testing.T) {
	tests := []struct {
		name     string
		severity string
		args     []string
		wantIDs  []string
	}{
		{
			name:     "severity threshold drops hints",
			severity: "warning",
			wantIDs:  []string{"mixed-case-hex-literal"},
		},
		{
			name:    "disable a rule",
			args:    []string{"--disable", "mixed-case-hex-literal"},
			wantIDs: []string{"unseparated-literal-suffix"},
		},
		{
			name:    "only selected rules",
			args:    []string{"--rule", "mixed-case-hex-literal"},
			wantIDs: []string{"mixed-case-hex-literal"},
		},
		{
			name: "no rule matches",
			args: []string{"--rule", "double-negation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := clitest.WriteFile(t, dir, "geometry.rs", clitest.DirtySource)

			cfg := config.Defaults()
			if tt.severity != "" {
				cfg.Severity = tt.severity
			}

			args := append([]string{"--format", "json"}, tt.args...)
			out, _, err := executeCommand(t, cfg, NewCheckCommand(), append(args, path)...)
			doc := decodeCheck(t, out)

			if len(tt.wantIDs) == 0 {
				require.NoError(t, err)
				assert.Empty(t, doc.Files)
				return
			}
			require.ErrorIs(t, err, ErrLintIssues)
			require.Len(t, doc.Files, 1)
			assert.ElementsMatch(t, tt.wantIDs, ruleIDs(doc.Files[0]))
		})
	}
}

func TestCheckCommand_AllowComments(t *testing.T) {
	src := `// earlylint:allow-file(unseparated-literal-suffix)
fn area(w: u32, h: u32) -> u32 {
    let scale = 2u32;
    // earlylint:allow(mixed-case-hex-literal)
    let mask = 0x1aBc;
    w * h * scale + mask
}
`
	dir := t.TempDir()
	path := clitest.WriteFile(t, dir, "geometry.rs", src)

	out, _, err := executeCommand(t, nil, NewCheckCommand(), "--format", "json", path)
	require.NoError(t, err)
	assert.Zero(t, decodeCheck(t, out).Summary.TotalIssues)
}

func TestCheckCommand_ParseError(t *testing.T) {
	dir := t.TempDir()
	clitest.WriteFile(t, dir, "broken.rs", "fn main( {\n")
	clitest.WriteFile(t, dir, "main.rs", clitest.CleanSource)

	out, _, err := executeCommand(t, nil, NewCheckCommand(), "--format", "json", dir)
	require.ErrorIs(t, err, ErrLintIssues)

	doc := decodeCheck(t, out)
	assert.Equal(t, 1, doc.Summary.ParseErrors)
	assert.Zero(t, doc.Summary.TotalIssues)
	require.Len(t, doc.Files, 1)
	assert.Equal(t, "broken.rs", filepath.Base(doc.Files[0].Path))
	assert.NotEmpty(t, doc.Files[0].ParseError)
}

func TestCheckCommand_TextOutput(t *testing.T) {
	dir := t.TempDir()
	path := clitest.WriteFile(t, dir, "geometry.rs", clitest.DirtySource)

	out, _, err := executeCommand(t, nil, NewCheckCommand(), "--format", "text", path)
	require.ErrorIs(t, err, ErrLintIssues)

	clitest.AssertNoANSI(t, out)
	assert.Contains(t, out, "warning[mixed-case-hex-literal]")
	assert.Contains(t, out, "hint[unseparated-literal-suffix]")
	assert.Contains(t, out, "--> "+filepath.ToSlash(path)+":3:16")
	assert.Contains(t, out, "3 |     let mask = 0x1aBc;")
	assert.Contains(t, out, "add an underscore (machine-applicable): `2_u32`")
	assert.Contains(t, out, "Summary: 2 issues, 1 warnings, 1 hints in 1 of 1 files (1 fixable with `earlylint fix`)")
}

func TestCheckCommand_MarkdownOutput(t *testing.T) {
	dir := t.TempDir()
	path := clitest.WriteFile(t, dir, "geometry.rs", clitest.DirtySource)

	// Auto mode on a non-terminal renders markdown.
	out, _, err := executeCommand(t, nil, NewCheckCommand(), path)
	require.ErrorIs(t, err, ErrLintIssues)

	clitest.AssertValidMarkdown(t, out)
	clitest.AssertNoANSI(t, out)
	assert.Contains(t, out, "## `"+filepath.ToSlash(path)+"`")
	assert.Contains(t, out, "- **warning** `mixed-case-hex-literal`")
	assert.Contains(t, out, "```rust")
}

func TestCheckCommand_MissingPath(t *testing.T) {
	_, _, err := executeCommand(t, nil, NewCheckCommand(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLintIssues)
}

func TestNewFixCommand(t *testing.T) {
	cmd := NewFixCommand()

	assert.Equal(t, "fix [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	for _, flag := range []string{"format", "disable", "rule", "write", "unsafe", "severity", "jobs"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestFixCommand_Diff(t *testing.T) {
	dir := t.TempDir()
	path := clitest.WriteFile(t, dir, "geometry.rs", clitest.DirtySource)

	out, _, err := executeCommand(t, nil, NewFixCommand(), "--format", "text", path)
	require.NoError(t, err)

	assert.Contains(t, out, "-    let scale = 2u32;")
	assert.Contains(t, out, "+    let scale = 2_u32;")
	assert.Contains(t, out, "Would apply 1 fixes, skipped 0")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, clitest.DirtySource, string(content), "diff mode leaves files alone")
}

func TestFixCommand_Write(t *testing.T) {
	dir := t.TempDir()
	path := clitest.WriteFile(t, dir, "geometry.rs", "\uFEFF"+clitest.DirtySource)

	out, _, err := executeCommand(t, nil, NewFixCommand(), "--format", "json", "--write", path)
	require.NoError(t, err)

	var doc output.FixOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.True(t, doc.Written)
	assert.Equal(t, 1, doc.Applied)
	require.Len(t, doc.Files, 1)
	require.Len(t, doc.Files[0].Applied, 1)
	assert.Equal(t, "unseparated-literal-suffix", doc.Files[0].Applied[0].RuleID)
	assert.Empty(t, doc.Files[0].Diff)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("\uFEFF")), "byte order mark is kept")
	assert.Contains(t, string(content), "let scale = 2_u32;")
	assert.Contains(t, string(content), "let mask = 0x1aBc;")
}

func TestFixCommand_Applicability(t *testing.T) {
	src := "fn main() {\n    let x = 0123;\n}\n"

	t.Run("maybe-incorrect skipped by default", func(t *testing.T) {
		dir := t.TempDir()
		path := clitest.WriteFile(t, dir, "octal.rs", src)

		out, _, err := executeCommand(t, nil, NewFixCommand(), "--format", "json", path)
		require.NoError(t, err)

		var doc output.FixOutput
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Zero(t, doc.Applied)
		assert.Equal(t, 1, doc.Skipped)
		require.Len(t, doc.Files, 1)
		require.Len(t, doc.Files[0].Skipped, 1)
		assert.Equal(t, "zero-prefixed-literal", doc.Files[0].Skipped[0].RuleID)
		assert.Contains(t, doc.Files[0].Skipped[0].Reason, "maybe-incorrect")
	})

	t.Run("applied when unsafe is configured", func(t *testing.T) {
		dir := t.TempDir()
		path := clitest.WriteFile(t, dir, "octal.rs", src)

		cfg := config.Defaults()
		cfg.Fix.Applicability = "maybe-incorrect"
		_, _, err := executeCommand(t, cfg, NewFixCommand(), "--format", "json", "--write", path)
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "let x = 123;")
	})
}

func TestFixCommand_NothingToFix(t *testing.T) {
	dir := t.TempDir()
	path := clitest.WriteFile(t, dir, "main.rs", clitest.CleanSource)

	out, _, err := executeCommand(t, nil, NewFixCommand(), "--format", "markdown", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to fix")
}

func TestCollectFiles(t *testing.T) {
	dir := clitest.SetupTestProject(t)
	notes := clitest.WriteFile(t, dir, "notes.txt", "text")

	t.Run("walks directories", func(t *testing.T) {
		files, err := collectFiles([]string{dir})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "src", "geometry.rs"),
			filepath.Join(dir, "src", "main.rs"),
		}, files)
	})

	t.Run("keeps explicit files and dedupes", func(t *testing.T) {
		main := filepath.Join(dir, "src", "main.rs")
		files, err := collectFiles([]string{notes, main, filepath.Join(dir, "src")})
		require.NoError(t, err)
		assert.Equal(t, []string{
			notes,
			filepath.Join(dir, "src", "geometry.rs"),
			main,
		}, files)
	})

	t.Run("explicit file in skipped dir", func(t *testing.T) {
		gen := filepath.Join(dir, "target", "debug", "gen.rs")
		files, err := collectFiles([]string{gen})
		require.NoError(t, err)
		assert.Equal(t, []string{gen}, files)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := collectFiles([]string{filepath.Join(dir, "missing")})
		require.Error(t, err)
	})
}

func TestLintFiles_KeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"a.rs", "b.rs", "c.rs", "d.rs"} {
		src := clitest.CleanSource
		if name == "c.rs" {
			src = clitest.DirtySource
		}
		files = append(files, clitest.WriteFile(t, dir, name, src))
	}

	cfg := config.Defaults().LintConfig(nil, nil)
	reports, err := lintFiles(context.Background(), files, cfg, 2, testutil.NewTestLogger(t))
	require.NoError(t, err)

	require.Len(t, reports, len(files))
	for i, rep := range reports {
		assert.Equal(t, filepath.ToSlash(files[i]), rep.Path)
		require.NoError(t, rep.Err)
	}
	assert.Empty(t, reports[0].Diagnostics)
	assert.Len(t, reports[2].Diagnostics, 2)
}

func TestLintFiles_Cancelled(t *testing.T) {
	dir := t.TempDir()
	files := []string{clitest.WriteFile(t, dir, "a.rs", clitest.CleanSource)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lintFiles(ctx, files, config.Defaults().LintConfig(nil, nil), 1, testutil.NewTestLogger(t))
	require.ErrorIs(t, err, context.Canceled)
}
