// Package main provides tests for the earlylint CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/earlylint/internal/cli"
	"github.com/leapstack-labs/earlylint/internal/cli/commands"
	"github.com/leapstack-labs/earlylint/internal/cli/output"
	clitest "github.com/leapstack-labs/earlylint/internal/cli/testutil"
)

// run executes the root command in dir with the given args.
func run(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(dir)

	cmd := cli.NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "earlylint v"+cli.Version)
}

func TestHelpCommand(t *testing.T) {
	out, _, err := run(t, t.TempDir(), "--help")
	require.NoError(t, err)

	for _, expected := range []string{"check", "fix", "rules", "doctor", "init", "repl", "version", "completion"} {
		assert.Contains(t, out, expected)
	}
}

func TestCheckCommand(t *testing.T) {
	dir := clitest.SetupTestProject(t)

	out, _, err := run(t, dir, "check", "-o", "json")
	require.ErrorIs(t, err, commands.ErrLintIssues)

	var doc output.CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2, doc.Summary.FilesChecked)
	require.Len(t, doc.Files, 1)
	assert.Equal(t, "src/geometry.rs", doc.Files[0].Path)
}

func TestCheckCommandLintAlias(t *testing.T) {
	dir := clitest.SetupTestProject(t)

	_, _, err := run(t, dir, "lint", "--severity", "error", "src")
	require.NoError(t, err, "no error-level findings in the sample project")
}

func TestCheckCommandConfigFile(t *testing.T) {
	dir := clitest.SetupTestProject(t)
	clitest.WriteFile(t, dir, ".earlylint.yaml", `output: json
lint:
  disabled:
    - unseparated-literal-suffix
  severity:
    mixed-case-hex-literal: error
`)
	// Found from a subdirectory.
	out, _, err := run(t, filepath.Join(dir, "src"), "check")
	require.ErrorIs(t, err, commands.ErrLintIssues)

	var doc output.CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 1, doc.Summary.TotalIssues)
	assert.Equal(t, 1, doc.Summary.Errors)
	require.Len(t, doc.Files, 1)
	require.Len(t, doc.Files[0].Diagnostics, 1)
	assert.Equal(t, "mixed-case-hex-literal", doc.Files[0].Diagnostics[0].RuleID)
}

func TestCheckCommandEnvOverridesFile(t *testing.T) {
	dir := clitest.SetupTestProject(t)
	clitest.WriteFile(t, dir, ".earlylint.yaml", "output: text\n")
	t.Setenv("EARLYLINT_OUTPUT", "json")
	t.Setenv("EARLYLINT_LINT__DISABLED", "unseparated-literal-suffix, mixed-case-hex-literal")

	out, _, err := run(t, dir, "check")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), "output: %s", out)
}

func TestCheckCommandInvalidConfig(t *testing.T) {
	dir := clitest.SetupTestProject(t)
	clitest.WriteFile(t, dir, ".earlylint.yaml", "severity: loud\n")

	_, _, err := run(t, dir, "check")
	require.Error(t, err)
	assert.NotErrorIs(t, err, commands.ErrLintIssues)
	assert.Contains(t, err.Error(), "severity")
}

func TestCheckCommandMissingConfig(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "--config", "missing.yaml", "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestFixCommand(t *testing.T) {
	dir := clitest.SetupTestProject(t)

	out, _, err := run(t, dir, "fix", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "+    let scale = 2_u32;")

	_, _, err = run(t, dir, "fix", "--write")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "src", "geometry.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "let scale = 2_u32;")

	hidden, err := os.ReadFile(filepath.Join(dir, ".hidden", "gen.rs"))
	require.NoError(t, err)
	assert.Equal(t, clitest.DirtySource, string(hidden), "skipped directories are not rewritten")
}

func TestRulesCommand(t *testing.T) {
	out, _, err := run(t, t.TempDir(), "rules", "--docs-url", "https://docs.example.test", "-o", "json", "redundant-pattern")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "https://docs.example.test/redundant-pattern", doc["documentation_url"])
}

func TestInitThenDoctor(t *testing.T) {
	dir := clitest.SetupTestProject(t)

	out, _, err := run(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, ".earlylint.yaml")
	assert.FileExists(t, filepath.Join(dir, ".earlylint.yaml"))

	out, _, err = run(t, dir, "doctor", "-o", "json")
	require.NoError(t, err, "doctor never fails on findings")

	var doc commands.DoctorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc), "output: %s", out)
	assert.Equal(t, 2, doc.Summary.Files)
	assert.Equal(t, 2, doc.IssueCount)
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := run(t, t.TempDir(), "completion", shell)
			require.NoError(t, err)
			assert.True(t, strings.Contains(out, "earlylint"), "completion script mentions the binary")
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "nonexistent")
	require.Error(t, err)
}
