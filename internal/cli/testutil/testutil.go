// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/earlylint/internal/cli/output"
)

// Sample sources written by SetupTestProject.
const (
	// CleanSource has no findings.
	CleanSource = `fn main() {
    let n = 0x1A_u8;
    println!("{}", n);
}
`

	// DirtySource has an unseparated suffix hint with a machine-applicable
	// fix and a mixed-case hex warning without one.
	DirtySource = `fn area(w: u32, h: u32) -> u32 {
    let scale = 2u32;
    let mask = 0x1aBc;
    w * h * scale + mask
}
`
)

// SetupTestProject creates a temporary project with Rust sources:
//
//	src/main.rs         clean
//	src/geometry.rs     DirtySource
//	target/debug/gen.rs dirty, skipped when walking
//	.hidden/gen.rs      dirty, skipped when walking
//	README.md
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	files := map[string]string{
		filepath.Join("src", "main.rs"):            CleanSource,
		filepath.Join("src", "geometry.rs"):        DirtySource,
		filepath.Join("target", "debug", "gen.rs"): DirtySource,
		filepath.Join(".hidden", "gen.rs"):         DirtySource,
		"README.md":                                "# sample\n",
	}
	for name, content := range files {
		WriteFile(t, tmpDir, name, content)
	}

	return tmpDir
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a text-mode renderer that behaves as if
// writing to a terminal.
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// Output returns the combined stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Reset clears both output buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI fails when s carries terminal escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	assert.False(t, ansiPattern.MatchString(s), "unexpected ANSI escape codes in %q", s)
}

// AssertValidMarkdown checks that code fences are balanced and that no
// heading is empty.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	assert.Zero(t, strings.Count(md, "```")%2, "unbalanced code fences")

	for i, line := range strings.Split(md, "\n") {
		if heading, ok := strings.CutPrefix(strings.TrimSpace(line), "#"); ok {
			assert.NotEmpty(t, strings.Trim(heading, "# "), "empty heading at line %d", i+1)
		}
	}
}
