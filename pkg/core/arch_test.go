package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// importsOf returns the import paths of every non-test Go file in dir,
// keyed by file name.
func importsOf(t *testing.T, dir string) map[string][]string {
	t.Helper()

	fset := token.NewFileSet()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read directory %s: %v", dir, err)
	}

	out := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		if strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			out[entry.Name()] = append(out[entry.Name()], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return out
}

// TestCoreImportsOnlyStdlib verifies pkg/core only imports the standard library.
// The Golden Rule: every other package depends on core, never the reverse.
func TestCoreImportsOnlyStdlib(t *testing.T) {
	for file, imports := range importsOf(t, ".") {
		for _, importPath := range imports {
			if strings.Contains(importPath, ".") {
				t.Errorf("%s imports forbidden package: %s", file, importPath)
			}
		}
	}
}

// TestLayering verifies the dependency direction between the library packages.
// The lint engine consumes a syntax tree and must never reach for the parser
// or the CLI.
func TestLayering(t *testing.T) {
	const module = "github.com/leapstack-labs/earlylint/"

	tests := []struct {
		dir       string
		forbidden []string
	}{
		{dir: "../token", forbidden: []string{module}},
		{dir: "../syntax", forbidden: []string{module + "pkg/parser", module + "pkg/lint", module + "internal/"}},
		{dir: "../source", forbidden: []string{module + "pkg/parser", module + "pkg/lint", module + "internal/"}},
		{dir: "../lint", forbidden: []string{module + "pkg/parser", module + "pkg/fix", module + "internal/"}},
		{dir: "../fix", forbidden: []string{module + "pkg/parser", module + "internal/"}},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.dir), func(t *testing.T) {
			for file, imports := range importsOf(t, tt.dir) {
				for _, importPath := range imports {
					for _, prefix := range tt.forbidden {
						if strings.HasPrefix(importPath, prefix) {
							t.Errorf("%s imports forbidden package: %s", file, importPath)
						}
					}
				}
			}
		})
	}
}
