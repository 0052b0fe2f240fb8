package commands

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	_ "github.com/leapstack-labs/earlylint/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/earlylint/pkg/parser"
	"github.com/leapstack-labs/earlylint/pkg/source"
)

// SourceExt is the extension of files picked up when walking directories.
const SourceExt = ".rs"

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"target":       true,
	"node_modules": true,
}

// fileReport is the outcome of linting one file.
type fileReport struct {
	Path        string
	Source      *source.File
	Diagnostics []lint.Diagnostic
	Err         error // read or parse failure
}

// collectFiles expands paths into a sorted list of source files.
// Directories are walked for *.rs files; files named explicitly are kept
// whatever their extension.
func collectFiles(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == SourceExt {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	slices.Sort(files)
	return files, nil
}

// lintSource parses and analyzes one loaded file.
func lintSource(src *source.File, cfg *lint.Config, logger *slog.Logger) fileReport {
	report := fileReport{Path: src.Name, Source: src}

	file, err := parser.ParseFile(src)
	if err != nil {
		report.Err = err
		return report
	}

	a := lint.NewAnalyzer(cfg, src, lint.WithLogger(logger))
	report.Diagnostics = a.AnalyzeFile(file)
	return report
}

// lintPath loads and lints path.
func lintPath(path string, cfg *lint.Config, logger *slog.Logger) fileReport {
	src, err := source.Load(path)
	if err != nil {
		return fileReport{Path: filepath.ToSlash(path), Err: err}
	}
	return lintSource(src, cfg, logger)
}

// lintFiles lints files concurrently with at most jobs workers and returns
// the reports in the order of files. jobs <= 0 uses GOMAXPROCS.
func lintFiles(ctx context.Context, files []string, cfg *lint.Config, jobs int, logger *slog.Logger) ([]fileReport, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	reports := make([]fileReport, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = lintPath(path, cfg, logger)
			logger.Debug("linted file", "path", path, "diagnostics", len(reports[i].Diagnostics))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// filterBySeverity drops diagnostics less severe than threshold.
func filterBySeverity(diags []lint.Diagnostic, threshold core.Severity) []lint.Diagnostic {
	out := make([]lint.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity <= threshold {
			out = append(out, d)
		}
	}
	return out
}
