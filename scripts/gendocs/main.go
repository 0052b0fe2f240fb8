// Package main provides a generator that extracts CLI, configuration and
// lint rule metadata from earlylint and writes markdown documentation.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=config -outdir=docs
//	go run ./scripts/gendocs -gen=lint -outdir=docs/rules
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, config, lint, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

// generators maps each -gen value to its writer and default directory
// below docs/.
var generators = []struct {
	name   string
	subdir string
	run    func(outDir string) error
}{
	{"cli", "cli", generateCLIDocs},
	{"config", "", generateConfigDocs},
	{"lint", "rules", generateLintDocs},
}

func main() {
	flag.Parse()

	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}
	log.Printf("Project root: %s", projectRoot)

	if err := run(*genFlag, *outDirFlag, filepath.Join(projectRoot, "docs")); err != nil {
		log.Fatal(err)
	}
	log.Println("Done!")
}

// run generates the docs selected by gen. outDir overrides the default
// directory when a single generator is selected.
func run(gen, outDir, docsRoot string) error {
	matched := false
	for _, g := range generators {
		if gen != "all" && gen != g.name {
			continue
		}
		matched = true

		dir := filepath.Join(docsRoot, g.subdir)
		if outDir != "" && gen != "all" {
			dir = outDir
		}
		if err := g.run(dir); err != nil {
			return fmt.Errorf("failed to generate %s docs: %w", g.name, err)
		}
	}
	if !matched {
		return fmt.Errorf("unknown -gen value: %s (use: cli, config, lint, all)", gen)
	}
	return nil
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
