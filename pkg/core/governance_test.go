//go:build governance

package core_test

import (
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/leapstack-labs/earlylint"

// =============================================================================
// COHESION TEST - Core types must be shared by multiple packages
// =============================================================================

// TestGovernance_CoreCohesion verifies that types in pkg/core are genuinely
// shared across multiple packages. Single-use types belong to their sole
// consumer.
func TestGovernance_CoreCohesion(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	coreDefs := make(map[types.Object]string)
	var corePkg *packages.Package
	for _, p := range pkgs {
		if p.PkgPath != modulePath+"/pkg/core" {
			continue
		}
		corePkg = p
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			obj := scope.Lookup(name)
			if _, isType := obj.(*types.TypeName); isType && obj.Exported() {
				coreDefs[obj] = name
			}
		}
		break
	}
	if corePkg == nil {
		t.Fatal("Could not find pkg/core")
	}

	usage := make(map[string]map[string]bool)
	for _, name := range coreDefs {
		usage[name] = make(map[string]bool)
	}

	base := modulePath + "/"
	for _, p := range pkgs {
		if p.PkgPath == corePkg.PkgPath || p.TypesInfo == nil {
			continue
		}
		for _, obj := range p.TypesInfo.Uses {
			if name, ok := coreDefs[obj]; ok {
				usage[name][strings.TrimPrefix(p.PkgPath, base)] = true
			}
		}
	}

	for name, importers := range usage {
		switch len(importers) {
		case 0:
			t.Logf("WARNING: Unused core type: %s (consider deleting)", name)
		case 1:
			for user := range importers {
				t.Errorf("COHESION VIOLATION: 'core.%s' is used ONLY by '%s'.\n"+
					"   Fix: Move the type from pkg/core to %s.", name, user, user)
			}
		}
	}
}

// =============================================================================
// PURITY TEST - The syntax tree is not re-exported through aliases
// =============================================================================

// TestGovernance_NoSyntaxAliases ensures the parser and lint packages do not
// re-export syntax tree types as aliases. Consumers use pkg/syntax directly.
func TestGovernance_NoSyntaxAliases(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	checked := map[string]bool{
		modulePath + "/pkg/parser": true,
		modulePath + "/pkg/lint":   true,
	}

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 || !checked[pkg.PkgPath] {
			continue
		}
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !tn.Exported() || !tn.IsAlias() {
				continue
			}
			named, ok := types.Unalias(tn.Type()).(*types.Named)
			if !ok || named.Obj().Pkg() == nil {
				continue
			}
			if named.Obj().Pkg().Path() == modulePath+"/pkg/syntax" {
				t.Errorf("PURITY VIOLATION: '%s' re-exports syntax.%s as an alias",
					strings.TrimPrefix(pkg.PkgPath, modulePath+"/"), named.Obj().Name())
			}
		}
	}
}
