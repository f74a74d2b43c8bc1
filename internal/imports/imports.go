// Package imports reconciles a compilation unit's import list after a
// rewrite. The policy is conservative: missing imports are added, existing
// ones are left untouched, and nothing is ever removed. An unused import is
// harmless, a missing one is not.
package imports

import (
	"sort"
	"strings"

	"github.com/jfix-dev/jfix/internal/java"
)

// Ensure returns a unit that declares every requested import. New imports are
// appended after the existing block in sorted order. When nothing is missing
// the original unit is returned unchanged (same pointer).
func Ensure(unit *java.CompilationUnit, typeImports, staticImports []string) *java.CompilationUnit {
	var missing []*java.Import
	for _, path := range typeImports {
		if !Has(unit, path, false) {
			missing = append(missing, &java.Import{Path: path})
		}
	}
	for _, path := range staticImports {
		if !Has(unit, path, true) {
			missing = append(missing, &java.Import{Path: path, Static: true})
		}
	}
	missing = dedupe(missing)
	if len(missing) == 0 {
		return unit
	}
	sort.Slice(missing, func(i, j int) bool {
		return missing[i].Path < missing[j].Path
	})
	merged := make([]*java.Import, 0, len(unit.Imports)+len(missing))
	merged = append(merged, unit.Imports...)
	merged = append(merged, missing...)
	return unit.WithImports(merged)
}

// Has reports whether the unit already declares the import. A static
// on-demand import of the declaring type (import static T.*) also covers a
// static member import of T.
func Has(unit *java.CompilationUnit, path string, static bool) bool {
	for _, imp := range unit.Imports {
		if imp.Static != static {
			continue
		}
		if imp.Path == path {
			return true
		}
		if static && onDemandCovers(imp.Path, path) {
			return true
		}
	}
	return false
}

func onDemandCovers(declared, wanted string) bool {
	if !strings.HasSuffix(declared, ".*") {
		return false
	}
	prefix := strings.TrimSuffix(declared, "*") // keep the trailing dot
	member := strings.TrimPrefix(wanted, prefix)
	return member != wanted && !strings.Contains(member, ".")
}

func dedupe(imports []*java.Import) []*java.Import {
	seen := make(map[string]bool, len(imports))
	out := imports[:0]
	for _, imp := range imports {
		key := imp.Path
		if imp.Static {
			key = "static " + key
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, imp)
	}
	return out
}
