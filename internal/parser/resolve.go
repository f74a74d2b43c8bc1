package parser

import (
	"strings"

	"github.com/jfix-dev/jfix/internal/java"
)

// ImportResolver resolves names from a file's own import declarations.
// Anything the imports cannot answer stays unresolved; downstream matchers
// treat unresolved types as non-matches.
type ImportResolver struct {
	types    map[string]string // simple type name -> fully qualified name
	statics  map[string]string // member name -> declaring type
	wildcard string            // declaring type of a single "import static T.*"
}

func NewImportResolver(imports []*java.Import) *ImportResolver {
	r := &ImportResolver{
		types:   make(map[string]string),
		statics: make(map[string]string),
	}
	wildcards := 0
	for _, imp := range imports {
		last := imp.Path
		if i := strings.LastIndex(imp.Path, "."); i >= 0 {
			last = imp.Path[i+1:]
		}
		if imp.Static {
			declaring := strings.TrimSuffix(imp.Path, "."+last)
			if last == "*" {
				wildcards++
				r.wildcard = declaring
				continue
			}
			r.statics[last] = declaring
			continue
		}
		if last == "*" {
			// on-demand type imports cannot resolve simple names on their own
			continue
		}
		r.types[last] = imp.Path
	}
	if wildcards > 1 {
		// more than one on-demand static import is ambiguous
		r.wildcard = ""
	}
	return r
}

func (r *ImportResolver) ResolveStatic(name string) (string, bool) {
	if declaring, ok := r.statics[name]; ok {
		return declaring, true
	}
	if r.wildcard != "" {
		return r.wildcard, true
	}
	return "", false
}

func (r *ImportResolver) ResolveType(name string) (string, bool) {
	fqn, ok := r.types[name]
	return fqn, ok
}
