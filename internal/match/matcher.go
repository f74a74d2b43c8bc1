// Package match holds the pure predicates rules use to classify tree nodes.
// Every predicate is fail-closed: missing type information never produces a
// positive classification.
package match

import (
	"strings"

	"github.com/jfix-dev/jfix/internal/java"
)

// AnnotationMatcher matches annotations against one fully qualified
// annotation type, e.g. "org.junit.jupiter.api.Test".
type AnnotationMatcher struct {
	fqn string
}

func NewAnnotationMatcher(fqn string) AnnotationMatcher {
	return AnnotationMatcher{fqn: fqn}
}

// Matches reports whether the annotation's resolved type is exactly the
// configured fully qualified name. Prefixes never match, and an annotation
// with no resolved type never matches.
func (m AnnotationMatcher) Matches(ann *java.Annotation) bool {
	return ann.Type != "" && ann.Type == m.fqn
}

// HasAnnotation reports whether any leading annotation of the method matches.
func (m AnnotationMatcher) HasAnnotation(method *java.Method) bool {
	for _, ann := range method.Annotations {
		if m.Matches(ann) {
			return true
		}
	}
	return false
}

// HasAssertion reports whether any top-level statement is an assertion call
// per the configured identifiers. Nested statements are deliberately not
// inspected; an assertion inside a lambda or loop is not detected.
func HasAssertion(stmts []java.Stmt, assertions []string) bool {
	for _, st := range stmts {
		es, ok := st.(*java.ExprStmt)
		if !ok {
			continue
		}
		inv, ok := es.X.(*java.Invocation)
		if !ok {
			continue
		}
		if IsAssertion(inv, assertions) {
			return true
		}
	}
	return false
}

// IsAssertion reports whether the invocation is an assertion: its declaring
// type starts with a configured identifier, or its receiver is itself an
// invocation whose declaring type starts with a configured identifier or
// whose declaring-type.method pair equals one exactly. The receiver path is
// what catches fluent chains like assertThat(x).isNotNull(), where the outer
// call's declaring type may be unresolvable but the receiver's is known.
func IsAssertion(inv *java.Invocation, assertions []string) bool {
	if inv.Type != nil {
		for _, id := range assertions {
			if strings.HasPrefix(inv.Type.FullyQualified, id) {
				return true
			}
		}
	}
	sel, ok := inv.Select.(*java.Invocation)
	if !ok || sel.Type == nil {
		return false
	}
	qualified := sel.Type.FullyQualified + "." + sel.Name
	for _, id := range assertions {
		if qualified == id || strings.HasPrefix(sel.Type.FullyQualified, id) {
			return true
		}
	}
	return false
}
