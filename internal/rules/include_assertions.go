// Package rules holds the rewrite rules, one file per rule.
package rules

import (
	"errors"

	"github.com/jfix-dev/jfix/internal/imports"
	"github.com/jfix-dev/jfix/internal/java"
	"github.com/jfix-dev/jfix/internal/match"
	"github.com/jfix-dev/jfix/internal/template"
	tt "github.com/jfix-dev/jfix/internal/types"
)

const (
	// RuleIncludeAssertions is the registry name of the rule.
	RuleIncludeAssertions = "include-assertions"

	testAnnotationFQN = "org.junit.jupiter.api.Test"
)

// DefaultAssertions is the identifier list used when the configuration does
// not override it: the common assertion entry points of the JVM test
// ecosystem.
func DefaultAssertions() []string {
	return []string{
		"org.assertj.core.api",
		"org.junit.jupiter.api.Assertions",
		"org.hamcrest.MatcherAssert",
		"org.mockito.Mockito.verify",
	}
}

// rewriteState classifies one method declaration.
type rewriteState int

const (
	stateSkip rewriteState = iota
	stateSatisfied
	stateNeedsRewrite
)

// IncludeAssertionsRule wraps the body of assertion-free test methods in
// assertDoesNotThrow(() -> { ... }); and adds the matching static import.
// Methods that are not tests, have no body, or already assert are returned
// unchanged. The wrapper call itself satisfies the assertion predicate, so
// applying the rule twice is a no-op.
type IncludeAssertionsRule struct {
	severity    tt.Severity
	assertions  []string
	testMatcher match.AnnotationMatcher
	synth       *template.Synthesizer
}

func NewIncludeAssertionsRule() *IncludeAssertionsRule {
	return &IncludeAssertionsRule{
		severity:    tt.SeverityWarning,
		assertions:  DefaultAssertions(),
		testMatcher: match.NewAnnotationMatcher(testAnnotationFQN),
		synth:       template.NewSynthesizer(template.NewContext()),
	}
}

func (r *IncludeAssertionsRule) Name() string {
	return RuleIncludeAssertions
}

func (r *IncludeAssertionsRule) Severity() tt.Severity {
	return r.severity
}

func (r *IncludeAssertionsRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}

func (r *IncludeAssertionsRule) Configure(cfg tt.ConfigRule) error {
	if cfg.Assertions != nil {
		r.assertions = cfg.Assertions
	}
	return r.Validate()
}

// Validate enforces the configuration contract: the assertion list must be
// non-empty and must contain the canonical entry point, because the rewrite
// marks methods as satisfied through it.
func (r *IncludeAssertionsRule) Validate() error {
	if len(r.assertions) == 0 {
		return &tt.ConfigurationError{Rule: r.Name(), Reason: "assertions must not be empty"}
	}
	for _, id := range r.assertions {
		if id == template.AssertionsFQN {
			return nil
		}
	}
	return &tt.ConfigurationError{
		Rule:   r.Name(),
		Reason: "assertions must contain " + template.AssertionsFQN,
	}
}

// Apply is a pure transform: it never mutates the input unit and performs no
// I/O. A method whose synthesis fails is reported and left unchanged; the
// rest of the file still rewrites.
func (r *IncludeAssertionsRule) Apply(filename string, unit *java.CompilationUnit) (*java.CompilationUnit, []tt.Diagnostic, error) {
	var diags []tt.Diagnostic
	rewritten := false

	out, err := java.RewriteMethods(unit, func(cls *java.Class, m *java.Method) (*java.Method, error) {
		if r.classify(m) != stateNeedsRewrite {
			return m, nil
		}
		body, err := r.synth.WrapDoesNotThrow(m.Body.Stmts)
		if err != nil {
			var synthErr *template.SynthesisError
			if !errors.As(err, &synthErr) {
				return nil, err
			}
			diags = append(diags, tt.Diagnostic{
				Rule:     r.Name(),
				Severity: tt.SeverityError,
				Filename: filename,
				Class:    cls.Name,
				Method:   m.Name,
				Line:     m.Line,
				Message:  "test has no assertions and could not be rewritten",
				Note:     synthErr.Reason,
			})
			return m, nil
		}
		rewritten = true
		diags = append(diags, tt.Diagnostic{
			Rule:     r.Name(),
			Severity: r.severity,
			Filename: filename,
			Class:    cls.Name,
			Method:   m.Name,
			Line:     m.Line,
			Message:  "test has no assertions; body wrapped in " + template.AssertDoesNotThrowName,
		})
		return m.WithBody(body), nil
	})
	if err != nil {
		// atomic per file: on an unexpected error the caller keeps the
		// original tree
		return unit, nil, err
	}
	if rewritten {
		out = imports.Ensure(out, nil, []string{template.AssertDoesNotThrowFQN})
	}
	return out, diags, nil
}

func (r *IncludeAssertionsRule) classify(m *java.Method) rewriteState {
	if m.Body == nil || !r.testMatcher.HasAnnotation(m) {
		return stateSkip
	}
	if match.HasAssertion(m.Body.Stmts, r.assertions) {
		return stateSatisfied
	}
	return stateNeedsRewrite
}
