// Package template synthesizes replacement subtrees from textual code
// fragments. Synthesis parses the fragment under a stub-seeded context, so it
// depends only on the shape of the target API, never on the real library.
package template

import (
	"fmt"
	"strings"

	"github.com/jfix-dev/jfix/internal/java"
	"github.com/jfix-dev/jfix/internal/parser"
)

// Template describes a code fragment together with the imports splicing it
// into a file will require. Templates are stateless descriptors.
type Template struct {
	Code          string
	Imports       []string
	StaticImports []string
}

// SynthesisError means a fragment could not be turned into a legal subtree.
// It aborts one method's rewrite, never the whole file.
type SynthesisError struct {
	Reason string
}

func (e *SynthesisError) Error() string {
	return "synthesis failed: " + e.Reason
}

// Context is the parsing context used for synthesis. The stub table is
// immutable after construction, so one context can be shared by any number
// of file workers; construct it once, not per call.
type Context struct {
	stubs *stubResolver
}

func NewContext() *Context {
	return &Context{stubs: newStubResolver()}
}

// Synthesizer builds replacement method bodies.
type Synthesizer struct {
	ctx *Context
}

func NewSynthesizer(ctx *Context) *Synthesizer {
	return &Synthesizer{ctx: ctx}
}

// WrapDoesNotThrow returns a new body holding the given statements inside
// assertDoesNotThrow(() -> { ... });. The input statements are printed,
// wrapped, and re-parsed under the stub context; identical input always
// yields a structurally identical block.
//
// Statements with a top-level return, break, or continue are rejected:
// wrapping them would silently retarget the jump to the lambda.
func (s *Synthesizer) WrapDoesNotThrow(stmts []java.Stmt) (*java.Block, error) {
	for _, st := range stmts {
		if err := checkWrappable(st); err != nil {
			return nil, err
		}
	}

	tmpl := s.doesNotThrowTemplate(stmts)
	parsed, err := parser.ParseStatements(tmpl.Code, s.ctx.stubs)
	if err != nil {
		return nil, &SynthesisError{Reason: err.Error()}
	}
	if err := checkWrapperShape(parsed); err != nil {
		return nil, err
	}
	return &java.Block{Stmts: parsed}, nil
}

func (s *Synthesizer) doesNotThrowTemplate(stmts []java.Stmt) Template {
	var sb strings.Builder
	sb.WriteString(AssertDoesNotThrowName)
	sb.WriteString("(() -> {\n")
	for _, st := range stmts {
		sb.WriteString(java.PrintStmt(st))
		sb.WriteByte('\n')
	}
	sb.WriteString("});")
	return Template{
		Code:          sb.String(),
		Imports:       []string{ThrowingSupplierFQN},
		StaticImports: []string{AssertDoesNotThrowFQN},
	}
}

// checkWrappable rejects statements whose control flow would change inside
// the wrapper lambda. A return anywhere outside a nested lambda body exits
// the method today but would exit the wrapper after splicing; break and
// continue are only a problem when the statement itself is the bare jump
// (inside a wrapped loop they keep their target).
func checkWrappable(st java.Stmt) error {
	raw, ok := st.(*java.RawStmt)
	if !ok {
		// modeled statements are plain invocations, which cannot jump
		return nil
	}
	toks, err := parser.NewScanner(raw.Text).ScanTokens()
	if err != nil {
		return &SynthesisError{Reason: err.Error()}
	}
	var lambdaBrace []bool // true for braces opening a lambda body
	inLambda := 0
	prev := parser.EOF
	for _, t := range toks {
		switch t.Type {
		case parser.LBRACE:
			isLambda := prev == parser.ARROW
			lambdaBrace = append(lambdaBrace, isLambda)
			if isLambda {
				inLambda++
			}
		case parser.RBRACE:
			if n := len(lambdaBrace); n > 0 {
				if lambdaBrace[n-1] {
					inLambda--
				}
				lambdaBrace = lambdaBrace[:n-1]
			}
		case parser.RETURN:
			if inLambda == 0 {
				return &SynthesisError{
					Reason: fmt.Sprintf("statement at line %d contains a method-level return, which would exit the wrapper lambda instead", raw.Line),
				}
			}
		case parser.BREAK, parser.CONTINUE:
			if len(lambdaBrace) == 0 {
				return &SynthesisError{
					Reason: fmt.Sprintf("statement at line %d is a bare %s, which cannot appear inside the wrapper lambda", raw.Line, t.Lexeme),
				}
			}
		}
		prev = t.Type
	}
	return nil
}

// checkWrapperShape verifies the parsed fragment is exactly one call to the
// wrapper entry point, resolved against the stub context.
func checkWrapperShape(stmts []java.Stmt) error {
	if len(stmts) != 1 {
		return &SynthesisError{Reason: fmt.Sprintf("expected a single wrapper statement, got %d", len(stmts))}
	}
	es, ok := stmts[0].(*java.ExprStmt)
	if !ok {
		return &SynthesisError{Reason: "wrapper did not parse as an expression statement"}
	}
	inv, ok := es.X.(*java.Invocation)
	if !ok || inv.Name != AssertDoesNotThrowName {
		return &SynthesisError{Reason: "wrapper did not parse as an " + AssertDoesNotThrowName + " call"}
	}
	if inv.Type == nil || inv.Type.FullyQualified != AssertionsFQN {
		return &SynthesisError{Reason: "wrapper call did not resolve against the stub context"}
	}
	return nil
}
