package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfix-dev/jfix/internal/java"
)

func TestParseUnit(t *testing.T) {
	t.Parallel()
	src := `package com.example;

import org.junit.jupiter.api.Test;
import static org.junit.jupiter.api.Assertions.assertEquals;

public class FooTest {
    private int count = 0;

    @Test
    void addsUp() throws Exception {
        int x = compute();
        assertEquals(4, x);
    }
}
`
	unit, err := ParseUnit(src)
	require.NoError(t, err)

	assert.Equal(t, "com.example", unit.Package)
	require.Len(t, unit.Imports, 2)
	assert.Equal(t, "org.junit.jupiter.api.Test", unit.Imports[0].Path)
	assert.False(t, unit.Imports[0].Static)
	assert.Equal(t, "org.junit.jupiter.api.Assertions.assertEquals", unit.Imports[1].Path)
	assert.True(t, unit.Imports[1].Static)

	require.Len(t, unit.Classes, 1)
	cls := unit.Classes[0]
	assert.Equal(t, "FooTest", cls.Name)
	assert.Equal(t, []string{"public"}, cls.Modifiers)
	require.Len(t, cls.Members, 2)

	field, ok := cls.Members[0].(*java.RawMember)
	require.True(t, ok)
	assert.Equal(t, "private int count = 0;", field.Text)

	m, ok := cls.Members[1].(*java.Method)
	require.True(t, ok)
	assert.Equal(t, "addsUp", m.Name)
	assert.Equal(t, "void", m.ReturnType)
	assert.Equal(t, "Exception", m.Throws)
	require.Len(t, m.Annotations, 1)
	assert.Equal(t, "Test", m.Annotations[0].Name)
	assert.Equal(t, "org.junit.jupiter.api.Test", m.Annotations[0].Type)

	require.NotNil(t, m.Body)
	require.Len(t, m.Body.Stmts, 2)

	decl, ok := m.Body.Stmts[0].(*java.RawStmt)
	require.True(t, ok)
	assert.Equal(t, "int x = compute();", decl.Text)

	call, ok := m.Body.Stmts[1].(*java.ExprStmt)
	require.True(t, ok)
	inv, ok := call.X.(*java.Invocation)
	require.True(t, ok)
	assert.Equal(t, "assertEquals", inv.Name)
	require.NotNil(t, inv.Type)
	assert.Equal(t, "org.junit.jupiter.api.Assertions", inv.Type.FullyQualified)
	require.Len(t, inv.Args, 2)
	assert.Equal(t, &java.Literal{Text: "4"}, inv.Args[0])
	assert.Equal(t, &java.Identifier{Name: "x"}, inv.Args[1])
}

func TestParseUnitClassAnnotations(t *testing.T) {
	t.Parallel()
	src := `package com.example;

import org.junit.jupiter.api.extension.ExtendWith;

@ExtendWith(MockitoExtension.class)
class FooTest {
}
`
	unit, err := ParseUnit(src)
	require.NoError(t, err)
	require.Len(t, unit.Classes, 1)
	cls := unit.Classes[0]
	require.Len(t, cls.Annotations, 1)
	assert.Equal(t, "ExtendWith(MockitoExtension.class)", cls.Annotations[0].Name)
	assert.Equal(t, "org.junit.jupiter.api.extension.ExtendWith", cls.Annotations[0].Type)
}

func TestParseUnitResolution(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		src     string
		wantFQN string // resolved declaring type of the first statement, "" for unresolved
	}{
		{
			name: "static import resolves unqualified call",
			src: `import static org.junit.jupiter.api.Assertions.assertTrue;
class T { void m() { assertTrue(x); } }`,
			wantFQN: "org.junit.jupiter.api.Assertions",
		},
		{
			name: "static on-demand import resolves unqualified call",
			src: `import static org.junit.jupiter.api.Assertions.*;
class T { void m() { assertTrue(x); } }`,
			wantFQN: "org.junit.jupiter.api.Assertions",
		},
		{
			name: "type import resolves qualified call",
			src: `import org.junit.jupiter.api.Assertions;
class T { void m() { Assertions.assertTrue(x); } }`,
			wantFQN: "org.junit.jupiter.api.Assertions",
		},
		{
			name:    "no import leaves the call unresolved",
			src:     `class T { void m() { doWork(); } }`,
			wantFQN: "",
		},
		{
			name: "ambiguous on-demand static imports resolve nothing",
			src: `import static org.junit.jupiter.api.Assertions.*;
import static org.hamcrest.MatcherAssert.*;
class T { void m() { assertTrue(x); } }`,
			wantFQN: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			unit, err := ParseUnit(tt.src)
			require.NoError(t, err)
			inv := firstInvocation(t, unit)
			if tt.wantFQN == "" {
				assert.Nil(t, inv.Type)
				return
			}
			require.NotNil(t, inv.Type)
			assert.Equal(t, tt.wantFQN, inv.Type.FullyQualified)
		})
	}
}

func TestParseUnitChainedCall(t *testing.T) {
	t.Parallel()
	src := `import static org.assertj.core.api.Assertions.assertThat;
class T { void m() { assertThat(result).isNotNull(); } }`
	unit, err := ParseUnit(src)
	require.NoError(t, err)

	outer := firstInvocation(t, unit)
	assert.Equal(t, "isNotNull", outer.Name)
	assert.Nil(t, outer.Type) // the receiver's return type is unknown

	inner, ok := outer.Select.(*java.Invocation)
	require.True(t, ok)
	assert.Equal(t, "assertThat", inner.Name)
	require.NotNil(t, inner.Type)
	assert.Equal(t, "org.assertj.core.api.Assertions", inner.Type.FullyQualified)
}

func TestParseUnitFieldAccessReceiver(t *testing.T) {
	t.Parallel()
	src := `class T { void m() { System.out.println("x"); } }`
	unit, err := ParseUnit(src)
	require.NoError(t, err)

	inv := firstInvocation(t, unit)
	assert.Equal(t, "println", inv.Name)
	assert.Nil(t, inv.Type)
	fa, ok := inv.Select.(*java.FieldAccess)
	require.True(t, ok)
	assert.Equal(t, "out", fa.Name)
}

func TestParseUnitRawStatements(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
	}{
		{name: "if else", body: `if (x > 0) { foo(); } else { bar(); }`},
		{name: "for with break", body: `for (int i = 0; i < 3; i++) { break; }`},
		{name: "do while", body: `do { x++; } while (x < 10);`},
		{name: "try catch finally", body: `try { foo(); } catch (Exception e) { bar(); } finally { baz(); }`},
		{name: "assignment", body: `x = compute();`},
		{name: "local declaration", body: `String s = name();`},
		{name: "array initializer", body: `int[] a = {1, 2};`},
		{name: "return value", body: `return compute();`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			unit, err := ParseUnit("class T { void m() { " + tt.body + " } }")
			require.NoError(t, err)
			stmts := methodBody(t, unit)
			require.Len(t, stmts, 1)
			raw, ok := stmts[0].(*java.RawStmt)
			require.True(t, ok)
			assert.Equal(t, tt.body, raw.Text)
		})
	}
}

func TestParseUnitMethodShapes(t *testing.T) {
	t.Parallel()
	src := `class Box {
    Box(int size) {
        this.size = size;
    }

    abstract void run();

    static <T> T pick(T a, T b) {
        return a;
    }
}`
	unit, err := ParseUnit(src)
	require.NoError(t, err)
	require.Len(t, unit.Classes, 1)
	members := unit.Classes[0].Members
	require.Len(t, members, 3)

	ctor, ok := members[0].(*java.Method)
	require.True(t, ok)
	assert.Equal(t, "Box", ctor.Name)
	assert.Empty(t, ctor.ReturnType)
	assert.Equal(t, "int size", ctor.Params)

	abstract, ok := members[1].(*java.Method)
	require.True(t, ok)
	assert.Equal(t, "run", abstract.Name)
	assert.Nil(t, abstract.Body)

	generic, ok := members[2].(*java.Method)
	require.True(t, ok)
	assert.Equal(t, "pick", generic.Name)
	assert.Equal(t, "<T> T", generic.ReturnType)
	assert.Equal(t, []string{"static"}, generic.Modifiers)
}

func TestParseUnitPreservesComments(t *testing.T) {
	t.Parallel()
	src := `// Copyright 2024 Acme
// SPDX-License-Identifier: Apache-2.0

package com.example;

import org.junit.jupiter.api.Test;

/**
 * Exercises the widget.
 */
class WidgetTest {
    // counts invocations
    private int count = 0;

    /** Runs the widget once. */
    @Test
    void runs() {
        // arrange
        doWork();
    }
}
`
	unit, err := ParseUnit(src)
	require.NoError(t, err)

	assert.Equal(t, "// Copyright 2024 Acme\n// SPDX-License-Identifier: Apache-2.0", unit.Header)

	cls := unit.Classes[0]
	assert.Equal(t, "/**\n* Exercises the widget.\n*/", cls.Doc)

	field := cls.Members[0].(*java.RawMember)
	assert.Equal(t, "// counts invocations", field.Doc)

	m := cls.Members[1].(*java.Method)
	assert.Equal(t, "/** Runs the widget once. */", m.Doc)

	stmt := m.Body.Stmts[0].(*java.ExprStmt)
	assert.Equal(t, "// arrange", stmt.Leading)

	printed := java.PrintUnit(unit)
	assert.Contains(t, printed, "// Copyright 2024 Acme")
	assert.Contains(t, printed, "* Exercises the widget.")
	assert.Contains(t, printed, "    // counts invocations")
	assert.Contains(t, printed, "    /** Runs the widget once. */")
	assert.Contains(t, printed, "        // arrange")
}

func TestParseUnitLambdaArgument(t *testing.T) {
	t.Parallel()
	src := `class T { void m() { items.forEach(item -> use(item)); } }`
	unit, err := ParseUnit(src)
	require.NoError(t, err)

	inv := firstInvocation(t, unit)
	assert.Equal(t, "forEach", inv.Name)
	require.Len(t, inv.Args, 1)
	lambda, ok := inv.Args[0].(*java.Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"item"}, lambda.Params)
	require.NotNil(t, lambda.Expr)
}

func TestParseUnitErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
	}{
		{name: "not a class", src: `void m() {}`},
		{name: "unterminated class body", src: `class T {`},
		{name: "missing package semicolon", src: `package com.example class T {}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseUnit(tt.src)
			require.Error(t, err)
			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseStatements(t *testing.T) {
	t.Parallel()
	res := NewImportResolver([]*java.Import{
		{Path: "org.junit.jupiter.api.Assertions.assertDoesNotThrow", Static: true},
	})
	stmts, err := ParseStatements("assertDoesNotThrow(() -> {\nfoo();\n});", res)
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	es, ok := stmts[0].(*java.ExprStmt)
	require.True(t, ok)
	inv, ok := es.X.(*java.Invocation)
	require.True(t, ok)
	assert.Equal(t, "assertDoesNotThrow", inv.Name)
	require.NotNil(t, inv.Type)
	assert.Equal(t, "org.junit.jupiter.api.Assertions", inv.Type.FullyQualified)
}

func firstInvocation(t *testing.T, unit *java.CompilationUnit) *java.Invocation {
	t.Helper()
	stmts := methodBody(t, unit)
	require.NotEmpty(t, stmts)
	es, ok := stmts[0].(*java.ExprStmt)
	require.True(t, ok)
	inv, ok := es.X.(*java.Invocation)
	require.True(t, ok)
	return inv
}

func methodBody(t *testing.T, unit *java.CompilationUnit) []java.Stmt {
	t.Helper()
	require.NotEmpty(t, unit.Classes)
	for _, member := range unit.Classes[0].Members {
		if m, ok := member.(*java.Method); ok && m.Body != nil {
			return m.Body.Stmts
		}
	}
	t.Fatal("no method with a body")
	return nil
}
