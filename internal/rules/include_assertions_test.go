package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfix-dev/jfix/internal/java"
	"github.com/jfix-dev/jfix/internal/parser"
	tt "github.com/jfix-dev/jfix/internal/types"
)

func mustParse(t *testing.T, src string) *java.CompilationUnit {
	t.Helper()
	unit, err := parser.ParseUnit(src)
	require.NoError(t, err)
	return unit
}

func TestApplyWrapsAssertionFreeTest(t *testing.T) {
	t.Parallel()
	src := `package com.example;

import org.junit.jupiter.api.Test;

public class WidgetTest {
    @Test
    void runs() {
        doWork();
    }
}
`
	want := `package com.example;

import org.junit.jupiter.api.Test;
import static org.junit.jupiter.api.Assertions.assertDoesNotThrow;

public class WidgetTest {
    @Test
    void runs() {
        assertDoesNotThrow(() -> {
            doWork();
        });
    }
}
`
	rule := NewIncludeAssertionsRule()
	unit := mustParse(t, src)

	out, diags, err := rule.Apply("WidgetTest.java", unit)
	require.NoError(t, err)
	require.NotSame(t, unit, out)
	assert.Equal(t, want, java.PrintUnit(out))

	require.Len(t, diags, 1)
	assert.Equal(t, RuleIncludeAssertions, diags[0].Rule)
	assert.Equal(t, tt.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "WidgetTest.java", diags[0].Filename)
	assert.Equal(t, "WidgetTest", diags[0].Class)
	assert.Equal(t, "runs", diags[0].Method)
}

func TestApplyLeavesAssertingTestAlone(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "static imported assertion",
			src: `import org.junit.jupiter.api.Test;
import static org.junit.jupiter.api.Assertions.assertTrue;

class T {
    @Test
    void checks() {
        assertTrue(doWork());
    }
}
`,
		},
		{
			name: "qualified assertion",
			src: `import org.junit.jupiter.api.Test;
import org.junit.jupiter.api.Assertions;

class T {
    @Test
    void checks() {
        Assertions.assertEquals(1, compute());
    }
}
`,
		},
		{
			name: "fluent assertion chain",
			src: `import org.junit.jupiter.api.Test;
import static org.assertj.core.api.Assertions.assertThat;

class T {
    @Test
    void checks() {
        assertThat(compute()).isNotNull();
    }
}
`,
		},
		{
			name: "mockito verify chain",
			src: `import org.junit.jupiter.api.Test;
import static org.mockito.Mockito.verify;

class T {
    @Test
    void checks() {
        verify(service).close();
    }
}
`,
		},
	}

	rule := NewIncludeAssertionsRule()
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			unit := mustParse(t, tc.src)
			out, diags, err := rule.Apply("T.java", unit)
			require.NoError(t, err)
			assert.Same(t, unit, out)
			assert.Empty(t, diags)
		})
	}
}

func TestApplySkipsNonTestMethods(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "no test annotation",
			src: `class T {
    void helper() {
        doWork();
    }
}
`,
		},
		{
			name: "unresolved test annotation fails closed",
			src: `class T {
    @Test
    void runs() {
        doWork();
    }
}
`,
		},
		{
			name: "junit4 test annotation",
			src: `import org.junit.Test;

class T {
    @Test
    void runs() {
        doWork();
    }
}
`,
		},
		{
			name: "abstract test method has no body",
			src: `import org.junit.jupiter.api.Test;

abstract class T {
    @Test
    abstract void runs();
}
`,
		},
	}

	rule := NewIncludeAssertionsRule()
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			unit := mustParse(t, tc.src)
			out, diags, err := rule.Apply("T.java", unit)
			require.NoError(t, err)
			assert.Same(t, unit, out)
			assert.Empty(t, diags)
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()
	src := `import org.junit.jupiter.api.Test;

class T {
    @Test
    void runs() {
        doWork();
    }
}
`
	rule := NewIncludeAssertionsRule()

	once, diags, err := rule.Apply("T.java", mustParse(t, src))
	require.NoError(t, err)
	require.Len(t, diags, 1)

	// applying again to the rewritten tree changes nothing
	twice, diags, err := rule.Apply("T.java", once)
	require.NoError(t, err)
	assert.Same(t, once, twice)
	assert.Empty(t, diags)

	// same through a print and re-parse round trip
	reparsed := mustParse(t, java.PrintUnit(once))
	out, diags, err := rule.Apply("T.java", reparsed)
	require.NoError(t, err)
	assert.Same(t, reparsed, out)
	assert.Empty(t, diags)
}

func TestApplyReportsUnwrappableMethod(t *testing.T) {
	t.Parallel()
	src := `import org.junit.jupiter.api.Test;

class T {
    @Test
    void bails() {
        if (skip) { return; }
        doWork();
    }

    @Test
    void runs() {
        doWork();
    }
}
`
	rule := NewIncludeAssertionsRule()
	unit := mustParse(t, src)

	out, diags, err := rule.Apply("T.java", unit)
	require.NoError(t, err)
	require.Len(t, diags, 2)

	// the unwrappable method is reported as an error and left unchanged
	assert.Equal(t, tt.SeverityError, diags[0].Severity)
	assert.Equal(t, "bails", diags[0].Method)
	assert.NotEmpty(t, diags[0].Note)
	printed := java.PrintUnit(out)
	assert.Contains(t, printed, "if (skip) { return; }")

	// the rest of the file still rewrites
	assert.Equal(t, tt.SeverityWarning, diags[1].Severity)
	assert.Equal(t, "runs", diags[1].Method)
	assert.Contains(t, printed, "import static org.junit.jupiter.api.Assertions.assertDoesNotThrow;")
}

func TestApplyKeepsComments(t *testing.T) {
	t.Parallel()
	src := `// Copyright 2024 Acme

import org.junit.jupiter.api.Test;

class T {
    /** Runs the widget once. */
    @Test
    void runs() {
        // arrange
        doWork();
    }
}
`
	rule := NewIncludeAssertionsRule()
	out, _, err := rule.Apply("T.java", mustParse(t, src))
	require.NoError(t, err)

	printed := java.PrintUnit(out)
	assert.Contains(t, printed, "// Copyright 2024 Acme")
	assert.Contains(t, printed, "/** Runs the widget once. */")
	// the leading comment moves into the wrapper lambda with its statement
	assert.Contains(t, printed, "            // arrange\n            doWork();")
}

func TestApplyWrapsEmptyTestBody(t *testing.T) {
	t.Parallel()
	src := `import org.junit.jupiter.api.Test;

class T {
    @Test
    void pending() {
    }
}
`
	rule := NewIncludeAssertionsRule()
	out, diags, err := rule.Apply("T.java", mustParse(t, src))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Contains(t, java.PrintUnit(out), "assertDoesNotThrow(() -> {")
}

func TestApplyTreatsOnDemandAssertionImportAsSatisfied(t *testing.T) {
	t.Parallel()
	// with Assertions.* in scope any unqualified call may be an assertion,
	// so the method is conservatively left alone
	src := `import org.junit.jupiter.api.Test;
import static org.junit.jupiter.api.Assertions.*;

class T {
    @Test
    void runs() {
        doWork();
    }
}
`
	rule := NewIncludeAssertionsRule()
	unit := mustParse(t, src)
	out, diags, err := rule.Apply("T.java", unit)
	require.NoError(t, err)
	assert.Same(t, unit, out)
	assert.Empty(t, diags)
}

func TestApplyRespectsExistingOnDemandImport(t *testing.T) {
	t.Parallel()
	src := `import org.junit.jupiter.api.Test;
import static org.junit.jupiter.api.Assertions.*;

class T {
    @Test
    void runs() {
        int x = compute();
    }
}
`
	rule := NewIncludeAssertionsRule()
	out, diags, err := rule.Apply("T.java", mustParse(t, src))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	// the body is wrapped, but the on-demand import already covers the
	// wrapper and no new import is added
	printed := java.PrintUnit(out)
	assert.Contains(t, printed, "assertDoesNotThrow(() -> {")
	assert.NotContains(t, printed, "Assertions.assertDoesNotThrow;")
}

func TestConfigureAndValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		assertions []string
		wantErr    bool
	}{
		{name: "defaults are valid", assertions: nil, wantErr: false},
		{name: "custom list with the baseline", assertions: []string{"org.junit.jupiter.api.Assertions", "com.acme.Check"}, wantErr: false},
		{name: "empty list", assertions: []string{}, wantErr: true},
		{name: "missing baseline entry point", assertions: []string{"org.assertj.core.api"}, wantErr: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rule := NewIncludeAssertionsRule()
			err := rule.Configure(tt.ConfigRule{Severity: tt.SeverityWarning, Assertions: tc.assertions})
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var cfgErr *tt.ConfigurationError
			assert.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, RuleIncludeAssertions, cfgErr.Rule)
		})
	}
}

func TestApplyUsesConfiguredAssertions(t *testing.T) {
	t.Parallel()
	src := `import org.junit.jupiter.api.Test;
import static com.acme.Check.ensure;

class T {
    @Test
    void runs() {
        ensure(doWork());
    }
}
`
	rule := NewIncludeAssertionsRule()
	require.NoError(t, rule.Configure(tt.ConfigRule{
		Severity:   tt.SeverityWarning,
		Assertions: []string{"org.junit.jupiter.api.Assertions", "com.acme.Check"},
	}))

	unit := mustParse(t, src)
	out, diags, err := rule.Apply("T.java", unit)
	require.NoError(t, err)
	assert.Same(t, unit, out)
	assert.Empty(t, diags)
}
