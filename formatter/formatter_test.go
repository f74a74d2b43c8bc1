package formatter

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/jfix-dev/jfix/internal"
	tt "github.com/jfix-dev/jfix/internal/types"
)

func init() {
	color.NoColor = true
}

func TestFormatDiagnostics(t *testing.T) {
	t.Parallel()
	diags := []tt.Diagnostic{
		{
			Rule:     "include-assertions",
			Severity: tt.SeverityWarning,
			Filename: "src/test/java/WidgetTest.java",
			Class:    "WidgetTest",
			Method:   "runs",
			Line:     12,
			Message:  "test has no assertions; body wrapped in assertDoesNotThrow",
		},
		{
			Rule:     "include-assertions",
			Severity: tt.SeverityError,
			Filename: "src/test/java/WidgetTest.java",
			Class:    "WidgetTest",
			Method:   "bails",
			Line:     5,
			Message:  "test has no assertions and could not be rewritten",
			Note:     "statement at line 6 contains a method-level return, which would exit the wrapper lambda instead",
		},
	}

	out := FormatDiagnostics(diags)
	assert.Contains(t, out, "warning: test has no assertions; body wrapped in assertDoesNotThrow")
	assert.Contains(t, out, "error: test has no assertions and could not be rewritten")
	assert.Contains(t, out, " --> src/test/java/WidgetTest.java:12 (WidgetTest.runs)")
	assert.Contains(t, out, " rule: include-assertions")
	assert.Contains(t, out, " note: statement at line 6")

	// within a file, diagnostics come out in line order
	assert.Less(t,
		strings.Index(out, "WidgetTest.java:5"),
		strings.Index(out, "WidgetTest.java:12"),
	)
}

func TestFormatDiagnosticsWithoutFilename(t *testing.T) {
	t.Parallel()
	out := FormatDiagnostics([]tt.Diagnostic{{
		Rule:     "include-assertions",
		Severity: tt.SeverityInfo,
		Method:   "runs",
		Line:     3,
		Message:  "m",
	}})
	assert.Contains(t, out, "<source>:3 (runs)")
	assert.Contains(t, out, "info: m")
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()
	results := []internal.Result{
		{Filename: "a.java", Changed: true},
		{Filename: "b.java"},
		{Filename: "c.java", Diagnostics: []tt.Diagnostic{{Severity: tt.SeverityError}}},
	}
	out := FormatSummary(results)
	assert.Contains(t, out, "3 file(s) processed, 1 rewritten")
	assert.Contains(t, out, "1 with errors")

	assert.Equal(t, "0 file(s) processed, 0 rewritten", FormatSummary(nil))
}
