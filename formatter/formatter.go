// Package formatter renders diagnostics for humans.
package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/jfix-dev/jfix/internal"
	tt "github.com/jfix-dev/jfix/internal/types"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	infoStyle    = color.New(color.FgHiBlue, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	noteStyle    = color.New(color.FgGreen)
)

func severityStyle(severity tt.Severity) *color.Color {
	switch severity {
	case tt.SeverityError:
		return errorStyle
	case tt.SeverityWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// FormatDiagnostics renders all diagnostics grouped by file, sorted by file
// name and line.
func FormatDiagnostics(diags []tt.Diagnostic) string {
	byFile := make(map[string][]tt.Diagnostic)
	for _, d := range diags {
		byFile[d.Filename] = append(byFile[d.Filename], d)
	}
	files := make([]string, 0, len(byFile))
	for filename := range byFile {
		files = append(files, filename)
	}
	sort.Strings(files)

	var sb strings.Builder
	for _, filename := range files {
		fileDiags := byFile[filename]
		sort.Slice(fileDiags, func(i, j int) bool {
			return fileDiags[i].Line < fileDiags[j].Line
		})
		for _, d := range fileDiags {
			sb.WriteString(formatDiagnostic(d))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func formatDiagnostic(d tt.Diagnostic) string {
	var sb strings.Builder
	sb.WriteString(severityStyle(d.Severity).Sprint(d.Severity.String()))
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	sb.WriteByte('\n')

	location := d.Filename
	if location == "" {
		location = "<source>"
	}
	member := d.Method
	if d.Class != "" {
		member = d.Class + "." + d.Method
	}
	sb.WriteString(" --> ")
	sb.WriteString(fileStyle.Sprintf("%s:%d", location, d.Line))
	if member != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", member))
	}
	sb.WriteByte('\n')

	sb.WriteString(" rule: ")
	sb.WriteString(ruleStyle.Sprint(d.Rule))
	sb.WriteByte('\n')

	if d.Note != "" {
		sb.WriteString(noteStyle.Sprint(" note: " + d.Note))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatSummary renders a one-line outcome for a batch of results.
func FormatSummary(results []internal.Result) string {
	changed := 0
	failed := 0
	for _, r := range results {
		if r.Changed {
			changed++
		}
		for _, d := range r.Diagnostics {
			if d.Severity == tt.SeverityError {
				failed++
				break
			}
		}
	}
	summary := fmt.Sprintf("%d file(s) processed, %d rewritten", len(results), changed)
	if failed > 0 {
		summary += errorStyle.Sprintf(", %d with errors", failed)
	}
	return summary
}
