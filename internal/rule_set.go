package internal

import (
	"github.com/jfix-dev/jfix/internal/java"
	tt "github.com/jfix-dev/jfix/internal/types"
)

// RewriteRule defines the interface for all rewrite rules.
type RewriteRule interface {
	// Name returns the registry name of the rule.
	Name() string

	// Configure applies per-rule options from the configuration file and
	// validates the result.
	Configure(cfg tt.ConfigRule) error

	// Validate checks the rule's configuration contract. It is called before
	// any tree is handed to Apply.
	Validate() error

	// Apply rewrites the unit and reports what it did. It must be pure: the
	// input unit is never mutated, and an unchanged unit comes back as the
	// same pointer.
	Apply(filename string, unit *java.CompilationUnit) (*java.CompilationUnit, []tt.Diagnostic, error)

	Severity() tt.Severity
	SetSeverity(severity tt.Severity)
}
