package types

import "fmt"

// ConfigurationError means a rule's configuration is unusable. It is raised
// before any tree is touched and aborts the whole run for that rule.
type ConfigurationError struct {
	Rule   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for rule %q: %s", e.Rule, e.Reason)
}
