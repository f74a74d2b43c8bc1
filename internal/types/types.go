package types

import "fmt"

// Severity represents how a rule's findings are reported.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

var severityNames = map[Severity]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
	SeverityOff:     "off",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	for sev, n := range severityNames {
		if n == name {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", name)
}

// ConfigRule carries the per-rule configuration from the yaml file.
type ConfigRule struct {
	Severity   Severity `yaml:"severity"`
	Assertions []string `yaml:"assertions,omitempty"`
}

// Diagnostic represents a single finding produced while rewriting a file:
// either a rewrite that was applied or a method that could not be rewritten.
type Diagnostic struct {
	Rule     string
	Severity Severity
	Filename string
	Class    string
	Method   string
	Line     int
	Message  string
	Note     string
}
