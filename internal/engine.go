package internal

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/jfix-dev/jfix/internal/java"
	"github.com/jfix-dev/jfix/internal/parser"
	"github.com/jfix-dev/jfix/internal/rules"
	tt "github.com/jfix-dev/jfix/internal/types"
)

// Engine manages the rewrite process for one rule configuration. It holds no
// per-file state: every file is parsed, rewritten, and printed independently,
// so callers may run files concurrently against a single engine.
type Engine struct {
	ignoredRules map[string]bool
	rules        map[string]RewriteRule

	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching atomic.Bool
	onResult   func(Result)
}

type ruleConstructor func() RewriteRule

type ruleMap map[string]ruleConstructor

var allRuleConstructors = ruleMap{
	rules.RuleIncludeAssertions: func() RewriteRule { return rules.NewIncludeAssertionsRule() },
}

// NewEngine creates a rewrite engine with the given rule configuration.
// An invalid rule configuration fails construction; a built engine is always
// safe to apply.
func NewEngine(cfgRules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{rules: make(map[string]RewriteRule)}
	engine.registerDefaultRules()

	for key, cfg := range cfgRules {
		rule := engine.findRule(key)
		if rule == nil {
			cstr := allRuleConstructors[key]
			if cstr == nil {
				// unknown rule, continue to the next one
				continue
			}
			rule = cstr()
			engine.rules[key] = rule
		}
		if cfg.Severity == tt.SeverityOff {
			engine.IgnoreRule(key)
		}
		rule.SetSeverity(cfg.Severity)
		if err := rule.Configure(cfg); err != nil {
			return nil, err
		}
	}

	for _, rule := range engine.rules {
		if err := rule.Validate(); err != nil {
			return nil, err
		}
	}
	return engine, nil
}

func (e *Engine) registerDefaultRules() {
	for key, cstr := range allRuleConstructors {
		rule := cstr()
		if rule.Severity() != tt.SeverityOff {
			e.rules[key] = rule
		}
	}
}

func (e *Engine) findRule(name string) RewriteRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// Result is the outcome of rewriting one file.
type Result struct {
	Filename    string
	Source      []byte
	Diagnostics []tt.Diagnostic
	Changed     bool
}

// Run rewrites the given file and returns the result. The file on disk is
// not modified; writing is the caller's concern.
func (e *Engine) Run(filename string) (Result, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read file: %w", err)
	}
	return e.run(filename, source)
}

// RunSource rewrites the given source and returns the result.
func (e *Engine) RunSource(source []byte) (Result, error) {
	return e.run("", source)
}

func (e *Engine) run(filename string, source []byte) (Result, error) {
	unit, err := parser.ParseUnit(string(source))
	if err != nil {
		return Result{}, fmt.Errorf("error parsing file: %w", err)
	}

	out, diags, err := e.ApplyRules(filename, unit)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Filename:    filename,
		Source:      source,
		Diagnostics: diags,
	}
	if out != unit {
		result.Changed = true
		result.Source = []byte(java.PrintUnit(out))
	}
	return result, nil
}

// ApplyRules applies every active rule to the tree in sequence and returns
// the rewritten tree plus all diagnostics. The transform is pure; on a rule
// failure the original tree is returned untouched (atomic per file).
func (e *Engine) ApplyRules(filename string, unit *java.CompilationUnit) (*java.CompilationUnit, []tt.Diagnostic, error) {
	var allDiags []tt.Diagnostic
	out := unit
	for _, rule := range e.rules {
		if e.ignoredRules[rule.Name()] {
			continue
		}
		next, diags, err := rule.Apply(filename, out)
		if err != nil {
			return unit, nil, fmt.Errorf("rule %s: %w", rule.Name(), err)
		}
		allDiags = append(allDiags, diags...)
		out = next
	}
	return out, allDiags, nil
}
