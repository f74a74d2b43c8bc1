// Package rewrite is the public entry point: it builds an engine from a
// configuration file and orchestrates rewriting across files and
// directories. The engine itself performs no I/O; this package owns file
// discovery, parallelism, and writing results back.
package rewrite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jfix-dev/jfix/internal"
	"github.com/jfix-dev/jfix/internal/rules"
	tt "github.com/jfix-dev/jfix/internal/types"
)

// Config is the root of the yaml configuration file.
type Config struct {
	Name  string                   `yaml:"name"`
	Rules map[string]tt.ConfigRule `yaml:"rules"`
}

// DefaultConfig returns the configuration written by "jfix init" and used
// when no configuration file exists.
func DefaultConfig() Config {
	return Config{
		Name: "jfix",
		Rules: map[string]tt.ConfigRule{
			rules.RuleIncludeAssertions: {
				Severity:   tt.SeverityWarning,
				Assertions: rules.DefaultAssertions(),
			},
		},
	}
}

// RewriteEngine is the engine surface this package needs.
type RewriteEngine interface {
	Run(filePath string) (internal.Result, error)
	RunSource(source []byte) (internal.Result, error)
	IgnoreRule(rule string)
}

// New builds an engine from the configuration file at the given path. An
// empty path or a missing file falls back to the defaults.
func New(configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}
	return internal.NewEngine(config.Rules)
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	if configurationPath == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(configurationPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("error reading configuration: %w", err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error parsing configuration: %w", err)
	}
	return config, nil
}

// ProcessFiles rewrites every path (file or directory) and returns the
// per-file results.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine RewriteEngine,
	paths []string,
) ([]internal.Result, error) {
	var allResults []internal.Result
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, engine, path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allResults = append(allResults, results...)
	}
	return allResults, nil
}

// ProcessPath rewrites one file, or every .java file under one directory.
// Directory work is spread over a bounded worker pool; each worker owns a
// file end-to-end, so no locking is needed between files.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine RewriteEngine,
	path string,
) ([]internal.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !isJavaFile(path) {
			return nil, nil
		}
		result, err := engine.Run(path)
		if err != nil {
			return nil, err
		}
		return []internal.Result{result}, nil
	}

	var files []string
	err = filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && isJavaFile(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)
	resultChan := make(chan internal.Result, len(files))
	errorChan := make(chan error, len(files))

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			go func(fp string) {
				defer func() { <-sem }()

				result, err := engine.Run(fp)
				if err != nil {
					if logger != nil {
						logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
					}
					errorChan <- fmt.Errorf("%s: %w", fp, err)
				} else {
					resultChan <- result
				}
				_ = bar.Add(1)
			}(filePath)
		}
	}

	var results []internal.Result
	var firstErr error
	for range files {
		select {
		case result := <-resultChan:
			results = append(results, result)
		case err := <-errorChan:
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	fmt.Println()
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// WriteResults writes every changed result back to its file. With dryRun set
// nothing is written.
func WriteResults(results []internal.Result, dryRun bool) (int, error) {
	written := 0
	for _, result := range results {
		if !result.Changed || result.Filename == "" {
			continue
		}
		if !dryRun {
			if err := os.WriteFile(result.Filename, result.Source, 0o644); err != nil {
				return written, fmt.Errorf("failed to write %s: %w", result.Filename, err)
			}
		}
		written++
	}
	return written, nil
}

func isJavaFile(path string) bool {
	return strings.HasSuffix(path, ".java")
}
