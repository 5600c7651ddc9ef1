package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

// add records a new validation issue.
func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

// result returns a ValidationError when issues are present.
func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config for correctness.
func Validate(cfg *Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if cfg.Quiz.MaxAttemptsPerQuestion < 1 {
		collector.add("quiz.max_attempts_per_question", "must be >= 1")
	}
	if cfg.Quiz.PersistState && strings.TrimSpace(cfg.Quiz.StateDir) == "" {
		collector.add("quiz.state_dir", "is required when persist_state is enabled")
	}
	if !cfg.Quiz.EnableSingle && !cfg.Quiz.EnableMultiple && !cfg.Quiz.EnableTrueFalse {
		collector.add("quiz", "at least one question kind must be enabled")
	}

	switch cfg.Validation.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		collector.add("validation.color", fmt.Sprintf("invalid value %q (expected auto|always|never)", cfg.Validation.Color))
	}

	for i, root := range cfg.Project.ScriptRoots {
		if filepath.IsAbs(root) {
			collector.add(fmt.Sprintf("project.script_roots[%d]", i), "must be relative to the project root")
		} else if root == ".." || strings.HasPrefix(filepath.ToSlash(root), "../") {
			collector.add(fmt.Sprintf("project.script_roots[%d]", i), "must stay inside the project root")
		}
	}

	return collector.result()
}
