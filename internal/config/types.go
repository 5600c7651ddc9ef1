package config

import "strings"

// Config is the coursecheck configuration loaded from .coursecheck/config.yml.
type Config struct {
	Version    int        `yaml:"version"`
	Quiz       Quiz       `yaml:"quiz"`
	Validation Validation `yaml:"validation"`
	Project    Project    `yaml:"project"`
}

// Quiz controls attempts, shuffling, navigation guarding, and state persistence.
type Quiz struct {
	MaxAttemptsPerQuestion int    `yaml:"max_attempts_per_question" env:"COURSECHECK_MAX_ATTEMPTS"`
	RandomizeAnswersOnOpen bool   `yaml:"randomize_answers_on_open" env:"COURSECHECK_RANDOMIZE_ANSWERS"`
	GuardSlideNavigation   bool   `yaml:"guard_slide_navigation" env:"COURSECHECK_GUARD_NAVIGATION"`
	PersistState           bool   `yaml:"persist_state" env:"COURSECHECK_PERSIST_STATE"`
	StateDir               string `yaml:"state_dir" env:"COURSECHECK_STATE_DIR"`
	DebugLogging           bool   `yaml:"debug_logging" env:"COURSECHECK_QUIZ_DEBUG"`
	EnableSingle           bool   `yaml:"enable_single"`
	EnableMultiple         bool   `yaml:"enable_multiple"`
	EnableTrueFalse        bool   `yaml:"enable_truefalse"`
}

// Validation controls task checks and report output.
type Validation struct {
	DisabledChecks []string `yaml:"disabled_checks" env:"COURSECHECK_DISABLED_CHECKS" envSeparator:","`
	LogVerbose     bool     `yaml:"log_verbose" env:"COURSECHECK_LOG_VERBOSE"`
	// Color is one of auto, always, never.
	Color string `yaml:"color" env:"COURSECHECK_COLOR"`
}

// Project locates course files on disk.
type Project struct {
	ScriptRoots   []string `yaml:"script_roots"`
	SceneManifest string   `yaml:"scene_manifest" env:"COURSECHECK_SCENE_MANIFEST"`
}

// Color modes accepted by Validation.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// IsCheckEnabled reports whether a check key is absent from the disabled list.
// Keys compare case-insensitively; a blank key is always enabled.
func (v Validation) IsCheckEnabled(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return true
	}
	for _, disabled := range v.DisabledChecks {
		if strings.EqualFold(strings.TrimSpace(disabled), key) {
			return false
		}
	}
	return true
}

// EffectiveMaxAttempts clamps the configured attempt budget to at least one.
func (q Quiz) EffectiveMaxAttempts() int {
	if q.MaxAttemptsPerQuestion < 1 {
		return 1
	}
	return q.MaxAttemptsPerQuestion
}
