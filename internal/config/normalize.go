package config

import "strings"

// Normalize trims string fields and fills empty values with defaults.
func Normalize(cfg *Config) {
	cfg.Quiz.StateDir = strings.TrimSpace(cfg.Quiz.StateDir)
	if cfg.Quiz.StateDir == "" {
		cfg.Quiz.StateDir = DefaultStateDir
	}

	cfg.Validation.Color = strings.ToLower(strings.TrimSpace(cfg.Validation.Color))
	if cfg.Validation.Color == "" {
		cfg.Validation.Color = ColorAuto
	}
	cfg.Validation.DisabledChecks = normalizeStringSlice(cfg.Validation.DisabledChecks)

	cfg.Project.SceneManifest = strings.TrimSpace(cfg.Project.SceneManifest)
	cfg.Project.ScriptRoots = normalizeStringSlice(cfg.Project.ScriptRoots)
	if len(cfg.Project.ScriptRoots) == 0 {
		cfg.Project.ScriptRoots = []string{DefaultScriptRoot}
	}
}

func normalizeStringSlice(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		out = append(out, value)
	}
	return out
}
