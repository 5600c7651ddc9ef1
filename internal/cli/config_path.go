package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"coursecheck/internal/config"
)

// resolveConfigPath normalizes a config path or finds it upward from startDir.
func resolveConfigPath(configPath, startDir string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath(startDir)
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadConfig loads the explicit or discovered config. With no explicit path
// and nothing to discover, defaults are used and configPath is empty.
func loadConfig(configFlag, startDir string) (config.Config, string, error) {
	path, err := resolveConfigPath(configFlag, startDir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			cfg, err := config.LoadOrDefault("")
			return cfg, "", err
		}
		return config.Config{}, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, path, nil
}
