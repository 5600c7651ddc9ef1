package config

import (
	"fmt"
	"os"
)

// Load reads, parses, applies env overrides, normalizes, and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	return finish(cfg)
}

// LoadOrDefault loads the config at path, or starts from Default when path is empty.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return finish(Default())
	}
	return Load(path)
}

func finish(cfg Config) (Config, error) {
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
