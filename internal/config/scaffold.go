package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
quiz:
  max_attempts_per_question: 2
  randomize_answers_on_open: true
  guard_slide_navigation: true
  persist_state: false
  state_dir: ".coursecheck/quiz-state"
  debug_logging: false
  enable_single: true
  enable_multiple: true
  enable_truefalse: true

validation:
  disabled_checks: []
  log_verbose: false
  color: auto

project:
  script_roots:
    - "Assets"
  scene_manifest: ".coursecheck/scene.yml"
`

const defaultSceneManifest = `# Objects currently present in the scene and the components attached to them.
objects:
  - name: "Main Camera"
    components: ["Transform", "Camera", "AudioListener"]
project_types: []
`

// Scaffold writes a default config and scene manifest at configPath.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if err := ensureAbsent(configPath); err != nil {
		return err
	}
	manifestPath := filepath.Join(filepath.Dir(configPath), "scene.yml")
	if err := ensureAbsent(manifestPath); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	if err := os.WriteFile(manifestPath, []byte(defaultSceneManifest), 0o644); err != nil {
		return fmt.Errorf("write scene manifest: %w", err)
	}
	return nil
}

func ensureAbsent(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("path %q is a directory", path)
		}
		return fmt.Errorf("file already exists at %q", path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}
