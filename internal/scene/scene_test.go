package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coursecheck/internal/config"
	"coursecheck/internal/rules"
	"coursecheck/internal/validation"
)

const sampleManifest = `objects:
  - name: Player
    components: [Transform, Rigidbody, BoxCollider2D, PlayerController]
    children:
      - name: Weapon
        components: [Transform, MeshRenderer]
  - name: Hidden
    active: false
    components: [Transform]
  - name: Enemy
    components: [Transform, Game.EnemyBrain, SphereCollider]
project_types:
  - PlayerController
  - Game.EnemyBrain
`

func loadSample(t *testing.T) *Scene {
	t.Helper()
	m, err := ParseManifest([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	return New(m)
}

func TestObjectExists(t *testing.T) {
	s := loadSample(t)
	for _, name := range []string{"Player", "Weapon", "Player/Weapon", "/Player/Weapon", "Enemy"} {
		if !s.ObjectExists(name) {
			t.Fatalf("expected %q to exist", name)
		}
	}
	for _, name := range []string{"Hidden", "Weapon/Player", "player", ""} {
		if s.ObjectExists(name) {
			t.Fatalf("expected %q to be missing", name)
		}
	}
}

func TestResolveType(t *testing.T) {
	s := loadSample(t)
	cases := map[string]string{
		"Rigidbody":             "UnityEngine.Rigidbody",
		"UnityEngine.Transform": "UnityEngine.Transform",
		"meshrenderer":          "UnityEngine.MeshRenderer",
		"BoxCollider2D":         "UnityEngine.Collider2D",
		"PlayerController":      "PlayerController",
		"EnemyBrain":            "Game.EnemyBrain",
	}
	for name, want := range cases {
		got := s.ResolveType(name)
		if got == nil {
			t.Fatalf("expected %q to resolve", name)
		}
		if got.FullName() != want {
			t.Fatalf("ResolveType(%q) = %q, want %q", name, got.FullName(), want)
		}
	}
	if s.ResolveType("Nonexistent") != nil {
		t.Fatalf("expected unknown type to be nil")
	}
}

func TestHasComponent(t *testing.T) {
	s := loadSample(t)
	cases := []struct {
		object, component string
		want              bool
	}{
		{"Player", "Rigidbody", true},
		{"Player", "Collider2D", true},
		{"Player", "CircleCollider2D", true},
		{"Player", "PlayerController", true},
		{"Player", "MonoBehaviour", true},
		{"Player", "MeshRenderer", false},
		{"Player/Weapon", "Renderer", true},
		{"Enemy", "Collider", true},
		{"Enemy", "EnemyBrain", true},
		{"Ghost", "Transform", false},
	}
	for _, tc := range cases {
		typ := s.ResolveType(tc.component)
		if typ == nil {
			t.Fatalf("expected %q to resolve", tc.component)
		}
		if got := s.HasComponent(tc.object, typ); got != tc.want {
			t.Fatalf("HasComponent(%q, %q) = %v, want %v", tc.object, tc.component, got, tc.want)
		}
	}
}

func TestParseManifestErrors(t *testing.T) {
	cases := map[string]string{
		"unknown field": "objects:\n  - name: A\n    colour: red\n",
		"missing name":  "objects:\n  - components: [Transform]\n",
		"slash in name": "objects:\n  - name: A/B\n",
		"empty type":    "project_types: [\"\"]\n",
		"two documents": "objects: []\n---\nobjects: []\n",
	}
	for name, doc := range cases {
		if _, err := ParseManifest([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadScaffoldedManifest(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), config.ConfigDirName, config.ConfigFileName)
	if err := config.Scaffold(configPath); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	s, err := Load(filepath.Join(filepath.Dir(configPath), "scene.yml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !s.ObjectExists("Main Camera") {
		t.Fatalf("expected scaffolded camera")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

// TestSceneDrivesValidation verifies the manifest reports the three distinct component failures.
func TestSceneDrivesValidation(t *testing.T) {
	s := loadSample(t)
	block, err := rules.Parse(strings.Join([]string{
		"type: scene",
		"- object_exists: \"Player\"",
		"- component_exists:",
		"    object: \"Player\"",
		"    type: \"Rigidbody\"",
		"- component_exists:",
		"    object: \"Ghost\"",
		"    type: \"Rigidbody\"",
		"- component_exists:",
		"    object: \"Player\"",
		"    type: \"Jetpack\"",
		"- component_exists:",
		"    object: \"Player\"",
		"    type: \"MeshRenderer\"",
	}, "\n"))
	if err != nil {
		t.Fatalf("parse block: %v", err)
	}
	result := validation.NewEngine(config.Default().Validation, nil).Evaluate(block, s, noFiles{})
	if result.Passed {
		t.Fatalf("expected failure")
	}
	var reasons []validation.Reason
	for _, f := range result.Failures() {
		reasons = append(reasons, f.Reason)
	}
	want := []validation.Reason{validation.ReasonObjectNotFound, validation.ReasonTypeNotFound, validation.ReasonComponentNotFound}
	if len(reasons) != len(want) {
		t.Fatalf("unexpected failures %v", reasons)
	}
	for i := range want {
		if reasons[i] != want[i] {
			t.Fatalf("unexpected failures %v", reasons)
		}
	}
}

type noFiles struct{}

func (noFiles) FindByFilename(string) (validation.FileHandle, bool) { return validation.FileHandle{}, false }
func (noFiles) ReadText(validation.FileHandle) (string, error)      { return "", os.ErrNotExist }

