package cli

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfig = `version: 1
quiz:
  max_attempts_per_question: 2
  randomize_answers_on_open: false
  guard_slide_navigation: true
  persist_state: true
validation:
  color: never
project:
  script_roots: ["Assets"]
  scene_manifest: ".coursecheck/scene.yml"
`

const testManifest = `objects:
  - name: Player
    components: [Transform, Rigidbody, BoxCollider]
  - name: Main Camera
    components: [Transform, Camera]
`

const testLesson = "# Intro\n\nWelcome.\n\n---\n\n" +
	"```quiz\nid: q1\nkind: single\ntext: Pick A\nanswers:\n  - text: A\n    correct: true\n  - text: B\n```\n\n" +
	"```quiz\nid: q2\nkind: multiple\ntext: Pick both\nanswers:\n  - text: X\n    correct: true\n  - text: Y\n    correct: true\n  - text: Z\n```\n\n" +
	"---\n\n" +
	"```check\nrules:\n  - object_exists: \"Player\"\n```\n\n" +
	"---\n\n" +
	"# Done\n"

// testProject is a project root holding a config, scene manifest, lesson,
// and script.
type testProject struct {
	root   string
	config string
	lesson string
}

func writeTestFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestProject(t *testing.T) testProject {
	t.Helper()
	root := t.TempDir()
	p := testProject{
		root:   root,
		config: filepath.Join(root, ".coursecheck", "config.yml"),
		lesson: filepath.Join(root, "Lessons", "intro.md"),
	}
	writeTestFile(t, p.config, testConfig)
	writeTestFile(t, filepath.Join(root, ".coursecheck", "scene.yml"), testManifest)
	writeTestFile(t, p.lesson, testLesson)
	writeTestFile(t, filepath.Join(root, "Assets", "Scripts", "Player.cs"), "void Update() { rb.AddForce(Vector3.up); }\n")
	return p
}
