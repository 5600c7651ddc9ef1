package validation

import (
	"errors"
	"strings"
)

type fakeType string

func (t fakeType) FullName() string { return string(t) }

// fakeScene maps object names to attached component type names.
type fakeScene struct {
	objects map[string][]string
	types   map[string]string
}

func (s *fakeScene) ObjectExists(name string) bool {
	_, ok := s.objects[name]
	return ok
}

func (s *fakeScene) ResolveType(name string) TypeHandle {
	full, ok := s.types[name]
	if !ok {
		return nil
	}
	return fakeType(full)
}

func (s *fakeScene) HasComponent(objectName string, t TypeHandle) bool {
	for _, c := range s.objects[objectName] {
		if c == t.FullName() {
			return true
		}
	}
	return false
}

// fakeFiles serves file contents by exact name; names in broken fail to read.
type fakeFiles struct {
	files  map[string]string
	broken map[string]bool
}

func (f *fakeFiles) FindByFilename(name string) (FileHandle, bool) {
	if _, ok := f.files[name]; ok {
		return FileHandle{Path: "Assets/Scripts/" + name}, true
	}
	return FileHandle{}, false
}

func (f *fakeFiles) ReadText(h FileHandle) (string, error) {
	name := strings.TrimPrefix(h.Path, "Assets/Scripts/")
	if f.broken[name] {
		return "", errors.New("permission denied")
	}
	return f.files[name], nil
}

func newFakeScene() *fakeScene {
	return &fakeScene{
		objects: map[string][]string{
			"Player":      {"UnityEngine.Transform", "UnityEngine.Rigidbody"},
			"Main Camera": {"UnityEngine.Transform", "UnityEngine.Camera"},
		},
		types: map[string]string{
			"Transform":   "UnityEngine.Transform",
			"Rigidbody":   "UnityEngine.Rigidbody",
			"Camera":      "UnityEngine.Camera",
			"BoxCollider": "UnityEngine.BoxCollider",
		},
	}
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{
		files: map[string]string{
			"PlayerController.cs": "public class PlayerController : MonoBehaviour {\n  void Update() { transform.Translate(0, 0, 1); }\n}\n",
		},
		broken: map[string]bool{},
	}
}
