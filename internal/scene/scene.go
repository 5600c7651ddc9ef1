// Package scene answers scene queries from a YAML snapshot of the objects in
// a scene and the component types available to the project.
package scene

import (
	"strings"

	"coursecheck/internal/validation"
)

// Scene implements validation.SceneQuery over a Manifest.
type Scene struct {
	types  *typeCatalog
	byName map[string]*Object
	byPath map[string]*Object
}

var _ validation.SceneQuery = (*Scene)(nil)

// New indexes the active objects of m.
func New(m Manifest) *Scene {
	s := &Scene{
		types:  newTypeCatalog(m.ProjectTypes),
		byName: map[string]*Object{},
		byPath: map[string]*Object{},
	}
	var walk func(objs []Object, parent string)
	walk = func(objs []Object, parent string) {
		for i := range objs {
			o := &objs[i]
			if !o.IsActive() {
				continue
			}
			path := o.Name
			if parent != "" {
				path = parent + "/" + o.Name
			}
			if _, exists := s.byName[o.Name]; !exists {
				s.byName[o.Name] = o
			}
			s.byPath[path] = o
			walk(o.Children, path)
		}
	}
	walk(m.Objects, "")
	return s
}

// Load reads the manifest at path and indexes it.
func Load(path string) (*Scene, error) {
	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return New(m), nil
}

func (s *Scene) find(name string) *Object {
	name = strings.TrimSpace(name)
	if strings.Contains(name, "/") {
		return s.byPath[strings.TrimPrefix(name, "/")]
	}
	return s.byName[name]
}

// ObjectExists reports whether an active object has name. A name with '/'
// is a path from a root object.
func (s *Scene) ObjectExists(name string) bool {
	return s.find(name) != nil
}

// ResolveType returns nil when name is unknown.
func (s *Scene) ResolveType(name string) validation.TypeHandle {
	t := s.types.resolve(name)
	if t == nil {
		return nil
	}
	return t
}

// HasComponent reports whether the object has a component of type t or of a
// type derived from it.
func (s *Scene) HasComponent(objectName string, t validation.TypeHandle) bool {
	want, ok := t.(*Type)
	if !ok || want == nil {
		return false
	}
	obj := s.find(objectName)
	if obj == nil {
		return false
	}
	for _, name := range obj.Components {
		if attached := s.types.resolveAttached(name); attached != nil && s.types.isA(attached, want) {
			return true
		}
	}
	return false
}
