package scene

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest describes the objects of a scene snapshot and the project's own
// component types.
type Manifest struct {
	Objects      []Object `yaml:"objects"`
	ProjectTypes []string `yaml:"project_types"`
}

// Object is one game object. Inactive objects cannot be found by name.
type Object struct {
	Name       string   `yaml:"name"`
	Active     *bool    `yaml:"active,omitempty"`
	Components []string `yaml:"components"`
	Children   []Object `yaml:"children,omitempty"`
}

// IsActive reports whether the object is active. Objects are active unless
// marked otherwise.
func (o Object) IsActive() bool {
	return o.Active == nil || *o.Active
}

// ParseManifest decodes a single YAML manifest document.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if len(bytes.TrimSpace(data)) == 0 {
		return m, nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("parse scene manifest: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Manifest{}, fmt.Errorf("parse scene manifest: multiple YAML documents are not supported")
		}
		return Manifest{}, fmt.Errorf("parse scene manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// LoadManifest reads and parses the manifest at path.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read scene manifest: %w", err)
	}
	return ParseManifest(data)
}

func (m Manifest) validate() error {
	var walk func(objs []Object, at string) error
	walk = func(objs []Object, at string) error {
		for i, o := range objs {
			path := fmt.Sprintf("%s[%d]", at, i)
			if strings.TrimSpace(o.Name) == "" {
				return fmt.Errorf("scene manifest: %s.name is required", path)
			}
			if strings.Contains(o.Name, "/") {
				return fmt.Errorf("scene manifest: %s.name %q must not contain '/'", path, o.Name)
			}
			if err := walk(o.Children, path+".children"); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(m.Objects, "objects"); err != nil {
		return err
	}
	for i, t := range m.ProjectTypes {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("scene manifest: project_types[%d] is empty", i)
		}
	}
	return nil
}
