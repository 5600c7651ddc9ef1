package scene

import "strings"

const (
	engineNamespace  = "UnityEngine"
	projectAssembly  = "Assembly-CSharp"
	collider2DMarker = "Collider2D"
)

// Type is a resolved component type.
type Type struct {
	Name     string
	Assembly string
	// Base is the full name of the parent type, empty at the root.
	Base string
}

// FullName returns the namespace-qualified type name.
func (t *Type) FullName() string {
	return t.Name
}

// engineTypes lists the engine component types with their base types.
var engineTypes = map[string]string{
	"Component":           "",
	"Behaviour":           "Component",
	"MonoBehaviour":       "Behaviour",
	"Transform":           "Component",
	"RectTransform":       "Transform",
	"Rigidbody":           "Component",
	"Rigidbody2D":         "Component",
	"Collider":            "Component",
	"BoxCollider":         "Collider",
	"SphereCollider":      "Collider",
	"CapsuleCollider":     "Collider",
	"MeshCollider":        "Collider",
	"CharacterController": "Collider",
	"Collider2D":          "Behaviour",
	"BoxCollider2D":       "Collider2D",
	"CircleCollider2D":    "Collider2D",
	"CapsuleCollider2D":   "Collider2D",
	"PolygonCollider2D":   "Collider2D",
	"EdgeCollider2D":      "Collider2D",
	"Renderer":            "Component",
	"MeshRenderer":        "Renderer",
	"SkinnedMeshRenderer": "Renderer",
	"SpriteRenderer":      "Renderer",
	"LineRenderer":        "Renderer",
	"TrailRenderer":       "Renderer",
	"MeshFilter":          "Component",
	"Camera":              "Behaviour",
	"Light":               "Behaviour",
	"AudioSource":         "Behaviour",
	"AudioListener":       "Behaviour",
	"Animator":            "Behaviour",
	"Animation":           "Behaviour",
	"Canvas":              "Behaviour",
	"ParticleSystem":      "Component",
}

// typeCatalog resolves type names the way the editor looked them up:
// anything naming Collider2D maps to the Collider2D base, then a fully
// qualified match, then UnityEngine.<name>, then project types by full name
// or trailing segment.
type typeCatalog struct {
	byFullName map[string]*Type
	project    []*Type
}

func newTypeCatalog(projectTypes []string) *typeCatalog {
	c := &typeCatalog{byFullName: map[string]*Type{}}
	for name, base := range engineTypes {
		t := &Type{Name: engineNamespace + "." + name, Assembly: engineNamespace}
		if base != "" {
			t.Base = engineNamespace + "." + base
		}
		c.byFullName[strings.ToLower(t.Name)] = t
	}
	for _, name := range projectTypes {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if _, exists := c.byFullName[key]; exists {
			continue
		}
		t := &Type{Name: name, Assembly: projectAssembly, Base: engineNamespace + ".MonoBehaviour"}
		c.byFullName[key] = t
		c.project = append(c.project, t)
	}
	return c
}

func (c *typeCatalog) resolve(name string) *Type {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if strings.Contains(name, collider2DMarker) {
		return c.byFullName[strings.ToLower(engineNamespace+"."+collider2DMarker)]
	}
	return c.resolveAttached(name)
}

// resolveAttached resolves a component name listed on an object. Unlike
// resolve it keeps concrete 2D collider types.
func (c *typeCatalog) resolveAttached(name string) *Type {
	name = strings.TrimSpace(name)
	if t, ok := c.byFullName[strings.ToLower(name)]; ok {
		return t
	}
	if t, ok := c.byFullName[strings.ToLower(engineNamespace+"."+name)]; ok {
		return t
	}
	suffix := "." + strings.ToLower(name)
	for _, t := range c.project {
		if strings.HasSuffix(strings.ToLower(t.Name), suffix) {
			return t
		}
	}
	return nil
}

// isA reports whether t is want or derives from it.
func (c *typeCatalog) isA(t, want *Type) bool {
	for cur := t; cur != nil; {
		if cur == want {
			return true
		}
		if cur.Base == "" {
			return false
		}
		cur = c.byFullName[strings.ToLower(cur.Base)]
	}
	return false
}
