package taskcheck

import (
	"fmt"
	"strings"

	"coursecheck/internal/link"
	"coursecheck/internal/validation"
)

// Builtin check types.
const (
	TypeObjectExists     = "object-exists"
	TypeComponentPresent = "component-present"
	TypeSceneAll         = "scene-all"
	TypeFromBlock        = "from-block"
)

func builtins() map[string]Check {
	return map[string]Check{
		TypeObjectExists:     CheckFunc(objectExists),
		TypeComponentPresent: CheckFunc(componentPresent),
		TypeSceneAll:         CheckFunc(sceneAll),
		TypeFromBlock:        CheckFunc(fromBlock),
	}
}

func objectExists(args map[string]string, env Env) (bool, string) {
	target := strings.TrimSpace(args["target"])
	if target == "" {
		return false, "target is required"
	}
	if env.Scene.ObjectExists(target) {
		return true, "object found: " + target
	}
	return false, "object not found: " + target
}

func componentPresent(args map[string]string, env Env) (bool, string) {
	target := strings.TrimSpace(args["target"])
	component := strings.TrimSpace(args["component"])
	if target == "" || component == "" {
		return false, "target and component are required"
	}
	if !env.Scene.ObjectExists(target) {
		return false, "object not found: " + target
	}
	t := env.Scene.ResolveType(component)
	if t == nil {
		return false, "component type not found: " + component
	}
	if env.Scene.HasComponent(target, t) {
		return true, "component found"
	}
	return false, fmt.Sprintf("no component %s on %s", component, target)
}

// sceneAll checks one object and a set of its components in a single call:
// type=scene-all&target=Player&components=Rigidbody,BoxCollider
func sceneAll(args map[string]string, env Env) (bool, string) {
	target := strings.TrimSpace(args["target"])
	if target == "" {
		return false, "target is required"
	}
	found := env.Scene.ObjectExists(target)
	overall := found
	lines := []string{mark(found) + " object-exists: " + target}
	for _, name := range splitComponents(args["components"]) {
		ok := false
		if found {
			if t := env.Scene.ResolveType(name); t != nil {
				ok = env.Scene.HasComponent(target, t)
			}
		}
		overall = overall && ok
		lines = append(lines, fmt.Sprintf("%s component-present: %s.%s", mark(ok), target, name))
	}
	if overall {
		lines = append(lines, "Total: OK")
	} else {
		lines = append(lines, "Total: FAIL")
	}
	return overall, strings.Join(lines, "\n")
}

func fromBlock(args map[string]string, env Env) (bool, string) {
	raw, ok := args[link.RawBlockArg]
	if !ok {
		return false, link.RawBlockArg + " is required"
	}
	result := env.Engine.EvaluateText(raw, env.Scene, env.Files)
	return result.Passed, result.Report()
}

// splitComponents splits on ',' and ';', trims, and drops blanks and
// case-insensitive duplicates, keeping the first spelling.
func splitComponents(csv string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, part := range strings.FieldsFunc(csv, func(r rune) bool { return r == ',' || r == ';' }) {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

func mark(ok bool) string {
	if ok {
		return validation.PassMark
	}
	return validation.FailMark
}
