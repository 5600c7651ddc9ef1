package rules

// BlockKind classifies which rule families a block carries. It affects report
// formatting only.
type BlockKind string

const (
	KindScene  BlockKind = "scene"
	KindScript BlockKind = "script"
	KindMixed  BlockKind = "mixed"
)

// Rule is one parsed validation directive. The concrete types are
// ObjectExists, ComponentExists, and FileContainsSet.
type Rule interface {
	// Label is the short human-readable form used in reports.
	Label() string
	rule()
}

// ObjectExists passes when a scene object with Name exists.
type ObjectExists struct {
	Name string
}

// ComponentExists passes when Object exists and carries a component of Type.
type ComponentExists struct {
	Object string
	Type   string
}

// FileContainsSet passes when Filename is found and contains every term.
type FileContainsSet struct {
	Filename string
	Terms    []string
}

func (ObjectExists) rule()    {}
func (ComponentExists) rule() {}
func (FileContainsSet) rule() {}

// Label returns "object_exists: <name>".
func (r ObjectExists) Label() string { return "object_exists: " + r.Name }

// Label returns "component_exists: <object>.<type>".
func (r ComponentExists) Label() string { return "component_exists: " + r.Object + "." + r.Type }

// Label returns "script: <filename>".
func (r FileContainsSet) Label() string { return "script: " + r.Filename }

// Block is the ordered rule list parsed from one check block.
type Block struct {
	Kind           BlockKind
	HasSceneRules  bool
	HasScriptRules bool
	Rules          []Rule
}

// Objects returns the ObjectExists rules in declaration order.
func (b Block) Objects() []ObjectExists {
	var out []ObjectExists
	for _, r := range b.Rules {
		if o, ok := r.(ObjectExists); ok {
			out = append(out, o)
		}
	}
	return out
}

// Components returns the ComponentExists rules in declaration order.
func (b Block) Components() []ComponentExists {
	var out []ComponentExists
	for _, r := range b.Rules {
		if c, ok := r.(ComponentExists); ok {
			out = append(out, c)
		}
	}
	return out
}

// Script returns the FileContainsSet rule, if the block has script rules.
func (b Block) Script() (FileContainsSet, bool) {
	for _, r := range b.Rules {
		if s, ok := r.(FileContainsSet); ok {
			return s, true
		}
	}
	return FileContainsSet{}, false
}
