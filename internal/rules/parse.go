package rules

import (
	"errors"
	"strings"
)

// ErrEmptyInput indicates the check block was empty or whitespace.
var ErrEmptyInput = errors.New("empty check block")

// ErrNoRules indicates the block had content but no recognized directives.
var ErrNoRules = errors.New("no recognized rules in check block")

const (
	keyObjectExists    = "object_exists:"
	keyComponentExists = "component_exists"
	keyObject          = "object:"
	keyType            = "type:"
	keyFilename        = "filename:"
	keyContains        = "contains:"
)

// Parse reads a check block into a rule Block.
//
// Directives are matched by line prefix, case-insensitively, after trimming
// whitespace and a leading "- " list marker:
//
//	object_exists: "Player"
//	- component_exists:
//	    object: "Player"
//	    type: "Rigidbody"
//	filename: "PlayerController.cs"
//	contains: "Update"
//
// A "type: scene" or "type: script" header outside component items narrows the
// block to that family.
func Parse(raw string) (Block, error) {
	if strings.TrimSpace(raw) == "" {
		return Block{}, ErrEmptyInput
	}
	lines := splitLines(raw)
	consumed := make([]bool, len(lines))

	var (
		objects    []Rule
		components []Rule
		filename   string
		haveFile   bool
		terms      []string
		sceneSeen  bool
		scriptSeen bool
	)

	for i, line := range lines {
		if consumed[i] {
			continue
		}
		item := stripListMarker(strings.TrimSpace(line))
		switch {
		case hasKey(item, keyObjectExists):
			sceneSeen = true
			if name := valueOf(item); name != "" {
				objects = append(objects, ObjectExists{Name: name})
			}
		case hasKey(item, keyComponentExists):
			sceneSeen = true
			object, typeName := scanComponentPair(lines, i, consumed)
			if object != "" && typeName != "" {
				components = append(components, ComponentExists{Object: object, Type: typeName})
			}
		case hasKey(item, keyFilename):
			scriptSeen = true
			if !haveFile {
				filename = valueOf(item)
				haveFile = filename != ""
			}
		case hasKey(item, keyContains):
			scriptSeen = true
			if term := valueOf(item); term != "" {
				terms = append(terms, term)
			}
		}
	}

	switch header := blockHeader(lines, consumed); header {
	case KindScene:
		scriptSeen = false
		sceneSeen = true
	case KindScript:
		sceneSeen = false
		scriptSeen = true
	}

	block := Block{HasSceneRules: sceneSeen, HasScriptRules: scriptSeen}
	switch {
	case sceneSeen && scriptSeen:
		block.Kind = KindMixed
	case scriptSeen:
		block.Kind = KindScript
	default:
		block.Kind = KindScene
	}
	if sceneSeen {
		block.Rules = append(block.Rules, objects...)
		block.Rules = append(block.Rules, components...)
	}
	if scriptSeen {
		block.Rules = append(block.Rules, FileContainsSet{Filename: filename, Terms: terms})
	}
	if len(block.Rules) == 0 {
		return block, ErrNoRules
	}
	return block, nil
}

// scanComponentPair reads object/type lines following a component_exists item
// at index start. Only those lines are consumed. The scan stops at the next
// list item, a blank line, another directive, or once both halves are read.
func scanComponentPair(lines []string, start int, consumed []bool) (string, string) {
	var object, typeName string
	for j := start + 1; j < len(lines) && (object == "" || typeName == ""); j++ {
		trimmed := strings.TrimSpace(lines[j])
		if trimmed == "" || strings.HasPrefix(trimmed, "- ") || isDirective(trimmed) {
			break
		}
		switch {
		case hasKey(trimmed, keyObject):
			object = valueOf(trimmed)
			consumed[j] = true
		case hasKey(trimmed, keyType):
			typeName = valueOf(trimmed)
			consumed[j] = true
		}
	}
	return object, typeName
}

func isDirective(line string) bool {
	for _, key := range []string{keyObjectExists, keyComponentExists, keyFilename, keyContains} {
		if hasKey(line, key) {
			return true
		}
	}
	return false
}

// blockHeader returns the kind named by the first unconsumed "type:" line,
// or "" when there is none or it names neither family.
func blockHeader(lines []string, consumed []bool) BlockKind {
	for i, line := range lines {
		if consumed[i] {
			continue
		}
		item := stripListMarker(strings.TrimSpace(line))
		if !hasKey(item, keyType) {
			continue
		}
		switch strings.ToLower(valueOf(item)) {
		case string(KindScene):
			return KindScene
		case string(KindScript):
			return KindScript
		}
		return ""
	}
	return ""
}

func splitLines(raw string) []string {
	return strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
}

func stripListMarker(line string) string {
	if strings.HasPrefix(line, "- ") {
		return strings.TrimSpace(line[2:])
	}
	return line
}

func hasKey(line, key string) bool {
	return len(line) >= len(key) && strings.EqualFold(line[:len(key)], key)
}

// valueOf returns the text after the first colon with whitespace and
// surrounding quotes removed.
func valueOf(line string) string {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return ""
	}
	return Unquote(line[idx+1:])
}

// Unquote trims whitespace and one pair of matching surrounding quotes.
func Unquote(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			value = value[1 : len(value)-1]
		}
	}
	return strings.TrimSpace(value)
}
