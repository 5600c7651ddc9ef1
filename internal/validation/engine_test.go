package validation

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"coursecheck/internal/config"
	"coursecheck/internal/rules"
)

func newTestEngine() *Engine {
	return NewEngine(config.Default().Validation, nil)
}

func TestEvaluateSceneRulesAreExhaustive(t *testing.T) {
	block := rules.Block{
		Kind:          rules.KindScene,
		HasSceneRules: true,
		Rules: []rules.Rule{
			rules.ObjectExists{Name: "Enemy"},
			rules.ObjectExists{Name: "Player"},
			rules.ComponentExists{Object: "Player", Type: "Rigidbody"},
		},
	}
	result := newTestEngine().Evaluate(block, newFakeScene(), newFakeFiles())
	if result.Passed {
		t.Fatalf("expected failure when an object is missing")
	}
	if len(result.Rules) != 3 {
		t.Fatalf("expected every rule to be evaluated, got %d", len(result.Rules))
	}
	if result.Objects != (Tally{Passed: 1, Total: 2}) {
		t.Fatalf("unexpected object tally %+v", result.Objects)
	}
	if result.Components != (Tally{Passed: 1, Total: 1}) {
		t.Fatalf("unexpected component tally %+v", result.Components)
	}
	want := []string{
		"X object_exists: Enemy",
		"V object_exists: Player",
		"Total (objects): 1/2",
		"V component_exists: Player.Rigidbody",
		"Total (components): 1/1",
	}
	if strings.Join(result.Messages, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected report:\n%s", result.Report())
	}
}

// TestComponentFailureReasons verifies the three component failures stay distinct.
func TestComponentFailureReasons(t *testing.T) {
	cases := []struct {
		name   string
		rule   rules.ComponentExists
		reason Reason
		detail string
	}{
		{"missing object", rules.ComponentExists{Object: "Ghost", Type: "Rigidbody"}, ReasonObjectNotFound, "object 'Ghost' not found"},
		{"missing object with unknown type", rules.ComponentExists{Object: "Ghost", Type: "Nope"}, ReasonObjectNotFound, "object 'Ghost' not found"},
		{"unknown type", rules.ComponentExists{Object: "Player", Type: "Nope"}, ReasonTypeNotFound, "type 'Nope' could not be resolved"},
		{"not attached", rules.ComponentExists{Object: "Player", Type: "BoxCollider"}, ReasonComponentNotFound, "no component of type 'UnityEngine.BoxCollider' on 'Player'"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			block := rules.Block{HasSceneRules: true, Rules: []rules.Rule{tc.rule}}
			result := newTestEngine().Evaluate(block, newFakeScene(), newFakeFiles())
			if result.Passed {
				t.Fatalf("expected failure")
			}
			if got := result.Rules[0].Reason; got != tc.reason {
				t.Fatalf("expected reason %s, got %s", tc.reason, got)
			}
			if !strings.Contains(result.Messages[0], tc.detail) {
				t.Fatalf("expected %q in %q", tc.detail, result.Messages[0])
			}
		})
	}
}

func TestEvaluateScriptRules(t *testing.T) {
	block := rules.Block{
		Kind:           rules.KindScript,
		HasScriptRules: true,
		Rules: []rules.Rule{rules.FileContainsSet{
			Filename: "PlayerController.cs",
			Terms:    []string{"PUBLIC CLASS PlayerController", "Update", "Rigidbody.AddForce"},
		}},
	}
	result := newTestEngine().Evaluate(block, newFakeScene(), newFakeFiles())
	if result.Passed {
		t.Fatalf("expected failure for a missing term")
	}
	if result.Script != (Tally{Passed: 2, Total: 3}) {
		t.Fatalf("unexpected script tally %+v", result.Script)
	}
	report := result.Report()
	for _, want := range []string{
		"script: found file PlayerController.cs (Assets/Scripts/PlayerController.cs)",
		`V contains: "PUBLIC CLASS PlayerController"`,
		`X contains: "Rigidbody.AddForce"`,
		"Total: 2/3 matches",
		"Missing:\n - Rigidbody.AddForce",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("expected %q in report:\n%s", want, report)
		}
	}
}

func TestEvaluateScriptFailsFast(t *testing.T) {
	files := newFakeFiles()
	files.broken["PlayerController.cs"] = true
	cases := []struct {
		name     string
		filename string
		reason   Reason
		message  string
	}{
		{"missing filename", "", ReasonMissingFilename, "X script: filename is not set"},
		{"file not found", "Nope.cs", ReasonFileNotFound, "X script: file not found: Nope.cs"},
		{"unreadable", "PlayerController.cs", ReasonReadFailed, "X script: could not read PlayerController.cs"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			block := rules.Block{HasScriptRules: true, Rules: []rules.Rule{
				rules.FileContainsSet{Filename: tc.filename, Terms: []string{"Update"}},
			}}
			result := newTestEngine().Evaluate(block, newFakeScene(), files)
			if result.Passed {
				t.Fatalf("expected failure")
			}
			if len(result.Messages) != 1 || !strings.HasPrefix(result.Messages[0], tc.message) {
				t.Fatalf("expected single message %q, got %q", tc.message, result.Messages)
			}
			if result.Rules[0].Reason != tc.reason {
				t.Fatalf("expected reason %s, got %s", tc.reason, result.Rules[0].Reason)
			}
		})
	}
}

func TestEvaluateMixedBlockSeparatesSections(t *testing.T) {
	raw := `- object_exists: "Player"
- filename: "PlayerController.cs"
- contains: "transform.Translate"`
	result := newTestEngine().EvaluateText(raw, newFakeScene(), newFakeFiles())
	if !result.Passed {
		t.Fatalf("expected pass, got:\n%s", result.Report())
	}
	if !strings.Contains(result.Report(), "Total (objects): 1/1\n\nscript: found file") {
		t.Fatalf("expected blank line between sections:\n%s", result.Report())
	}
}

// TestEvaluateTextScriptAfterComponentPair verifies a missing term in a
// script section that follows a component pair fails the block.
func TestEvaluateTextScriptAfterComponentPair(t *testing.T) {
	raw := `- component_exists:
    object: "Player"
    type: "Rigidbody"
filename: "PlayerController.cs"
contains: "FixedUpdate"`
	result := newTestEngine().EvaluateText(raw, newFakeScene(), newFakeFiles())
	if result.Passed {
		t.Fatalf("expected failure for the missing term:\n%s", result.Report())
	}
	if result.Script != (Tally{Passed: 0, Total: 1}) {
		t.Fatalf("unexpected script tally %+v", result.Script)
	}
	if !strings.Contains(result.Report(), `X contains: "FixedUpdate"`) {
		t.Fatalf("expected missing term in report:\n%s", result.Report())
	}
}

// TestEvaluateScriptWithoutTermsOmitsTally verifies no match total is printed
// for a script rule that has no terms.
func TestEvaluateScriptWithoutTermsOmitsTally(t *testing.T) {
	block := rules.Block{HasScriptRules: true, Rules: []rules.Rule{
		rules.FileContainsSet{Filename: "PlayerController.cs"},
	}}
	result := newTestEngine().Evaluate(block, newFakeScene(), newFakeFiles())
	if !result.Passed {
		t.Fatalf("expected pass, got:\n%s", result.Report())
	}
	if strings.Contains(result.Report(), "Total:") {
		t.Fatalf("expected no tally line:\n%s", result.Report())
	}
}

func TestEvaluateTextEmptyBlock(t *testing.T) {
	result := newTestEngine().EvaluateText("  \n", newFakeScene(), newFakeFiles())
	if result.Passed {
		t.Fatalf("expected empty block to fail")
	}
	if result.Rules[0].Reason != ReasonEmptyBlock {
		t.Fatalf("expected empty block reason, got %s", result.Rules[0].Reason)
	}
}

func TestEvaluatePanicsOnNilPort(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	newTestEngine().Evaluate(rules.Block{}, nil, newFakeFiles())
}

// TestPassedIsConjunctionOfRules checks the AND invariant and tally sums over
// random rule sets.
func TestPassedIsConjunctionOfRules(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	objects := []string{"Player", "Main Camera", "Enemy", "Ghost"}
	types := []string{"Transform", "Rigidbody", "Camera", "BoxCollider", "Unknown"}
	files := []string{"PlayerController.cs", "Missing.cs", ""}
	terms := []string{"Update", "transform.Translate", "FixedUpdate", "class"}
	engine := newTestEngine()

	for i := 0; i < 500; i++ {
		var block rules.Block
		for n := rng.Intn(4); n > 0; n-- {
			block.Rules = append(block.Rules, rules.ObjectExists{Name: objects[rng.Intn(len(objects))]})
			block.HasSceneRules = true
		}
		for n := rng.Intn(4); n > 0; n-- {
			block.Rules = append(block.Rules, rules.ComponentExists{
				Object: objects[rng.Intn(len(objects))],
				Type:   types[rng.Intn(len(types))],
			})
			block.HasSceneRules = true
		}
		if rng.Intn(2) == 0 {
			script := rules.FileContainsSet{Filename: files[rng.Intn(len(files))]}
			for n := rng.Intn(4); n > 0; n-- {
				script.Terms = append(script.Terms, terms[rng.Intn(len(terms))])
			}
			block.Rules = append(block.Rules, script)
			block.HasScriptRules = true
		}

		result := engine.Evaluate(block, newFakeScene(), newFakeFiles())
		all := true
		counts := map[Category]Tally{}
		for _, rr := range result.Rules {
			all = all && rr.Passed
			if rr.Category == CategoryObject || rr.Category == CategoryComponent {
				tally := counts[rr.Category]
				tally.record(rr.Passed)
				counts[rr.Category] = tally
			}
		}
		if result.Passed != all {
			t.Fatalf("case %d: Passed=%v but conjunction=%v\n%s", i, result.Passed, all, result.Report())
		}
		if counts[CategoryObject] != result.Objects || counts[CategoryComponent] != result.Components {
			t.Fatalf("case %d: tallies %+v/%+v do not match rule results %+v", i, result.Objects, result.Components, counts)
		}
		if result.Script.Passed > result.Script.Total {
			t.Fatalf("case %d: script tally overflow %s", i, result.Script)
		}
	}
}

func ExampleResult_Report() {
	scene := newFakeScene()
	result := NewEngine(config.Validation{}, nil).EvaluateText(`- object_exists: "Player"
- component_exists:
    object: "Player"
    type: "Camera"`, scene, newFakeFiles())
	fmt.Println(result.Report())
	// Output:
	// V object_exists: Player
	// Total (objects): 1/1
	// X component_exists: Player.Camera (no component of type 'UnityEngine.Camera' on 'Player')
	// Total (components): 0/1
}
