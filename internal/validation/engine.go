package validation

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"coursecheck/internal/config"
	"coursecheck/internal/rules"
)

// Engine evaluates parsed rule blocks against scene and file ports.
type Engine struct {
	cfg    config.Validation
	logger *log.Logger
}

// NewEngine builds an Engine. A nil logger discards output.
func NewEngine(cfg config.Validation, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{cfg: cfg, logger: logger}
}

// EvaluateText parses raw and evaluates it. Parse failures become a failed
// Result carrying a single message; they are never returned as errors.
func (e *Engine) EvaluateText(raw string, scene SceneQuery, files FileQuery) Result {
	block, err := rules.Parse(raw)
	switch {
	case errors.Is(err, rules.ErrEmptyInput):
		return failedBlock(ReasonEmptyBlock, "check block is empty")
	case errors.Is(err, rules.ErrNoRules):
		return failedBlock(ReasonNoRules, "check block has no recognized rules")
	case err != nil:
		return failedBlock(ReasonNoRules, err.Error())
	}
	return e.Evaluate(block, scene, files)
}

// Evaluate runs every rule in block. Scene rules run first (objects, then
// components), then the script rule. Every rule is evaluated and reported;
// only the script section stops early when its file cannot be used.
func (e *Engine) Evaluate(block rules.Block, scene SceneQuery, files FileQuery) Result {
	if scene == nil || files == nil {
		panic("validation: Evaluate called with a nil port")
	}
	ev := &evaluation{result: Result{Passed: true}}

	if block.HasSceneRules {
		e.evaluateObjects(ev, block.Objects(), scene)
		e.evaluateComponents(ev, block.Components(), scene)
	}
	if block.HasScriptRules {
		if block.HasSceneRules {
			ev.line("")
		}
		script, _ := block.Script()
		e.evaluateScript(ev, script, files)
	}

	if e.cfg.LogVerbose {
		e.logger.Printf("check block (%s): %s objects=%s components=%s script=%s",
			block.Kind, okOrFail(ev.result.Passed), ev.result.Objects, ev.result.Components, ev.result.Script)
	}
	return ev.result
}

func (e *Engine) evaluateObjects(ev *evaluation, objects []rules.ObjectExists, scene SceneQuery) {
	for _, rule := range objects {
		passed := scene.ObjectExists(rule.Name)
		ev.result.Objects.record(passed)
		rr := RuleResult{Category: CategoryObject, Passed: passed, Label: rule.Label()}
		if !passed {
			rr.Reason = ReasonObjectNotFound
			rr.Detail = fmt.Sprintf("object '%s' not found in the scene", rule.Name)
		}
		ev.add(rr)
		ev.line(markFor(passed) + " " + rule.Label())
	}
	if ev.result.Objects.Total > 0 {
		ev.line("Total (objects): " + ev.result.Objects.String())
	}
}

func (e *Engine) evaluateComponents(ev *evaluation, components []rules.ComponentExists, scene SceneQuery) {
	for _, rule := range components {
		rr := checkComponent(rule, scene)
		ev.result.Components.record(rr.Passed)
		ev.add(rr)
		line := markFor(rr.Passed) + " " + rule.Label()
		if !rr.Passed {
			line += " (" + rr.Detail + ")"
		}
		ev.line(line)
	}
	if ev.result.Components.Total > 0 {
		ev.line("Total (components): " + ev.result.Components.String())
	}
}

// checkComponent distinguishes a missing object, an unresolved type, and a
// resolved type that is not attached.
func checkComponent(rule rules.ComponentExists, scene SceneQuery) RuleResult {
	rr := RuleResult{Category: CategoryComponent, Label: rule.Label()}
	if !scene.ObjectExists(rule.Object) {
		rr.Reason = ReasonObjectNotFound
		rr.Detail = fmt.Sprintf("object '%s' not found in the scene", rule.Object)
		return rr
	}
	handle := scene.ResolveType(rule.Type)
	if handle == nil {
		rr.Reason = ReasonTypeNotFound
		rr.Detail = fmt.Sprintf("component type '%s' could not be resolved", rule.Type)
		return rr
	}
	if !scene.HasComponent(rule.Object, handle) {
		rr.Reason = ReasonComponentNotFound
		rr.Detail = fmt.Sprintf("no component of type '%s' on '%s'", handle.FullName(), rule.Object)
		return rr
	}
	rr.Passed = true
	return rr
}

func (e *Engine) evaluateScript(ev *evaluation, rule rules.FileContainsSet, files FileQuery) {
	ev.result.Script.Total = len(rule.Terms)

	if strings.TrimSpace(rule.Filename) == "" {
		ev.fail(RuleResult{Category: CategoryScript, Label: "script", Reason: ReasonMissingFilename, Detail: "filename is not set"},
			FailMark+" script: filename is not set")
		return
	}
	handle, found := files.FindByFilename(rule.Filename)
	if !found {
		ev.fail(RuleResult{Category: CategoryScript, Label: rule.Label(), Reason: ReasonFileNotFound, Detail: "file not found: " + rule.Filename},
			FailMark+" script: file not found: "+rule.Filename)
		return
	}
	text, err := files.ReadText(handle)
	if err != nil {
		detail := fmt.Sprintf("could not read %s (%s): %v", rule.Filename, handle.Path, err)
		ev.fail(RuleResult{Category: CategoryScript, Label: rule.Label(), Reason: ReasonReadFailed, Detail: detail},
			FailMark+" script: "+detail)
		return
	}

	ev.add(RuleResult{Category: CategoryScript, Passed: true, Label: rule.Label(), Detail: handle.Path})
	ev.line(fmt.Sprintf("script: found file %s (%s)", rule.Filename, handle.Path))
	ev.line("Checks:")
	lowered := strings.ToLower(text)
	var missing []string
	for _, term := range rule.Terms {
		passed := strings.Contains(lowered, strings.ToLower(term))
		label := fmt.Sprintf("contains: %q", term)
		rr := RuleResult{Category: CategoryScript, Passed: passed, Label: label}
		if passed {
			ev.result.Script.Passed++
		} else {
			rr.Reason = ReasonTermMissing
			rr.Detail = "missing from " + rule.Filename
			missing = append(missing, term)
		}
		ev.add(rr)
		ev.line(markFor(passed) + " " + label)
	}
	if len(rule.Terms) > 0 {
		ev.line(fmt.Sprintf("Total: %s matches", ev.result.Script))
	}
	if len(missing) > 0 {
		ev.line("Missing:")
		for _, term := range missing {
			ev.line(" - " + term)
		}
	}
}

// evaluation accumulates a Result while rules run.
type evaluation struct {
	result Result
}

func (ev *evaluation) add(rr RuleResult) {
	ev.result.Rules = append(ev.result.Rules, rr)
	if !rr.Passed {
		ev.result.Passed = false
	}
}

func (ev *evaluation) fail(rr RuleResult, message string) {
	rr.Passed = false
	ev.add(rr)
	ev.line(message)
}

func (ev *evaluation) line(message string) {
	ev.result.Messages = append(ev.result.Messages, message)
}

func failedBlock(reason Reason, message string) Result {
	return Result{
		Passed:   false,
		Rules:    []RuleResult{{Passed: false, Label: "check", Reason: reason, Detail: message}},
		Messages: []string{FailMark + " " + message},
	}
}

func okOrFail(passed bool) string {
	if passed {
		return "OK"
	}
	return "FAIL"
}
