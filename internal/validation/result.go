package validation

import (
	"fmt"
	"strings"
)

// Reason explains why a rule failed.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonObjectNotFound    Reason = "object_not_found"
	ReasonTypeNotFound      Reason = "type_not_found"
	ReasonComponentNotFound Reason = "component_not_found"
	ReasonFileNotFound      Reason = "file_not_found"
	ReasonMissingFilename   Reason = "missing_filename"
	ReasonReadFailed        Reason = "read_failed"
	ReasonTermMissing       Reason = "term_missing"
	ReasonEmptyBlock        Reason = "empty_block"
	ReasonNoRules           Reason = "no_rules"
)

// Report marks prefixed to every rule line.
const (
	PassMark = "V"
	FailMark = "X"
)

// Category groups rules for tallies.
type Category string

const (
	CategoryObject    Category = "object"
	CategoryComponent Category = "component"
	CategoryScript    Category = "script"
)

// RuleResult is the outcome of one rule, or one contains term of a script rule.
type RuleResult struct {
	Category Category
	Passed   bool
	Label    string
	Detail   string
	Reason   Reason
}

// Tally counts passed rules against the total in one category.
type Tally struct {
	Passed int
	Total  int
}

func (t *Tally) record(passed bool) {
	t.Total++
	if passed {
		t.Passed++
	}
}

// String renders "passed/total".
func (t Tally) String() string {
	return fmt.Sprintf("%d/%d", t.Passed, t.Total)
}

// Result is the evaluation of a whole check block.
type Result struct {
	Passed     bool
	Objects    Tally
	Components Tally
	Script     Tally
	Rules      []RuleResult
	Messages   []string
}

// Report joins the ordered messages into the text shown to the learner.
func (r Result) Report() string {
	return strings.Join(r.Messages, "\n")
}

// Failures returns the failed rule results in evaluation order.
func (r Result) Failures() []RuleResult {
	var out []RuleResult
	for _, rr := range r.Rules {
		if !rr.Passed {
			out = append(out, rr)
		}
	}
	return out
}

func markFor(passed bool) string {
	if passed {
		return PassMark
	}
	return FailMark
}
