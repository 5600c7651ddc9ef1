package report

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"coursecheck/internal/quiz"
)

func TestNewRendererModes(t *testing.T) {
	prev := isTerminal
	t.Cleanup(func() { isTerminal = prev })

	isTerminal = func(io.Writer) bool { return false }
	r, err := NewRenderer("auto", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("auto: %v", err)
	}
	if got := r.Headline(true, "check"); got != "OK check" {
		t.Fatalf("expected plain output off a TTY, got %q", got)
	}

	r, err = NewRenderer("always", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("always: %v", err)
	}
	if got := r.Headline(false, ""); !strings.Contains(got, "\x1b[") || !strings.Contains(got, "FAIL") {
		t.Fatalf("expected colored headline, got %q", got)
	}

	r, err = NewRenderer("NEVER", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("never: %v", err)
	}
	if got := r.Skipped("scene-all"); got != "SKIP scene-all" {
		t.Fatalf("unexpected skipped line %q", got)
	}

	if _, err := NewRenderer("rainbow", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected invalid mode to fail")
	}
}

func TestBodyColorsOnlyLeadingMarks(t *testing.T) {
	text := "V object_exists: Player\n  X component_exists: Player.Rigidbody\nVelocity check\nTotal (objects): 1/1\n"
	if got := Plain().Body(text); got != strings.TrimRight(text, "\n") {
		t.Fatalf("expected plain body to be unchanged, got %q", got)
	}

	colored, err := NewRenderer("always", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("always: %v", err)
	}
	lines := strings.Split(colored.Body(text), "\n")
	if !strings.Contains(lines[0], "\x1b[") || !strings.HasSuffix(lines[0], " object_exists: Player") {
		t.Fatalf("expected colored pass mark, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  \x1b[") {
		t.Fatalf("expected indentation to survive, got %q", lines[1])
	}
	if lines[2] != "Velocity check" || lines[3] != "Total (objects): 1/1" {
		t.Fatalf("expected other lines untouched, got %q", lines[2:])
	}
}

func TestQuestionRendering(t *testing.T) {
	q := quiz.Question{
		ID:   "m1",
		Kind: quiz.KindMultiple,
		Text: "Pick\nmany",
		Answers: []quiz.Answer{
			{ID: "a0", Text: "A", IsCorrect: true},
			{ID: "a1", Text: "B"},
		},
	}
	state := quiz.NewQuestionState(q)
	quiz.ToggleSelection(state, "a1")
	got := Plain().Question(q, []quiz.Answer{q.Answers[1], q.Answers[0]}, state, "Attempts left: 2")
	want := "[m1] (multiple) Pick\n    many\n" +
		"  [x] a1 B\n" +
		"  [ ] a0 A\n" +
		"  Status: in_progress | Attempts left: 2"
	if got != want {
		t.Fatalf("unexpected rendering:\n%s\nwant:\n%s", got, want)
	}

	quiz.Submit(q, state, 1)
	got = Plain().Question(q, q.Answers, state, "Incorrect")
	if !strings.Contains(got, "  [ ] a0 A (correct)\n") || !strings.HasSuffix(got, "completed_incorrect | Incorrect") {
		t.Fatalf("unexpected completed rendering:\n%s", got)
	}

	single := quiz.Question{ID: "q", Kind: quiz.KindSingle, Text: "One", Answers: []quiz.Answer{{ID: "a0", Text: "Yes"}}}
	if got := Plain().Question(single, single.Answers, nil, ""); got != "[q] (single) One\n  ( ) a0 Yes\n  Status: not_started" {
		t.Fatalf("unexpected unstarted rendering %q", got)
	}
}
