package quiz

import "testing"

func singleQuestion() Question {
	return Question{
		ID:   "q1",
		Kind: KindSingle,
		Text: "Pick one",
		Answers: []Answer{
			{ID: "a0", Text: "Right", IsCorrect: true},
			{ID: "a1", Text: "Wrong"},
			{ID: "a2", Text: "Also wrong"},
		},
	}
}

func multipleQuestion() Question {
	return Question{
		ID:   "m1",
		Kind: KindMultiple,
		Text: "Pick many",
		Answers: []Answer{
			{ID: "a0", Text: "A", IsCorrect: true},
			{ID: "a1", Text: "B", IsCorrect: true},
			{ID: "a2", Text: "C"},
		},
	}
}

// TestApplyAttemptExhaustsAttempts verifies two wrong answers close a question with max 2.
func TestApplyAttemptExhaustsAttempts(t *testing.T) {
	q := singleQuestion()
	state := NewQuestionState(q)

	ApplyAttempt(state, q.Answers[1], 2)
	if StatusOf(state) != StatusInProgress || state.AttemptsUsed != 1 {
		t.Fatalf("expected in progress after first miss, got %s/%d", StatusOf(state), state.AttemptsUsed)
	}
	if AttemptsLeft(state, 2) != 1 {
		t.Fatalf("expected one attempt left, got %d", AttemptsLeft(state, 2))
	}

	ApplyAttempt(state, q.Answers[2], 2)
	if StatusOf(state) != StatusCompletedIncorrect {
		t.Fatalf("expected completed incorrect, got %s", StatusOf(state))
	}

	ApplyAttempt(state, q.Answers[0], 2)
	if StatusOf(state) != StatusCompletedIncorrect || state.AttemptsUsed != 2 {
		t.Fatalf("expected completed state to be frozen, got %s/%d", StatusOf(state), state.AttemptsUsed)
	}
}

func TestApplyAttemptCorrectAfterMiss(t *testing.T) {
	q := singleQuestion()
	state := NewQuestionState(q)
	ApplyAttempt(state, q.Answers[1], 2)
	ApplyAttempt(state, q.Answers[0], 2)
	if StatusOf(state) != StatusCompletedCorrect {
		t.Fatalf("expected completed correct, got %s", StatusOf(state))
	}
	if !state.IsSelected("a0") || len(state.Selected) != 1 {
		t.Fatalf("expected selection to hold the last answer, got %v", state.SelectedIDs())
	}
}

func TestApplyAttemptClampsMaxAttempts(t *testing.T) {
	q := singleQuestion()
	state := NewQuestionState(q)
	ApplyAttempt(state, q.Answers[1], 0)
	if StatusOf(state) != StatusCompletedIncorrect {
		t.Fatalf("expected a zero budget to behave as one attempt, got %s", StatusOf(state))
	}
}

func TestIsSelectionCorrect(t *testing.T) {
	q := multipleQuestion()
	cases := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"exact", []string{"a0", "a1"}, true},
		{"subset", []string{"a0"}, false},
		{"superset", []string{"a0", "a1", "a2"}, false},
		{"empty", nil, false},
		{"disjoint", []string{"a2"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := NewQuestionState(q)
			for _, id := range tc.selected {
				ToggleSelection(state, id)
			}
			if got := IsSelectionCorrect(q, state); got != tc.want {
				t.Fatalf("IsSelectionCorrect(%v) = %v, want %v", tc.selected, got, tc.want)
			}
		})
	}
}

func TestIsSelectionCorrectWithoutCorrectAnswers(t *testing.T) {
	q := Question{ID: "none", Kind: KindMultiple, Answers: []Answer{{ID: "a0"}, {ID: "a1"}}}
	state := NewQuestionState(q)
	if IsSelectionCorrect(q, state) {
		t.Fatalf("expected empty selection to fail when no answer is correct")
	}
	ToggleSelection(state, "a0")
	if IsSelectionCorrect(q, state) {
		t.Fatalf("expected any selection to fail when no answer is correct")
	}
}

func TestToggleSelectionNeverEvaluates(t *testing.T) {
	q := multipleQuestion()
	state := NewQuestionState(q)
	if !ToggleSelection(state, "a0") {
		t.Fatalf("expected a0 to be selected")
	}
	ToggleSelection(state, "a1")
	if state.AttemptsUsed != 0 || state.IsCompleted {
		t.Fatalf("expected toggling to leave attempts untouched, got %+v", state)
	}
	if ToggleSelection(state, "a1") {
		t.Fatalf("expected second toggle to deselect a1")
	}
	if StatusOf(state) != StatusInProgress {
		t.Fatalf("expected a selection to count as in progress, got %s", StatusOf(state))
	}
}

func TestSubmitMultipleSelect(t *testing.T) {
	q := multipleQuestion()
	state := NewQuestionState(q)

	ToggleSelection(state, "a0")
	Submit(q, state, 2)
	if StatusOf(state) != StatusInProgress || state.AttemptsUsed != 1 {
		t.Fatalf("expected subset to cost an attempt, got %s/%d", StatusOf(state), state.AttemptsUsed)
	}

	ToggleSelection(state, "a1")
	Submit(q, state, 2)
	if StatusOf(state) != StatusCompletedCorrect {
		t.Fatalf("expected exact selection to complete correct, got %s", StatusOf(state))
	}

	ToggleSelection(state, "a2")
	if state.IsSelected("a2") {
		t.Fatalf("expected selection to be frozen after completion")
	}
}

func TestResetLeavesTerminalState(t *testing.T) {
	q := singleQuestion()
	state := NewQuestionState(q)
	state.ShuffledOrder = []int{2, 0, 1}
	ApplyAttempt(state, q.Answers[0], 2)
	state.Reset()
	if StatusOf(state) != StatusNotStarted || state.AttemptsUsed != 0 {
		t.Fatalf("expected reset to not started, got %s", StatusOf(state))
	}
	if len(state.ShuffledOrder) != 3 || state.ShuffledOrder[0] != 2 {
		t.Fatalf("expected reset to keep the answer order, got %v", state.ShuffledOrder)
	}
}

func TestHasUnfinished(t *testing.T) {
	q1 := singleQuestion()
	q2 := multipleQuestion()
	questions := []Question{q1, q2}

	if !HasUnfinished(questions, nil) {
		t.Fatalf("expected nil lesson to be unfinished")
	}
	if HasUnfinished(nil, nil) {
		t.Fatalf("expected no questions to be finished")
	}

	lesson := NewLessonState("lesson.md")
	s1 := NewQuestionState(q1)
	ApplyAttempt(s1, q1.Answers[0], 2)
	lesson.Questions[q1.ID] = s1
	if !HasUnfinished(questions, lesson) {
		t.Fatalf("expected missing question to be unfinished")
	}

	s2 := NewQuestionState(q2)
	lesson.Questions[q2.ID] = s2
	if !HasUnfinished(questions, lesson) {
		t.Fatalf("expected open question to be unfinished")
	}

	Submit(q2, s2, 1)
	if HasUnfinished(questions, lesson) {
		t.Fatalf("expected every question to be finished")
	}
}

func TestShuffleIsDeterministic(t *testing.T) {
	seed := ShuffleSeed("Lessons/intro.md", "q1")
	if seed != ShuffleSeed("Lessons/intro.md", "q1") {
		t.Fatalf("expected the same seed for the same inputs")
	}
	if seed == ShuffleSeed("Lessons/intro.md", "q2") {
		t.Fatalf("expected different questions to get different seeds")
	}

	a := []int{0, 1, 2, 3, 4, 5}
	b := []int{0, 1, 2, 3, 4, 5}
	Shuffle(a, seed)
	Shuffle(b, seed)
	seen := map[int]bool{}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical permutations, got %v and %v", a, b)
		}
		seen[a[i]] = true
	}
	if len(seen) != 6 {
		t.Fatalf("expected a permutation, got %v", a)
	}
}
