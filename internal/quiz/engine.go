package quiz

// ApplyAttempt records one answer to a single-choice or true/false question.
// A correct answer completes the question as correct; an incorrect one
// completes it as incorrect once attempts reach max(1, maxAttempts).
// Completed questions are left unchanged.
func ApplyAttempt(state *QuestionState, chosen Answer, maxAttempts int) {
	if state.IsCompleted {
		return
	}
	state.AttemptsUsed = max(0, state.AttemptsUsed) + 1
	state.Selected = map[string]struct{}{chosen.ID: {}}
	switch {
	case chosen.IsCorrect:
		state.IsCompleted = true
		state.IsCorrect = true
	case state.AttemptsUsed >= max(1, maxAttempts):
		state.IsCompleted = true
		state.IsCorrect = false
	}
}

// IsSelectionCorrect reports whether the selected ids equal the question's
// correct ids as sets. A question without correct answers is never satisfied.
func IsSelectionCorrect(q Question, state *QuestionState) bool {
	correct := q.CorrectIDs()
	if len(correct) == 0 || len(correct) != len(state.Selected) {
		return false
	}
	for _, id := range correct {
		if !state.IsSelected(id) {
			return false
		}
	}
	return true
}

// ToggleSelection flips answerID in the selection of a multiple-select
// question and reports whether it is now selected. It never evaluates.
func ToggleSelection(state *QuestionState, answerID string) bool {
	if state.IsCompleted {
		return state.IsSelected(answerID)
	}
	if state.Selected == nil {
		state.Selected = map[string]struct{}{}
	}
	if state.IsSelected(answerID) {
		delete(state.Selected, answerID)
		return false
	}
	state.Selected[answerID] = struct{}{}
	return true
}

// Submit evaluates the current selection of a multiple-select question using
// the same attempt rule as ApplyAttempt.
func Submit(q Question, state *QuestionState, maxAttempts int) {
	if state.IsCompleted {
		return
	}
	state.AttemptsUsed = max(0, state.AttemptsUsed) + 1
	switch {
	case IsSelectionCorrect(q, state):
		state.IsCompleted = true
		state.IsCorrect = true
	case state.AttemptsUsed >= max(1, maxAttempts):
		state.IsCompleted = true
		state.IsCorrect = false
	}
}

// HasUnfinished reports whether any question is missing from lesson or not
// yet completed. A nil lesson has no progress.
func HasUnfinished(questions []Question, lesson *LessonState) bool {
	for _, q := range questions {
		s, ok := lesson.Get(q.ID)
		if !ok || !s.IsCompleted {
			return true
		}
	}
	return false
}

// AttemptsLeft returns how many attempts remain before the question closes.
func AttemptsLeft(state *QuestionState, maxAttempts int) int {
	if state == nil {
		return max(1, maxAttempts)
	}
	if state.IsCompleted {
		return 0
	}
	return max(0, max(1, maxAttempts)-state.AttemptsUsed)
}
