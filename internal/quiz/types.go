package quiz

import "sort"

// Kind is the question style.
type Kind string

const (
	KindSingle    Kind = "single"
	KindMultiple  Kind = "multiple"
	KindTrueFalse Kind = "truefalse"
)

// Answer is one choice of a question. ID is unique within the question.
type Answer struct {
	ID        string
	Text      string
	IsCorrect bool
}

// Question is a parsed quiz block. ID is unique within a lesson once markers
// have been assigned.
type Question struct {
	ID      string
	Kind    Kind
	Text    string
	Answers []Answer
}

// Answer returns the answer with id.
func (q Question) Answer(id string) (Answer, bool) {
	for _, a := range q.Answers {
		if a.ID == id {
			return a, true
		}
	}
	return Answer{}, false
}

// CorrectIDs returns the ids of answers flagged correct, in declaration order.
func (q Question) CorrectIDs() []string {
	var ids []string
	for _, a := range q.Answers {
		if a.IsCorrect {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// QuestionState tracks a learner's progress on one question.
// Once IsCompleted is set the state only changes through Reset.
type QuestionState struct {
	QuestionID    string
	AttemptsUsed  int
	IsCompleted   bool
	IsCorrect     bool
	ShuffledOrder []int
	Selected      map[string]struct{}
}

// NewQuestionState returns an unstarted state with the identity answer order.
func NewQuestionState(q Question) *QuestionState {
	order := make([]int, len(q.Answers))
	for i := range order {
		order[i] = i
	}
	return &QuestionState{QuestionID: q.ID, ShuffledOrder: order, Selected: map[string]struct{}{}}
}

// IsSelected reports whether answerID is currently selected.
func (s *QuestionState) IsSelected(answerID string) bool {
	_, ok := s.Selected[answerID]
	return ok
}

// SelectedIDs returns the selected answer ids sorted.
func (s *QuestionState) SelectedIDs() []string {
	ids := make([]string, 0, len(s.Selected))
	for id := range s.Selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reset returns the question to NotStarted, keeping its answer order.
func (s *QuestionState) Reset() {
	s.AttemptsUsed = 0
	s.IsCompleted = false
	s.IsCorrect = false
	s.Selected = map[string]struct{}{}
}

// LessonState holds every question state of one lesson, keyed by question id.
type LessonState struct {
	LessonPath string
	Questions  map[string]*QuestionState
}

// NewLessonState returns an empty state for lessonPath.
func NewLessonState(lessonPath string) *LessonState {
	return &LessonState{LessonPath: lessonPath, Questions: map[string]*QuestionState{}}
}

// Get returns the state for questionID, if present.
func (l *LessonState) Get(questionID string) (*QuestionState, bool) {
	if l == nil {
		return nil, false
	}
	s, ok := l.Questions[questionID]
	return s, ok
}

// Status is the position of a question in its state machine.
type Status string

const (
	StatusNotStarted         Status = "not_started"
	StatusInProgress         Status = "in_progress"
	StatusCompletedCorrect   Status = "completed_correct"
	StatusCompletedIncorrect Status = "completed_incorrect"
)

// StatusOf derives the status of s. A nil state is NotStarted.
func StatusOf(s *QuestionState) Status {
	switch {
	case s == nil:
		return StatusNotStarted
	case s.IsCompleted && s.IsCorrect:
		return StatusCompletedCorrect
	case s.IsCompleted:
		return StatusCompletedIncorrect
	case s.AttemptsUsed > 0 || len(s.Selected) > 0:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}
