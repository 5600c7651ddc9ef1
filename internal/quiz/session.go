package quiz

import (
	"errors"
	"fmt"
	"io"
	"log"

	"coursecheck/internal/config"
)

var (
	// ErrUnknownAnswer indicates an answer id that the question does not define.
	ErrUnknownAnswer = errors.New("unknown answer")
	// ErrKindDisabled indicates the question kind is switched off in config.
	ErrKindDisabled = errors.New("question kind is disabled")
	// ErrWrongKind indicates an interaction that does not fit the question kind.
	ErrWrongKind = errors.New("interaction does not match question kind")
)

// Session applies quiz interactions to lesson state using one config.
type Session struct {
	cfg    config.Quiz
	logger *log.Logger
}

// NewSession builds a Session. A nil logger discards debug output.
func NewSession(cfg config.Quiz, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{cfg: cfg, logger: logger}
}

// Enabled reports whether questions of kind may be answered.
func (s *Session) Enabled(kind Kind) bool {
	switch kind {
	case KindMultiple:
		return s.cfg.EnableMultiple
	case KindTrueFalse:
		return s.cfg.EnableTrueFalse
	default:
		return s.cfg.EnableSingle
	}
}

// Playable filters questions down to the enabled kinds.
func (s *Session) Playable(questions []Question) []Question {
	var out []Question
	for _, q := range questions {
		if s.Enabled(q.Kind) {
			out = append(out, q)
		}
	}
	return out
}

// StateFor returns the state of q in lesson, creating it on first access.
// New states get a stable shuffled answer order when randomizing is on.
func (s *Session) StateFor(lesson *LessonState, q Question) *QuestionState {
	if lesson.Questions == nil {
		lesson.Questions = map[string]*QuestionState{}
	}
	if state, ok := lesson.Questions[q.ID]; ok {
		return state
	}
	state := NewQuestionState(q)
	if s.cfg.RandomizeAnswersOnOpen {
		Shuffle(state.ShuffledOrder, ShuffleSeed(lesson.LessonPath, q.ID))
	}
	lesson.Questions[q.ID] = state
	return state
}

// OrderedAnswers returns the answers of q in the order the learner sees them.
func (s *Session) OrderedAnswers(lesson *LessonState, q Question) []Answer {
	state := s.StateFor(lesson, q)
	out := make([]Answer, 0, len(q.Answers))
	for _, idx := range state.ShuffledOrder {
		if idx >= 0 && idx < len(q.Answers) {
			out = append(out, q.Answers[idx])
		}
	}
	if len(out) != len(q.Answers) {
		return q.Answers
	}
	return out
}

// Answer applies a click on answerID for a single-choice or true/false question.
func (s *Session) Answer(lesson *LessonState, q Question, answerID string) (Status, error) {
	if err := s.check(q); err != nil {
		return StatusOf(lesson.Questions[q.ID]), err
	}
	if q.Kind == KindMultiple {
		return StatusOf(lesson.Questions[q.ID]), fmt.Errorf("answer %s: %w (use toggle and submit)", q.ID, ErrWrongKind)
	}
	chosen, ok := q.Answer(answerID)
	if !ok {
		return StatusOf(lesson.Questions[q.ID]), fmt.Errorf("question %s: %w %q", q.ID, ErrUnknownAnswer, answerID)
	}
	state := s.StateFor(lesson, q)
	ApplyAttempt(state, chosen, s.cfg.MaxAttemptsPerQuestion)
	status := StatusOf(state)
	s.debugf("answer %s/%s -> %s (attempts %d)", q.ID, answerID, status, state.AttemptsUsed)
	return status, nil
}

// Toggle flips answerID in the selection of a multiple-select question.
func (s *Session) Toggle(lesson *LessonState, q Question, answerID string) (bool, error) {
	if err := s.check(q); err != nil {
		return false, err
	}
	if q.Kind != KindMultiple {
		return false, fmt.Errorf("toggle %s: %w", q.ID, ErrWrongKind)
	}
	if _, ok := q.Answer(answerID); !ok {
		return false, fmt.Errorf("question %s: %w %q", q.ID, ErrUnknownAnswer, answerID)
	}
	selected := ToggleSelection(s.StateFor(lesson, q), answerID)
	s.debugf("toggle %s/%s -> %v", q.ID, answerID, selected)
	return selected, nil
}

// Submit evaluates the selection of a multiple-select question.
func (s *Session) Submit(lesson *LessonState, q Question) (Status, error) {
	if err := s.check(q); err != nil {
		return StatusOf(lesson.Questions[q.ID]), err
	}
	if q.Kind != KindMultiple {
		return StatusOf(lesson.Questions[q.ID]), fmt.Errorf("submit %s: %w", q.ID, ErrWrongKind)
	}
	state := s.StateFor(lesson, q)
	Submit(q, state, s.cfg.MaxAttemptsPerQuestion)
	status := StatusOf(state)
	s.debugf("submit %s %v -> %s (attempts %d)", q.ID, state.SelectedIDs(), status, state.AttemptsUsed)
	return status, nil
}

// CanAdvance reports whether navigation past a slide holding questions is
// allowed. With guarding off it always is.
func (s *Session) CanAdvance(lesson *LessonState, questions []Question) bool {
	if !s.cfg.GuardSlideNavigation {
		return true
	}
	return !HasUnfinished(s.Playable(questions), lesson)
}

// Describe renders the short result line shown under a question.
func (s *Session) Describe(state *QuestionState) string {
	switch StatusOf(state) {
	case StatusCompletedCorrect:
		return "Correct"
	case StatusCompletedIncorrect:
		return "Incorrect"
	}
	if left := AttemptsLeft(state, s.cfg.MaxAttemptsPerQuestion); left > 0 {
		return fmt.Sprintf("Attempts left: %d", left)
	}
	return ""
}

func (s *Session) check(q Question) error {
	if !s.Enabled(q.Kind) {
		return fmt.Errorf("question %s: %w: %s", q.ID, ErrKindDisabled, q.Kind)
	}
	return nil
}

func (s *Session) debugf(format string, args ...any) {
	if s.cfg.DebugLogging {
		s.logger.Printf("[quiz] "+format, args...)
	}
}
