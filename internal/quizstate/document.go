package quizstate

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"coursecheck/internal/quiz"
)

// ErrCorruptState marks a stored document that cannot be turned back into a lesson state.
var ErrCorruptState = errors.New("corrupt quiz state")

// lessonDocument is the on-disk shape of one lesson's quiz state.
type lessonDocument struct {
	LessonPath string             `yaml:"lesson_path"`
	Questions  []questionDocument `yaml:"questions"`
}

type questionDocument struct {
	ID            string   `yaml:"id"`
	AttemptsUsed  int      `yaml:"attempts_used"`
	IsCompleted   bool     `yaml:"is_completed"`
	IsCorrect     bool     `yaml:"is_correct"`
	ShuffledOrder []int    `yaml:"shuffled_order,flow"`
	Selected      []string `yaml:"selected,flow"`
}

// Encode renders lesson as a YAML document. Questions are sorted by id and
// selections by answer id so equal states encode to equal bytes.
func Encode(lesson *quiz.LessonState) ([]byte, error) {
	doc := lessonDocument{LessonPath: lesson.LessonPath}
	ids := make([]string, 0, len(lesson.Questions))
	for id := range lesson.Questions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s := lesson.Questions[id]
		if s == nil {
			continue
		}
		doc.Questions = append(doc.Questions, questionDocument{
			ID:            id,
			AttemptsUsed:  s.AttemptsUsed,
			IsCompleted:   s.IsCompleted,
			IsCorrect:     s.IsCorrect,
			ShuffledOrder: append([]int(nil), s.ShuffledOrder...),
			Selected:      s.SelectedIDs(),
		})
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode quiz state: %w", err)
	}
	return data, nil
}

// Decode parses a document produced by Encode.
func Decode(data []byte) (*quiz.LessonState, error) {
	var doc lessonDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if doc.LessonPath == "" {
		return nil, fmt.Errorf("%w: lesson_path is required", ErrCorruptState)
	}
	lesson := quiz.NewLessonState(doc.LessonPath)
	for i, q := range doc.Questions {
		if q.ID == "" {
			return nil, fmt.Errorf("%w: questions[%d].id is required", ErrCorruptState, i)
		}
		if q.AttemptsUsed < 0 {
			return nil, fmt.Errorf("%w: questions[%d].attempts_used is negative", ErrCorruptState, i)
		}
		if q.IsCorrect && !q.IsCompleted {
			return nil, fmt.Errorf("%w: questions[%d] is correct but not completed", ErrCorruptState, i)
		}
		state := &quiz.QuestionState{
			QuestionID:    q.ID,
			AttemptsUsed:  q.AttemptsUsed,
			IsCompleted:   q.IsCompleted,
			IsCorrect:     q.IsCorrect,
			ShuffledOrder: q.ShuffledOrder,
			Selected:      make(map[string]struct{}, len(q.Selected)),
		}
		if state.ShuffledOrder == nil {
			state.ShuffledOrder = []int{}
		}
		for _, id := range q.Selected {
			state.Selected[id] = struct{}{}
		}
		lesson.Questions[q.ID] = state
	}
	return lesson, nil
}
