package report

import (
	"strings"

	"coursecheck/internal/quiz"
)

// Question renders a question, its answers in display order, and a status
// line. Selected answers are marked; completed questions reveal the correct ones.
func (r *Renderer) Question(q quiz.Question, answers []quiz.Answer, state *quiz.QuestionState, result string) string {
	var b strings.Builder
	b.WriteString(r.Title("[" + q.ID + "] (" + string(q.Kind) + ")"))
	b.WriteString(" ")
	b.WriteString(strings.ReplaceAll(q.Text, "\n", "\n    "))
	b.WriteString("\n")
	completed := state != nil && state.IsCompleted
	for _, a := range answers {
		selected := state != nil && state.IsSelected(a.ID)
		b.WriteString("  ")
		b.WriteString(selectionBox(q.Kind, selected))
		b.WriteString(" ")
		b.WriteString(a.ID)
		b.WriteString(" ")
		b.WriteString(a.Text)
		if completed && a.IsCorrect {
			b.WriteString(" ")
			b.WriteString(r.stylize("(correct)", okColor))
		}
		b.WriteString("\n")
	}
	b.WriteString("  Status: ")
	b.WriteString(string(quiz.StatusOf(state)))
	if result != "" {
		b.WriteString(" | ")
		b.WriteString(result)
	}
	return b.String()
}

func selectionBox(kind quiz.Kind, selected bool) string {
	if kind == quiz.KindMultiple {
		if selected {
			return "[x]"
		}
		return "[ ]"
	}
	if selected {
		return "(*)"
	}
	return "( )"
}
