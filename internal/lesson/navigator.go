package lesson

import (
	"errors"
	"fmt"

	"coursecheck/internal/link"
	"coursecheck/internal/quiz"
)

// ErrNavigationBlocked is returned when a forward move would skip unfinished questions.
var ErrNavigationBlocked = errors.New("finish the questions on this slide first")

// Navigator tracks the current slide of one lesson.
type Navigator struct {
	lesson  Lesson
	state   *quiz.LessonState
	session *quiz.Session
	index   int
}

// NewNavigator starts at the first slide.
func NewNavigator(l Lesson, session *quiz.Session, state *quiz.LessonState) *Navigator {
	return &Navigator{lesson: l, state: state, session: session}
}

// Index returns the zero-based current slide.
func (n *Navigator) Index() int {
	return n.index
}

// Len returns the slide count.
func (n *Navigator) Len() int {
	return len(n.lesson.Slides)
}

// Current returns the current slide. ok is false for an empty lesson.
func (n *Navigator) Current() (Slide, bool) {
	if len(n.lesson.Slides) == 0 {
		return Slide{}, false
	}
	return n.lesson.Slides[n.index], true
}

// Goto jumps to index, clamped to the slide range. Moving forward past a
// slide with unfinished questions fails when the session guards navigation.
func (n *Navigator) Goto(index int) (int, error) {
	if len(n.lesson.Slides) == 0 {
		n.index = 0
		return 0, nil
	}
	target := min(max(index, 0), len(n.lesson.Slides)-1)
	if target > n.index {
		current := n.lesson.Slides[n.index]
		if !n.session.CanAdvance(n.state, current.Questions) {
			return n.index, ErrNavigationBlocked
		}
	}
	n.index = target
	return n.index, nil
}

// Move shifts the current slide by delta.
func (n *Navigator) Move(delta int) (int, error) {
	return n.Goto(n.index + delta)
}

// Follow applies a slide link: dir=next moves forward, anything else back.
func (n *Navigator) Follow(l link.Link) (int, error) {
	if dir, _ := l.Arg("dir"); dir == "next" {
		return n.Move(1)
	}
	return n.Move(-1)
}

// Indicator renders "current/total", or "-/-" for an empty lesson.
func (n *Navigator) Indicator() string {
	if len(n.lesson.Slides) == 0 {
		return "-/-"
	}
	return fmt.Sprintf("%d/%d", n.index+1, len(n.lesson.Slides))
}
