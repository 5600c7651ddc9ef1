package lesson

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coursecheck/internal/quiz"
)

// Slide is one page of a lesson with its quiz blocks replaced by markers.
type Slide struct {
	Index     int
	Markdown  string
	Questions []quiz.Question
	Checks    []string
}

// Lesson is a markdown file split into slides.
type Lesson struct {
	Path   string
	Title  string
	Slides []Slide
}

// Load reads and parses the lesson at path.
func Load(path string) (Lesson, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lesson{}, fmt.Errorf("read lesson: %w", err)
	}
	return Parse(path, string(data)), nil
}

// Parse converts quiz blocks to markers across the whole document, so ids are
// unique per lesson, then splits the result into slides.
func Parse(path, markdown string) Lesson {
	converted, questions := quiz.ReplaceBlocksWithMarkers(strings.ReplaceAll(markdown, "\r\n", "\n"))
	byID := make(map[string]quiz.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	l := Lesson{Path: path, Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	for i, text := range SplitSlides(converted) {
		slide := Slide{Index: i, Markdown: text, Checks: CheckBlocks(text)}
		for _, id := range quiz.MarkerIDs(text) {
			if q, ok := byID[id]; ok {
				slide.Questions = append(slide.Questions, q)
			}
		}
		l.Slides = append(l.Slides, slide)
	}
	return l
}

// Questions returns every question of the lesson in slide order.
func (l Lesson) Questions() []quiz.Question {
	var out []quiz.Question
	for _, s := range l.Slides {
		out = append(out, s.Questions...)
	}
	return out
}

// Question finds a question by id.
func (l Lesson) Question(id string) (quiz.Question, bool) {
	for _, s := range l.Slides {
		for _, q := range s.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return quiz.Question{}, false
}

// Render prepares a slide for display: check links are injected when
// withCheckLinks is set and media links are normalized.
func (s Slide) Render(withCheckLinks bool) string {
	md := s.Markdown
	if withCheckLinks {
		md = InjectCheckLinks(md)
	}
	return PreprocessMediaLinks(md)
}
