package quiz

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// blockPattern matches a fenced ```quiz block and captures its body.
var blockPattern = regexp.MustCompile("```quiz[ \\t]*\\r?\\n([\\s\\S]*?)\\r?\\n```")

// markerPattern matches a marker left by ReplaceBlocksWithMarkers.
var markerPattern = regexp.MustCompile(`\[\[QUIZ:([^\]]+)\]\]`)

// Marker returns the placeholder token that stands in for question id.
func Marker(id string) string {
	return "[[QUIZ:" + id + "]]"
}

// MarkerIDs lists the question ids of markers in markdown, in order.
func MarkerIDs(markdown string) []string {
	var ids []string
	for _, m := range markerPattern.FindAllStringSubmatch(markdown, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

// ParseQuestions returns every well-formed quiz block in markdown. Malformed
// blocks are skipped.
func ParseQuestions(markdown string) []Question {
	var questions []Question
	for _, m := range blockPattern.FindAllStringSubmatch(markdown, -1) {
		if q, ok := parseBlock(m[1]); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

// ReplaceBlocksWithMarkers swaps each well-formed quiz block for a marker and
// returns the rewritten markdown with the converted questions in document
// order. Colliding ids (compared case-insensitively) get -2, -3, … suffixes.
// Malformed blocks are left in place.
func ReplaceBlocksWithMarkers(markdown string) (string, []Question) {
	var questions []Question
	used := map[string]struct{}{}
	out := blockPattern.ReplaceAllStringFunc(markdown, func(match string) string {
		body := blockPattern.FindStringSubmatch(match)[1]
		q, ok := parseBlock(body)
		if !ok {
			return match
		}
		q.ID = uniqueID(q.ID, used)
		questions = append(questions, q)
		return Marker(q.ID)
	})
	return out, questions
}

func uniqueID(base string, used map[string]struct{}) string {
	id := base
	for n := 2; ; n++ {
		key := strings.ToLower(id)
		if _, taken := used[key]; !taken {
			used[key] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

type parsedAnswer struct {
	text    string
	correct bool
}

// parseBlock reads the key-value body of one quiz block:
//
//	id: q1
//	kind: single
//	text: Question?
//	  continued on an indented line
//	answers:
//	  - text: A
//	    correct: true
//	  - text: B
func parseBlock(body string) (Question, bool) {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	var (
		id, kind, text string
		answers        []parsedAnswer
	)
	for i := 0; i < len(lines); {
		line := strings.TrimRight(lines[i], " \t")
		switch {
		case strings.TrimSpace(line) == "":
			i++
		case hasKey(line, "id:"):
			id = valueOf(line)
			i++
		case hasKey(line, "kind:"):
			kind = valueOf(line)
			i++
		case hasKey(line, "text:"):
			text = valueOf(line)
			i++
			for i < len(lines) && strings.HasPrefix(lines[i], "  ") {
				text += "\n" + strings.TrimSpace(lines[i])
				i++
			}
		case hasKey(line, "answers:"):
			i++
			answers, i = parseAnswers(lines, i, answers)
		default:
			i++
		}
	}

	if id == "" || kind == "" || text == "" || len(answers) == 0 {
		return Question{}, false
	}
	q := Question{ID: id, Kind: ParseKind(kind), Text: text}
	for idx, a := range answers {
		q.Answers = append(q.Answers, Answer{ID: "a" + strconv.Itoa(idx), Text: a.text, IsCorrect: a.correct})
	}
	return q, true
}

// parseAnswers consumes "- " items starting at i, with their continuation
// lines indented by at least four spaces, and returns the next unread index.
func parseAnswers(lines []string, i int, answers []parsedAnswer) ([]parsedAnswer, int) {
	for i < len(lines) && strings.HasPrefix(strings.TrimLeft(lines[i], " \t"), "- ") {
		item := strings.TrimLeft(lines[i], " \t")[2:]
		var a parsedAnswer
		applyAnswerField(&a, item)
		i++
		for i < len(lines) && strings.HasPrefix(lines[i], "    ") {
			applyAnswerField(&a, strings.TrimSpace(lines[i]))
			i++
		}
		if a.text != "" {
			answers = append(answers, a)
		}
	}
	return answers, i
}

func applyAnswerField(a *parsedAnswer, line string) {
	switch {
	case hasKey(line, "text:"):
		a.text = valueOf(line)
	case hasKey(line, "correct:"):
		a.correct = isTruthy(valueOf(line))
	}
}

// ParseKind maps a kind name to a Kind, defaulting to KindSingle.
func ParseKind(value string) Kind {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "multiple":
		return KindMultiple
	case "truefalse":
		return KindTrueFalse
	default:
		return KindSingle
	}
}

func isTruthy(value string) bool {
	return strings.EqualFold(value, "true") || value == "1" || strings.EqualFold(value, "yes")
}

func hasKey(line, key string) bool {
	line = strings.TrimLeft(line, " \t")
	return len(line) >= len(key) && strings.EqualFold(line[:len(key)], key)
}

func valueOf(line string) string {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}
