package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"coursecheck/internal/lesson"
	"coursecheck/internal/quiz"
	"coursecheck/internal/quizstate"
)

// answerList collects repeated --answer flags.
type answerList []string

func (a *answerList) String() string {
	return strings.Join(*a, ",")
}

func (a *answerList) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("answer id is empty")
	}
	*a = append(*a, value)
	return nil
}

// runQuiz builds the handler for the quiz command and its subcommands.
func runQuiz(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if len(args) == 0 {
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if isHelpArg(args[0]) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		switch args[0] {
		case "list":
			return quizList(cmd, args[1:], stdout, stderr)
		case "answer":
			return quizAnswer(cmd, args[1:], stdout, stderr)
		case "reset":
			return quizReset(cmd, args[1:], stdout, stderr)
		default:
			fmt.Fprintf(stderr, "Unknown quiz command: %s\n\n", args[0])
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
	}
}

// quizContext is an opened lesson together with its quiz state.
type quizContext struct {
	ws      *workspace
	lesson  lesson.Lesson
	key     string
	session *quiz.Session
	store   *quizstate.Store
	cache   *quizstate.Cache
	state   *quiz.LessonState
}

func openQuiz(wf workspaceFlags, lessonPath string, stdout, stderr io.Writer) (*quizContext, error) {
	ws, err := openWorkspace(wf, stdout, stderr)
	if err != nil {
		return nil, err
	}
	l, err := lesson.Load(lessonPath)
	if err != nil {
		return nil, err
	}
	store := ws.store()
	cache := quizstate.NewCache(store)
	key := ws.lessonKey(lessonPath)
	return &quizContext{
		ws:      ws,
		lesson:  l,
		key:     key,
		session: ws.session(),
		store:   store,
		cache:   cache,
		state:   cache.Get(key),
	}, nil
}

func (qc *quizContext) render(q quiz.Question) string {
	answers := qc.session.OrderedAnswers(qc.state, q)
	state := qc.session.StateFor(qc.state, q)
	return qc.ws.render.Question(q, answers, state, qc.session.Describe(state))
}

func quizList(cmd *Command, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(cmd.Name+" list", flag.ContinueOnError)
	flags.SetOutput(stderr)
	wf := bindProjectFlags(flags)
	if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
		return code
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(stderr, "expected exactly one lesson")
		printCommandUsage(cmd, stderr)
		return ExitUsage
	}

	qc, err := openQuiz(*wf, flags.Arg(0), stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
		return ExitError
	}
	questions := qc.lesson.Questions()
	if len(questions) == 0 {
		fmt.Fprintln(stdout, "No questions.")
		return ExitOK
	}
	for i, q := range questions {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		if !qc.session.Enabled(q.Kind) {
			fmt.Fprintf(stdout, "[%s] (%s) disabled by config\n", q.ID, q.Kind)
			continue
		}
		fmt.Fprintln(stdout, qc.render(q))
	}
	return ExitOK
}

func quizAnswer(cmd *Command, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(cmd.Name+" answer", flag.ContinueOnError)
	flags.SetOutput(stderr)
	wf := bindProjectFlags(flags)
	lessonPath := flags.String("lesson", "", "Lesson markdown file")
	questionID := flags.String("question", "", "Question id")
	var answers answerList
	flags.Var(&answers, "answer", "Answer id (repeat to select several)")
	if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
		return code
	}
	if strings.TrimSpace(*lessonPath) == "" || strings.TrimSpace(*questionID) == "" || len(answers) == 0 {
		fmt.Fprintln(stderr, "--lesson, --question, and --answer are required")
		printCommandUsage(cmd, stderr)
		return ExitUsage
	}

	qc, err := openQuiz(*wf, *lessonPath, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
		return ExitError
	}
	q, ok := qc.lesson.Question(strings.TrimSpace(*questionID))
	if !ok {
		fmt.Fprintf(stderr, "Quiz failed: question %q not found in %s\n", *questionID, *lessonPath)
		return ExitError
	}

	if err := qc.apply(q, answers); err != nil {
		fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
		return ExitError
	}
	if err := qc.cache.Flush(qc.key); err != nil {
		fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
		return ExitError
	}
	fmt.Fprintln(stdout, qc.render(q))
	return ExitOK
}

// apply plays answers against q: each one is an attempt for single-choice
// and true/false questions, while a multiple-select question toggles them
// all and submits once.
func (qc *quizContext) apply(q quiz.Question, answers []string) error {
	if q.Kind != quiz.KindMultiple {
		for _, id := range answers {
			status, err := qc.session.Answer(qc.state, q, id)
			if err != nil {
				return err
			}
			if status == quiz.StatusCompletedCorrect || status == quiz.StatusCompletedIncorrect {
				break
			}
		}
		return nil
	}
	for _, id := range answers {
		if _, err := qc.session.Toggle(qc.state, q, id); err != nil {
			return err
		}
	}
	_, err := qc.session.Submit(qc.state, q)
	return err
}

func quizReset(cmd *Command, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(cmd.Name+" reset", flag.ContinueOnError)
	flags.SetOutput(stderr)
	wf := bindProjectFlags(flags)
	lessonPath := flags.String("lesson", "", "Lesson markdown file")
	questionID := flags.String("question", "", "Question id (default: every question)")
	if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
		return code
	}
	if strings.TrimSpace(*lessonPath) == "" {
		fmt.Fprintln(stderr, "--lesson is required")
		printCommandUsage(cmd, stderr)
		return ExitUsage
	}

	qc, err := openQuiz(*wf, *lessonPath, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
		return ExitError
	}

	id := strings.TrimSpace(*questionID)
	if id == "" {
		if err := qc.store.Delete(qc.key); err != nil {
			fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Reset %d questions in %s\n", len(qc.lesson.Questions()), qc.key)
		return ExitOK
	}

	if _, ok := qc.lesson.Question(id); !ok {
		fmt.Fprintf(stderr, "Quiz failed: question %q not found in %s\n", id, *lessonPath)
		return ExitError
	}
	if state, ok := qc.state.Get(id); ok {
		state.Reset()
	}
	if err := qc.cache.Flush(qc.key); err != nil {
		fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(stdout, "Reset %s in %s\n", id, qc.key)
	return ExitOK
}
