package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"coursecheck/internal/lesson"
	"coursecheck/internal/quiz"
)

// runSlides builds the handler for the slides command.
func runSlides(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		wf := bindProjectFlags(flags)
		index := flags.Int("index", 1, "Slide to show, starting at 1")
		checks := flags.Bool("checks", false, "Append a check link after each check block")
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
			fmt.Fprintf(stderr, "Slides failed: %v\n", err)
			return ExitError
		}

		nav := lesson.NewNavigator(qc.lesson, qc.session, qc.state)
		code := ExitOK
		for nav.Index() < *index-1 && nav.Index() < nav.Len()-1 {
			if _, err := nav.Move(1); err != nil {
				if errors.Is(err, lesson.ErrNavigationBlocked) {
					fmt.Fprintf(stderr, "Stopped at slide %s: %v\n", nav.Indicator(), err)
					code = ExitError
					break
				}
				fmt.Fprintf(stderr, "Slides failed: %v\n", err)
				return ExitError
			}
		}

		slide, ok := nav.Current()
		if !ok {
			fmt.Fprintf(stdout, "%s\n", qc.ws.render.Title("Slide "+nav.Indicator()))
			return code
		}
		fmt.Fprintln(stdout, qc.ws.render.Title(fmt.Sprintf("%s  Slide %s", qc.lesson.Title, nav.Indicator())))
		fmt.Fprintln(stdout, qc.expandQuestions(slide, slide.Render(*checks)))
		return code
	}
}

// expandQuestions swaps quiz markers for the rendered questions. Markers of
// disabled kinds are dropped.
func (qc *quizContext) expandQuestions(slide lesson.Slide, md string) string {
	for _, q := range slide.Questions {
		replacement := ""
		if qc.session.Enabled(q.Kind) {
			replacement = qc.render(q)
		}
		md = strings.ReplaceAll(md, quiz.Marker(q.ID), replacement)
	}
	return strings.TrimSpace(md)
}
