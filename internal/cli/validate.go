package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"coursecheck/internal/lesson"
	"coursecheck/internal/rules"
	"coursecheck/internal/scene"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .coursecheck/config.yml)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		resolved, err := resolveConfigPath(*configPath, "")
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		ws, err := openWorkspace(workspaceFlags{config: resolved}, stdout, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		fmt.Fprintln(stdout, "Config OK")

		var problems []string
		if manifest := ws.cfg.Project.SceneManifest; manifest != "" {
			if _, err := scene.LoadManifest(ws.resolve(manifest)); err != nil && !errors.Is(err, os.ErrNotExist) {
				problems = append(problems, err.Error())
			} else if err == nil {
				fmt.Fprintln(stdout, "Scene manifest OK")
			}
		}

		for _, path := range flags.Args() {
			l, err := lesson.Load(path)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s: %v", path, err))
				continue
			}
			lessonProblems := lintLesson(l)
			for _, p := range lessonProblems {
				problems = append(problems, fmt.Sprintf("%s: %s", path, p))
			}
			if len(lessonProblems) == 0 {
				fmt.Fprintf(stdout, "%s: %d slides, %d questions, %d check blocks\n",
					path, len(l.Slides), len(l.Questions()), countChecks(l))
			}
		}

		if len(problems) > 0 {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", strings.Join(problems, "\n"))
			return ExitError
		}
		return ExitOK
	}
}

// lintLesson reports check blocks without recognized rules and leftover quiz
// fences that did not parse.
func lintLesson(l lesson.Lesson) []string {
	var problems []string
	for _, s := range l.Slides {
		for i, raw := range s.Checks {
			if _, err := rules.Parse(raw); err != nil {
				problems = append(problems, fmt.Sprintf("slide %d check block %d: %v", s.Index+1, i+1, err))
			}
		}
		if strings.Contains(s.Markdown, "```quiz") {
			problems = append(problems, fmt.Sprintf("slide %d: quiz block is missing id, kind, text, or answers", s.Index+1))
		}
	}
	return problems
}

func countChecks(l lesson.Lesson) int {
	n := 0
	for _, s := range l.Slides {
		n += len(s.Checks)
	}
	return n
}
