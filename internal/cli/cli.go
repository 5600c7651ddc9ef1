package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  coursecheck <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"coursecheck <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .coursecheck/config.yml and a scene manifest", []string{
		"coursecheck init [--config <path>] [--yes]",
	}, runInit),
	command("validate", "Validate the config, scene manifest, and lessons", []string{
		"coursecheck validate [--config <path>] [lesson.md...]",
	}, runValidate),
	command("check", "Evaluate a check block against the scene and project files", []string{
		"coursecheck check --block <file|-> [--scene <manifest>] [--root <dir>] [--config <path>]",
	}, runCheck),
	command("link", "Follow a unity:// course link", []string{
		"coursecheck link [--scene <manifest>] [--root <dir>] [--config <path>] <uri>",
	}, runLink),
	command("quiz", "List, answer, and reset lesson quizzes", []string{
		"coursecheck quiz list [--config <path>] <lesson.md>",
		"coursecheck quiz answer --lesson <lesson.md> --question <id> --answer <id> [--answer <id>...]",
		"coursecheck quiz reset --lesson <lesson.md> [--question <id>]",
	}, runQuiz),
	command("slides", "Split a lesson into slides and show one", []string{
		"coursecheck slides [--index <n>] [--checks] [--config <path>] <lesson.md>",
	}, runSlides),
}
