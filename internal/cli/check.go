package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// checkInput allows tests to override stdin for --block -.
var checkInput io.Reader = os.Stdin

// runCheck builds the handler for the check command.
func runCheck(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		block := flags.String("block", "", "Check block file, or - for stdin")
		wf := bindWorkspaceFlags(flags)
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if strings.TrimSpace(*block) == "" {
			fmt.Fprintln(stderr, "--block is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		raw, err := readBlock(*block)
		if err != nil {
			fmt.Fprintf(stderr, "Check failed: %v\n", err)
			return ExitError
		}
		ws, err := openWorkspace(*wf, stdout, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Check failed: %v\n", err)
			return ExitError
		}
		sc, err := ws.scene(wf.scene)
		if err != nil {
			fmt.Fprintf(stderr, "Check failed: %v\n", err)
			return ExitError
		}

		result := ws.engine().EvaluateText(raw, sc, ws.files())
		fmt.Fprintln(stdout, ws.render.Headline(result.Passed, "Task check"))
		if body := result.Report(); body != "" {
			fmt.Fprintln(stdout, ws.render.Body(body))
		}
		if !result.Passed {
			return ExitError
		}
		return ExitOK
	}
}

// bindProjectFlags registers --config and --root on flags.
func bindProjectFlags(flags *flag.FlagSet) *workspaceFlags {
	wf := &workspaceFlags{}
	flags.StringVar(&wf.config, "config", "", "Path to config file (default: search for .coursecheck/config.yml)")
	flags.StringVar(&wf.root, "root", "", "Project root (default: directory holding .coursecheck)")
	return wf
}

// bindWorkspaceFlags registers the project flags plus --scene.
func bindWorkspaceFlags(flags *flag.FlagSet) *workspaceFlags {
	wf := bindProjectFlags(flags)
	flags.StringVar(&wf.scene, "scene", "", "Scene manifest (default: project.scene_manifest)")
	return wf
}

func readBlock(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(checkInput)
		if err != nil {
			return "", fmt.Errorf("read check block: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read check block: %w", err)
	}
	return string(data), nil
}
