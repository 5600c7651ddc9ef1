package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"coursecheck/internal/link"
)

// runLink builds the handler for the link command.
func runLink(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		wf := bindWorkspaceFlags(flags)
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if flags.NArg() != 1 {
			fmt.Fprintln(stderr, "expected exactly one link")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		l, err := link.Parse(flags.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Link failed: %v\n", err)
			return ExitError
		}
		if !l.Course() {
			fmt.Fprintf(stderr, "Link failed: %v: %s\n", link.ErrForeignScheme, l.Scheme)
			return ExitError
		}

		switch {
		case l.Is(link.ActionCheck):
			return followCheckLink(l, wf, stdout, stderr)
		case l.Is(link.ActionSlide), l.Is(link.ActionOpen):
			fmt.Fprintln(stdout, describeLink(l))
			return ExitOK
		default:
			fmt.Fprintf(stderr, "Link failed: unsupported action %q\n", l.Action)
			return ExitError
		}
	}
}

func followCheckLink(l link.Link, wf *workspaceFlags, stdout, stderr io.Writer) int {
	ws, err := openWorkspace(*wf, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Link failed: %v\n", err)
		return ExitError
	}
	sc, err := ws.scene(wf.scene)
	if err != nil {
		fmt.Fprintf(stderr, "Link failed: %v\n", err)
		return ExitError
	}
	out, err := ws.dispatcher(sc).ExecuteLink(l)
	if err != nil {
		fmt.Fprintf(stderr, "Link failed: %v\n", err)
		return ExitError
	}
	if out.Err != nil {
		fmt.Fprintf(stderr, "Check failed: %v\n", out.Err)
		return ExitError
	}
	if out.Skipped {
		fmt.Fprintln(stdout, ws.render.Skipped(out.Type))
		fmt.Fprintln(stdout, out.Message)
		return ExitOK
	}
	fmt.Fprintln(stdout, ws.render.Headline(out.Passed, out.Type))
	if out.Message != "" {
		fmt.Fprintln(stdout, ws.render.Body(out.Message))
	}
	if !out.Passed {
		return ExitError
	}
	return ExitOK
}

// describeLink renders navigation and open links as "action key=value ...".
func describeLink(l link.Link) string {
	parts := []string{l.Action}
	for _, key := range l.Keys() {
		value, _ := l.Arg(key)
		parts = append(parts, key+"="+value)
	}
	return strings.Join(parts, " ")
}
