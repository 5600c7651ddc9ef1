package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question until it gets an answer. An empty line or
// end of input picks defaultYes.
func confirm(in io.Reader, out io.Writer, question string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	reader := bufio.NewReader(in)
	for {
		fmt.Fprintf(out, "%s %s: ", question, hint)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, fmt.Errorf("invalid answer %q", strings.TrimSpace(line))
		}
		fmt.Fprintln(out, "Please answer yes or no.")
	}
}
