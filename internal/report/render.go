// Package report renders check and quiz output for a terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"coursecheck/internal/config"
	"coursecheck/internal/validation"
)

const (
	okColor    = lipgloss.Color("42")
	failColor  = lipgloss.Color("196")
	skipColor  = lipgloss.Color("244")
	titleColor = lipgloss.Color("33")
)

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// Renderer colorizes report text when color is enabled.
type Renderer struct {
	noColor bool
	style   *lipgloss.Renderer
}

// NewRenderer resolves a color mode (auto|always|never) against out.
func NewRenderer(mode string, out io.Writer) (*Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", config.ColorAuto:
		if !isTerminal(out) {
			return Plain(), nil
		}
		return &Renderer{style: lipgloss.NewRenderer(out)}, nil
	case config.ColorAlways:
		style := lipgloss.NewRenderer(out)
		style.SetColorProfile(termenv.ANSI256)
		return &Renderer{style: style}, nil
	case config.ColorNever:
		return Plain(), nil
	default:
		return nil, fmt.Errorf("invalid color mode %q (expected auto|always|never)", mode)
	}
}

// Plain returns a Renderer that never colors.
func Plain() *Renderer {
	return &Renderer{noColor: true}
}

// Headline renders "OK" or "FAIL" followed by an optional label.
func (r *Renderer) Headline(passed bool, label string) string {
	word, color := "FAIL", failColor
	if passed {
		word, color = "OK", okColor
	}
	line := r.stylize(word, color)
	if label != "" {
		line += " " + label
	}
	return line
}

// Skipped renders the headline for a disabled check.
func (r *Renderer) Skipped(label string) string {
	return r.stylize("SKIP", skipColor) + " " + label
}

// Title renders a section title.
func (r *Renderer) Title(text string) string {
	return r.stylize(text, titleColor)
}

// Body colors the pass and fail marks that lead report lines, keeping any
// indentation. Other lines pass through unchanged.
func (r *Renderer) Body(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		indent := line[:len(line)-len(trimmed)]
		switch {
		case leadsWith(trimmed, validation.PassMark):
			lines[i] = indent + r.stylize(validation.PassMark, okColor) + trimmed[len(validation.PassMark):]
		case leadsWith(trimmed, validation.FailMark):
			lines[i] = indent + r.stylize(validation.FailMark, failColor) + trimmed[len(validation.FailMark):]
		}
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func leadsWith(line, mark string) bool {
	return line == mark || strings.HasPrefix(line, mark+" ")
}

// stylize applies optional color styling.
func (r *Renderer) stylize(text string, color lipgloss.Color) string {
	if r.noColor {
		return text
	}
	return r.style.NewStyle().Foreground(color).Render(text)
}

// defaultIsTerminal inspects a writer for TTY support.
func defaultIsTerminal(out io.Writer) bool {
	if out == nil {
		return false
	}
	if file, ok := out.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := out.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
