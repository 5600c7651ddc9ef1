package taskcheck

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"coursecheck/internal/config"
	"coursecheck/internal/link"
)

var (
	// ErrMissingType indicates check arguments without a type.
	ErrMissingType = errors.New("check type is not set")
	// ErrUnknownCheck indicates a type with no registered handler.
	ErrUnknownCheck = errors.New("unknown check")
)

// Outcome is the result of one dispatched check.
type Outcome struct {
	RunID   string
	Type    string
	Passed  bool
	Skipped bool
	Message string
	// Dialog is the display preference from the link: console, dialog, or auto.
	Dialog string
	Err    error
}

// Dispatcher routes check arguments to registered handlers, honoring the
// disabled-checks list.
type Dispatcher struct {
	cfg      config.Validation
	registry *Registry
	env      Env
	logger   *log.Logger
	newID    func() string
}

// NewDispatcher builds a Dispatcher. A nil logger discards output.
func NewDispatcher(cfg config.Validation, registry *Registry, env Env, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Dispatcher{cfg: cfg, registry: registry, env: env, logger: logger, newID: uuid.NewString}
}

// Execute runs the check named by args["type"]. Keys are matched
// case-insensitively.
func (d *Dispatcher) Execute(args map[string]string) Outcome {
	norm := make(map[string]string, len(args))
	for k, v := range args {
		norm[strings.ToLower(k)] = v
	}
	out := Outcome{RunID: d.newID(), Type: strings.TrimSpace(norm["type"]), Dialog: dialogMode(norm["dialog"])}
	if out.Type == "" {
		out.Err = ErrMissingType
		out.Message = "check parameters are not set"
		return out
	}
	if !d.cfg.IsCheckEnabled(out.Type) {
		out.Skipped = true
		out.Message = fmt.Sprintf("check %q is disabled", out.Type)
		if d.cfg.LogVerbose {
			d.logger.Printf("check %s [%s] disabled by config", out.Type, out.RunID)
		}
		return out
	}
	check, ok := d.registry.Lookup(out.Type)
	if !ok {
		out.Err = fmt.Errorf("%w: %s", ErrUnknownCheck, out.Type)
		out.Message = "unknown check: " + out.Type
		return out
	}
	out.Passed, out.Message = check.Run(norm, d.env)
	if d.cfg.LogVerbose {
		d.logger.Printf("check %s [%s] passed=%t", out.Type, out.RunID, out.Passed)
	}
	return out
}

// ExecuteLink runs a check link.
func (d *Dispatcher) ExecuteLink(l link.Link) (Outcome, error) {
	if !l.Is(link.ActionCheck) {
		return Outcome{}, fmt.Errorf("link action %q is not %q", l.Action, link.ActionCheck)
	}
	return d.Execute(l.Args), nil
}

func dialogMode(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "console":
		return "console"
	case "dialog":
		return "dialog"
	default:
		return "auto"
	}
}
