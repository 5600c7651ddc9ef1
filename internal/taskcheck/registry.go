package taskcheck

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"coursecheck/internal/validation"
)

// Env carries the ports a check reads from.
type Env struct {
	Scene  validation.SceneQuery
	Files  validation.FileQuery
	Engine *validation.Engine
}

// Check runs one kind of task check. Args keys are lower-case.
type Check interface {
	Run(args map[string]string, env Env) (bool, string)
}

// CheckFunc adapts a function to Check.
type CheckFunc func(args map[string]string, env Env) (bool, string)

// Run calls f.
func (f CheckFunc) Run(args map[string]string, env Env) (bool, string) {
	return f(args, env)
}

// Registry maps check types to handlers. Keys compare case-insensitively.
type Registry struct {
	mu     sync.RWMutex
	checks map[string]Check
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{checks: map[string]Check{}}
}

// Register adds check under key. Keys must be non-empty and unique.
func (r *Registry) Register(key string, check Check) error {
	norm := strings.ToLower(strings.TrimSpace(key))
	if norm == "" {
		return fmt.Errorf("check key is required")
	}
	if check == nil {
		return fmt.Errorf("check %q has no handler", key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.checks[norm]; exists {
		return fmt.Errorf("check %q already registered", key)
	}
	r.checks[norm] = check
	return nil
}

// Lookup returns the handler for key, if present.
func (r *Registry) Lookup(key string) (Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	check, ok := r.checks[strings.ToLower(strings.TrimSpace(key))]
	return check, ok
}

// Keys returns the registered check types sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.checks))
	for k := range r.checks {
		keys = append(keys, k)
	}
	r.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// NewDefaultRegistry returns a registry holding the builtin checks.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for key, check := range builtins() {
		if err := r.Register(key, check); err != nil {
			panic(err)
		}
	}
	return r
}
