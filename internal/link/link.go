package link

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Scheme prefixes every link handled by the course engine.
const Scheme = "unity://"

// Actions understood by the CLI and lesson navigator.
const (
	ActionSlide = "slide"
	ActionCheck = "check"
	ActionOpen  = "open"
)

// RawBlockArg carries a URL-escaped check block in a from-block link.
const RawBlockArg = "__raw_block__"

var (
	// ErrNotLink indicates the text has no "scheme://" prefix.
	ErrNotLink = errors.New("not a link")
	// ErrForeignScheme indicates a well-formed link outside the course scheme.
	ErrForeignScheme = errors.New("not a course link")
	// ErrMissingAction indicates a link with nothing between the scheme and the query.
	ErrMissingAction = errors.New("course link has no action")
)

// Link is a parsed link. Scheme and arg keys are stored lower-cased.
type Link struct {
	Scheme string
	Action string
	Args   map[string]string
}

// Arg returns the value for key, compared case-insensitively.
func (l Link) Arg(key string) (string, bool) {
	v, ok := l.Args[strings.ToLower(key)]
	return v, ok
}

// Is reports whether the link action equals action, ignoring case.
func (l Link) Is(action string) bool {
	return strings.EqualFold(l.Action, action)
}

// Keys returns the argument keys sorted.
func (l Link) Keys() []string {
	keys := make([]string, 0, len(l.Args))
	for k := range l.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsLink reports whether text uses the course link scheme.
func IsLink(text string) bool {
	return len(text) >= len(Scheme) && strings.EqualFold(text[:len(Scheme)], Scheme)
}

// Parse splits "scheme://action?k=v&k2=v2" into a scheme, an action, and
// arguments. Any scheme is accepted; callers that only follow course links
// check IsLink or Course. Keys and values are percent-decoded; a later
// duplicate key wins.
func Parse(text string) (Link, error) {
	text = strings.TrimSpace(text)
	scheme, rest, ok := strings.Cut(text, "://")
	if !ok || !validScheme(scheme) {
		return Link{}, fmt.Errorf("%w: %q", ErrNotLink, text)
	}
	action, query, _ := strings.Cut(rest, "?")
	action = strings.Trim(action, "/ ")
	if action == "" {
		return Link{}, fmt.Errorf("%w: %q", ErrMissingAction, text)
	}

	args := map[string]string{}
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.PathUnescape(rawKey)
		if err != nil {
			return Link{}, fmt.Errorf("decode key %q: %w", rawKey, err)
		}
		value, err := url.PathUnescape(rawValue)
		if err != nil {
			return Link{}, fmt.Errorf("decode value of %q: %w", key, err)
		}
		args[strings.ToLower(key)] = value
	}
	return Link{Scheme: strings.ToLower(scheme), Action: action, Args: args}, nil
}

// Course reports whether the link uses the course scheme.
func (l Link) Course() bool {
	return l.Scheme+"://" == Scheme
}

// validScheme follows the URI scheme grammar: a letter, then letters, digits,
// '+', '-', or '.'.
func validScheme(scheme string) bool {
	if scheme == "" {
		return false
	}
	for i, r := range scheme {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// Escape percent-encodes s the way check links embed raw blocks: every byte
// outside the unreserved set is escaped and spaces become %20.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Build renders action and args as a link with keys in the given order.
func Build(action string, pairs ...[2]string) string {
	var b strings.Builder
	b.WriteString(Scheme)
	b.WriteString(action)
	for i, kv := range pairs {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(Escape(kv[0]))
		b.WriteByte('=')
		b.WriteString(Escape(kv[1]))
	}
	return b.String()
}

// BuildCheckLink returns the link that runs raw through the from-block check.
func BuildCheckLink(raw string) string {
	return Build(ActionCheck,
		[2]string{"type", "from-block"},
		[2]string{"dialog", "auto"},
		[2]string{RawBlockArg, raw},
	)
}
