package appearance

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Appearance is the effective light/dark state of a surface.
type Appearance int

const (
	// Light is the not-dark appearance and the fail-closed default.
	Light Appearance = iota
	// Dark is the dark appearance.
	Dark
)

// FromDark converts a boolean "is dark" flag into an Appearance.
func FromDark(dark bool) Appearance {
	if dark {
		return Dark
	}
	return Light
}

// IsDark reports whether a is Dark.
func (a Appearance) IsDark() bool {
	return a == Dark
}

// String returns "dark" or "light".
func (a Appearance) String() string {
	if a == Dark {
		return "dark"
	}
	return "light"
}

// Parse maps a host-reported value to an Appearance. Matching is loose:
// anything mentioning "dark" is Dark, anything mentioning "light" or
// "default" is Light. ok is false when the value says neither.
func Parse(s string) (a Appearance, ok bool) {
	v := strings.ToLower(strings.Trim(strings.TrimSpace(s), `'"`))
	switch {
	case strings.Contains(v, "dark"):
		return Dark, true
	case strings.Contains(v, "light"), v == "default":
		return Light, true
	default:
		return Light, false
	}
}

// Source is the host environment's appearance setting.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// Query asks the host for its current appearance. It may block.
	Query(ctx context.Context) (Appearance, error)

	// Subscribe registers onChange to be called whenever the host appearance
	// changes. Sources that can observe changes call onChange once with the
	// value read at registration, before Subscribe returns, so a change
	// between an earlier Query and Subscribe is not lost. ctx bounds
	// registration only; the subscription lives until Cancel. onChange may
	// be called from a source-owned goroutine and must not block.
	Subscribe(ctx context.Context, onChange func(Appearance)) (Subscription, error)
}

// Subscription is a live registration for appearance-change notifications.
type Subscription interface {
	// Cancel stops delivery. It is idempotent, and once it returns the
	// callback will not be invoked again.
	Cancel()
}

var (
	// ErrUnavailable is returned when the host cannot answer at all (missing
	// tool, unset variable, absent file).
	ErrUnavailable = errors.New("appearance source unavailable")

	// ErrUnrecognized is returned when the host answered with a value that
	// names neither light nor dark.
	ErrUnrecognized = errors.New("unrecognized appearance value")
)

// HostError records a failed interaction with a host appearance source.
type HostError struct {
	Source string // Source name, e.g. "gsettings"
	Op     string // "query" or "subscribe"
	Err    error  // Underlying error
}

// Error implements the error interface
func (e *HostError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Source, e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *HostError) Unwrap() error {
	return e.Err
}

func queryError(source string, err error) error {
	return &HostError{Source: source, Op: "query", Err: err}
}

func subscribeError(source string, err error) error {
	return &HostError{Source: source, Op: "subscribe", Err: err}
}
