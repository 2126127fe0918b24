package appearance

import (
	"context"

	"github.com/charmbracelet/lipgloss"
)

// TerminalSource uses the terminal's background color as the host
// appearance. It is the fallback when no desktop setting is reachable.
//
// lipgloss detects the background once per process, so the value cannot
// change after the first Query and Subscribe never delivers.
type TerminalSource struct {
	background func() bool
}

// NewTerminalSource creates a terminal-background source.
func NewTerminalSource() *TerminalSource {
	return &TerminalSource{background: lipgloss.HasDarkBackground}
}

// Name implements Source.
func (s *TerminalSource) Name() string {
	return "terminal"
}

// Query implements Source.
func (s *TerminalSource) Query(ctx context.Context) (Appearance, error) {
	if err := ctx.Err(); err != nil {
		return Light, queryError(s.Name(), err)
	}
	return FromDark(s.background()), nil
}

// Subscribe implements Source.
func (s *TerminalSource) Subscribe(ctx context.Context, onChange func(Appearance)) (Subscription, error) {
	if _, err := s.Query(ctx); err != nil {
		return nil, subscribeError(s.Name(), err)
	}
	return noopSubscription{}, nil
}
