package appearance

import (
	"context"
	"fmt"
	"os"
)

// GTKThemeEnvVar is the variable users set to force a GTK theme.
const GTKThemeEnvVar = "GTK_THEME"

// EnvSource reads GTK_THEME. The environment is fixed for the life of the
// process, so subscriptions never fire.
type EnvSource struct {
	lookup func(string) (string, bool)
}

// NewEnvSource creates a source that reads the process environment.
func NewEnvSource() *EnvSource {
	return &EnvSource{lookup: os.LookupEnv}
}

// Name implements Source.
func (s *EnvSource) Name() string {
	return "env"
}

// Query implements Source. Any theme not mentioning "dark" is light.
func (s *EnvSource) Query(ctx context.Context) (Appearance, error) {
	value, ok := s.lookup(GTKThemeEnvVar)
	if !ok || value == "" {
		return Light, queryError(s.Name(), fmt.Errorf("%w: %s not set", ErrUnavailable, GTKThemeEnvVar))
	}
	a, _ := Parse(value)
	return a, nil
}

// Subscribe implements Source.
func (s *EnvSource) Subscribe(ctx context.Context, onChange func(Appearance)) (Subscription, error) {
	if _, err := s.Query(ctx); err != nil {
		return nil, subscribeError(s.Name(), err)
	}
	return noopSubscription{}, nil
}
