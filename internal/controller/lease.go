package controller

import (
	"context"

	"github.com/muurk/portdeck/internal/appearance"
	"github.com/muurk/portdeck/internal/logging"
)

// lease owns the single host subscription. Each acquire starts a new
// generation; events carry the generation they were registered under so
// anything from a released subscription can be recognised and dropped.
type lease struct {
	source     appearance.Source
	sub        appearance.Subscription
	generation uint64
}

// held reports whether a subscription is live.
func (l *lease) held() bool {
	return l.sub != nil
}

// current reports whether generation belongs to the live subscription.
func (l *lease) current(generation uint64) bool {
	return l.sub != nil && l.generation == generation
}

// acquire opens a subscription. Any live one is released first.
func (l *lease) acquire(ctx context.Context, deliver func(generation uint64, a appearance.Appearance)) error {
	l.release()

	l.generation++
	generation := l.generation
	sub, err := l.source.Subscribe(ctx, func(a appearance.Appearance) {
		deliver(generation, a)
	})
	if err != nil {
		return err
	}
	l.sub = sub
	logging.LogSubscription(l.source.Name(), "opened", generation)
	return nil
}

// release cancels the live subscription, if any.
func (l *lease) release() {
	if l.sub == nil {
		return
	}
	l.sub.Cancel()
	l.sub = nil
	logging.LogSubscription(l.source.Name(), "cancelled", l.generation)
}
