package appearance

import (
	"context"
	"time"

	"github.com/muurk/portdeck/internal/logging"
	"go.uber.org/zap"
)

// DefaultPollInterval is the polling period used when none is configured.
const DefaultPollInterval = 5 * time.Second

// pollSubscribe turns a one-shot query into a subscription by polling it on
// interval. The first query happens synchronously so registration fails if
// the host cannot answer at all, and its result is delivered before
// pollSubscribe returns.
func pollSubscribe(ctx context.Context, name string, interval time.Duration, query func(context.Context) (Appearance, error), onChange func(Appearance)) (Subscription, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	initial, err := query(ctx)
	if err != nil {
		return nil, subscribeError(name, err)
	}

	n := newNotifier(name, onChange)
	pollCtx, cancel := context.WithCancel(context.Background())
	n.cleanup = cancel
	n.deliver(initial)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-n.done():
				return
			case <-ticker.C:
			}

			a, err := query(pollCtx)
			if err != nil {
				if pollCtx.Err() == nil {
					logging.Debug("Appearance poll failed",
						zap.String("source", name),
						zap.Error(err),
					)
				}
				continue
			}
			if !n.deliver(a) {
				return
			}
		}
	}()

	return n, nil
}
