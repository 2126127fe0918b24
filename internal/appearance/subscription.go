package appearance

import (
	"sync"

	"github.com/muurk/portdeck/internal/logging"
	"go.uber.org/zap"
)

// notifier is the delivery half shared by every Subscription implementation.
// Delivery and cancellation take the same lock, so a callback already in
// flight finishes before Cancel returns and nothing is delivered afterwards.
type notifier struct {
	source   string
	mu       sync.Mutex
	onChange func(Appearance)
	last     Appearance
	primed   bool
	stop     chan struct{}
	stopped  bool
	cleanup  func()
}

func newNotifier(source string, onChange func(Appearance)) *notifier {
	return &notifier{
		source:   source,
		onChange: onChange,
		stop:     make(chan struct{}),
	}
}

// deliver passes a to the callback if it differs from the last delivered
// value. The first call always delivers. It reports false once the
// subscription is cancelled.
func (n *notifier) deliver(a Appearance) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.stopped {
		return false
	}
	if n.primed && n.last == a {
		return true
	}
	n.last = a
	n.primed = true

	logging.Debug("Host appearance changed",
		zap.String("source", n.source),
		zap.String("appearance", a.String()),
	)
	n.onChange(a)
	return true
}

// done is closed when the subscription is cancelled.
func (n *notifier) done() <-chan struct{} {
	return n.stop
}

// Cancel implements Subscription.
func (n *notifier) Cancel() {
	n.mu.Lock()
	if n.stopped {
		n.mu.Unlock()
		return
	}
	n.stopped = true
	close(n.stop)
	cleanup := n.cleanup
	n.mu.Unlock()

	if cleanup != nil {
		cleanup()
	}
}

// noopSubscription is returned by sources whose value cannot change while
// the process runs.
type noopSubscription struct{}

func (noopSubscription) Cancel() {}
