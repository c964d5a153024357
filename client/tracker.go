package client

import (
	"context"
	"sync"
	"time"

	"github.com/kiasiliventures/thesmokehouse/internal/model"
)

// DefaultPollInterval is how often the tracking page refreshes an order.
const DefaultPollInterval = 15 * time.Second

// Tracker polls an order by public token at a fixed interval, starting with
// an immediate fetch. Each successful fetch replaces the snapshot; a failed
// fetch surfaces the error but keeps the last good snapshot, unless no
// fetch ever succeeded. After Stop, in-flight results are discarded: a late
// response never updates shared state.
type Tracker struct {
	client   *Client
	token    string
	interval time.Duration

	// OnChange, if set, is invoked after every applied fetch result.
	OnChange func(*model.Order, error)

	mu      sync.Mutex
	order   *model.Order
	lastErr error
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewTracker(c *Client, publicToken string, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Tracker{
		client:   c,
		token:    publicToken,
		interval: interval,
	}
}

// Start begins polling. It is a no-op if the tracker was already started.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	if t.cancel != nil || t.stopped {
		t.mu.Unlock()
		return
	}
	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})
	t.mu.Unlock()

	go t.loop(ctx)
}

// Stop ends polling and discards any response still in flight.
func (t *Tracker) Stop() {
	t.mu.Lock()
	t.stopped = true
	cancel := t.cancel
	done := t.done
	t.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Snapshot returns the last applied order and the most recent fetch error.
func (t *Tracker) Snapshot() (*model.Order, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.order, t.lastErr
}

func (t *Tracker) loop(ctx context.Context) {
	defer close(t.done)

	t.fetch(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.fetch(ctx)
		}
	}
}

func (t *Tracker) fetch(ctx context.Context) {
	order, err := t.client.GetOrderByPublicToken(ctx, t.token)

	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if err != nil {
		t.lastErr = err
	} else {
		t.order = order
		t.lastErr = nil
	}
	onChange := t.OnChange
	snapshot, snapErr := t.order, t.lastErr
	t.mu.Unlock()

	if onChange != nil {
		onChange(snapshot, snapErr)
	}
}
