package notify

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pinkcart/api/internal/domain/shipment"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultInterval is how often the poller asks the API for fresh joins.
	DefaultInterval = 3 * time.Second
	// DefaultToastTTL is how long a toast stays visible once shown.
	DefaultToastTTL = 4 * time.Second
)

// Fetcher retrieves the current notification feed.
type Fetcher interface {
	Fetch(ctx context.Context) ([]shipment.Notification, error)
}

// Toast is a notification promoted to the visible queue.
type Toast struct {
	shipment.Notification
	ShownAt   time.Time
	ExpiresAt time.Time
}

// Message renders the toast line shown to storefront visitors.
func (t Toast) Message() string {
	return fmt.Sprintf("%s just joined the shipment for %s", t.DisplayName, t.ProductName)
}

// Poller reconciles the server's notification feed into an ordered stream of
// toasts. Every tick it shows only events strictly newer than the previous
// tick's cutoff, so a toast is shown at most once no matter how often the same
// event reappears in the feed.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	toastTTL time.Duration
	onToast  func(Toast)
	log      *logrus.Entry
	now      func() time.Time

	mu          sync.Mutex
	lastChecked time.Time
	active      []Toast
}

type Option func(*Poller)

// WithInterval overrides the polling cadence.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

// WithToastTTL overrides how long each toast stays active.
func WithToastTTL(d time.Duration) Option {
	return func(p *Poller) { p.toastTTL = d }
}

// WithClock substitutes the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

// OnToast registers a callback invoked once per newly shown toast, in
// chronological order.
func OnToast(fn func(Toast)) Option {
	return func(p *Poller) { p.onToast = fn }
}

func NewPoller(fetcher Fetcher, log *logrus.Entry, opts ...Option) *Poller {
	p := &Poller{
		fetcher:  fetcher,
		interval: DefaultInterval,
		toastTTL: DefaultToastTTL,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.lastChecked = p.now()
	return p
}

// Tick performs one reconciliation pass: fetch the feed, surface events newer
// than the last cutoff oldest first, advance the cutoff, drop expired toasts.
func (p *Poller) Tick(ctx context.Context) error {
	feed, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	cutoff := p.lastChecked
	now := p.now()

	fresh := make([]shipment.Notification, 0, len(feed))
	for _, n := range feed {
		if n.JoinedAt.After(cutoff) {
			fresh = append(fresh, n)
		}
	}
	// The feed arrives newest first; toasts must appear in join order.
	sort.Slice(fresh, func(i, j int) bool {
		return fresh[i].JoinedAt.Before(fresh[j].JoinedAt)
	})

	toasts := make([]Toast, 0, len(fresh))
	for _, n := range fresh {
		toasts = append(toasts, Toast{
			Notification: n,
			ShownAt:      now,
			ExpiresAt:    now.Add(p.toastTTL),
		})
	}
	p.active = append(p.active, toasts...)
	p.prune(now)
	p.lastChecked = now
	p.mu.Unlock()

	if p.onToast != nil {
		for _, t := range toasts {
			p.onToast(t)
		}
	}
	return nil
}

// Active returns the toasts that are still within their display window.
func (p *Poller) Active() []Toast {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prune(p.now())
	out := make([]Toast, len(p.active))
	copy(out, p.active)
	return out
}

// prune drops expired toasts. Caller holds p.mu.
func (p *Poller) prune(now time.Time) {
	kept := p.active[:0]
	for _, t := range p.active {
		if t.ExpiresAt.After(now) {
			kept = append(kept, t)
		}
	}
	p.active = kept
}

// Run polls until the context is cancelled. Fetch failures are logged and the
// next tick retries; a flaky network must not kill the feed.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Tick(ctx); err != nil && p.log != nil {
				p.log.WithError(err).Warn("notification poll failed")
			}
		}
	}
}
