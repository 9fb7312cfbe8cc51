package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pinkcart/api/internal/domain/shipment"
)

type stubFetcher struct {
	feed []shipment.Notification
	err  error
}

func (s *stubFetcher) Fetch(ctx context.Context) ([]shipment.Notification, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.feed, nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func notificationAt(id, name, product string, at time.Time) shipment.Notification {
	return shipment.Notification{ID: id, DisplayName: name, ProductName: product, JoinedAt: at}
}

func TestTickShowsOnlyEventsNewerThanCutoff(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	fetcher := &stubFetcher{}

	var shown []Toast
	p := NewPoller(fetcher, nil,
		WithClock(clock.Now),
		OnToast(func(toast Toast) { shown = append(shown, toast) }),
	)

	// The event predates the poller, so it must not be surfaced.
	fetcher.feed = []shipment.Notification{
		notificationAt("a", "Asha", "Linen Dress", start.Add(-time.Minute)),
	}
	clock.Advance(3 * time.Second)
	if err := p.Tick(context.Background()); err != nil {
		t.Fatalf("Tick returned error: %v", err)
	}
	if len(shown) != 0 {
		t.Fatalf("expected no toasts for stale event, got %d", len(shown))
	}

	clock.Advance(time.Second)
	fetcher.feed = append(fetcher.feed,
		notificationAt("b", "Beatrice", "Linen Dress", clock.Now()),
	)
	clock.Advance(2 * time.Second)
	if err := p.Tick(context.Background()); err != nil {
		t.Fatalf("Tick returned error: %v", err)
	}
	if len(shown) != 1 {
		t.Fatalf("expected 1 toast, got %d", len(shown))
	}
	if shown[0].ID != "b" {
		t.Fatalf("expected toast for event b, got %s", shown[0].ID)
	}
}

func TestTickNeverShowsSameEventTwice(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	fetcher := &stubFetcher{}

	var shown []Toast
	p := NewPoller(fetcher, nil,
		WithClock(clock.Now),
		OnToast(func(toast Toast) { shown = append(shown, toast) }),
	)

	clock.Advance(time.Second)
	fetcher.feed = []shipment.Notification{
		notificationAt("a", "Asha", "Linen Dress", clock.Now()),
	}

	// The same event stays in the five-minute feed across many polls.
	for i := 0; i < 5; i++ {
		clock.Advance(3 * time.Second)
		if err := p.Tick(context.Background()); err != nil {
			t.Fatalf("Tick returned error: %v", err)
		}
	}
	if len(shown) != 1 {
		t.Fatalf("expected exactly 1 toast, got %d", len(shown))
	}
}

func TestTickOrdersBurstOldestFirst(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	fetcher := &stubFetcher{}

	var shown []Toast
	p := NewPoller(fetcher, nil,
		WithClock(clock.Now),
		OnToast(func(toast Toast) { shown = append(shown, toast) }),
	)

	// Feed arrives newest first, mirroring the API sort.
	fetcher.feed = []shipment.Notification{
		notificationAt("c", "Chiamaka", "Linen Dress", start.Add(2500*time.Millisecond)),
		notificationAt("b", "Beatrice", "Linen Dress", start.Add(2*time.Second)),
		notificationAt("a", "Asha", "Linen Dress", start.Add(time.Second)),
	}
	clock.Advance(3 * time.Second)
	if err := p.Tick(context.Background()); err != nil {
		t.Fatalf("Tick returned error: %v", err)
	}

	if len(shown) != 3 {
		t.Fatalf("expected 3 toasts, got %d", len(shown))
	}
	for i, want := range []string{"a", "b", "c"} {
		if shown[i].ID != want {
			t.Fatalf("toast %d: expected %s, got %s", i, want, shown[i].ID)
		}
	}
}

func TestToastsExpireAfterTTL(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	fetcher := &stubFetcher{}

	p := NewPoller(fetcher, nil, WithClock(clock.Now))

	fetcher.feed = []shipment.Notification{
		notificationAt("a", "Asha", "Linen Dress", start.Add(time.Second)),
	}
	clock.Advance(3 * time.Second)
	if err := p.Tick(context.Background()); err != nil {
		t.Fatalf("Tick returned error: %v", err)
	}
	if got := len(p.Active()); got != 1 {
		t.Fatalf("expected 1 active toast, got %d", got)
	}

	clock.Advance(3900 * time.Millisecond)
	if got := len(p.Active()); got != 1 {
		t.Fatalf("expected toast still active just before TTL, got %d", got)
	}

	clock.Advance(200 * time.Millisecond)
	if got := len(p.Active()); got != 0 {
		t.Fatalf("expected toast expired after TTL, got %d active", got)
	}
}

func TestTickKeepsCutoffOnFetchError(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	fetcher := &stubFetcher{}

	var shown []Toast
	p := NewPoller(fetcher, nil,
		WithClock(clock.Now),
		OnToast(func(toast Toast) { shown = append(shown, toast) }),
	)

	clock.Advance(time.Second)
	joined := clock.Now()

	fetcher.err = errors.New("connection refused")
	clock.Advance(3 * time.Second)
	if err := p.Tick(context.Background()); err == nil {
		t.Fatal("expected error from failing fetch")
	}

	// The event that happened during the outage must still surface once the
	// feed recovers.
	fetcher.err = nil
	fetcher.feed = []shipment.Notification{
		notificationAt("a", "Asha", "Linen Dress", joined),
	}
	clock.Advance(3 * time.Second)
	if err := p.Tick(context.Background()); err != nil {
		t.Fatalf("Tick returned error: %v", err)
	}
	if len(shown) != 1 {
		t.Fatalf("expected 1 toast after recovery, got %d", len(shown))
	}
}

func TestPollingScenarioThreeJoins(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	fetcher := &stubFetcher{}

	var shown []Toast
	p := NewPoller(fetcher, nil,
		WithClock(clock.Now),
		OnToast(func(toast Toast) { shown = append(shown, toast) }),
	)

	// Three customers join at t=1s, t=2s and t=4s while the poller ticks
	// every three seconds.
	events := []shipment.Notification{
		notificationAt("a", "Asha", "Linen Dress", start.Add(time.Second)),
		notificationAt("b", "Beatrice", "Linen Dress", start.Add(2*time.Second)),
		notificationAt("c", "Chiamaka", "Linen Dress", start.Add(4*time.Second)),
	}

	feedAt := func(now time.Time) []shipment.Notification {
		var out []shipment.Notification
		// Newest first, like the API.
		for i := len(events) - 1; i >= 0; i-- {
			if !events[i].JoinedAt.After(now) {
				out = append(out, events[i])
			}
		}
		return out
	}

	for tick := 0; tick < 3; tick++ {
		clock.Advance(3 * time.Second)
		fetcher.feed = feedAt(clock.Now())
		if err := p.Tick(context.Background()); err != nil {
			t.Fatalf("Tick returned error: %v", err)
		}
	}

	if len(shown) != 3 {
		t.Fatalf("expected 3 toasts, got %d", len(shown))
	}
	wantOrder := []string{"Asha", "Beatrice", "Chiamaka"}
	for i, want := range wantOrder {
		if shown[i].DisplayName != want {
			t.Fatalf("toast %d: expected %s, got %s", i, want, shown[i].DisplayName)
		}
		wantMsg := want + " just joined the shipment for Linen Dress"
		if shown[i].Message() != wantMsg {
			t.Fatalf("toast %d: expected message %q, got %q", i, wantMsg, shown[i].Message())
		}
		if got := shown[i].ExpiresAt.Sub(shown[i].ShownAt); got != DefaultToastTTL {
			t.Fatalf("toast %d: expected TTL %v, got %v", i, DefaultToastTTL, got)
		}
	}
}
