package payments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"maisonoutfits.dev/storefront/internal/api"
)

// fakeClock fires every timer immediately and records the requested waits.
type fakeClock struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (f *fakeClock) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	f.waits = append(f.waits, d)
	f.mu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func (f *fakeClock) recorded() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.waits...)
}

func newTestPoller(status StatusFunc, clock Clock) *Poller {
	return NewPoller(status, 2*time.Second, 5, nil).WithClock(clock)
}

func TestRunTimesOutAfterMaxAttempts(t *testing.T) {
	clock := &fakeClock{}
	calls := 0
	p := newTestPoller(func(ctx context.Context, sessionID string) (api.PaymentStatus, error) {
		calls++
		return api.PaymentStatus{Status: "open", PaymentStatus: "unpaid"}, nil
	}, clock)

	res := p.Run(context.Background(), "cs_1")
	if res.State != StateTimeout {
		t.Fatalf("state = %v, want timeout", res.State)
	}
	if calls != 5 {
		t.Fatalf("status called %d times, want exactly 5", calls)
	}
	if res.Attempts != 5 {
		t.Fatalf("attempts = %d, want 5", res.Attempts)
	}
	// Waits happen only between attempts: 4 of them, all at the fixed
	// interval.
	waits := clock.recorded()
	if len(waits) != 4 {
		t.Fatalf("waited %d times, want 4", len(waits))
	}
	for i, d := range waits {
		if d != 2*time.Second {
			t.Fatalf("wait %d = %v, want 2s", i, d)
		}
	}
}

func TestRunSucceedsMidway(t *testing.T) {
	clock := &fakeClock{}
	calls := 0
	p := newTestPoller(func(ctx context.Context, sessionID string) (api.PaymentStatus, error) {
		calls++
		if calls == 2 {
			return api.PaymentStatus{Status: "complete", PaymentStatus: "paid"}, nil
		}
		return api.PaymentStatus{Status: "open", PaymentStatus: "unpaid"}, nil
	}, clock)

	res := p.Run(context.Background(), "cs_2")
	if res.State != StateSuccess {
		t.Fatalf("state = %v, want success", res.State)
	}
	if calls != 2 {
		t.Fatalf("status called %d times, want exactly 2", calls)
	}
	if res.Attempts != 2 {
		t.Fatalf("attempts = %d, want 2", res.Attempts)
	}
	if len(clock.recorded()) != 1 {
		t.Fatalf("waited %d times, want 1", len(clock.recorded()))
	}
}

func TestRunExpiredSessionFails(t *testing.T) {
	clock := &fakeClock{}
	p := newTestPoller(func(ctx context.Context, sessionID string) (api.PaymentStatus, error) {
		return api.PaymentStatus{Status: "expired", PaymentStatus: "unpaid"}, nil
	}, clock)

	res := p.Run(context.Background(), "cs_3")
	if res.State != StateFailed {
		t.Fatalf("state = %v, want failed", res.State)
	}
	if res.Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", res.Attempts)
	}
	if len(clock.recorded()) != 0 {
		t.Fatal("expired session should not wait")
	}
}

func TestRunStopsOnRequestError(t *testing.T) {
	clock := &fakeClock{}
	boom := errors.New("backend unreachable")
	calls := 0
	p := newTestPoller(func(ctx context.Context, sessionID string) (api.PaymentStatus, error) {
		calls++
		return api.PaymentStatus{}, boom
	}, clock)

	res := p.Run(context.Background(), "cs_4")
	if res.State != StateError {
		t.Fatalf("state = %v, want error", res.State)
	}
	if calls != 1 {
		t.Fatalf("status called %d times, want 1: a request failure ends the poll", calls)
	}
	if !errors.Is(res.Err, boom) {
		t.Fatalf("err = %v, want %v", res.Err, boom)
	}
}

func TestRunHonoursContextCancellation(t *testing.T) {
	// A clock that never fires forces Run to take the ctx.Done branch.
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(func(ctx context.Context, sessionID string) (api.PaymentStatus, error) {
		cancel()
		return api.PaymentStatus{Status: "open", PaymentStatus: "unpaid"}, nil
	}, 2*time.Second, 5, nil).WithClock(neverClock{})

	res := p.Run(ctx, "cs_5")
	if res.State != StateError {
		t.Fatalf("state = %v, want error", res.State)
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", res.Err)
	}
}

type neverClock struct{}

func (neverClock) After(time.Duration) <-chan time.Time { return make(chan time.Time) }

func TestStateTerminal(t *testing.T) {
	if StateChecking.Terminal() {
		t.Fatal("checking must not be terminal")
	}
	for _, s := range []State{StateSuccess, StateFailed, StateTimeout, StateError} {
		if !s.Terminal() {
			t.Fatalf("%v must be terminal", s)
		}
	}
}
