// Package payments confirms redirect-based checkouts by polling the
// backend's payment-status endpoint with a bounded retry loop.
package payments

import (
	"context"
	"time"

	"go.uber.org/zap"

	"maisonoutfits.dev/storefront/internal/api"
)

// State enumerates the poll outcomes. Every state except StateChecking is
// terminal.
type State int

const (
	StateChecking State = iota
	StateSuccess
	StateFailed
	StateTimeout
	StateError
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	case StateTimeout:
		return "timeout"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends the poll.
func (s State) Terminal() bool { return s != StateChecking }

const (
	// DefaultInterval is the fixed spacing between attempts. No backoff.
	DefaultInterval = 2 * time.Second
	// DefaultMaxAttempts caps the number of status requests.
	DefaultMaxAttempts = 5
)

// StatusFunc fetches the payment outcome for a checkout session.
type StatusFunc func(ctx context.Context, sessionID string) (api.PaymentStatus, error)

// Clock abstracts the inter-attempt timer so tests run without wall-clock
// delays.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Result is the terminal outcome of a poll.
type Result struct {
	State    State
	Attempts int
	Err      error
}

// Poller runs the bounded-retry status loop. A poller never runs
// concurrently with itself for a session: each attempt is issued only after
// the previous one completes and the fixed interval elapses.
type Poller struct {
	status      StatusFunc
	interval    time.Duration
	maxAttempts int
	clock       Clock
	logger      *zap.Logger
}

// NewPoller builds a poller. Non-positive interval/attempts fall back to the
// defaults; a nil clock uses real time.
func NewPoller(status StatusFunc, interval time.Duration, maxAttempts int, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		status:      status,
		interval:    interval,
		maxAttempts: maxAttempts,
		clock:       realClock{},
		logger:      logger,
	}
}

// WithClock substitutes the timer source. Intended for tests.
func (p *Poller) WithClock(c Clock) *Poller {
	p.clock = c
	return p
}

// Run polls until a terminal state is reached:
//
//	payment_status "paid"  -> success
//	status "expired"       -> failed
//	request failure        -> error (no further attempts)
//	maxAttempts exhausted  -> timeout
func (p *Poller) Run(ctx context.Context, sessionID string) Result {
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		st, err := p.status(ctx, sessionID)
		if err != nil {
			p.logger.Warn("payment status check failed",
				zap.String("session_id", sessionID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return Result{State: StateError, Attempts: attempt, Err: err}
		}
		switch {
		case st.PaymentStatus == "paid":
			return Result{State: StateSuccess, Attempts: attempt}
		case st.Status == "expired":
			return Result{State: StateFailed, Attempts: attempt}
		}
		if attempt == p.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return Result{State: StateError, Attempts: attempt, Err: ctx.Err()}
		case <-p.clock.After(p.interval):
		}
	}
	return Result{State: StateTimeout, Attempts: p.maxAttempts}
}
