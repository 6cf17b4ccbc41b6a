package payments

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Snapshot is the externally visible poll state for a checkout session.
type Snapshot struct {
	State    State
	Attempts int
	Err      error
}

// Tracker owns at most one background poll per checkout session and serves
// snapshots to the success-page fragment. Navigating away does not cancel a
// running poll; the snapshot is simply read again on the next visit.
type Tracker struct {
	poller *Poller
	logger *zap.Logger

	mu       sync.Mutex
	polls    map[string]*Snapshot
	onFinish func(Result)
}

// NewTracker builds a tracker around the given poller.
func NewTracker(poller *Poller, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		poller: poller,
		logger: logger,
		polls:  make(map[string]*Snapshot),
	}
}

// OnFinish registers a hook invoked once per terminal poll (metrics).
func (t *Tracker) OnFinish(fn func(Result)) { t.onFinish = fn }

// Start launches the poll for sessionID unless one is already running or
// finished. The supplied context should outlive the originating request.
func (t *Tracker) Start(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	t.mu.Lock()
	if _, exists := t.polls[sessionID]; exists {
		t.mu.Unlock()
		return
	}
	t.polls[sessionID] = &Snapshot{State: StateChecking}
	t.mu.Unlock()

	go func() {
		res := t.poller.Run(ctx, sessionID)
		t.mu.Lock()
		t.polls[sessionID] = &Snapshot{State: res.State, Attempts: res.Attempts, Err: res.Err}
		t.mu.Unlock()
		t.logger.Info("payment poll finished",
			zap.String("session_id", sessionID),
			zap.String("state", res.State.String()),
			zap.Int("attempts", res.Attempts),
		)
		if t.onFinish != nil {
			t.onFinish(res)
		}
	}()
}

// Snapshot returns the current poll state. The boolean reports whether a
// poll exists for the session.
func (t *Tracker) Snapshot(sessionID string) (Snapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap, ok := t.polls[sessionID]
	if !ok {
		return Snapshot{}, false
	}
	return *snap, true
}
