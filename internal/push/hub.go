// Package push consumes the backend's server-to-client event stream and
// fans it out to the admin dashboard.
package push

import (
	"sync"

	"go.uber.org/zap"

	"maisonoutfits.dev/storefront/internal/api"
)

// recentCap bounds the pushed-order cache shown on a freshly opened
// dashboard.
const recentCap = 50

// Hub distributes new_order events to subscribers and keeps the most recent
// pushed orders, newest first. Delivery preserves server-emission order; no
// deduplication is performed against the REST fetch, so an order may appear
// both in the initial list and as a pushed entry.
type Hub struct {
	logger *zap.Logger

	mu     sync.Mutex
	subs   map[chan api.Order]struct{}
	recent []api.Order
}

// NewHub returns an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger: logger,
		subs:   make(map[chan api.Order]struct{}),
	}
}

// Publish records the order and delivers it to every subscriber. Slow
// subscribers are skipped rather than blocking the read loop.
func (h *Hub) Publish(order api.Order) {
	h.mu.Lock()
	h.recent = append([]api.Order{order}, h.recent...)
	if len(h.recent) > recentCap {
		h.recent = h.recent[:recentCap]
	}
	for ch := range h.subs {
		select {
		case ch <- order:
		default:
			h.logger.Warn("push: dropping event for slow subscriber", zap.String("order_id", order.ID))
		}
	}
	h.mu.Unlock()
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener goes away.
func (h *Hub) Subscribe() (<-chan api.Order, func()) {
	ch := make(chan api.Order, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	cancel := func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// Recent returns a copy of the cached pushed orders, newest first.
func (h *Hub) Recent() []api.Order {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]api.Order, len(h.recent))
	copy(out, h.recent)
	return out
}
