package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/websocket"

	"maisonoutfits.dev/storefront/internal/api"
)

const (
	// EventNewOrder is the only event type the backend emits today.
	EventNewOrder = "new_order"

	initialReconnect = time.Second
	maxReconnect     = 30 * time.Second
)

// frame is the wire envelope for push events.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client keeps one websocket subscription to the backend push channel open
// and republishes decoded events through the hub. Reconnects use a capped
// doubling delay that resets after a successful read.
type Client struct {
	wsURL   string
	origin  string
	hub     *Hub
	logger  *zap.Logger
	onEvent func(event string)
}

// NewClient derives the websocket endpoint from the backend base URL: same
// host, pushPath as path, ws/wss scheme.
func NewClient(baseURL, pushPath string, hub *Hub, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("push: parse backend url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = pushPath
	u.RawQuery = ""
	origin := strings.Replace(u.String(), u.Scheme, map[string]string{"wss": "https", "ws": "http"}[u.Scheme], 1)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		wsURL:  u.String(),
		origin: origin,
		hub:    hub,
		logger: logger,
	}, nil
}

// OnEvent registers a hook invoked per received event (metrics).
func (c *Client) OnEvent(fn func(event string)) { c.onEvent = fn }

// Run connects and consumes events until ctx is cancelled.
func (c *Client) Run(ctx context.Context) {
	delay := initialReconnect
	for {
		if ctx.Err() != nil {
			return
		}
		ok := c.consume(ctx)
		if ctx.Err() != nil {
			return
		}
		if ok {
			delay = initialReconnect
		} else {
			delay *= 2
			if delay > maxReconnect {
				delay = maxReconnect
			}
		}
		c.logger.Info("push: reconnecting", zap.Duration("delay", delay))
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// consume runs one connection lifetime. It reports whether at least one
// frame was read, which resets the reconnect delay.
func (c *Client) consume(ctx context.Context) bool {
	conn, err := websocket.Dial(c.wsURL, "", c.origin)
	if err != nil {
		c.logger.Warn("push: dial failed", zap.String("url", c.wsURL), zap.Error(err))
		return false
	}
	defer conn.Close()
	c.logger.Info("push: connected", zap.String("url", c.wsURL))

	// Unblock the read loop when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	read := false
	for {
		var f frame
		if err := websocket.JSON.Receive(conn, &f); err != nil {
			if ctx.Err() == nil {
				c.logger.Warn("push: read failed", zap.Error(err))
			}
			return read
		}
		read = true
		if c.onEvent != nil {
			c.onEvent(f.Event)
		}
		if f.Event != EventNewOrder {
			c.logger.Debug("push: ignoring event", zap.String("event", f.Event))
			continue
		}
		var order api.Order
		if err := json.Unmarshal(f.Data, &order); err != nil {
			c.logger.Warn("push: bad new_order payload", zap.Error(err))
			continue
		}
		c.hub.Publish(order)
	}
}
