package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"maisonoutfits.dev/storefront/internal/api"
	"maisonoutfits.dev/storefront/internal/config"
	"maisonoutfits.dev/storefront/internal/content"
	"maisonoutfits.dev/storefront/internal/metrics"
	"maisonoutfits.dev/storefront/internal/payments"
	"maisonoutfits.dev/storefront/internal/push"
	"maisonoutfits.dev/storefront/internal/store"
)

// newTestApp wires a full app against the given fake backend and returns
// the router with the production middleware chain.
func newTestApp(t *testing.T, backend *httptest.Server) (*app, http.Handler) {
	t.Helper()

	logger := zap.NewNop()
	cfg := config.Config{}
	cfg.Backend.BaseURL = backend.URL
	cfg.Backend.PushPath = "/ws/orders"
	cfg.Backend.RequestTimeout = 2 * time.Second
	cfg.Payment.PollInterval = time.Millisecond
	cfg.Payment.PollAttempts = 5
	cfg.Stylist.PerMinute = 100

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	gateway := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout)
	poller := payments.NewPoller(func(ctx context.Context, sessionID string) (api.PaymentStatus, error) {
		return gateway.PaymentStatus(ctx, sessionID)
	}, cfg.Payment.PollInterval, cfg.Payment.PollAttempts, logger)

	a := &app{
		cfg:          cfg,
		logger:       logger,
		gateway:      gateway,
		codec:        store.NewCodec([]byte("0123456789abcdef0123456789abcdef"), false, logger),
		tracker:      payments.NewTracker(poller, logger),
		hub:          push.NewHub(logger),
		metrics:      collector,
		home:         content.Fallback(),
		templatesDir: "../../templates",
	}
	require.NoError(t, a.parseTemplates())
	return a, a.router(reg)
}

// deadBackend fails the test on any contact. Used to prove a handler never
// reaches the gateway.
func deadBackend(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected backend call: %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}))
}

// primeSession encodes a prepared state into the request cookies the
// middleware chain expects.
func primeSession(t *testing.T, a *app, mutate func(*store.State)) (*store.State, []*http.Cookie) {
	t.Helper()
	st := store.New()
	if mutate != nil {
		mutate(st)
	}
	return st, []*http.Cookie{
		{Name: store.SlotName, Value: a.codec.Encode(st)},
		{Name: "csrf_token", Value: st.CSRFToken},
	}
}

func asUser(st *store.State) {
	st.SetUser(&store.UserSummary{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "customer"})
	st.SetToken("session-token")
}

func doRequest(h http.Handler, req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// slotState decodes the client store persisted by a response, falling back
// to nil when no slot cookie was written.
func slotState(t *testing.T, a *app, rec *httptest.ResponseRecorder) *store.State {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == store.SlotName {
			st, ok := a.codec.Decode(ck.Value)
			require.True(t, ok, "slot cookie must decode")
			return st
		}
	}
	return nil
}
