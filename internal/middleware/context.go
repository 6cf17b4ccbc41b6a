package middleware

import (
	"context"
	"net/http"

	"maisonoutfits.dev/storefront/internal/store"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyIsHTMX ctxKey = "is_htmx"
	ctxKeyState  ctxKey = "store_state"
)

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// WithState stores the client store state in context.
func WithState(ctx context.Context, s *store.State) context.Context {
	return context.WithValue(ctx, ctxKeyState, s)
}

// State returns the request's client store state. The session middleware
// guarantees one exists for routes mounted under it.
func State(r *http.Request) *store.State {
	if v := r.Context().Value(ctxKeyState); v != nil {
		if s, ok := v.(*store.State); ok {
			return s
		}
	}
	return store.New()
}
