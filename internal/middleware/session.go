package middleware

import (
	"net/http"

	"maisonoutfits.dev/storefront/internal/api"
	"maisonoutfits.dev/storefront/internal/store"
)

// Session rehydrates the client store from its durable slot, attaches it to
// the request context (with the bearer token exposed to the gateway
// client), and mirrors the state back just before the first write whenever
// a mutator ran.
func Session(codec *store.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st, fromSlot := codec.Read(r)
			if !fromSlot {
				st = store.New()
			}
			if st.CSRFToken == "" {
				st.CSRFToken = store.NewCSRFToken()
				st.MarkDirty()
			}

			ctx := WithState(r.Context(), st)
			ctx = api.WithToken(ctx, st.Token)

			rw := NewResponseRecorder(w)
			rw.SetBeforeWrite(func(w http.ResponseWriter) {
				if st.Dirty() || !fromSlot {
					codec.Write(w, st)
				}
			})
			next.ServeHTTP(rw, r.WithContext(ctx))
			// If nothing was written yet (e.g. HEAD), persist now.
			if !rw.Wrote() && (st.Dirty() || !fromSlot) {
				codec.Write(w, st)
			}
		})
	}
}
