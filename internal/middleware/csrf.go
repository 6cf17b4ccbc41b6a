package middleware

import (
	"net/http"
	"time"
)

const csrfCookieName = "csrf_token"

// CSRF issues a CSRF cookie tied to the session token and verifies that
// modifying requests carry it, either as the csrf_token form field (regular
// form posts) or the X-CSRF-Token header (htmx).
func CSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := State(r)
			token := st.CSRFToken

			// Double-submit cookie: make sure the client holds the same token.
			needSet := true
			if c, err := r.Cookie(csrfCookieName); err == nil && c.Value == token {
				needSet = false
			}
			if needSet {
				http.SetCookie(w, &http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: false,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(24 * time.Hour),
				})
			}

			if !isSafeMethod(r.Method) {
				sent := r.Header.Get("X-CSRF-Token")
				if sent == "" {
					sent = r.PostFormValue("csrf_token")
				}
				if sent == "" || sent != token {
					writeError(w, r, http.StatusForbidden, "invalid CSRF token")
					return
				}
				if c, err := r.Cookie(csrfCookieName); err != nil || c.Value != token {
					writeError(w, r, http.StatusForbidden, "invalid CSRF token")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
