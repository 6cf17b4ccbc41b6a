package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maisonoutfits.dev/storefront/internal/store"
)

func TestProfileShowsOrderHistory(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		require.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"ord_1","total_amount":150,"status":"pending","payment_status":"paid","created_at":"2026-08-30T10:00:00Z"}
		]`))
	}))
	defer backend.Close()
	a, h := newTestApp(t, backend)

	_, cookies := primeSession(t, a, asUser)
	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/profile", nil), cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseDoc(t, rec)
	assert.Contains(t, doc.Find(".account").Text(), "Ada")
	rows := doc.Find(".order-table tbody tr")
	require.Equal(t, 1, rows.Length())
	assert.Contains(t, rows.Text(), "$150.00")
	assert.Contains(t, rows.Text(), "pending")
}

func TestProfileRequiresSession(t *testing.T) {
	backend := deadBackend(t)
	defer backend.Close()
	a, h := newTestApp(t, backend)

	_, cookies := primeSession(t, a, nil)
	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/profile", nil), cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth", rec.Header().Get("Location"))
}

func TestExpiredTokenForcesReauth(t *testing.T) {
	backend := deadBackend(t)
	defer backend.Close()
	a, h := newTestApp(t, backend)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	_, cookies := primeSession(t, a, func(st *store.State) {
		st.SetUser(&store.UserSummary{ID: "u1", Name: "Ada"})
		st.SetToken(signed)
		st.AddToCart(store.CartItem{ProductID: "p1", Quantity: 1, Price: 150})
	})
	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/profile", nil), cookies)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth", rec.Header().Get("Location"))

	// The stale identity is dropped before the redirect.
	persisted := slotState(t, a, rec)
	require.NotNil(t, persisted)
	assert.False(t, persisted.Authenticated())
	assert.Empty(t, persisted.Token)
}
