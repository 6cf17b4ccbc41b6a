package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maisonoutfits.dev/storefront/internal/store"
)

func waitForBody(t *testing.T, h http.Handler, target string, cookies []*http.Cookie, want string) *httptest.ResponseRecorder {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		rec := doRequest(h, httptest.NewRequest(http.MethodGet, target, nil), cookies)
		if strings.Contains(rec.Body.String(), want) {
			return rec
		}
		if time.Now().After(deadline) {
			t.Fatalf("status never reached %q, last body: %s", want, rec.Body.String())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCheckoutSuccessConfirmsAndClearsCart(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payments/status/cs_1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"complete","payment_status":"paid"}`))
	}))
	defer backend.Close()
	a, h := newTestApp(t, backend)

	_, cookies := primeSession(t, a, func(st *store.State) {
		asUser(st)
		st.AddToCart(store.CartItem{ProductID: "p1", Quantity: 1, Price: 150})
	})

	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/checkout/success?session_id=cs_1", nil), cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	// The poll runs in the background; the status fragment eventually
	// reports success and the cart is cleared on that render.
	frag := waitForBody(t, h, "/checkout/success/status?session_id=cs_1", cookies, "Payment confirmed")
	assert.Equal(t, "outerHTML", frag.Header().Get("HX-Reswap"))

	persisted := slotState(t, a, frag)
	require.NotNil(t, persisted)
	assert.Empty(t, persisted.Cart)
}

func TestCheckoutSuccessExpiredSessionFails(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"expired","payment_status":"unpaid"}`))
	}))
	defer backend.Close()
	a, h := newTestApp(t, backend)

	_, cookies := primeSession(t, a, func(st *store.State) {
		asUser(st)
		st.AddToCart(store.CartItem{ProductID: "p1", Quantity: 1, Price: 150})
	})

	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/checkout/success?session_id=cs_2", nil), cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	frag := waitForBody(t, h, "/checkout/success/status?session_id=cs_2", cookies, "Payment not completed")
	// A failed payment never clears the cart.
	if persisted := slotState(t, a, frag); persisted != nil {
		assert.Len(t, persisted.Cart, 1)
	}
}

func TestCheckoutSuccessUnresolvedTimesOut(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"open","payment_status":"unpaid"}`))
	}))
	defer backend.Close()
	a, h := newTestApp(t, backend)

	_, cookies := primeSession(t, a, asUser)
	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/checkout/success?session_id=cs_3", nil), cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	waitForBody(t, h, "/checkout/success/status?session_id=cs_3", cookies, "Still processing")
}

func TestCheckoutSuccessMissingSessionID(t *testing.T) {
	backend := deadBackend(t)
	defer backend.Close()
	a, h := newTestApp(t, backend)

	_, cookies := primeSession(t, a, asUser)
	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/checkout/success", nil), cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestCheckoutStatusUnknownSession(t *testing.T) {
	backend := deadBackend(t)
	defer backend.Close()
	a, h := newTestApp(t, backend)

	_, cookies := primeSession(t, a, asUser)
	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/checkout/success/status?session_id=nope", nil), cookies)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
