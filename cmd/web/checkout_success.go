package main

import (
	"context"
	"net/http"

	mw "maisonoutfits.dev/storefront/internal/middleware"
	"maisonoutfits.dev/storefront/internal/payments"
)

// CheckoutSuccessView is the payment-confirmation page view model.
type CheckoutSuccessView struct {
	SessionID string
	State     string
	Terminal  bool
}

// CheckoutSuccessHandler is the return target of the provider-hosted flow.
// It starts the bounded status poll for the session and renders the page,
// which refreshes the status fragment until a terminal state is shown.
func (a *app) CheckoutSuccessHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	vm := a.pageData(r, "Order Confirmation | Maison OUTFITS")
	if sessionID == "" {
		vm.CheckoutSuccess = &CheckoutSuccessView{State: payments.StateError.String(), Terminal: true}
		a.renderPage(w, r, "checkout_success", vm)
		return
	}

	// The poll must survive the originating request; it is bounded to five
	// attempts regardless.
	a.tracker.Start(context.WithoutCancel(r.Context()), sessionID)

	snap, _ := a.tracker.Snapshot(sessionID)
	vm.CheckoutSuccess = a.successView(r, sessionID, snap)
	a.renderPage(w, r, "checkout_success", vm)
}

// CheckoutSuccessStatusFrag reports the current poll state for the htmx
// refresh loop.
func (a *app) CheckoutSuccessStatusFrag(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	snap, ok := a.tracker.Snapshot(sessionID)
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	view := a.successView(r, sessionID, snap)
	if view.Terminal {
		// Stop the htmx polling loop.
		w.Header().Set("HX-Reswap", "outerHTML")
	}
	a.renderFrag(w, r, "frag_checkout_status", view)
}

// successView derives the view model and applies the success side effect:
// the first render that observes the terminal success state clears the
// cart.
func (a *app) successView(r *http.Request, sessionID string, snap payments.Snapshot) *CheckoutSuccessView {
	if snap.State == payments.StateSuccess {
		if st := mw.State(r); len(st.Cart) > 0 {
			st.ClearCart()
		}
	}
	return &CheckoutSuccessView{
		SessionID: sessionID,
		State:     snap.State.String(),
		Terminal:  snap.State.Terminal(),
	}
}
