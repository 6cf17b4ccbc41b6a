package main

import (
	"net/http"

	"maisonoutfits.dev/storefront/internal/api"
	mw "maisonoutfits.dev/storefront/internal/middleware"
	"maisonoutfits.dev/storefront/internal/store"
)

// CheckoutView is the checkout page view model.
type CheckoutView struct {
	Items []store.CartItem
	Total float64
	Empty bool
}

// CheckoutHandler renders the order summary and shipping form.
func (a *app) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	st := mw.State(r)
	vm := a.pageData(r, "Checkout | Maison OUTFITS")
	vm.Checkout = &CheckoutView{
		Items: st.Cart,
		Total: st.CartTotal(),
		Empty: len(st.Cart) == 0,
	}
	a.renderPage(w, r, "checkout", vm)
}

// PlaceOrderHandler creates the order, starts a provider-hosted payment
// session and redirects the browser to it. On any failure the cart is left
// untouched and the checkout page is shown again with the error.
func (a *app) PlaceOrderHandler(w http.ResponseWriter, r *http.Request) {
	st, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	if len(st.Cart) == 0 {
		st.AddFlash("error", "Your cart is empty")
		redirect(w, r, "/cart")
		return
	}

	total := st.CartTotal()
	order, err := a.gateway.CreateOrder(r.Context(), st.Cart, total)
	a.metrics.RecordGatewayCall(err)
	if err != nil {
		st.AddFlash("error", api.Message(err, "Payment failed. Please try again."))
		redirect(w, r, "/checkout")
		return
	}

	session, err := a.gateway.CreateCheckout(r.Context(), total, hostURL(r), order.ID)
	a.metrics.RecordGatewayCall(err)
	if err != nil {
		st.AddFlash("error", api.Message(err, "Payment failed. Please try again."))
		redirect(w, r, "/checkout")
		return
	}

	// Hand the browser to the payment provider; it returns to
	// /checkout/success?session_id=... when the flow completes.
	redirect(w, r, session.URL)
}
