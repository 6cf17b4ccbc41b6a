package main

import (
	"net/http"
	"strconv"

	"maisonoutfits.dev/storefront/internal/api"
	mw "maisonoutfits.dev/storefront/internal/middleware"
	"maisonoutfits.dev/storefront/internal/pricing"
	"maisonoutfits.dev/storefront/internal/store"
)

// CartView is the cart page view model.
type CartView struct {
	Items []store.CartItem
	Total float64
	Empty bool
}

// CartHandler renders the cart from the persisted client store; no backend
// call is made.
func (a *app) CartHandler(w http.ResponseWriter, r *http.Request) {
	st := mw.State(r)
	vm := a.pageData(r, "Cart | Maison OUTFITS")
	vm.Cart = &CartView{
		Items: st.Cart,
		Total: st.CartTotal(),
		Empty: len(st.Cart) == 0,
	}
	a.renderPage(w, r, "cart", vm)
}

// CartAddHandler registers the addition with the backend, then appends the
// line to the client store. The price is recomputed here from the fetched
// base price and the submitted fabric; the client never supplies it.
func (a *app) CartAddHandler(w http.ResponseWriter, r *http.Request) {
	st, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	productID := r.PostFormValue("product_id")

	product, err := a.gateway.Product(r.Context(), productID)
	a.metrics.RecordGatewayCall(err)
	if err != nil {
		st.AddFlash("error", api.Message(err, "Failed to add to cart"))
		redirect(w, r, "/product/"+productID)
		return
	}

	customization := store.Customization{
		Size:   r.PostFormValue("size"),
		Fit:    r.PostFormValue("fit"),
		Color:  r.PostFormValue("color"),
		Fabric: r.PostFormValue("fabric"),
		Sleeve: r.PostFormValue("sleeve"),
	}
	item := store.CartItem{
		ProductID:     product.ID,
		Customization: customization,
		Quantity:      1,
		Price:         pricing.Final(product.BasePrice, customization.Fabric),
	}

	if err := a.gateway.AddCartItem(r.Context(), item); err != nil {
		a.metrics.RecordGatewayCall(err)
		st.AddFlash("error", api.Message(err, "Failed to add to cart"))
		redirect(w, r, "/product/"+productID)
		return
	}
	a.metrics.RecordGatewayCall(nil)

	st.AddToCart(item)
	st.AddFlash("success", "Added to cart!")
	redirect(w, r, "/product/"+productID)
}

// CartRemoveHandler deletes a line by its position. Removal is local only;
// the backend cart is not reconciled.
func (a *app) CartRemoveHandler(w http.ResponseWriter, r *http.Request) {
	st := mw.State(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	index, err := strconv.Atoi(r.PostFormValue("index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}
	st.RemoveFromCart(index)
	redirect(w, r, "/cart")
}
