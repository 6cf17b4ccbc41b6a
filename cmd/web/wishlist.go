package main

import (
	"net/http"

	"maisonoutfits.dev/storefront/internal/api"
	mw "maisonoutfits.dev/storefront/internal/middleware"
	"maisonoutfits.dev/storefront/internal/store"
)

// WishlistView is the wishlist page view model.
type WishlistView struct {
	Items []store.WishlistItem
	Empty bool
}

// WishlistHandler renders the wishlist from the persisted client store.
func (a *app) WishlistHandler(w http.ResponseWriter, r *http.Request) {
	st := mw.State(r)
	vm := a.pageData(r, "Wishlist | Maison OUTFITS")
	vm.Wishlist = &WishlistView{
		Items: st.Wishlist,
		Empty: len(st.Wishlist) == 0,
	}
	a.renderPage(w, r, "wishlist", vm)
}

// WishlistAddHandler registers the addition with the backend, then mirrors
// it into the client store.
func (a *app) WishlistAddHandler(w http.ResponseWriter, r *http.Request) {
	st, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	productID := r.PostFormValue("product_id")
	if productID == "" {
		http.Error(w, "missing product_id", http.StatusBadRequest)
		return
	}

	if err := a.gateway.AddWishlistItem(r.Context(), productID); err != nil {
		a.metrics.RecordGatewayCall(err)
		st.AddFlash("error", api.Message(err, "Failed to add to wishlist"))
		redirect(w, r, "/product/"+productID)
		return
	}
	a.metrics.RecordGatewayCall(nil)

	st.AddToWishlist(store.WishlistItem{ProductID: productID})
	st.AddFlash("success", "Added to wishlist!")
	redirect(w, r, "/product/"+productID)
}

// WishlistRemoveHandler removes by product id; unknown ids are a no-op.
func (a *app) WishlistRemoveHandler(w http.ResponseWriter, r *http.Request) {
	st := mw.State(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	st.RemoveFromWishlist(r.PostFormValue("product_id"))
	redirect(w, r, "/wishlist")
}
