package main

import (
	"net/http"

	"maisonoutfits.dev/storefront/internal/api"
	"maisonoutfits.dev/storefront/internal/store"
)

// ProfileView is the account page view model.
type ProfileView struct {
	User    *store.UserSummary
	Orders  []api.Order
	LoadErr bool
}

// ProfileHandler renders the account page with the user's order history.
func (a *app) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	st, ok := a.requireSession(w, r)
	if !ok {
		return
	}

	orders, err := a.gateway.Orders(r.Context())
	a.metrics.RecordGatewayCall(err)

	vm := a.pageData(r, "Profile | Maison OUTFITS")
	vm.Profile = &ProfileView{
		User:    st.User,
		Orders:  orders,
		LoadErr: err != nil,
	}
	a.renderPage(w, r, "profile", vm)
}
