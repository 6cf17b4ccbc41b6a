package main

import (
	"net/http"
	"time"

	"maisonoutfits.dev/storefront/internal/authclaims"
	mw "maisonoutfits.dev/storefront/internal/middleware"
	"maisonoutfits.dev/storefront/internal/nav"
	"maisonoutfits.dev/storefront/internal/store"
)

// PageData is the data envelope every page template receives. Exactly one
// of the page-view pointers is set per render.
type PageData struct {
	Title         string
	Path          string
	Nav           []nav.RenderedItem
	User          *store.UserSummary
	Authenticated bool
	CartCount     int
	Flashes       []store.Flash
	CSRFToken     string

	Home            *HomeView
	Products        *ProductsView
	Product         *ProductDetailView
	Cart            *CartView
	Wishlist        *WishlistView
	Checkout        *CheckoutView
	CheckoutSuccess *CheckoutSuccessView
	Profile         *ProfileView
	Admin           *AdminView
	Stylist         *StylistView
	Auth            *AuthView
}

// pageData assembles the layout-level view model from the request's store
// state, draining queued notifications for display.
func (a *app) pageData(r *http.Request, title string) PageData {
	st := mw.State(r)
	return PageData{
		Title:         title,
		Path:          r.URL.Path,
		Nav:           nav.Build(r.URL.Path, st.Authenticated(), st.IsAdmin()),
		User:          st.User,
		Authenticated: st.Authenticated(),
		CartCount:     len(st.Cart),
		Flashes:       st.TakeFlashes(),
		CSRFToken:     st.CSRFToken,
	}
}

// requireSession is the guard clause shared by all mutating actions: with
// no session the user is redirected to the authentication route and the
// gateway is never called. An expired token is treated as no session.
func (a *app) requireSession(w http.ResponseWriter, r *http.Request) (*store.State, bool) {
	st := mw.State(r)
	if st.Authenticated() && authclaims.Expired(st.Token, time.Now()) {
		st.Logout()
		st.AddFlash("error", "Your session expired. Please login again.")
		redirect(w, r, "/auth")
		return nil, false
	}
	if !st.Authenticated() {
		st.AddFlash("error", "Please login to continue")
		redirect(w, r, "/auth")
		return nil, false
	}
	return st, true
}

// redirect issues a see-other, instructing htmx to do a full navigation.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// hostURL rebuilds the externally visible origin for payment return URLs.
func hostURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
