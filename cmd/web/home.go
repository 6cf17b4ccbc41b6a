package main

import (
	"net/http"

	"maisonoutfits.dev/storefront/internal/content"
)

// HomeView carries the landing page's editorial sections.
type HomeView struct {
	Hero        content.Hero
	Collections []content.Collection
	Stylist     content.Promo
}

// HomeHandler renders the landing page from editorial content only; no
// backend call is made.
func (a *app) HomeHandler(w http.ResponseWriter, r *http.Request) {
	vm := a.pageData(r, "Maison OUTFITS")
	vm.Home = &HomeView{
		Hero:        a.home.Hero,
		Collections: a.home.Collections,
		Stylist:     a.home.Stylist,
	}
	a.renderPage(w, r, "home", vm)
}
