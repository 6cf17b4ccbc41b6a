package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"maisonoutfits.dev/storefront/internal/api"
)

// ProductsView is the catalog listing view model.
type ProductsView struct {
	Category string
	Heading  string
	Products []api.Product
	LoadErr  bool
}

// ProductsHandler lists the catalog for a category.
func (a *app) ProductsHandler(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	products, err := a.gateway.Products(r.Context(), category)
	a.metrics.RecordGatewayCall(err)

	view := &ProductsView{
		Category: category,
		Heading:  headingFor(category),
		Products: products,
	}
	vm := a.pageData(r, view.Heading+" | Maison OUTFITS")
	if err != nil {
		// The page stays interactive; the failure surfaces as a notice.
		view.LoadErr = true
	}
	vm.Products = view
	a.renderPage(w, r, "products", vm)
}

func headingFor(category string) string {
	if category == "" {
		return "All"
	}
	return strings.ToUpper(category[:1]) + category[1:]
}
