package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"maisonoutfits.dev/storefront/internal/api"
	mw "maisonoutfits.dev/storefront/internal/middleware"
	"maisonoutfits.dev/storefront/internal/pricing"
	"maisonoutfits.dev/storefront/internal/store"
)

// ProductDetailView is the product page view model.
type ProductDetailView struct {
	Product  api.Product
	Selected store.Customization
	Price    float64
	NotFound bool
}

// ProductDetailHandler renders one product with its customization form. The
// default selection is the first value of every option axis, matching what
// the price reflects on first paint.
func (a *app) ProductDetailHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := a.gateway.Product(r.Context(), id)
	a.metrics.RecordGatewayCall(err)
	if err != nil {
		vm := a.pageData(r, "Product | Maison OUTFITS")
		if !api.IsNotFound(err) {
			st := mw.State(r)
			st.AddFlash("error", api.Message(err, "Could not load product"))
		}
		vm.Product = &ProductDetailView{NotFound: true}
		w.WriteHeader(http.StatusNotFound)
		a.renderPage(w, r, "product", vm)
		return
	}

	selected := defaultCustomization(product.CustomizationOptions)
	vm := a.pageData(r, product.Name+" | Maison OUTFITS")
	vm.Product = &ProductDetailView{
		Product:  product,
		Selected: selected,
		Price:    pricing.Final(product.BasePrice, selected.Fabric),
	}
	a.renderPage(w, r, "product", vm)
}

// ProductPriceFrag recomputes the displayed price when the fabric selection
// changes.
func (a *app) ProductPriceFrag(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fabric := r.URL.Query().Get("fabric")

	product, err := a.gateway.Product(r.Context(), id)
	a.metrics.RecordGatewayCall(err)
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	a.renderFrag(w, r, "frag_price", map[string]any{
		"Price": pricing.Final(product.BasePrice, fabric),
	})
}

func defaultCustomization(opts api.CustomizationOptions) store.Customization {
	return store.Customization{
		Size:   first(opts.Sizes),
		Fit:    first(opts.Fits),
		Color:  first(opts.Colors),
		Fabric: first(opts.Fabrics),
		Sleeve: first(opts.Sleeves),
	}
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
