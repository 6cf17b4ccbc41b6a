package main

import (
	"html/template"
	"net/http"

	"maisonoutfits.dev/storefront/internal/api"
	"maisonoutfits.dev/storefront/internal/richtext"
)

// StylistView is the AI stylist page view model.
type StylistView struct {
	Preferences    api.StylistPreferences
	Options        StylistOptions
	Recommendation template.HTML
}

// StylistOptions are the selectable preference values.
type StylistOptions struct {
	Genders   []string
	Occasions []string
	Colors    []string
	Fits      []string
}

func stylistOptions() StylistOptions {
	return StylistOptions{
		Genders:   []string{"men", "women", "any"},
		Occasions: []string{"casual", "formal", "party", "business", "workout"},
		Colors:    []string{"any", "black", "white", "navy", "grey", "earth-tones"},
		Fits:      []string{"slim", "regular", "oversized"},
	}
}

func defaultPreferences() api.StylistPreferences {
	return api.StylistPreferences{
		Gender:   "men",
		Occasion: "casual",
		Color:    "any",
		Fit:      "regular",
	}
}

// StylistHandler renders the preference form.
func (a *app) StylistHandler(w http.ResponseWriter, r *http.Request) {
	vm := a.pageData(r, "AI Stylist | Maison OUTFITS")
	vm.Stylist = &StylistView{
		Preferences: defaultPreferences(),
		Options:     stylistOptions(),
	}
	a.renderPage(w, r, "stylist", vm)
}

// StylistSubmitHandler requests styling text for the submitted preferences
// and re-renders the page with the recommendation below the form.
func (a *app) StylistSubmitHandler(w http.ResponseWriter, r *http.Request) {
	st, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	prefs := api.StylistPreferences{
		Gender:   r.PostFormValue("gender"),
		Occasion: r.PostFormValue("occasion"),
		Color:    r.PostFormValue("color"),
		Fit:      r.PostFormValue("fit"),
	}

	rec, err := a.gateway.StyleRecommendation(r.Context(), prefs)
	a.metrics.RecordGatewayCall(err)

	view := &StylistView{
		Preferences: prefs,
		Options:     stylistOptions(),
	}
	if err != nil {
		st.AddFlash("error", api.Message(err, "Failed to get recommendation"))
	} else {
		view.Recommendation = richtext.Render(rec.Recommendation)
		st.AddFlash("success", "Recommendation generated!")
	}
	vm := a.pageData(r, "AI Stylist | Maison OUTFITS")
	vm.Stylist = view
	a.renderPage(w, r, "stylist", vm)
}
