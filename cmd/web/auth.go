package main

import (
	"net/http"

	"maisonoutfits.dev/storefront/internal/api"
	mw "maisonoutfits.dev/storefront/internal/middleware"
)

// AuthView selects between the login and signup forms.
type AuthView struct {
	Mode string // "login" or "signup"
}

// AuthHandler renders the authentication page. ?mode=signup flips the form.
func (a *app) AuthHandler(w http.ResponseWriter, r *http.Request) {
	st := mw.State(r)
	if st.Authenticated() {
		redirect(w, r, "/")
		return
	}
	mode := r.URL.Query().Get("mode")
	if mode != "signup" {
		mode = "login"
	}
	vm := a.pageData(r, "Sign In | Maison OUTFITS")
	vm.Auth = &AuthView{Mode: mode}
	a.renderPage(w, r, "auth", vm)
}

// LoginHandler exchanges credentials for a session. Token and user are
// stored together; the session cookie is regenerated to prevent fixation.
func (a *app) LoginHandler(w http.ResponseWriter, r *http.Request) {
	st := mw.State(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	session, err := a.gateway.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	a.metrics.RecordGatewayCall(err)
	if err != nil {
		st.AddFlash("error", api.Message(err, "Authentication failed"))
		redirect(w, r, "/auth")
		return
	}

	st.RegenerateID()
	st.SetToken(session.Token)
	st.SetUser(&session.User)
	st.AddFlash("success", "Welcome back!")
	redirect(w, r, "/")
}

// SignupHandler registers an account and signs it in.
func (a *app) SignupHandler(w http.ResponseWriter, r *http.Request) {
	st := mw.State(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	session, err := a.gateway.Signup(r.Context(),
		r.PostFormValue("name"),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
	)
	a.metrics.RecordGatewayCall(err)
	if err != nil {
		st.AddFlash("error", api.Message(err, "Authentication failed"))
		redirect(w, r, "/auth?mode=signup")
		return
	}

	st.RegenerateID()
	st.SetToken(session.Token)
	st.SetUser(&session.User)
	st.AddFlash("success", "Account created!")
	redirect(w, r, "/")
}

// LogoutHandler clears user, token, cart and wishlist together.
func (a *app) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	st := mw.State(r)
	st.Logout()
	st.AddFlash("success", "Signed out")
	redirect(w, r, "/")
}
