package main

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"maisonoutfits.dev/storefront/internal/format"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"usd":      format.USD,
		"datetime": format.DateTime,
		"shortID":  format.ShortID,
	}
}

// renderPage executes the named page inside the base layout. In dev mode,
// templates are reparsed on each request.
func (a *app) renderPage(w http.ResponseWriter, r *http.Request, name string, data PageData) {
	if a.devMode {
		if err := a.parseTemplates(); err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
	}
	t, ok := a.pages[name]
	if !ok {
		a.logger.Error("unknown page template", zap.String("name", name))
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	start := time.Now()
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		a.logger.Error("template exec", zap.String("name", name), zap.Error(err))
	}
	a.metrics.RecordPageLatency(time.Since(start))
}

// renderFrag executes a standalone fragment template (htmx responses).
func (a *app) renderFrag(w http.ResponseWriter, r *http.Request, name string, data any) {
	if a.devMode {
		if err := a.parseTemplates(); err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.frags.ExecuteTemplate(w, name, data); err != nil {
		a.logger.Error("fragment exec", zap.String("name", name), zap.Error(err))
	}
}
