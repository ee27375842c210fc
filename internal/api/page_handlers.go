package api

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/socialchef/mise/internal/form"
	"github.com/socialchef/mise/internal/middleware"
	"github.com/socialchef/mise/internal/services/recipe"
)

type pageData struct {
	form.View
	ResultHTML    template.HTML
	Notifications []form.Notification
}

// HandleIndex renders the form page for the caller's session.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	c, ok := middleware.GetController(r.Context())
	if !ok {
		http.Error(w, "Session unavailable", http.StatusInternalServerError)
		return
	}

	v := c.View()
	data := pageData{
		View:          v,
		Notifications: c.DrainNotifications(),
	}
	if v.Result != nil {
		data.ResultHTML = s.renderer.Render(v.Result.Text)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render page", "error", err)
	}
}

// HandleCredentialForm saves the API key posted from the settings form.
// The outcome is shown as a notification on the next page load.
func (s *Server) HandleCredentialForm(w http.ResponseWriter, r *http.Request) {
	c, ok := middleware.GetController(r.Context())
	if !ok {
		http.Error(w, "Session unavailable", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	_ = c.SubmitCredential(r.Context(), r.PostFormValue("credential"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleRecipeForm copies the posted fields into the draft and submits it.
func (s *Server) HandleRecipeForm(w http.ResponseWriter, r *http.Request) {
	c, ok := middleware.GetController(r.Context())
	if !ok {
		http.Error(w, "Session unavailable", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	for _, f := range recipe.Fields {
		if values, present := r.PostForm[string(f)]; present && len(values) > 0 {
			_ = c.UpdateField(ctx, f, values[0])
		}
	}

	_ = c.SubmitRecipeRequest(ctx)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
