package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"db3dgallery/internal/admin"
	"db3dgallery/internal/middleware"
	"db3dgallery/internal/render"
)

// Auth groups the admin mode entry and exit handlers.
type Auth struct {
	renderer *render.Renderer
	engine   *admin.Engine
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, engine *admin.Engine) *Auth {
	return &Auth{
		renderer: renderer,
		engine:   engine,
	}
}

// LoginPage renders the password prompt. The field always starts empty.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.IsAdmin(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "管理員登入",
	})
}

// LoginSubmit checks the password and elevates the session. A wrong
// password re-renders the prompt; there is no lockout.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	err := a.engine.Login(r.Context(), w, r.PostFormValue("password"))
	if errors.Is(err, admin.ErrInvalidPassword) {
		a.renderer.PageStatus(w, r, http.StatusUnauthorized, "login", &render.PageData{
			Title:   "管理員登入",
			Flashes: []render.Flash{{Type: "error", Message: "密碼錯誤"}},
		})
		return
	}
	if err != nil {
		slog.Error("login failed", "error", err)
		a.renderer.PageStatus(w, r, http.StatusInternalServerError, "login", &render.PageData{
			Title:   "管理員登入",
			Flashes: []render.Flash{{Type: "error", Message: "發生錯誤，請稍後再試。"}},
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout leaves admin mode. Script callers get JSON; plain form posts are
// redirected to the gallery.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.engine.Logout(r.Context(), w, r); err != nil {
		slog.Error("logout failed", "error", err)
	}

	if r.Header.Get(middleware.CSRFHeaderName) != "" {
		writeJSON(w, http.StatusOK, Result{OK: true, Reload: true})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
