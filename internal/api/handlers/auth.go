package handlers

import (
	"net/http"

	"github.com/baharkarakas/stocksim/internal/middleware"
	"github.com/baharkarakas/stocksim/internal/services"
	"github.com/baharkarakas/stocksim/internal/web"
)

type AuthHandler struct {
	Users *services.UserService
	MW    *middleware.AuthMiddleware
}

func NewAuthHandler(us *services.UserService, mw *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{Users: us, MW: mw}
}

// LoginForm forgets any current session before showing the form.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.MW.ClearSession(w)
	web.Render(w, http.StatusOK, "login", web.Page{Title: "Log In"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.MW.ClearSession(w)
	u, err := h.Users.Authenticate(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		// the old session is gone, so render as logged out
		fail(w, r.WithContext(middleware.WithUser(r.Context(), middleware.UserCtx{})), err)
		return
	}
	if err := h.MW.SetSession(w, u.ID); err != nil {
		fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.MW.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	web.Render(w, http.StatusOK, "register", page(r, "Register", nil))
}

// Register creates the account and signs the new user in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.Register(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("password"),
		r.PostFormValue("confirmation"),
	)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := h.MW.SetSession(w, u.ID); err != nil {
		fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
