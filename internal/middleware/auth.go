package middleware

import (
	"net/http"
	"time"

	"github.com/baharkarakas/stocksim/internal/api/httpx"
	"github.com/baharkarakas/stocksim/internal/auth"
)

const SessionCookie = "session"

type AuthMiddleware struct {
	SM     *auth.SessionManager
	AppEnv string
}

func NewAuthMiddleware(sm *auth.SessionManager, appEnv string) *AuthMiddleware {
	return &AuthMiddleware{SM: sm, AppEnv: appEnv}
}

// Identify attaches the session user to the context when the cookie is
// valid and passes every request on.
func (m *AuthMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := m.userID(r); ok {
			r = r.WithContext(WithUser(r.Context(), UserCtx{UserID: uid}))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireLogin redirects requests without a session to /login.
func (m *AuthMiddleware) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !LoggedIn(r.Context()) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireLoginJSON is RequireLogin for the JSON API: it answers 401.
func (m *AuthMiddleware) RequireLoginJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !LoggedIn(r.Context()) {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "login required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) userID(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	uid, err := m.SM.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return uid, true
}

// SetSession issues a session for userID and sets it as a cookie.
func (m *AuthMiddleware) SetSession(w http.ResponseWriter, userID string) error {
	token, exp, err := m.SM.Issue(userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(token, exp))
	return nil
}

// ClearSession expires the session cookie.
func (m *AuthMiddleware) ClearSession(w http.ResponseWriter) {
	c := m.cookie("", time.Unix(0, 0))
	c.MaxAge = -1
	http.SetCookie(w, c)
}

func (m *AuthMiddleware) cookie(value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   m.AppEnv == "prod",
		SameSite: http.SameSiteLaxMode,
	}
}
