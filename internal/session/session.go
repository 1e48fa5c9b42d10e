package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	cookieName = "__session"
	tokenKey   = "access_token"

	// thirty days, matching the auth backend's refresh window.
	maxAge = 30 * 24 * 60 * 60
)

// Manager keeps the auth access token in a signed http-only cookie.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager ...
func NewManager(secret string, secure bool) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

// Token returns the access token of the request's session, if any.
// A cookie that fails signature verification counts as no session.
func (m *Manager) Token(r *http.Request) (string, bool) {
	s, err := m.store.Get(r, cookieName)
	if err != nil {
		return "", false
	}
	token, ok := s.Values[tokenKey].(string)
	return token, ok && token != ""
}

// SignIn stores the access token in the response's session cookie.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, token string) error {
	s, _ := m.store.Get(r, cookieName)
	s.Values[tokenKey] = token
	return s.Save(r, w)
}

// SignOut drops the session cookie.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	s, _ := m.store.Get(r, cookieName)
	delete(s.Values, tokenKey)
	s.Options.MaxAge = -1
	return s.Save(r, w)
}
