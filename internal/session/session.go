package session

import (
	"log"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "paydash-session"
	tokenKey    = "token"
	themeKey    = "theme"
)

// Manager wraps the cookie session holding the auth token, the theme
// preference and one-shot flash messages. That cookie is the only state the
// dashboard keeps on its own; everything else lives at the gateway.
//
// The token is opaque: no expiry or signature check happens here. An expired
// token is only discovered when an authenticated gateway call fails.
type Manager struct {
	store sessions.Store
}

func NewManager(secret string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
	}
	return &Manager{store: store}
}

// Token returns the stored bearer token, or "" when no session is active.
func (m *Manager) Token(r *http.Request) string {
	s, _ := m.store.Get(r, sessionName)
	token, _ := s.Values[tokenKey].(string)
	return token
}

// SetToken persists the token issued at login, marking the session active.
func (m *Manager) SetToken(r *http.Request, w http.ResponseWriter, token string) error {
	s, _ := m.store.Get(r, sessionName)
	s.Values[tokenKey] = token
	return s.Save(r, w)
}

// ClearToken drops the persisted token, ending the session.
func (m *Manager) ClearToken(r *http.Request, w http.ResponseWriter) error {
	s, _ := m.store.Get(r, sessionName)
	delete(s.Values, tokenKey)
	return s.Save(r, w)
}

// Theme returns the persisted display preference, "light" unless the user
// has switched to "dark".
func (m *Manager) Theme(r *http.Request) string {
	s, _ := m.store.Get(r, sessionName)
	if theme, _ := s.Values[themeKey].(string); theme == "dark" {
		return "dark"
	}
	return "light"
}

// ToggleTheme flips dark mode and persists the choice.
func (m *Manager) ToggleTheme(r *http.Request, w http.ResponseWriter) error {
	s, _ := m.store.Get(r, sessionName)
	if theme, _ := s.Values[themeKey].(string); theme == "dark" {
		s.Values[themeKey] = "light"
	} else {
		s.Values[themeKey] = "dark"
	}
	return s.Save(r, w)
}

// Flash queues a one-shot message for the next rendered page.
func (m *Manager) Flash(r *http.Request, w http.ResponseWriter, msg string) error {
	s, _ := m.store.Get(r, sessionName)
	s.AddFlash(msg)
	return s.Save(r, w)
}

// Flashes drains queued messages and persists the drained session.
func (m *Manager) Flashes(r *http.Request, w http.ResponseWriter) []string {
	s, _ := m.store.Get(r, sessionName)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	if err := s.Save(r, w); err != nil {
		log.Printf("Failed to persist drained flashes: %v", err)
	}
	return msgs
}
