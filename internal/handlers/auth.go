package handlers

import (
	"log"
	"net/http"

	"github.com/flosch/pongo2/v6"

	"paydash/internal/session"
)

type AuthHandler struct {
	gateway  Gateway
	sessions *session.Manager
	renderer *Renderer
}

func NewAuthHandler(gateway Gateway, sessions *session.Manager, renderer *Renderer) *AuthHandler {
	return &AuthHandler{gateway: gateway, sessions: sessions, renderer: renderer}
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "login.html", nil)
}

// Login submits credentials to the gateway and stores the returned token.
// Any rejection re-renders the form with the server's message.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	token, err := h.gateway.Login(r.Context(), email, password)
	if err != nil {
		log.Printf("Login failed for %s: %v", email, err)
		h.renderer.Render(w, r, "login.html", pongo2.Context{
			"error": err.Error(),
			"email": email,
		})
		return
	}

	if err := h.sessions.SetToken(r, w, token); err != nil {
		log.Printf("Failed to save session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "register.html", nil)
}

// Register creates an account at the gateway and sends the user to the login
// form. Registration does not start a session.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if err := h.gateway.Register(r.Context(), name, email, password); err != nil {
		log.Printf("Registration failed for %s: %v", email, err)
		h.renderer.Render(w, r, "register.html", pongo2.Context{
			"error": err.Error(),
			"name":  name,
			"email": email,
		})
		return
	}

	if err := h.sessions.Flash(r, w, "Registered successfully! Please login."); err != nil {
		log.Printf("Failed to save flash: %v", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout clears the persisted token and sends the user to the login view.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ClearToken(r, w); err != nil {
		log.Printf("Failed to clear session: %v", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
