package handlers

import (
	"log"
	"net/http"

	"paydash/internal/session"
)

type ThemeHandler struct {
	sessions *session.Manager
}

func NewThemeHandler(sessions *session.Manager) *ThemeHandler {
	return &ThemeHandler{sessions: sessions}
}

// Toggle flips dark mode and returns to the page the toggle was pressed on.
func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ToggleTheme(r, w); err != nil {
		log.Printf("Failed to save theme: %v", err)
	}

	ref := r.Header.Get("Referer")
	if ref == "" {
		ref = "/"
	}
	http.Redirect(w, r, ref, http.StatusSeeOther)
}
