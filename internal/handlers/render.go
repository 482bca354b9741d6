package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/flosch/pongo2/v6"

	"paydash/internal/models"
	"paydash/internal/session"
)

// Gateway is the slice of the remote payments API the views need. The
// concrete client lives in internal/services.
type Gateway interface {
	ListTransactions(ctx context.Context, token string, req models.PageRequest) (models.TransactionPage, error)
	CheckStatus(ctx context.Context, collectID string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, name, email, password string) error
}

// Renderer loads pongo2 templates from a directory and fills in the shared
// shell context (theme, auth state, flash messages) on every page.
type Renderer struct {
	set      *pongo2.TemplateSet
	sessions *session.Manager
}

func NewRenderer(dir string, sessions *session.Manager) (*Renderer, error) {
	loader, err := pongo2.NewLocalFileSystemLoader(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open templates dir %s: %v", dir, err)
	}
	return &Renderer{
		set:      pongo2.NewSet("paydash", loader),
		sessions: sessions,
	}, nil
}

// Render writes the named template, merging page data over the shell context.
// Flash messages are drained here, before any body bytes go out, so the
// session cookie update still fits in the headers.
func (re *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data pongo2.Context) {
	ctx := pongo2.Context{
		"theme":    re.sessions.Theme(r),
		"loggedIn": re.sessions.Token(r) != "",
		"flashes":  re.sessions.Flashes(r, w),
	}
	if data != nil {
		ctx.Update(data)
	}

	tmpl, err := re.set.FromCache(name)
	if err != nil {
		log.Printf("Failed to load template %s: %v", name, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteWriter(ctx, w); err != nil {
		log.Printf("Failed to render template %s: %v", name, err)
	}
}
