package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/flosch/pongo2/v6"

	"paydash/internal/models"
)

// StatusHandler serves the manual status-check page. The automatic
// post-redirect sync lives in reconcile.go; this page is for looking up a
// collect request by hand.
type StatusHandler struct {
	gateway  Gateway
	renderer *Renderer
}

func NewStatusHandler(gateway Gateway, renderer *Renderer) *StatusHandler {
	return &StatusHandler{gateway: gateway, renderer: renderer}
}

func (h *StatusHandler) Show(w http.ResponseWriter, r *http.Request) {
	collectID := strings.TrimSpace(r.URL.Query().Get("collect_id"))

	ctx := pongo2.Context{"collectID": collectID}
	if collectID != "" {
		status, err := h.gateway.CheckStatus(r.Context(), collectID)
		if err != nil {
			log.Printf("Check-status failed for %s: %v", collectID, err)
			ctx["checkError"] = "Could not check status, please try again"
		} else {
			ctx["status"] = status
			ctx["bucket"] = models.StatusBucket(status)
		}
	}

	h.renderer.Render(w, r, "status.html", ctx)
}
