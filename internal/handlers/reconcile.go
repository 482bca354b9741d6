package handlers

import (
	"log"
	"net/http"
	"net/url"

	"paydash/internal/session"
)

// Callback query parameters the payment gateway appends when it redirects the
// user back. The newer name wins when both are present.
var callbackParams = []string{"EdvironCollectRequestId", "collect_request_id"}

// ReconcileHandler syncs a payment's status after the user returns from the
// external payment page with a collect request id in the URL.
type ReconcileHandler struct {
	gateway  Gateway
	sessions *session.Manager
}

func NewReconcileHandler(gateway Gateway, sessions *session.Manager) *ReconcileHandler {
	return &ReconcileHandler{gateway: gateway, sessions: sessions}
}

// Middleware inspects every page load for a callback id. When one is present
// it issues a single status check, surfaces the result as a flash message and
// strips the query string with a redirect. On failure it only logs and serves
// the page with the query intact, so a refresh retries the same check.
func (h *ReconcileHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		collectID := callbackID(r.URL.Query())
		if collectID == "" {
			next.ServeHTTP(w, r)
			return
		}

		status, err := h.gateway.CheckStatus(r.Context(), collectID)
		if err != nil {
			log.Printf("Auto check-status failed: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		log.Printf("Auto-synced payment %s after redirect: %s", collectID, status)

		if err := h.sessions.Flash(r, w, "Payment status synced: "+status); err != nil {
			log.Printf("Failed to save flash: %v", err)
		}
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
	})
}

func callbackID(q url.Values) string {
	for _, name := range callbackParams {
		if v := q.Get(name); v != "" {
			return v
		}
	}
	return ""
}
