package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"

	"paydash/internal/models"
	"paydash/internal/session"
)

type DashboardHandler struct {
	gateway  Gateway
	sessions *session.Manager
	renderer *Renderer
}

func NewDashboardHandler(gateway Gateway, sessions *session.Manager, renderer *Renderer) *DashboardHandler {
	return &DashboardHandler{gateway: gateway, sessions: sessions, renderer: renderer}
}

// row is the view model for one table row, fully resolved to display strings.
type row struct {
	CollectID     string
	SchoolID      string
	OrderAmount   string
	Status        string
	StatusBucket  string
	CustomOrderID string
	Time          string
}

func buildRows(txns []models.Transaction) []row {
	rows := make([]row, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, row{
			CollectID:     t.CollectRef.DisplayID(),
			SchoolID:      t.CollectRef.DisplaySchoolID(),
			OrderAmount:   t.OrderAmount.String(),
			Status:        t.Status,
			StatusBucket:  models.StatusBucket(t.Status),
			CustomOrderID: t.CustomOrderID,
			Time:          t.DisplayTime(),
		})
	}
	return rows
}

func pageRequestFromQuery(q url.Values) models.PageRequest {
	req := models.DefaultPageRequest()
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Page = n
		}
	}
	if v := q.Get("sort"); v != "" {
		req.Sort = v
	}
	if v := q.Get("order"); v != "" {
		req.Order = v
	}
	return req.Normalize()
}

// fetch issues exactly one list request and degrades to an empty single-page
// result on any failure; the table then just shows "No transactions found".
func (h *DashboardHandler) fetch(r *http.Request, req models.PageRequest) models.TransactionPage {
	page, err := h.gateway.ListTransactions(r.Context(), h.sessions.Token(r), req)
	if err != nil {
		log.Printf("Error fetching transactions: %v", err)
		return models.TransactionPage{Transactions: []models.Transaction{}, TotalPages: 1}
	}
	return page
}

// List renders the transactions overview with sort and pagination controls.
func (h *DashboardHandler) List(w http.ResponseWriter, r *http.Request) {
	req := pageRequestFromQuery(r.URL.Query())
	page := h.fetch(r, req)

	h.renderer.Render(w, r, "dashboard.html", listContext(req, page, buildRows(page.Transactions)))
}

// BySchool renders the overview filtered to one school identifier.
func (h *DashboardHandler) BySchool(w http.ResponseWriter, r *http.Request) {
	req := pageRequestFromQuery(r.URL.Query())
	schoolID := strings.TrimSpace(r.URL.Query().Get("school"))
	page := h.fetch(r, req)

	rows := buildRows(page.Transactions)
	if schoolID != "" {
		filtered := make([]row, 0, len(rows))
		for _, rw := range rows {
			if rw.SchoolID == schoolID {
				filtered = append(filtered, rw)
			}
		}
		rows = filtered
	}

	ctx := listContext(req, page, rows)
	ctx["school"] = schoolID
	h.renderer.Render(w, r, "school.html", ctx)
}

func listContext(req models.PageRequest, page models.TransactionPage, rows []row) pongo2.Context {
	return pongo2.Context{
		"rows":         rows,
		"page":         req.Page,
		"totalPages":   page.TotalPages,
		"sort":         req.Sort,
		"order":        req.Order,
		"prevPage":     req.Page - 1,
		"nextPage":     req.Page + 1,
		"prevDisabled": req.Page <= 1,
		"nextDisabled": req.Page >= page.TotalPages,
	}
}
