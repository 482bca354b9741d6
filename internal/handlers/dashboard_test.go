package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paydash/internal/models"
)

func samplePage() models.TransactionPage {
	return models.TransactionPage{
		Transactions: []models.Transaction{
			{
				ID:            "t1",
				CollectRef:    models.CollectRef{Kind: models.CollectRefObject, ID: "col-1", SchoolID: "school-1"},
				OrderAmount:   "150",
				Status:        "SUCCESS",
				CustomOrderID: "ord-1",
				PaymentTime:   "2025-03-01T10:30:00Z",
			},
			{
				ID:          "t2",
				CollectRef:  models.CollectRef{Kind: models.CollectRefString, ID: "col-2"},
				OrderAmount: "75",
				Status:      "pending",
			},
		},
		TotalPages: 3,
	}
}

func TestListRendersRows(t *testing.T) {
	gw := &fakeGateway{page: samplePage()}
	router, _ := newTestApp(t, gw)

	w := do(router, httptest.NewRequest("GET", "/?page=2&sort=status&order=asc", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gw.listCalls != 1 {
		t.Fatalf("listCalls = %d, want exactly 1 per page view", gw.listCalls)
	}
	want := models.PageRequest{Page: 2, Limit: 5, Sort: "status", Order: "asc"}
	if gw.lastReq != want {
		t.Errorf("request = %+v, want %+v", gw.lastReq, want)
	}

	body := w.Body.String()
	for _, s := range []string{"col-1", "school-1", "ord-1", "Page 2 of 3", "status-success", "status-pending"} {
		if !strings.Contains(body, s) {
			t.Errorf("body missing %q", s)
		}
	}
	// the string-shaped collect ref has no school id
	if !strings.Contains(body, "col-2") {
		t.Error("body missing second row")
	}
}

func TestListInvalidParamsFallBack(t *testing.T) {
	gw := &fakeGateway{page: models.TransactionPage{TotalPages: 1}}
	router, _ := newTestApp(t, gw)

	do(router, httptest.NewRequest("GET", "/?page=abc&sort=evil&order=up", nil))
	if gw.lastReq != models.DefaultPageRequest() {
		t.Errorf("request = %+v, want defaults", gw.lastReq)
	}
}

func TestListPaginationDisabledStates(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		totalPages   int
		wantDisabled []string
		wantEnabled  []string
	}{
		{"first of three", "/?page=1", 3, []string{">Prev<"}, []string{">Next</a>"}},
		{"middle", "/?page=2", 3, nil, []string{">Prev</a>", ">Next</a>"}},
		{"last of three", "/?page=3", 3, []string{">Next<"}, []string{">Prev</a>"}},
		{"single page", "/?page=1", 1, []string{">Prev<", ">Next<"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{page: models.TransactionPage{TotalPages: tt.totalPages}}
			router, _ := newTestApp(t, gw)

			body := do(router, httptest.NewRequest("GET", tt.url, nil)).Body.String()
			for _, s := range tt.wantDisabled {
				if !strings.Contains(body, `<span class="pager disabled"`+s) {
					t.Errorf("expected disabled pager %q", s)
				}
			}
			for _, s := range tt.wantEnabled {
				if !strings.Contains(body, s) {
					t.Errorf("expected enabled pager link %q", s)
				}
			}
		})
	}
}

func TestListFetchFailureShowsEmptyTable(t *testing.T) {
	gw := &fakeGateway{listErr: errors.New("gateway down")}
	router, _ := newTestApp(t, gw)

	w := do(router, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, failures must not break the page", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No transactions found") {
		t.Error("expected the empty-table message")
	}
}

func TestListSendsSessionToken(t *testing.T) {
	gw := &fakeGateway{page: models.TransactionPage{TotalPages: 1}}
	router, sessions := newTestApp(t, gw)

	seed := httptest.NewRecorder()
	if err := sessions.SetToken(httptest.NewRequest("GET", "/", nil), seed, "tok-9"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	do(router, withCookies("GET", "/", seed))
	if gw.lastToken != "tok-9" {
		t.Errorf("token sent = %q, want tok-9", gw.lastToken)
	}
}

func TestBySchoolFilters(t *testing.T) {
	gw := &fakeGateway{page: samplePage()}
	router, _ := newTestApp(t, gw)

	body := do(router, httptest.NewRequest("GET", "/school?school=school-1", nil)).Body.String()
	if !strings.Contains(body, "col-1") {
		t.Error("matching row filtered out")
	}
	if strings.Contains(body, "col-2") {
		t.Error("row without the school id leaked through the filter")
	}
}

func TestBySchoolWithoutFilterShowsAll(t *testing.T) {
	gw := &fakeGateway{page: samplePage()}
	router, _ := newTestApp(t, gw)

	body := do(router, httptest.NewRequest("GET", "/school", nil)).Body.String()
	if !strings.Contains(body, "col-1") || !strings.Contains(body, "col-2") {
		t.Error("expected all rows when no school filter is set")
	}
}

func TestEachViewReplacesDisplayedSet(t *testing.T) {
	gw := &fakeGateway{page: samplePage()}
	router, _ := newTestApp(t, gw)

	do(router, httptest.NewRequest("GET", "/?page=1", nil))
	gw.page = models.TransactionPage{
		Transactions: []models.Transaction{{
			ID:         "t3",
			CollectRef: models.CollectRef{Kind: models.CollectRefString, ID: "col-3"},
			Status:     "failed",
		}},
		TotalPages: 3,
	}

	body := do(router, httptest.NewRequest("GET", "/?page=2", nil)).Body.String()
	if !strings.Contains(body, "col-3") {
		t.Error("new page content missing")
	}
	if strings.Contains(body, "col-1") {
		t.Error("old page content merged into the new view")
	}
	if gw.listCalls != 2 {
		t.Errorf("listCalls = %d, want one per page change", gw.listCalls)
	}
}
