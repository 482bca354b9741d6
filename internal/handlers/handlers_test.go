package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"paydash/internal/models"
	"paydash/internal/session"
)

// fakeGateway records calls and serves canned responses in place of the
// remote payments API.
type fakeGateway struct {
	page      models.TransactionPage
	listErr   error
	listCalls int
	lastToken string
	lastReq   models.PageRequest

	status        string
	statusErr     error
	statusCalls   int
	lastCollectID string

	loginToken  string
	loginErr    error
	registerErr error
}

func (f *fakeGateway) ListTransactions(ctx context.Context, token string, req models.PageRequest) (models.TransactionPage, error) {
	f.listCalls++
	f.lastToken = token
	f.lastReq = req
	if f.listErr != nil {
		return models.TransactionPage{}, f.listErr
	}
	return f.page, nil
}

func (f *fakeGateway) CheckStatus(ctx context.Context, collectID string) (string, error) {
	f.statusCalls++
	f.lastCollectID = collectID
	if f.statusErr != nil {
		return "", f.statusErr
	}
	return f.status, nil
}

func (f *fakeGateway) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeGateway) Register(ctx context.Context, name, email, password string) error {
	return f.registerErr
}

// newTestApp wires the router the way cmd/main.go does, backed by the fake.
func newTestApp(t *testing.T, gw *fakeGateway) (*mux.Router, *session.Manager) {
	t.Helper()

	sessions := session.NewManager("test-secret")
	renderer, err := NewRenderer("../../web/templates", sessions)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	dashboard := NewDashboardHandler(gw, sessions, renderer)
	auth := NewAuthHandler(gw, sessions, renderer)
	status := NewStatusHandler(gw, renderer)
	theme := NewThemeHandler(sessions)
	reconciler := NewReconcileHandler(gw, sessions)

	router := mux.NewRouter()
	router.Use(reconciler.Middleware)
	router.HandleFunc("/", dashboard.List).Methods("GET")
	router.HandleFunc("/school", dashboard.BySchool).Methods("GET")
	router.HandleFunc("/status", status.Show).Methods("GET")
	router.HandleFunc("/login", auth.LoginForm).Methods("GET")
	router.HandleFunc("/login", auth.Login).Methods("POST")
	router.HandleFunc("/register", auth.RegisterForm).Methods("GET")
	router.HandleFunc("/register", auth.Register).Methods("POST")
	router.HandleFunc("/logout", auth.Logout).Methods("POST")
	router.HandleFunc("/theme", theme.Toggle).Methods("POST")

	return router, sessions
}

func do(router *mux.Router, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

// withCookies builds a follow-up request carrying the cookies a prior
// response set, like a browser would.
func withCookies(method, target string, w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}
