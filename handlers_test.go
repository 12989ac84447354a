package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"fintrack/models"

	"github.com/gin-gonic/gin"
)

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	setupTestDB(t)
	r := gin.New()
	if err := loadTemplates(r, ""); err != nil {
		t.Fatalf("load templates: %v", err)
	}
	setupRoutes(r)
	return r
}

// performRequest drives the engine through httptest, carrying cookies like
// a browser would.
func performRequest(r http.Handler, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, _ := http.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name && ck.Value != "" {
			return ck
		}
	}
	return nil
}

// loginAs logs a registered user in through the real handlers and returns
// the session cookie plus the per-session CSRF token.
func loginAs(t *testing.T, r http.Handler, username, password string) ([]*http.Cookie, string) {
	t.Helper()
	get := performRequest(r, http.MethodGet, "/login", nil, nil)
	csrfCk := cookieByName(get, csrfCookie)
	if csrfCk == nil {
		t.Fatal("login page did not set a CSRF cookie")
	}
	form := url.Values{"username": {username}, "password": {password}, csrfFormField: {csrfCk.Value}}
	post := performRequest(r, http.MethodPost, "/login", form, []*http.Cookie{csrfCk})
	if post.Code != http.StatusFound {
		t.Fatalf("login failed: status=%d body=%s", post.Code, post.Body.String())
	}
	sessCk := cookieByName(post, sessionCookie)
	if sessCk == nil {
		t.Fatal("login did not set a session cookie")
	}
	s, err := lookupSession(sessCk.Value)
	if err != nil {
		t.Fatalf("session cookie not valid: %v", err)
	}
	return []*http.Cookie{sessCk}, s.CSRFToken
}

func TestRedirectsUnauthenticated(t *testing.T) {
	r := setupTestServer(t)

	rec := performRequest(r, http.MethodGet, "/transactions", nil, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}

	rec = performRequest(r, http.MethodGet, "/api/summary", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("api route: expected 401, got %d", rec.Code)
	}
}

func TestRegisterLoginFlow(t *testing.T) {
	r := setupTestServer(t)

	get := performRequest(r, http.MethodGet, "/register", nil, nil)
	csrfCk := cookieByName(get, csrfCookie)
	if csrfCk == nil {
		t.Fatal("register page did not set a CSRF cookie")
	}
	form := url.Values{
		"username": {"alice"}, "email": {"alice@example.com"},
		"password": {"secret1"}, "password2": {"secret1"},
		csrfFormField: {csrfCk.Value},
	}
	post := performRequest(r, http.MethodPost, "/register", form, []*http.Cookie{csrfCk})
	if post.Code != http.StatusFound {
		t.Fatalf("register failed: status=%d body=%s", post.Code, post.Body.String())
	}
	// same form again conflicts
	post = performRequest(r, http.MethodPost, "/register", form, []*http.Cookie{csrfCk})
	if post.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", post.Code)
	}

	cookies, _ := loginAs(t, r, "alice", "secret1")
	dash := performRequest(r, http.MethodGet, "/dashboard", nil, cookies)
	if dash.Code != http.StatusOK || !strings.Contains(dash.Body.String(), "Dashboard") {
		t.Fatalf("dashboard: status=%d", dash.Code)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	r := setupTestServer(t)
	mustRegister(t, "alice")
	cookies, csrf := loginAs(t, r, "alice", "pass123")

	rec := performRequest(r, http.MethodPost, "/logout", url.Values{csrfFormField: {csrf}}, cookies)
	if rec.Code != http.StatusFound {
		t.Fatalf("logout: expected redirect, got %d", rec.Code)
	}
	// the old cookie must no longer work
	rec = performRequest(r, http.MethodGet, "/transactions", nil, cookies)
	if rec.Code != http.StatusFound {
		t.Fatalf("revoked session still accepted: %d", rec.Code)
	}
}

func TestCSRFRejected(t *testing.T) {
	r := setupTestServer(t)
	mustRegister(t, "alice")
	cookies, _ := loginAs(t, r, "alice", "pass123")

	form := url.Values{"amount": {"5.00"}, "type": {"expense"}, "date": {"2024-03-01"}}
	rec := performRequest(r, http.MethodPost, "/transactions/new", form, cookies)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("missing token: expected 403, got %d", rec.Code)
	}
	form.Set(csrfFormField, "wrong")
	rec = performRequest(r, http.MethodPost, "/transactions/new", form, cookies)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrong token: expected 403, got %d", rec.Code)
	}
}

func TestTransactionCRUDOverHTTP(t *testing.T) {
	r := setupTestServer(t)
	mustRegister(t, "alice")
	cookies, csrf := loginAs(t, r, "alice", "pass123")

	form := url.Values{
		"amount": {"42.50"}, "type": {"expense"}, "date": {"2024-03-01"},
		"description": {"new shoes"}, csrfFormField: {csrf},
	}
	rec := performRequest(r, http.MethodPost, "/transactions/new", form, cookies)
	if rec.Code != http.StatusFound {
		t.Fatalf("create: status=%d body=%s", rec.Code, rec.Body.String())
	}
	list := performRequest(r, http.MethodGet, "/transactions", nil, cookies)
	if list.Code != http.StatusOK || !strings.Contains(list.Body.String(), "new shoes") {
		t.Fatalf("listing missing new transaction: status=%d", list.Code)
	}

	// invalid input re-renders the form with messages
	bad := url.Values{"amount": {"abc"}, "type": {"expense"}, csrfFormField: {csrf}}
	rec = performRequest(r, http.MethodPost, "/transactions/new", bad, cookies)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "non-zero amount") {
		t.Fatalf("validation: status=%d", rec.Code)
	}
}

func TestOwnership404OverHTTP(t *testing.T) {
	r := setupTestServer(t)
	alice := mustRegister(t, "alice")
	mustRegister(t, "bob")
	tx := mustTx(t, alice.ID, "10.00", models.KindExpense, "2024-03-01", "private", nil)

	cookies, csrf := loginAs(t, r, "bob", "pass123")
	rec := performRequest(r, http.MethodGet, fmt.Sprintf("/transactions/%d/edit", tx.ID), nil, cookies)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign edit page: expected 404, got %d", rec.Code)
	}
	rec = performRequest(r, http.MethodPost, fmt.Sprintf("/transactions/%d/delete", tx.ID), url.Values{csrfFormField: {csrf}}, cookies)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: expected 404, got %d", rec.Code)
	}
}

func TestExportCSVMatchesSearch(t *testing.T) {
	r := setupTestServer(t)
	alice := mustRegister(t, "alice")
	mustTx(t, alice.ID, "10.00", models.KindExpense, "2024-03-01", "first", nil)
	mustTx(t, alice.ID, "20.00", models.KindIncome, "2024-03-05", "second", nil)
	mustTx(t, alice.ID, "30.00", models.KindExpense, "2024-02-01", "third", nil)

	cookies, _ := loginAs(t, r, "alice", "pass123")
	rec := performRequest(r, http.MethodGet, "/export/csv", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: status=%d", rec.Code)
	}
	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d records", len(records))
	}
	if strings.Join(records[0], ",") != "date,category,description,amount,type" {
		t.Fatalf("unexpected header: %v", records[0])
	}

	items, err := searchAll(alice.ID, SearchFilter{})
	if err != nil {
		t.Fatalf("searchAll: %v", err)
	}
	for i, item := range items {
		row := records[i+1]
		if row[0] != item.Date.Format("2006-01-02") || row[2] != item.Description || row[3] != item.Amount.StringFixed(2) {
			t.Fatalf("row %d does not match search order: %v vs %+v", i, row, item)
		}
	}
}

func TestExportPDFOverHTTP(t *testing.T) {
	r := setupTestServer(t)
	mustRegister(t, "alice")
	cookies, _ := loginAs(t, r, "alice", "pass123")

	// no transactions at all still yields a document
	rec := performRequest(r, http.MethodGet, "/export/pdf", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("pdf export: status=%d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Fatal("response is not a PDF document")
	}
}

func TestAPISummary(t *testing.T) {
	r := setupTestServer(t)
	alice := mustRegister(t, "alice")
	mustTx(t, alice.ID, "-50.00", "", "2024-03-01", "groceries", nil)

	cookies, _ := loginAs(t, r, "alice", "pass123")
	rec := performRequest(r, http.MethodGet, "/api/summary?year=2024", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var out []struct {
		Period  string `json:"period"`
		Income  string `json:"income"`
		Expense string `json:"expense"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if len(out) != 12 {
		t.Fatalf("expected 12 months, got %d", len(out))
	}
	if out[2].Period != "2024-03" || out[2].Expense != "50.00" {
		t.Fatalf("march summary wrong: %+v", out[2])
	}
}

func TestSummaryChartPNGOverHTTP(t *testing.T) {
	r := setupTestServer(t)
	mustRegister(t, "alice")
	cookies, _ := loginAs(t, r, "alice", "pass123")

	rec := performRequest(r, http.MethodGet, "/summary/chart.png?year=2024", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("chart: status=%d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "\x89PNG") {
		t.Fatal("response is not a PNG image")
	}
}
