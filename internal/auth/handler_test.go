// AngelaMos | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/househunt/go-backend/internal/core"
)

func newTestRouter(t *testing.T) (chi.Router, *fakeUsers) {
	t.Helper()

	svc, users := newTestService(t)
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r)
	return r, users
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_RegisterStatuses(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"renter", `{"name":"Rita","email":"rita@example.com","password":"secret1"}`, http.StatusCreated},
		{"duplicate email", `{"name":"Rita","email":"RITA@example.com","password":"secret1"}`, http.StatusConflict},
		{"weak password", `{"name":"Pat","email":"pat@example.com","password":"abcdef"}`, http.StatusUnprocessableEntity},
		{"owner without phone", `{"name":"Oz","email":"oz@example.com","password":"secret1","role":"owner"}`, http.StatusBadRequest},
		{"malformed body", `{"name":`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		rec := doJSON(r, http.MethodPost, "/auth/register", tc.body)
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d got %d (%s)", tc.name, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestHandler_RegisterOwnerReturnsNullToken(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(r, http.MethodPost, "/auth/register",
		`{"name":"Oz","email":"oz@example.com","password":"secret1","role":"owner","phone":"555"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tok, ok := body["token"]; !ok || tok != nil {
		t.Fatalf("expected null token, got %v", body["token"])
	}
}

func TestHandler_LoginStatuses(t *testing.T) {
	r, users := newTestRouter(t)
	users.seed(t, UserInfo{ID: "u-1", Email: "rita@example.com", Role: roleRenter, Status: statusApproved}, "secret1")
	users.seed(t, UserInfo{ID: "u-2", Email: "oz@example.com", Role: roleOwner, Status: "pending"}, "secret1")

	cases := []struct {
		name string
		body string
		want int
	}{
		{"ok", `{"email":"rita@example.com","password":"secret1"}`, http.StatusOK},
		{"wrong password", `{"email":"rita@example.com","password":"nope123"}`, http.StatusUnauthorized},
		{"unknown", `{"email":"ghost@example.com","password":"secret1"}`, http.StatusUnauthorized},
		{"pending", `{"email":"oz@example.com","password":"secret1"}`, http.StatusForbidden},
		{"missing", `{"email":"rita@example.com"}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		rec := doJSON(r, http.MethodPost, "/auth/login", tc.body)
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d got %d (%s)", tc.name, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestHandler_InvalidCredentialsBodyIsUniform(t *testing.T) {
	r, users := newTestRouter(t)
	users.seed(t, UserInfo{ID: "u-1", Email: "rita@example.com", Role: roleRenter, Status: statusApproved}, "secret1")

	unknown := doJSON(r, http.MethodPost, "/auth/login", `{"email":"ghost@example.com","password":"secret1"}`)
	wrong := doJSON(r, http.MethodPost, "/auth/login", `{"email":"rita@example.com","password":"nope123"}`)

	var a, b core.ErrorResponse
	_ = json.NewDecoder(unknown.Body).Decode(&a)
	_ = json.NewDecoder(wrong.Body).Decode(&b)

	if a != b {
		t.Fatalf("responses differ: %+v vs %+v", a, b)
	}
	if a.Code != core.CodeInvalidCreds {
		t.Fatalf("unexpected code %q", a.Code)
	}
}
