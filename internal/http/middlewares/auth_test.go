package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dropDatabas3/mercadito/internal/security/token"
)

func newTestIssuer(t *testing.T) *token.Issuer {
	t.Helper()
	iss, err := token.NewIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer err: %v", err)
	}
	return iss
}

func protectedProbe(t *testing.T, iss *token.Issuer) (http.Handler, *string) {
	t.Helper()
	var gotUserID string
	h := RequireAuth(iss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, &gotUserID
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	h, _ := protectedProbe(t, newTestIssuer(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status got %d want 401", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Fatal("WWW-Authenticate header must be set")
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response must be JSON: %v", err)
	}
	if body["code"] != "TOKEN_MISSING" {
		t.Fatalf("code got %v want TOKEN_MISSING", body["code"])
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	h, _ := protectedProbe(t, newTestIssuer(t))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage.token.here")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status got %d want 401", rec.Code)
	}
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	iss := newTestIssuer(t)
	h, _ := protectedProbe(t, iss)

	raw, _ := iss.Sign("user-1")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic "+raw)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status got %d want 401", rec.Code)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	iss := newTestIssuer(t)
	h, gotUserID := protectedProbe(t, iss)

	raw, err := iss.Sign("user-42")
	if err != nil {
		t.Fatalf("Sign err: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status got %d want 204", rec.Code)
	}
	if *gotUserID != "user-42" {
		t.Fatalf("user id in context got %q want %q", *gotUserID, "user-42")
	}
}
