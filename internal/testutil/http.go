package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sakuramc/craftport/internal/app/system/auth"
)

// AdminPrincipal matches the admin allowlists used with NewTestGuard.
func AdminPrincipal() auth.Principal {
	return auth.Principal{
		UserID: "u-admin",
		Email:  "admin@test.example",
		Name:   "Test Admin",
	}
}

// JSONRequest builds a request with a JSON-encoded body.
func JSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	if body == nil {
		return httptest.NewRequest(method, target, nil)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithPrincipal injects a principal, bypassing the resolver middleware.
func WithPrincipal(r *http.Request, p auth.Principal) *http.Request {
	return auth.WithTestPrincipal(r, p)
}

// WithChiURLParam adds a chi URL parameter to the request context, for
// calling handlers directly without a router. Repeated calls accumulate
// parameters on the same route context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	if rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context); ok {
		rctx.URLParams.Add(key, value)
		return r
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// DecodeJSON unmarshals a response body into out.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
