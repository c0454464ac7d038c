package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/authz"
	"github.com/taskhive/taskhive/internal/handlers"
	"github.com/taskhive/taskhive/internal/router"
	"github.com/taskhive/taskhive/internal/store/memstore"
)

// testServer runs the real router over an in-memory store so requests
// exercise the full middleware, handler and serialization path.
type testServer struct {
	engine *gin.Engine
	store  *memstore.Store
	tokens *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := memstore.New()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	h := handlers.New(st, tokens, authz.NewGuard())

	return &testServer{
		engine: router.New(h, tokens),
		store:  st,
		tokens: tokens,
	}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func signupBody(n, role string) map[string]interface{} {
	return map[string]interface{}{
		"username":      "user_" + n,
		"password":      "password123",
		"email":         n + "@example.com",
		"full_name":     "User " + n,
		"gender":        "F",
		"member_no":     "M" + n,
		"date_of_birth": "1990-01-01",
		"id_no":         "ID" + n,
		"role":          role,
	}
}

// signup registers a member through the API and returns their token.
func (ts *testServer) signup(t *testing.T, n, role string) string {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/signup", "", signupBody(n, role))
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup failed: %d %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("signup returned an empty token")
	}
	return resp.Token
}
