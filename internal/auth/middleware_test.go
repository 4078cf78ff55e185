package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarquez/taskflow-be/internal/auth"
)

// gateHandler records the claims the middleware injected.
func gateHandler(seen **auth.Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
			*seen = claims
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareMissingHeader(t *testing.T) {
	ts := auth.NewTokenService([]byte("test-secret"))

	var seen *auth.Claims
	handler := auth.Middleware(ts)(gateHandler(&seen))

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestMiddlewareInvalidToken(t *testing.T) {
	ts := auth.NewTokenService([]byte("test-secret"))

	tests := []struct {
		name   string
		header string
	}{
		{name: "Garbage token", header: "Bearer not.a.jwt"},
		{name: "No space in header", header: "lonetoken"},
		{name: "Foreign signature", header: "Bearer " + mustIssue(t, auth.NewTokenService([]byte("other")), "alice", false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *auth.Claims
			handler := auth.Middleware(ts)(gateHandler(&seen))

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Nil(t, seen)
		})
	}
}

func TestMiddlewareValidToken(t *testing.T) {
	ts := auth.NewTokenService([]byte("test-secret"))
	token := mustIssue(t, ts, "alice", true)

	// Any prefix is accepted; the second whitespace-separated field is the
	// token.
	for _, header := range []string{"Bearer " + token, "Token " + token, "whatever " + token + " trailing"} {
		var seen *auth.Claims
		handler := auth.Middleware(ts)(gateHandler(&seen))

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "alice", seen.Username)
		assert.True(t, seen.IsAdmin)
	}
}

func mustIssue(t *testing.T, ts *auth.TokenService, username string, isAdmin bool) string {
	t.Helper()
	token, err := ts.Issue(username, isAdmin)
	require.NoError(t, err)
	return token
}
