package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func protected(t *testing.T, s *TokenService) (http.Handler, *Identity) {
	t.Helper()
	var seen Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		require.True(t, ok)
		seen = id
		w.WriteHeader(http.StatusNoContent)
	})
	return Middleware(s, zap.NewNop().Sugar())(next), &seen
}

func TestMiddleware_MissingToken(t *testing.T) {
	h, _ := protected(t, newTestService(t, "k"))

	for _, header := range []string{"", "Bearer ", "Basic dXNlcjpwdw=="} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/fights", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.JSONEq(t, `{"error":"Access denied"}`, rec.Body.String())
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	h, _ := protected(t, newTestService(t, "k"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fights", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())
}

func TestMiddleware_ValidToken(t *testing.T) {
	s := newTestService(t, "k")
	h, seen := protected(t, s)
	tok, err := s.Issue(Identity{UserID: 42, Email: "b@x.com"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fights", nil)
	req.Header.Set("Authorization", "bearer "+tok)
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, Identity{UserID: 42, Email: "b@x.com"}, *seen)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("  BEARER   abc "))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken("Token abc"))
}
