package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/homelab/stagerad/internal/domain"
)

func TestAuthenticator(t *testing.T) {
	svc := newTestJWTService()

	var seen domain.Caller
	handler := Authenticator(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := ContextIdentityProvider{}.CurrentCaller(r.Context())
		require.NoError(t, err)
		seen = caller
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("valid token", func(t *testing.T) {
		token, err := svc.GenerateToken("admin", []string{domain.AuthorityAdmin, domain.AuthorityUser})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/stage-radiologies", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "admin", seen.Login)
		assert.True(t, seen.HasAnyAuthority(domain.AuthorityAdmin))
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stage-radiologies", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(http.StatusUnauthorized), body["status"])
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newTestJWTService()
		expired.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
		token, err := expired.GenerateToken("admin", nil)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/stage-radiologies", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrExpiredToken.Error())
	})

	t.Run("tampered token", func(t *testing.T) {
		token, err := svc.GenerateToken("admin", nil)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/stage-radiologies", nil)
		req.Header.Set("Authorization", "Bearer "+token+"x")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestContextIdentityProvider(t *testing.T) {
	_, err := ContextIdentityProvider{}.CurrentCaller(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	ctx := WithCaller(context.Background(), domain.Caller{Login: "interne1"})
	caller, err := ContextIdentityProvider{}.CurrentCaller(ctx)
	require.NoError(t, err)
	assert.Equal(t, "interne1", caller.Login)
}
