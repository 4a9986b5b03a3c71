package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brightsales/leadtrack-api/internal/auth"
	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func issueToken(t *testing.T, mw *auth.Middleware, role domain.UserRole) string {
	t.Helper()
	user := testUser()
	user.Role = role
	token, err := mw.Issuer().Issue(user, time.Now().UTC())
	require.NoError(t, err)
	return token
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_MissingToken(t *testing.T) {
	mw := auth.NewMiddleware(testAuthConfig(), zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	mw.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized")
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	mw := auth.NewMiddleware(testAuthConfig(), zap.NewNop())
	token := issueToken(t, mw, domain.RoleAdmin)

	var captured *auth.UserContext
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	mw.Authenticate(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "alice@example.com", captured.Email)
}

func TestAuthenticate_Cookie(t *testing.T) {
	cfg := testAuthConfig()
	mw := auth.NewMiddleware(cfg, zap.NewNop())
	token := issueToken(t, mw, domain.RoleEmployee)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: token})
	mw.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	mw := auth.NewMiddleware(testAuthConfig(), zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	mw.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_Forbidden(t *testing.T) {
	mw := auth.NewMiddleware(testAuthConfig(), zap.NewNop())
	token := issueToken(t, mw, domain.RoleEmployee)

	guard := mw.Authenticate(mw.RequireRole(domain.RoleAdmin, domain.RoleManager)(okHandler()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	guard.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insufficient permissions")
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	mw := auth.NewMiddleware(testAuthConfig(), zap.NewNop())
	token := issueToken(t, mw, domain.RoleManager)

	guard := mw.Authenticate(mw.RequireRole(domain.RoleAdmin, domain.RoleManager)(okHandler()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	guard.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	mw := auth.NewMiddleware(testAuthConfig(), zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	mw.RequireRole(domain.RoleAdmin)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
