package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brightsales/leadtrack-api/internal/auth"
	"github.com/brightsales/leadtrack-api/internal/config"
	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/brightsales/leadtrack-api/internal/http/handler"
	"github.com/brightsales/leadtrack-api/internal/repository"
	"github.com/brightsales/leadtrack-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthHandler(db *gorm.DB) (*handler.AuthHandler, *config.AuthConfig) {
	cfg := &config.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   3600,
		CookieName: "leadtrack_token",
	}
	h := handler.NewAuthHandler(
		repository.NewUserRepository(db),
		auth.NewTokenIssuer(cfg),
		cfg,
		zap.NewNop(),
	)
	return h, cfg
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, role domain.UserRole) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	testutil.CreateTestUser(t, db, email, string(hash), role)
}

func postLogin(t *testing.T, h *handler.AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.Login(rec, req)
	return rec
}

func TestLogin_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, cfg := newAuthHandler(db)
	seedUser(t, db, "alice@example.com", "s3cret-pass", domain.RoleManager)

	rec := postLogin(t, h, `{"email":"alice@example.com","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, domain.RoleManager, resp.Role)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cfg.CookieName, cookies[0].Name)
	assert.Equal(t, resp.Token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newAuthHandler(db)
	seedUser(t, db, "alice@example.com", "s3cret-pass", domain.RoleEmployee)

	rec := postLogin(t, h, `{"email":"alice@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp domain.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Token)
}

func TestLogin_UnknownEmailMatchesWrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newAuthHandler(db)
	seedUser(t, db, "alice@example.com", "s3cret-pass", domain.RoleEmployee)

	wrongPassword := postLogin(t, h, `{"email":"alice@example.com","password":"wrong"}`)
	unknownEmail := postLogin(t, h, `{"email":"nobody@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// Identical bodies so the response cannot reveal which accounts exist
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLogin_RejectsInvalidPayload(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newAuthHandler(db)

	rec := postLogin(t, h, `{"email":"not-an-email","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, cfg := newAuthHandler(db)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	h.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cfg.CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
