package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/brightsales/leadtrack-api/internal/auth"
	"github.com/brightsales/leadtrack-api/internal/config"
	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/brightsales/leadtrack-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo *repository.UserRepository
	issuer   *auth.TokenIssuer
	cfg      *config.AuthConfig
	logger   *zap.Logger
}

func NewAuthHandler(userRepo *repository.UserRepository, issuer *auth.TokenIssuer, cfg *config.AuthConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		issuer:   issuer,
		cfg:      cfg,
		logger:   logger,
	}
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. On success the session
// @Description token is returned in the body and set as an http-only cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.LoginResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same response as a wrong password so accounts cannot be enumerated
			respondJSON(w, http.StatusUnauthorized, domain.LoginResponse{
				Success: false,
				Message: "Invalid credentials",
			})
			return
		}
		h.logger.Error("failed to look up user at login", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Login failed",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondJSON(w, http.StatusUnauthorized, domain.LoginResponse{
			Success: false,
			Message: "Invalid credentials",
		})
		return
	}

	token, err := h.issuer.Issue(user, time.Now())
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Login failed",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.cfg.TokenTTL,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, domain.LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		Role:    user.Role,
	})
}

// Logout godoc
// @Summary Log out
// @Description Clears the session cookie. The token itself simply expires.
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.LoginResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, domain.LoginResponse{
		Success: true,
		Message: "Logged out",
	})
}

// Me godoc
// @Summary Get current user
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.MeResponse
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, domain.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Authentication required",
		})
		return
	}

	respondJSON(w, http.StatusOK, domain.MeResponse{
		ID:    userCtx.UserID,
		Email: userCtx.Email,
		Name:  userCtx.Name,
		Role:  userCtx.Role,
	})
}
