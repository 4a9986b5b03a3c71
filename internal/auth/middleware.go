package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/brightsales/leadtrack-api/internal/config"
	"github.com/brightsales/leadtrack-api/internal/domain"
	"go.uber.org/zap"
)

// Middleware is the single authentication/authorization guard. Every
// protected route goes through Authenticate; role-restricted routes wrap it
// with RequireRole. Tokens are accepted from the Authorization header or the
// auth cookie, so both API clients and the browser frontend work.
type Middleware struct {
	issuer *TokenIssuer
	cfg    *config.AuthConfig
	logger *zap.Logger
}

func NewMiddleware(cfg *config.AuthConfig, logger *zap.Logger) *Middleware {
	return &Middleware{
		issuer: NewTokenIssuer(cfg),
		cfg:    cfg,
		logger: logger,
	}
}

// Issuer exposes the token issuer for the login handler
func (m *Middleware) Issuer() *TokenIssuer {
	return m.issuer
}

// Authenticate validates the request token and attaches the user context
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.extractToken(r)
		if token == "" {
			m.unauthorized(w, "Missing authentication token")
			return
		}

		userCtx, err := m.issuer.Validate(token)
		if err != nil {
			m.logger.Debug("token validation failed", zap.Error(err))
			m.unauthorized(w, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
	})
}

// RequireRole restricts a route to the given roles. It must run inside
// Authenticate.
func (m *Middleware) RequireRole(roles ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userCtx, ok := FromContext(r.Context())
			if !ok {
				m.unauthorized(w, "Authentication required")
				return
			}
			if !userCtx.HasAnyRole(roles...) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(domain.ErrorResponse{
					Error:   "Forbidden",
					Message: "Insufficient permissions",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimPrefix(header, "Bearer ")
		}
	}
	if cookie, err := r.Cookie(m.cfg.CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (m *Middleware) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{
		Error:   "Unauthorized",
		Message: message,
	})
}
