package http

import (
	"net/http"
	"strings"

	"gracehub-backend/internal/apperr"
	"gracehub-backend/internal/domain"
	"gracehub-backend/internal/logger"
	"gracehub-backend/internal/security"
	"gracehub-backend/internal/service"
)

// AuthMiddleware validates the bearer token and resolves the caller's
// currently held capabilities from the role directory. Capabilities are read
// fresh on every request so a revocation takes effect immediately rather
// than at token expiry.
type AuthMiddleware struct {
	tokens  security.TokenManager
	authSvc service.AuthService
}

func NewAuthMiddleware(tokens security.TokenManager, authSvc service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, authSvc: authSvc}
}

func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil || claims.Type != security.TokenTypeAccess {
			writeError(w, r, apperr.New(apperr.CodeUnauthenticated, "invalid or expired access token"))
			return
		}

		caps, err := m.authSvc.CapabilitiesOf(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		caller := domain.Caller{ID: claims.UserID, Capabilities: caps}
		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}

func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", apperr.New(apperr.CodeUnauthenticated, "authorization token is not provided")
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:], nil
	}
	return "", apperr.New(apperr.CodeUnauthenticated, "authorization header must use the Bearer scheme")
}

// RequestLogger logs each request at debug level.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("http request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
