package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	api "gracehub-backend/internal/api/http"
	"gracehub-backend/internal/domain"
	"gracehub-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, email, password, name string, groupID *int32) (*domain.User, string, string, error) {
	args := m.Called(ctx, email, password, name, groupID)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*domain.User), args.String(1), args.String(2), args.Error(3)
}
func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *mockAuthService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	args := m.Called(ctx, refresh)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *mockAuthService) CapabilitiesOf(ctx context.Context, userID int32) ([]domain.Capability, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Capability), args.Error(1)
}

func TestAuthMiddleware(t *testing.T) {
	tokens := security.NewTokenManager("middleware-test-secret", 15, 1440)

	callerEcho := func(captured *domain.Caller) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := api.CallerFromContext(r.Context())
			require.NoError(t, err)
			*captured = caller
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("valid bearer token resolves the caller with fresh capabilities", func(t *testing.T) {
		authSvc := new(mockAuthService)
		mw := api.NewAuthMiddleware(tokens, authSvc)

		// The token carries no capability claim; the role directory is
		// authoritative.
		token, err := tokens.GenerateAccessToken(10, "member@example.com", nil)
		require.NoError(t, err)
		authSvc.On("CapabilitiesOf", mock.Anything, int32(10)).Return([]domain.Capability{domain.CapabilityAdmin}, nil)

		var caller domain.Caller
		r := httptest.NewRequest(http.MethodGet, "/api/v1/applications/me", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		mw.Require(callerEcho(&caller)).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int32(10), caller.ID)
		assert.True(t, caller.IsAdmin())
	})

	t.Run("a non-bearer scheme is rejected", func(t *testing.T) {
		authSvc := new(mockAuthService)
		mw := api.NewAuthMiddleware(tokens, authSvc)

		r := httptest.NewRequest(http.MethodGet, "/api/v1/applications/me", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		mw.Require(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		})).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		authSvc.AssertNotCalled(t, "CapabilitiesOf")
	})

	t.Run("a missing authorization header is rejected", func(t *testing.T) {
		authSvc := new(mockAuthService)
		mw := api.NewAuthMiddleware(tokens, authSvc)

		r := httptest.NewRequest(http.MethodGet, "/api/v1/applications/me", nil)
		w := httptest.NewRecorder()
		mw.Require(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		})).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("a refresh token is not accepted for API access", func(t *testing.T) {
		authSvc := new(mockAuthService)
		mw := api.NewAuthMiddleware(tokens, authSvc)

		refresh, err := tokens.GenerateRefreshToken(10, "member@example.com")
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/v1/applications/me", nil)
		r.Header.Set("Authorization", "Bearer "+refresh)
		w := httptest.NewRecorder()
		mw.Require(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		})).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		authSvc.AssertNotCalled(t, "CapabilitiesOf")
	})
}
