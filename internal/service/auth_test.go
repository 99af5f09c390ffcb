package service_test

import (
	"context"
	"database/sql"
	"testing"

	"gracehub-backend/internal/apperr"
	"gracehub-backend/internal/domain"
	"gracehub-backend/internal/security"
	"gracehub-backend/internal/service"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (*MockUserRepo, *MockRoleRepo, service.AuthService) {
	userRepo := new(MockUserRepo)
	roleRepo := new(MockRoleRepo)
	tokens := security.NewTokenManager("test-secret-key-for-unit-tests", 15, 1440)
	svc := service.NewAuthService(userRepo, roleRepo, tokens)
	return userRepo, roleRepo, svc
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the user and issues both tokens", func(t *testing.T) {
		userRepo, roleRepo, svc := newAuthFixture()

		userRepo.On("GetByEmail", ctx, "new@example.com").Return(nil, sql.ErrNoRows)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "new@example.com" && u.Name == "New Member" && u.PasswordHash != "password123"
		})).Return(nil)
		roleRepo.On("ListCapabilities", ctx, mock.AnythingOfType("int32")).Return([]domain.Capability{}, nil)

		user, access, refresh, err := svc.Signup(ctx, "New@Example.com", "password123", "New Member", nil)

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.NotEqual(t, access, refresh)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		userRepo, _, svc := newAuthFixture()

		userRepo.On("GetByEmail", ctx, "taken@example.com").Return(&domain.User{ID: 5, Email: "taken@example.com"}, nil)

		_, _, _, err := svc.Signup(ctx, "taken@example.com", "password123", "Someone", nil)

		require.Error(t, err)
		assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))
	})

	t.Run("a concurrent signup losing the unique-index race maps to conflict", func(t *testing.T) {
		userRepo, _, svc := newAuthFixture()

		// Both signups pass the existence check before either row lands.
		userRepo.On("GetByEmail", ctx, "racer@example.com").Return(nil, sql.ErrNoRows)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(&pq.Error{Code: "23505"})

		_, _, _, err := svc.Signup(ctx, "racer@example.com", "password123", "Racer", nil)

		require.Error(t, err)
		assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))
	})

	t.Run("short password is rejected", func(t *testing.T) {
		_, _, svc := newAuthFixture()

		_, _, _, err := svc.Signup(ctx, "new@example.com", "short", "New Member", nil)

		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
	})

	t.Run("malformed email is rejected", func(t *testing.T) {
		_, _, svc := newAuthFixture()

		_, _, _, err := svc.Signup(ctx, "not-an-email", "password123", "New Member", nil)

		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("valid credentials issue tokens carrying capabilities", func(t *testing.T) {
		userRepo, roleRepo, svc := newAuthFixture()

		userRepo.On("GetByEmail", ctx, "member@example.com").
			Return(&domain.User{ID: 10, Email: "member@example.com", PasswordHash: string(hash)}, nil)
		roleRepo.On("ListCapabilities", ctx, int32(10)).Return([]domain.Capability{domain.CapabilityPastor}, nil)

		access, refresh, err := svc.Login(ctx, "member@example.com", "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)

		tokens := security.NewTokenManager("test-secret-key-for-unit-tests", 15, 1440)
		claims, err := tokens.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, int32(10), claims.UserID)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
		assert.Contains(t, claims.Capabilities, "pastor")
	})

	t.Run("wrong password maps to unauthenticated", func(t *testing.T) {
		userRepo, _, svc := newAuthFixture()

		userRepo.On("GetByEmail", ctx, "member@example.com").
			Return(&domain.User{ID: 10, Email: "member@example.com", PasswordHash: string(hash)}, nil)

		_, _, err := svc.Login(ctx, "member@example.com", "wrong")

		require.Error(t, err)
		assert.Equal(t, apperr.CodeUnauthenticated, apperr.CodeOf(err))
	})

	t.Run("unknown email maps to unauthenticated", func(t *testing.T) {
		userRepo, _, svc := newAuthFixture()

		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows)

		_, _, err := svc.Login(ctx, "ghost@example.com", "password123")

		require.Error(t, err)
		assert.Equal(t, apperr.CodeUnauthenticated, apperr.CodeOf(err))
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret-key-for-unit-tests", 15, 1440)

	t.Run("a valid refresh token issues a fresh pair", func(t *testing.T) {
		userRepo, roleRepo, svc := newAuthFixture()

		refresh, err := tokens.GenerateRefreshToken(10, "member@example.com")
		require.NoError(t, err)

		userRepo.On("GetByID", ctx, int32(10)).
			Return(&domain.User{ID: 10, Email: "member@example.com"}, nil)
		roleRepo.On("ListCapabilities", ctx, int32(10)).Return([]domain.Capability{}, nil)

		access, newRefresh, err := svc.RefreshToken(ctx, refresh)

		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("an access token is not accepted as a refresh token", func(t *testing.T) {
		_, _, svc := newAuthFixture()

		access, err := tokens.GenerateAccessToken(10, "member@example.com", nil)
		require.NoError(t, err)

		_, _, err = svc.RefreshToken(ctx, access)

		require.Error(t, err)
		assert.Equal(t, apperr.CodeUnauthenticated, apperr.CodeOf(err))
	})

	t.Run("garbage input maps to unauthenticated", func(t *testing.T) {
		_, _, svc := newAuthFixture()

		_, _, err := svc.RefreshToken(ctx, "not-a-token")

		require.Error(t, err)
		assert.Equal(t, apperr.CodeUnauthenticated, apperr.CodeOf(err))
	})
}
