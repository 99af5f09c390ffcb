package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gracehub-backend/internal/apperr"
	"gracehub-backend/internal/domain"
	"gracehub-backend/internal/repository"
	"gracehub-backend/internal/security"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		tokens:   tokens,
	}
}

func (s *authService) Signup(ctx context.Context, email, password, name string, groupID *int32) (*domain.User, string, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", "", apperr.New(apperr.CodeInvalidArgument, "a valid email is required")
	}
	if len(password) < 8 {
		return nil, "", "", apperr.New(apperr.CodeInvalidArgument, "password must be at least 8 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, "", "", apperr.New(apperr.CodeInvalidArgument, "name is required")
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", "", apperr.New(apperr.CodeConflict, "an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		GroupID:      groupID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two concurrent signups can both pass the GetByEmail check; the
		// unique index settles the race.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, "", "", apperr.New(apperr.CodeConflict, "an account with this email already exists")
		}
		return nil, "", "", fmt.Errorf("failed to create user: %w", err)
	}

	access, refresh, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", apperr.New(apperr.CodeUnauthenticated, "invalid email or password")
		}
		return "", "", fmt.Errorf("failed to load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", "", apperr.New(apperr.CodeUnauthenticated, "invalid email or password")
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil || claims.Type != security.TokenTypeRefresh {
		return "", "", apperr.New(apperr.CodeUnauthenticated, "invalid refresh token")
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", apperr.New(apperr.CodeUnauthenticated, "invalid refresh token")
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) CapabilitiesOf(ctx context.Context, userID int32) ([]domain.Capability, error) {
	return s.roleRepo.ListCapabilities(ctx, userID)
}

func (s *authService) issueTokens(ctx context.Context, user *domain.User) (string, string, error) {
	caps, err := s.roleRepo.ListCapabilities(ctx, user.ID)
	if err != nil {
		return "", "", fmt.Errorf("failed to list capabilities: %w", err)
	}
	capStrs := make([]string, len(caps))
	for i, c := range caps {
		capStrs[i] = string(c)
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, capStrs)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return access, refresh, nil
}
