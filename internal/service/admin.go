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
)

type adminService struct {
	groupRepo repository.GroupRepository
	roleRepo  repository.RoleRepository
	userRepo  repository.UserRepository
}

func NewAdminService(groupRepo repository.GroupRepository, roleRepo repository.RoleRepository, userRepo repository.UserRepository) AdminService {
	return &adminService{
		groupRepo: groupRepo,
		roleRepo:  roleRepo,
		userRepo:  userRepo,
	}
}

func (s *adminService) CreateGroup(ctx context.Context, caller domain.Caller, name string) (*domain.Group, error) {
	if !caller.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "administrator capability required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.New(apperr.CodeInvalidArgument, "group name is required")
	}

	group := &domain.Group{Name: name, IsActive: true}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

func (s *adminService) UpdateGroup(ctx context.Context, caller domain.Caller, groupID int32, name string, isActive bool) (*domain.Group, error) {
	if !caller.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "administrator capability required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.New(apperr.CodeInvalidArgument, "group name is required")
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeNotFound, "group not found")
		}
		return nil, fmt.Errorf("failed to load group: %w", err)
	}

	group.Name = name
	group.IsActive = isActive
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	return group, nil
}

func (s *adminService) ListGroups(ctx context.Context, caller domain.Caller, activeOnly bool) ([]domain.Group, error) {
	if !caller.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "administrator capability required")
	}
	return s.groupRepo.List(ctx, activeOnly)
}

func (s *adminService) GrantCapability(ctx context.Context, caller domain.Caller, userID int32, cap domain.Capability) error {
	if !caller.IsAdmin() {
		return apperr.New(apperr.CodeForbidden, "administrator capability required")
	}
	if !domain.KnownCapability(cap) {
		return apperr.Newf(apperr.CodeInvalidArgument, "unknown capability %q", cap)
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.CodeNotFound, "user not found")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	return s.roleRepo.Grant(ctx, userID, cap)
}

func (s *adminService) RevokeCapability(ctx context.Context, caller domain.Caller, userID int32, cap domain.Capability) error {
	if !caller.IsAdmin() {
		return apperr.New(apperr.CodeForbidden, "administrator capability required")
	}
	if !domain.KnownCapability(cap) {
		return apperr.Newf(apperr.CodeInvalidArgument, "unknown capability %q", cap)
	}
	return s.roleRepo.Revoke(ctx, userID, cap)
}
