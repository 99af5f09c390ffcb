package service_test

import (
	"context"
	"testing"

	"gracehub-backend/internal/apperr"
	"gracehub-backend/internal/domain"
	"gracehub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminFixture() (*MockGroupRepo, *MockRoleRepo, *MockUserRepo, service.AdminService) {
	groupRepo := new(MockGroupRepo)
	roleRepo := new(MockRoleRepo)
	userRepo := new(MockUserRepo)
	svc := service.NewAdminService(groupRepo, roleRepo, userRepo)
	return groupRepo, roleRepo, userRepo, svc
}

func TestListGroups(t *testing.T) {
	ctx := context.Background()

	t.Run("returns groups for admins", func(t *testing.T) {
		groupRepo, _, _, svc := newAdminFixture()

		groups := []domain.Group{{ID: 1, Name: "North", PastorID: int32Ptr(7), IsActive: true}}
		groupRepo.On("List", ctx, true).Return(groups, nil)

		got, err := svc.ListGroups(ctx, adminCaller(), true)

		require.NoError(t, err)
		assert.Equal(t, groups, got)
	})

	t.Run("rejects a non-admin caller", func(t *testing.T) {
		groupRepo, _, _, svc := newAdminFixture()

		_, err := svc.ListGroups(ctx, memberCaller(10), false)

		require.Error(t, err)
		assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
		groupRepo.AssertNotCalled(t, "List")
	})

	t.Run("a pastor without admin is also rejected", func(t *testing.T) {
		groupRepo, _, _, svc := newAdminFixture()

		pastor := domain.Caller{ID: 7, Capabilities: []domain.Capability{domain.CapabilityPastor}}
		_, err := svc.ListGroups(ctx, pastor, false)

		require.Error(t, err)
		assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
		groupRepo.AssertNotCalled(t, "List")
	})
}

func TestGrantCapability(t *testing.T) {
	ctx := context.Background()

	t.Run("grants a known capability to an existing user", func(t *testing.T) {
		_, roleRepo, userRepo, svc := newAdminFixture()

		userRepo.On("GetByID", ctx, int32(10)).Return(&domain.User{ID: 10}, nil)
		roleRepo.On("Grant", ctx, int32(10), domain.CapabilityPastor).Return(nil)

		err := svc.GrantCapability(ctx, adminCaller(), 10, domain.CapabilityPastor)

		require.NoError(t, err)
		roleRepo.AssertExpectations(t)
	})

	t.Run("rejects an unknown capability", func(t *testing.T) {
		_, _, _, svc := newAdminFixture()

		err := svc.GrantCapability(ctx, adminCaller(), 10, "superuser")

		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
	})

	t.Run("rejects a non-admin caller", func(t *testing.T) {
		_, roleRepo, _, svc := newAdminFixture()

		err := svc.GrantCapability(ctx, memberCaller(10), 11, domain.CapabilityPastor)

		require.Error(t, err)
		assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
		roleRepo.AssertNotCalled(t, "Grant")
	})
}
