package service_test

import (
	"context"
	"time"

	"gracehub-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByUserID(ctx context.Context, userID int32) (*domain.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) List(ctx context.Context, status domain.ApplicationStatus, groupID *int32) ([]domain.Application, error) {
	args := m.Called(ctx, status, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) AssignPendingByIDs(ctx context.Context, ids []uuid.UUID, pastorID int32, assignedAt time.Time) ([]domain.Application, error) {
	args := m.Called(ctx, ids, pastorID, assignedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) AssignPendingByGroup(ctx context.Context, groupID, pastorID int32, assignedAt time.Time) ([]domain.Application, error) {
	args := m.Called(ctx, groupID, pastorID, assignedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) UpdatePrayerRequestIfPending(ctx context.Context, userID int32, text string) (int64, error) {
	args := m.Called(ctx, userID, text)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockApplicationRepo) AttachDeliveryLinks(ctx context.Context, id uuid.UUID, link1, link2 *string, linksAddedAt time.Time) (int64, error) {
	args := m.Called(ctx, id, link1, link2, linksAddedAt)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockApplicationRepo) IncrementVisitCount(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}

// MockGroupRepo
type MockGroupRepo struct {
	mock.Mock
}

func (m *MockGroupRepo) Create(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
func (m *MockGroupRepo) GetByID(ctx context.Context, id int32) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}
func (m *MockGroupRepo) Update(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
func (m *MockGroupRepo) List(ctx context.Context, activeOnly bool) ([]domain.Group, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}
func (m *MockGroupRepo) ListActiveWithPastor(ctx context.Context) ([]domain.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}
func (m *MockGroupRepo) SetPastor(ctx context.Context, groupID int32, pastorID *int32) error {
	args := m.Called(ctx, groupID, pastorID)
	return args.Error(0)
}

// MockRoleRepo
type MockRoleRepo struct {
	mock.Mock
}

func (m *MockRoleRepo) HasCapability(ctx context.Context, userID int32, cap domain.Capability) (bool, error) {
	args := m.Called(ctx, userID, cap)
	return args.Bool(0), args.Error(1)
}
func (m *MockRoleRepo) ListCapabilities(ctx context.Context, userID int32) ([]domain.Capability, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Capability), args.Error(1)
}
func (m *MockRoleRepo) Grant(ctx context.Context, userID int32, cap domain.Capability) error {
	args := m.Called(ctx, userID, cap)
	return args.Error(0)
}
func (m *MockRoleRepo) Revoke(ctx context.Context, userID int32, cap domain.Capability) error {
	args := m.Called(ctx, userID, cap)
	return args.Error(0)
}
func (m *MockRoleRepo) ListPastorsWithWorkload(ctx context.Context) ([]domain.PastorWorkload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PastorWorkload), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendAssignmentNotification(ctx context.Context, email, name, pastorName string) error {
	args := m.Called(ctx, email, name, pastorName)
	return args.Error(0)
}
func (m *MockEmailService) SendDeliveryNotification(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}
func (m *MockEmailService) SendBulkAssignmentSummary(ctx context.Context, pastorEmail, pastorName, groupName string, count int) error {
	args := m.Called(ctx, pastorEmail, pastorName, groupName, count)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingReminder(ctx context.Context, pastorEmail, pastorName, groupName string, pendingCount int) error {
	args := m.Called(ctx, pastorEmail, pastorName, groupName, pendingCount)
	return args.Error(0)
}
