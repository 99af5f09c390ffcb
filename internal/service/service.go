package service

import (
	"context"

	"gracehub-backend/internal/domain"

	"github.com/google/uuid"
)

type AuthService interface {
	Signup(ctx context.Context, email, password, name string, groupID *int32) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)                                      // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	CapabilitiesOf(ctx context.Context, userID int32) ([]domain.Capability, error)
}

// ApplicationService covers the owner-facing lifecycle of a bible card
// application plus delivery by staff.
type ApplicationService interface {
	SubmitPrayerRequest(ctx context.Context, caller domain.Caller, text string) (*domain.Application, error)
	UpdatePrayerRequest(ctx context.Context, caller domain.Caller, text string) (*domain.Application, error)
	GetMyApplication(ctx context.Context, caller domain.Caller) (*domain.Application, error)
	// RecordVisit returns the new visit count. The bool is true when the
	// counter storage is unavailable and the call degraded to a no-op.
	RecordVisit(ctx context.Context, caller domain.Caller) (int32, bool, error)
	AttachDeliveryLinks(ctx context.Context, caller domain.Caller, appID uuid.UUID, link1, link2 string) (*domain.Application, error)
	ListApplications(ctx context.Context, caller domain.Caller, status domain.ApplicationStatus, groupID *int32) ([]domain.Application, error)
}

// AssignmentService computes and applies pastor assignments, manually for an
// explicit batch of application ids or in bulk across all eligible groups.
type AssignmentService interface {
	AssignPastor(ctx context.Context, caller domain.Caller, appIDs []uuid.UUID, pastorID int32) (int32, error)
	BulkAssignByGroup(ctx context.Context, caller domain.Caller) (int32, error)
	SetGroupPastor(ctx context.Context, caller domain.Caller, groupID int32, pastorID *int32) error
	ListPastorsWithWorkload(ctx context.Context, caller domain.Caller) ([]domain.PastorWorkload, error)
}

type AdminService interface {
	CreateGroup(ctx context.Context, caller domain.Caller, name string) (*domain.Group, error)
	UpdateGroup(ctx context.Context, caller domain.Caller, groupID int32, name string, isActive bool) (*domain.Group, error)
	ListGroups(ctx context.Context, caller domain.Caller, activeOnly bool) ([]domain.Group, error)
	GrantCapability(ctx context.Context, caller domain.Caller, userID int32, cap domain.Capability) error
	RevokeCapability(ctx context.Context, caller domain.Caller, userID int32, cap domain.Capability) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, caller domain.Caller, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, caller domain.Caller, notificationID int32) error
}

type EmailService interface {
	SendAssignmentNotification(ctx context.Context, email, name, pastorName string) error
	SendDeliveryNotification(ctx context.Context, email, name string) error
	SendBulkAssignmentSummary(ctx context.Context, pastorEmail, pastorName, groupName string, count int) error
	SendPendingReminder(ctx context.Context, pastorEmail, pastorName, groupName string, pendingCount int) error
}
