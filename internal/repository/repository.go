package repository

import (
	"context"
	"time"

	"gracehub-backend/internal/domain"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// ApplicationRepository persists bible card applications. All status
// transitions are expressed as single conditional UPDATE statements so that
// concurrent assignment attempts on the same row cannot both win; callers
// inspect the affected-row count to learn whether their predicate matched.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	GetByUserID(ctx context.Context, userID int32) (*domain.Application, error)
	List(ctx context.Context, status domain.ApplicationStatus, groupID *int32) ([]domain.Application, error)

	// AssignPendingByIDs transitions the listed applications that are still
	// PENDING to ASSIGNED, stamping pastorID and assignedAt. Returns the
	// rows actually transitioned (id and user_id populated); an application
	// that lost a concurrent race is simply absent from the result.
	AssignPendingByIDs(ctx context.Context, ids []uuid.UUID, pastorID int32, assignedAt time.Time) ([]domain.Application, error)

	// AssignPendingByGroup is the bulk counterpart keyed on group
	// membership: group_id = groupID AND status = PENDING, as one atomic
	// statement.
	AssignPendingByGroup(ctx context.Context, groupID, pastorID int32, assignedAt time.Time) ([]domain.Application, error)

	// UpdatePrayerRequestIfPending rewrites the owner's prayer request only
	// while the application is still PENDING.
	UpdatePrayerRequestIfPending(ctx context.Context, userID int32, text string) (int64, error)

	// AttachDeliveryLinks sets the delivery artifacts and moves the
	// application to DELIVERED. Only ASSIGNED or DELIVERED rows match, so a
	// PENDING application can never skip assignment.
	AttachDeliveryLinks(ctx context.Context, id uuid.UUID, link1, link2 *string, linksAddedAt time.Time) (int64, error)

	// IncrementVisitCount atomically bumps the owner's visit counter and
	// returns the new value.
	IncrementVisitCount(ctx context.Context, userID int32) (int32, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id int32) (*domain.Group, error)
	Update(ctx context.Context, group *domain.Group) error
	List(ctx context.Context, activeOnly bool) ([]domain.Group, error)
	// ListActiveWithPastor returns the groups eligible for bulk assignment:
	// active and carrying a non-null default pastor.
	ListActiveWithPastor(ctx context.Context) ([]domain.Group, error)
	SetPastor(ctx context.Context, groupID int32, pastorID *int32) error
}

// RoleRepository is the role directory: which users hold which capability.
type RoleRepository interface {
	HasCapability(ctx context.Context, userID int32, cap domain.Capability) (bool, error)
	ListCapabilities(ctx context.Context, userID int32) ([]domain.Capability, error)
	Grant(ctx context.Context, userID int32, cap domain.Capability) error
	Revoke(ctx context.Context, userID int32, cap domain.Capability) error
	ListPastorsWithWorkload(ctx context.Context) ([]domain.PastorWorkload, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
