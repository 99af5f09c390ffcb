package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gracehub-backend/internal/apperr"
	"gracehub-backend/internal/domain"
	"gracehub-backend/internal/logger"
	"gracehub-backend/internal/metrics"
	"gracehub-backend/internal/repository"

	"github.com/google/uuid"
)

type assignmentService struct {
	appRepo   repository.ApplicationRepository
	groupRepo repository.GroupRepository
	roleRepo  repository.RoleRepository
	userRepo  repository.UserRepository
	noteRepo  repository.NotificationRepository
	emailSvc  EmailService
}

func NewAssignmentService(
	appRepo repository.ApplicationRepository,
	groupRepo repository.GroupRepository,
	roleRepo repository.RoleRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) AssignmentService {
	return &assignmentService{
		appRepo:   appRepo,
		groupRepo: groupRepo,
		roleRepo:  roleRepo,
		userRepo:  userRepo,
		noteRepo:  noteRepo,
		emailSvc:  emailSvc,
	}
}

// AssignPastor applies the PENDING -> ASSIGNED transition to every listed
// application that is still pending. Applications already assigned or
// delivered are left untouched; the returned count covers only the rows that
// actually transitioned.
func (s *assignmentService) AssignPastor(ctx context.Context, caller domain.Caller, appIDs []uuid.UUID, pastorID int32) (int32, error) {
	if !caller.IsAdmin() {
		return 0, apperr.New(apperr.CodeForbidden, "administrator capability required")
	}
	if len(appIDs) == 0 {
		return 0, apperr.New(apperr.CodeInvalidArgument, "application ids are required")
	}
	if pastorID == 0 {
		return 0, apperr.New(apperr.CodeInvalidArgument, "pastor id is required")
	}

	if err := s.requirePastor(ctx, pastorID); err != nil {
		return 0, err
	}

	assigned, err := s.appRepo.AssignPendingByIDs(ctx, appIDs, pastorID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to assign pastor: %w", err)
	}

	metrics.AssignmentsTotal.WithLabelValues("manual").Add(float64(len(assigned)))
	s.notifyAssigned(ctx, assigned, pastorID)

	return int32(len(assigned)), nil
}

// BulkAssignByGroup walks every active group that has a default pastor and
// assigns that pastor to all of the group's still-pending applications. Each
// group is one atomic conditional update; a failing group is logged and
// skipped so the remaining groups still run.
func (s *assignmentService) BulkAssignByGroup(ctx context.Context, caller domain.Caller) (int32, error) {
	if !caller.IsAdmin() {
		return 0, apperr.New(apperr.CodeForbidden, "administrator capability required")
	}

	groups, err := s.groupRepo.ListActiveWithPastor(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list eligible groups: %w", err)
	}

	var total int32
	now := time.Now()
	for _, g := range groups {
		assigned, err := s.appRepo.AssignPendingByGroup(ctx, g.ID, *g.PastorID, now)
		if err != nil {
			logger.Error("bulk assignment failed for group, skipping",
				"group_id", g.ID, "group", g.Name, "pastor_id", *g.PastorID, "error", err)
			metrics.BulkGroupFailures.Inc()
			continue
		}
		if len(assigned) == 0 {
			continue
		}

		total += int32(len(assigned))
		metrics.AssignmentsTotal.WithLabelValues("bulk").Add(float64(len(assigned)))
		s.notifyAssigned(ctx, assigned, *g.PastorID)

		if pastor, err := s.userRepo.GetByID(ctx, *g.PastorID); err == nil {
			_ = s.emailSvc.SendBulkAssignmentSummary(ctx, pastor.Email, pastor.Name, g.Name, len(assigned))
		}
	}

	return total, nil
}

// SetGroupPastor binds or clears a group's default pastor. Existing
// application assignments are never touched; the binding only affects future
// bulk runs.
func (s *assignmentService) SetGroupPastor(ctx context.Context, caller domain.Caller, groupID int32, pastorID *int32) error {
	if !caller.IsAdmin() {
		return apperr.New(apperr.CodeForbidden, "administrator capability required")
	}
	if pastorID != nil {
		if err := s.requirePastor(ctx, *pastorID); err != nil {
			return err
		}
	}

	if err := s.groupRepo.SetPastor(ctx, groupID, pastorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.CodeNotFound, "group not found")
		}
		return fmt.Errorf("failed to set group pastor: %w", err)
	}
	return nil
}

func (s *assignmentService) ListPastorsWithWorkload(ctx context.Context, caller domain.Caller) ([]domain.PastorWorkload, error) {
	if !caller.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "administrator capability required")
	}
	return s.roleRepo.ListPastorsWithWorkload(ctx)
}

func (s *assignmentService) requirePastor(ctx context.Context, pastorID int32) error {
	held, err := s.roleRepo.HasCapability(ctx, pastorID, domain.CapabilityPastor)
	if err != nil {
		return fmt.Errorf("failed to resolve pastor capability: %w", err)
	}
	if !held {
		return apperr.New(apperr.CodeInvalidArgument, "not a pastor")
	}
	return nil
}

// notifyAssigned records an in-app notification and sends an email to each
// owner whose application just got assigned. All of it is best effort; a
// notification failure never unwinds an assignment.
func (s *assignmentService) notifyAssigned(ctx context.Context, assigned []domain.Application, pastorID int32) {
	pastorName := ""
	if pastor, err := s.userRepo.GetByID(ctx, pastorID); err == nil {
		pastorName = pastor.Name
	}

	for _, app := range assigned {
		owner, err := s.userRepo.GetByID(ctx, app.UserID)
		if err != nil {
			logger.Warn("could not load owner for assignment notification", "user_id", app.UserID, "error", err)
			continue
		}
		_ = s.emailSvc.SendAssignmentNotification(ctx, owner.Email, owner.Name, pastorName)
		_ = s.noteRepo.Create(ctx, &domain.Notification{
			UserID:  owner.ID,
			Title:   "A pastor has been assigned",
			Message: fmt.Sprintf("%s will prepare your bible card.", pastorName),
			Attributes: map[string]string{
				"type":           "PASTOR_ASSIGNED",
				"application_id": app.ID.String(),
			},
		})
	}
}
