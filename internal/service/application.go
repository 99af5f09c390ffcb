package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gracehub-backend/internal/apperr"
	"gracehub-backend/internal/domain"
	"gracehub-backend/internal/logger"
	"gracehub-backend/internal/metrics"
	"gracehub-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation = "23505"
	pqUndefinedColumn = "42703"
)

type applicationService struct {
	appRepo  repository.ApplicationRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	emailSvc EmailService
}

func NewApplicationService(
	appRepo repository.ApplicationRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) ApplicationService {
	return &applicationService{
		appRepo:  appRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
		emailSvc: emailSvc,
	}
}

func validatePrayerRequest(text string) error {
	if strings.TrimSpace(text) == "" {
		return apperr.New(apperr.CodeInvalidArgument, "prayer request must not be empty")
	}
	if len([]rune(text)) > domain.MaxPrayerRequestLen {
		return apperr.Newf(apperr.CodeInvalidArgument, "prayer request exceeds %d characters", domain.MaxPrayerRequestLen)
	}
	return nil
}

func (s *applicationService) SubmitPrayerRequest(ctx context.Context, caller domain.Caller, text string) (*domain.Application, error) {
	if err := validatePrayerRequest(text); err != nil {
		return nil, err
	}

	// The group is snapshotted from the requester's affiliation at
	// submission time; later group changes do not move the application.
	user, err := s.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requesting user: %w", err)
	}

	app := &domain.Application{
		UserID:        caller.ID,
		GroupID:       user.GroupID,
		Status:        domain.ApplicationStatusPending,
		PrayerRequest: text,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, apperr.New(apperr.CodeConflict, "an application already exists for this user")
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	metrics.SubmissionsTotal.Inc()
	return app, nil
}

func (s *applicationService) UpdatePrayerRequest(ctx context.Context, caller domain.Caller, text string) (*domain.Application, error) {
	if err := validatePrayerRequest(text); err != nil {
		return nil, err
	}

	affected, err := s.appRepo.UpdatePrayerRequestIfPending(ctx, caller.ID, text)
	if err != nil {
		return nil, fmt.Errorf("failed to update prayer request: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing record from one that moved past PENDING.
		if _, err := s.appRepo.GetByUserID(ctx, caller.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperr.New(apperr.CodeNotFound, "no application found for this user")
			}
			return nil, fmt.Errorf("failed to load application: %w", err)
		}
		return nil, apperr.New(apperr.CodeConflict, "assignment already complete")
	}

	return s.appRepo.GetByUserID(ctx, caller.ID)
}

func (s *applicationService) GetMyApplication(ctx context.Context, caller domain.Caller) (*domain.Application, error) {
	app, err := s.appRepo.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeNotFound, "no application found for this user")
		}
		return nil, err
	}
	return app, nil
}

func (s *applicationService) RecordVisit(ctx context.Context, caller domain.Caller) (int32, bool, error) {
	count, err := s.appRepo.IncrementVisitCount(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, apperr.New(apperr.CodeNotFound, "no application found for this user")
		}
		// A store without the counter column degrades to a no-op success
		// rather than failing the visit flow.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUndefinedColumn {
			logger.Warn("visit counter unavailable, degrading to no-op", "user_id", caller.ID, "error", err)
			return 0, true, nil
		}
		return 0, false, fmt.Errorf("failed to record visit: %w", err)
	}
	metrics.VisitsTotal.Inc()
	return count, false, nil
}

func (s *applicationService) AttachDeliveryLinks(ctx context.Context, caller domain.Caller, appID uuid.UUID, link1, link2 string) (*domain.Application, error) {
	if strings.TrimSpace(link1) == "" && strings.TrimSpace(link2) == "" {
		return nil, apperr.New(apperr.CodeInvalidArgument, "at least one delivery link is required")
	}

	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeNotFound, "application not found")
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}

	assignedToCaller := app.AssignedPastorID != nil && *app.AssignedPastorID == caller.ID && caller.IsPastor()
	if !caller.IsAdmin() && !assignedToCaller {
		return nil, apperr.New(apperr.CodeForbidden, "only an administrator or the assigned pastor may attach delivery links")
	}

	affected, err := s.appRepo.AttachDeliveryLinks(ctx, appID, optionalLink(link1), optionalLink(link2), time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to attach delivery links: %w", err)
	}
	if affected == 0 {
		return nil, apperr.New(apperr.CodeConflict, "application has not been assigned yet")
	}

	metrics.DeliveriesTotal.Inc()

	// Best-effort: tell the requester their card is ready.
	if owner, err := s.userRepo.GetByID(ctx, app.UserID); err == nil {
		_ = s.emailSvc.SendDeliveryNotification(ctx, owner.Email, owner.Name)
		_ = s.noteRepo.Create(ctx, &domain.Notification{
			UserID:  owner.ID,
			Title:   "Your bible card is ready",
			Message: "Delivery links have been added to your bible card application.",
			Attributes: map[string]string{
				"type":           "CARD_DELIVERED",
				"application_id": appID.String(),
			},
		})
	}

	return s.appRepo.GetByID(ctx, appID)
}

func (s *applicationService) ListApplications(ctx context.Context, caller domain.Caller, status domain.ApplicationStatus, groupID *int32) ([]domain.Application, error) {
	if !caller.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "administrator capability required")
	}
	if status != "" && status != domain.ApplicationStatusPending && status != domain.ApplicationStatusAssigned && status != domain.ApplicationStatusDelivered {
		return nil, apperr.Newf(apperr.CodeInvalidArgument, "unknown status %q", status)
	}
	return s.appRepo.List(ctx, status, groupID)
}

func optionalLink(link string) *string {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil
	}
	return &link
}
