package service

import (
	"context"
	"database/sql"
	"errors"

	"gracehub-backend/internal/apperr"
	"gracehub-backend/internal/domain"
	"gracehub-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, caller domain.Caller, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, caller.ID, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, caller domain.Caller, notificationID int32) error {
	if err := s.noteRepo.MarkAsRead(ctx, notificationID, caller.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.CodeNotFound, "notification not found")
		}
		return err
	}
	return nil
}
