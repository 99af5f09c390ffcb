package postgres

import (
	"database/sql"

	"gracehub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ApplicationRepository
	repository.GroupRepository
	repository.RoleRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
		GroupRepository:        NewGroupRepository(db),
		RoleRepository:         NewRoleRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
