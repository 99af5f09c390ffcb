package postgres

import (
	"context"
	"database/sql"
	"time"

	"gracehub-backend/internal/domain"
	"gracehub-backend/internal/repository"
)

type roleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) HasCapability(ctx context.Context, userID int32, cap domain.Capability) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM role_grants WHERE user_id = $1 AND capability = $2)`
	var held bool
	if err := r.db.QueryRowContext(ctx, query, userID, cap).Scan(&held); err != nil {
		return false, err
	}
	return held, nil
}

func (r *roleRepository) ListCapabilities(ctx context.Context, userID int32) ([]domain.Capability, error) {
	query := `SELECT capability FROM role_grants WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var caps []domain.Capability
	for rows.Next() {
		var cap domain.Capability
		if err := rows.Scan(&cap); err != nil {
			return nil, err
		}
		caps = append(caps, cap)
	}
	return caps, rows.Err()
}

func (r *roleRepository) Grant(ctx context.Context, userID int32, cap domain.Capability) error {
	query := `INSERT INTO role_grants (user_id, capability, granted_on)
	          VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, userID, cap, time.Now())
	return err
}

func (r *roleRepository) Revoke(ctx context.Context, userID int32, cap domain.Capability) error {
	query := `DELETE FROM role_grants WHERE user_id = $1 AND capability = $2`
	_, err := r.db.ExecContext(ctx, query, userID, cap)
	return err
}

func (r *roleRepository) ListPastorsWithWorkload(ctx context.Context) ([]domain.PastorWorkload, error) {
	query := `SELECT u.id, u.name, u.email, COUNT(a.id)
	          FROM users u
	          JOIN role_grants rg ON rg.user_id = u.id AND rg.capability = $1
	          LEFT JOIN card_applications a ON a.assigned_pastor_id = u.id AND a.status IN ($2, $3)
	          GROUP BY u.id, u.name, u.email
	          ORDER BY u.name`
	rows, err := r.db.QueryContext(ctx, query, domain.CapabilityPastor, domain.ApplicationStatusAssigned, domain.ApplicationStatusDelivered)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workloads []domain.PastorWorkload
	for rows.Next() {
		var w domain.PastorWorkload
		if err := rows.Scan(&w.PastorID, &w.Name, &w.Email, &w.AssignedCount); err != nil {
			return nil, err
		}
		workloads = append(workloads, w)
	}
	return workloads, rows.Err()
}
