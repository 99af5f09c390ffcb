package postgres

import (
	"context"
	"database/sql"
	"time"

	"gracehub-backend/internal/domain"
	"gracehub-backend/internal/repository"
)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, g *domain.Group) error {
	query := `INSERT INTO groups (name, pastor_id, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now().Format("2006-01-02")
	g.CreatedOn = now
	g.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, g.Name, g.PastorID, g.IsActive, g.CreatedOn, g.UpdatedOn).Scan(&g.ID)
}

func (r *groupRepository) GetByID(ctx context.Context, id int32) (*domain.Group, error) {
	g := &domain.Group{}
	query := `SELECT id, name, pastor_id, is_active, created_on, updated_on FROM groups WHERE id = $1`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name, &g.PastorID, &g.IsActive, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	g.CreatedOn = createdOn.Format("2006-01-02")
	g.UpdatedOn = updatedOn.Format("2006-01-02")
	return g, nil
}

func (r *groupRepository) Update(ctx context.Context, g *domain.Group) error {
	query := `UPDATE groups SET name=$1, is_active=$2, updated_on=$3 WHERE id=$4`
	g.UpdatedOn = time.Now().Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, query, g.Name, g.IsActive, g.UpdatedOn, g.ID)
	return err
}

func (r *groupRepository) List(ctx context.Context, activeOnly bool) ([]domain.Group, error) {
	query := `SELECT id, name, pastor_id, is_active, created_on, updated_on FROM groups
	          WHERE ($1 = false OR is_active) ORDER BY name`
	return r.list(ctx, query, activeOnly)
}

func (r *groupRepository) ListActiveWithPastor(ctx context.Context) ([]domain.Group, error) {
	query := `SELECT id, name, pastor_id, is_active, created_on, updated_on FROM groups
	          WHERE is_active AND pastor_id IS NOT NULL ORDER BY id`
	return r.list(ctx, query)
}

func (r *groupRepository) SetPastor(ctx context.Context, groupID int32, pastorID *int32) error {
	query := `UPDATE groups SET pastor_id=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, pastorID, time.Now().Format("2006-01-02"), groupID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *groupRepository) list(ctx context.Context, query string, args ...any) ([]domain.Group, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&g.ID, &g.Name, &g.PastorID, &g.IsActive, &createdOn, &updatedOn); err != nil {
			return nil, err
		}
		g.CreatedOn = createdOn.Format("2006-01-02")
		g.UpdatedOn = updatedOn.Format("2006-01-02")
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
