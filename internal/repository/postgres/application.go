package postgres

import (
	"context"
	"database/sql"
	"time"

	"gracehub-backend/internal/domain"
	"gracehub-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, user_id, group_id, status, prayer_request, assigned_pastor_id, assigned_at, drive_link_1, drive_link_2, links_added_at, visit_count, created_at, updated_at`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	query := `INSERT INTO card_applications (id, user_id, group_id, status, prayer_request, visit_count, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, 0, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, app.ID, app.UserID, app.GroupID, app.Status, app.PrayerRequest, app.CreatedAt, app.UpdatedAt)
	return err
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM card_applications WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *applicationRepository) GetByUserID(ctx context.Context, userID int32) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM card_applications WHERE user_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

func (r *applicationRepository) List(ctx context.Context, status domain.ApplicationStatus, groupID *int32) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM card_applications
	          WHERE ($1 = '' OR status = $1)
	            AND ($2::int IS NULL OR group_id = $2)
	          ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, string(status), groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := r.scanApp(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) AssignPendingByIDs(ctx context.Context, ids []uuid.UUID, pastorID int32, assignedAt time.Time) ([]domain.Application, error) {
	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = id.String()
	}
	// Single conditional statement; a concurrent assignment that already won
	// leaves the predicate unmatched and the row is absent from the result.
	query := `UPDATE card_applications
	          SET assigned_pastor_id = $1, assigned_at = $2, status = $3, updated_at = $2
	          WHERE id = ANY($4::uuid[]) AND status = $5
	          RETURNING id, user_id`
	return r.assignReturning(ctx, query, pastorID, assignedAt, domain.ApplicationStatusAssigned, pq.Array(idStrs), domain.ApplicationStatusPending)
}

func (r *applicationRepository) AssignPendingByGroup(ctx context.Context, groupID, pastorID int32, assignedAt time.Time) ([]domain.Application, error) {
	query := `UPDATE card_applications
	          SET assigned_pastor_id = $1, assigned_at = $2, status = $3, updated_at = $2
	          WHERE group_id = $4 AND status = $5
	          RETURNING id, user_id`
	return r.assignReturning(ctx, query, pastorID, assignedAt, domain.ApplicationStatusAssigned, groupID, domain.ApplicationStatusPending)
}

func (r *applicationRepository) assignReturning(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assigned []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(&app.ID, &app.UserID); err != nil {
			return nil, err
		}
		assigned = append(assigned, app)
	}
	return assigned, rows.Err()
}

func (r *applicationRepository) UpdatePrayerRequestIfPending(ctx context.Context, userID int32, text string) (int64, error) {
	query := `UPDATE card_applications
	          SET prayer_request = $1, updated_at = $2
	          WHERE user_id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, text, time.Now(), userID, domain.ApplicationStatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *applicationRepository) AttachDeliveryLinks(ctx context.Context, id uuid.UUID, link1, link2 *string, linksAddedAt time.Time) (int64, error) {
	// ASSIGNED rows are delivered; DELIVERED rows may have their links
	// corrected. PENDING rows never match, preserving the forward-only
	// lifecycle.
	query := `UPDATE card_applications
	          SET drive_link_1 = $1, drive_link_2 = $2, links_added_at = $3, status = $4, updated_at = $3
	          WHERE id = $5 AND status IN ($4, $6)`
	res, err := r.db.ExecContext(ctx, query, link1, link2, linksAddedAt, domain.ApplicationStatusDelivered, id, domain.ApplicationStatusAssigned)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *applicationRepository) IncrementVisitCount(ctx context.Context, userID int32) (int32, error) {
	query := `UPDATE card_applications
	          SET visit_count = visit_count + 1
	          WHERE user_id = $1
	          RETURNING visit_count`
	var count int32
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *applicationRepository) scanOne(row *sql.Row) (*domain.Application, error) {
	return r.scanApp(row)
}

func (r *applicationRepository) scanApp(row rowScanner) (*domain.Application, error) {
	app := &domain.Application{}
	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.GroupID,
		&app.Status,
		&app.PrayerRequest,
		&app.AssignedPastorID,
		&app.AssignedAt,
		&app.DriveLink1,
		&app.DriveLink2,
		&app.LinksAddedAt,
		&app.VisitCount,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return app, nil
}
