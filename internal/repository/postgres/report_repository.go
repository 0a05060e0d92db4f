package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (reporter_user_id, reported_user_id, reason, details, status, admin_notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		report.ReporterUserID, report.ReportedUserID, report.Reason,
		report.Details, report.Status, report.AdminNotes,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id int) (*domain.Report, error) {
	var report domain.Report
	query := `SELECT * FROM reports WHERE id = $1`
	err := r.db.GetContext(ctx, &report, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, status string) ([]*domain.Report, error) {
	var reports []*domain.Report
	query := `
		SELECT * FROM reports
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &reports, query, status)
	return reports, err
}

func (r *reportRepository) Update(ctx context.Context, report *domain.Report) error {
	query := `
		UPDATE reports
		SET status = $1, admin_notes = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, report.Status, report.AdminNotes, report.ID).
		Scan(&report.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrReportNotFound
	}
	return err
}

func (r *reportRepository) CountOpen(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM reports WHERE status = 'Open'`)
	return count, err
}
