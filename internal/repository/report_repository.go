package repository

import (
	"context"

	"github.com/venuedate/venuedate-backend/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id int) (*domain.Report, error)

	// List returns reports newest first, optionally filtered by status.
	List(ctx context.Context, status string) ([]*domain.Report, error)

	Update(ctx context.Context, report *domain.Report) error
	CountOpen(ctx context.Context) (int, error)
}
