package repository

import (
	"context"

	"github.com/venuedate/venuedate-backend/internal/domain"
)

// VenueListFilter narrows the admin venue listing.
type VenueListFilter struct {
	Search string
	Status string // "", "active" or "inactive"
	Limit  int
	Offset int
}

type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) error
	GetByID(ctx context.Context, id int) (*domain.Venue, error)

	// GetActive returns the venue only when it is active and not deleted.
	GetActive(ctx context.Context, id int) (*domain.Venue, error)

	// ListActive returns all active, non-deleted venues in stable id order.
	ListActive(ctx context.Context) ([]*domain.Venue, error)

	List(ctx context.Context, filter VenueListFilter) ([]*domain.Venue, int, error)
	Update(ctx context.Context, venue *domain.Venue) error
	SetActive(ctx context.Context, id int, active bool) error
	SoftDelete(ctx context.Context, id int) error
	UpdateOccupancy(ctx context.Context, id, occupancy int) error
	Stats(ctx context.Context) (*domain.VenueStats, error)
}
