package repository

import (
	"context"

	"github.com/venuedate/venuedate-backend/internal/domain"
)

// UserListFilter narrows the admin user listing.
type UserListFilter struct {
	Search string
	Status string
	Limit  int
	Offset int
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateActiveVenue(ctx context.Context, userID int, venueID *int) error
	UpdateLastActive(ctx context.Context, userID int) error
	UpdateStatus(ctx context.Context, userID int, status string) error
	Delete(ctx context.Context, id int) error

	// CandidatesAtVenue returns Active role=user accounts checked into
	// venueID, excluding userID itself, anyone userID has swiped (either
	// direction) and anyone userID has blocked. A non-empty gender narrows
	// further.
	CandidatesAtVenue(ctx context.Context, userID, venueID int, gender string, limit int) ([]*domain.User, error)

	List(ctx context.Context, filter UserListFilter) ([]*domain.User, int, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}
