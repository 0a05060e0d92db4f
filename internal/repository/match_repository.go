package repository

import (
	"context"

	"github.com/venuedate/venuedate-backend/internal/domain"
)

type MatchRepository interface {
	// Create inserts a match for the ordered pair. A concurrent duplicate
	// insert surfaces as domain.ErrMatchExists via the pair-uniqueness
	// index, never as a raw driver error.
	Create(ctx context.Context, match *domain.Match) error

	GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error)
	GetUserMatches(ctx context.Context, userID int) ([]*domain.Match, error)
	GetUserMatchesAtVenue(ctx context.Context, userID, venueID int) ([]*domain.Match, error)
	Count(ctx context.Context) (int, error)
}
