package match

import (
	"context"
	"errors"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

type MatchUseCase struct {
	userRepo  repository.UserRepository
	venueRepo repository.VenueRepository
	matchRepo repository.MatchRepository
}

func NewMatchUseCase(
	userRepo repository.UserRepository,
	venueRepo repository.VenueRepository,
	matchRepo repository.MatchRepository,
) *MatchUseCase {
	return &MatchUseCase{
		userRepo:  userRepo,
		venueRepo: venueRepo,
		matchRepo: matchRepo,
	}
}

// MatchEntry is one match annotated with the other participant and whether
// chat is currently possible.
type MatchEntry struct {
	*domain.Match
	OtherUser domain.PublicProfile `json:"other_user"`
	Venue     *domain.VenueSummary `json:"venue,omitempty"`
	CanChat   bool                 `json:"can_chat"`
}

type ListResponse struct {
	Matches []*MatchEntry `json:"matches"`

	// VenueID is set when the listing is scoped to the caller's venue.
	VenueID *int `json:"venue_id,omitempty"`
}

// List returns the caller's matches. When checked in, the listing is scoped
// to matches formed at the current venue; otherwise it falls back to the
// unscoped listing.
func (uc *MatchUseCase) List(ctx context.Context, userID int) (*ListResponse, error) {
	me, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if me.ActiveVenueID == nil {
		return uc.ListAll(ctx, userID)
	}
	venueID := *me.ActiveVenueID

	matches, err := uc.matchRepo.GetUserMatchesAtVenue(ctx, userID, venueID)
	if err != nil {
		return nil, err
	}
	entries, err := uc.annotate(ctx, me, matches)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Matches: entries, VenueID: &venueID}, nil
}

// ListAll returns every match regardless of venue.
func (uc *MatchUseCase) ListAll(ctx context.Context, userID int) (*ListResponse, error) {
	me, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	matches, err := uc.matchRepo.GetUserMatches(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := uc.annotate(ctx, me, matches)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Matches: entries}, nil
}

func (uc *MatchUseCase) annotate(ctx context.Context, me *domain.User, matches []*domain.Match) ([]*MatchEntry, error) {
	entries := make([]*MatchEntry, 0, len(matches))
	for _, m := range matches {
		otherID, ok := m.GetOtherUserID(me.ID)
		if !ok {
			continue
		}
		other, err := uc.userRepo.GetByID(ctx, otherID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				// Deleted account: drop the row rather than fail the list.
				continue
			}
			return nil, err
		}

		entry := &MatchEntry{
			Match:     m,
			OtherUser: domain.PublicProfileOf(other),
			CanChat:   me.SameVenue(other),
		}
		if venue, err := uc.venueRepo.GetByID(ctx, m.VenueID); err == nil {
			s := venue.Summary()
			entry.Venue = &s
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
