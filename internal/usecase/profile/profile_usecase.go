package profile

import (
	"context"
	"errors"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

type ProfileUseCase struct {
	userRepo     repository.UserRepository
	venueRepo    repository.VenueRepository
	presenceRepo repository.PresenceRepository
}

func NewProfileUseCase(
	userRepo repository.UserRepository,
	venueRepo repository.VenueRepository,
	presenceRepo repository.PresenceRepository,
) *ProfileUseCase {
	return &ProfileUseCase{
		userRepo:     userRepo,
		venueRepo:    venueRepo,
		presenceRepo: presenceRepo,
	}
}

// MeResponse is the caller's own profile. ActiveVenue is populated with a
// live summary when checked in and explicitly unset otherwise.
type MeResponse struct {
	User        *domain.User       `json:"user"`
	ActiveVenue domain.ActiveVenue `json:"active_venue"`
}

// UpdateMeRequest is a strict allow-list: identity fields (email, date of
// birth, role, status) are not editable here.
type UpdateMeRequest struct {
	Name         *string   `json:"name" binding:"omitempty,min=2,max=100"`
	Gender       *string   `json:"gender" binding:"omitempty,oneof=male female other"`
	InterestedIn *string   `json:"interested_in" binding:"omitempty,interestedin"`
	Hobbies      *[]string `json:"hobbies" binding:"omitempty,max=20"`
	Interests    *[]string `json:"interests" binding:"omitempty,max=20"`
	Bio          *string   `json:"bio" binding:"omitempty,max=500"`
	Photos       *[]string `json:"photos" binding:"omitempty,max=6"`
	ShowAge      *bool     `json:"show_age"`
	ShowBio      *bool     `json:"show_bio"`
}

// Me returns the caller's profile with the active venue resolved against live
// presence. A stale active_venue_id pointing at an expired presence record is
// healed to unset.
func (uc *ProfileUseCase) Me(ctx context.Context, userID int) (*MeResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &MeResponse{User: user, ActiveVenue: domain.UnsetVenue()}
	if user.ActiveVenueID == nil {
		return resp, nil
	}

	p, err := uc.presenceRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		// Presence expired since the last write: clear the denormalized
		// pointer so the next read starts clean.
		if err := uc.userRepo.UpdateActiveVenue(ctx, userID, nil); err != nil {
			return nil, err
		}
		user.ActiveVenueID = nil
		return resp, nil
	}

	venue, err := uc.venueRepo.GetByID(ctx, p.VenueID)
	if err != nil {
		if errors.Is(err, domain.ErrVenueNotFound) {
			resp.ActiveVenue = domain.VenueByID(p.VenueID)
			return resp, nil
		}
		return nil, err
	}

	occupancy, err := uc.presenceRepo.CountByVenue(ctx, p.VenueID)
	if err != nil {
		return nil, err
	}
	venue.CurrentOccupancy = occupancy
	resp.ActiveVenue = domain.PopulatedVenue(venue.Summary())
	return resp, nil
}

// UpdateMe patches only the fields present in the request.
func (uc *ProfileUseCase) UpdateMe(ctx context.Context, userID int, req *UpdateMeRequest) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.InterestedIn != nil {
		user.InterestedIn = *req.InterestedIn
	}
	if req.Hobbies != nil {
		user.Hobbies = *req.Hobbies
	}
	if req.Interests != nil {
		user.Interests = *req.Interests
	}
	if req.Bio != nil {
		if len(*req.Bio) > domain.MaxBioLength {
			return nil, domain.ValidationError("bio too long")
		}
		user.Bio = *req.Bio
	}
	if req.Photos != nil {
		if len(*req.Photos) > domain.MaxPhotos {
			return nil, domain.ValidationError("too many photos")
		}
		user.Photos = *req.Photos
	}
	if req.ShowAge != nil {
		user.ShowAge = *req.ShowAge
	}
	if req.ShowBio != nil {
		user.ShowBio = *req.ShowBio
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
