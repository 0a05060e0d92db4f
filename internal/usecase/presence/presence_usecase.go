package presence

import (
	"context"
	"sort"
	"time"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/geo"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

// Listing caps for the proximity endpoints.
const (
	maxNearbyVenues = 50
	maxDetectVenues = 20

	defaultNearbyRadiusMeters = 5000

	// Sort-last marker for venues with no usable coordinates.
	unknownDistanceMeters = 999999
)

type PresenceUseCase struct {
	userRepo     repository.UserRepository
	venueRepo    repository.VenueRepository
	presenceRepo repository.PresenceRepository
	swipeRepo    repository.SwipeRepository
	presenceTTL  time.Duration
}

func NewPresenceUseCase(
	userRepo repository.UserRepository,
	venueRepo repository.VenueRepository,
	presenceRepo repository.PresenceRepository,
	swipeRepo repository.SwipeRepository,
	presenceTTL time.Duration,
) *PresenceUseCase {
	return &PresenceUseCase{
		userRepo:     userRepo,
		venueRepo:    venueRepo,
		presenceRepo: presenceRepo,
		swipeRepo:    swipeRepo,
		presenceTTL:  presenceTTL,
	}
}

type CheckInRequest struct {
	VenueID int `json:"venue_id" binding:"required"`
}

// CheckInResponse reports where the user now is and how busy it is.
type CheckInResponse struct {
	Venue     domain.VenueSummary `json:"venue"`
	ExpiresAt time.Time           `json:"expires_at"`
}

type HeartbeatResponse struct {
	AtVenue   bool       `json:"at_venue"`
	VenueID   *int       `json:"venue_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type PeopleCountResponse struct {
	VenueID int `json:"venue_id"`
	Count   int `json:"count"`
}

// NearbyRequest carries the caller's coordinates; without them the listing is
// unordered and unannotated.
type NearbyRequest struct {
	Lat    *float64 `form:"lat" binding:"omitempty,min=-90,max=90"`
	Lng    *float64 `form:"lng" binding:"omitempty,min=-180,max=180"`
	Radius *float64 `form:"radius" binding:"omitempty,min=0"`
}

// NearbyVenue is a venue with its distance from the caller in whole meters.
type NearbyVenue struct {
	*domain.Venue
	DistanceMeters *int `json:"distance_meters,omitempty"`
}

type DetectRequest struct {
	Lat float64 `json:"lat" binding:"required,min=-90,max=90"`
	Lng float64 `json:"lng" binding:"min=-180,max=180"`
}

// DetectResponse either confirms an auto check-in or offers the candidate
// list for a manual pick.
type DetectResponse struct {
	AtVenue   bool                 `json:"at_venue"`
	Venue     *domain.VenueSummary `json:"venue,omitempty"`
	ExpiresAt *time.Time           `json:"expires_at,omitempty"`
	Venues    []*NearbyVenue       `json:"venues,omitempty"`
}

// CheckIn places the user at a venue, replacing any previous presence. The
// venue must be active; a check-in elsewhere is superseded, never stacked.
func (uc *PresenceUseCase) CheckIn(ctx context.Context, userID, venueID int) (*CheckInResponse, error) {
	venue, err := uc.venueRepo.GetActive(ctx, venueID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &domain.Presence{
		UserID:     userID,
		VenueID:    venueID,
		LastSeenAt: now,
		ExpiresAt:  now.Add(uc.presenceTTL),
	}
	if err := uc.presenceRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateActiveVenue(ctx, userID, &venueID); err != nil {
		return nil, err
	}

	occupancy, err := uc.presenceRepo.CountByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	venue.CurrentOccupancy = occupancy
	// Best-effort derived cache; the count above is authoritative.
	_ = uc.venueRepo.UpdateOccupancy(ctx, venueID, occupancy)

	return &CheckInResponse{Venue: venue.Summary(), ExpiresAt: p.ExpiresAt}, nil
}

// CheckOut clears presence and purges the user's swipe history so the next
// visit starts with a fresh deck. Safe to call when not checked in.
func (uc *PresenceUseCase) CheckOut(ctx context.Context, userID int) error {
	p, err := uc.presenceRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := uc.presenceRepo.Delete(ctx, userID); err != nil {
		return err
	}
	if err := uc.userRepo.UpdateActiveVenue(ctx, userID, nil); err != nil {
		return err
	}
	if err := uc.swipeRepo.DeleteBySwiper(ctx, userID); err != nil {
		return err
	}
	if p != nil {
		occupancy, err := uc.presenceRepo.CountByVenue(ctx, p.VenueID)
		if err != nil {
			return err
		}
		_ = uc.venueRepo.UpdateOccupancy(ctx, p.VenueID, occupancy)
	}
	return nil
}

// Heartbeat slides the presence window forward. A heartbeat with no live
// presence succeeds but reports at_venue:false rather than resurrecting the
// record.
func (uc *PresenceUseCase) Heartbeat(ctx context.Context, userID int) (*HeartbeatResponse, error) {
	p, err := uc.presenceRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		// Heal the denormalized pointer if expiry beat us to it.
		if err := uc.userRepo.UpdateActiveVenue(ctx, userID, nil); err != nil {
			return nil, err
		}
		return &HeartbeatResponse{AtVenue: false}, nil
	}

	now := time.Now()
	expiresAt := now.Add(uc.presenceTTL)
	if err := uc.presenceRepo.Refresh(ctx, userID, now, expiresAt); err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateLastActive(ctx, userID); err != nil {
		return nil, err
	}
	return &HeartbeatResponse{AtVenue: true, VenueID: &p.VenueID, ExpiresAt: &expiresAt}, nil
}

// PeopleCount recomputes live occupancy for an active venue.
func (uc *PresenceUseCase) PeopleCount(ctx context.Context, venueID int) (*PeopleCountResponse, error) {
	if _, err := uc.venueRepo.GetActive(ctx, venueID); err != nil {
		return nil, err
	}
	count, err := uc.presenceRepo.CountByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return &PeopleCountResponse{VenueID: venueID, Count: count}, nil
}

// Nearby lists active venues. With caller coordinates each venue is annotated
// with its rounded distance and the list is sorted ascending; venues with no
// usable coordinates sort last. The radius parameter caps the listing.
func (uc *PresenceUseCase) Nearby(ctx context.Context, req *NearbyRequest) ([]*NearbyVenue, error) {
	venues, err := uc.venueRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*NearbyVenue, 0, len(venues))
	if req.Lat == nil || req.Lng == nil {
		for _, v := range venues {
			out = append(out, &NearbyVenue{Venue: v})
			if len(out) == maxNearbyVenues {
				break
			}
		}
		return out, nil
	}

	radius := float64(defaultNearbyRadiusMeters)
	if req.Radius != nil && *req.Radius > 0 {
		radius = *req.Radius
	}

	for _, v := range venues {
		if !v.HasLocation() {
			d := unknownDistanceMeters
			out = append(out, &NearbyVenue{Venue: v, DistanceMeters: &d})
			continue
		}
		d := geo.RoundedDistance(*req.Lat, *req.Lng, *v.Lat, *v.Lng)
		if float64(d) > radius {
			continue
		}
		dist := d
		out = append(out, &NearbyVenue{Venue: v, DistanceMeters: &dist})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].DistanceMeters < *out[j].DistanceMeters
	})
	if len(out) > maxNearbyVenues {
		out = out[:maxNearbyVenues]
	}
	return out, nil
}

// Detect auto-checks the user into the nearest venue whose geofence contains
// the point. When none does it returns the candidate list sorted by distance
// for a manual pick.
func (uc *PresenceUseCase) Detect(ctx context.Context, userID int, req *DetectRequest) (*DetectResponse, error) {
	venues, err := uc.venueRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var (
		nearest     *domain.Venue
		nearestDist float64
	)
	annotated := make([]*NearbyVenue, 0, len(venues))
	for _, v := range venues {
		if !v.HasLocation() {
			d := unknownDistanceMeters
			annotated = append(annotated, &NearbyVenue{Venue: v, DistanceMeters: &d})
			continue
		}
		d := geo.Distance(req.Lat, req.Lng, *v.Lat, *v.Lng)
		rounded := geo.RoundedDistance(req.Lat, req.Lng, *v.Lat, *v.Lng)
		annotated = append(annotated, &NearbyVenue{Venue: v, DistanceMeters: &rounded})
		if d <= v.ContainmentRadius() && (nearest == nil || d < nearestDist) {
			nearest = v
			nearestDist = d
		}
	}

	if nearest != nil {
		checkin, err := uc.CheckIn(ctx, userID, nearest.ID)
		if err != nil {
			return nil, err
		}
		return &DetectResponse{
			AtVenue:   true,
			Venue:     &checkin.Venue,
			ExpiresAt: &checkin.ExpiresAt,
		}, nil
	}

	sort.SliceStable(annotated, func(i, j int) bool {
		return *annotated[i].DistanceMeters < *annotated[j].DistanceMeters
	})
	if len(annotated) > maxDetectVenues {
		annotated = annotated[:maxDetectVenues]
	}
	return &DetectResponse{AtVenue: false, Venues: annotated}, nil
}
