package venue

import (
	"context"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

type VenueUseCase struct {
	venueRepo    repository.VenueRepository
	presenceRepo repository.PresenceRepository
}

func NewVenueUseCase(venueRepo repository.VenueRepository, presenceRepo repository.PresenceRepository) *VenueUseCase {
	return &VenueUseCase{venueRepo: venueRepo, presenceRepo: presenceRepo}
}

// CreateVenueRequest is the admin creation payload.
type CreateVenueRequest struct {
	Name         string   `json:"name" binding:"required,min=2,max=200"`
	Category     string   `json:"category" binding:"required,venuecategory"`
	Address      string   `json:"address" binding:"omitempty,max=300"`
	City         string   `json:"city" binding:"omitempty,max=100"`
	State        string   `json:"state" binding:"omitempty,max=100"`
	Lat          *float64 `json:"lat" binding:"omitempty,min=-90,max=90"`
	Lng          *float64 `json:"lng" binding:"omitempty,min=-180,max=180"`
	RadiusMeters *int     `json:"radius_meters"`
	Capacity     int      `json:"capacity" binding:"omitempty,min=0"`
	OpeningHours string   `json:"opening_hours" binding:"omitempty,max=200"`
	Tags         []string `json:"tags" binding:"omitempty,max=20"`
}

// UpdateVenueRequest patches only the fields present.
type UpdateVenueRequest struct {
	Name         *string   `json:"name" binding:"omitempty,min=2,max=200"`
	Category     *string   `json:"category" binding:"omitempty,venuecategory"`
	Address      *string   `json:"address" binding:"omitempty,max=300"`
	City         *string   `json:"city" binding:"omitempty,max=100"`
	State        *string   `json:"state" binding:"omitempty,max=100"`
	Lat          *float64  `json:"lat" binding:"omitempty,min=-90,max=90"`
	Lng          *float64  `json:"lng" binding:"omitempty,min=-180,max=180"`
	RadiusMeters *int      `json:"radius_meters"`
	Capacity     *int      `json:"capacity" binding:"omitempty,min=0"`
	OpeningHours *string   `json:"opening_hours" binding:"omitempty,max=200"`
	Tags         *[]string `json:"tags" binding:"omitempty,max=20"`
	IsActive     *bool     `json:"is_active"`
}

// ListVenuesRequest is the admin listing filter.
type ListVenuesRequest struct {
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

type ListVenuesResponse struct {
	Venues []*domain.Venue `json:"venues"`
	Total  int             `json:"total"`
}

func validateRadius(radius *int) (int, error) {
	if radius == nil {
		return domain.DefaultVenueRadiusMeters, nil
	}
	if *radius < domain.MinVenueRadiusMeters || *radius > domain.MaxVenueRadiusMeters {
		return 0, domain.ValidationError("radius_meters must be between 10 and 5000")
	}
	return *radius, nil
}

// Create validates category and geofence radius, then stores the venue
// active.
func (uc *VenueUseCase) Create(ctx context.Context, req *CreateVenueRequest) (*domain.Venue, error) {
	if !domain.ValidVenueCategory(req.Category) {
		return nil, domain.ValidationError("invalid venue category")
	}
	radius, err := validateRadius(req.RadiusMeters)
	if err != nil {
		return nil, err
	}

	venue := &domain.Venue{
		Name:         req.Name,
		Category:     req.Category,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Lat:          req.Lat,
		Lng:          req.Lng,
		RadiusMeters: radius,
		Capacity:     req.Capacity,
		OpeningHours: req.OpeningHours,
		Tags:         req.Tags,
		IsActive:     true,
	}
	if err := uc.venueRepo.Create(ctx, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

// Get returns one venue with occupancy recomputed from live presence. Public
// callers only see active venues.
func (uc *VenueUseCase) Get(ctx context.Context, id int) (*domain.Venue, error) {
	venue, err := uc.venueRepo.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}
	occupancy, err := uc.presenceRepo.CountByVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	venue.CurrentOccupancy = occupancy
	return venue, nil
}

// GetAny is the admin read: inactive venues are visible, soft-deleted ones
// are not.
func (uc *VenueUseCase) GetAny(ctx context.Context, id int) (*domain.Venue, error) {
	venue, err := uc.venueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	occupancy, err := uc.presenceRepo.CountByVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	venue.CurrentOccupancy = occupancy
	return venue, nil
}

// ListActive returns every active venue with live occupancy.
func (uc *VenueUseCase) ListActive(ctx context.Context) ([]*domain.Venue, error) {
	venues, err := uc.venueRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range venues {
		occupancy, err := uc.presenceRepo.CountByVenue(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		v.CurrentOccupancy = occupancy
	}
	return venues, nil
}

// List is the admin listing: includes inactive venues and a total for paging.
func (uc *VenueUseCase) List(ctx context.Context, req *ListVenuesRequest) (*ListVenuesResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}
	venues, total, err := uc.venueRepo.List(ctx, repository.VenueListFilter{
		Search: req.Search,
		Status: req.Status,
		Limit:  limit,
		Offset: req.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &ListVenuesResponse{Venues: venues, Total: total}, nil
}

// Update patches a venue; it can also flip is_active.
func (uc *VenueUseCase) Update(ctx context.Context, id int, req *UpdateVenueRequest) (*domain.Venue, error) {
	venue, err := uc.venueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		venue.Name = *req.Name
	}
	if req.Category != nil {
		if !domain.ValidVenueCategory(*req.Category) {
			return nil, domain.ValidationError("invalid venue category")
		}
		venue.Category = *req.Category
	}
	if req.Address != nil {
		venue.Address = *req.Address
	}
	if req.City != nil {
		venue.City = *req.City
	}
	if req.State != nil {
		venue.State = *req.State
	}
	if req.Lat != nil {
		venue.Lat = req.Lat
	}
	if req.Lng != nil {
		venue.Lng = req.Lng
	}
	if req.RadiusMeters != nil {
		radius, err := validateRadius(req.RadiusMeters)
		if err != nil {
			return nil, err
		}
		venue.RadiusMeters = radius
	}
	if req.Capacity != nil {
		venue.Capacity = *req.Capacity
	}
	if req.OpeningHours != nil {
		venue.OpeningHours = *req.OpeningHours
	}
	if req.Tags != nil {
		venue.Tags = *req.Tags
	}
	if req.IsActive != nil {
		venue.IsActive = *req.IsActive
	}

	if err := uc.venueRepo.Update(ctx, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

// Delete soft-deletes: the row survives for matches that reference it.
func (uc *VenueUseCase) Delete(ctx context.Context, id int) error {
	return uc.venueRepo.SoftDelete(ctx, id)
}

func (uc *VenueUseCase) Stats(ctx context.Context) (*domain.VenueStats, error) {
	return uc.venueRepo.Stats(ctx)
}
