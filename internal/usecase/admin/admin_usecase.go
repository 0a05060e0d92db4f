package admin

import (
	"context"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

type AdminUseCase struct {
	userRepo     repository.UserRepository
	venueRepo    repository.VenueRepository
	matchRepo    repository.MatchRepository
	reportRepo   repository.ReportRepository
	presenceRepo repository.PresenceRepository
	swipeRepo    repository.SwipeRepository
}

func NewAdminUseCase(
	userRepo repository.UserRepository,
	venueRepo repository.VenueRepository,
	matchRepo repository.MatchRepository,
	reportRepo repository.ReportRepository,
	presenceRepo repository.PresenceRepository,
	swipeRepo repository.SwipeRepository,
) *AdminUseCase {
	return &AdminUseCase{
		userRepo:     userRepo,
		venueRepo:    venueRepo,
		matchRepo:    matchRepo,
		reportRepo:   reportRepo,
		presenceRepo: presenceRepo,
		swipeRepo:    swipeRepo,
	}
}

type ListUsersRequest struct {
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=Active Suspended Banned"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

type ListUsersResponse struct {
	Users []*domain.User `json:"users"`
	Total int            `json:"total"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Active Suspended Banned"`
}

// DashboardResponse backs the admin overview cards. Everything is computed
// on demand from the live stores.
type DashboardResponse struct {
	TotalUsers     int `json:"total_users"`
	ActiveUsers    int `json:"active_users"`
	SuspendedUsers int `json:"suspended_users"`
	BannedUsers    int `json:"banned_users"`
	TotalVenues    int `json:"total_venues"`
	ActiveVenues   int `json:"active_venues"`
	LivePresence   int `json:"live_presence"`
	TotalMatches   int `json:"total_matches"`
	OpenReports    int `json:"open_reports"`
}

func (uc *AdminUseCase) ListUsers(ctx context.Context, req *ListUsersRequest) (*ListUsersResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}
	users, total, err := uc.userRepo.List(ctx, repository.UserListFilter{
		Search: req.Search,
		Status: req.Status,
		Limit:  limit,
		Offset: req.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &ListUsersResponse{Users: users, Total: total}, nil
}

func (uc *AdminUseCase) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// UpdateUserStatus changes an account's standing. Suspending or banning also
// kicks the user out of their venue so they stop appearing in discovery.
func (uc *AdminUseCase) UpdateUserStatus(ctx context.Context, id int, req *UpdateUserStatusRequest) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, err
	}
	user.Status = req.Status

	if req.Status != domain.StatusActive {
		if err := uc.presenceRepo.Delete(ctx, id); err != nil {
			return nil, err
		}
		if err := uc.userRepo.UpdateActiveVenue(ctx, id, nil); err != nil {
			return nil, err
		}
		user.ActiveVenueID = nil
	}
	return user, nil
}

// DeleteUser removes the account and its volatile state. Matches survive as
// historical rows; the match listing tolerates the missing participant.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, id int) error {
	if _, err := uc.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := uc.presenceRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.swipeRepo.DeleteBySwiper(ctx, id); err != nil {
		return err
	}
	return uc.userRepo.Delete(ctx, id)
}

func (uc *AdminUseCase) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	byStatus, err := uc.userRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	venueStats, err := uc.venueRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := uc.matchRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	openReports, err := uc.reportRepo.CountOpen(ctx)
	if err != nil {
		return nil, err
	}

	livePresence := 0
	venues, err := uc.venueRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range venues {
		count, err := uc.presenceRepo.CountByVenue(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		livePresence += count
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}
	return &DashboardResponse{
		TotalUsers:     total,
		ActiveUsers:    byStatus[domain.StatusActive],
		SuspendedUsers: byStatus[domain.StatusSuspended],
		BannedUsers:    byStatus[domain.StatusBanned],
		TotalVenues:    venueStats.TotalVenues,
		ActiveVenues:   venueStats.ActiveVenues,
		LivePresence:   livePresence,
		TotalMatches:   matches,
		OpenReports:    openReports,
	}, nil
}
