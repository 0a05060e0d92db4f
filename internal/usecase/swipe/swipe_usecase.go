package swipe

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

type SwipeUseCase struct {
	userRepo  repository.UserRepository
	swipeRepo repository.SwipeRepository
	matchRepo repository.MatchRepository
	chatRepo  repository.ChatRepository
	chatTTL   time.Duration
}

func NewSwipeUseCase(
	userRepo repository.UserRepository,
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	chatRepo repository.ChatRepository,
	chatTTL time.Duration,
) *SwipeUseCase {
	return &SwipeUseCase{
		userRepo:  userRepo,
		swipeRepo: swipeRepo,
		matchRepo: matchRepo,
		chatRepo:  chatRepo,
		chatTTL:   chatTTL,
	}
}

type SwipeRequest struct {
	TargetUserID int `json:"target_user_id" binding:"required"`
}

// MatchedUser is the minimal projection returned on a fresh match.
type MatchedUser struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Photos []string `json:"photos"`
	Bio    string   `json:"bio"`
}

// SwipeResponse reports whether the swipe completed a mutual like. ChatID is
// the ephemeral chat window opened on a fresh match.
type SwipeResponse struct {
	Matched     bool         `json:"matched"`
	Match       *domain.Match `json:"match,omitempty"`
	ChatID      string       `json:"chat_id,omitempty"`
	MatchedUser *MatchedUser `json:"matched_user,omitempty"`
}

// Left records a pass. Always allowed, idempotent, ack only.
func (uc *SwipeUseCase) Left(ctx context.Context, userID int, req *SwipeRequest) error {
	if userID == req.TargetUserID {
		return domain.ValidationError("cannot swipe yourself")
	}
	me, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return uc.swipeRepo.Add(ctx, userID, req.TargetUserID, repository.SwipeLeft, me.ActiveVenueID)
}

// Right records a like and, when it completes a mutual pair, creates the
// permanent Match and opens the ephemeral chat window. Both users must be at
// the same venue; a failed gate leaves no side effects.
func (uc *SwipeUseCase) Right(ctx context.Context, userID int, req *SwipeRequest) (*SwipeResponse, error) {
	if userID == req.TargetUserID {
		return nil, domain.ValidationError("cannot swipe yourself")
	}

	me, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if me.ActiveVenueID == nil {
		return nil, domain.ErrNotCheckedIn
	}
	venueID := *me.ActiveVenueID

	target, err := uc.userRepo.GetByID(ctx, req.TargetUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTargetNotFound
		}
		return nil, err
	}
	if !target.IsAtVenue(venueID) {
		return nil, domain.ErrTargetNotAtVenue
	}

	if err := uc.swipeRepo.Add(ctx, userID, target.ID, repository.SwipeRight, &venueID); err != nil {
		return nil, err
	}

	mutual, err := uc.swipeRepo.Exists(ctx, target.ID, userID, repository.SwipeRight)
	if err != nil {
		return nil, err
	}
	if !mutual {
		return &SwipeResponse{Matched: false}, nil
	}

	// The pair is unique for the application's lifetime: a second meeting
	// at another venue reports matched:false rather than a second match.
	if _, err := uc.matchRepo.GetByUsers(ctx, userID, target.ID); err == nil {
		return &SwipeResponse{Matched: false}, nil
	} else if !errors.Is(err, domain.ErrMatchNotFound) {
		return nil, err
	}

	match := &domain.Match{
		User1ID:    userID,
		User2ID:    target.ID,
		VenueID:    venueID,
		HowMatched: domain.MatchedBySwipe,
		MatchedAt:  time.Now(),
	}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, domain.ErrMatchExists) {
			// A concurrent mutual swipe won the insert.
			return &SwipeResponse{Matched: false}, nil
		}
		return nil, err
	}

	now := time.Now()
	eph := &domain.EphemeralMatch{
		ID:        uuid.NewString(),
		VenueID:   venueID,
		Users:     [2]int{userID, target.ID},
		CreatedAt: now,
		ExpiresAt: now.Add(uc.chatTTL),
	}
	if err := uc.chatRepo.CreateMatch(ctx, eph); err != nil {
		return nil, err
	}

	return &SwipeResponse{
		Matched: true,
		Match:   match,
		ChatID:  eph.ID,
		MatchedUser: &MatchedUser{
			ID:     target.ID,
			Name:   target.Name,
			Photos: target.Photos,
			Bio:    target.Bio,
		},
	}, nil
}
