package discover

import (
	"context"
	"sort"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

const maxCandidates = 50

type DiscoverUseCase struct {
	userRepo repository.UserRepository
}

func NewDiscoverUseCase(userRepo repository.UserRepository) *DiscoverUseCase {
	return &DiscoverUseCase{userRepo: userRepo}
}

// Candidate is a public profile annotated with the requester's affinity
// score. The score is asymmetric: it measures how much of the requester's
// vocabulary the candidate shares, not the reverse.
type Candidate struct {
	domain.PublicProfile
	MatchScore      int      `json:"match_score"`
	CommonInterests []string `json:"common_interests"`
}

type CandidatesResponse struct {
	VenueID    int          `json:"venue_id"`
	Candidates []*Candidate `json:"candidates"`
}

// Candidates returns the discovery deck for the requester's current venue.
// Requires a live check-in; the pool excludes self, anyone already swiped in
// either direction, and anyone blocked.
func (uc *DiscoverUseCase) Candidates(ctx context.Context, userID int) (*CandidatesResponse, error) {
	me, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if me.ActiveVenueID == nil {
		return nil, domain.ErrNotCheckedIn
	}
	venueID := *me.ActiveVenueID

	gender := ""
	if me.InterestedIn != domain.InterestedInEveryone {
		gender = me.InterestedIn
	}

	pool, err := uc.userRepo.CandidatesAtVenue(ctx, userID, venueID, gender, maxCandidates)
	if err != nil {
		return nil, err
	}

	mine := me.FoldedInterests()
	candidates := make([]*Candidate, 0, len(pool))
	for _, other := range pool {
		score, common := domain.MatchScore(mine, other.FoldedInterests())
		candidates = append(candidates, &Candidate{
			PublicProfile:   domain.PublicProfileOf(other),
			MatchScore:      score,
			CommonInterests: common,
		})
	}

	// Stable so equal scores keep the repository's id ordering.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	return &CandidatesResponse{VenueID: venueID, Candidates: candidates}, nil
}
