package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	// Ensure user1_id < user2_id for the pair-uniqueness constraint
	user1ID, user2ID := domain.OrderPair(match.User1ID, match.User2ID)

	query := `
		INSERT INTO matches (user1_id, user2_id, venue_id, how_matched, matched_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, user1ID, user2ID, match.VenueID, match.HowMatched, match.MatchedAt).
		Scan(&match.ID, &match.CreatedAt)

	match.User1ID = user1ID
	match.User2ID = user2ID

	// The unique index doubles as the conflict detector for concurrent
	// mutual swipes.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return domain.ErrMatchExists
	}
	return err
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	user1ID, user2ID = domain.OrderPair(user1ID, user2ID)

	var match domain.Match
	query := `SELECT * FROM matches WHERE user1_id = $1 AND user2_id = $2`
	err := r.db.GetContext(ctx, &match, query, user1ID, user2ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetUserMatches(ctx context.Context, userID int) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY matched_at DESC
	`
	err := r.db.SelectContext(ctx, &matches, query, userID)
	return matches, err
}

func (r *matchRepository) GetUserMatchesAtVenue(ctx context.Context, userID, venueID int) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND venue_id = $2
		ORDER BY matched_at DESC
	`
	err := r.db.SelectContext(ctx, &matches, query, userID, venueID)
	return matches, err
}

func (r *matchRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM matches`)
	return count, err
}
