package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/venuedate/venuedate-backend/internal/repository"
)

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Add(ctx context.Context, swiperID, targetID int, direction string, venueID *int) error {
	// Terminal state machine: the first swipe wins, repeats are no-ops.
	query := `
		INSERT INTO swipes (swiper_id, target_id, direction, venue_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (swiper_id, target_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, swiperID, targetID, direction, venueID)
	return err
}

func (r *swipeRepository) Exists(ctx context.Context, swiperID, targetID int, direction string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM swipes
			WHERE swiper_id = $1 AND target_id = $2 AND direction = $3
		)
	`
	err := r.db.GetContext(ctx, &exists, query, swiperID, targetID, direction)
	return exists, err
}

func (r *swipeRepository) SwipedIDs(ctx context.Context, swiperID int) ([]int, error) {
	var ids []int
	query := `SELECT target_id FROM swipes WHERE swiper_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, swiperID)
	return ids, err
}

func (r *swipeRepository) DeleteBySwiper(ctx context.Context, swiperID int) error {
	query := `DELETE FROM swipes WHERE swiper_id = $1`
	_, err := r.db.ExecContext(ctx, query, swiperID)
	return err
}

type blockRepository struct {
	db *sqlx.DB
}

func NewBlockRepository(db *sqlx.DB) repository.BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) Add(ctx context.Context, blockerID, blockedID int) error {
	query := `
		INSERT INTO blocks (blocker_id, blocked_id)
		VALUES ($1, $2)
		ON CONFLICT (blocker_id, blocked_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, blockerID, blockedID)
	return err
}

func (r *blockRepository) Remove(ctx context.Context, blockerID, blockedID int) error {
	query := `DELETE FROM blocks WHERE blocker_id = $1 AND blocked_id = $2`
	_, err := r.db.ExecContext(ctx, query, blockerID, blockedID)
	return err
}

func (r *blockRepository) BlockedIDs(ctx context.Context, blockerID int) ([]int, error) {
	var ids []int
	query := `SELECT blocked_id FROM blocks WHERE blocker_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, blockerID)
	return ids, err
}
