package repository

import "context"

// Swipe directions
const (
	SwipeLeft  = "left"
	SwipeRight = "right"
)

// SwipeRepository records one-directional likes and passes. The (swiper,
// target) pair is terminal: a second swipe in any direction is a no-op, and
// the only way back is the bulk reset at check-out.
type SwipeRepository interface {
	// Add records a swipe idempotently. venueID is the swiper's venue at
	// swipe time, nil when passing while not checked in.
	Add(ctx context.Context, swiperID, targetID int, direction string, venueID *int) error

	// Exists reports whether swiperID has swiped targetID in direction.
	Exists(ctx context.Context, swiperID, targetID int, direction string) (bool, error)

	// SwipedIDs returns every user swiperID has swiped in either direction.
	SwipedIDs(ctx context.Context, swiperID int) ([]int, error)

	// DeleteBySwiper purges the swiper's whole history (check-out reset).
	DeleteBySwiper(ctx context.Context, swiperID int) error
}

// BlockRepository keeps the block list with set semantics.
type BlockRepository interface {
	Add(ctx context.Context, blockerID, blockedID int) error
	Remove(ctx context.Context, blockerID, blockedID int) error
	BlockedIDs(ctx context.Context, blockerID int) ([]int, error)
}
