package repository

import (
	"context"
	"time"

	"github.com/venuedate/venuedate-backend/internal/domain"
)

// PresenceRepository is backed by an expiring store: records vanish on their
// own once past ExpiresAt. Get after expiry returns domain.ErrUserNotFound
// semantics via a nil record, and callers must never assume a record they
// wrote is still there.
type PresenceRepository interface {
	// Upsert replaces the user's single presence record and resets its TTL.
	Upsert(ctx context.Context, p *domain.Presence) error

	// Get returns nil, nil when no live presence exists.
	Get(ctx context.Context, userID int) (*domain.Presence, error)

	// Refresh extends the TTL window of an existing record; missing records
	// are left missing (expiry won the race).
	Refresh(ctx context.Context, userID int, lastSeenAt, expiresAt time.Time) error

	Delete(ctx context.Context, userID int) error

	// CountByVenue recomputes live occupancy for a venue.
	CountByVenue(ctx context.Context, venueID int) (int, error)
}
