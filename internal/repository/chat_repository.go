package repository

import (
	"context"

	"github.com/venuedate/venuedate-backend/internal/domain"
)

// ChatRepository stores ephemeral matches and their messages in an expiring
// store. GetMatch on an expired id returns domain.ErrChatNotFound — expiry
// and absence are indistinguishable by design.
type ChatRepository interface {
	CreateMatch(ctx context.Context, m *domain.EphemeralMatch) error
	GetMatch(ctx context.Context, id string) (*domain.EphemeralMatch, error)

	// MatchesForUser returns the user's live ephemeral matches, newest
	// first.
	MatchesForUser(ctx context.Context, userID int) ([]*domain.EphemeralMatch, error)

	// AppendMessage stores a message co-expiring with its parent match.
	AppendMessage(ctx context.Context, msg *domain.EphemeralMessage) error

	// Messages returns a match's messages in creation order.
	Messages(ctx context.Context, matchID string) ([]*domain.EphemeralMessage, error)

	// LastMessage returns nil, nil when the conversation is empty.
	LastMessage(ctx context.Context, matchID string) (*domain.EphemeralMessage, error)
}
