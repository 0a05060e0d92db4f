package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

type ChatUseCase struct {
	userRepo  repository.UserRepository
	venueRepo repository.VenueRepository
	chatRepo  repository.ChatRepository
}

func NewChatUseCase(
	userRepo repository.UserRepository,
	venueRepo repository.VenueRepository,
	chatRepo repository.ChatRepository,
) *ChatUseCase {
	return &ChatUseCase{
		userRepo:  userRepo,
		venueRepo: venueRepo,
		chatRepo:  chatRepo,
	}
}

type SendMessageRequest struct {
	MatchID string `json:"match_id" binding:"required,uuid"`
	Text    string `json:"text" binding:"required"`
}

// MessageEntry is a message with its sender projected to the minimum the
// other side needs to render it.
type MessageEntry struct {
	*domain.EphemeralMessage
	Sender domain.ChatPeer `json:"sender"`
}

type MessagesResponse struct {
	MatchID   string          `json:"match_id"`
	Messages  []*MessageEntry `json:"messages"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// ChatEntry is one live conversation in the chat list.
type ChatEntry struct {
	MatchID     string                   `json:"match_id"`
	Venue       *domain.VenueSummary     `json:"venue,omitempty"`
	OtherUser   domain.ChatPeer          `json:"other_user"`
	LastMessage *domain.EphemeralMessage `json:"last_message"`
	CanChat     bool                     `json:"can_chat"`
	CreatedAt   time.Time                `json:"created_at"`
	ExpiresAt   time.Time                `json:"expires_at"`
}

type ChatListResponse struct {
	Chats []*ChatEntry `json:"chats"`
}

// Send posts a message into an ephemeral match. Both participants must be
// checked into the venue where the match formed; the message inherits the
// match's expiry.
func (uc *ChatUseCase) Send(ctx context.Context, userID int, req *SendMessageRequest) (*domain.EphemeralMessage, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}
	if len(text) > domain.MaxMessageLength {
		return nil, domain.ErrMessageTooLong
	}

	m, err := uc.chatRepo.GetMatch(ctx, req.MatchID)
	if err != nil {
		return nil, err
	}
	if !m.HasUser(userID) {
		return nil, domain.ErrNotParticipant
	}

	me, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	otherID, _ := m.OtherUserID(userID)
	other, err := uc.userRepo.GetByID(ctx, otherID)
	if err != nil {
		return nil, err
	}

	// The venue lock works in both directions: leaving closes the window,
	// coming back reopens it.
	if !me.SameVenue(other) {
		return nil, domain.ErrVenueLock
	}
	if !me.IsAtVenue(m.VenueID) {
		return nil, domain.ErrWrongChatVenue
	}

	msg := &domain.EphemeralMessage{
		ID:        uuid.NewString(),
		MatchID:   m.ID,
		From:      userID,
		Text:      text,
		CreatedAt: time.Now(),
		ExpiresAt: m.ExpiresAt,
	}
	if err := uc.chatRepo.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Messages returns a conversation in creation order. Reading only requires
// the requester to be at the match's venue; the other side may have stepped
// out.
func (uc *ChatUseCase) Messages(ctx context.Context, userID int, matchID string) (*MessagesResponse, error) {
	m, err := uc.chatRepo.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.HasUser(userID) {
		return nil, domain.ErrNotParticipant
	}

	me, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !me.IsAtVenue(m.VenueID) {
		return nil, domain.ErrNotAtChatVenue
	}

	msgs, err := uc.chatRepo.Messages(ctx, matchID)
	if err != nil {
		return nil, err
	}

	peers := make(map[int]domain.ChatPeer, 2)
	for _, id := range m.Users {
		u, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				peers[id] = domain.ChatPeer{ID: id}
				continue
			}
			return nil, err
		}
		peers[id] = domain.ChatPeerOf(u)
	}

	entries := make([]*MessageEntry, 0, len(msgs))
	for _, msg := range msgs {
		entries = append(entries, &MessageEntry{EphemeralMessage: msg, Sender: peers[msg.From]})
	}
	return &MessagesResponse{MatchID: m.ID, Messages: entries, ExpiresAt: m.ExpiresAt}, nil
}

// List returns the caller's live conversations, scoped to the current venue
// when checked in. Everything is derived per request; expired matches simply
// stop appearing.
func (uc *ChatUseCase) List(ctx context.Context, userID int) (*ChatListResponse, error) {
	me, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	matches, err := uc.chatRepo.MatchesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	chats := make([]*ChatEntry, 0, len(matches))
	for _, m := range matches {
		if me.ActiveVenueID != nil && m.VenueID != *me.ActiveVenueID {
			continue
		}

		otherID, ok := m.OtherUserID(userID)
		if !ok {
			continue
		}
		other, err := uc.userRepo.GetByID(ctx, otherID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, err
		}

		last, err := uc.chatRepo.LastMessage(ctx, m.ID)
		if err != nil {
			return nil, err
		}

		entry := &ChatEntry{
			MatchID:     m.ID,
			OtherUser:   domain.ChatPeerOf(other),
			LastMessage: last,
			CanChat:     me.SameVenue(other) && me.IsAtVenue(m.VenueID),
			CreatedAt:   m.CreatedAt,
			ExpiresAt:   m.ExpiresAt,
		}
		if venue, err := uc.venueRepo.GetByID(ctx, m.VenueID); err == nil {
			s := venue.Summary()
			entry.Venue = &s
		}
		chats = append(chats, entry)
	}
	return &ChatListResponse{Chats: chats}, nil
}
