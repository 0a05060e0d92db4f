package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

type chatRepository struct {
	client *redis.Client
}

func NewChatRepository(client *redis.Client) repository.ChatRepository {
	return &chatRepository{client: client}
}

func matchKey(id string) string {
	return "ephmatch:" + id
}

func userMatchesKey(userID int) string {
	return fmt.Sprintf("ephmatch:user:%d", userID)
}

func messagesKey(matchID string) string {
	return "ephmsg:" + matchID
}

func (r *chatRepository) CreateMatch(ctx context.Context, m *domain.EphemeralMatch) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	ttl := time.Until(m.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("ephemeral match expiry must be in the future")
	}
	if err := r.client.Set(ctx, matchKey(m.ID), payload, ttl).Err(); err != nil {
		return err
	}
	for _, userID := range m.Users {
		if err := r.client.SAdd(ctx, userMatchesKey(userID), m.ID).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (r *chatRepository) GetMatch(ctx context.Context, id string) (*domain.EphemeralMatch, error) {
	val, err := r.client.Get(ctx, matchKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrChatNotFound
	}
	if err != nil {
		return nil, err
	}
	var m domain.EphemeralMatch
	if err := json.Unmarshal([]byte(val), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *chatRepository) MatchesForUser(ctx context.Context, userID int) ([]*domain.EphemeralMatch, error) {
	ids, err := r.client.SMembers(ctx, userMatchesKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	var matches []*domain.EphemeralMatch
	for _, id := range ids {
		m, err := r.GetMatch(ctx, id)
		if errors.Is(err, domain.ErrChatNotFound) {
			// Expired: self-heal the index.
			_ = r.client.SRem(ctx, userMatchesKey(userID), id).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

func (r *chatRepository) AppendMessage(ctx context.Context, msg *domain.EphemeralMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	key := messagesKey(msg.MatchID)
	if err := r.client.RPush(ctx, key, payload).Err(); err != nil {
		return err
	}
	// Messages co-expire with the parent match.
	return r.client.ExpireAt(ctx, key, msg.ExpiresAt).Err()
}

func (r *chatRepository) Messages(ctx context.Context, matchID string) ([]*domain.EphemeralMessage, error) {
	vals, err := r.client.LRange(ctx, messagesKey(matchID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	messages := make([]*domain.EphemeralMessage, 0, len(vals))
	for _, val := range vals {
		var msg domain.EphemeralMessage
		if err := json.Unmarshal([]byte(val), &msg); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}
	return messages, nil
}

func (r *chatRepository) LastMessage(ctx context.Context, matchID string) (*domain.EphemeralMessage, error) {
	val, err := r.client.LIndex(ctx, messagesKey(matchID), -1).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var msg domain.EphemeralMessage
	if err := json.Unmarshal([]byte(val), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
