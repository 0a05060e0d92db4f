// Package redis implements the TTL-bearing repositories on top of Redis key
// expiry. Records past their expiresAt vanish without any application-side
// reaper, so every read treats a missing key as "never existed".
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

type presenceRepository struct {
	client *redis.Client
}

func NewPresenceRepository(client *redis.Client) repository.PresenceRepository {
	return &presenceRepository{client: client}
}

func presenceKey(userID int) string {
	return fmt.Sprintf("presence:user:%d", userID)
}

// venueMembersKey indexes which users point at a venue. Members are pruned
// lazily on occupancy counts since set entries cannot expire individually.
func venueMembersKey(venueID int) string {
	return fmt.Sprintf("presence:venue:%d", venueID)
}

func (r *presenceRepository) Upsert(ctx context.Context, p *domain.Presence) error {
	// A new check-in replaces the old record, so drop the user from the
	// previous venue's member set first.
	old, err := r.Get(ctx, p.UserID)
	if err != nil {
		return err
	}
	if old != nil && old.VenueID != p.VenueID {
		if err := r.client.SRem(ctx, venueMembersKey(old.VenueID), strconv.Itoa(p.UserID)).Err(); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	ttl := time.Until(p.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("presence expiry must be in the future")
	}
	if err := r.client.Set(ctx, presenceKey(p.UserID), payload, ttl).Err(); err != nil {
		return err
	}
	return r.client.SAdd(ctx, venueMembersKey(p.VenueID), strconv.Itoa(p.UserID)).Err()
}

func (r *presenceRepository) Get(ctx context.Context, userID int) (*domain.Presence, error) {
	val, err := r.client.Get(ctx, presenceKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p domain.Presence
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *presenceRepository) Refresh(ctx context.Context, userID int, lastSeenAt, expiresAt time.Time) error {
	p, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	if p == nil {
		// Expiry won the race; nothing to extend.
		return nil
	}
	p.LastSeenAt = lastSeenAt
	p.ExpiresAt = expiresAt

	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, presenceKey(userID), payload, time.Until(expiresAt)).Err()
}

func (r *presenceRepository) Delete(ctx context.Context, userID int) error {
	p, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := r.client.Del(ctx, presenceKey(userID)).Err(); err != nil {
		return err
	}
	if p != nil {
		return r.client.SRem(ctx, venueMembersKey(p.VenueID), strconv.Itoa(userID)).Err()
	}
	return nil
}

func (r *presenceRepository) CountByVenue(ctx context.Context, venueID int) (int, error) {
	members, err := r.client.SMembers(ctx, venueMembersKey(venueID)).Result()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, member := range members {
		userID, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		p, err := r.Get(ctx, userID)
		if err != nil {
			return 0, err
		}
		if p == nil || p.VenueID != venueID {
			// Expired or moved elsewhere: self-heal the index.
			_ = r.client.SRem(ctx, venueMembersKey(venueID), member).Err()
			continue
		}
		count++
	}
	return count, nil
}
