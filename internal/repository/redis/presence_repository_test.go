package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
	redisrepo "github.com/venuedate/venuedate-backend/internal/repository/redis"
)

func setupPresenceRepo(t *testing.T) (repository.PresenceRepository, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return redisrepo.NewPresenceRepository(client), mr
}

func livePresence(userID, venueID int) *domain.Presence {
	now := time.Now()
	return &domain.Presence{
		UserID:     userID,
		VenueID:    venueID,
		LastSeenAt: now,
		ExpiresAt:  now.Add(domain.PresenceTTL),
	}
}

func TestPresenceUpsertAndGet(t *testing.T) {
	repo, _ := setupPresenceRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, livePresence(1, 10)))

	p, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 10, p.VenueID)

	count, err := repo.CountByVenue(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPresenceReplaceMovesVenueMembership(t *testing.T) {
	repo, _ := setupPresenceRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, livePresence(1, 10)))
	require.NoError(t, repo.Upsert(ctx, livePresence(1, 20)))

	p, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 20, p.VenueID, "a new check-in replaces, never appends")

	oldCount, err := repo.CountByVenue(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, oldCount)

	newCount, err := repo.CountByVenue(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, newCount)
}

func TestPresenceExpiry(t *testing.T) {
	repo, mr := setupPresenceRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, livePresence(1, 10)))
	require.NoError(t, repo.Upsert(ctx, livePresence(2, 10)))

	mr.FastForward(domain.PresenceTTL + time.Minute)

	p, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, p, "expired presence reads as never existed")

	count, err := repo.CountByVenue(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "occupancy never counts expired records")
}

func TestPresenceRefreshExtendsWindow(t *testing.T) {
	repo, mr := setupPresenceRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, livePresence(1, 10)))

	// Halfway through the window a heartbeat arrives.
	mr.FastForward(2 * time.Hour)
	now := time.Now()
	require.NoError(t, repo.Refresh(ctx, 1, now, now.Add(domain.PresenceTTL)))

	// The original deadline passes but the record is still live.
	mr.FastForward(2*time.Hour + time.Minute)
	p, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestPresenceRefreshMissingIsNoop(t *testing.T) {
	repo, _ := setupPresenceRepo(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Refresh(ctx, 99, now, now.Add(domain.PresenceTTL)))

	p, err := repo.Get(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, p, "refresh never resurrects an expired record")
}

func TestPresenceDelete(t *testing.T) {
	repo, _ := setupPresenceRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, livePresence(1, 10)))
	require.NoError(t, repo.Delete(ctx, 1))
	require.NoError(t, repo.Delete(ctx, 1), "delete is idempotent")

	count, err := repo.CountByVenue(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
