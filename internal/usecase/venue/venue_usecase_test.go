package venue_test

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
	"github.com/venuedate/venuedate-backend/internal/repository/memory"
	redisrepo "github.com/venuedate/venuedate-backend/internal/repository/redis"
	"github.com/venuedate/venuedate-backend/internal/usecase/venue"
)

type fixture struct {
	uc       *venue.VenueUseCase
	venues   *memory.VenueRepository
	presence repository.PresenceRepository
}

func setup(t *testing.T) *fixture {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	venues := memory.NewVenueRepository()
	presenceRepo := redisrepo.NewPresenceRepository(client)
	return &fixture{
		uc:       venue.NewVenueUseCase(venues, presenceRepo),
		venues:   venues,
		presence: presenceRepo,
	}
}

func TestCreateDefaults(t *testing.T) {
	f := setup(t)

	created, err := f.uc.Create(context.Background(), &venue.CreateVenueRequest{
		Name:     "Bar Nine",
		Category: "bar",
		City:     "Austin",
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, domain.DefaultVenueRadiusMeters, created.RadiusMeters)
}

func TestCreateValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	var verr domain.ValidationError

	_, err := f.uc.Create(ctx, &venue.CreateVenueRequest{Name: "X Spot", Category: "spaceship"})
	assert.ErrorAs(t, err, &verr)

	tooSmall := 5
	_, err = f.uc.Create(ctx, &venue.CreateVenueRequest{Name: "Tiny", Category: "bar", RadiusMeters: &tooSmall})
	assert.ErrorAs(t, err, &verr)

	tooBig := 9000
	_, err = f.uc.Create(ctx, &venue.CreateVenueRequest{Name: "Huge", Category: "bar", RadiusMeters: &tooBig})
	assert.ErrorAs(t, err, &verr)

	edge := domain.MaxVenueRadiusMeters
	created, err := f.uc.Create(ctx, &venue.CreateVenueRequest{Name: "Edge", Category: "bar", RadiusMeters: &edge})
	require.NoError(t, err)
	assert.Equal(t, edge, created.RadiusMeters)
}

func TestGetRecomputesOccupancy(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, &venue.CreateVenueRequest{Name: "Bar", Category: "bar"})
	require.NoError(t, err)

	now := time.Now()
	for userID := 1; userID <= 2; userID++ {
		require.NoError(t, f.presence.Upsert(ctx, &domain.Presence{
			UserID:     userID,
			VenueID:    created.ID,
			LastSeenAt: now,
			ExpiresAt:  now.Add(domain.PresenceTTL),
		}))
	}

	got, err := f.uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentOccupancy)
}

func TestUpdateAndToggle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, &venue.CreateVenueRequest{Name: "Bar", Category: "bar"})
	require.NoError(t, err)

	name := "Renamed Bar"
	inactive := false
	updated, err := f.uc.Update(ctx, created.ID, &venue.UpdateVenueRequest{Name: &name, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Bar", updated.Name)
	assert.False(t, updated.IsActive)

	// Inactive venues disappear from the public surface but not admin.
	_, err = f.uc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrVenueNotFound)
	listing, err := f.uc.List(ctx, &venue.ListVenuesRequest{Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Total)
}

func TestSoftDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, &venue.CreateVenueRequest{Name: "Bar", Category: "bar"})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, created.ID))
	_, err = f.uc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrVenueNotFound)

	stats, err := f.uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalVenues, "soft-deleted venues leave the stats")
}

func TestListSearchAndPaging(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for _, name := range []string{"Alpha Bar", "Beta Cafe", "Gamma Bar"} {
		_, err := f.uc.Create(ctx, &venue.CreateVenueRequest{Name: name, Category: "bar"})
		require.NoError(t, err)
	}

	listing, err := f.uc.List(ctx, &venue.ListVenuesRequest{Search: "bar"})
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Total)

	paged, err := f.uc.List(ctx, &venue.ListVenuesRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, paged.Total)
	assert.Len(t, paged.Venues, 1)
}
