package presence_test

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
	"github.com/venuedate/venuedate-backend/internal/usecase/presence"
)

type fixture struct {
	uc       *presence.PresenceUseCase
	users    *memory.UserRepository
	venues   *memory.VenueRepository
	swipes   *memory.SwipeRepository
	presence repository.PresenceRepository
	mr       *miniredis.Miniredis
}

func setup(t *testing.T) *fixture {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	swipes := memory.NewSwipeRepository()
	blocks := memory.NewBlockRepository()
	users := memory.NewUserRepository(swipes, blocks)
	venues := memory.NewVenueRepository()
	presenceRepo := redisrepo.NewPresenceRepository(client)

	return &fixture{
		uc:       presence.NewPresenceUseCase(users, venues, presenceRepo, swipes, domain.PresenceTTL),
		users:    users,
		venues:   venues,
		swipes:   swipes,
		presence: presenceRepo,
		mr:       mr,
	}
}

func (f *fixture) addUser(t *testing.T, name string) *domain.User {
	t.Helper()
	u := &domain.User{
		Name:        name,
		Email:       name + "@example.com",
		DateOfBirth: time.Date(1995, 6, 1, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
		Status:      domain.StatusActive,
		Role:        domain.RoleUser,
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) addVenue(t *testing.T, name string, lat, lng float64, radius int) *domain.Venue {
	t.Helper()
	v := &domain.Venue{
		Name:         name,
		Category:     "bar",
		Lat:          &lat,
		Lng:          &lng,
		RadiusMeters: radius,
		IsActive:     true,
	}
	require.NoError(t, f.venues.Create(context.Background(), v))
	return v
}

func TestCheckInHappyPath(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	user := f.addUser(t, "alice")
	venue := f.addVenue(t, "Bar Nine", 40.0, -74.0, 100)

	resp, err := f.uc.CheckIn(ctx, user.ID, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, venue.ID, resp.Venue.ID)
	assert.Equal(t, 1, resp.Venue.CurrentOccupancy)
	assert.WithinDuration(t, time.Now().Add(domain.PresenceTTL), resp.ExpiresAt, 5*time.Second)

	stored, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ActiveVenueID)
	assert.Equal(t, venue.ID, *stored.ActiveVenueID)
}

func TestCheckInInactiveVenue(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	user := f.addUser(t, "alice")
	venue := f.addVenue(t, "Closed Bar", 40.0, -74.0, 100)
	require.NoError(t, f.venues.SetActive(ctx, venue.ID, false))

	_, err := f.uc.CheckIn(ctx, user.ID, venue.ID)
	assert.ErrorIs(t, err, domain.ErrVenueNotFound)

	stored, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ActiveVenueID, "failed check-in leaves no side effects")
}

func TestCheckInReplacesPreviousVenue(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	user := f.addUser(t, "alice")
	first := f.addVenue(t, "First", 40.0, -74.0, 100)
	second := f.addVenue(t, "Second", 41.0, -74.0, 100)

	_, err := f.uc.CheckIn(ctx, user.ID, first.ID)
	require.NoError(t, err)
	resp, err := f.uc.CheckIn(ctx, user.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Venue.CurrentOccupancy)

	count, err := f.presence.CountByVenue(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "at most one presence per user")
}

func TestCheckOutResetsSwipes(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	user := f.addUser(t, "alice")
	other := f.addUser(t, "bob")
	venue := f.addVenue(t, "Bar", 40.0, -74.0, 100)

	_, err := f.uc.CheckIn(ctx, user.ID, venue.ID)
	require.NoError(t, err)
	require.NoError(t, f.swipes.Add(ctx, user.ID, other.ID, repository.SwipeLeft, &venue.ID))

	require.NoError(t, f.uc.CheckOut(ctx, user.ID))

	stored, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ActiveVenueID)

	ids, err := f.swipes.SwipedIDs(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, ids, "checkout purges swipe history")

	count, err := f.presence.CountByVenue(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCheckOutIdempotent(t *testing.T) {
	f := setup(t)
	user := f.addUser(t, "alice")

	require.NoError(t, f.uc.CheckOut(context.Background(), user.ID))
	require.NoError(t, f.uc.CheckOut(context.Background(), user.ID))
}

func TestHeartbeatExtendsPresence(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	user := f.addUser(t, "alice")
	venue := f.addVenue(t, "Bar", 40.0, -74.0, 100)

	_, err := f.uc.CheckIn(ctx, user.ID, venue.ID)
	require.NoError(t, err)

	f.mr.FastForward(3 * time.Hour)
	resp, err := f.uc.Heartbeat(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, resp.AtVenue)
	require.NotNil(t, resp.VenueID)
	assert.Equal(t, venue.ID, *resp.VenueID)

	// Past the original deadline the refreshed record is still live.
	f.mr.FastForward(2 * time.Hour)
	count, err := f.presence.CountByVenue(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHeartbeatWithoutPresence(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	user := f.addUser(t, "alice")
	venue := f.addVenue(t, "Bar", 40.0, -74.0, 100)

	_, err := f.uc.CheckIn(ctx, user.ID, venue.ID)
	require.NoError(t, err)
	f.mr.FastForward(domain.PresenceTTL + time.Minute)

	resp, err := f.uc.Heartbeat(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, resp.AtVenue, "expired presence is not resurrected")

	stored, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ActiveVenueID, "stale pointer healed")
}

func TestPeopleCount(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	venue := f.addVenue(t, "Bar", 40.0, -74.0, 100)
	for _, name := range []string{"alice", "bob", "carol"} {
		u := f.addUser(t, name)
		_, err := f.uc.CheckIn(ctx, u.ID, venue.ID)
		require.NoError(t, err)
	}

	resp, err := f.uc.PeopleCount(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)
}

// metersPerLatDegree approximates one degree of latitude near the equator.
const metersPerLatDegree = 111194.9

func TestDetectInsideGeofence(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	user := f.addUser(t, "alice")
	venue := f.addVenue(t, "Cafe", 40.0, -74.0, 200)

	// About 150m north of the venue: inside the 200m radius.
	resp, err := f.uc.Detect(ctx, user.ID, &presence.DetectRequest{
		Lat: 40.0 + 150/metersPerLatDegree,
		Lng: -74.0,
	})
	require.NoError(t, err)
	assert.True(t, resp.AtVenue)
	require.NotNil(t, resp.Venue)
	assert.Equal(t, venue.ID, resp.Venue.ID)

	stored, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ActiveVenueID)
	assert.Equal(t, venue.ID, *stored.ActiveVenueID)
}

func TestDetectOutsideGeofence(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	user := f.addUser(t, "alice")
	f.addVenue(t, "Cafe", 40.0, -74.0, 200)

	// About 250m away: outside the radius, so no check-in happens and the
	// candidate list comes back sorted by distance.
	resp, err := f.uc.Detect(ctx, user.ID, &presence.DetectRequest{
		Lat: 40.0 + 250/metersPerLatDegree,
		Lng: -74.0,
	})
	require.NoError(t, err)
	assert.False(t, resp.AtVenue)
	require.Len(t, resp.Venues, 1)
	require.NotNil(t, resp.Venues[0].DistanceMeters)
	assert.InDelta(t, 250, *resp.Venues[0].DistanceMeters, 2)

	stored, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ActiveVenueID)
}

func TestDetectPicksNearestContainingVenue(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	user := f.addUser(t, "alice")
	far := f.addVenue(t, "Big Mall", 40.0, -74.0, 5000)
	near := f.addVenue(t, "Corner Cafe", 40.0+100/metersPerLatDegree, -74.0, 200)
	_ = far

	resp, err := f.uc.Detect(ctx, user.ID, &presence.DetectRequest{Lat: 40.0 + 120/metersPerLatDegree, Lng: -74.0})
	require.NoError(t, err)
	assert.True(t, resp.AtVenue)
	assert.Equal(t, near.ID, resp.Venue.ID, "geometrically nearest wins")
}

func TestDetectFallbackRadius(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	user := f.addUser(t, "alice")

	// Venue with no configured radius falls back to 500m.
	lat, lng := 40.0, -74.0
	v := &domain.Venue{Name: "Legacy", Category: "other", Lat: &lat, Lng: &lng, IsActive: true}
	require.NoError(t, f.venues.Create(ctx, v))

	resp, err := f.uc.Detect(ctx, user.ID, &presence.DetectRequest{Lat: 40.0 + 400/metersPerLatDegree, Lng: -74.0})
	require.NoError(t, err)
	assert.True(t, resp.AtVenue)
}

func TestNearbySortsAndAnnotates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	far := f.addVenue(t, "Far Bar", 40.0+900/metersPerLatDegree, -74.0, 100)
	near := f.addVenue(t, "Near Cafe", 40.0+100/metersPerLatDegree, -74.0, 100)

	// No coordinates: sorted last with the sentinel distance.
	noLoc := &domain.Venue{Name: "Mystery Spot", Category: "other", IsActive: true}
	require.NoError(t, f.venues.Create(ctx, noLoc))

	lat, lng := 40.0, -74.0
	out, err := f.uc.Nearby(ctx, &presence.NearbyRequest{Lat: &lat, Lng: &lng})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, near.ID, out[0].ID)
	assert.Equal(t, far.ID, out[1].ID)
	assert.Equal(t, noLoc.ID, out[2].ID)
	assert.Equal(t, 999999, *out[2].DistanceMeters)
	assert.InDelta(t, 100, *out[0].DistanceMeters, 2)
}

func TestNearbyRadiusCap(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	near := f.addVenue(t, "Near", 40.0+100/metersPerLatDegree, -74.0, 100)
	f.addVenue(t, "Far", 40.0+2000/metersPerLatDegree, -74.0, 100)

	lat, lng, radius := 40.0, -74.0, 500.0
	out, err := f.uc.Nearby(ctx, &presence.NearbyRequest{Lat: &lat, Lng: &lng, Radius: &radius})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, near.ID, out[0].ID)
}
