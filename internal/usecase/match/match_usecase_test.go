package match_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository/memory"
	"github.com/venuedate/venuedate-backend/internal/usecase/match"
)

type fixture struct {
	uc      *match.MatchUseCase
	users   *memory.UserRepository
	venues  *memory.VenueRepository
	matches *memory.MatchRepository
}

func setup(t *testing.T) *fixture {
	t.Helper()
	swipes := memory.NewSwipeRepository()
	blocks := memory.NewBlockRepository()
	users := memory.NewUserRepository(swipes, blocks)
	venues := memory.NewVenueRepository()
	matches := memory.NewMatchRepository()
	return &fixture{
		uc:      match.NewMatchUseCase(users, venues, matches),
		users:   users,
		venues:  venues,
		matches: matches,
	}
}

func (f *fixture) addUser(t *testing.T, name string, venueID *int) *domain.User {
	t.Helper()
	u := &domain.User{
		Name:        name,
		Email:       name + "@example.com",
		DateOfBirth: time.Date(1995, 6, 1, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
		Status:      domain.StatusActive,
		Role:        domain.RoleUser,
		ShowAge:     true,
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	if venueID != nil {
		require.NoError(t, f.users.UpdateActiveVenue(context.Background(), u.ID, venueID))
	}
	return u
}

func (f *fixture) addMatch(t *testing.T, user1, user2, venueID int) *domain.Match {
	t.Helper()
	m := &domain.Match{
		User1ID:    user1,
		User2ID:    user2,
		VenueID:    venueID,
		HowMatched: domain.MatchedBySwipe,
		MatchedAt:  time.Now(),
	}
	require.NoError(t, f.matches.Create(context.Background(), m))
	return m
}

func venueRef(id int) *int { return &id }

func TestListScopedToCurrentVenue(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	venue := &domain.Venue{Name: "Bar Nine", Category: "bar", IsActive: true}
	require.NoError(t, f.venues.Create(ctx, venue))

	alice := f.addUser(t, "alice", venueRef(venue.ID))
	bob := f.addUser(t, "bob", venueRef(venue.ID))
	carol := f.addUser(t, "carol", nil)

	f.addMatch(t, alice.ID, bob.ID, venue.ID)
	f.addMatch(t, alice.ID, carol.ID, 99)

	resp, err := f.uc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.VenueID)
	assert.Equal(t, venue.ID, *resp.VenueID)
	require.Len(t, resp.Matches, 1)

	entry := resp.Matches[0]
	assert.Equal(t, bob.ID, entry.OtherUser.ID)
	assert.True(t, entry.CanChat, "both at the same venue")
	require.NotNil(t, entry.Venue)
	assert.Equal(t, "Bar Nine", entry.Venue.Name)
}

func TestListAllAndCanChat(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	alice := f.addUser(t, "alice", nil)
	bob := f.addUser(t, "bob", venueRef(10))
	carol := f.addUser(t, "carol", nil)

	f.addMatch(t, alice.ID, bob.ID, 10)
	f.addMatch(t, alice.ID, carol.ID, 20)

	// Not checked in: List falls through to the unscoped listing.
	resp, err := f.uc.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, resp.VenueID)
	require.Len(t, resp.Matches, 2)
	for _, entry := range resp.Matches {
		assert.False(t, entry.CanChat)
	}
}

func TestListDropsDeletedAccounts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	alice := f.addUser(t, "alice", nil)
	bob := f.addUser(t, "bob", nil)
	f.addMatch(t, alice.ID, bob.ID, 10)
	require.NoError(t, f.users.Delete(ctx, bob.ID))

	resp, err := f.uc.ListAll(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Matches)
}
