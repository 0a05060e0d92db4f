package moderation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository/memory"
	"github.com/venuedate/venuedate-backend/internal/usecase/moderation"
)

type fixture struct {
	uc      *moderation.ModerationUseCase
	users   *memory.UserRepository
	blocks  *memory.BlockRepository
	reports *memory.ReportRepository
}

func setup(t *testing.T) *fixture {
	t.Helper()
	swipes := memory.NewSwipeRepository()
	blocks := memory.NewBlockRepository()
	users := memory.NewUserRepository(swipes, blocks)
	reports := memory.NewReportRepository()
	return &fixture{
		uc:      moderation.NewModerationUseCase(users, blocks, reports),
		users:   users,
		blocks:  blocks,
		reports: reports,
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

func TestBlockUnblock(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	require.NoError(t, f.uc.Block(ctx, alice.ID, &moderation.BlockRequest{TargetUserID: bob.ID}))
	require.NoError(t, f.uc.Block(ctx, alice.ID, &moderation.BlockRequest{TargetUserID: bob.ID}), "idempotent")

	ids, err := f.blocks.BlockedIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{bob.ID}, ids)

	require.NoError(t, f.uc.Unblock(ctx, alice.ID, &moderation.BlockRequest{TargetUserID: bob.ID}))
	require.NoError(t, f.uc.Unblock(ctx, alice.ID, &moderation.BlockRequest{TargetUserID: bob.ID}), "idempotent")
	ids, err = f.blocks.BlockedIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestBlockValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")

	err := f.uc.Block(ctx, alice.ID, &moderation.BlockRequest{TargetUserID: alice.ID})
	var verr domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	err = f.uc.Block(ctx, alice.ID, &moderation.BlockRequest{TargetUserID: 9999})
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestReportLifecycle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	report, err := f.uc.Report(ctx, alice.ID, &moderation.ReportRequest{
		ReportedUserID: bob.ID,
		Reason:         "harassment",
		Details:        "unsolicited messages",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReportOpen, report.Status)

	open, err := f.uc.ListReports(ctx, domain.ReportOpen)
	require.NoError(t, err)
	require.Len(t, open, 1)

	status := domain.ReportReviewed
	notes := "warned the user"
	updated, err := f.uc.UpdateReport(ctx, report.ID, &moderation.UpdateReportRequest{
		Status:     &status,
		AdminNotes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReportReviewed, updated.Status)
	assert.Equal(t, "warned the user", updated.AdminNotes)

	open, err = f.uc.ListReports(ctx, domain.ReportOpen)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestReportValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")

	_, err := f.uc.Report(ctx, alice.ID, &moderation.ReportRequest{ReportedUserID: alice.ID, Reason: "spam"})
	var verr domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = f.uc.Report(ctx, alice.ID, &moderation.ReportRequest{ReportedUserID: 9999, Reason: "spam"})
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)

	_, err = f.uc.ListReports(ctx, "Bogus")
	assert.ErrorAs(t, err, &verr)

	bad := "Bogus"
	_, err = f.uc.UpdateReport(ctx, 9999, &moderation.UpdateReportRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}
